package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

var (
	_ ports.Notifier       = (*Hub)(nil)
	_ ports.SessionRevoker = (*Hub)(nil)
)

// ErrHubClosed indica que o hub não aceita novas conexões
var ErrHubClosed = errors.New("realtime hub closed")

// Message é o envelope JSON enviado aos clientes
type Message struct {
	Topic  string    `json:"topic"`
	Type   string    `json:"type"`
	Data   any       `json:"data"`
	SentAt time.Time `json:"sent_at"`
}

// Observer recebe contagens do hub (implementado pelas métricas)
type Observer interface {
	EventPublished(topic, eventType string)
	ClientConnected(delta int)
	ClientDropped()
}

// Hub distribui mensagens para os clientes WebSocket inscritos em cada tópico.
// Clientes lentos são descartados em vez de bloquear quem publica.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	closed   bool
	wg       sync.WaitGroup
	upgrader websocket.Upgrader
	logger   ports.Logger
	observer Observer
	clock    ports.Clock
}

// NewHub cria um hub; allowedOrigins vazio ou com "*" aceita qualquer origem
func NewHub(logger ports.Logger, observer Observer, allowedOrigins []string) *Hub {
	h := &Hub{
		clients:  make(map[*client]struct{}),
		logger:   logger,
		observer: observer,
		clock:    ports.SystemClock{},
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// Publish implementa ports.Notifier
func (h *Hub) Publish(_ context.Context, topic, eventType string, data any) {
	payload, err := json.Marshal(Message{
		Topic:  topic,
		Type:   eventType,
		Data:   data,
		SentAt: h.clock.Now(),
	})
	if err != nil {
		h.logger.Error("failed to encode realtime message", "topic", topic, "type", eventType, "error", err)
		return
	}

	if h.observer != nil {
		h.observer.EventPublished(topic, eventType)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		if _, ok := c.topics[topic]; !ok {
			continue
		}
		select {
		case c.send <- payload:
		default:
			h.logger.Warn("dropping slow realtime client", "user_id", c.userID)
			h.removeLocked(c)
			if h.observer != nil {
				h.observer.ClientDropped()
			}
		}
	}
}

// Serve faz o upgrade da conexão e inscreve o cliente nos tópicos
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID string, topics []string) error {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		return ErrHubClosed
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		topics: make(map[string]struct{}, len(topics)),
		userID: userID,
	}
	for _, t := range topics {
		c.topics[t] = struct{}{}
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return ErrHubClosed
	}
	h.clients[c] = struct{}{}
	h.wg.Add(2)
	h.mu.Unlock()

	if h.observer != nil {
		h.observer.ClientConnected(1)
	}
	h.logger.Debug("realtime client connected", "user_id", userID, "topics", topics)

	go c.writePump()
	go c.readPump()
	return nil
}

// Disconnect implementa ports.SessionRevoker derrubando todas as conexões do usuário
func (h *Hub) Disconnect(_ context.Context, userID string) {
	if userID == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for c := range h.clients {
		if c.userID == userID {
			h.removeLocked(c)
			n++
		}
	}
	if n > 0 {
		h.logger.Info("realtime sessions revoked", "user_id", userID, "connections", n)
	}
}

// Unsubscribe implementa ports.SessionRevoker removendo o tópico das conexões do usuário
func (h *Hub) Unsubscribe(_ context.Context, userID, topic string) {
	if userID == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		if c.userID != userID {
			continue
		}
		if _, ok := c.topics[topic]; ok {
			delete(c.topics, topic)
			h.logger.Info("realtime topic revoked", "user_id", userID, "topic", topic)
		}
	}
}

// ClientCount retorna o número de clientes conectados
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Run bloqueia até ctx terminar e então fecha o hub
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.Close()
}

// Close desconecta todos os clientes e aguarda suas goroutines
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
	h.mu.Unlock()

	h.wg.Wait()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// removeLocked é idempotente; fechar send encerra o writePump
func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	if h.observer != nil {
		h.observer.ClientConnected(-1)
	}
}

type client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	topics map[string]struct{} // protegido por hub.mu
	userID string
}

// readPump descarta mensagens do cliente e mantém o deadline via pong
func (c *client) readPump() {
	defer func() {
		c.hub.remove(c)
		_ = c.conn.Close()
		c.hub.wg.Done()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
		c.hub.wg.Done()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
