package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/gabriola-connects/portal-backend/internal/infrastructure/logging"
)

type countingObserver struct {
	mu        sync.Mutex
	published int
	connected int
	dropped   int
}

func (o *countingObserver) EventPublished(string, string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.published++
}

func (o *countingObserver) ClientConnected(delta int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.connected += delta
}

func (o *countingObserver) ClientDropped() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.dropped++
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestHub_PublishToSubscribers(t *testing.T) {
	defer goleak.VerifyNone(t)

	observer := &countingObserver{}
	hub := NewHub(logging.NewNopLogger(), observer, nil)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var topics []string
		if raw := r.URL.Query().Get("topics"); raw != "" {
			topics = strings.Split(raw, ",")
		}
		_ = hub.Serve(w, r, r.URL.Query().Get("user"), topics)
	}))
	defer srv.Close()

	// Cliente sem tópicos não recebe nada
	idle := dial(t, srv, "user=user-1")
	defer idle.Close()

	subscriber := dial(t, srv, "user=user-2&topics=alerts")
	defer subscriber.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	hub.Publish(context.Background(), "admin", "user.created", map[string]string{"id": "x"})

	hub.Publish(context.Background(), "alerts", "alert.created", map[string]string{"title": "Ferry delayed"})

	_ = subscriber.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := subscriber.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "alerts", msg.Topic)
	assert.Equal(t, "alert.created", msg.Type)
	assert.False(t, msg.SentAt.IsZero())
	assert.Equal(t, map[string]any{"title": "Ferry delayed"}, msg.Data)

	hub.Close()
	assert.Equal(t, 0, hub.ClientCount())

	observer.mu.Lock()
	assert.Equal(t, 2, observer.published)
	assert.Equal(t, 0, observer.connected)
	observer.mu.Unlock()

	// Após o Close novas conexões são recusadas
	err = hub.Serve(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "u", nil)
	assert.ErrorIs(t, err, ErrHubClosed)
}

func TestHub_RevokeSessions(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(logging.NewNopLogger(), nil, nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, r.URL.Query().Get("user"), strings.Split(r.URL.Query().Get("topics"), ","))
	}))
	defer srv.Close()

	demoted := dial(t, srv, "user=admin-1&topics=alerts,admin")
	defer demoted.Close()
	banned := dial(t, srv, "user=admin-2&topics=alerts,admin")
	defer banned.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	ctx := context.Background()
	hub.Unsubscribe(ctx, "admin-1", "admin")
	hub.Disconnect(ctx, "admin-2")
	assert.Equal(t, 1, hub.ClientCount())

	hub.Publish(ctx, "admin", "user.created", map[string]string{"id": "x"})
	hub.Publish(ctx, "alerts", "alert.created", map[string]string{"title": "Boil water"})

	// O rebaixado continua conectado, mas só recebe o tópico público
	_ = demoted.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := demoted.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "alerts", msg.Topic)

	// O banido recebe o fechamento da conexão
	_ = banned.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = banned.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "esperava fechamento normal, obteve %v", err)

	hub.Close()
}

func TestHub_DropsSlowClient(t *testing.T) {
	observer := &countingObserver{}
	hub := NewHub(logging.NewNopLogger(), observer, nil)

	slow := &client{hub: hub, send: make(chan []byte, 1), topics: map[string]struct{}{"alerts": {}}}
	hub.clients[slow] = struct{}{}

	hub.Publish(context.Background(), "alerts", "alert.created", nil)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Publish(context.Background(), "alerts", "alert.updated", nil)
	assert.Equal(t, 0, hub.ClientCount())
	assert.Equal(t, 1, observer.dropped)

	// O canal foi fechado após a mensagem pendente
	<-slow.send
	_, ok := <-slow.send
	assert.False(t, ok)
}

func TestHub_RunClosesOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(logging.NewNopLogger(), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub não encerrou após cancelamento")
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://gabriola.example"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://gabriola.example")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(req))

	assert.True(t, originChecker([]string{"*"})(req))
}
