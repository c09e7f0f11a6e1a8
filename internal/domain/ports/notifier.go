package ports

import "context"

// Tópicos do canal realtime
const (
	TopicAlerts = "alerts"
	TopicAdmin  = "admin"
)

// Notifier publica eventos para os clientes conectados em tempo real
type Notifier interface {
	Publish(ctx context.Context, topic, eventType string, data any)
}

// NopNotifier descarta todos os eventos
type NopNotifier struct{}

func (NopNotifier) Publish(context.Context, string, string, any) {}

// SessionRevoker corta o acesso realtime de quem já está conectado,
// para que banimentos e perdas de permissão valham na hora
type SessionRevoker interface {
	// Disconnect encerra todas as conexões do usuário
	Disconnect(ctx context.Context, userID string)
	// Unsubscribe tira o usuário do tópico sem derrubar a conexão
	Unsubscribe(ctx context.Context, userID, topic string)
}

func (NopNotifier) Disconnect(context.Context, string) {}

func (NopNotifier) Unsubscribe(context.Context, string, string) {}
