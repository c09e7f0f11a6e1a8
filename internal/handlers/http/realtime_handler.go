package http

import (
	errs "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/handlers/dto"
	"github.com/gabriola-connects/portal-backend/internal/handlers/middleware"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/logging"
)

// RealtimeServer aceita conexões WebSocket inscritas em tópicos
type RealtimeServer interface {
	Serve(w http.ResponseWriter, r *http.Request, userID string, topics []string) error
}

// RealtimeHandler expõe o canal de notificações em tempo real
type RealtimeHandler struct {
	server RealtimeServer
	closed error
}

// NewRealtimeHandler cria um novo RealtimeHandler. closed é o erro que o
// servidor retorna quando já está encerrando.
func NewRealtimeHandler(server RealtimeServer, closed error) *RealtimeHandler {
	return &RealtimeHandler{server: server, closed: closed}
}

// Connect faz o upgrade para WebSocket
//
//	@Summary		Canal em tempo real
//	@Description	topics é uma lista separada por vírgulas (alerts, admin). O token pode vir em access_token.
//	@Tags			realtime
//	@Param			topics			query	string	false	"Tópicos"	default(alerts)
//	@Param			access_token	query	string	false	"Token de acesso"
//	@Success		101
//	@Failure		403	{object}	dto.ErrorResponse
//	@Router			/realtime [get]
func (h *RealtimeHandler) Connect(c *gin.Context) {
	topics, err := requestedTopics(c.Query("topics"), middleware.CurrentUser(c))
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	userID := ""
	if user := middleware.CurrentUser(c); user != nil {
		userID = user.ID
	}

	if err := h.server.Serve(c.Writer, c.Request, userID, topics); err != nil {
		if h.closed != nil && errs.Is(err, h.closed) {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		// o upgrader já respondeu ao cliente
		middleware.GetLogger(c, logging.NewNopLogger()).Debug("realtime upgrade failed", "error", err)
		c.Abort()
	}
}

// requestedTopics valida os tópicos pedidos contra as permissões do usuário
func requestedTopics(raw string, user *entities.User) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{ports.TopicAlerts}, nil
	}

	seen := make(map[string]struct{})
	var topics []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		switch t {
		case ports.TopicAlerts:
		case ports.TopicAdmin:
			if user == nil {
				return nil, errors.ErrUnauthorized
			}
			if !user.HasPermission(entities.PermissionUsersManage) {
				return nil, errors.ErrForbidden
			}
		default:
			return nil, errors.NewValidationError("topics", errors.MsgInvalid)
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		topics = append(topics, t)
	}
	if len(topics) == 0 {
		return []string{ports.TopicAlerts}, nil
	}
	return topics, nil
}
