package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabriola-connects/portal-backend/internal/handlers/middleware"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/logging"
)

// HealthChecker verifica as dependências da aplicação
type HealthChecker interface {
	Check(ctx context.Context) error
}

// HealthHandler responde ao health check
type HealthHandler struct {
	checker HealthChecker
	env     string
}

// NewHealthHandler cria um novo HealthHandler
func NewHealthHandler(checker HealthChecker, env string) *HealthHandler {
	return &HealthHandler{checker: checker, env: env}
}

// Health verifica o banco de dados
//
//	@Summary	Health check
//	@Tags		platform
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Failure	503	{object}	map[string]string
//	@Router		/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.checker.Check(c.Request.Context()); err != nil {
		middleware.GetLogger(c, logging.NewNopLogger()).Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unavailable",
			"env":      h.env,
			"database": "down",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"env":      h.env,
		"database": "up",
	})
}
