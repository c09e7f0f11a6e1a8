package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
)

// LoggerContextKey é a chave do logger da requisição no contexto do Gin
const LoggerContextKey = "logger"

// RequestLogger registra cada requisição e deixa no contexto um logger
// com o request_id já anexado
func RequestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLogger := logger.With("request_id", GetRequestID(c))
		c.Set(LoggerContextKey, reqLogger)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		args := []any{
			"method", c.Request.Method,
			"route", route,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if user := CurrentUser(c); user != nil {
			args = append(args, "user_id", user.ID)
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			reqLogger.Error("request failed", args...)
		case status >= 400:
			reqLogger.Warn("request rejected", args...)
		default:
			reqLogger.Info("request handled", args...)
		}
	}
}

// GetLogger retorna o logger da requisição, ou fallback quando não houver
func GetLogger(c *gin.Context, fallback ports.Logger) ports.Logger {
	if v, ok := c.Get(LoggerContextKey); ok {
		if l, ok := v.(ports.Logger); ok {
			return l
		}
	}
	return fallback
}
