package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

const (
	// RequestIDHeader é o header usado para propagar o id da requisição
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey é a chave do id da requisição no contexto do Gin
	RequestIDContextKey = "request_id"
)

const maxRequestIDLength = 64

// RequestID reaproveita o X-Request-ID recebido ou gera um ULID novo
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = ulid.Make().String()
		}

		c.Set(RequestIDContextKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID retorna o id da requisição atual
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDContextKey)
}
