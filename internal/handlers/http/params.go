package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/handlers/dto"
)

// pathID lê o parâmetro :id. Ids que não são UUID não existem, então respondem notFound.
func pathID(c *gin.Context, notFound error) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		dto.RespondError(c, notFound)
		return "", false
	}
	return id, true
}

// bindOptionalJSON faz o bind apenas quando há corpo na requisição
func bindOptionalJSON(c *gin.Context, obj any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	return dto.BindJSON(c, obj)
}

// parseTimeParam aceita RFC 3339 ou uma data YYYY-MM-DD (meia-noite em loc)
func parseTimeParam(field, raw string, loc *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, raw, loc); err == nil {
		return &t, nil
	}
	return nil, errors.NewValidationError(field, errors.MsgInvalid)
}
