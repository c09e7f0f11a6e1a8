package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/gabriola-connects/portal-backend/internal/handlers/middleware"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/i18n"
)

// T é um helper para traduzir mensagens no contexto do Gin
// Uso: dto.T(c, "error.not_found.detail", map[string]interface{}{"Resource": "Event"})
func T(c *gin.Context, key string, params ...map[string]interface{}) string {
	service := i18nService(c)
	if service == nil {
		// Fallback: retornar a chave se serviço não estiver disponível
		return key
	}
	return service.T(GetLanguage(c), key, params...)
}

// GetLanguage retorna o idioma configurado no contexto da requisição
func GetLanguage(c *gin.Context) string {
	lang, exists := c.Get(middleware.LanguageContextKey)
	if !exists {
		return "en" // Fallback
	}

	langStr, ok := lang.(string)
	if !ok {
		return "en"
	}

	return langStr
}

func hasTranslation(c *gin.Context, key string) bool {
	service := i18nService(c)
	return service != nil && service.Has(key)
}

func i18nService(c *gin.Context) *i18n.Service {
	v, exists := c.Get(middleware.I18nServiceContextKey)
	if !exists {
		return nil
	}
	service, _ := v.(*i18n.Service)
	return service
}
