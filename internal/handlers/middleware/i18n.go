package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gabriola-connects/portal-backend/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey guarda o idioma escolhido para a requisição
	LanguageContextKey = "language"
	// I18nServiceContextKey guarda o serviço de tradução
	I18nServiceContextKey = "i18n_service"

	langQuery = "lang"
)

// I18nMiddleware escolhe o idioma das mensagens de cada requisição
type I18nMiddleware struct {
	i18nService *i18n.Service
}

func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	return &I18nMiddleware{i18nService: i18nService}
}

// DetectLanguage usa ?lang=, depois Accept-Language e por fim o idioma padrão.
// O idioma escolhido volta no header Content-Language.
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := m.resolve(c.Query(langQuery))
		if lang == "" {
			lang = m.parseAcceptLanguage(c.GetHeader("Accept-Language"))
		}
		if lang == "" {
			lang = m.i18nService.GetDefaultLanguage()
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)
		c.Header("Content-Language", lang)
		c.Next()
	}
}

// parseAcceptLanguage devolve o primeiro idioma suportado na ordem do header.
// Pesos (q=) são ignorados; navegadores já enviam em ordem de preferência.
func (m *I18nMiddleware) parseAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(part, ";")
		if lang := m.resolve(tag); lang != "" {
			return lang
		}
	}
	return ""
}

// resolve aceita a tag exata ou sua base sem região (fr-CA -> fr)
func (m *I18nMiddleware) resolve(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" || tag == "*" {
		return ""
	}
	if m.i18nService.IsLanguageSupported(tag) {
		return tag
	}
	if base, _, found := strings.Cut(tag, "-"); found && m.i18nService.IsLanguageSupported(base) {
		return base
	}
	return ""
}
