package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
)

// UserContextKey é a chave do usuário autenticado no contexto do Gin
const UserContextKey = "current_user"

// accessTokenQuery permite autenticar o upgrade do WebSocket, que não envia headers
const accessTokenQuery = "access_token"

// Authenticator resolve um token de acesso para o perfil atual
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entities.User, error)
}

// ErrorResponder escreve a resposta de erro e aborta a cadeia de handlers
type ErrorResponder func(c *gin.Context, err error)

// AuthMiddleware autentica as requisições pelo token Bearer
type AuthMiddleware struct {
	auth    Authenticator
	respond ErrorResponder
}

// NewAuthMiddleware cria um novo middleware de autenticação
func NewAuthMiddleware(auth Authenticator, respond ErrorResponder) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, respond: respond}
}

// RequireAuth exige um token válido de um usuário não banido
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			m.respond(c, errors.ErrUnauthorized)
			return
		}

		user, err := m.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			m.respond(c, err)
			return
		}
		if user.IsBanned {
			m.respond(c, errors.ErrUserBanned)
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}

// OptionalAuth identifica o usuário quando há token, sem exigi-lo.
// Um token inválido ainda é rejeitado; usuários banidos seguem sem permissões.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		user, err := m.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			m.respond(c, err)
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}

// RequirePermission exige que o usuário autenticado tenha a permissão.
// Deve ser usado depois de RequireAuth.
func (m *AuthMiddleware) RequirePermission(p entities.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			m.respond(c, errors.ErrUnauthorized)
			return
		}
		if !user.HasPermission(p) {
			m.respond(c, errors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// CurrentUser retorna o usuário autenticado, ou nil para visitantes
func CurrentUser(c *gin.Context) *entities.User {
	v, ok := c.Get(UserContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*entities.User)
	return user
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}
	return c.Query(accessTokenQuery)
}
