package middleware

import (
	"context"
	errs "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
)

type fakeAuthenticator struct {
	users map[string]*entities.User
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (*entities.User, error) {
	if u, ok := f.users[token]; ok {
		return u, nil
	}
	return nil, errors.ErrUnauthorized
}

// statusResponder traduz os erros conhecidos em status, sem corpo
func statusResponder(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errors.ErrUnauthorized):
		c.AbortWithStatus(http.StatusUnauthorized)
	case errs.Is(err, errors.ErrForbidden), errs.Is(err, errors.ErrUserBanned):
		c.AbortWithStatus(http.StatusForbidden)
	case errs.Is(err, errors.ErrRateLimited):
		c.AbortWithStatus(http.StatusTooManyRequests)
	default:
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := NewAuthMiddleware(&fakeAuthenticator{users: map[string]*entities.User{
		"member": {ID: "u1"},
		"mod":    {ID: "u2", Flags: entities.Flags{ForumModerator: true}},
		"banned": {ID: "u3", IsBanned: true},
	}}, statusResponder)

	whoami := func(c *gin.Context) {
		id := ""
		if u := CurrentUser(c); u != nil {
			id = u.ID
		}
		c.String(http.StatusOK, id)
	}

	r := gin.New()
	r.GET("/private", auth.RequireAuth(), whoami)
	r.GET("/public", auth.OptionalAuth(), whoami)
	r.GET("/moderation", auth.RequireAuth(), auth.RequirePermission(entities.PermissionForumModerate), whoami)
	return r
}

func doRequest(r http.Handler, target, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter()

	t.Run("exige token nas rotas privadas", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/private", "").Code)
	})

	t.Run("aceita token Bearer válido", func(t *testing.T) {
		w := doRequest(r, "/private", "Bearer member")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u1", w.Body.String())
	})

	t.Run("aceita esquema em minúsculas", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, doRequest(r, "/private", "bearer member").Code)
	})

	t.Run("rejeita esquema diferente de Bearer", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/private", "Basic member").Code)
	})

	t.Run("aceita token na query para o WebSocket", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, doRequest(r, "/private?access_token=member", "").Code)
	})

	t.Run("usuário banido recebe 403", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, doRequest(r, "/private", "Bearer banned").Code)
	})

	t.Run("rota pública aceita visitante", func(t *testing.T) {
		w := doRequest(r, "/public", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("rota pública rejeita token inválido", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/public", "Bearer nope").Code)
	})

	t.Run("exige permissão de moderação", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, doRequest(r, "/moderation", "Bearer member").Code)
		assert.Equal(t, http.StatusOK, doRequest(r, "/moderation", "Bearer mod").Code)
	})
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("bloqueia após a rajada e informa Retry-After", func(t *testing.T) {
		limiter := NewRateLimiter(1, 2, statusResponder)
		now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return now }

		r := gin.New()
		r.Use(limiter.Limit())
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		assert.Equal(t, http.StatusNoContent, doRequest(r, "/", "").Code)
		assert.Equal(t, http.StatusNoContent, doRequest(r, "/", "").Code)

		w := doRequest(r, "/", "")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "1", w.Header().Get("Retry-After"))

		now = now.Add(time.Second)
		assert.Equal(t, http.StatusNoContent, doRequest(r, "/", "").Code)
	})

	t.Run("LimitMutations ignora leituras", func(t *testing.T) {
		limiter := NewRateLimiter(1, 1, statusResponder)
		r := gin.New()
		r.Use(limiter.LimitMutations())
		r.Any("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusNoContent, doRequest(r, "/", "").Code)
		}

		post := func() int {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
			return w.Code
		}
		assert.Equal(t, http.StatusNoContent, post())
		assert.Equal(t, http.StatusTooManyRequests, post())
	})

	t.Run("descarta buckets ociosos", func(t *testing.T) {
		limiter := NewRateLimiter(10, 10, statusResponder)
		now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return now }

		ok, _ := limiter.allow("10.0.0.1")
		require.True(t, ok)
		ok, _ = limiter.allow("10.0.0.2")
		require.True(t, ok)
		assert.Equal(t, 2, limiter.size())

		now = now.Add(bucketTTL + 2*sweepInterval)
		ok, _ = limiter.allow("10.0.0.3")
		require.True(t, ok)
		assert.Equal(t, 1, limiter.size())
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	t.Run("gera um ULID quando ausente", func(t *testing.T) {
		w := doRequest(r, "/", "")
		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 26)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("reaproveita o id recebido", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"https://gabriola.example"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("libera origem configurada", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://gabriola.example")
		r.ServeHTTP(w, req)
		assert.Equal(t, "https://gabriola.example", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("bloqueia origem desconhecida", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
