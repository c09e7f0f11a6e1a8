package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/handlers/dto"
	"github.com/gabriola-connects/portal-backend/internal/handlers/middleware"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/i18n"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/metrics"
)

// Handlers agrupa os handlers HTTP da API
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	User      *UserHandler
	Category  *CategoryHandler
	Event     *EventHandler
	Forum     *ForumHandler
	Directory *DirectoryHandler
	Ferry     *FerryHandler
	Alert     *AlertHandler
	Report    *ReportHandler
	Admin     *AdminHandler
	Realtime  *RealtimeHandler
}

// RouterDeps reúne o que o roteador precisa para montar a API
type RouterDeps struct {
	BaseURL     string
	CORSOrigins []string
	Logger      ports.Logger
	I18n        *i18n.Service
	Auth        middleware.Authenticator
	RateLimiter *middleware.RateLimiter
	// Metrics é opcional; sem ele /metrics não é exposto
	Metrics  *metrics.Metrics
	Swagger  bool
	Handlers Handlers
}

// NewRouter monta o engine do gin com middlewares globais e rotas
func NewRouter(deps RouterDeps) *gin.Engine {
	dto.RegisterValidators()

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(gin.Recovery())
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Instrument())
	}

	// Middleware global para adicionar base URL ao contexto
	router.Use(func(c *gin.Context) {
		c.Set("base_url", deps.BaseURL)
		c.Next()
	})

	router.Use(middleware.NewI18nMiddleware(deps.I18n).DetectLanguage())
	router.Use(middleware.CORS(deps.CORSOrigins))

	router.NoRoute(func(c *gin.Context) {
		dto.RespondNotFound(c, "resource.route")
	})

	h := deps.Handlers
	router.GET("/health", h.Health.Health)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	if deps.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := middleware.NewAuthMiddleware(deps.Auth, dto.RespondError)
	requireAuth := auth.RequireAuth()
	optionalAuth := auth.OptionalAuth()

	v1 := router.Group("/api/v1")
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.LimitMutations())
	}
	{
		// Auth
		authGroup := v1.Group("/auth")
		if deps.RateLimiter != nil {
			authGroup.Use(deps.RateLimiter.Limit())
		}
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
			authGroup.GET("/me", requireAuth, h.Auth.Me)
		}

		// Users
		users := v1.Group("/users")
		{
			users.GET("/me", requireAuth, h.User.GetMe)
			users.PATCH("/me", requireAuth, h.User.UpdateMe)
			users.GET("/:id", optionalAuth, h.User.GetUser)
		}

		// Categories
		categories := v1.Group("/categories")
		{
			categories.GET("", optionalAuth, h.Category.List)
			categories.POST("", requireAuth, h.Category.Create)
			categories.PUT("/:id", requireAuth, h.Category.Update)
			categories.DELETE("/:id", requireAuth, h.Category.Delete)
		}

		// Events
		events := v1.Group("/events")
		{
			events.GET("", optionalAuth, h.Event.Calendar)
			events.GET("/pending", requireAuth, auth.RequirePermission(entities.PermissionEventsManage), h.Event.Pending)
			events.GET("/mine", requireAuth, h.Event.Mine)
			events.GET("/:id", optionalAuth, h.Event.Get)
			events.POST("", requireAuth, h.Event.Create)
			events.PUT("/:id", requireAuth, h.Event.Update)
			events.DELETE("/:id", requireAuth, h.Event.Delete)
			events.POST("/:id/approve", requireAuth, h.Event.Approve)
			events.POST("/:id/reject", requireAuth, h.Event.Reject)
			events.POST("/:id/restore", requireAuth, h.Event.Restore)
		}

		// Forum
		forum := v1.Group("/forum")
		{
			threads := forum.Group("/threads")
			threads.GET("", optionalAuth, h.Forum.ListThreads)
			threads.GET("/:id", optionalAuth, h.Forum.GetThread)
			threads.POST("", requireAuth, h.Forum.CreateThread)
			threads.PUT("/:id", requireAuth, h.Forum.EditThread)
			threads.DELETE("/:id", requireAuth, h.Forum.DeleteThread)
			threads.POST("/:id/restore", requireAuth, h.Forum.RestoreThread)
			threads.POST("/:id/replies", requireAuth, h.Forum.Reply)
			threads.POST("/:id/pin", requireAuth, h.Forum.SetPinned)
			threads.POST("/:id/lock", requireAuth, h.Forum.SetLocked)
			threads.POST("/:id/vote", requireAuth, h.Forum.VoteThread)

			replies := forum.Group("/replies")
			replies.PUT("/:id", requireAuth, h.Forum.EditReply)
			replies.DELETE("/:id", requireAuth, h.Forum.DeleteReply)
			replies.POST("/:id/restore", requireAuth, h.Forum.RestoreReply)
			replies.POST("/:id/vote", requireAuth, h.Forum.VoteReply)
		}

		// Directory
		directory := v1.Group("/directory")
		{
			directory.GET("", optionalAuth, h.Directory.List)
			directory.GET("/:slug", optionalAuth, h.Directory.Get)
			directory.POST("", requireAuth, h.Directory.Create)
			directory.PUT("/:slug", requireAuth, h.Directory.Update)
			directory.DELETE("/:slug", requireAuth, h.Directory.Delete)
			directory.POST("/:slug/restore", requireAuth, h.Directory.Restore)
		}

		// Ferry
		ferry := v1.Group("/ferry")
		{
			ferry.GET("", h.Ferry.Route)
			ferry.GET("/:direction/schedule", h.Ferry.DaySchedule)
			ferry.GET("/:direction/next", h.Ferry.NextSailings)
		}

		// Alerts
		alerts := v1.Group("/alerts")
		{
			alerts.GET("", h.Alert.Active)
			alerts.GET("/archived", requireAuth, h.Alert.Archived)
			alerts.POST("", requireAuth, h.Alert.Create)
			alerts.PUT("/:id", requireAuth, h.Alert.Update)
			alerts.DELETE("/:id", requireAuth, h.Alert.Delete)
			alerts.POST("/:id/archive", requireAuth, h.Alert.Archive)
			alerts.POST("/:id/unarchive", requireAuth, h.Alert.Unarchive)
		}

		// Reports
		reports := v1.Group("/reports", requireAuth)
		{
			reports.POST("", h.Report.Create)
			reports.GET("", h.Report.List)
			reports.POST("/:id/resolve", h.Report.Resolve)
		}

		// Admin
		admin := v1.Group("/admin", requireAuth)
		{
			admin.GET("/stats", h.Admin.Stats)

			manage := admin.Group("/users", auth.RequirePermission(entities.PermissionUsersManage))
			manage.GET("", h.User.ListUsers)
			manage.PUT("/:id/flags", h.Admin.SetFlags)
			manage.POST("/:id/ban", h.Admin.Ban)
			manage.POST("/:id/unban", h.Admin.Unban)
			manage.PUT("/:id/residency", h.Admin.SetResidency)
		}

		// Realtime
		v1.GET("/realtime", optionalAuth, h.Realtime.Connect)
	}

	return router
}
