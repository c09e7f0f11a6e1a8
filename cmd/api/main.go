package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/gabriola-connects/portal-backend/docs"
	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/handlers/dto"
	httphandlers "github.com/gabriola-connects/portal-backend/internal/handlers/http"
	"github.com/gabriola-connects/portal-backend/internal/handlers/middleware"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/config"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/i18n"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/logging"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/metrics"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/persistence/postgres"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/realtime"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/security"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/seed"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

// devJWTSecret só é usado fora de produção quando JWT_SECRET não está definido
const devJWTSecret = "gabriola-dev-secret"

// main sobe a API do portal
//
//	@title						Gabriola Connects API
//	@version					1.0
//	@description				Community portal for Gabriola Island: events, forum, directory, ferry schedule and alerts.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting gabriola connects backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, cfg.Logging.Level, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}
	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(db); err != nil {
			logger.Error("failed to migrate database", "error", err)
			log.Fatal(err)
		}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewService(cfg.I18n.LocalesDir, cfg.I18n.DefaultLanguage)
	if err != nil {
		logger.Warn("locales directory unavailable, using embedded locales", "dir", cfg.I18n.LocalesDir, "error", err)
		i18nService, err = i18n.NewEmbeddedService(cfg.I18n.DefaultLanguage)
		if err != nil {
			logger.Error("failed to initialize i18n", "error", err)
			log.Fatal(err)
		}
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Dados estáticos
	timetable, err := seed.Timetable()
	if err != nil {
		logger.Error("failed to load ferry timetable", "error", err)
		log.Fatal(err)
	}
	fallbackListings, err := seed.Businesses()
	if err != nil {
		logger.Error("failed to load fallback listings", "error", err)
		log.Fatal(err)
	}

	// Infraestrutura
	clock := ports.SystemClock{}
	appMetrics := metrics.New()
	hub := realtime.NewHub(logger, appMetrics, cfg.CORS.CORSOrigins())

	secret := cfg.JWT.Secret
	if secret == "" {
		logger.Warn("JWT_SECRET not set, using development secret")
		secret = devJWTSecret
	}
	tokens, err := security.NewJWTIssuer(secret, cfg.JWT.Issuer, cfg.JWT.AccessExpiry, clock)
	if err != nil {
		logger.Error("failed to initialize token issuer", "error", err)
		log.Fatal(err)
	}
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	forumRepo := postgres.NewForumRepository(db)
	businessRepo := postgres.NewBusinessRepository(db)
	alertRepo := postgres.NewAlertRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Inicializar services
	prefixes := cfg.Community.ResidentPostalPrefixes
	authService := services.NewAuthService(userRepo, hasher, tokens, hub, clock, prefixes, logger)
	userService := services.NewUserService(userRepo, clock, prefixes, logger)
	categoryService := services.NewCategoryService(categoryRepo, clock, logger)
	eventService := services.NewEventService(eventRepo, categoryService, clock, logger)
	forumService := services.NewForumService(forumRepo, categoryService, uow, clock, logger)
	directoryService := services.NewDirectoryService(businessRepo, categoryService, fallbackListings, clock, logger)
	ferryService := services.NewFerryService(timetable, cfg.Community.Timezone, clock)
	alertService := services.NewAlertService(alertRepo, hub, clock, logger)
	reportService := services.NewReportService(services.ReportRepositories{
		Reports:    reportRepo,
		Forum:      forumRepo,
		Events:     eventRepo,
		Businesses: businessRepo,
		Users:      userRepo,
	}, uow, hub, clock, logger)
	adminService := services.NewAdminService(services.AdminRepositories{
		Users:      userRepo,
		Events:     eventRepo,
		Reports:    reportRepo,
		Alerts:     alertRepo,
		Forum:      forumRepo,
		Businesses: businessRepo,
	}, hub, hub, clock, prefixes, logger)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httphandlers.NewRouter(httphandlers.RouterDeps{
		BaseURL:     cfg.Server.BaseURL,
		CORSOrigins: cfg.CORS.CORSOrigins(),
		Logger:      logger,
		I18n:        i18nService,
		Auth:        authService,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, dto.RespondError),
		Metrics:     appMetrics,
		Swagger:     !cfg.IsProduction(),
		Handlers: httphandlers.Handlers{
			Health:    httphandlers.NewHealthHandler(postgres.NewHealthChecker(sqlDB), cfg.Env),
			Auth:      httphandlers.NewAuthHandler(authService),
			User:      httphandlers.NewUserHandler(userService),
			Category:  httphandlers.NewCategoryHandler(categoryService),
			Event:     httphandlers.NewEventHandler(eventService, cfg.Community.Timezone),
			Forum:     httphandlers.NewForumHandler(forumService),
			Directory: httphandlers.NewDirectoryHandler(directoryService),
			Ferry:     httphandlers.NewFerryHandler(ferryService),
			Alert:     httphandlers.NewAlertHandler(alertService),
			Report:    httphandlers.NewReportHandler(reportService),
			Admin:     httphandlers.NewAdminHandler(adminService),
			Realtime:  httphandlers.NewRealtimeHandler(hub, realtime.ErrHubClosed),
		},
	})

	// Tarefas em segundo plano
	ctx, stop := context.WithCancel(context.Background())
	var background sync.WaitGroup
	background.Add(2)
	go func() {
		defer background.Done()
		hub.Run(ctx)
	}()
	go func() {
		defer background.Done()
		services.NewAlertSweeper(alertService, cfg.Community.AlertSweepInterval, appMetrics, logger).Run(ctx)
	}()

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// o hub fecha as conexões WebSocket, que o Shutdown não acompanha
	stop()
	background.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}

	logger.Info("server exited")
}
