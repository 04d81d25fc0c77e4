package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "cadastro/docs"
	"cadastro/internal/cache"
	"cadastro/internal/config"
	"cadastro/internal/database"
	"cadastro/internal/handlers"
	"cadastro/internal/logger"
	"cadastro/internal/middleware"
	"cadastro/internal/pdf"
	"cadastro/internal/repositories"
	"cadastro/internal/routes"
	"cadastro/internal/services"
	"cadastro/internal/utils"
	"cadastro/internal/validation"
)

const shutdownTimeout = 30 * time.Second

// Run loads the configuration, wires every component and serves HTTP until
// SIGINT or SIGTERM.
func Run(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logging)
	log.WithField("env", cfg.Server.Env).Info("starting client registry API")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// === DB ===
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Warn("close database")
		}
	}()
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info("database migrations applied")
	}

	// === Redis (optional) ===
	redisCache, err := cache.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, CEP lookups will not be cached")
		redisCache = nil
	}
	if redisCache != nil {
		defer redisCache.Close()
	}

	router, err := NewRouter(cfg, db, redisCache, log)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// NewRouter builds the gin engine with all routes mounted. redisCache may be
// nil.
func NewRouter(cfg *config.Config, db *sqlx.DB, redisCache *cache.Redis, log *logrus.Logger) (*gin.Engine, error) {
	ttl, err := cfg.TokenTTL()
	if err != nil {
		return nil, err
	}

	// === Repos ===
	clientRepo := repositories.NewClientRepository(db)

	// === Services ===
	tokenService := services.NewTokenService(cfg.JWT.Secret, ttl)
	authService := services.NewAuthService(services.AdminCredentials{
		Username:     cfg.Admin.Username,
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
	}, tokenService, log)

	emailService := services.NewEmailService(cfg.Email, log)
	if emailService.DryRun() {
		log.Info("SMTP host not configured, welcome emails are only logged")
	}
	clientService := services.NewClientService(clientRepo, emailService, log)

	viaCEP := utils.NewViaCEPClient(cfg.ViaCEP.BaseURL, cfg.ViaCEP.Timeout)
	var cepCache services.CEPCache
	if redisCache != nil {
		cepCache = redisCache
	}
	cepService := services.NewCEPService(viaCEP, cepCache, cfg.Redis.CEPTTL, log)

	pdfGen := pdf.NewClientListGenerator(cfg.PDF.FontPath)
	validator := validation.New()

	// === Handlers ===
	checks := map[string]handlers.Pinger{
		"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
	}
	if redisCache != nil {
		checks["redis"] = redisCache.HealthCheck
	}
	h := routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService, validator, log),
		Health:  handlers.NewHealthHandler(),
		Ready:   handlers.NewReadyHandler(checks),
		Client:  handlers.NewClientHandler(clientService, validator, pdfGen, log),
		Address: handlers.NewAddressHandler(cepService, log),
	}

	// === Gin ===
	router := gin.New()
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	router.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, h, authService)
	return router, nil
}
