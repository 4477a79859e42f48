package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/dhima/event-records/internal/api/handlers"
	"github.com/dhima/event-records/internal/api/middleware"
	"github.com/dhima/event-records/internal/auth"
	"github.com/dhima/event-records/internal/events"
	"github.com/dhima/event-records/internal/logging"
	"github.com/dhima/event-records/internal/storage"
	"github.com/dhima/event-records/internal/validation"
	"github.com/dhima/event-records/pkg/config"
	platformEvents "github.com/dhima/event-records/platform/events"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// changeFeed is the publisher the server owns and must close on shutdown.
type changeFeed interface {
	events.ChangePublisher
	Close() error
}

// Server orchestrates HTTP routing and dependencies for the API service.
type Server struct {
	config    config.App
	logger    logging.Logger
	router    *gin.Engine
	db        *sql.DB
	publisher changeFeed
}

// routerDeps are the collaborators the routes dispatch to.
type routerDeps struct {
	events   handlers.EventService
	stats    handlers.StatsProvider
	verifier auth.Verifier
}

// NewServer wires the API dependencies together.
func NewServer(ctx context.Context, cfg config.App) (*Server, error) {
	logger, err := logging.New(logging.Options{
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.OIDCIssuerURL == "" {
		return nil, errors.New("OIDC_ISSUER_URL is required")
	}

	db, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	verifier, err := auth.NewOIDCVerifier(ctx, cfg.OIDCIssuerURL, cfg.OIDCClientID)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var publisher changeFeed = platformEvents.NopPublisher{}
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		publisher = platformEvents.NewPublisher(brokers, cfg.KafkaTopic, logger.Zap())
	} else {
		logger.Warn("no kafka brokers configured, change feed disabled")
	}

	store := storage.NewMySQLClient(db)
	service := events.NewService(store, validation.MustEventSchema(), publisher, logger)

	server := &Server{
		config:    cfg,
		logger:    logger,
		db:        db,
		publisher: publisher,
	}
	server.router = newRouter(cfg, logger, routerDeps{
		events:   service,
		stats:    store,
		verifier: verifier,
	})
	return server, nil
}

// newRouter configures the Gin router with middleware and routes.
func newRouter(cfg config.App, logger logging.Logger, deps routerDeps) *gin.Engine {
	router := gin.New()
	zapLogger := logger.Zap()

	// Order matters: recovery wraps everything, the request id must exist before the access log.
	router.Use(ginzap.RecoveryWithZap(zapLogger, true))
	router.Use(middleware.RequestID())
	router.Use(ginzap.GinzapWithConfig(zapLogger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/health"},
		Context: func(c *gin.Context) []zap.Field {
			return []zap.Field{zap.String("request_id", middleware.GetRequestID(c))}
		},
	}))
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	router.Use(middleware.Identity(deps.verifier, logger))

	router.GET("/health", handlers.NewHealthHandler().Health)
	router.GET("/metrics", handlers.NewMetricsHandler(logger, deps.stats).Metrics)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		eventHandler := handlers.NewEventHandler(logger, deps.events)
		owned := v1.Group("/events")
		{
			owned.POST("", eventHandler.CreateEvent)
			owned.GET("", eventHandler.ListEvents)
			owned.DELETE("/:id", eventHandler.DeleteEvent)
		}

		v1.GET("/users/:username/events/:id", eventHandler.GetEventDetails)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") || len(origins) == 0 {
		// Credentials cannot be combined with a wildcard origin.
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// Serve starts the HTTP server with graceful shutdown support.
func (s *Server) Serve() error {
	addr := ":" + s.config.APIPort
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		s.logger.Info("starting API server",
			zap.String("address", addr),
			zap.String("environment", s.config.Environment),
			zap.String("log_level", s.config.LogLevel),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-quit
	s.logger.Info("shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}

	if err := s.publisher.Close(); err != nil {
		s.logger.Error("failed to close change feed publisher", zap.Error(err))
	}
	if err := s.db.Close(); err != nil {
		s.logger.Error("failed to close database connection", zap.Error(err))
	}

	s.logger.Info("server stopped")

	// Sync on a terminal returns EINVAL; nothing is lost.
	if err := s.logger.Sync(); err != nil && !errors.Is(err, syscall.EINVAL) && !errors.Is(err, syscall.ENOTTY) {
		return err
	}
	return nil
}
