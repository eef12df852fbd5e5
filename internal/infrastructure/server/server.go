// Package server assembles the backend: configuration, logging,
// metrics, the notebook library, session management, and the HTTP and
// WebSocket surfaces.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/notekit/cellview/internal/api/http"
	"github.com/notekit/cellview/internal/api/middleware"
	"github.com/notekit/cellview/internal/api/ws"
	"github.com/notekit/cellview/internal/domain/extension"
	"github.com/notekit/cellview/internal/domain/library"
	"github.com/notekit/cellview/internal/domain/session"
	"github.com/notekit/cellview/internal/domain/widget"
	"github.com/notekit/cellview/internal/infrastructure/config"
	"github.com/notekit/cellview/internal/infrastructure/logging"
	"github.com/notekit/cellview/internal/infrastructure/monitoring"
)

// Server wraps the HTTP server and its dependencies
type Server struct {
	router   *gin.Engine
	sessions *session.Manager
	library  *library.Manager
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		l, err := logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			OutputPaths: []string{"stdout"},
		})
		if err != nil {
			return nil, err
		}
		logger = l
	}

	logger.Info("Initializing cellview backend",
		zap.String("port", cfg.Server.Port),
		zap.String("library_dir", cfg.Library.Dir),
	)

	metrics := monitoring.NewMetrics()

	lib := library.NewManager(cfg.Library.Dir, cfg.Library.Pattern, logger)
	if err := lib.Load(); err != nil {
		return nil, err
	}
	metrics.SetLibraryNotebooks(lib.Count())

	// Each session gets its own runner bound to that session's widgets
	factory := func(widgets *widget.Registry) *extension.Runner {
		runner := extension.NewRunner(logger).WithMetrics(metrics)
		runner.Register(extension.NewHeightConstraint(widgets))
		return runner
	}
	sessions := session.NewManager(factory, logger).WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS())
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}

	handlers := apihttp.NewHandlers(sessions, lib).WithMetrics(metrics)
	wsHandler := ws.NewHandler(sessions, lib, logger).WithMetrics(metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Notebook library
	router.GET("/notebooks", handlers.ListNotebooks)
	router.GET("/notebooks/:id", handlers.GetNotebook)
	router.POST("/notebooks/reload", handlers.ReloadLibrary)

	// Document sessions
	router.POST("/sessions", handlers.OpenSession)
	router.GET("/sessions", handlers.ListSessions)
	router.GET("/sessions/:id", handlers.GetSession)
	router.GET("/sessions/:id/cells", handlers.GetCells)
	router.POST("/sessions/:id/passes", handlers.RunPasses)
	router.GET("/sessions/:id/widgets", handlers.WidgetStates)
	router.DELETE("/sessions/:id", handlers.CloseSession)

	// WebSocket bridge
	router.GET("/stream", wsHandler.HandleConnection)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Info("Server initialized",
		zap.Int("notebooks", lib.Count()),
	)

	return &Server{
		router:   router,
		sessions: sessions,
		library:  lib,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")
	return s.logger.Sync()
}
