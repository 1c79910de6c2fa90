// Package api exposes the optimizer over HTTP. Each request runs the
// orchestrator once; nothing is kept between requests.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"adsopt/adapters/excel"
	"adsopt/internal/logging"
	"adsopt/internal/orchestrator"
	"adsopt/internal/strategies"
)

// Server represents the HTTP server for the optimizer
type Server struct {
	router       *gin.Engine
	config       ServerConfig
	reader       *excel.DataReader
	writer       *excel.Writer
	excelConfig  excel.ExcelConfig
	orchestrator *orchestrator.Orchestrator
	options      strategies.Options
	runs         *semaphore.Weighted
	logger       *logging.Logger
	httpServer   *http.Server
}

// Dependencies groups what the server needs to run an optimization
type Dependencies struct {
	Reader       *excel.DataReader
	Writer       *excel.Writer
	ExcelConfig  excel.ExcelConfig
	Orchestrator *orchestrator.Orchestrator
	Options      strategies.Options
	Logger       *logging.Logger
}

// NewServer creates a server with its routes registered
func NewServer(config ServerConfig, deps Dependencies) *Server {
	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}
	if config.MaxConcurrentRuns <= 0 {
		config.MaxConcurrentRuns = 1
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	s := &Server{
		router:       gin.New(),
		config:       config,
		reader:       deps.Reader,
		writer:       deps.Writer,
		excelConfig:  deps.ExcelConfig,
		orchestrator: deps.Orchestrator,
		options:      deps.Options,
		runs:         semaphore.NewWeighted(config.MaxConcurrentRuns),
		logger:       logger,
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.GET("/strategies", s.handleStrategies)
		api.GET("/template/asins", s.handleTemplate)
		api.POST("/optimize", s.handleOptimize)
	}
}

// Handler returns the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("[Server] listening on %s", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight runs
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("[API] %s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}
