package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aliwaqas-commits/QuickScribe-AI/internal/config"
	"github.com/aliwaqas-commits/QuickScribe-AI/internal/handler"
	"github.com/aliwaqas-commits/QuickScribe-AI/internal/middleware"
	"github.com/aliwaqas-commits/QuickScribe-AI/internal/ratelimit"
	"github.com/aliwaqas-commits/QuickScribe-AI/internal/storage"
	"github.com/aliwaqas-commits/QuickScribe-AI/internal/summarizer"
	"github.com/gin-gonic/gin"
)

type Server struct {
	router     *gin.Engine
	config     *config.Config
	store      *ratelimit.Store
	httpServer *http.Server
	log        *slog.Logger
}

func New(
	cfg *config.Config,
	store *ratelimit.Store,
	sum summarizer.Summarizer,
	postgres *storage.Postgres,
	log *slog.Logger,
) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// The method check answers before any route middleware runs, so a
	// rejected method never touches the counter store.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method Not Allowed"})
	})

	s := &Server{
		router: router,
		config: cfg,
		store:  store,
		log:    log,
	}

	s.setupMiddleware(postgres)
	s.setupRoutes(sum, postgres)

	return s
}

func (s *Server) setupMiddleware(postgres *storage.Postgres) {
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Logger(s.log))

	if postgres != nil {
		requestLogger := middleware.NewRequestLogger(postgres, 1000, s.log)
		s.router.Use(requestLogger.Middleware())
	}
}

func (s *Server) setupRoutes(sum summarizer.Summarizer, postgres *storage.Postgres) {
	systemHandler := handler.NewSystemHandler(postgres)
	s.router.GET("/health", systemHandler.Health)

	summarizeHandler := handler.NewSummarizeHandler(
		sum,
		s.config.SummaryPrompt,
		s.config.MinTextLength,
		s.config.MaxTextLength,
		s.log,
	)
	s.router.POST("/api/summarize",
		middleware.RateLimit(s.store),
		summarizeHandler.Summarize,
	)
}

func (s *Server) Run(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	s.log.Info("Starting summarization gateway",
		"addr", addr,
		"environment", s.config.Environment)

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

func (s *Server) Router() *gin.Engine {
	return s.router
}
