package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ecpass/domain/core"
	"ecpass/internal"
	"ecpass/internal/config"
	"ecpass/ports"

	"github.com/gin-gonic/gin"
)

const (
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"
	shutdownTimeout = 5 * time.Second
)

// Server is the local HTTP front end
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *internal.Logger
}

// NewServer wires routes and middleware
func NewServer(cfg *config.Config, logger *internal.Logger, observer ports.PipelineObserver) *Server {
	s := &Server{
		router: gin.New(),
		cfg:    cfg,
		logger: logger,
	}
	s.router.Use(gin.Recovery(), requestID(), s.accessLog())
	s.setupRoutes(NewPasswordHandler(cfg.Generator, observer))
	return s
}

func (s *Server) setupRoutes(h *PasswordHandler) {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	api.GET("/formulas", h.ListFormulas)
	api.POST("/passwords", h.Generate)
	api.POST("/passwords/quality", h.Quality)
	api.POST("/passwords/batch", h.Batch)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on the configured port until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Server.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := core.NewRequestID().String()
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// accessLog records method, route and status; request bodies are never logged
func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("%s %s %d %s request_id=%s",
			c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start), c.GetString(requestIDKey))
	}
}
