// Package server exposes prompt building, feedback generation and reply
// parsing over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pomelo-edu/pomelo/internal/feedback"
)

// shutdownGrace bounds how long in-flight requests may run after shutdown
// begins.
const shutdownGrace = 10 * time.Second

// Options configures a Server.
type Options struct {
	// AllowedOrigins lists the browser origins allowed to call the API.
	// Empty disables CORS headers.
	AllowedOrigins []string
	Logger         *zap.Logger
}

// Server serves the HTTP API. A nil feedback service makes generation
// endpoints answer 503 while offline endpoints keep working.
type Server struct {
	engine  *gin.Engine
	svc     *feedback.Service
	schemas *bodySchemas
	logger  *zap.Logger
}

// New builds a Server and its routes.
func New(svc *feedback.Service, opts Options) (*Server, error) {
	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		engine:  gin.New(),
		svc:     svc,
		schemas: schemas,
		logger:  logger,
	}

	s.engine.Use(gin.Recovery(), accessLog(logger))
	if len(opts.AllowedOrigins) > 0 {
		s.engine.Use(cors.New(cors.Config{
			AllowOrigins:  opts.AllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api")
	{
		api.GET("/options", s.handleOptions)
		api.POST("/prompt", s.handlePrompt)
		api.POST("/feedback", s.handleFeedback)
		api.POST("/parse", s.handleParse)
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("http server listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		s.logger.Info("http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}
