// Package server exposes the translation pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/valpere/perevod/internal/detector"
	"github.com/valpere/perevod/internal/pipeline"
	"github.com/valpere/perevod/internal/validator"
)

const shutdownTimeout = 10 * time.Second

// Translator is satisfied by *pipeline.Pipeline.
type Translator interface {
	Translate(ctx context.Context, req pipeline.Request) (string, error)
}

type Server struct {
	engine     *gin.Engine
	translator Translator
	detector   *detector.Detector
	validator  *validator.Validator
	logger     *zap.Logger
}

type Option func(*Server)

// WithDetector enables "source": "auto".
func WithDetector(d *detector.Detector) Option { return func(s *Server) { s.detector = d } }

// WithValidator adds a warning to responses whose text is not in the target language.
func WithValidator(v *validator.Validator) Option { return func(s *Server) { s.validator = v } }

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(t Translator, opts ...Option) *Server {
	s := &Server{
		translator: t,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("component", "server"))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(AccessLog(s.logger))

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/translate", s.handleTranslate)
	}

	s.engine = r
	return s
}

// Handler returns the routed gin engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
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
