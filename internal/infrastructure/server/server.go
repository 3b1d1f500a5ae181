package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/eslsoft/tutorpad/internal/infrastructure/config"
	"github.com/eslsoft/tutorpad/internal/usecase/writing"
)

// Server represents the application server
type Server struct {
	config     *config.Config
	httpServer *http.Server
	timer      *writing.Timer
	logger     *logrus.Logger
	tick       time.Duration
}

// NewServer wraps the router with CORS and request logging.
func NewServer(cfg *config.Config, logger *logrus.Logger, router *mux.Router, timer *writing.Timer) *Server {
	router.Use(RequestLogger(logger))

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
	})

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.HTTPAddress(),
			Handler:           c.Handler(router),
			ReadHeaderTimeout: 10 * time.Second,
		},
		timer:  timer,
		logger: logger,
		tick:   time.Second,
	}
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Run serves HTTP and drives the writing timer until ctx ends, then shuts
// down within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Infof("HTTP server starting on %s", lis.Addr())
		if err := s.httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve HTTP: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(s.tick)
		defer ticker.Stop()
		if err := s.timer.Run(gctx, ticker.C); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown()
	})

	return g.Wait()
}

func (s *Server) shutdown() error {
	s.logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Errorf("Failed to shutdown HTTP server: %v", err)
		return err
	}
	s.logger.Info("Server shutdown complete")
	return nil
}
