// Package api is the HTTP console bridge: it accepts raw command lines over
// HTTP, routes them through the dispatcher, and returns the report text they
// produced. Intended for remote administration tooling that cannot reach the
// server console directly.
package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mattjoyce/herald/internal/log"
	"github.com/mattjoyce/herald/internal/report"
	"github.com/mattjoyce/herald/internal/storage"
)

// Console is the command surface the bridge exposes.
type Console interface {
	Dispatch(line string)
	Commands() []string
}

// AuditReader reads back recent dispatch records. May be nil when auditing
// is disabled.
type AuditReader interface {
	Recent(ctx context.Context, limit int) ([]storage.AuditEntry, error)
}

// Config holds console bridge configuration.
type Config struct {
	Listen string
	// Token is the bearer token protecting the command endpoints. An empty
	// token disables the protected routes entirely.
	Token string
}

// Server is the HTTP console bridge.
type Server struct {
	config    Config
	console   Console
	audit     AuditReader
	recorder  *report.Recorder
	logger    *slog.Logger
	server    *http.Server
	startedAt time.Time

	// mu serializes dispatch-then-drain so concurrent requests cannot
	// interleave their captured output.
	mu sync.Mutex
}

// New creates a console bridge. recorder must be (part of) the sink the
// console reports through; audit may be nil.
func New(config Config, console Console, recorder *report.Recorder, audit AuditReader) *Server {
	return &Server{
		config:    config,
		console:   console,
		audit:     audit,
		recorder:  recorder,
		logger:    log.WithComponent("api"),
		startedAt: time.Now(),
	}
}

// Start runs the HTTP server until ctx is cancelled (blocking).
func (s *Server) Start(ctx context.Context) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         s.config.Listen,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("console bridge starting", "listen", s.config.Listen)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("console bridge shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
}

// setupRoutes configures the HTTP router.
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	// Unauthenticated ops endpoint.
	r.Get("/healthz", s.handleHealthz)

	// Protected console surface.
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Post("/v1/command", s.handleCommand)
		r.Get("/v1/commands", s.handleCommands)
		r.Get("/v1/audit", s.handleAudit)
	})

	return r
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// authMiddleware validates the bearer token from the Authorization header.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractToken(r)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, err.Error())
			return
		}

		if !validateToken(token, s.config.Token) {
			s.writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// validateToken returns true if provided matches configured. An empty
// configured token refuses everything.
func validateToken(provided, configured string) bool {
	if configured == "" || provided == "" {
		return false
	}
	if len(provided) != len(configured) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(configured)) == 1
}

// extractToken pulls the token from an Authorization: Bearer <token> header.
func extractToken(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", errors.New("missing Authorization header")
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", errors.New("invalid Authorization header format")
	}

	token := strings.TrimSpace(auth[len(prefix):])
	if token == "" {
		return "", errors.New("missing token")
	}
	return token, nil
}
