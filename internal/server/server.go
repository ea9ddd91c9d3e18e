// Package server provides the HTTP API for skill-gap analysis.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jonathan/hiresense/internal/analysis"
	"github.com/jonathan/hiresense/internal/config"
	"github.com/jonathan/hiresense/internal/db"
	"github.com/jonathan/hiresense/internal/fetch"
	"github.com/jonathan/hiresense/internal/server/middleware"
	"github.com/jonathan/hiresense/internal/server/ratelimit"
	"github.com/jonathan/hiresense/internal/types"
)

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	producer     analysis.Producer
	store        db.Store
	rateLimiter  *ratelimit.Limiter
	jwtService   *JWTService
	aiConfigured bool
	useBrowser   bool

	allowProfileURLs bool
	fetchOptions     *fetch.Options
}

// Config holds server configuration
type Config struct {
	Port               int
	Producer           analysis.Producer
	Store              db.Store           // optional, enables the history endpoints
	JWT                *config.JWTConfig  // optional, enables bearer auth
	RateLimit          *ratelimit.Config  // nil uses ratelimit.LoadConfig
	RateLimitPerMinute int
	AIConfigured       bool
	UseBrowser         bool
	AllowProfileURLs   bool           // accept profile_url on /analyze
	FetchOptions       *fetch.Options // nil uses fetch.DefaultOptions, which refuses private addresses
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Producer == nil {
		return nil, fmt.Errorf("server requires a producer")
	}

	s := &Server{
		producer:     cfg.Producer,
		store:        cfg.Store,
		aiConfigured: cfg.AIConfigured,
		useBrowser:   cfg.UseBrowser,

		allowProfileURLs: cfg.AllowProfileURLs,
		fetchOptions:     cfg.FetchOptions,
	}
	if s.fetchOptions == nil {
		s.fetchOptions = fetch.DefaultOptions()
	}

	rateCfg := cfg.RateLimit
	if rateCfg == nil {
		rateCfg = ratelimit.LoadConfig(cfg.RateLimitPerMinute)
	}
	s.rateLimiter = ratelimit.NewLimiter(rateCfg)

	if cfg.JWT != nil {
		s.jwtService = NewJWTService(cfg.JWT)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // AI analysis can take up to a minute
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler wrapped in the middleware chain
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /analyze", s.protected(http.HandlerFunc(s.handleAnalyze)))
	mux.Handle("GET /analyses", s.protected(http.HandlerFunc(s.handleListAnalyses)))
	mux.Handle("GET /analyses/{id}", s.protected(http.HandlerFunc(s.handleGetAnalysis)))
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withRateLimit(mux, s.withLogging(s.withCORS(mux)))
}

// protected applies bearer auth when a JWT secret is configured
func (s *Server) protected(next http.Handler) http.Handler {
	if s.jwtService == nil {
		return next
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(next)
}

// Start begins listening for requests and blocks until SIGINT/SIGTERM or ctx is done
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting",
			slog.String("addr", s.httpServer.Addr),
			slog.Bool("gemini_configured", s.aiConfigured),
			slog.Bool("store_configured", s.store != nil))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.rateLimiter.Stop()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	s.rateLimiter.Stop()

	slog.Info("server stopped")
	return nil
}

// Close releases background resources without serving
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.String("remote", r.RemoteAddr),
			slog.Duration("duration", time.Since(start)))
	})
}

// unmatchedRoute is the rate limit key shared by requests that match no route
const unmatchedRoute = "(unmatched)"

// routeKey returns the path of the mux pattern r matches, e.g. /analyses/{id}, so that all
// requests to one route share a bucket.
func routeKey(mux *http.ServeMux, r *http.Request) string {
	_, pattern := mux.Handler(r)
	if pattern == "" {
		return unmatchedRoute
	}
	if _, path, ok := strings.Cut(pattern, " "); ok {
		return path
	}
	return pattern
}

// withRateLimit adds rate limiting middleware, keyed by route pattern rather than raw path
func (s *Server) withRateLimit(mux *http.ServeMux, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), routeKey(mux, r), r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// errorResponse writes the failure envelope with the status mapped from err
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	s.jsonResponse(w, HTTPStatus(err), types.Failed(err.Error()))
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds())+1))
	}
	slog.Warn("rate limit exceeded",
		slog.Int("limit", info.Limit),
		slog.Time("reset_at", info.ResetTime))

	s.jsonResponse(w, http.StatusTooManyRequests, types.Failed("Rate limit exceeded. Please try again later."))
}
