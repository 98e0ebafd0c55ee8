package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/sirupsen/logrus"
)

// Server is the account and form API.
type Server struct {
	db          *db.DB
	rateLimiter *ratelimit.Limiter
	sessions    *sessions
	authHandler *AuthHandler
	jwtService  *JWTService
	pdf         rendering.PDFRenderer
	validator   *validator.Validate
	log         *logrus.Entry
	handler     http.Handler
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	ATSEndpoint string
	ChromePath  string
}

// Deps are the collaborators of a Server.
type Deps struct {
	DB        DBClient
	Passwords *config.PasswordConfig
	JWT       *JWTService
	PDF       rendering.PDFRenderer
	Analyzers AnalyzerFactory
	RateLimit *ratelimit.Config
	// SessionIdleTimeout defaults to DefaultSessionIdleTimeout.
	SessionIdleTimeout time.Duration
}

// New connects to the database and builds a server from the environment's auth configuration.
func New(ctx context.Context, cfg Config) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := NewWithDeps(Deps{
		DB:        database,
		Passwords: passwordConfig,
		JWT:       NewJWTService(jwtConfig),
		PDF:       rendering.NewChromeRenderer(cfg.ChromePath),
		Analyzers: func(store storage.Store) ats.Analyzer {
			return ats.NewClient(cfg.ATSEndpoint, store)
		},
		RateLimit: ratelimit.LoadConfig(),
	})
	s.db = database
	return s, nil
}

// NewWithDeps builds a server around the given collaborators.
func NewWithDeps(d Deps) *Server {
	userService := NewUserService(d.DB, d.Passwords)
	s := &Server{
		rateLimiter: ratelimit.NewLimiter(d.RateLimit),
		sessions:    newSessions(d.DB.StoreFor, d.Analyzers, d.SessionIdleTimeout),
		authHandler: NewAuthHandler(userService, d.JWT),
		jwtService:  d.JWT,
		pdf:         d.PDF,
		validator:   validator.New(),
		log:         observability.Logger().WithField("component", "server"),
	}
	s.handler = withRateLimit(s.rateLimiter, withLogging(s.log, withCORS(s.routes())))
	return s
}

func (s *Server) routes() *http.ServeMux {
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	protect := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handleHealth)

	mux.HandleFunc("POST /v1/auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", s.authHandler.Login)
	mux.Handle("GET /v1/auth/me", protect(s.authHandler.Me))

	mux.Handle("GET /v1/resume", protect(s.handleGetResume))
	mux.Handle("PUT /v1/resume", protect(s.handleReplaceResume))
	mux.Handle("DELETE /v1/resume", protect(s.handleResetResume))
	mux.Handle("PUT /v1/resume/fields/{field}", protect(s.handleSetField))
	mux.Handle("PUT /v1/resume/skills/{type}", protect(s.handleSetSkills))
	mux.Handle("POST /v1/resume/{collection}", protect(s.handleAddEntry))
	mux.Handle("PUT /v1/resume/{collection}/{index}/{field}", protect(s.handleSetEntryField))
	mux.Handle("PUT /v1/resume/projects/{index}/tech-stack", protect(s.handleSetTechStack))
	mux.Handle("DELETE /v1/resume/{collection}/{index}", protect(s.handleRemoveEntry))
	mux.Handle("GET /v1/resume/pdf", protect(s.handlePDF))
	mux.Handle("POST /v1/resume/analyze", protect(s.handleAnalyze))
	mux.Handle("GET /v1/resume/analysis", protect(s.handleGetAnalysis))
	return mux
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves on port until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, port int) error {
	defer s.Close()
	return Serve(ctx, newHTTPServer(port, s.handler), s.log)
}

// Close releases the rate limiter and the database pool.
func (s *Server) Close() {
	s.rateLimiter.Stop()
	s.sessions.Stop()
	if s.db != nil {
		s.db.Close()
	}
}

// StartScoring serves the ATS scoring service on port until ctx is cancelled.
func StartScoring(ctx context.Context, port int, scorer ResumeScorer) error {
	log := observability.Logger().WithField("component", "scoring")
	limiter := ratelimit.NewLimiter(ratelimit.LoadConfig())
	defer limiter.Stop()

	handler := withRateLimit(limiter, withLogging(log, withCORS(NewScoring(scorer))))
	return Serve(ctx, newHTTPServer(port, handler), log)
}

func newHTTPServer(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute, // model calls and PDF printing are slow
		IdleTimeout:  60 * time.Second,
	}
}

// Serve runs srv until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server, log *logrus.Entry) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func withLogging(log *logrus.Entry, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"remote":   r.RemoteAddr,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

// withRateLimit adds rate limiting middleware
func withRateLimit(limiter *ratelimit.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := limiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID returns the client IP from RemoteAddr.
func extractClientID(r *http.Request) string {
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

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}
	jsonResponse(w, http.StatusTooManyRequests, response)
}

// handleHealth returns server health status
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		observability.Logger().WithError(err).Warn("error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}
