// Package server provides the HTTP API for resume and job posting extraction.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonathan/resume-tailor/internal/db"
	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/parsing"
	"github.com/jonathan/resume-tailor/internal/scraping"
	"github.com/jonathan/resume-tailor/internal/server/middleware"
	"github.com/jonathan/resume-tailor/internal/server/ratelimit"
	"github.com/jonathan/resume-tailor/internal/vocab"
	"github.com/rs/zerolog"
)

// ExtractionStore persists extraction results. *db.DB implements it.
type ExtractionStore interface {
	SaveExtraction(ctx context.Context, input *db.ExtractionInput) (*db.Extraction, error)
	ListExtractions(ctx context.Context, opts db.ListOptions) ([]db.Extraction, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	handler    http.Handler

	resumes     *parsing.ResumeExtractor
	jobs        *scraping.Extractor
	scraper     *scraping.Scraper
	browser     *scraping.Scraper // nil unless browser rendering is enabled
	llmClient   llm.Client        // nil unless LLM extraction is configured
	store       ExtractionStore   // nil disables history
	rateLimiter *ratelimit.Limiter
	logger      zerolog.Logger

	closers []func()
}

// Config holds server configuration
type Config struct {
	Port          int
	DatabaseURL   string  // history is stored when set
	APIKey        string  // enables LLM extraction when set
	RateLimit     float64 // requests per second per client
	RateBurst     int
	ScrapeTimeout time.Duration
	UseBrowser    bool
	Vocabulary    *vocab.Vocabulary

	// Injected dependencies take precedence over DatabaseURL and APIKey.
	Store      ExtractionStore
	LLM        llm.Client
	HTTPClient *http.Client
	Renderer   fetch.Renderer
	Logger     *zerolog.Logger
}

// New creates a new server instance
func New(ctx context.Context, cfg Config) (*Server, error) {
	s := &Server{
		resumes:   parsing.NewResumeExtractor(cfg.Vocabulary),
		jobs:      scraping.NewExtractor(cfg.Vocabulary),
		store:     cfg.Store,
		llmClient: cfg.LLM,
		logger:    zerolog.Nop(),
	}
	if cfg.Logger != nil {
		s.logger = *cfg.Logger
	}

	if s.store == nil && cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, err
		}
		s.store = database
		s.closers = append(s.closers, database.Close)
	}

	if s.llmClient == nil && cfg.APIKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		s.llmClient = client
		s.closers = append(s.closers, func() { _ = client.Close() })
	}

	scrapeOpts := []scraping.Option{scraping.WithVocabulary(cfg.Vocabulary)}
	if cfg.ScrapeTimeout > 0 {
		scrapeOpts = append(scrapeOpts, scraping.WithTimeout(cfg.ScrapeTimeout))
	}
	if cfg.HTTPClient != nil {
		scrapeOpts = append(scrapeOpts, scraping.WithHTTPClient(cfg.HTTPClient))
	}
	s.scraper = scraping.NewScraper(scrapeOpts...)
	if cfg.UseBrowser {
		renderer := cfg.Renderer
		if renderer == nil {
			renderer = fetch.NewBrowserRenderer()
		}
		s.browser = scraping.NewScraper(append(scrapeOpts, scraping.WithRenderer(renderer))...)
	}

	rps, burst := cfg.RateLimit, cfg.RateBurst
	if rps <= 0 {
		rps = ratelimit.DefaultRate
	}
	if burst <= 0 {
		burst = ratelimit.DefaultBurst
	}
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig(rps, burst))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /resume/extract", s.handleExtractResume)
	mux.HandleFunc("POST /jobs/scrape", s.handleScrapeJob)
	mux.HandleFunc("POST /jobs/extract", s.handleExtractJob)
	mux.HandleFunc("GET /jobs/validate-url", s.handleValidateURL)
	mux.HandleFunc("GET /extractions", s.handleListExtractions)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.handler = middleware.RequestID(s.logger)(
		middleware.AccessLog(s.withRateLimit(s.withCORS(mux))),
	)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // browser renders and model calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens for requests until ctx is cancelled or the process receives
// SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.Close()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("server stopped")
	return nil
}

// Close stops the rate limiter and releases the database and model clients
// the server opened itself.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects requests over the per-client limit with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)

		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"history": s.store != nil,
		"llm":     s.llmClient != nil,
		"browser": s.browser != nil,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps err to a status code and writes it. Internal errors are
// logged and their details withheld from the client.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg("request failed")
	}
	if status == http.StatusInternalServerError {
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID uses the IP address from RemoteAddr. X-Forwarded-For is
// ignored because the server is not deployed behind a trusted proxy.
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
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := max(int(info.RetryAfter.Round(time.Second).Seconds()), 1)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	zerolog.Ctx(r.Context()).Warn().
		Str("client", extractClientID(r)).
		Int("limit", info.Limit).
		Msg("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
