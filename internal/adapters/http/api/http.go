// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/okian/synergy/pkg/logger"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	SolveDependencies
	TraitsDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	solveHandler  *SolveHandler
	traitsHandler *TraitsHandler

	corsOrigins []string
	rateLimit   int
	rateWindow  time.Duration
	logger      logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithCORSOrigins sets the origins allowed to call the API from a browser.
// "*" allows any origin.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// WithRateLimit admits requests per window across all rate-limited routes.
// A non-positive requests value disables the limit.
func WithRateLimit(requests int, window time.Duration) Option {
	return func(s *Server) {
		s.rateLimit = requests
		if window > 0 {
			s.rateWindow = window
		}
	}
}

// WithLogger sets the logger used for request errors.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		rateLimit:     defaultRateLimit,
		rateWindow:    defaultRateWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}
	s.solveHandler = NewSolveHandler(deps, s.logger)
	s.traitsHandler = NewTraitsHandler(deps, s.logger)
	return s
}

// Register attaches all HTTP routes to mux. /healthz is neither rate
// limited nor subject to CORS.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	limit := RateLimitMiddleware(s.rateLimit, s.rateWindow)
	cors := CORSMiddleware(s.corsOrigins)
	wrap := func(h http.HandlerFunc, endpoint string) http.HandlerFunc {
		return MetricsMiddleware(cors(limit(h, endpoint)), endpoint)
	}

	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", wrap(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/traits", wrap(s.traitsHandler.HandleGetTraits, "traits"))
	mux.HandleFunc("/solve/", wrap(s.solveHandler.HandleSolve, "solve"))
	mux.HandleFunc("/", MetricsMiddleware(handleNotFound, "unknown"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps err to its status and logs server-side failures.
func writeFailure(ctx context.Context, l logger.Logger, w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		l.Error(ctx, "request failed", logger.String("code", code), logger.Error(err))
	}
	writeError(w, status, code, err)
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not_found", nil)
}
