package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bizfaq/internal/domain"
	"github.com/kailas-cloud/bizfaq/internal/domain/search/result"
	"github.com/kailas-cloud/bizfaq/internal/logger"
	"github.com/kailas-cloud/bizfaq/internal/table"
	"github.com/kailas-cloud/bizfaq/internal/usecase/corpus"
	healthuc "github.com/kailas-cloud/bizfaq/internal/usecase/health"
	searchuc "github.com/kailas-cloud/bizfaq/internal/usecase/search"
)

// maxParseBody caps the table text accepted by POST /parse.
const maxParseBody = 8 << 20

// Engine exposes the live search service and index lifecycle.
type Engine interface {
	Current() (*searchuc.Service, error)
	Reload(ctx context.Context) (corpus.Stats, error)
	Stats() (corpus.Stats, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the bizfaq HTTP API.
type Server struct {
	engine        Engine
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(engine Engine, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{
		engine: engine,
		health: health,
		logger: logger,
		errorHandlers: []errorHandler{
			sentinelHandler(domain.ErrEmptyInput, http.StatusBadRequest, ErrorResponseCodeEmptyInput),
			sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorResponseCodeInvalidQuery),
			sentinelHandler(domain.ErrEmptyCorpus, http.StatusUnprocessableEntity, ErrorResponseCodeEmptyCorpus),
			sentinelHandler(domain.ErrSourceUnavailable, http.StatusBadGateway, ErrorResponseCodeSourceUnavailable),
			sentinelHandler(domain.ErrIndexNotReady, http.StatusServiceUnavailable, ErrorResponseCodeIndexNotReady),
		},
	}
}

// Register mounts every route on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Post("/query", s.Query)
	r.Get("/search", s.Search)
	r.Post("/parse", s.Parse)
	r.Post("/reload", s.Reload)
	r.Get("/stats", s.Stats)
}

// Query handles POST /query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	svc, err := s.engine.Current()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	answer, hits, err := svc.Query(r.Context(), req.Query, derefInt(req.K))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if answer.IsFallback() {
		logger.FromContext(r.Context()).Info("unanswered query", zap.String("query", req.Query))
	}

	writeJSON(w, http.StatusOK, QueryResponse{
		Answer:  answer.Text,
		Sources: answer.Sources,
		Matched: !answer.IsFallback(),
		Hits:    hitsToResponse(hits),
	})
}

// Search handles GET /search?q=&k=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var (
		q string
		k int
	)
	if err := runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, fmt.Sprintf("Invalid parameter q: %s", err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "k", r.URL.Query(), &k); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, fmt.Sprintf("Invalid parameter k: %s", err))
		return
	}

	svc, err := s.engine.Current()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	hits, err := svc.Search(r.Context(), q, k)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{Query: q, Hits: hitsToResponse(hits), Count: len(hits)})
}

// Parse handles POST /parse. The body is raw table text.
func (s *Server) Parse(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxParseBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	records, err := table.Parse(string(body))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ParseResponse{Records: records, Count: len(records)})
}

// Reload handles POST /reload.
func (s *Server) Reload(w http.ResponseWriter, r *http.Request) {
	stats, err := s.engine.Reload(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	logger.FromContext(r.Context()).Info("index reloaded",
		zap.String("build_id", stats.BuildID),
		zap.Int("documents", stats.Documents),
	)
	writeJSON(w, http.StatusOK, ReloadResponse{
		BuildID:   stats.BuildID,
		Documents: stats.Documents,
		Terms:     stats.Terms,
	})
}

// Stats handles GET /stats.
func (s *Server) Stats(w http.ResponseWriter, _ *http.Request) {
	stats, err := s.engine.Stats()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyInput,
		domain.ErrInvalidQuery,
		domain.ErrEmptyCorpus,
		domain.ErrSourceUnavailable,
		domain.ErrIndexNotReady,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func hitsToResponse(hits []result.Hit) []HitResponse {
	out := make([]HitResponse, len(hits))
	for i := range hits {
		h := &hits[i]
		out[i] = HitResponse{
			ID:    h.Document().ID(),
			Kind:  string(h.Document().Kind()),
			Label: h.SourceLabel(),
			Score: h.Score(),
		}
	}
	return out
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
