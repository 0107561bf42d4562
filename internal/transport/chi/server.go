package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/unisearch/internal/domain"
	"github.com/kailas-cloud/unisearch/internal/domain/search/mode"
	"github.com/kailas-cloud/unisearch/internal/domain/search/request"
	"github.com/kailas-cloud/unisearch/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/unisearch/internal/logger"
	healthuc "github.com/kailas-cloud/unisearch/internal/usecase/health"
	"github.com/kailas-cloud/unisearch/internal/usecase/querylog"
	searchuc "github.com/kailas-cloud/unisearch/internal/usecase/search"
)

// UserIDHeader carries the caller's user id for query logging.
const UserIDHeader = "X-User-ID"

// Searcher runs searches.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) (result.Response, error)
	Diagnose(ctx context.Context, req *request.Request) (searchuc.Diagnosis, error)
}

// QueryLogger accepts query log events without blocking.
type QueryLogger interface {
	Emit(ev querylog.Event) bool
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the search HTTP API.
type Server struct {
	search        Searcher
	health        *healthuc.Service
	queryLog      QueryLogger
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. queryLog may be nil.
func NewServer(search Searcher, health *healthuc.Service, queryLog QueryLogger, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		search:   search,
		health:   health,
		queryLog: queryLog,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidSortMode, http.StatusBadRequest, codeInvalidSort),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeInvalidQuery),
		sentinelHandler(domain.ErrRetrieval, http.StatusServiceUnavailable, codeIndexUnavailable),
	}
	return s
}

// Search handles GET /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	if s.queryLog != nil {
		s.queryLog.Emit(querylog.Event{
			Query:       req.Query(),
			ResultCount: len(resp.Results),
			UserID:      req.UserID(),
			Sort:        resp.Sort,
		})
	}

	writeJSON(w, http.StatusOK, responseToDTO(resp))
}

// Diagnostics handles GET /api/v1/admin/search/diagnostics.
// Diagnostic searches are never written to the query log.
func (s *Server) Diagnostics(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	d, err := s.search.Diagnose(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, NewDiagnosticsResponse(d))
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

func parseRequest(r *http.Request) (request.Request, error) {
	q := r.URL.Query()

	sortMode, ok := mode.Parse(q.Get("sort"))
	if !ok {
		return request.Request{}, domain.ErrInvalidSortMode
	}

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return request.Request{}, domain.NewValidationError("limit", "must be a non-negative integer")
		}
		limit = n
	}

	req, err := request.New(q.Get("q"), sortMode, limit)
	if err != nil {
		return request.Request{}, err //nolint:wrapcheck // domain validation error
	}
	return req.WithUserID(r.Header.Get(UserIDHeader)), nil
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-facing message without exposing internals.
// Validation errors keep their field detail.
func safeDomainMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	sentinels := []error{
		domain.ErrInvalidSortMode,
		domain.ErrInvalidQuery,
		domain.ErrRetrieval,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}
