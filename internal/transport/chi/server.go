// Package chi implements the HTTP transport for the string analyzer.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stringdex/internal/domain"
	healthuc "github.com/kailas-cloud/stringdex/internal/usecase/health"
	recorduc "github.com/kailas-cloud/stringdex/internal/usecase/record"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the record and health use cases over HTTP.
type Server struct {
	records       *recorduc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(records *recorduc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		records: records,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		unrecognizedQueryHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
	}
	return s
}

// Register wires the API routes onto r.
func (s *Server) Register(r chi.Router) {
	r.Post("/strings", s.CreateString)
	r.Get("/strings", s.ListStrings)
	r.Get("/strings/filter-by-natural-language", s.FilterByNaturalLanguage)
	r.Get("/strings/{value}", s.GetString)
	r.Delete("/strings/{value}", s.DeleteString)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// CreateString handles POST /strings. Analysis is idempotent: re-posting
// an already analyzed value returns the stored record with 200 instead
// of creating a duplicate.
func (s *Server) CreateString(w http.ResponseWriter, r *http.Request) {
	var req createStringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Field 'value' is required")
		return
	}

	rec, created, err := s.records.Analyze(r.Context(), *req.Value)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", "/strings/"+url.PathEscape(rec.Value()))
	}
	writeJSON(w, status, recordToResponse(rec))
}

// ListStrings handles GET /strings with structured filter parameters.
func (s *Server) ListStrings(w http.ResponseWriter, r *http.Request) {
	params := singleValues(r.URL.Query())

	records, preds, err := s.records.Query(r.Context(), params)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stringListResponse{
		Data:           recordsToResponses(records),
		Count:          len(records),
		FiltersApplied: predicatesToStrings(preds),
	})
}

// FilterByNaturalLanguage handles GET /strings/filter-by-natural-language.
func (s *Server) FilterByNaturalLanguage(w http.ResponseWriter, r *http.Request) {
	phrase := r.URL.Query().Get("query")
	if phrase == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Query parameter 'query' is required")
		return
	}

	records, preds, err := s.records.QueryNatural(r.Context(), phrase)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, naturalListResponse{
		Data:  recordsToResponses(records),
		Count: len(records),
		InterpretedQuery: interpretedQuery{
			Original:      phrase,
			ParsedFilters: predicatesToStrings(preds),
		},
	})
}

// GetString handles GET /strings/{value}, keyed by the original value.
func (s *Server) GetString(w http.ResponseWriter, r *http.Request) {
	rec, err := s.records.Fetch(r.Context(), pathValue(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recordToResponse(rec))
}

// DeleteString handles DELETE /strings/{value}.
func (s *Server) DeleteString(w http.ResponseWriter, r *http.Request) {
	if err := s.records.Remove(r.Context(), pathValue(r)); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// pathValue extracts and unescapes the {value} path parameter.
func pathValue(r *http.Request) string {
	raw := chi.URLParam(r, "value")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		return unescaped
	}
	return raw
}

// singleValues flattens url.Values to first-value-wins, the shape the
// structured filter builder consumes.
func singleValues(values url.Values) map[string]string {
	params := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	return params
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrValidation,
		domain.ErrUnrecognizedQuery,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, safeDomainMessage(err))
		return true
	}
}

// validationHandler handles ValidationError with the offending parameter name.
func validationHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	resp := errorResponse{Code: codeValidationFailed, Message: safeDomainMessage(err)}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp.Parameter = ve.Param
		resp.Message = ve.Error()
	}
	writeJSON(w, http.StatusBadRequest, resp)
	return true
}

// unrecognizedQueryHandler handles UnrecognizedQueryError with the unparsed
// remainder, so clients can adjust their phrasing.
func unrecognizedQueryHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrUnrecognizedQuery) {
		return false
	}
	resp := errorResponse{Code: codeUnrecognizedQuery, Message: safeDomainMessage(err)}
	var ue *domain.UnrecognizedQueryError
	if errors.As(err, &ue) {
		resp.Unparsed = ue.Remainder
		resp.Message = ue.Error()
	}
	writeJSON(w, http.StatusBadRequest, resp)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
