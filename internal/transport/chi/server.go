package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/knowhub/internal/domain"
	"github.com/kailas-cloud/knowhub/internal/domain/search/page"
	healthuc "github.com/kailas-cloud/knowhub/internal/usecase/health"
	searchuc "github.com/kailas-cloud/knowhub/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the search API.
type Server struct {
	search          *searchuc.Service
	health          *healthuc.Service
	logger          *zap.Logger
	defaultPageSize int
	errorHandlers   []errorHandler
}

// NewServer creates an HTTP API server. defaultPageSize applies when the
// pageSize parameter is absent.
func NewServer(
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
	defaultPageSize int,
) *Server {
	s := &Server{
		search:          search,
		health:          health,
		logger:          logger,
		defaultPageSize: defaultPageSize,
	}
	s.errorHandlers = []errorHandler{
		paramFormatHandler,
		validationHandler,
		sentinelHandler(domain.ErrUnknownEntity, http.StatusNotFound, ErrorCodeUnknownEntity),
	}
	return s
}

// SearchEntities handles GET /api/v1/{entity}/search.
func (s *Server) SearchEntities(w http.ResponseWriter, r *http.Request) {
	entity, err := bindEntity(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	params, err := bindSearchParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	size := s.defaultPageSize
	if params.PageSize != nil {
		size = *params.PageSize
	}
	req, err := page.NewRequest(deref(params.Page), size, deref(params.SortField), deref(params.SortDirection))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	result, err := s.search.Search(r.Context(), entity, deref(params.Terms), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, PageToResponse(result))
}

// ListEntities handles GET /api/v1/entities.
func (s *Server) ListEntities(w http.ResponseWriter, _ *http.Request) {
	regs := s.search.Registries()
	items := make([]EntityResponse, len(regs))
	for i, reg := range regs {
		items[i] = registryToResponse(reg)
	}
	writeJSON(w, http.StatusOK, EntityListResponse{Items: items})
}

func (s *Server) entityNames() []string {
	regs := s.search.Registries()
	names := make([]string, len(regs))
	for i, reg := range regs {
		names[i] = reg.Entity()
	}
	return names
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
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

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

// validationHandler reports the offending field and value of a rejected search.
func validationHandler(w http.ResponseWriter, err error) bool {
	ve, ok := domain.AsValidationError(err)
	if !ok {
		return false
	}
	code := ErrorCodeInvalidValue
	if errors.Is(ve, domain.ErrUnknownField) {
		code = ErrorCodeUnknownField
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    code,
		Message: ve.Error(),
		Field:   ve.Field,
		Value:   ve.Value,
	})
	return true
}

func paramFormatHandler(w http.ResponseWriter, err error) bool {
	var pe *InvalidParamFormatError
	if !errors.As(err, &pe) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    ErrorCodeBadRequest,
		Message: "invalid format for parameter " + pe.ParamName,
		Field:   pe.ParamName,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := zap.String("request_id", chiMiddleware.GetReqID(r.Context()))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Debug("Request rejected", requestID, zap.Error(err))
			return
		}
	}
	s.logger.Error("Internal error", requestID, zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
