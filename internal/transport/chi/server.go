package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jobjedi/jobjedi/internal/domain"
	domjob "github.com/jobjedi/jobjedi/internal/domain/job"
	domres "github.com/jobjedi/jobjedi/internal/domain/resume"
	"github.com/jobjedi/jobjedi/internal/domain/similarity"
	healthuc "github.com/jobjedi/jobjedi/internal/usecase/health"
	jobuc "github.com/jobjedi/jobjedi/internal/usecase/job"
	"github.com/jobjedi/jobjedi/internal/usecase/vector"
)

// jobService is the consumer contract for job handlers.
type jobService interface {
	Save(ctx context.Context, owner, url, company, position, description string) (domjob.Job, vector.Outcome, error)
	Get(ctx context.Context, owner, url string) (domjob.Job, error)
	List(ctx context.Context, owner string) ([]domjob.Job, error)
	Delete(ctx context.Context, owner, url string) (vector.Outcome, error)
	SearchText(ctx context.Context, owner, query string) ([]domjob.Job, error)
	SemanticSearch(ctx context.Context, owner, query string, topK int) ([]jobuc.SemanticHit, error)
}

// resumeService is the consumer contract for resume handlers.
type resumeService interface {
	Create(ctx context.Context, owner, jdText, resumeText, alias string) (domres.Resume, error)
	Get(ctx context.Context, owner, id string) (domres.Resume, error)
	GetByAlias(ctx context.Context, owner, alias string) (domres.Resume, error)
	List(ctx context.Context, owner string) ([]domres.Resume, error)
	Delete(ctx context.Context, owner, id string) error
	Match(ctx context.Context, owner, query string, limit int) ([]similarity.Result, error)
}

// healthService is the consumer contract for the health handler.
type healthService interface {
	Check(ctx context.Context) healthuc.Report
}

// Server is the HTTP API over the job and resume services.
type Server struct {
	jobs    jobService
	resumes resumeService
	health  healthService
	logger  *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(jobs jobService, resumes resumeService, health healthService, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{jobs: jobs, resumes: resumes, health: health, logger: logger}
}

// Routes builds the route tree. Middleware is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/jobs", func(r chi.Router) {
			r.Post("/", s.handleSaveJob)
			r.Get("/", s.handleListJobs)
			r.Delete("/", s.handleDeleteJob)
			r.Get("/item", s.handleGetJob)
			r.Get("/search", s.handleSearchJobs)
			r.Get("/semantic-search", s.handleSemanticSearch)
		})

		r.Route("/resumes", func(r chi.Router) {
			r.Post("/", s.handleCreateResume)
			r.Get("/", s.handleListResumes)
			r.Post("/match", s.handleMatch)
			r.Get("/alias/{alias}", s.handleGetResumeByAlias)
			r.Get("/{id}", s.handleGetResume)
			r.Delete("/{id}", s.handleDeleteResume)
		})
	})

	return r
}

// handleSaveJob handles POST /api/v1/jobs.
func (s *Server) handleSaveJob(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	var req saveJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	j, outcome, err := s.jobs.Save(r.Context(), owner, req.URL, req.Company, req.Position, req.Description)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, saveJobResponse{
		Job:    jobToResponse(&j),
		Vector: outcome,
	})
}

// handleListJobs handles GET /api/v1/jobs.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	jobs, err := s.jobs.List(r.Context(), owner)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jobListResponse{Items: jobsToResponse(jobs), Total: len(jobs)})
}

// handleGetJob handles GET /api/v1/jobs/item?url=...
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "url query parameter is required")
		return
	}

	j, err := s.jobs.Get(r.Context(), owner, url)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jobToResponse(&j))
}

// handleDeleteJob handles DELETE /api/v1/jobs?url=...
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "url query parameter is required")
		return
	}

	outcome, err := s.jobs.Delete(r.Context(), owner, url)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteJobResponse{Vector: outcome})
}

// handleSearchJobs handles GET /api/v1/jobs/search?q=...
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	jobs, err := s.jobs.SearchText(r.Context(), owner, r.URL.Query().Get("q"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jobListResponse{Items: jobsToResponse(jobs), Total: len(jobs)})
}

// handleSemanticSearch handles GET /api/v1/jobs/semantic-search?q=...&top_k=...
func (s *Server) handleSemanticSearch(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	topK := 0
	if raw := r.URL.Query().Get("top_k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "top_k must be a positive integer")
			return
		}
		topK = parsed
	}

	hits, err := s.jobs.SemanticSearch(r.Context(), owner, r.URL.Query().Get("q"), topK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]semanticHitResponse, len(hits))
	for i := range hits {
		items[i] = semanticHitResponse{
			Job:   jobToResponse(&hits[i].Job),
			Score: hits[i].Score,
		}
	}
	writeJSON(w, http.StatusOK, semanticSearchResponse{Items: items, Total: len(items)})
}

// handleCreateResume handles POST /api/v1/resumes.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	var req createResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	res, err := s.resumes.Create(r.Context(), owner, req.JDText, req.ResumeText, req.Alias)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resumeToResponse(&res))
}

// handleListResumes handles GET /api/v1/resumes.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	resumes, err := s.resumes.List(r.Context(), owner)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]resumeResponse, len(resumes))
	for i := range resumes {
		items[i] = resumeToResponse(&resumes[i])
	}
	writeJSON(w, http.StatusOK, resumeListResponse{Items: items, Total: len(items)})
}

// handleGetResume handles GET /api/v1/resumes/{id}.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	res, err := s.resumes.Get(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resumeToResponse(&res))
}

// handleGetResumeByAlias handles GET /api/v1/resumes/alias/{alias}.
func (s *Server) handleGetResumeByAlias(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	res, err := s.resumes.GetByAlias(r.Context(), owner, chi.URLParam(r, "alias"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resumeToResponse(&res))
}

// handleDeleteResume handles DELETE /api/v1/resumes/{id}.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	if err := s.resumes.Delete(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleMatch handles POST /api/v1/resumes/match.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	results, err := s.resumes.Match(r.Context(), owner, req.Query, req.Limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]similarityResponse, len(results))
	for i := range results {
		items[i] = similarityToResponse(&results[i])
	}
	writeJSON(w, http.StatusOK, matchResponse{Items: items, Total: len(items)})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:      string(report.Status),
		Checks:      report.Checks,
		VectorState: report.VectorState,
	})
}

// owner extracts the requesting user from the X-User-Email header.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := strings.TrimSpace(r.Header.Get("X-User-Email"))
	if owner == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "X-User-Email header is required")
		return "", false
	}
	return owner, true
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrJobNotFound,
		domain.ErrResumeNotFound,
		domain.ErrAliasTaken,
		domain.ErrInvalidInput,
		domain.ErrQueryTooShort,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	switch {
	case errors.Is(err, domain.ErrJobNotFound):
		writeError(w, http.StatusNotFound, codeJobNotFound, msg)
	case errors.Is(err, domain.ErrResumeNotFound):
		writeError(w, http.StatusNotFound, codeResumeNotFound, msg)
	case errors.Is(err, domain.ErrAliasTaken):
		writeError(w, http.StatusConflict, codeAliasTaken, msg)
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrQueryTooShort):
		writeError(w, http.StatusBadRequest, codeValidationFailed, msg)
	case errors.Is(err, domain.ErrEmbeddingProviderError):
		writeError(w, http.StatusBadGateway, codeEmbeddingProvider, msg)
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
