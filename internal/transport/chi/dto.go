package chi

import (
	"time"

	domjob "github.com/jobjedi/jobjedi/internal/domain/job"
	domres "github.com/jobjedi/jobjedi/internal/domain/resume"
	"github.com/jobjedi/jobjedi/internal/domain/similarity"
	healthuc "github.com/jobjedi/jobjedi/internal/usecase/health"
	"github.com/jobjedi/jobjedi/internal/usecase/vector"
)

// Error codes carried in error responses.
const (
	codeBadRequest        = "bad_request"
	codeValidationFailed  = "validation_failed"
	codeJobNotFound       = "job_not_found"
	codeResumeNotFound    = "resume_not_found"
	codeAliasTaken        = "alias_taken"
	codeEmbeddingProvider = "embedding_provider_error"
	codeInternalError     = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type saveJobRequest struct {
	URL         string `json:"url"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Description string `json:"description"`
}

type jobResponse struct {
	URL         string    `json:"url"`
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type saveJobResponse struct {
	Job    jobResponse    `json:"job"`
	Vector vector.Outcome `json:"vector"`
}

type deleteJobResponse struct {
	Vector vector.Outcome `json:"vector"`
}

type jobListResponse struct {
	Items []jobResponse `json:"items"`
	Total int           `json:"total"`
}

type semanticHitResponse struct {
	Job   jobResponse `json:"job"`
	Score float64     `json:"score"`
}

type semanticSearchResponse struct {
	Items []semanticHitResponse `json:"items"`
	Total int                   `json:"total"`
}

type createResumeRequest struct {
	JDText     string `json:"jd_text"`
	ResumeText string `json:"resume_text"`
	Alias      string `json:"alias,omitempty"`
}

type resumeResponse struct {
	ID         string    `json:"id"`
	Alias      string    `json:"alias,omitempty"`
	JDText     string    `json:"jd_text"`
	ResumeText string    `json:"resume_text"`
	CreatedAt  time.Time `json:"created_at"`
}

type resumeListResponse struct {
	Items []resumeResponse `json:"items"`
	Total int              `json:"total"`
}

type matchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type similarityResponse struct {
	ID            string  `json:"id"`
	Alias         string  `json:"alias,omitempty"`
	JDExcerpt     string  `json:"jd_excerpt"`
	ResumeExcerpt string  `json:"resume_excerpt"`
	Score         float64 `json:"score"`
}

type matchResponse struct {
	Items []similarityResponse `json:"items"`
	Total int                  `json:"total"`
}

type healthResponse struct {
	Status      string                          `json:"status"`
	Checks      map[string]healthuc.CheckResult `json:"checks"`
	VectorState string                          `json:"vector_state,omitempty"`
}

func jobToResponse(j *domjob.Job) jobResponse {
	return jobResponse{
		URL:         j.URL(),
		Company:     j.Company(),
		Position:    j.Position(),
		Description: j.Description(),
		CreatedAt:   j.CreatedAt(),
	}
}

func jobsToResponse(jobs []domjob.Job) []jobResponse {
	items := make([]jobResponse, len(jobs))
	for i := range jobs {
		items[i] = jobToResponse(&jobs[i])
	}
	return items
}

func resumeToResponse(r *domres.Resume) resumeResponse {
	return resumeResponse{
		ID:         r.ID(),
		Alias:      r.Alias(),
		JDText:     r.JDText(),
		ResumeText: r.ResumeText(),
		CreatedAt:  r.CreatedAt(),
	}
}

func similarityToResponse(r *similarity.Result) similarityResponse {
	return similarityResponse{
		ID:            r.ID(),
		Alias:         r.Alias(),
		JDExcerpt:     r.JDExcerpt(),
		ResumeExcerpt: r.ResumeExcerpt(),
		Score:         r.Score(),
	}
}
