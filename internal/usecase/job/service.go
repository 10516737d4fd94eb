package job

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jobjedi/jobjedi/internal/domain"
	domjob "github.com/jobjedi/jobjedi/internal/domain/job"
	jobrepo "github.com/jobjedi/jobjedi/internal/repository/job"
	"github.com/jobjedi/jobjedi/internal/usecase/vector"
)

// Defaults for search behavior.
const (
	DefaultMinQueryLength = 5
	DefaultTopK           = 5
)

// Config holds job service knobs.
type Config struct {
	MinQueryLength int
	TopK           int
}

// SemanticHit pairs a hydrated job with its vector similarity score.
type SemanticHit struct {
	Job   domjob.Job
	Score float64
}

// Service handles saved job postings. Vector indexing rides along on saves
// and deletes but never fails them: the Outcome travels back to the caller
// as information, not as an error.
type Service struct {
	repo   Repository
	vec    VectorClient
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// New creates a job service.
func New(repo Repository, vec VectorClient, cfg Config, logger *zap.Logger) *Service {
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = DefaultMinQueryLength
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, vec: vec, cfg: cfg, logger: logger, now: time.Now}
}

// WithClock overrides the time source (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Save validates and stores a job posting, then indexes it for similarity
// search. Saving the same URL again overwrites both the record and the
// vector. The returned Outcome reports the indexing result.
func (s *Service) Save(ctx context.Context, owner, url, company, position, description string) (domjob.Job, vector.Outcome, error) {
	j, err := domjob.New(owner, url, company, position, description, s.now().UTC())
	if err != nil {
		return domjob.Job{}, vector.Outcome{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if err := s.repo.Save(ctx, j); err != nil {
		return domjob.Job{}, vector.Outcome{}, fmt.Errorf("save job: %w", err)
	}

	outcome := s.vec.Upsert(ctx, owner, jobrepo.URLKey(url), description, map[string]string{
		"company":  company,
		"position": position,
		"url":      url,
	})
	if !outcome.Success {
		s.logger.Info("Job saved without vector indexing",
			zap.String("owner", owner),
			zap.String("reason", outcome.Reason))
	}

	return j, outcome, nil
}

// Get retrieves one saved job by URL.
func (s *Service) Get(ctx context.Context, owner, url string) (domjob.Job, error) {
	return s.repo.Get(ctx, owner, url)
}

// List returns all of the owner's saved jobs, newest first.
func (s *Service) List(ctx context.Context, owner string) ([]domjob.Job, error) {
	return s.repo.List(ctx, owner)
}

// Delete removes a saved job and its vector record. The record is
// authoritative: a vector delete failure is reported in the Outcome but the
// job is gone either way.
func (s *Service) Delete(ctx context.Context, owner, url string) (vector.Outcome, error) {
	if err := s.repo.Delete(ctx, owner, url); err != nil {
		return vector.Outcome{}, err
	}

	outcome := s.vec.Delete(ctx, owner, jobrepo.URLKey(url))
	if !outcome.Success {
		s.logger.Info("Job deleted without vector cleanup",
			zap.String("owner", owner),
			zap.String("reason", outcome.Reason))
	}
	return outcome, nil
}

// SearchText filters the owner's saved jobs by case-insensitive substring
// match over company, position and description.
func (s *Service) SearchText(ctx context.Context, owner, query string) ([]domjob.Job, error) {
	if err := s.validateQuery(query); err != nil {
		return nil, err
	}

	jobs, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]domjob.Job, 0, len(jobs))
	for i := range jobs {
		j := &jobs[i]
		haystack := strings.ToLower(j.Company() + " " + j.Position() + " " + j.Description())
		if strings.Contains(haystack, needle) {
			out = append(out, jobs[i])
		}
	}
	return out, nil
}

// SemanticSearch finds the owner's saved jobs most similar to the query
// text. Hits are hydrated from the record store; a vector whose record is
// gone is skipped. Vector unavailability yields an empty result, not an
// error.
func (s *Service) SemanticSearch(ctx context.Context, owner, query string, topK int) ([]SemanticHit, error) {
	if err := s.validateQuery(query); err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = s.cfg.TopK
	}

	matches := s.vec.Query(ctx, owner, query, topK)
	hits := make([]SemanticHit, 0, len(matches))
	for _, m := range matches {
		j, err := s.repo.GetByKey(ctx, owner, m.JobKey())
		if err != nil {
			s.logger.Debug("Skipping stale vector match",
				zap.String("owner", owner),
				zap.String("job_key", m.JobKey()),
				zap.Error(err))
			continue
		}
		hits = append(hits, SemanticHit{Job: j, Score: m.Score()})
	}
	return hits, nil
}

func (s *Service) validateQuery(query string) error {
	if len(strings.TrimSpace(query)) < s.cfg.MinQueryLength {
		return fmt.Errorf("%w: query must be at least %d characters", domain.ErrQueryTooShort, s.cfg.MinQueryLength)
	}
	return nil
}
