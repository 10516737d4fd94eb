package resume

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobjedi/jobjedi/internal/domain"
	domres "github.com/jobjedi/jobjedi/internal/domain/resume"
	"github.com/jobjedi/jobjedi/internal/domain/similarity"
)

// DefaultMinQueryLength is the minimum match query length in characters.
const DefaultMinQueryLength = 5

// Config holds resume service knobs.
type Config struct {
	MinQueryLength int
}

// Service handles stored resume/JD pairs and lexical matching.
type Service struct {
	repo   Repository
	ranker Ranker
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// New creates a resume service.
func New(repo Repository, ranker Ranker, cfg Config, logger *zap.Logger) *Service {
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = DefaultMinQueryLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		ranker: ranker,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// WithClock overrides the time source (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithIDGenerator overrides identifier generation (tests).
func (s *Service) WithIDGenerator(newID func() string) *Service {
	s.newID = newID
	return s
}

// Create validates and stores a resume/JD pair, assigning a fresh
// identifier. Alias uniqueness is enforced per owner.
func (s *Service) Create(ctx context.Context, owner, jdText, resumeText, alias string) (domres.Resume, error) {
	res, err := domres.New(s.newID(), owner, jdText, resumeText, strings.TrimSpace(alias), s.now().UTC())
	if err != nil {
		return domres.Resume{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return domres.Resume{}, err
	}

	s.logger.Info("Resume stored",
		zap.String("owner", owner),
		zap.String("resume_id", res.ID()),
		zap.Bool("has_alias", res.Alias() != ""))
	return res, nil
}

// Get retrieves a resume by identifier.
func (s *Service) Get(ctx context.Context, owner, id string) (domres.Resume, error) {
	return s.repo.Get(ctx, owner, id)
}

// GetByAlias retrieves a resume by its alias.
func (s *Service) GetByAlias(ctx context.Context, owner, alias string) (domres.Resume, error) {
	return s.repo.GetByAlias(ctx, owner, alias)
}

// List returns all of the owner's resumes, newest first.
func (s *Service) List(ctx context.Context, owner string) ([]domres.Resume, error) {
	return s.repo.List(ctx, owner)
}

// Delete removes a resume and frees its alias.
func (s *Service) Delete(ctx context.Context, owner, id string) error {
	return s.repo.Delete(ctx, owner, id)
}

// Match ranks the owner's resumes against a job description query and
// returns the top results. An owner with no stored resumes gets an empty
// list, not an error.
func (s *Service) Match(ctx context.Context, owner, query string, limit int) ([]similarity.Result, error) {
	if len(strings.TrimSpace(query)) < s.cfg.MinQueryLength {
		return nil, fmt.Errorf("%w: query must be at least %d characters", domain.ErrQueryTooShort, s.cfg.MinQueryLength)
	}

	resumes, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	if len(resumes) == 0 {
		return []similarity.Result{}, nil
	}

	return s.ranker.Rank(query, resumes, limit), nil
}
