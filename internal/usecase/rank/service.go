package rank

import (
	"sort"

	"github.com/jobjedi/jobjedi/internal/domain/resume"
	"github.com/jobjedi/jobjedi/internal/domain/similarity"
)

// Ranking defaults.
const (
	// DefaultScoreScale divides the raw TF-IDF measure before clamping to
	// [0,1]. Empirically chosen; a simplification, not a probability.
	DefaultScoreScale = 10.0
	// DefaultExcerptLength caps result excerpts.
	DefaultExcerptLength = 200
	// DefaultLimit is the result count when the caller does not specify one.
	DefaultLimit = 3
	// MaxLimit bounds caller-supplied result counts.
	MaxLimit = 20

	ellipsis = "..."
)

// Config holds ranking knobs.
type Config struct {
	ScoreScale    float64
	ExcerptLength int
	DefaultLimit  int
	MaxLimit      int
}

// Service ranks a user's stored resumes against a free-text query by TF-IDF
// similarity over the paired job description texts. Pure computation: each
// call builds its own corpus and term tables from scratch, so concurrent use
// needs no locking.
type Service struct {
	cfg Config
}

// New creates a ranking service, filling zero config fields with defaults.
func New(cfg Config) *Service {
	if cfg.ScoreScale <= 0 {
		cfg.ScoreScale = DefaultScoreScale
	}
	if cfg.ExcerptLength <= 0 {
		cfg.ExcerptLength = DefaultExcerptLength
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = MaxLimit
	}
	return &Service{cfg: cfg}
}

// Rank scores every resume's job description against the query and returns at
// most limit results, sorted by descending normalized score (stable on ties,
// preserving corpus input order). An empty corpus returns an empty list
// without building any term tables.
func (s *Service) Rank(query string, resumes []resume.Resume, limit int) []similarity.Result {
	if len(resumes) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	queryTokens := Preprocess(query)

	eng := newEngine(len(resumes))
	eng.addDocument(queryTokens)
	for i := range resumes {
		eng.addDocument(Preprocess(resumes[i].JDText()))
	}
	measures := eng.measures(queryTokens)

	results := make([]similarity.Result, 0, len(resumes))
	for i := range resumes {
		r := &resumes[i]
		score := clamp01(measures[i] / s.cfg.ScoreScale)
		results = append(results, similarity.New(
			r.ID(), r.Owner(), r.Alias(),
			s.excerpt(r.JDText()), s.excerpt(r.ResumeText()),
			score,
		))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// excerpt truncates text to the configured cap, marking the cut with an
// ellipsis. The cut falls on a rune boundary; a byte slice could split a
// multibyte character and emit invalid UTF-8.
func (s *Service) excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= s.cfg.ExcerptLength {
		return text
	}
	return string(runes[:s.cfg.ExcerptLength]) + ellipsis
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
