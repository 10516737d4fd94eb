package job

import (
	"context"

	domjob "github.com/jobjedi/jobjedi/internal/domain/job"
	"github.com/jobjedi/jobjedi/internal/domain/match"
	"github.com/jobjedi/jobjedi/internal/usecase/vector"
)

// Repository defines the storage contract for saved jobs.
type Repository interface {
	Save(ctx context.Context, j domjob.Job) error
	Get(ctx context.Context, owner, url string) (domjob.Job, error)
	GetByKey(ctx context.Context, owner, urlKey string) (domjob.Job, error)
	List(ctx context.Context, owner string) ([]domjob.Job, error)
	Delete(ctx context.Context, owner, url string) error
}

// VectorClient is the similarity-index contract. All methods are
// non-throwing: writes report an Outcome, queries degrade to empty.
type VectorClient interface {
	Upsert(ctx context.Context, owner, jobKey, text string, metadata map[string]string) vector.Outcome
	Delete(ctx context.Context, owner, jobKey string) vector.Outcome
	Query(ctx context.Context, owner, text string, topK int) []match.Match
}
