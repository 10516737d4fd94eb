package resume

import (
	"context"

	domres "github.com/jobjedi/jobjedi/internal/domain/resume"
	"github.com/jobjedi/jobjedi/internal/domain/similarity"
)

// Repository defines the storage contract for resumes.
type Repository interface {
	Create(ctx context.Context, r domres.Resume) error
	Get(ctx context.Context, owner, id string) (domres.Resume, error)
	GetByAlias(ctx context.Context, owner, alias string) (domres.Resume, error)
	List(ctx context.Context, owner string) ([]domres.Resume, error)
	Delete(ctx context.Context, owner, id string) error
}

// Ranker scores resumes against a free-text query. Pure computation.
type Ranker interface {
	Rank(query string, resumes []domres.Resume, limit int) []similarity.Result
}
