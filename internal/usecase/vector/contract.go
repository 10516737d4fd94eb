package vector

import (
	"context"

	"github.com/jobjedi/jobjedi/internal/domain"
	"github.com/jobjedi/jobjedi/internal/domain/match"
)

// Index is the storage contract for the vector client.
type Index interface {
	EnsureIndex(ctx context.Context) error
	Upsert(ctx context.Context, owner, jobKey, text string, vector []float32, metadata map[string]string) error
	Query(ctx context.Context, owner string, vector []float32, topK int) ([]match.Match, error)
	Delete(ctx context.Context, owner, jobKey string) error
}

// Embedder vectorizes text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
