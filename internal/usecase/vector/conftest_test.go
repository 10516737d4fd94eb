package vector

import (
	"context"

	"github.com/jobjedi/jobjedi/internal/domain"
	"github.com/jobjedi/jobjedi/internal/domain/match"
)

// mockIndex implements Index with overridable functions.
type mockIndex struct {
	EnsureIndexFn func(ctx context.Context) error
	UpsertFn      func(ctx context.Context, owner, jobKey, text string, vector []float32, metadata map[string]string) error
	QueryFn       func(ctx context.Context, owner string, vector []float32, topK int) ([]match.Match, error)
	DeleteFn      func(ctx context.Context, owner, jobKey string) error
}

func (m *mockIndex) EnsureIndex(ctx context.Context) error {
	if m.EnsureIndexFn != nil {
		return m.EnsureIndexFn(ctx)
	}
	return nil
}

func (m *mockIndex) Upsert(ctx context.Context, owner, jobKey, text string, vector []float32, metadata map[string]string) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, owner, jobKey, text, vector, metadata)
	}
	return nil
}

func (m *mockIndex) Query(ctx context.Context, owner string, vector []float32, topK int) ([]match.Match, error) {
	if m.QueryFn != nil {
		return m.QueryFn(ctx, owner, vector, topK)
	}
	return nil, nil
}

func (m *mockIndex) Delete(ctx context.Context, owner, jobKey string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, owner, jobKey)
	}
	return nil
}

// mockEmbedder implements Embedder with an overridable function.
type mockEmbedder struct {
	EmbedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if m.EmbedFn != nil {
		return m.EmbedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3}}, nil
}

func mustMatch(id string, score float64) match.Match {
	m, err := match.New(id, score, nil)
	if err != nil {
		panic(err)
	}
	return m
}
