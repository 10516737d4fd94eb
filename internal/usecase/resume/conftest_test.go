package resume

import (
	"context"

	domres "github.com/jobjedi/jobjedi/internal/domain/resume"
	"github.com/jobjedi/jobjedi/internal/domain/similarity"
)

// mockRepo implements Repository with overridable functions.
type mockRepo struct {
	CreateFn     func(ctx context.Context, r domres.Resume) error
	GetFn        func(ctx context.Context, owner, id string) (domres.Resume, error)
	GetByAliasFn func(ctx context.Context, owner, alias string) (domres.Resume, error)
	ListFn       func(ctx context.Context, owner string) ([]domres.Resume, error)
	DeleteFn     func(ctx context.Context, owner, id string) error
}

func (m *mockRepo) Create(ctx context.Context, r domres.Resume) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *mockRepo) Get(ctx context.Context, owner, id string) (domres.Resume, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, owner, id)
	}
	return domres.Resume{}, nil
}

func (m *mockRepo) GetByAlias(ctx context.Context, owner, alias string) (domres.Resume, error) {
	if m.GetByAliasFn != nil {
		return m.GetByAliasFn(ctx, owner, alias)
	}
	return domres.Resume{}, nil
}

func (m *mockRepo) List(ctx context.Context, owner string) ([]domres.Resume, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, owner)
	}
	return nil, nil
}

func (m *mockRepo) Delete(ctx context.Context, owner, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, owner, id)
	}
	return nil
}

// mockRanker implements Ranker with an overridable function.
type mockRanker struct {
	RankFn func(query string, resumes []domres.Resume, limit int) []similarity.Result
}

func (m *mockRanker) Rank(query string, resumes []domres.Resume, limit int) []similarity.Result {
	if m.RankFn != nil {
		return m.RankFn(query, resumes, limit)
	}
	return nil
}
