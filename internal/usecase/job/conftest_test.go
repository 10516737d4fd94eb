package job

import (
	"context"

	domjob "github.com/jobjedi/jobjedi/internal/domain/job"
	"github.com/jobjedi/jobjedi/internal/domain/match"
	"github.com/jobjedi/jobjedi/internal/usecase/vector"
)

// mockRepo implements Repository with overridable functions.
type mockRepo struct {
	SaveFn     func(ctx context.Context, j domjob.Job) error
	GetFn      func(ctx context.Context, owner, url string) (domjob.Job, error)
	GetByKeyFn func(ctx context.Context, owner, urlKey string) (domjob.Job, error)
	ListFn     func(ctx context.Context, owner string) ([]domjob.Job, error)
	DeleteFn   func(ctx context.Context, owner, url string) error
}

func (m *mockRepo) Save(ctx context.Context, j domjob.Job) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, j)
	}
	return nil
}

func (m *mockRepo) Get(ctx context.Context, owner, url string) (domjob.Job, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, owner, url)
	}
	return domjob.Job{}, nil
}

func (m *mockRepo) GetByKey(ctx context.Context, owner, urlKey string) (domjob.Job, error) {
	if m.GetByKeyFn != nil {
		return m.GetByKeyFn(ctx, owner, urlKey)
	}
	return domjob.Job{}, nil
}

func (m *mockRepo) List(ctx context.Context, owner string) ([]domjob.Job, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, owner)
	}
	return nil, nil
}

func (m *mockRepo) Delete(ctx context.Context, owner, url string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, owner, url)
	}
	return nil
}

// mockVector implements VectorClient with overridable functions.
type mockVector struct {
	UpsertFn func(ctx context.Context, owner, jobKey, text string, metadata map[string]string) vector.Outcome
	DeleteFn func(ctx context.Context, owner, jobKey string) vector.Outcome
	QueryFn  func(ctx context.Context, owner, text string, topK int) []match.Match
}

func (m *mockVector) Upsert(ctx context.Context, owner, jobKey, text string, metadata map[string]string) vector.Outcome {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, owner, jobKey, text, metadata)
	}
	return vector.Outcome{Success: true}
}

func (m *mockVector) Delete(ctx context.Context, owner, jobKey string) vector.Outcome {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, owner, jobKey)
	}
	return vector.Outcome{Success: true}
}

func (m *mockVector) Query(ctx context.Context, owner, text string, topK int) []match.Match {
	if m.QueryFn != nil {
		return m.QueryFn(ctx, owner, text, topK)
	}
	return nil
}

func mustMatch(id string, score float64) match.Match {
	m, err := match.New(id, score, nil)
	if err != nil {
		panic(err)
	}
	return m
}
