package vector

import (
	"context"

	"github.com/jobjedi/jobjedi/internal/db"
)

// mockStore implements the store interface with overridable functions.
type mockStore struct {
	HSetFn        func(ctx context.Context, key string, fields map[string]string) error
	DelFn         func(ctx context.Context, key string) error
	CreateIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	IndexExistsFn func(ctx context.Context, name string) (bool, error)
	SearchKNNFn   func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.HSetFn != nil {
		return m.HSetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.DelFn != nil {
		return m.DelFn(ctx, key)
	}
	return nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.CreateIndexFn != nil {
		return m.CreateIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.IndexExistsFn != nil {
		return m.IndexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if m.SearchKNNFn != nil {
		return m.SearchKNNFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}
