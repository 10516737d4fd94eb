package vector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jobjedi/jobjedi/internal/db"
	"github.com/jobjedi/jobjedi/internal/domain/match"
)

// store is the subset of database operations this repository needs.
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	Del(ctx context.Context, key string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repository stores and searches job description embeddings in an
// owner-partitioned vector index. Record keys are
// "<prefix>vec:<owner>|||<jobKey>"; the owner also lives in a TAG field so
// every query can be pre-filtered to one tenant's partition.
type Repository struct {
	store      store
	keyPrefix  string
	indexName  string
	dims       int
	hnswM      int
	hnswEFCons int
}

// New creates a vector repository.
func New(s store, keyPrefix, indexName string, dims int) *Repository {
	return &Repository{
		store:      s,
		keyPrefix:  keyPrefix,
		indexName:  indexName,
		dims:       dims,
		hnswM:      16,
		hnswEFCons: 200,
	}
}

// WithHNSW overrides the HNSW build parameters.
func (r *Repository) WithHNSW(m, efConstruct int) *Repository {
	if m > 0 {
		r.hnswM = m
	}
	if efConstruct > 0 {
		r.hnswEFCons = efConstruct
	}
	return r
}

// EnsureIndex creates the vector index if it does not already exist.
// Idempotent; safe to call on every startup.
func (r *Repository) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.indexName)
	if err != nil {
		return fmt.Errorf("check index %s: %w", r.indexName, err)
	}
	if exists {
		return nil
	}

	def := &db.IndexDefinition{
		Name:     r.indexName,
		Prefixes: []string{r.recordPrefix()},
		Fields: []db.IndexField{
			{Name: fieldOwner, Type: db.IndexFieldTag},
			{Name: fieldContent, Type: db.IndexFieldText},
			{
				Name:              fieldVector,
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         r.dims,
				VectorDistance:    db.DistanceCosine,
				VectorM:           r.hnswM,
				VectorEFConstruct: r.hnswEFCons,
			},
		},
	}
	if err := def.Validate(); err != nil {
		return fmt.Errorf("index definition: %w", err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil {
		// Lost a create race; the index is there either way.
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", r.indexName, err)
	}
	return nil
}

// Upsert writes one record into the owner's partition, retaining the raw
// text alongside the embedding.
func (r *Repository) Upsert(ctx context.Context, owner, jobKey, text string, vector []float32, metadata map[string]string) error {
	id, err := match.EncodeID(owner, jobKey)
	if err != nil {
		return err
	}
	fields := buildHashFields(owner, text, vector, metadata)
	if err := r.store.HSet(ctx, r.recordKey(id), fields); err != nil {
		return fmt.Errorf("upsert vector %s: %w", id, err)
	}
	return nil
}

// Query searches the owner's partition for the topK nearest neighbors.
func (r *Repository) Query(ctx context.Context, owner string, vector []float32, topK int) ([]match.Match, error) {
	q := &db.KNNQuery{
		IndexName:    r.indexName,
		Prefilter:    db.TagFilter(fieldOwner, owner),
		Vector:       vector,
		K:            topK,
		ReturnFields: returnFields,
	}
	res, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return r.parseMatches(res)
}

// Delete removes the record at owner/jobKey. Deleting a missing record is
// not an error.
func (r *Repository) Delete(ctx context.Context, owner, jobKey string) error {
	id, err := match.EncodeID(owner, jobKey)
	if err != nil {
		return err
	}
	if err := r.store.Del(ctx, r.recordKey(id)); err != nil {
		return fmt.Errorf("delete vector %s: %w", id, err)
	}
	return nil
}

func (r *Repository) parseMatches(res *db.SearchResult) ([]match.Match, error) {
	matches := make([]match.Match, 0, len(res.Entries))
	for i := range res.Entries {
		e := &res.Entries[i]
		id := strings.TrimPrefix(e.Key, r.recordPrefix())
		m, err := match.New(id, e.Score, metadataFields(e.Fields))
		if err != nil {
			// A key outside the <owner>|||<jobKey> shape never comes from
			// this repository; skip rather than fail the whole result.
			continue
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func (r *Repository) recordPrefix() string {
	return r.keyPrefix + "vec:"
}

func (r *Repository) recordKey(id string) string {
	return r.recordPrefix() + id
}
