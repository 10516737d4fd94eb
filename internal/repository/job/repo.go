package job

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/jobjedi/jobjedi/internal/domain"
	domjob "github.com/jobjedi/jobjedi/internal/domain/job"
)

// store is the consumer interface for saved jobs (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo stores job postings as hashes under
// "<prefix>job:<owner>:<urlkey>", where urlkey is the hex SHA-256 of the
// posting URL. The hash keeps keys identifier-safe regardless of what the
// URL contains, and makes saving the same posting twice an overwrite.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a job repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// URLKey returns the stable document key for a posting URL.
func URLKey(url string) string {
	h := sha256.Sum256([]byte(url))
	return hex.EncodeToString(h[:])
}

// Save upserts a job posting. Saving the same URL again replaces the record.
func (r *Repo) Save(ctx context.Context, j domjob.Job) error {
	key := r.jobKey(j.Owner(), URLKey(j.URL()))
	if err := r.store.HSet(ctx, key, jobToHash(j)); err != nil {
		return fmt.Errorf("hset job %s: %w", key, err)
	}
	return nil
}

// Get retrieves a job posting by owner and URL.
func (r *Repo) Get(ctx context.Context, owner, url string) (domjob.Job, error) {
	return r.GetByKey(ctx, owner, URLKey(url))
}

// GetByKey retrieves a job posting by owner and document key. Used to
// hydrate vector search hits, whose identifiers carry the key, not the URL.
func (r *Repo) GetByKey(ctx context.Context, owner, urlKey string) (domjob.Job, error) {
	m, err := r.store.HGetAll(ctx, r.jobKey(owner, urlKey))
	if err != nil {
		return domjob.Job{}, fmt.Errorf("hgetall job: %w", err)
	}
	if len(m) == 0 {
		return domjob.Job{}, domain.ErrJobNotFound
	}
	return jobFromHash(m)
}

// List returns all of an owner's saved jobs, newest first.
func (r *Repo) List(ctx context.Context, owner string) ([]domjob.Job, error) {
	keys, err := r.store.Scan(ctx, r.jobKey(owner, "*"))
	if err != nil {
		return nil, fmt.Errorf("scan jobs: %w", err)
	}
	if len(keys) == 0 {
		return []domjob.Job{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi jobs: %w", err)
	}

	jobs := make([]domjob.Job, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		j, err := jobFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse job %s: %w", keys[i], err)
		}
		jobs = append(jobs, j)
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt().After(jobs[j].CreatedAt())
	})

	return jobs, nil
}

// Delete removes a job posting by owner and URL.
func (r *Repo) Delete(ctx context.Context, owner, url string) error {
	key := r.jobKey(owner, URLKey(url))

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check job exists: %w", err)
	}
	if !exists {
		return domain.ErrJobNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del job %s: %w", key, err)
	}
	return nil
}

func (r *Repo) jobKey(owner, urlKey string) string {
	return fmt.Sprintf("%sjob:%s:%s", r.keyPrefix, owner, urlKey)
}
