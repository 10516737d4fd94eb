package resume

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jobjedi/jobjedi/internal/db"
	"github.com/jobjedi/jobjedi/internal/domain"
	domres "github.com/jobjedi/jobjedi/internal/domain/resume"
)

// store is the consumer interface for stored resumes (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo stores resume/JD pairs as hashes under
// "<prefix>resume:<owner>:<id>". Aliases live in a separate key-value
// mapping "<prefix>resume_alias:<owner>:<alias>" -> id, which doubles as the
// per-owner uniqueness guard.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a resume repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Create stores a resume. A non-empty alias is reserved first; a taken alias
// fails with domain.ErrAliasTaken before anything is written.
func (r *Repo) Create(ctx context.Context, res domres.Resume) error {
	if alias := res.Alias(); alias != "" {
		taken, err := r.aliasOwnerOf(ctx, res.Owner(), alias)
		if err != nil {
			return err
		}
		if taken != "" && taken != res.ID() {
			return domain.ErrAliasTaken
		}
		if err := r.store.Set(ctx, r.aliasKey(res.Owner(), alias), []byte(res.ID())); err != nil {
			return fmt.Errorf("set alias %s: %w", alias, err)
		}
	}

	if err := r.store.HSet(ctx, r.resumeKey(res.Owner(), res.ID()), resumeToHash(res)); err != nil {
		werr := fmt.Errorf("hset resume %s: %w", res.ID(), err)
		// Release the reserved alias, or it stays taken with no resume
		// behind it.
		if alias := res.Alias(); alias != "" {
			cleanupErr := r.store.Del(ctx, r.aliasKey(res.Owner(), alias))
			return errors.Join(werr, cleanupErr)
		}
		return werr
	}
	return nil
}

// Get retrieves a resume by owner and identifier.
func (r *Repo) Get(ctx context.Context, owner, id string) (domres.Resume, error) {
	m, err := r.store.HGetAll(ctx, r.resumeKey(owner, id))
	if err != nil {
		return domres.Resume{}, fmt.Errorf("hgetall resume: %w", err)
	}
	if len(m) == 0 {
		return domres.Resume{}, domain.ErrResumeNotFound
	}
	return resumeFromHash(m)
}

// GetByAlias resolves an alias to its resume.
func (r *Repo) GetByAlias(ctx context.Context, owner, alias string) (domres.Resume, error) {
	id, err := r.aliasOwnerOf(ctx, owner, alias)
	if err != nil {
		return domres.Resume{}, err
	}
	if id == "" {
		return domres.Resume{}, domain.ErrResumeNotFound
	}
	return r.Get(ctx, owner, id)
}

// List returns all of an owner's resumes, newest first.
func (r *Repo) List(ctx context.Context, owner string) ([]domres.Resume, error) {
	keys, err := r.store.Scan(ctx, r.resumeKey(owner, "*"))
	if err != nil {
		return nil, fmt.Errorf("scan resumes: %w", err)
	}
	if len(keys) == 0 {
		return []domres.Resume{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi resumes: %w", err)
	}

	resumes := make([]domres.Resume, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		res, err := resumeFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse resume %s: %w", keys[i], err)
		}
		resumes = append(resumes, res)
	}

	sort.SliceStable(resumes, func(i, j int) bool {
		return resumes[i].CreatedAt().After(resumes[j].CreatedAt())
	})

	return resumes, nil
}

// Delete removes a resume and its alias mapping.
func (r *Repo) Delete(ctx context.Context, owner, id string) error {
	res, err := r.Get(ctx, owner, id)
	if err != nil {
		return err
	}

	if err := r.store.Del(ctx, r.resumeKey(owner, id)); err != nil {
		return fmt.Errorf("del resume %s: %w", id, err)
	}
	if alias := res.Alias(); alias != "" {
		if err := r.store.Del(ctx, r.aliasKey(owner, alias)); err != nil {
			return fmt.Errorf("del alias %s: %w", alias, err)
		}
	}
	return nil
}

// aliasOwnerOf returns the resume id an alias points to, or "" when free.
func (r *Repo) aliasOwnerOf(ctx context.Context, owner, alias string) (string, error) {
	data, err := r.store.Get(ctx, r.aliasKey(owner, alias))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("get alias %s: %w", alias, err)
	}
	return string(data), nil
}

func (r *Repo) resumeKey(owner, id string) string {
	return fmt.Sprintf("%sresume:%s:%s", r.keyPrefix, owner, id)
}

func (r *Repo) aliasKey(owner, alias string) string {
	return fmt.Sprintf("%sresume_alias:%s:%s", r.keyPrefix, owner, alias)
}
