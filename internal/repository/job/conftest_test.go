package job

import (
	"context"
	"strings"
	"sync"
)

// memStore is an in-memory hash store for repository tests.
type memStore struct {
	mu     sync.Mutex
	hashes map[string]map[string]string

	hsetErr error
	scanErr error
}

func newMemStore() *memStore {
	return &memStore{hashes: make(map[string]map[string]string)}
}

func (s *memStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if s.hsetErr != nil {
		return s.hsetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.hashes[key]
	if !ok {
		m = make(map[string]string)
		s.hashes[key] = m
	}
	for k, v := range fields {
		m[k] = v
	}
	return nil
}

func (s *memStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.hashes[key]))
	for k, v := range s.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (s *memStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		m, err := s.HGetAll(ctx, k)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

func (s *memStore) Del(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hashes, key)
	return nil
}

func (s *memStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.hashes[key]
	return ok, nil
}

func (s *memStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if s.scanErr != nil {
		return nil, s.scanErr
	}
	prefix := strings.TrimSuffix(pattern, "*")
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for k := range s.hashes {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
