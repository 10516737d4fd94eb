package vector

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jobjedi/jobjedi/internal/domain"
	"github.com/jobjedi/jobjedi/internal/domain/match"
)

func readyClient(t *testing.T, index *mockIndex, embed *mockEmbedder, cfg Config) *Client {
	t.Helper()
	c := NewClient(index, embed, cfg, nil)
	c.Init(context.Background())
	if c.State() != StateReady {
		t.Fatalf("client state = %s, want ready", c.State())
	}
	return c
}

func TestNewClientWithoutProviderIsDisabled(t *testing.T) {
	c := NewClient(nil, nil, Config{}, nil)
	if c.State() != StateDisabled {
		t.Fatalf("state = %s, want disabled", c.State())
	}

	// Init must not resurrect a provider-less client.
	c.Init(context.Background())
	if c.State() != StateDisabled {
		t.Errorf("state after Init = %s, want disabled", c.State())
	}

	if got := c.Query(context.Background(), "alice@example.com", "go engineer", 5); got != nil {
		t.Errorf("disabled query = %v, want nil", got)
	}
	if out := c.Upsert(context.Background(), "alice@example.com", "job-1", "text", nil); out.Success || out.Reason != ReasonNotInitialized {
		t.Errorf("disabled upsert outcome = %+v", out)
	}
	if out := c.Delete(context.Background(), "alice@example.com", "job-1"); out.Success || out.Reason != ReasonNotInitialized {
		t.Errorf("disabled delete outcome = %+v", out)
	}
}

func TestInitSuccess(t *testing.T) {
	index := &mockIndex{}
	c := NewClient(index, &mockEmbedder{}, Config{}, nil)

	if c.State() != StateUninitialized {
		t.Fatalf("initial state = %s, want uninitialized", c.State())
	}
	c.Init(context.Background())
	if c.State() != StateReady {
		t.Errorf("state after Init = %s, want ready", c.State())
	}
}

func TestInitFailureDisablesPermanently(t *testing.T) {
	var calls atomic.Int32
	index := &mockIndex{
		EnsureIndexFn: func(ctx context.Context) error {
			calls.Add(1)
			return errors.New("backend unreachable")
		},
	}
	c := NewClient(index, &mockEmbedder{}, Config{}, nil)

	c.Init(context.Background())
	if c.State() != StateDisabled {
		t.Fatalf("state after failed Init = %s, want disabled", c.State())
	}

	// No retry: repeated Init calls never touch the backend again.
	c.Init(context.Background())
	c.Init(context.Background())
	if got := calls.Load(); got != 1 {
		t.Errorf("EnsureIndex called %d times, want 1", got)
	}
}

func TestInitFencedAgainstConcurrentCallers(t *testing.T) {
	var calls atomic.Int32
	index := &mockIndex{
		EnsureIndexFn: func(ctx context.Context) error {
			calls.Add(1)
			time.Sleep(10 * time.Millisecond)
			return nil
		},
	}
	c := NewClient(index, &mockEmbedder{}, Config{}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Init(context.Background())
		}()
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("EnsureIndex called %d times, want 1", got)
	}
	if c.State() != StateReady {
		t.Errorf("state = %s, want ready", c.State())
	}
}

func TestInitTimeoutDisables(t *testing.T) {
	index := &mockIndex{
		EnsureIndexFn: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}
	c := NewClient(index, &mockEmbedder{}, Config{InitTimeout: 20 * time.Millisecond}, nil)

	c.Init(context.Background())
	if c.State() != StateDisabled {
		t.Errorf("state after timed-out Init = %s, want disabled", c.State())
	}
}

func TestUpsertInvalidInputsSkipBackend(t *testing.T) {
	index := &mockIndex{
		UpsertFn: func(ctx context.Context, owner, jobKey, text string, vector []float32, metadata map[string]string) error {
			t.Error("backend Upsert should not be called for invalid inputs")
			return nil
		},
	}
	embed := &mockEmbedder{}
	c := readyClient(t, index, embed, Config{})

	if out := c.Upsert(context.Background(), "alice@example.com", "", "text", nil); out.Success || out.Reason != ReasonInvalidInputs {
		t.Errorf("empty jobKey outcome = %+v", out)
	}
	if out := c.Upsert(context.Background(), "alice@example.com", "job-1", "", nil); out.Success || out.Reason != ReasonInvalidInputs {
		t.Errorf("empty text outcome = %+v", out)
	}
	if out := c.UpsertEmbedding(context.Background(), "alice@example.com", "job-1", nil, nil); out.Success || out.Reason != ReasonInvalidInputs {
		t.Errorf("empty embedding outcome = %+v", out)
	}
}

func TestUpsertBeforeInit(t *testing.T) {
	c := NewClient(&mockIndex{}, &mockEmbedder{}, Config{}, nil)
	if out := c.Upsert(context.Background(), "alice@example.com", "job-1", "text", nil); out.Success || out.Reason != ReasonNotInitialized {
		t.Errorf("outcome = %+v, want service_not_initialized", out)
	}
}

func TestUpsertEmbedsAndWrites(t *testing.T) {
	var gotText string
	var gotVector []float32
	index := &mockIndex{
		UpsertFn: func(ctx context.Context, owner, jobKey, text string, vector []float32, metadata map[string]string) error {
			gotText = text
			gotVector = vector
			return nil
		},
	}
	c := readyClient(t, index, &mockEmbedder{}, Config{})

	out := c.Upsert(context.Background(), "alice@example.com", "job-1", "Senior Go engineer", map[string]string{"company": "Acme"})
	if !out.Success {
		t.Fatalf("outcome = %+v, want success", out)
	}
	if gotText != "Senior Go engineer" {
		t.Errorf("stored text = %q", gotText)
	}
	if len(gotVector) != 3 {
		t.Errorf("stored vector = %v, want the embedder output", gotVector)
	}
}

func TestUpsertBackendFailureIsReportedNotRaised(t *testing.T) {
	index := &mockIndex{
		UpsertFn: func(ctx context.Context, owner, jobKey, text string, vector []float32, metadata map[string]string) error {
			return errors.New("write failed")
		},
	}
	c := readyClient(t, index, &mockEmbedder{}, Config{})

	if out := c.Upsert(context.Background(), "alice@example.com", "job-1", "text", nil); out.Success || out.Reason != ReasonBackendError {
		t.Errorf("outcome = %+v, want backend_error", out)
	}
}

func TestQueryReturnsMatches(t *testing.T) {
	index := &mockIndex{
		QueryFn: func(ctx context.Context, owner string, vector []float32, topK int) ([]match.Match, error) {
			if topK != 5 {
				t.Errorf("topK = %d, want default 5", topK)
			}
			return []match.Match{
				mustMatch("alice@example.com|||job-1", 0.9),
				mustMatch("alice@example.com|||job-2", 0.7),
			}, nil
		},
	}
	c := readyClient(t, index, &mockEmbedder{}, Config{})

	got := c.Query(context.Background(), "alice@example.com", "go engineer", 0)
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2", len(got))
	}
	if got[0].JobKey() != "job-1" || got[1].JobKey() != "job-2" {
		t.Errorf("matches = %v", got)
	}
}

func TestQueryFiltersCrossTenantMatches(t *testing.T) {
	index := &mockIndex{
		QueryFn: func(ctx context.Context, owner string, vector []float32, topK int) ([]match.Match, error) {
			return []match.Match{
				mustMatch("alice@example.com|||job-1", 0.9),
				mustMatch("mallory@example.com|||job-9", 0.8),
			}, nil
		},
	}
	c := readyClient(t, index, &mockEmbedder{}, Config{})

	got := c.Query(context.Background(), "alice@example.com", "go engineer", 5)
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1 after tenant filtering", len(got))
	}
	if got[0].Owner() != "alice@example.com" {
		t.Errorf("surviving match owner = %q", got[0].Owner())
	}
}

func TestQueryTimeoutFallsBackToEmpty(t *testing.T) {
	index := &mockIndex{
		QueryFn: func(ctx context.Context, owner string, vector []float32, topK int) ([]match.Match, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	c := readyClient(t, index, &mockEmbedder{}, Config{QueryTimeout: 30 * time.Millisecond})

	start := time.Now()
	got := c.Query(context.Background(), "alice@example.com", "go engineer", 5)
	elapsed := time.Since(start)

	if got != nil {
		t.Errorf("timed-out query = %v, want nil", got)
	}
	if elapsed > time.Second {
		t.Errorf("query took %s, should return promptly after the timeout", elapsed)
	}
}

func TestQueryBackendErrorFallsBackToEmpty(t *testing.T) {
	index := &mockIndex{
		QueryFn: func(ctx context.Context, owner string, vector []float32, topK int) ([]match.Match, error) {
			return nil, errors.New("search unavailable")
		},
	}
	c := readyClient(t, index, &mockEmbedder{}, Config{})

	if got := c.Query(context.Background(), "alice@example.com", "go engineer", 5); got != nil {
		t.Errorf("failed query = %v, want nil", got)
	}
}

func TestQueryEmbedErrorFallsBackToEmpty(t *testing.T) {
	index := &mockIndex{
		QueryFn: func(ctx context.Context, owner string, vector []float32, topK int) ([]match.Match, error) {
			t.Error("index should not be queried when embedding fails")
			return nil, nil
		},
	}
	embed := &mockEmbedder{
		EmbedFn: func(ctx context.Context, text string) (domain.EmbeddingResult, error) {
			return domain.EmbeddingResult{}, errors.New("provider down")
		},
	}
	c := readyClient(t, index, embed, Config{})

	if got := c.Query(context.Background(), "alice@example.com", "go engineer", 5); got != nil {
		t.Errorf("query with failing embedder = %v, want nil", got)
	}
}

func TestDeleteOutcomes(t *testing.T) {
	delErr := errors.New("delete failed")
	index := &mockIndex{
		DeleteFn: func(ctx context.Context, owner, jobKey string) error {
			if jobKey == "boom" {
				return delErr
			}
			return nil
		},
	}
	c := readyClient(t, index, &mockEmbedder{}, Config{})

	if out := c.Delete(context.Background(), "alice@example.com", "job-1"); !out.Success {
		t.Errorf("delete outcome = %+v, want success", out)
	}
	if out := c.Delete(context.Background(), "alice@example.com", "boom"); out.Success || out.Reason != ReasonBackendError {
		t.Errorf("failed delete outcome = %+v, want backend_error", out)
	}
	if out := c.Delete(context.Background(), "alice@example.com", ""); out.Success || out.Reason != ReasonInvalidInputs {
		t.Errorf("empty jobKey delete outcome = %+v, want invalid_inputs", out)
	}
}
