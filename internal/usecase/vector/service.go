package vector

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/jobjedi/jobjedi/internal/domain/match"
	"github.com/jobjedi/jobjedi/internal/metrics"
)

// State is the lifecycle state of the vector client.
type State int32

const (
	// StateUninitialized means Init has not been attempted yet.
	StateUninitialized State = iota
	// StateInitializing means the single Init attempt is in flight.
	StateInitializing
	// StateReady means the backend index is available.
	StateReady
	// StateDisabled means the client is permanently degraded for this
	// process lifetime: no provider configured, or Init failed.
	StateDisabled
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Outcome is the structured result of a vector write or delete. Backend
// failures are reported here, never raised, so callers on the critical path
// stay unaffected.
type Outcome struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

// Failure reasons carried in Outcome.
const (
	ReasonNotInitialized = "service_not_initialized"
	ReasonInvalidInputs  = "invalid_inputs"
	ReasonBackendError   = "backend_error"
)

// Defaults for the resilience policy.
const (
	DefaultInitTimeout  = 10 * time.Second
	DefaultQueryTimeout = 5 * time.Second
	DefaultTopK         = 5
)

// Config holds the client's resilience knobs.
type Config struct {
	InitTimeout  time.Duration
	QueryTimeout time.Duration
	TopK         int
}

// Client fronts the embedding provider and the nearest-neighbor index with a
// resilience policy: one bounded initialization attempt per process, a
// per-query timeout that degrades to an empty result, and write outcomes
// that report failure instead of raising it. The similarity feature is an
// enhancement; its unavailability must never break the flows that call it.
type Client struct {
	index  Index
	embed  Embedder
	cfg    Config
	logger *zap.Logger

	state    atomic.Int32
	initOnce sync.Once
}

// NewClient creates a vector client. A nil index or embedder means no
// provider is configured: the client starts Disabled and every operation
// short-circuits to its benign fallback.
func NewClient(index Index, embed Embedder, cfg Config, logger *zap.Logger) *Client {
	if cfg.InitTimeout <= 0 {
		cfg.InitTimeout = DefaultInitTimeout
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = DefaultQueryTimeout
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{index: index, embed: embed, cfg: cfg, logger: logger}
	if index == nil || embed == nil {
		c.state.Store(int32(StateDisabled))
		logger.Info("Vector search disabled: no embedding provider configured")
	}
	return c
}

// State returns the current lifecycle state.
func (c *Client) State() State {
	return State(c.state.Load())
}

// Ready reports whether queries will reach the backend.
func (c *Client) Ready() bool {
	return c.State() == StateReady
}

// Init ensures the backend index exists, creating it on first run. The
// attempt is fenced: concurrent and repeated callers share a single attempt,
// bounded by the init timeout. On failure the client stays Disabled until
// the process restarts; there is no retry.
func (c *Client) Init(ctx context.Context) {
	c.initOnce.Do(func() {
		if c.State() == StateDisabled {
			return
		}
		c.state.Store(int32(StateInitializing))

		ctx, cancel := context.WithTimeout(ctx, c.cfg.InitTimeout)
		defer cancel()

		if err := c.index.EnsureIndex(ctx); err != nil {
			c.logger.Error("Vector index initialization failed, vector search disabled",
				zap.Error(err),
				zap.Duration("timeout", c.cfg.InitTimeout))
			c.state.Store(int32(StateDisabled))
			return
		}

		c.state.Store(int32(StateReady))
		c.logger.Info("Vector index ready")
	})
}

// Upsert embeds text and writes it into the owner's partition.
func (c *Client) Upsert(ctx context.Context, owner, jobKey, text string, metadata map[string]string) Outcome {
	if jobKey == "" || text == "" {
		return Outcome{Success: false, Reason: ReasonInvalidInputs}
	}
	if !c.Ready() {
		return Outcome{Success: false, Reason: ReasonNotInitialized}
	}

	res, err := c.embed.Embed(ctx, text)
	if err != nil {
		c.logger.Warn("Failed to embed text for vector upsert",
			zap.String("job_key", jobKey),
			zap.Error(err))
		return Outcome{Success: false, Reason: ReasonBackendError}
	}

	return c.upsertVector(ctx, owner, jobKey, text, res.Embedding, metadata)
}

// UpsertEmbedding writes a precomputed embedding into the owner's partition.
func (c *Client) UpsertEmbedding(ctx context.Context, owner, jobKey string, embedding []float32, metadata map[string]string) Outcome {
	if jobKey == "" || len(embedding) == 0 {
		return Outcome{Success: false, Reason: ReasonInvalidInputs}
	}
	if !c.Ready() {
		return Outcome{Success: false, Reason: ReasonNotInitialized}
	}
	return c.upsertVector(ctx, owner, jobKey, "", embedding, metadata)
}

func (c *Client) upsertVector(ctx context.Context, owner, jobKey, text string, embedding []float32, metadata map[string]string) Outcome {
	if err := c.index.Upsert(ctx, owner, jobKey, text, embedding, metadata); err != nil {
		c.logger.Warn("Vector upsert failed",
			zap.String("job_key", jobKey),
			zap.Error(err))
		return Outcome{Success: false, Reason: ReasonBackendError}
	}
	return Outcome{Success: true}
}

// Query embeds the query text and searches the owner's partition for the
// topK nearest neighbors. It never fails: a disabled client, a timeout, or a
// backend error all degrade to an empty result. Callers must treat an empty
// result as "no confident matches", not as an error.
func (c *Client) Query(ctx context.Context, owner, text string, topK int) []match.Match {
	if topK <= 0 {
		topK = c.cfg.TopK
	}
	if !c.Ready() {
		metrics.VectorSearchTotal.WithLabelValues("fallback_disabled").Inc()
		return nil
	}

	start := time.Now()
	qctx, cancel := context.WithTimeout(ctx, c.cfg.QueryTimeout)
	defer cancel()

	type queryResult struct {
		matches []match.Match
		err     error
	}
	done := make(chan queryResult, 1)

	go func() {
		emb, err := c.embed.Embed(qctx, text)
		if err != nil {
			done <- queryResult{err: err}
			return
		}
		matches, err := c.index.Query(qctx, owner, emb.Embedding, topK)
		done <- queryResult{matches: matches, err: err}
	}()

	select {
	case <-qctx.Done():
		// The in-flight call keeps its cancelled context; its eventual
		// result lands in the buffered channel and is dropped.
		c.logger.Warn("Vector search timed out, returning empty result",
			zap.String("owner", owner),
			zap.Duration("timeout", c.cfg.QueryTimeout))
		c.observe("fallback_timeout", time.Since(start))
		return nil
	case res := <-done:
		if res.err != nil {
			c.logger.Warn("Vector search failed, returning empty result",
				zap.String("owner", owner),
				zap.Error(res.err))
			c.observe("fallback_error", time.Since(start))
			return nil
		}
		c.observe("ok", time.Since(start))
		return c.filterOwner(owner, res.matches)
	}
}

// Delete removes the record for owner/jobKey.
func (c *Client) Delete(ctx context.Context, owner, jobKey string) Outcome {
	if jobKey == "" {
		return Outcome{Success: false, Reason: ReasonInvalidInputs}
	}
	if !c.Ready() {
		return Outcome{Success: false, Reason: ReasonNotInitialized}
	}

	if err := c.index.Delete(ctx, owner, jobKey); err != nil {
		c.logger.Warn("Vector delete failed",
			zap.String("job_key", jobKey),
			zap.Error(err))
		return Outcome{Success: false, Reason: ReasonBackendError}
	}
	return Outcome{Success: true}
}

// filterOwner drops any match whose identifier does not carry the requesting
// owner's segment. The backend pre-filter is the first isolation layer; this
// check is the second.
func (c *Client) filterOwner(owner string, in []match.Match) []match.Match {
	out := make([]match.Match, 0, len(in))
	for _, m := range in {
		if !m.BelongsTo(owner) {
			c.logger.Warn("Dropped cross-tenant vector match",
				zap.String("requested_owner", owner),
				zap.String("match_owner", m.Owner()))
			continue
		}
		out = append(out, m)
	}
	return out
}

func (c *Client) observe(outcome string, d time.Duration) {
	metrics.VectorSearchTotal.WithLabelValues(outcome).Inc()
	metrics.VectorSearchDuration.WithLabelValues(outcome).Observe(d.Seconds())
}
