package health

import (
	"context"

	"github.com/jobjedi/jobjedi/internal/usecase/vector"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// VectorReporter exposes the vector client lifecycle state.
type VectorReporter interface {
	State() vector.State
}
