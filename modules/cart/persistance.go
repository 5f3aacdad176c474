package cart

import "context"

// Bucket mirrors the cart somewhere durable.
type Bucket interface {

	// Restore the cart at boot.
	Restore(ctx context.Context) (State, error)

	// Save a full snapshot. Implementations must not block on I/O and must
	// not fail the caller.
	Save(State)
}
