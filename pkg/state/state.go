package state

import (
	"context"

	"github.com/cbodonnell/digipet/pkg/digipet"
)

// StateManager provides shared access to the digipet state.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns the current state.
	Get(ctx context.Context) (digipet.State, error)
	// Set replaces the current state.
	Set(ctx context.Context, s digipet.State) error
	// Clear removes the digipet, if any.
	Clear(ctx context.Context) error
	// Update applies fn to the current state and stores the result.
	// No other mutation can interleave between reading and writing.
	// If fn returns an error the state is not changed and the current
	// state is returned alongside the error.
	Update(ctx context.Context, fn func(digipet.State) (digipet.State, error)) (digipet.State, error)
}
