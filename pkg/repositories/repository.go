package repositories

import (
	"context"

	"github.com/cbodonnell/digipet/pkg/messages"
	"github.com/google/uuid"
)

const (
	// DefaultListLimit is used when ListEvents is called with a non-positive limit
	DefaultListLimit = 20
	// MaxListLimit caps the number of events returned by ListEvents
	MaxListLimit = 100
)

// Repository stores the journal of action attempts.
type Repository interface {
	Close(ctx context.Context) error
	// SaveEvents appends events to the journal in order.
	SaveEvents(ctx context.Context, events []*messages.Event) error
	// ListEvents returns up to limit events, newest first.
	ListEvents(ctx context.Context, limit int) ([]*messages.Event, error)
	// GetEvent returns the event with the given ID or ErrNotFound.
	GetEvent(ctx context.Context, id uuid.UUID) (*messages.Event, error)
}

// NormalizeLimit maps limit into [1, MaxListLimit], using DefaultListLimit for non-positive values.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}
