package repositories

import (
	"context"
	"sync"

	"github.com/cbodonnell/digipet/pkg/messages"
	"github.com/google/uuid"
)

// InMemoryRepository keeps the journal in process memory.
type InMemoryRepository struct {
	lock   sync.RWMutex
	events []*messages.Event
	byID   map[uuid.UUID]*messages.Event
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID: make(map[uuid.UUID]*messages.Event),
	}
}

func (r *InMemoryRepository) Close(ctx context.Context) error {
	return nil
}

func (r *InMemoryRepository) SaveEvents(ctx context.Context, events []*messages.Event) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, event := range events {
		stored := copyEvent(event)
		r.events = append(r.events, stored)
		r.byID[stored.ID] = stored
	}
	return nil
}

func (r *InMemoryRepository) ListEvents(ctx context.Context, limit int) ([]*messages.Event, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	limit = min(NormalizeLimit(limit), len(r.events))
	events := make([]*messages.Event, 0, limit)
	for i := len(r.events) - 1; i >= 0 && len(events) < limit; i-- {
		events = append(events, copyEvent(r.events[i]))
	}
	return events, nil
}

func (r *InMemoryRepository) GetEvent(ctx context.Context, id uuid.UUID) (*messages.Event, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	event, ok := r.byID[id]
	if !ok {
		return nil, &ErrNotFound{}
	}
	return copyEvent(event), nil
}

func copyEvent(e *messages.Event) *messages.Event {
	c := *e
	if e.Digipet != nil {
		pet := *e.Digipet
		c.Digipet = &pet
	}
	return &c
}
