package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/cbodonnell/digipet/pkg/digipet"
)

type InMemoryStateManager struct {
	lock  sync.RWMutex
	state digipet.State
}

// NewInMemoryStateManager creates a state manager with no digipet.
func NewInMemoryStateManager() *InMemoryStateManager {
	return NewInMemoryStateManagerWithState(digipet.NoPet{})
}

// NewInMemoryStateManagerWithState creates a state manager holding s.
// It panics if s is nil.
func NewInMemoryStateManagerWithState(s digipet.State) *InMemoryStateManager {
	if s == nil {
		panic("digipet state is nil")
	}
	return &InMemoryStateManager{
		state: s,
	}
}

// Get returns the current state. States are values, so the caller owns the result.
func (m *InMemoryStateManager) Get(ctx context.Context) (digipet.State, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.state, nil
}

func (m *InMemoryStateManager) Set(ctx context.Context, s digipet.State) error {
	if s == nil {
		return fmt.Errorf("digipet state is nil")
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	m.state = s
	return nil
}

func (m *InMemoryStateManager) Clear(ctx context.Context) error {
	return m.Set(ctx, digipet.NoPet{})
}

func (m *InMemoryStateManager) Update(ctx context.Context, fn func(digipet.State) (digipet.State, error)) (digipet.State, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	next, err := fn(m.state)
	if err != nil {
		return m.state, err
	}
	if next == nil {
		return m.state, fmt.Errorf("digipet state is nil")
	}

	m.state = next
	return next, nil
}
