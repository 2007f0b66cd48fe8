package messages

import (
	"time"

	"github.com/cbodonnell/digipet/pkg/digipet"
	"github.com/google/uuid"
)

// Response is the body of every digipet API response.
type Response struct {
	Message string       `json:"message"`
	Digipet *digipet.Pet `json:"digipet,omitempty"`
}

// Health is the body of the health check response.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Event records a single action attempt.
type Event struct {
	ID     uuid.UUID      `json:"id"`
	Action digipet.Action `json:"action"`
	// Legal is false when the action was rejected by the game rules.
	Legal bool `json:"legal"`
	// Reason explains why the action was rejected
	Reason string `json:"reason,omitempty"`
	// Digipet is the pet after the attempt, nil when there is none
	Digipet *digipet.Pet `json:"digipet,omitempty"`
	// Timestamp is the time of the attempt in unix milliseconds
	Timestamp int64 `json:"timestamp"`
}

// NewEvent creates an event for an attempt of action that left the game in
// state after. reason is nil for legal attempts.
func NewEvent(action digipet.Action, reason error, after digipet.State, at time.Time) *Event {
	e := &Event{
		ID:        uuid.New(),
		Action:    action,
		Legal:     reason == nil,
		Timestamp: at.UnixMilli(),
	}
	if reason != nil {
		e.Reason = reason.Error()
	}
	e.Digipet = PetPointer(after)
	return e
}

// PetPointer returns the pet held by s, or nil when there is none.
func PetPointer(s digipet.State) *digipet.Pet {
	if pet, ok := digipet.PetOf(s); ok {
		return &pet
	}
	return nil
}
