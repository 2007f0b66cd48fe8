package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cbodonnell/digipet/pkg/digipet"
	"github.com/cbodonnell/digipet/pkg/log"
	"github.com/cbodonnell/digipet/pkg/messages"
	"github.com/cbodonnell/digipet/pkg/queue"
	"github.com/cbodonnell/digipet/pkg/state"
)

// Outcome describes the result of attempting an action.
type Outcome struct {
	Action digipet.Action
	// Legal reports whether the action was applied
	Legal bool
	// Reason is digipet.ErrPetExists or digipet.ErrNoPet when the action was not legal
	Reason error
	Before digipet.State
	After  digipet.State
}

type GameManager struct {
	stateManager  state.StateManager
	eventQueue    queue.Queue[*messages.Event]
	broadcastChan chan<- *messages.Event
	now           func() time.Time
}

// NewGameManagerOptions contains options for creating a new GameManager.
type NewGameManagerOptions struct {
	StateManager state.StateManager
	// EventQueue receives an event per attempt for the journal, optional
	EventQueue queue.Queue[*messages.Event]
	// BroadcastChan receives an event per attempt for the live feed, optional
	BroadcastChan chan<- *messages.Event
	// Now defaults to time.Now
	Now func() time.Time
}

func NewGameManager(opts NewGameManagerOptions) *GameManager {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &GameManager{
		stateManager:  opts.StateManager,
		eventQueue:    opts.EventQueue,
		broadcastChan: opts.BroadcastChan,
		now:           now,
	}
}

// Digipet returns the current state.
func (gm *GameManager) Digipet(ctx context.Context) (digipet.State, error) {
	s, err := gm.stateManager.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get digipet state: %v", err)
	}
	return s, nil
}

// Perform attempts action against the stored state.
// An illegal action is not an error: it is reported through Outcome.Legal and
// Outcome.Reason, and the stored state is left as it was. The returned error is
// non-nil only if the state could not be read or written.
func (gm *GameManager) Perform(ctx context.Context, action digipet.Action) (*Outcome, error) {
	outcome := &Outcome{Action: action}
	after, err := gm.stateManager.Update(ctx, func(before digipet.State) (digipet.State, error) {
		outcome.Before = before
		return digipet.Apply(before, action)
	})
	outcome.After = after

	switch {
	case err == nil:
		outcome.Legal = true
	case errors.Is(err, digipet.ErrPetExists), errors.Is(err, digipet.ErrNoPet):
		outcome.Reason = err
	case errors.Is(err, digipet.ErrUnknownAction):
		return nil, err
	default:
		return nil, fmt.Errorf("failed to update digipet state: %v", err)
	}

	log.Debug("Action %s legal=%t state=%+v", action, outcome.Legal, outcome.After)
	gm.publish(messages.NewEvent(action, outcome.Reason, outcome.After, gm.now()))
	return outcome, nil
}

// publish hands the event to the journal and the live feed without blocking.
func (gm *GameManager) publish(event *messages.Event) {
	if gm.eventQueue != nil {
		if err := gm.eventQueue.Enqueue(event); err != nil {
			log.Warn("Dropping journal event %s: %v", event.ID, err)
		}
	}
	if gm.broadcastChan != nil {
		select {
		case gm.broadcastChan <- event:
		default:
			log.Warn("Dropping feed event %s: broadcast channel is full", event.ID)
		}
	}
}
