package workers

import (
	"context"

	"github.com/cbodonnell/digipet/pkg/messages"
)

// Broadcaster delivers an event to live subscribers.
type Broadcaster interface {
	Broadcast(event *messages.Event)
}

type BroadcastEventWorker struct {
	broadcaster Broadcaster
	eventChan   <-chan *messages.Event
}

type NewBroadcastEventWorkerOptions struct {
	Broadcaster Broadcaster
	EventChan   <-chan *messages.Event
}

func NewBroadcastEventWorker(opts NewBroadcastEventWorkerOptions) *BroadcastEventWorker {
	return &BroadcastEventWorker{
		broadcaster: opts.Broadcaster,
		eventChan:   opts.EventChan,
	}
}

func (w *BroadcastEventWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.eventChan:
			if !ok {
				return
			}
			w.broadcaster.Broadcast(event)
		}
	}
}
