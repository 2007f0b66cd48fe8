package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/digipet/pkg/log"
	"github.com/cbodonnell/digipet/pkg/messages"
	"github.com/cbodonnell/digipet/pkg/queue"
	"github.com/cbodonnell/digipet/pkg/repositories"
)

type JournalWorker struct {
	repository repositories.Repository
	eventQueue queue.Queue[*messages.Event]
	interval   time.Duration
}

type NewJournalWorkerOptions struct {
	Repository repositories.Repository
	EventQueue queue.Queue[*messages.Event]
	Interval   time.Duration
}

// NewJournalWorker creates a new JournalWorker.
// The worker periodically drains the event queue and
// saves the pending events to the repository.
func NewJournalWorker(opts NewJournalWorkerOptions) *JournalWorker {
	return &JournalWorker{
		repository: opts.Repository,
		eventQueue: opts.EventQueue,
		interval:   opts.Interval,
	}
}

// Start runs until ctx is done, then flushes whatever is still queued.
func (w *JournalWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// ctx is already cancelled so the final flush gets its own deadline
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			w.Flush(flushCtx)
			cancel()
			return
		case <-ticker.C:
			w.Flush(ctx)
		}
	}
}

// Flush saves all queued events and returns how many were written.
func (w *JournalWorker) Flush(ctx context.Context) int {
	events := w.eventQueue.ReadAllMessages()
	if len(events) == 0 {
		return 0
	}

	if err := w.repository.SaveEvents(ctx, events); err != nil {
		log.Error("Failed to save %d journal events: %v", len(events), err)
		return 0
	}
	log.Trace("Saved %d journal events", len(events))
	return len(events)
}
