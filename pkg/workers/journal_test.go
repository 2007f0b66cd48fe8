package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cbodonnell/digipet/pkg/digipet"
	"github.com/cbodonnell/digipet/pkg/messages"
	"github.com/cbodonnell/digipet/pkg/queue"
	"github.com/cbodonnell/digipet/pkg/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepository struct {
	*repositories.InMemoryRepository
}

func (r *failingRepository) SaveEvents(ctx context.Context, events []*messages.Event) error {
	return errors.New("disk full")
}

func TestJournalWorker_Flush(t *testing.T) {
	ctx := context.Background()
	repository := repositories.NewInMemoryRepository()
	eventQueue := queue.NewInMemoryQueue[*messages.Event](10)
	worker := NewJournalWorker(NewJournalWorkerOptions{
		Repository: repository,
		EventQueue: eventQueue,
		Interval:   time.Hour,
	})

	assert.Equal(t, 0, worker.Flush(ctx))

	now := time.Now()
	require.NoError(t, eventQueue.Enqueue(messages.NewEvent(digipet.ActionHatch, nil, digipet.HasPet{Pet: digipet.Initial}, now)))
	require.NoError(t, eventQueue.Enqueue(messages.NewEvent(digipet.ActionWalk, nil, digipet.HasPet{Pet: digipet.Walk(digipet.Initial)}, now)))

	assert.Equal(t, 2, worker.Flush(ctx))
	assert.Equal(t, 0, eventQueue.Size())

	events, err := repository.ListEvents(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, digipet.ActionWalk, events[0].Action)
	assert.Equal(t, digipet.ActionHatch, events[1].Action)
}

func TestJournalWorker_FlushError(t *testing.T) {
	eventQueue := queue.NewInMemoryQueue[*messages.Event](10)
	worker := NewJournalWorker(NewJournalWorkerOptions{
		Repository: &failingRepository{repositories.NewInMemoryRepository()},
		EventQueue: eventQueue,
		Interval:   time.Hour,
	})

	require.NoError(t, eventQueue.Enqueue(messages.NewEvent(digipet.ActionHatch, nil, digipet.HasPet{Pet: digipet.Initial}, time.Now())))
	assert.Equal(t, 0, worker.Flush(context.Background()))
}

func TestJournalWorker_FlushesOnShutdown(t *testing.T) {
	repository := repositories.NewInMemoryRepository()
	eventQueue := queue.NewInMemoryQueue[*messages.Event](10)
	worker := NewJournalWorker(NewJournalWorkerOptions{
		Repository: repository,
		EventQueue: eventQueue,
		Interval:   time.Hour,
	})

	event := messages.NewEvent(digipet.ActionRehome, digipet.ErrNoPet, digipet.NoPet{}, time.Now())
	require.NoError(t, eventQueue.Enqueue(event))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	got, err := repository.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)

	_, err = repository.GetEvent(context.Background(), uuid.New())
	assert.True(t, repositories.IsNotFound(err))
}
