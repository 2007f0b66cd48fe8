package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cbodonnell/digipet/pkg/digipet"
	"github.com/cbodonnell/digipet/pkg/messages"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvents() []*messages.Event {
	start := time.UnixMilli(1700000000000)
	hatched := digipet.HasPet{Pet: digipet.Initial}
	fed := digipet.HasPet{Pet: digipet.Feed(digipet.Initial)}
	return []*messages.Event{
		messages.NewEvent(digipet.ActionHatch, nil, hatched, start),
		messages.NewEvent(digipet.ActionHatch, digipet.ErrPetExists, hatched, start.Add(time.Second)),
		messages.NewEvent(digipet.ActionFeed, nil, fed, start.Add(2*time.Second)),
		messages.NewEvent(digipet.ActionRehome, nil, digipet.NoPet{}, start.Add(3*time.Second)),
	}
}

func testRepository(t *testing.T, repository Repository) {
	ctx := context.Background()
	events := testEvents()

	require.NoError(t, repository.SaveEvents(ctx, events[:2]))
	require.NoError(t, repository.SaveEvents(ctx, events[2:]))
	require.NoError(t, repository.SaveEvents(ctx, nil))

	got, err := repository.ListEvents(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, len(events))
	for i, event := range got {
		assert.Equal(t, events[len(events)-1-i], event)
	}

	got, err = repository.ListEvents(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, events[3].ID, got[0].ID)
	assert.Equal(t, events[2].ID, got[1].ID)

	event, err := repository.GetEvent(ctx, events[1].ID)
	require.NoError(t, err)
	assert.Equal(t, events[1], event)
	assert.False(t, event.Legal)
	assert.Equal(t, digipet.ErrPetExists.Error(), event.Reason)

	event, err = repository.GetEvent(ctx, events[3].ID)
	require.NoError(t, err)
	assert.Nil(t, event.Digipet)

	_, err = repository.GetEvent(ctx, uuid.New())
	assert.True(t, IsNotFound(err))
}

func TestInMemoryRepository(t *testing.T) {
	testRepository(t, NewInMemoryRepository())
}

func TestInMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repository := NewInMemoryRepository()
	events := testEvents()
	require.NoError(t, repository.SaveEvents(ctx, events))

	events[0].Digipet.Happiness = 99

	got, err := repository.GetEvent(ctx, events[0].ID)
	require.NoError(t, err)
	assert.Equal(t, digipet.InitialStat, got.Digipet.Happiness)
}

func TestSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	repository, err := NewSQLiteRepository(ctx, filepath.Join(t.TempDir(), "digipet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repository.Close(ctx) })

	testRepository(t, repository)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	repository, err := Open(ctx, "memory://")
	require.NoError(t, err)
	assert.IsType(t, &InMemoryRepository{}, repository)

	repository, err = Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteRepository{}, repository)
	require.NoError(t, repository.Close(ctx))

	_, err = Open(ctx, "sqlite://")
	assert.Error(t, err)

	_, err = Open(ctx, "mongodb://localhost")
	assert.Error(t, err)
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultListLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultListLimit, NormalizeLimit(-3))
	assert.Equal(t, 5, NormalizeLimit(5))
	assert.Equal(t, MaxListLimit, NormalizeLimit(1000))
}
