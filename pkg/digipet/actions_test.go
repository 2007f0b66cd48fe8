package digipet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		v    int
		want int
	}{
		{name: "below floor", v: -10, want: 0},
		{name: "floor", v: 0, want: 0},
		{name: "in range", v: 42, want: 42},
		{name: "ceiling", v: 100, want: 100},
		{name: "above ceiling", v: 110, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.v))
		})
	}
}

func TestPetTransforms(t *testing.T) {
	floor := Pet{Happiness: 0, Nutrition: 0, Discipline: 0}
	ceiling := Pet{Happiness: 100, Nutrition: 100, Discipline: 100}

	tests := []struct {
		name string
		fn   func(Pet) Pet
		pet  Pet
		want Pet
	}{
		{name: "walk", fn: Walk, pet: Initial, want: Pet{Happiness: 60, Nutrition: 50, Discipline: 50}},
		{name: "walk at ceiling", fn: Walk, pet: ceiling, want: ceiling},
		{name: "train", fn: Train, pet: Initial, want: Pet{Happiness: 50, Nutrition: 50, Discipline: 60}},
		{name: "train at ceiling", fn: Train, pet: ceiling, want: ceiling},
		{name: "feed", fn: Feed, pet: Initial, want: Pet{Happiness: 50, Nutrition: 60, Discipline: 40}},
		{name: "feed at ceiling", fn: Feed, pet: ceiling, want: Pet{Happiness: 100, Nutrition: 100, Discipline: 90}},
		{name: "feed at floor", fn: Feed, pet: floor, want: Pet{Happiness: 0, Nutrition: 10, Discipline: 0}},
		{name: "ignore", fn: Ignore, pet: Initial, want: Pet{Happiness: 40, Nutrition: 40, Discipline: 40}},
		{name: "ignore at floor", fn: Ignore, pet: floor, want: floor},
		{name: "ignore near floor", fn: Ignore, pet: Pet{Happiness: 5, Nutrition: 15, Discipline: 3}, want: Pet{Happiness: 0, Nutrition: 5, Discipline: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(tt.pet)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestIndependence(t *testing.T) {
	pets := []Pet{
		Initial,
		{Happiness: 0, Nutrition: 100, Discipline: 37},
		{Happiness: 95, Nutrition: 3, Discipline: 100},
	}
	for _, p := range pets {
		walked := Walk(p)
		assert.Equal(t, p.Nutrition, walked.Nutrition)
		assert.Equal(t, p.Discipline, walked.Discipline)

		trained := Train(p)
		assert.Equal(t, p.Happiness, trained.Happiness)
		assert.Equal(t, p.Nutrition, trained.Nutrition)

		fed := Feed(p)
		assert.Equal(t, p.Happiness, fed.Happiness)
	}
}

func TestApply_HatchOnce(t *testing.T) {
	s, err := Apply(NoPet{}, ActionHatch)
	require.NoError(t, err)
	assert.Equal(t, HasPet{Pet: Pet{Happiness: 50, Nutrition: 50, Discipline: 50}}, s)

	walked, err := Apply(s, ActionWalk)
	require.NoError(t, err)

	again, err := Apply(walked, ActionHatch)
	assert.ErrorIs(t, err, ErrPetExists)
	assert.Equal(t, walked, again)
}

func TestApply_RehomeClears(t *testing.T) {
	s, err := Apply(HasPet{Pet: Initial}, ActionRehome)
	require.NoError(t, err)
	assert.Equal(t, NoPet{}, s)

	s, err = Apply(s, ActionRehome)
	assert.ErrorIs(t, err, ErrNoPet)
	assert.Equal(t, NoPet{}, s)
}

func TestApply_RequiresPet(t *testing.T) {
	for _, a := range []Action{ActionWalk, ActionTrain, ActionFeed, ActionIgnore, ActionRehome} {
		t.Run(string(a), func(t *testing.T) {
			s, err := Apply(NoPet{}, a)
			assert.ErrorIs(t, err, ErrNoPet)
			assert.Equal(t, NoPet{}, s)
		})
	}
}

func TestApply_IgnoreSequence(t *testing.T) {
	var s State = HasPet{Pet: Pet{Happiness: 25, Nutrition: 25, Discipline: 25}}
	for _, want := range []int{15, 5, 0, 0} {
		var err error
		s, err = Apply(s, ActionIgnore)
		require.NoError(t, err)
		assert.Equal(t, HasPet{Pet: Pet{Happiness: want, Nutrition: want, Discipline: want}}, s)
	}
}

func TestApply_FeedTradeOff(t *testing.T) {
	s, err := Apply(HasPet{Pet: Initial}, ActionFeed)
	require.NoError(t, err)
	assert.Equal(t, HasPet{Pet: Pet{Happiness: 50, Nutrition: 60, Discipline: 40}}, s)
}

func TestApply_UnknownAction(t *testing.T) {
	s, err := Apply(HasPet{Pet: Initial}, Action("dance"))
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Equal(t, HasPet{Pet: Initial}, s)
}

func TestParseAction(t *testing.T) {
	for _, a := range Actions() {
		got, err := ParseAction(string(a))
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := ParseAction("Walk")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestPetOf(t *testing.T) {
	p, ok := PetOf(HasPet{Pet: Initial})
	assert.True(t, ok)
	assert.Equal(t, Initial, p)

	_, ok = PetOf(NoPet{})
	assert.False(t, ok)
}
