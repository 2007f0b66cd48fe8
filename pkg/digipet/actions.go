package digipet

import (
	"errors"
	"fmt"
)

var (
	// ErrPetExists is returned when hatching while a pet already exists.
	ErrPetExists = errors.New("digipet already exists")
	// ErrNoPet is returned when an action needs a pet and there is none.
	ErrNoPet = errors.New("no digipet")
	// ErrUnknownAction is returned for actions that are not part of the game.
	ErrUnknownAction = errors.New("unknown action")
)

type Action string

const (
	ActionHatch  Action = "hatch"
	ActionWalk   Action = "walk"
	ActionTrain  Action = "train"
	ActionFeed   Action = "feed"
	ActionIgnore Action = "ignore"
	ActionRehome Action = "rehome"
)

// Actions returns every action in the order they are usually presented.
func Actions() []Action {
	return []Action{ActionHatch, ActionWalk, ActionTrain, ActionFeed, ActionIgnore, ActionRehome}
}

// ParseAction parses an action name.
func ParseAction(name string) (Action, error) {
	for _, a := range Actions() {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownAction, name)
}

// Walk makes the pet happier.
func Walk(p Pet) Pet {
	return p.adjust(StatDelta, 0, 0)
}

// Train makes the pet more disciplined.
func Train(p Pet) Pet {
	return p.adjust(0, 0, StatDelta)
}

// Feed nourishes the pet at the cost of some discipline.
func Feed(p Pet) Pet {
	return p.adjust(0, StatDelta, -StatDelta)
}

// Ignore lowers every stat.
func Ignore(p Pet) Pet {
	return p.adjust(-StatDelta, -StatDelta, -StatDelta)
}

// Apply performs action a on state s.
// When the action is not legal in s, s is returned unchanged along with
// ErrPetExists or ErrNoPet.
func Apply(s State, a Action) (State, error) {
	switch a {
	case ActionHatch:
		return hatch(s)
	case ActionRehome:
		return rehome(s)
	case ActionWalk:
		return mutate(s, Walk)
	case ActionTrain:
		return mutate(s, Train)
	case ActionFeed:
		return mutate(s, Feed)
	case ActionIgnore:
		return mutate(s, Ignore)
	default:
		return s, fmt.Errorf("%w: %s", ErrUnknownAction, a)
	}
}

func hatch(s State) (State, error) {
	switch s.(type) {
	case NoPet:
		return HasPet{Pet: Initial}, nil
	case HasPet:
		return s, ErrPetExists
	default:
		return s, fmt.Errorf("unexpected state %T", s)
	}
}

func rehome(s State) (State, error) {
	switch s.(type) {
	case HasPet:
		return NoPet{}, nil
	case NoPet:
		return s, ErrNoPet
	default:
		return s, fmt.Errorf("unexpected state %T", s)
	}
}

func mutate(s State, fn func(Pet) Pet) (State, error) {
	switch s := s.(type) {
	case HasPet:
		return HasPet{Pet: fn(s.Pet)}, nil
	case NoPet:
		return s, ErrNoPet
	default:
		return s, fmt.Errorf("unexpected state %T", s)
	}
}
