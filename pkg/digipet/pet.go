package digipet

const (
	// MinStat is the lowest value any stat can take
	MinStat = 0
	// MaxStat is the highest value any stat can take
	MaxStat = 100
	// InitialStat is the value of every stat on a freshly hatched pet
	InitialStat = 50
	// StatDelta is the amount a single action moves a stat by
	StatDelta = 10
)

// Initial is the pet produced by hatching.
var Initial = Pet{
	Happiness:  InitialStat,
	Nutrition:  InitialStat,
	Discipline: InitialStat,
}

// Pet is the digipet and its three stats.
// All stats are kept within [MinStat, MaxStat].
type Pet struct {
	Happiness  int `json:"happiness"`
	Nutrition  int `json:"nutrition"`
	Discipline int `json:"discipline"`
}

// Clamp saturates v to [MinStat, MaxStat].
func Clamp(v int) int {
	return max(MinStat, min(MaxStat, v))
}

// Valid reports whether every stat of the pet is in range.
func (p Pet) Valid() bool {
	return p == p.clamped()
}

func (p Pet) clamped() Pet {
	return Pet{
		Happiness:  Clamp(p.Happiness),
		Nutrition:  Clamp(p.Nutrition),
		Discipline: Clamp(p.Discipline),
	}
}

// adjust applies raw deltas to each stat and clamps the result.
func (p Pet) adjust(happiness, nutrition, discipline int) Pet {
	return Pet{
		Happiness:  p.Happiness + happiness,
		Nutrition:  p.Nutrition + nutrition,
		Discipline: p.Discipline + discipline,
	}.clamped()
}

// State is either NoPet or HasPet.
type State interface {
	isState()
}

// NoPet is the state in which there is no digipet.
type NoPet struct{}

func (NoPet) isState() {}

// HasPet is the state in which a digipet exists.
type HasPet struct {
	Pet Pet
}

func (HasPet) isState() {}

// PetOf returns the pet held by s, if any.
func PetOf(s State) (Pet, bool) {
	switch s := s.(type) {
	case HasPet:
		return s.Pet, true
	default:
		return Pet{}, false
	}
}
