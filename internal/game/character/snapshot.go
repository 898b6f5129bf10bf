package character

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Snapshot is the raw, durable description of a character build: identity
// plus the improvement points actually invested per ability and per skill.
// Everything else (totals, caps, trickle, ledger) is derived from it.
//
// Abilities and Skills hold raw IP-bought improvement counts, never
// resolved values. Sheet is replaced wholesale by each recalculation and
// must not be edited in place.
type Snapshot struct {
	ID         uuid.UUID
	Name       string
	Level      int
	Breed      int
	Profession int

	Abilities [NumAbilities]int
	Skills    map[int]int

	Sheet *Sheet

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSnapshot creates a level-1 snapshot with no invested improvements.
//
// Postcondition: Returns a snapshot that passes Validate for any breed in
// 0..7 and profession in 0..15.
func NewSnapshot(name string, breed, profession int) *Snapshot {
	return &Snapshot{
		Name:       name,
		Level:      MinLevel,
		Breed:      breed,
		Profession: profession,
		Skills:     make(map[int]int),
	}
}

// Validate checks the snapshot's identity ranges and improvement counts.
// Whether the breed or profession id is actually mapped in a ruleset
// version is checked later, at recalculation time.
//
// Postcondition: Returns nil or an error naming the first violated range.
func (s *Snapshot) Validate() error {
	if s.Level < MinLevel || s.Level > MaxLevel {
		return fmt.Errorf("level %d out of range [%d, %d]", s.Level, MinLevel, MaxLevel)
	}
	if s.Breed < 0 || s.Breed > MaxBreedID {
		return fmt.Errorf("breed %d out of range [0, %d]", s.Breed, MaxBreedID)
	}
	if s.Profession < 0 || s.Profession > MaxProfessionID {
		return fmt.Errorf("profession %d out of range [0, %d]", s.Profession, MaxProfessionID)
	}
	for i, raw := range s.Abilities {
		if raw < 0 {
			return fmt.Errorf("%s has negative improvements (%d)", AbilityName(i), raw)
		}
	}
	for id, raw := range s.Skills {
		if raw < 0 {
			return fmt.Errorf("skill %d has negative improvements (%d)", id, raw)
		}
	}
	return nil
}

// Clone returns a deep copy of the snapshot. The derived sheet is not
// copied; the clone starts with no sheet and must be recalculated.
func (s *Snapshot) Clone() *Snapshot {
	out := *s
	out.Sheet = nil
	out.Skills = make(map[int]int, len(s.Skills))
	for id, raw := range s.Skills {
		out.Skills[id] = raw
	}
	return &out
}
