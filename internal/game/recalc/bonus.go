// Package recalc turns a character snapshot and a ruleset into fully
// resolved stat records, vitals, and an improvement-point ledger. The
// Integrator is the only writer of derived state; modification
// transactions validate proposed changes and always re-run the full
// pipeline rather than patching records in place.
package recalc

import (
	"context"

	"github.com/cory-johannsen/charplanner/internal/game/character"
)

// BonusSource supplies one kind of externally computed stat bonuses
// (equipment, perks, or buffs) keyed by stat id. Sources are queried fresh
// on every recalculation and their results are never stored by the core;
// that is what keeps repeated recalculations from compounding bonuses.
type BonusSource interface {
	// Name identifies the source in logs.
	Name() string
	// Bonuses returns the source's stat-id keyed contributions for the
	// given snapshot. A nil map means no contributions.
	Bonuses(ctx context.Context, snap *character.Snapshot) (map[int]int, error)
}

// StaticBonuses is a BonusSource backed by a fixed map.
type StaticBonuses struct {
	name   string
	values map[int]int
}

// NewStaticBonuses creates a BonusSource that always returns the given map.
//
// Precondition: name must be non-empty; values may be nil.
func NewStaticBonuses(name string, values map[int]int) *StaticBonuses {
	return &StaticBonuses{name: name, values: values}
}

// Name implements BonusSource.
func (s *StaticBonuses) Name() string { return s.name }

// Bonuses implements BonusSource.
func (s *StaticBonuses) Bonuses(context.Context, *character.Snapshot) (map[int]int, error) {
	return s.values, nil
}
