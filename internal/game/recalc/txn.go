package recalc

import (
	"context"
	"errors"
	"fmt"

	"github.com/cory-johannsen/charplanner/internal/game/character"
	"github.com/cory-johannsen/charplanner/internal/game/progression"
)

// Transaction rejection reasons. Rejected proposals leave the snapshot
// completely unmodified.
var (
	// ErrAboveCap means the proposed value exceeds the stat's current cap.
	ErrAboveCap = errors.New("proposed value exceeds cap")
	// ErrInsufficientIP means the incremental cost exceeds the remaining budget.
	ErrInsufficientIP = errors.New("insufficient improvement points")
	// ErrDerivedStat means the stat resolves from bonuses only and cannot be trained.
	ErrDerivedStat = errors.New("derived stats cannot be trained")
)

// ProposeAbilityChange validates raising or lowering an ability to a new
// total value and, on acceptance, mutates the snapshot's raw improvements
// and re-runs the full pipeline. Lowering refunds exactly what the removed
// range cost.
//
// Precondition: ability must be in [0, character.NumAbilities).
// Postcondition: On success the returned Sheet shows the ability at
// newValue; on error the snapshot is unmodified.
func (i *Integrator) ProposeAbilityChange(ctx context.Context, snap *character.Snapshot, ability, newValue int) (*character.Sheet, error) {
	if ability < 0 || ability >= character.NumAbilities {
		return nil, fmt.Errorf("ability index %d out of range", ability)
	}
	current, err := i.Recalculate(ctx, snap)
	if err != nil {
		return nil, err
	}
	rec := current.Abilities[ability]
	if newValue > rec.Cap {
		return nil, fmt.Errorf("%s to %d (cap %d): %w",
			character.AbilityName(ability), newValue, rec.Cap, ErrAboveCap)
	}

	newRaw := newValue - rec.BonusTotal() - rec.Base
	if newRaw < 0 {
		newRaw = 0
	}
	oldRaw := snap.Abilities[ability]
	cost := progression.AbilityRangeCost(i.tables, snap.Breed, ability, oldRaw, newRaw)
	if cost > current.Ledger.Remaining {
		return nil, fmt.Errorf("%s to %d costs %d with %d remaining: %w",
			character.AbilityName(ability), newValue, cost, current.Ledger.Remaining, ErrInsufficientIP)
	}

	snap.Abilities[ability] = newRaw
	return i.Recalculate(ctx, snap)
}

// ProposeSkillChange validates raising or lowering a skill to a new total
// value and, on acceptance, mutates the snapshot's raw improvements and
// re-runs the full pipeline. The proposed value is the target total; the
// raw improvement count is derived by stripping bonuses, base, and
// trickle. Ids the ruleset does not define train at the default cost
// factor, like any other unknown snapshot entry.
//
// Postcondition: On success the returned Sheet shows the skill at
// newValue; on error the snapshot is unmodified.
func (i *Integrator) ProposeSkillChange(ctx context.Context, snap *character.Snapshot, skillID, newValue int) (*character.Sheet, error) {
	current, err := i.Recalculate(ctx, snap)
	if err != nil {
		return nil, err
	}
	if def, ok := i.tables.Skill(skillID); ok && def.Derived {
		return nil, fmt.Errorf("skill %d: %w", skillID, ErrDerivedStat)
	}
	rec, ok := current.Skill(skillID)
	if !ok {
		// An id unknown to both the ruleset and the snapshot resolves the
		// same way an unknown snapshot entry does: base value, trickle from
		// the post-bonus ability totals, and the default cost factor.
		var totals [character.NumAbilities]int
		for a := range totals {
			totals[a] = current.Abilities[a].Total
		}
		rec = character.StatRecord{
			Base:    progression.BaseSkillValue,
			Trickle: progression.TrickleDown(i.tables, totals, skillID),
			Cap:     progression.SkillNaturalCap(i.tables, snap.Level, snap.Profession, skillID, totals),
		}
		rec.Total = rec.Base + rec.Trickle
	}
	if newValue > rec.Cap {
		return nil, fmt.Errorf("skill %d to %d (cap %d): %w", skillID, newValue, rec.Cap, ErrAboveCap)
	}

	newRaw := newValue - rec.BonusTotal() - rec.Base - rec.Trickle
	if newRaw < 0 {
		newRaw = 0
	}
	oldRaw := snap.Skills[skillID]
	cost := progression.SkillRangeCost(i.tables, snap.Profession, skillID, oldRaw, newRaw)
	if cost > current.Ledger.Remaining {
		return nil, fmt.Errorf("skill %d to %d costs %d with %d remaining: %w",
			skillID, newValue, cost, current.Ledger.Remaining, ErrInsufficientIP)
	}

	if newRaw == 0 {
		delete(snap.Skills, skillID)
	} else {
		snap.Skills[skillID] = newRaw
	}
	return i.Recalculate(ctx, snap)
}
