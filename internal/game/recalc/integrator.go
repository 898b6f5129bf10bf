package recalc

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/charplanner/internal/game/character"
	"github.com/cory-johannsen/charplanner/internal/game/progression"
	"github.com/cory-johannsen/charplanner/internal/game/ruleset"
)

// Integrator runs the recalculation pipeline: abilities first, trickle
// from the post-bonus ability totals, then every skill, then vitals and
// the ledger. The produced Sheet replaces the snapshot's previous sheet
// wholesale, so running the pipeline twice without modifications yields
// identical results.
//
// Callers must serialize recalculations per snapshot; the pipeline reads
// and rewrites the entire derived state.
type Integrator struct {
	tables ruleset.Tables
	logger *zap.Logger

	equipment BonusSource
	perks     BonusSource
	buffs     BonusSource
}

// NewIntegrator creates an Integrator. Any of the three bonus sources may
// be nil, meaning that source contributes nothing.
//
// Precondition: tables and logger must be non-nil.
func NewIntegrator(tables ruleset.Tables, logger *zap.Logger, equipment, perks, buffs BonusSource) *Integrator {
	if tables == nil {
		panic("recalc.NewIntegrator: precondition violated: tables must be non-nil")
	}
	if logger == nil {
		panic("recalc.NewIntegrator: precondition violated: logger must be non-nil")
	}
	return &Integrator{
		tables:    tables,
		logger:    logger,
		equipment: equipment,
		perks:     perks,
		buffs:     buffs,
	}
}

// Tables returns the ruleset version the Integrator computes against.
func (i *Integrator) Tables() ruleset.Tables { return i.tables }

// collect queries one bonus source, degrading any failure to an empty
// contribution. Bonus computation is best-effort and must never block the
// base recalculation.
func (i *Integrator) collect(ctx context.Context, src BonusSource, snap *character.Snapshot) map[int]int {
	if src == nil {
		return nil
	}
	values, err := func() (m map[int]int, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("bonus source panicked: %v", r)
			}
		}()
		return src.Bonuses(ctx, snap)
	}()
	if err != nil {
		i.logger.Warn("bonus source failed, treating as empty",
			zap.String("source", src.Name()),
			zap.Error(err),
		)
		return nil
	}
	return values
}

// Recalculate resolves the snapshot into a new Sheet and installs it on
// the snapshot, replacing any previous sheet.
//
// Precondition: snap must be non-nil and pass Validate; its breed and
// profession must be mapped in the ruleset.
// Postcondition: Returns the installed Sheet, or a non-nil error with the
// snapshot unmodified.
func (i *Integrator) Recalculate(ctx context.Context, snap *character.Snapshot) (*character.Sheet, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot must not be nil")
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	breed, ok := i.tables.Breed(snap.Breed)
	if !ok {
		return nil, fmt.Errorf("breed %d not defined in ruleset %s", snap.Breed, i.tables.Version())
	}
	if _, ok := i.tables.Profession(snap.Profession); !ok {
		return nil, fmt.Errorf("profession %d not defined in ruleset %s", snap.Profession, i.tables.Version())
	}

	equipment := i.collect(ctx, i.equipment, snap)
	perks := i.collect(ctx, i.perks, snap)
	buffs := i.collect(ctx, i.buffs, snap)

	sheet := &character.Sheet{
		Skills: make(map[int]character.StatRecord),
	}

	// Abilities: breed initial plus bought points, clamped to the natural
	// cap, with bonuses stacked on top uncapped.
	var abilityTotals [character.NumAbilities]int
	for a := 0; a < character.NumAbilities; a++ {
		statID := character.AbilityStatID(a)
		init := breed.Abilities[a].Initial
		raw := snap.Abilities[a]
		natCap := progression.AbilityMax(i.tables, snap.Level, snap.Breed, a)

		points := raw
		if init+points > natCap {
			points = natCap - init
		}
		if points < 0 {
			points = 0
		}

		rec := character.StatRecord{
			Base:           init,
			PointsFromIP:   points,
			IPSpent:        progression.CumulativeAbilityCost(i.tables, snap.Breed, a, raw),
			EquipmentBonus: equipment[statID],
			PerkBonus:      perks[statID],
			BuffBonus:      buffs[statID],
		}
		rec.Total = rec.NaturalTotal() + rec.BonusTotal()
		rec.Cap = natCap + rec.BonusTotal()
		sheet.Abilities[a] = rec
		abilityTotals[a] = rec.Total
	}

	// Skills: every skill the ruleset defines, plus any snapshot entries
	// the tables do not know yet (expansion content may lag the tables).
	for _, skillID := range i.skillIDs(snap) {
		def, known := i.tables.Skill(skillID)
		if known && def.Derived {
			// Derived stats never carry a trained base; they resolve
			// purely from the fresh bonus maps each pass.
			rec := character.StatRecord{
				EquipmentBonus: equipment[skillID],
				PerkBonus:      perks[skillID],
				BuffBonus:      buffs[skillID],
			}
			rec.Total = rec.BonusTotal()
			rec.Cap = rec.Total
			sheet.Skills[skillID] = rec
			continue
		}

		raw := snap.Skills[skillID]
		trickle := progression.TrickleDown(i.tables, abilityTotals, skillID)
		natCap := progression.SkillNaturalCap(i.tables, snap.Level, snap.Profession, skillID, abilityTotals)

		points := raw
		if progression.BaseSkillValue+trickle+points > natCap {
			points = natCap - progression.BaseSkillValue - trickle
		}
		if points < 0 {
			points = 0
		}

		rec := character.StatRecord{
			Base:           progression.BaseSkillValue,
			Trickle:        trickle,
			PointsFromIP:   points,
			IPSpent:        progression.CumulativeSkillCost(i.tables, snap.Profession, skillID, raw),
			EquipmentBonus: equipment[skillID],
			PerkBonus:      perks[skillID],
			BuffBonus:      buffs[skillID],
		}
		rec.Total = rec.NaturalTotal() + rec.BonusTotal()
		rec.Cap = natCap + rec.BonusTotal()
		sheet.Skills[skillID] = rec
	}

	// Vitals read the post-bonus totals of their feeder stats.
	bodyDev := sheet.Skills[character.StatBodyDevelopment].Total
	nanoPool := sheet.Skills[character.StatNanoPool].Total
	stamina := abilityTotals[character.AbilityStamina]
	hpBonus := equipment[character.StatMaxHealth] + perks[character.StatMaxHealth] + buffs[character.StatMaxHealth]
	npBonus := equipment[character.StatMaxNanoEnergy] + perks[character.StatMaxNanoEnergy] + buffs[character.StatMaxNanoEnergy]
	sheet.MaxHealth = progression.MaxHealth(i.tables, snap.Level, snap.Breed, snap.Profession, bodyDev, stamina, hpBonus)
	sheet.MaxNanoEnergy = progression.MaxNanoEnergy(i.tables, snap.Level, snap.Breed, snap.Profession, nanoPool, npBonus)

	// The ledger is computed from the raw snapshot alone so that it always
	// reflects invested IP regardless of bonus state.
	sheet.Ledger = ComputeLedger(i.tables, snap)

	snap.Sheet = sheet
	return sheet, nil
}

// skillIDs returns the union of ruleset skill ids and snapshot skill ids,
// ruleset order first.
func (i *Integrator) skillIDs(snap *character.Snapshot) []int {
	defs := i.tables.Skills()
	ids := make([]int, 0, len(defs)+len(snap.Skills))
	seen := make(map[int]bool, len(defs))
	for _, s := range defs {
		ids = append(ids, s.ID)
		seen[s.ID] = true
	}
	for id := range snap.Skills {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	return ids
}
