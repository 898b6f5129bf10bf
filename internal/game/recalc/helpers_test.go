package recalc_test

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/cory-johannsen/charplanner/internal/game/character"
	"github.com/cory-johannsen/charplanner/internal/game/recalc"
	"github.com/cory-johannsen/charplanner/internal/game/ruleset"
)

// Fixture table ids, mirroring the shipped 18.8 content at a fraction of
// its size.
const (
	testBreed      = 1
	testProfession = 6

	skillEdged    = 103 // cost 1.0
	skillBodyDev  = 152 // cost 1.4
	skillNanoPool = 132 // cost 2.2
	skillCompLit  = 140 // unmapped, default cost
	skillProjAC   = 90  // derived
)

func newTestTables() *ruleset.TableSet {
	t := ruleset.NewTableSet("test")

	solitus := &ruleset.Breed{
		ID:   testBreed,
		Name: "Solitus",
		Vitals: ruleset.BreedVitals{
			BaseHealth:     10,
			BodyDevFactor:  3,
			BaseNano:       10,
			NanoPoolFactor: 3,
		},
	}
	for i := range solitus.Abilities {
		solitus.Abilities[i] = ruleset.BreedAbility{
			Initial:         6,
			CostFactor:      2,
			Cap:             472,
			PostCapPerLevel: 15,
		}
	}
	t.AddBreed(solitus)

	t.AddProfession(&ruleset.Profession{
		ID:   testProfession,
		Name: "Adventurer",
		SkillCosts: map[int]float64{
			skillEdged:    1.0,
			skillBodyDev:  1.4,
			skillNanoPool: 2.2,
		},
		HealthPerTitleLevel: [ruleset.NumTitleLevels]int{5, 6, 7, 8, 9, 10, 11},
		NanoPerTitleLevel:   [ruleset.NumTitleLevels]int{2, 3, 3, 4, 4, 5, 5},
	})

	t.AddSkill(&ruleset.Skill{
		ID: skillEdged, Name: "1h Edged", Category: "Melee Weapons",
		Weights:    [6]float64{0.4, 0.3, 0.3, 0, 0, 0},
		HasTrickle: true,
	})
	t.AddSkill(&ruleset.Skill{
		ID: skillBodyDev, Name: "Body Development", Category: "Body & Defense",
		Weights:    [6]float64{0, 0, 1.0, 0, 0, 0},
		HasTrickle: true,
	})
	t.AddSkill(&ruleset.Skill{
		ID: skillNanoPool, Name: "Nano Pool", Category: "Nanos & Casting",
		Weights:    [6]float64{0, 0, 0.1, 0.1, 0.1, 0.7},
		HasTrickle: true,
	})
	t.AddSkill(&ruleset.Skill{
		ID: skillCompLit, Name: "Computer Literacy", Category: "Trade & Repair",
		Weights:    [6]float64{0, 0, 0, 1.0, 0, 0},
		HasTrickle: true,
	})
	t.AddSkill(&ruleset.Skill{
		ID: skillProjAC, Name: "Projectile AC", Category: "Armor Class",
		Derived: true,
	})

	t.AddRate(ruleset.RateRow{CostFactor: 1.0, PerLevel: 5, TitleCaps: [6]int{55, 230, 480, 730, 930, 1000}, PostPerLevel: 25})
	t.AddRate(ruleset.RateRow{CostFactor: 1.4, PerLevel: 5, TitleCaps: [6]int{53, 221, 461, 701, 893, 960}, PostPerLevel: 25})
	t.AddRate(ruleset.RateRow{CostFactor: 2.2, PerLevel: 4, TitleCaps: [6]int{45, 185, 385, 585, 745, 800}, PostPerLevel: 20})
	t.AddRate(ruleset.RateRow{CostFactor: 4.0, PerLevel: 3, TitleCaps: [6]int{39, 161, 336, 511, 651, 700}, PostPerLevel: 15})

	return t
}

func newIntegrator(equipment, perks, buffs recalc.BonusSource) *recalc.Integrator {
	return recalc.NewIntegrator(newTestTables(), zap.NewNop(), equipment, perks, buffs)
}

func newSnapshot(level int) *character.Snapshot {
	snap := character.NewSnapshot("Nexus", testBreed, testProfession)
	snap.Level = level
	return snap
}

// failingSource always errors.
type failingSource struct{}

func (failingSource) Name() string { return "failing" }
func (failingSource) Bonuses(context.Context, *character.Snapshot) (map[int]int, error) {
	return nil, errors.New("backend unavailable")
}

// panickingSource panics inside Bonuses.
type panickingSource struct{}

func (panickingSource) Name() string { return "panicking" }
func (panickingSource) Bonuses(context.Context, *character.Snapshot) (map[int]int, error) {
	panic("scripted source went rogue")
}
