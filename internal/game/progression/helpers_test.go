package progression_test

import (
	"github.com/cory-johannsen/charplanner/internal/game/ruleset"
)

// Test table ids. The fixture mirrors the shape of the shipped 18.8
// content at a fraction of its size.
const (
	testBreed      = 1
	testProfession = 6

	skillEdged    = 103 // cost 1.0, three-ability trickle
	skillBodyDev  = 152 // cost 1.4, pure stamina trickle
	skillNanoPool = 132 // cost 2.2, psychic-heavy trickle
	skillFirstAid = 145 // cost 1.1, exercises per-step flooring
	skillCompLit  = 140 // unmapped, falls back to the default cost
	skillMapNav   = 160 // no trickle vector at all
	skillProjAC   = 90  // derived
)

func newTestTables() *ruleset.TableSet {
	t := ruleset.NewTableSet("test")

	solitus := &ruleset.Breed{
		ID:   testBreed,
		Name: "Solitus",
		Vitals: ruleset.BreedVitals{
			BaseHealth:     10,
			HealthPerLevel: 0,
			BodyDevFactor:  3,
			BaseNano:       10,
			NanoPerLevel:   0,
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

	adventurer := &ruleset.Profession{
		ID:   testProfession,
		Name: "Adventurer",
		SkillCosts: map[int]float64{
			skillEdged:    1.0,
			skillBodyDev:  1.4,
			skillNanoPool: 2.2,
			skillFirstAid: 1.1,
		},
		HealthPerTitleLevel: [ruleset.NumTitleLevels]int{5, 6, 7, 8, 9, 10, 11},
		NanoPerTitleLevel:   [ruleset.NumTitleLevels]int{2, 3, 3, 4, 4, 5, 5},
	}
	t.AddProfession(adventurer)

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
		ID: skillFirstAid, Name: "First Aid", Category: "Body & Defense",
		Weights:    [6]float64{0, 0.3, 0, 0.3, 0.4, 0},
		HasTrickle: true,
	})
	t.AddSkill(&ruleset.Skill{
		ID: skillCompLit, Name: "Computer Literacy", Category: "Trade & Repair",
		Weights:    [6]float64{0, 0, 0, 1.0, 0, 0},
		HasTrickle: true,
	})
	t.AddSkill(&ruleset.Skill{
		ID: skillMapNav, Name: "Map Navigation", Category: "Navigation",
	})
	t.AddSkill(&ruleset.Skill{
		ID: skillProjAC, Name: "Projectile AC", Category: "Armor Class",
		Derived: true,
	})

	t.AddRate(ruleset.RateRow{CostFactor: 1.0, PerLevel: 5, TitleCaps: [6]int{55, 230, 480, 730, 930, 1000}, PostPerLevel: 25})
	t.AddRate(ruleset.RateRow{CostFactor: 1.1, PerLevel: 5, TitleCaps: [6]int{55, 230, 480, 730, 930, 1000}, PostPerLevel: 25})
	t.AddRate(ruleset.RateRow{CostFactor: 1.4, PerLevel: 5, TitleCaps: [6]int{53, 221, 461, 701, 893, 960}, PostPerLevel: 25})
	t.AddRate(ruleset.RateRow{CostFactor: 2.2, PerLevel: 4, TitleCaps: [6]int{45, 185, 385, 585, 745, 800}, PostPerLevel: 20})
	t.AddRate(ruleset.RateRow{CostFactor: 4.0, PerLevel: 3, TitleCaps: [6]int{39, 161, 336, 511, 651, 700}, PostPerLevel: 15})

	return t
}
