package progression

import (
	"math"

	"github.com/cory-johannsen/charplanner/internal/game/character"
	"github.com/cory-johannsen/charplanner/internal/game/ruleset"
)

// BaseSkillValue is the universal starting value of every trainable skill.
const BaseSkillValue = 5

// RaiseCost returns the IP cost of raising a value from v to v+1 at the
// given cost factor. Each step is floored individually; cumulative costs
// sum floored steps rather than flooring the sum.
func RaiseCost(v int, factor float64) int {
	return int(math.Floor(float64(v) * factor))
}

// cumulativeCost sums per-step raise costs for `improvements` raises
// starting at base.
func cumulativeCost(base, improvements int, factor float64) int {
	total := 0
	for v := base; v < base+improvements; v++ {
		total += RaiseCost(v, factor)
	}
	return total
}

// CumulativeAbilityCost returns the total IP spent to buy `improvements`
// raises of an ability from its breed initial value.
//
// Postcondition: Returns 0 for unmapped breeds, out-of-range ability
// indices, or non-positive improvement counts.
func CumulativeAbilityCost(t ruleset.Tables, breedID, ability, improvements int) int {
	if improvements <= 0 || ability < 0 || ability >= character.NumAbilities {
		return 0
	}
	b, ok := t.Breed(breedID)
	if !ok {
		return 0
	}
	e := b.Abilities[ability]
	return cumulativeCost(e.Initial, improvements, e.CostFactor)
}

// AbilityRangeCost returns the IP cost of moving an ability from one
// improvement count to another. Negative results are refunds: lowering a
// value returns exactly what raising across the same range would cost.
func AbilityRangeCost(t ruleset.Tables, breedID, ability, fromImprovements, toImprovements int) int {
	return CumulativeAbilityCost(t, breedID, ability, toImprovements) -
		CumulativeAbilityCost(t, breedID, ability, fromImprovements)
}

// CumulativeSkillCost returns the total IP spent to buy `improvements`
// raises of a skill from the universal base. Skills the profession table
// does not map cost ruleset.DefaultSkillCostFactor per point.
func CumulativeSkillCost(t ruleset.Tables, professionID, skillID, improvements int) int {
	if improvements <= 0 {
		return 0
	}
	return cumulativeCost(BaseSkillValue, improvements, t.SkillCostFactor(professionID, skillID))
}

// SkillRangeCost returns the IP cost of moving a skill between improvement
// counts; negative results are refunds.
func SkillRangeCost(t ruleset.Tables, professionID, skillID, fromImprovements, toImprovements int) int {
	return CumulativeSkillCost(t, professionID, skillID, toImprovements) -
		CumulativeSkillCost(t, professionID, skillID, fromImprovements)
}
