package progression

import (
	"math"

	"github.com/cory-johannsen/charplanner/internal/game/character"
	"github.com/cory-johannsen/charplanner/internal/game/ruleset"
)

// AbilityMax returns the natural cap of an ability: breed initial plus the
// level-dependent adjustable range. Up to level 200 the range grows three
// points per level until the breed cap; past 200 the breed cap itself
// grows by a per-breed per-ability increment each level.
//
// Postcondition: Returns 0 for unmapped breeds or out-of-range ability
// indices.
func AbilityMax(t ruleset.Tables, level, breedID, ability int) int {
	if ability < 0 || ability >= character.NumAbilities {
		return 0
	}
	b, ok := t.Breed(breedID)
	if !ok {
		return 0
	}
	e := b.Abilities[ability]
	if level > 200 {
		return e.Cap + (level-200)*e.PostCapPerLevel
	}
	rng := level*3 + e.Initial
	if max := e.Cap - e.Initial; rng > max {
		rng = max
	}
	return e.Initial + rng
}

// LevelBasedRange returns how many points of a skill with the given cost
// factor can be IP-trained at the given level. Up to level 200 the range
// accumulates the row's per-level rate across title-level brackets, each
// bracket bounded by its cumulative maximum; past 200 it is the title
// level 6 maximum plus a per-level increment.
//
// Postcondition: Returns 0 when the cost factor has no cap-table row.
func LevelBasedRange(t ruleset.Tables, level int, costFactor float64) int {
	row, ok := t.Rate(costFactor)
	if !ok {
		return 0
	}
	if level > 200 {
		return row.TitleCaps[5] + (level-200)*row.PostPerLevel
	}
	rng := 0
	for _, br := range Brackets(level) {
		rng += row.PerLevel * br.Levels
		if cap := row.TitleCaps[br.TitleLevel-1]; rng > cap {
			rng = cap
		}
	}
	return rng
}

// AbilityBasedRange converts a skill's trickle-down weighted sum into the
// training ceiling imposed by raw ability investment, independent of
// level: round-half-up of (weighted - 5) * 2 + 5, never negative.
func AbilityBasedRange(weighted float64) int {
	r := roundHalfUp((weighted-5)*2 + 5)
	if r < 0 {
		return 0
	}
	return r
}

// SkillNaturalCap returns the highest value a skill can reach through
// base, trickle, and IP training alone: base + trickle + the smaller of
// the level-based and ability-based ranges. Skills without a trickle
// weight vector are bounded by level alone. The ability totals must be
// the current post-bonus totals.
func SkillNaturalCap(t ruleset.Tables, level, professionID, skillID int, abilities [character.NumAbilities]int) int {
	cf := t.SkillCostFactor(professionID, skillID)
	rng := LevelBasedRange(t, level, cf)
	if w, ok := WeightedAbility(t, abilities, skillID); ok {
		if ar := AbilityBasedRange(w); ar < rng {
			rng = ar
		}
	}
	return BaseSkillValue + TrickleDown(t, abilities, skillID) + rng
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
