package progression

import (
	"math"

	"github.com/cory-johannsen/charplanner/internal/game/character"
	"github.com/cory-johannsen/charplanner/internal/game/ruleset"
)

// WeightedAbility returns the raw trickle-down weighted sum for a skill:
// sum(ability[i] * weight[i]) / 4. The abilities passed in must be the
// current full totals including external bonuses; trickle-down is a live
// mechanic that reacts to buffed and equipped abilities.
//
// Postcondition: Returns (0, false) for skills without a weight vector.
func WeightedAbility(t ruleset.Tables, abilities [character.NumAbilities]int, skillID int) (float64, bool) {
	s, ok := t.Skill(skillID)
	if !ok || !s.HasTrickle {
		return 0, false
	}
	sum := 0.0
	for i, a := range abilities {
		sum += float64(a) * s.Weights[i]
	}
	return sum / 4.0, true
}

// TrickleDown returns the whole-point trickle bonus a skill receives from
// the given ability totals: floor of the weighted sum. Skills without a
// weight vector trickle 0.
func TrickleDown(t ruleset.Tables, abilities [character.NumAbilities]int, skillID int) int {
	w, ok := WeightedAbility(t, abilities, skillID)
	if !ok {
		return 0
	}
	return int(math.Floor(w))
}
