package recalc

import (
	"math"

	"github.com/cory-johannsen/charplanner/internal/game/character"
	"github.com/cory-johannsen/charplanner/internal/game/progression"
	"github.com/cory-johannsen/charplanner/internal/game/ruleset"
)

// uncategorized is the ledger bucket for skills the ruleset does not map.
const uncategorized = "Uncategorized"

// ComputeLedger builds the improvement-point budget report from the raw
// snapshot. It deliberately ignores any derived sheet state: totals come
// from invested improvements only, never from bonus-inflated values.
// Remaining may be negative; that is a validation finding, not a clamp.
func ComputeLedger(t ruleset.Tables, snap *character.Snapshot) character.Ledger {
	ledger := character.Ledger{
		TotalAvailable: progression.TotalIP(snap.Level),
		ByAbility:      make(map[string]int, character.NumAbilities),
		ByCategory:     make(map[string]int),
	}

	for a := 0; a < character.NumAbilities; a++ {
		spent := progression.CumulativeAbilityCost(t, snap.Breed, a, snap.Abilities[a])
		ledger.AbilityIP += spent
		ledger.ByAbility[character.AbilityName(a)] = spent
	}

	for skillID, raw := range snap.Skills {
		category := uncategorized
		if def, ok := t.Skill(skillID); ok {
			if def.Derived {
				continue
			}
			category = def.Category
		}
		spent := progression.CumulativeSkillCost(t, snap.Profession, skillID, raw)
		ledger.SkillIP += spent
		ledger.ByCategory[category] += spent
	}

	ledger.TotalUsed = ledger.AbilityIP + ledger.SkillIP
	ledger.Remaining = ledger.TotalAvailable - ledger.TotalUsed
	if ledger.TotalAvailable > 0 {
		ledger.Efficiency = int(math.Round(100 * float64(ledger.TotalUsed) / float64(ledger.TotalAvailable)))
	}
	return ledger
}
