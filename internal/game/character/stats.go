// Package character defines the character domain model: snapshots of raw
// invested improvement points and the fully-resolved stat records derived
// from them.
package character

import "fmt"

// NumAbilities is the number of core abilities every character has.
const NumAbilities = 6

// Ability indices, in canonical stat-id order.
const (
	AbilityStrength = iota
	AbilityAgility
	AbilityStamina
	AbilityIntelligence
	AbilitySense
	AbilityPsychic
)

// Stat ids shared with the game's wire format. Abilities occupy the
// contiguous block 16..21; vitals are stats like any other.
const (
	StatMaxHealth       = 1
	StatStrength        = 16
	StatAgility         = 17
	StatStamina         = 18
	StatIntelligence    = 19
	StatSense           = 20
	StatPsychic         = 21
	StatNanoPool        = 132
	StatBodyDevelopment = 152
	StatMaxNanoEnergy   = 221
)

// Level bounds supported by the ruleset.
const (
	MinLevel = 1
	MaxLevel = 220
)

// Identity id bounds. Individual ids inside these ranges may still be
// unmapped in a given ruleset version; that is a table concern, not a
// snapshot concern.
const (
	MaxBreedID      = 7
	MaxProfessionID = 15
)

var abilityNames = [NumAbilities]string{
	"Strength", "Agility", "Stamina", "Intelligence", "Sense", "Psychic",
}

var abilityKeys = [NumAbilities]string{
	"strength", "agility", "stamina", "intelligence", "sense", "psychic",
}

// AbilityName returns the display name for an ability index.
//
// Precondition: idx may be any int.
// Postcondition: Returns a placeholder of the form "<n>" for out-of-range indices.
func AbilityName(idx int) string {
	if idx < 0 || idx >= NumAbilities {
		return fmt.Sprintf("<%d>", idx)
	}
	return abilityNames[idx]
}

// AbilityKey returns the lowercase key used for an ability in rule-table
// content files.
func AbilityKey(idx int) string {
	if idx < 0 || idx >= NumAbilities {
		return fmt.Sprintf("<%d>", idx)
	}
	return abilityKeys[idx]
}

// AbilityIndexByKey resolves a lowercase content-file key to an ability index.
//
// Postcondition: Returns (index, true) for the six known keys, (0, false) otherwise.
func AbilityIndexByKey(key string) (int, bool) {
	for i, k := range abilityKeys {
		if k == key {
			return i, true
		}
	}
	return 0, false
}

// AbilityStatID returns the stat id for an ability index.
//
// Precondition: idx must be in [0, NumAbilities).
func AbilityStatID(idx int) int {
	return StatStrength + idx
}

// AbilityIndexByStat resolves a stat id to an ability index.
//
// Postcondition: Returns (index, true) for stat ids 16..21, (0, false) otherwise.
func AbilityIndexByStat(statID int) (int, bool) {
	if statID < StatStrength || statID > StatPsychic {
		return 0, false
	}
	return statID - StatStrength, true
}
