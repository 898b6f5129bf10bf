package progression

import "github.com/cory-johannsen/charplanner/internal/game/ruleset"

// MaxHealth returns a character's maximum health: breed base, plus the
// per-level profession gain (shifted by the breed modifier) accumulated
// across title-level brackets, plus the trained body development value
// scaled by the breed factor, plus a quarter of stamina, plus any external
// max-health bonus.
//
// bodyDev and stamina must be the current full totals including bonuses.
// Unmapped breeds or professions contribute zero for their part of the
// formula.
func MaxHealth(t ruleset.Tables, level, breedID, professionID, bodyDev, stamina, bonus int) int {
	hp := 0
	b, haveBreed := t.Breed(breedID)
	p, haveProf := t.Profession(professionID)
	if haveBreed {
		hp += b.Vitals.BaseHealth
	}
	for _, br := range Brackets(level) {
		gain := 0
		if haveProf {
			gain += p.HealthPerTitleLevel[br.TitleLevel-1]
		}
		if haveBreed {
			gain += b.Vitals.HealthPerLevel
		}
		hp += gain * br.Levels
	}
	if haveBreed {
		hp += bodyDev * b.Vitals.BodyDevFactor
	}
	hp += stamina / 4
	return hp + bonus
}

// MaxNanoEnergy returns a character's maximum nano pool: breed base, plus
// the accumulated per-level profession gain shifted by the breed modifier,
// plus the trained nano pool value scaled by the breed factor, plus any
// external max-nano bonus.
//
// nanoPool must be the current full total including bonuses.
func MaxNanoEnergy(t ruleset.Tables, level, breedID, professionID, nanoPool, bonus int) int {
	np := 0
	b, haveBreed := t.Breed(breedID)
	p, haveProf := t.Profession(professionID)
	if haveBreed {
		np += b.Vitals.BaseNano
	}
	for _, br := range Brackets(level) {
		gain := 0
		if haveProf {
			gain += p.NanoPerTitleLevel[br.TitleLevel-1]
		}
		if haveBreed {
			gain += b.Vitals.NanoPerLevel
		}
		np += gain * br.Levels
	}
	if haveBreed {
		np += nanoPool * b.Vitals.NanoPoolFactor
	}
	return np + bonus
}
