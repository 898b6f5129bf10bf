package character

// StatRecord is the fully-resolved view of one ability or skill.
//
// Invariant: Total == Base + Trickle + PointsFromIP + EquipmentBonus +
// PerkBonus + BuffBonus (abilities carry Trickle == 0).
// Invariant: Base + Trickle + PointsFromIP never exceeds the natural cap;
// bonuses may push Total past the natural cap but never past Cap, which
// already includes them.
type StatRecord struct {
	Base         int
	Trickle      int
	PointsFromIP int
	IPSpent      int

	EquipmentBonus int
	PerkBonus      int
	BuffBonus      int

	Total int
	Cap   int
}

// BonusTotal returns the sum of all externally supplied bonuses.
func (r *StatRecord) BonusTotal() int {
	return r.EquipmentBonus + r.PerkBonus + r.BuffBonus
}

// NaturalTotal returns the value reachable without any external bonuses.
func (r *StatRecord) NaturalTotal() int {
	return r.Base + r.Trickle + r.PointsFromIP
}

// Sheet is the derived output of one recalculation pass: every resolved
// ability and skill record plus the vitals. A sheet is always produced
// whole and swapped onto the snapshot; it is never patched incrementally.
type Sheet struct {
	Abilities [NumAbilities]StatRecord
	Skills    map[int]StatRecord

	MaxHealth     int
	MaxNanoEnergy int

	Ledger Ledger
}

// Skill returns the resolved record for a skill id.
//
// Postcondition: Returns (record, true) if the skill was part of the
// recalculation, (zero record, false) otherwise.
func (s *Sheet) Skill(id int) (StatRecord, bool) {
	r, ok := s.Skills[id]
	return r, ok
}

// Ledger is the improvement-point budget report for one snapshot. It is
// recomputed wholesale on every recalculation, never incrementally patched.
type Ledger struct {
	TotalAvailable int
	TotalUsed      int
	Remaining      int
	AbilityIP      int
	SkillIP        int
	// Efficiency is the percentage of the available budget spent, rounded
	// to the nearest whole percent. Zero when nothing is available.
	Efficiency int

	// ByAbility maps ability display names to IP spent on that ability.
	ByAbility map[string]int
	// ByCategory maps skill category names to IP spent in that category.
	ByCategory map[string]int
}
