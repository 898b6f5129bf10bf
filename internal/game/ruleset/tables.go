// Package ruleset provides the static, versioned game-rule tables that
// drive every build calculation: breed ability entries, profession skill
// cost factors, trickle-down weight vectors, vitals constants, and the
// cost-factor cap table. Tables are immutable after loading and selected
// by ruleset version.
package ruleset

import (
	"math"
	"sort"

	"github.com/cory-johannsen/charplanner/internal/game/character"
)

// DefaultSkillCostFactor applies to skills a profession table does not
// map, typically expansion content newer than the table.
const DefaultSkillCostFactor = 4.0

// NumTitleLevels is the number of level brackets the ruleset defines.
const NumTitleLevels = 7

// BreedAbility describes one ability for one breed.
type BreedAbility struct {
	// Initial is the value every character of the breed starts with.
	Initial int `yaml:"initial"`
	// CostFactor scales the per-point IP cost of raising the ability.
	CostFactor float64 `yaml:"cost_factor"`
	// Cap is the highest value reachable up to level 200.
	Cap int `yaml:"cap"`
	// PostCapPerLevel is added to the cap for every level past 200.
	PostCapPerLevel int `yaml:"post_cap_per_level"`
}

// BreedVitals holds the breed-side constants of the health and nano
// formulas.
type BreedVitals struct {
	BaseHealth     int `yaml:"base_health"`
	HealthPerLevel int `yaml:"health_per_level"`
	BodyDevFactor  int `yaml:"body_dev_factor"`
	BaseNano       int `yaml:"base_nano"`
	NanoPerLevel   int `yaml:"nano_per_level"`
	NanoPoolFactor int `yaml:"nano_pool_factor"`
}

// Breed is one playable breed's complete table entry.
type Breed struct {
	ID        int
	Name      string
	Abilities [character.NumAbilities]BreedAbility
	Vitals    BreedVitals
}

// Profession is one profession's complete table entry.
type Profession struct {
	ID   int
	Name string
	// SkillCosts maps skill id to that profession's cost factor. Skills
	// absent from the map cost DefaultSkillCostFactor.
	SkillCosts map[int]float64
	// HealthPerTitleLevel and NanoPerTitleLevel are the per-level gains
	// within each title-level bracket, indexed by title level - 1.
	HealthPerTitleLevel [NumTitleLevels]int
	NanoPerTitleLevel   [NumTitleLevels]int
}

// Skill is the profession-independent definition of one trainable or
// derived stat.
type Skill struct {
	ID       int
	Name     string
	Category string
	// Derived marks armor-class-like stats that never carry a trained
	// base and resolve purely from external bonuses.
	Derived bool
	// Weights is the trickle-down weight vector; HasTrickle is false for
	// skills that receive no ability trickle at all.
	Weights    [character.NumAbilities]float64
	HasTrickle bool
}

// RateRow is one row of the cost-factor cap table: how fast a skill of a
// given cost factor may be raised per level, the cumulative maxima for
// title levels 1..6, and the per-level growth past level 200.
type RateRow struct {
	CostFactor   float64
	PerLevel     int
	TitleCaps    [6]int
	PostPerLevel int
}

// RateBucket maps a cost factor to its row key: cost factors are bucketed
// to one decimal.
func RateBucket(costFactor float64) int {
	return int(math.Round(costFactor * 10))
}

// Tables is one immutable ruleset version. A process loads every shipped
// version once at startup and selects one per character; swapping ruleset
// versions is a configuration change, not a code change.
type Tables interface {
	// Version returns the ruleset version identifier, e.g. "18.8".
	Version() string
	// Breed returns the table entry for a breed id.
	Breed(id int) (*Breed, bool)
	// Profession returns the table entry for a profession id.
	Profession(id int) (*Profession, bool)
	// Skill returns the definition of a skill id.
	Skill(id int) (*Skill, bool)
	// Skills returns all defined skills ordered by id.
	Skills() []*Skill
	// SkillCostFactor returns the cost factor for a profession/skill
	// pair, falling back to DefaultSkillCostFactor for unmapped skills
	// or professions.
	SkillCostFactor(professionID, skillID int) float64
	// Rate returns the cap-table row for a cost factor.
	Rate(costFactor float64) (RateRow, bool)
}

// TableSet is the concrete Tables implementation populated by the YAML
// loader (or directly by tests).
type TableSet struct {
	version     string
	breeds      map[int]*Breed
	professions map[int]*Profession
	skills      map[int]*Skill
	rates       map[int]RateRow
}

// NewTableSet creates an empty TableSet for the given version.
//
// Precondition: version must be non-empty.
// Postcondition: Returns a non-nil set ready to accept Add calls.
func NewTableSet(version string) *TableSet {
	if version == "" {
		panic("ruleset.NewTableSet: precondition violated: version must be non-empty")
	}
	return &TableSet{
		version:     version,
		breeds:      make(map[int]*Breed),
		professions: make(map[int]*Profession),
		skills:      make(map[int]*Skill),
		rates:       make(map[int]RateRow),
	}
}

// AddBreed registers a breed entry. Last registration wins on duplicate ids.
//
// Precondition: b must be non-nil with ID > 0.
func (t *TableSet) AddBreed(b *Breed) {
	if b == nil || b.ID <= 0 {
		panic("ruleset.AddBreed: precondition violated: breed must be non-nil with positive ID")
	}
	t.breeds[b.ID] = b
}

// AddProfession registers a profession entry. Last registration wins on
// duplicate ids.
//
// Precondition: p must be non-nil with ID > 0.
func (t *TableSet) AddProfession(p *Profession) {
	if p == nil || p.ID <= 0 {
		panic("ruleset.AddProfession: precondition violated: profession must be non-nil with positive ID")
	}
	t.professions[p.ID] = p
}

// AddSkill registers a skill definition. Last registration wins on
// duplicate ids.
//
// Precondition: s must be non-nil with ID > 0.
func (t *TableSet) AddSkill(s *Skill) {
	if s == nil || s.ID <= 0 {
		panic("ruleset.AddSkill: precondition violated: skill must be non-nil with positive ID")
	}
	t.skills[s.ID] = s
}

// AddRate registers a cap-table row keyed by its cost-factor bucket.
func (t *TableSet) AddRate(r RateRow) {
	t.rates[RateBucket(r.CostFactor)] = r
}

// Version implements Tables.
func (t *TableSet) Version() string { return t.version }

// Breed implements Tables.
func (t *TableSet) Breed(id int) (*Breed, bool) {
	b, ok := t.breeds[id]
	return b, ok
}

// Profession implements Tables.
func (t *TableSet) Profession(id int) (*Profession, bool) {
	p, ok := t.professions[id]
	return p, ok
}

// Skill implements Tables.
func (t *TableSet) Skill(id int) (*Skill, bool) {
	s, ok := t.skills[id]
	return s, ok
}

// Skills implements Tables.
func (t *TableSet) Skills() []*Skill {
	out := make([]*Skill, 0, len(t.skills))
	for _, s := range t.skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SkillCostFactor implements Tables.
func (t *TableSet) SkillCostFactor(professionID, skillID int) float64 {
	p, ok := t.professions[professionID]
	if !ok {
		return DefaultSkillCostFactor
	}
	if cf, ok := p.SkillCosts[skillID]; ok {
		return cf
	}
	return DefaultSkillCostFactor
}

// Rate implements Tables.
func (t *TableSet) Rate(costFactor float64) (RateRow, bool) {
	r, ok := t.rates[RateBucket(costFactor)]
	return r, ok
}
