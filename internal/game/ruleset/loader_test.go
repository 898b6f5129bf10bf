package ruleset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/charplanner/internal/game/character"
	"github.com/cory-johannsen/charplanner/internal/game/ruleset"
)

const fixtureBreeds = `
breeds:
  - id: 1
    name: Solitus
    abilities:
      strength:     {initial: 6, cost_factor: 2, cap: 472, post_cap_per_level: 15}
      agility:      {initial: 6, cost_factor: 2, cap: 472, post_cap_per_level: 15}
      stamina:      {initial: 6, cost_factor: 2, cap: 472, post_cap_per_level: 15}
      intelligence: {initial: 6, cost_factor: 2, cap: 472, post_cap_per_level: 15}
      sense:        {initial: 6, cost_factor: 2, cap: 472, post_cap_per_level: 15}
      psychic:      {initial: 6, cost_factor: 2, cap: 472, post_cap_per_level: 15}
    vitals:
      base_health: 10
      body_dev_factor: 3
      base_nano: 10
      nano_pool_factor: 3
`

const fixtureProfessions = `
professions:
  - id: 6
    name: Adventurer
    health_per_title_level: [5, 6, 7, 8, 9, 10, 11]
    nano_per_title_level: [2, 3, 3, 4, 4, 5, 5]
    skill_costs:
      103: 1.0
`

const fixtureSkills = `
skills:
  - id: 103
    name: 1h Edged
    category: Melee Weapons
    trickle: {strength: 0.4, agility: 0.3, stamina: 0.3}
  - id: 90
    name: Projectile AC
    category: Armor Class
    derived: true
`

const fixtureRates = `
rows:
  - {cost: 1.0, rate: 5, caps: [55, 230, 480, 730, 930, 1000], post: 25}
  - {cost: 4.0, rate: 3, caps: [39, 161, 336, 511, 651, 700], post: 15}
`

func writeFixture(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
}

func fixtureFiles() map[string]string {
	return map[string]string{
		"breeds.yaml":       fixtureBreeds,
		"professions.yaml":  fixtureProfessions,
		"skills.yaml":       fixtureSkills,
		"cost_to_rate.yaml": fixtureRates,
	}
}

func TestLoadVersion(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, fixtureFiles())

	set, err := ruleset.LoadVersion(dir, "fixture")
	require.NoError(t, err)
	assert.Equal(t, "fixture", set.Version())

	b, ok := set.Breed(1)
	require.True(t, ok)
	assert.Equal(t, 6, b.Abilities[character.AbilityStrength].Initial)
	assert.Equal(t, 472, b.Abilities[character.AbilityPsychic].Cap)
	assert.Equal(t, 3, b.Vitals.BodyDevFactor)

	p, ok := set.Profession(6)
	require.True(t, ok)
	assert.Equal(t, 1.0, p.SkillCosts[103])
	assert.Equal(t, [ruleset.NumTitleLevels]int{5, 6, 7, 8, 9, 10, 11}, p.HealthPerTitleLevel)

	s, ok := set.Skill(103)
	require.True(t, ok)
	assert.True(t, s.HasTrickle)
	assert.Equal(t, 0.4, s.Weights[character.AbilityStrength])

	ac, ok := set.Skill(90)
	require.True(t, ok)
	assert.True(t, ac.Derived)
	assert.False(t, ac.HasTrickle)

	row, ok := set.Rate(1.0)
	require.True(t, ok)
	assert.Equal(t, 5, row.PerLevel)
	assert.Equal(t, [6]int{55, 230, 480, 730, 930, 1000}, row.TitleCaps)
	assert.Equal(t, 25, row.PostPerLevel)
}

func TestLoadVersion_MissingFile(t *testing.T) {
	dir := t.TempDir()
	files := fixtureFiles()
	delete(files, "skills.yaml")
	writeFixture(t, dir, files)

	_, err := ruleset.LoadVersion(dir, "fixture")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skills.yaml")
}

func TestLoadVersion_WrongAbilityCount(t *testing.T) {
	dir := t.TempDir()
	files := fixtureFiles()
	files["breeds.yaml"] = `
breeds:
  - id: 1
    name: Broken
    abilities:
      strength: {initial: 6, cost_factor: 2, cap: 472, post_cap_per_level: 15}
    vitals: {base_health: 10}
`
	writeFixture(t, dir, files)

	_, err := ruleset.LoadVersion(dir, "fixture")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 6 abilities")
}

func TestLoadVersion_UnknownAbilityKey(t *testing.T) {
	dir := t.TempDir()
	files := fixtureFiles()
	files["skills.yaml"] = `
skills:
  - id: 103
    name: 1h Edged
    trickle: {charisma: 1.0}
`
	writeFixture(t, dir, files)

	_, err := ruleset.LoadVersion(dir, "fixture")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "charisma")
}

func TestLoadVersion_ShortCapTable(t *testing.T) {
	dir := t.TempDir()
	files := fixtureFiles()
	files["cost_to_rate.yaml"] = `
rows:
  - {cost: 1.0, rate: 5, caps: [55, 230], post: 25}
`
	writeFixture(t, dir, files)

	_, err := ruleset.LoadVersion(dir, "fixture")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "6 title caps")
}

func TestLoadDirectory(t *testing.T) {
	root := t.TempDir()
	for _, version := range []string{"18.8", "18.9"} {
		dir := filepath.Join(root, version)
		require.NoError(t, os.Mkdir(dir, 0o755))
		writeFixture(t, dir, fixtureFiles())
	}
	// Stray files next to version directories are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(root, "README"), []byte("x"), 0o644))

	reg, err := ruleset.LoadDirectory(root)
	require.NoError(t, err)

	for _, version := range []string{"18.8", "18.9"} {
		tables, ok := reg.Version(version)
		require.True(t, ok, "version %s must be registered", version)
		assert.Equal(t, version, tables.Version())
	}
	_, ok := reg.Version("19.0")
	assert.False(t, ok)
}

// TestLoadDirectory_ShippedContent loads the real content tree and spot
// checks the values the rest of the test suite leans on.
func TestLoadDirectory_ShippedContent(t *testing.T) {
	reg, err := ruleset.LoadDirectory(filepath.Join("..", "..", "..", "content", "rules"))
	require.NoError(t, err)

	tables, ok := reg.Version("18.8")
	require.True(t, ok, "the 18.8 ruleset must ship with the repository")

	solitus, ok := tables.Breed(1)
	require.True(t, ok)
	assert.Equal(t, "Solitus", solitus.Name)
	for i := 0; i < character.NumAbilities; i++ {
		assert.Equal(t, 6, solitus.Abilities[i].Initial, "Solitus %s initial", character.AbilityName(i))
		assert.Equal(t, 2.0, solitus.Abilities[i].CostFactor)
	}

	adventurer, ok := tables.Profession(6)
	require.True(t, ok)
	assert.Equal(t, "Adventurer", adventurer.Name)
	assert.Equal(t, 1.0, tables.SkillCostFactor(6, 103))

	row, ok := tables.Rate(1.0)
	require.True(t, ok)
	assert.Equal(t, 5, row.PerLevel)
	assert.Equal(t, 55, row.TitleCaps[0])

	bodyDev, ok := tables.Skill(152)
	require.True(t, ok)
	assert.True(t, bodyDev.HasTrickle)
	assert.Equal(t, 1.0, bodyDev.Weights[character.AbilityStamina])

	for id := 90; id <= 97; id++ {
		ac, ok := tables.Skill(id)
		require.True(t, ok, "armor class %d must be defined", id)
		assert.True(t, ac.Derived)
	}
}
