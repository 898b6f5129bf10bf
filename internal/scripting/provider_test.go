package scripting_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/charplanner/internal/game/character"
	"github.com/cory-johannsen/charplanner/internal/game/ruleset"
	"github.com/cory-johannsen/charplanner/internal/scripting"
)

func providerTables() ruleset.Tables {
	t := ruleset.NewTableSet("test")
	t.AddSkill(&ruleset.Skill{ID: 103, Name: "1h Edged", Category: "Melee Weapons"})
	t.AddSkill(&ruleset.Skill{ID: 152, Name: "Body Development", Category: "Body & Defense"})
	return t
}

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func newProvider(t *testing.T, script string) *scripting.BonusProvider {
	t.Helper()
	dir := t.TempDir()
	writeScript(t, dir, "provider.lua", script)
	p, err := scripting.NewBonusProvider("test", providerTables(), zap.NewNop(), dir, 0)
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p
}

func testSnapshot() *character.Snapshot {
	snap := character.NewSnapshot("Nexus", 1, 6)
	snap.Level = 42
	return snap
}

// TestBonusProvider_NameAndIDKeys verifies stat-name keys resolve against
// the ruleset and numeric keys pass through as stat ids.
func TestBonusProvider_NameAndIDKeys(t *testing.T) {
	p := newProvider(t, `
		function bonuses(ch)
			return {
				Strength = 5,
				["1h Edged"] = 3,
				["max health"] = 50,
				[152] = 2,
			}
		end
	`)

	got, err := p.Bonuses(context.Background(), testSnapshot())
	require.NoError(t, err)
	assert.Equal(t, map[int]int{
		character.StatStrength:  5,
		103:                     3,
		character.StatMaxHealth: 50,
		152:                     2,
	}, got)
}

// TestBonusProvider_CharacterTable verifies the hook sees the snapshot's
// identity fields.
func TestBonusProvider_CharacterTable(t *testing.T) {
	p := newProvider(t, `
		function bonuses(ch)
			if ch.name ~= "Nexus" or ch.breed ~= 1 or ch.profession ~= 6 then
				error("unexpected character table")
			end
			return {[16] = ch.level}
		end
	`)

	got, err := p.Bonuses(context.Background(), testSnapshot())
	require.NoError(t, err)
	assert.Equal(t, map[int]int{character.StatStrength: 42}, got)
}

// TestBonusProvider_MissingHook verifies scripts without a bonuses
// function contribute nothing.
func TestBonusProvider_MissingHook(t *testing.T) {
	p := newProvider(t, `constants = {}`)

	got, err := p.Bonuses(context.Background(), testSnapshot())
	require.NoError(t, err)
	assert.Nil(t, got)
}

// TestBonusProvider_RuntimeError verifies Lua errors surface to the
// caller; the Integrator degrades them to an empty contribution.
func TestBonusProvider_RuntimeError(t *testing.T) {
	p := newProvider(t, `function bonuses(ch) error("boom") end`)

	_, err := p.Bonuses(context.Background(), testSnapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

// TestBonusProvider_NonTableReturn verifies a scalar return is an error
// while an explicit nil is an empty contribution.
func TestBonusProvider_NonTableReturn(t *testing.T) {
	p := newProvider(t, `function bonuses(ch) return 7 end`)
	_, err := p.Bonuses(context.Background(), testSnapshot())
	assert.ErrorContains(t, err, "want table")

	p = newProvider(t, `function bonuses(ch) return nil end`)
	got, err := p.Bonuses(context.Background(), testSnapshot())
	require.NoError(t, err)
	assert.Nil(t, got)
}

// TestBonusProvider_SkipsBadEntries verifies unknown stat names and
// non-numeric values are skipped without failing the whole contribution.
func TestBonusProvider_SkipsBadEntries(t *testing.T) {
	p := newProvider(t, `
		function bonuses(ch)
			return {
				Bogus = 5,
				Strength = "a lot",
				[152] = 2,
			}
		end
	`)

	got, err := p.Bonuses(context.Background(), testSnapshot())
	require.NoError(t, err)
	assert.Equal(t, map[int]int{152: 2}, got)
}

// TestBonusProvider_BrokenScriptFailsLoad verifies syntax errors are
// reported at construction, not first use.
func TestBonusProvider_BrokenScriptFailsLoad(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "broken.lua", `function bonuses( return end`)

	_, err := scripting.NewBonusProvider("test", providerTables(), zap.NewNop(), dir, 0)
	assert.Error(t, err)
}

// TestBonusProvider_MissingDirectory verifies an unreadable script
// directory fails construction.
func TestBonusProvider_MissingDirectory(t *testing.T) {
	_, err := scripting.NewBonusProvider("test", providerTables(), zap.NewNop(),
		filepath.Join(t.TempDir(), "nope"), 0)
	assert.Error(t, err)
}

// TestBonusProvider_FreshBudgetPerCall verifies repeated calls never
// exhaust the opcode budget: each call gets its own allowance.
func TestBonusProvider_FreshBudgetPerCall(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "provider.lua", `
		function bonuses(ch)
			local sum = 0
			for i = 1, 100 do sum = sum + i end
			return {[16] = sum}
		end
	`)
	p, err := scripting.NewBonusProvider("test", providerTables(), zap.NewNop(), dir, 2_000)
	require.NoError(t, err)
	t.Cleanup(p.Close)

	for i := 0; i < 200; i++ {
		got, err := p.Bonuses(context.Background(), testSnapshot())
		require.NoError(t, err, "call %d must not run out of budget", i)
		assert.Equal(t, 5050, got[character.StatStrength])
	}
}

// TestBonusProvider_MultipleScripts verifies scripts load in
// lexicographic order so later files can redefine the hook.
func TestBonusProvider_MultipleScripts(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "01_base.lua", `function bonuses(ch) return {[16] = 1} end`)
	writeScript(t, dir, "02_override.lua", `function bonuses(ch) return {[16] = 2} end`)
	writeScript(t, dir, "notes.txt", `ignored`)

	p, err := scripting.NewBonusProvider("test", providerTables(), zap.NewNop(), dir, 0)
	require.NoError(t, err)
	t.Cleanup(p.Close)

	got, err := p.Bonuses(context.Background(), testSnapshot())
	require.NoError(t, err)
	assert.Equal(t, map[int]int{character.StatStrength: 2}, got)
}
