package progression_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/charplanner/internal/game/progression"
)

// TestTotalIP_KnownValues pins the budget at level 1 and at every bracket
// boundary. The boundary values double as a regression guard for the base
// rows: each row must continue exactly where the previous bracket ends.
func TestTotalIP_KnownValues(t *testing.T) {
	cases := []struct {
		level, want int
	}{
		{1, 1500},
		{2, 5500},
		{14, 53500},
		{15, 63500},
		{49, 403500},
		{50, 423500},
		{99, 1403500},
		{100, 1443500},
		{149, 3403500},
		{150, 3483500},
		{189, 6603500},
		{190, 6753500},
		{204, 8853500},
		{205, 9453500},
		{220, 18453500},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, progression.TotalIP(c.level), "TotalIP(%d)", c.level)
	}
}

// TestTotalIP_Monotonic verifies the budget never decreases with level.
func TestTotalIP_Monotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		level := rapid.IntRange(1, 219).Draw(rt, "level")
		assert.LessOrEqual(rt, progression.TotalIP(level), progression.TotalIP(level+1),
			"TotalIP must be monotonic non-decreasing at level %d", level)
	})
}

// TestTotalIP_ContinuousAtBoundaries verifies there is no jump discontinuity
// other than the per-level rate change when entering a new bracket.
func TestTotalIP_ContinuousAtBoundaries(t *testing.T) {
	for _, boundary := range []int{15, 50, 100, 150, 190, 205} {
		below := progression.TotalIP(boundary - 1)
		at := progression.TotalIP(boundary)
		assert.Greater(t, at, below, "budget must grow entering level %d", boundary)
	}
}
