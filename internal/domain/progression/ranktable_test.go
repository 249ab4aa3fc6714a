package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeLevel_Boundaries(t *testing.T) {
	cases := []struct {
		xp   XP
		want Level
	}{
		{0, 1},
		{49, 1},
		{50, 2},
		{119, 2},
		{120, 3},
		{199, 3},
		{200, 4},
		{299, 4},
		{300, 5},
		{449, 5},
		{450, 6},
		{649, 6},
		{650, 7},
		{899, 7},
		{900, 8},
		{1199, 8},
		{1200, 9},
		{1599, 9},
		{1600, 10},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ComputeLevel(tc.xp), "xp=%d", tc.xp)
	}
}

func TestComputeLevel_ClampsAboveTopThreshold(t *testing.T) {
	assert.Equal(t, Level(10), ComputeLevel(1601))
	assert.Equal(t, Level(10), ComputeLevel(999999))
}

func TestComputeLevel_NegativeXP(t *testing.T) {
	assert.Equal(t, Level(1), ComputeLevel(-5))
}

func TestComputeLevel_Monotonic(t *testing.T) {
	prev := ComputeLevel(0)
	for xp := XP(1); xp <= 2000; xp++ {
		level := ComputeLevel(xp)
		assert.GreaterOrEqual(t, level, prev, "level decreased at xp=%d", xp)
		prev = level
	}
}

func TestRoleNameForLevel(t *testing.T) {
	assert.Equal(t, "🎬 Side Actor", RoleNameForLevel(1))
	assert.Equal(t, "🧑‍🎤 Supporting Actor", RoleNameForLevel(2))
	assert.Equal(t, "🌟 Legendary Producer", RoleNameForLevel(10))

	// Out-of-range levels clamp instead of panicking.
	assert.Equal(t, "🎬 Side Actor", RoleNameForLevel(0))
	assert.Equal(t, "🌟 Legendary Producer", RoleNameForLevel(42))
}

func TestRankRoleNames(t *testing.T) {
	names := RankRoleNames()
	assert.Len(t, names, RankCount)
	assert.Equal(t, "🎬 Side Actor", names[0])
	assert.Equal(t, "🌟 Legendary Producer", names[9])

	seen := make(map[string]bool)
	for _, n := range names {
		assert.False(t, seen[n], "duplicate role name %q", n)
		seen[n] = true
	}
}

func TestThresholdForLevel(t *testing.T) {
	assert.Equal(t, XP(0), ThresholdForLevel(1))
	assert.Equal(t, XP(50), ThresholdForLevel(2))
	assert.Equal(t, XP(1600), ThresholdForLevel(10))
	assert.Equal(t, XP(1600), ThresholdForLevel(99))
}
