package progression

// ══════════════════════════════════════════════════════════════════════════════
// RANK TABLE
// Fixed progression tiers for the Cinema Society. The table is configuration,
// not user data: thresholds, cooldown and role names are deliberately a fixed
// table rather than a pluggable policy.
// ══════════════════════════════════════════════════════════════════════════════

// Rank is one tier of the progression table.
type Rank struct {
	// Threshold is the minimum XP required to hold this rank.
	Threshold XP

	// RoleName is the exact label of the guild role for this rank.
	RoleName string
}

// RankCount is the number of tiers in the table.
const RankCount = 10

// rankTable is the fixed, strictly increasing progression table.
// Index 0 must have threshold 0 so every user has a rank.
var rankTable = [RankCount]Rank{
	{Threshold: 0, RoleName: "🎬 Side Actor"},
	{Threshold: 50, RoleName: "🧑‍🎤 Supporting Actor"},
	{Threshold: 120, RoleName: "⭐ Lead Actor"},
	{Threshold: 200, RoleName: "🎭 Script Writer"},
	{Threshold: 300, RoleName: "🎥 Cinematographer"},
	{Threshold: 450, RoleName: "🎞️ Editor"},
	{Threshold: 650, RoleName: "🎬 Director"},
	{Threshold: 900, RoleName: "💰 Executive Producer"},
	{Threshold: 1200, RoleName: "🏛️ Studio Head"},
	{Threshold: 1600, RoleName: "🌟 Legendary Producer"},
}

// ComputeLevel returns the 1-indexed rank for the given XP: the largest level
// whose threshold is met. XP beyond the last threshold clamps to the top rank.
func ComputeLevel(xp XP) Level {
	if xp < 0 {
		return 1
	}
	level := Level(1)
	for i := 1; i < RankCount; i++ {
		if xp >= rankTable[i].Threshold {
			level = Level(i + 1)
		}
	}
	return level
}

// RoleNameForLevel returns the rank role label for a level. Levels beyond the
// table clamp to the last rank.
func RoleNameForLevel(level Level) string {
	idx := int(level) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= RankCount {
		idx = RankCount - 1
	}
	return rankTable[idx].RoleName
}

// RankRoleNames returns all rank role labels in ascending rank order.
// Role synchronization walks this list to strip stale rank roles.
func RankRoleNames() []string {
	names := make([]string, 0, RankCount)
	for _, r := range rankTable {
		names = append(names, r.RoleName)
	}
	return names
}

// ThresholdForLevel returns the XP threshold of a level, clamped to the table.
func ThresholdForLevel(level Level) XP {
	idx := int(level) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= RankCount {
		idx = RankCount - 1
	}
	return rankTable[idx].Threshold
}
