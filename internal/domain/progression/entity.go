// Package progression contains the XP/leveling domain model for the Cinema
// Society community. This is the core of the business logic - no external
// dependencies live here.
package progression

import (
	"time"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// UserID is the opaque stable identifier of a community member.
// It is assigned by the chat platform and never changes.
type UserID string

// IsValid reports whether the UserID is non-empty.
func (u UserID) IsValid() bool {
	return len(u) > 0
}

// String returns the string representation of the user ID.
func (u UserID) String() string {
	return string(u)
}

// GuildID identifies the community (guild) a member belongs to.
type GuildID string

// IsValid reports whether the GuildID is non-empty.
func (g GuildID) IsValid() bool {
	return len(g) > 0
}

// String returns the string representation of the guild ID.
func (g GuildID) String() string {
	return string(g)
}

// XP represents experience points. XP only ever grows over a user's lifetime.
type XP int

// IsValid reports whether the XP value is non-negative.
func (x XP) IsValid() bool {
	return x >= 0
}

// Add returns the XP increased by delta.
func (x XP) Add(delta XP) XP {
	return x + delta
}

// Level represents a progression rank, 1-indexed into the rank table.
type Level int

// IsValid reports whether the level is within the rank table.
func (l Level) IsValid() bool {
	return l >= 1 && int(l) <= RankCount
}

// ══════════════════════════════════════════════════════════════════════════════
// USER PROGRESS
// ══════════════════════════════════════════════════════════════════════════════

// UserProgress is the persisted XP/level state of one member.
//
// Invariants:
//   - XP is non-negative and monotonically non-decreasing.
//   - Level always equals ComputeLevel(XP) after an accrual; it is never stale
//     once recomputed and never decreases.
type UserProgress struct {
	UserID    UserID
	XP        XP
	Level     Level
	UpdatedAt time.Time
}

// NewUserProgress returns the initial progress for a user with no prior record.
// A user who has never earned XP starts at level 1 with zero XP, so the very
// first accrual cannot produce a promotion.
func NewUserProgress(userID UserID) *UserProgress {
	return &UserProgress{
		UserID: userID,
		XP:     0,
		Level:  1,
	}
}

// Validate checks the entity invariants.
func (p *UserProgress) Validate() error {
	if !p.UserID.IsValid() {
		return shared.ErrInvalidUserID
	}
	if !p.XP.IsValid() {
		return shared.NewDomainError("progression", "Validate", shared.ErrValueOutOfRange, "xp cannot be negative")
	}
	if !p.Level.IsValid() {
		return shared.NewDomainError("progression", "Validate", shared.ErrValueOutOfRange, "level outside rank table")
	}
	return nil
}

// Accrue applies an XP gain and recomputes the level from the rank table.
// It returns true when the level strictly increased. The recomputation jumps
// directly to the highest rank whose threshold is met, so a large gain close
// to several thresholds promotes in a single step.
func (p *UserProgress) Accrue(gain XP, now time.Time) bool {
	oldLevel := p.Level
	p.XP = p.XP.Add(gain)
	p.Level = ComputeLevel(p.XP)
	p.UpdatedAt = now
	return p.Level > oldLevel
}
