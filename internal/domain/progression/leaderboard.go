package progression

import (
	"context"
)

// LeaderboardEntry is one row of the XP leaderboard.
type LeaderboardEntry struct {
	UserID UserID
	XP     XP
	Level  Level
}

// LeaderboardCache is a hot cache in front of the progress store for
// leaderboard reads. A miss falls through to the store; writes keep the cache
// warm and a level-up invalidates it.
type LeaderboardCache interface {
	// Top returns up to limit cached entries by XP descending, or an error
	// matching shared.ErrNotFound when the cache is cold.
	Top(ctx context.Context, limit int) ([]LeaderboardEntry, error)

	// Set replaces the cached entries.
	Set(ctx context.Context, entries []LeaderboardEntry) error

	// Invalidate drops the cached leaderboard.
	Invalidate(ctx context.Context) error
}
