package progression

import (
	"context"
)

// ProgressStore is the persistence port for user progress, keyed uniquely by
// user ID. Implementations must make Put atomic per user row; the engine
// serializes same-user writes above this interface, so Put is a plain upsert.
type ProgressStore interface {
	// Get returns the progress for a user, or an error matching
	// shared.ErrNotFound when the user has no record yet.
	Get(ctx context.Context, userID UserID) (*UserProgress, error)

	// Put upserts the full progress row for a user.
	Put(ctx context.Context, progress *UserProgress) error

	// Top returns up to limit users ordered by XP descending.
	Top(ctx context.Context, limit int) ([]*UserProgress, error)
}
