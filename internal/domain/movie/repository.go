package movie

import (
	"context"
	"time"
)

// RecommendationRepository is the persistence port for recommendations.
type RecommendationRepository interface {
	// Save stores a new recommendation.
	Save(ctx context.Context, rec *Recommendation) error

	// Recent returns up to limit recommendations, newest first.
	Recent(ctx context.Context, limit int) ([]*Recommendation, error)

	// Rate sets the rating on every recommendation matching the movie name.
	// Returns an error matching shared.ErrNotFound when nothing matched.
	Rate(ctx context.Context, movieName string, rating int) error
}

// WatchPartyRepository is the persistence port for watch parties.
type WatchPartyRepository interface {
	// Save stores a new watch party.
	Save(ctx context.Context, party *WatchParty) error

	// Update persists status changes.
	Update(ctx context.Context, party *WatchParty) error

	// Upcoming returns parties starting after now, soonest first.
	Upcoming(ctx context.Context, now time.Time, limit int) ([]*WatchParty, error)

	// DueForReminder returns scheduled parties starting within the window.
	DueForReminder(ctx context.Context, now time.Time, window time.Duration) ([]*WatchParty, error)
}
