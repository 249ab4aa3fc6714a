package query

import (
	"context"
	"fmt"
	"time"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/movie"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST WATCH PARTIES QUERY
// ══════════════════════════════════════════════════════════════════════════════

// DefaultWatchPartyLimit is how many upcoming parties are shown.
const DefaultWatchPartyLimit = 5

// ListWatchPartiesQuery asks for upcoming watch parties, soonest first.
type ListWatchPartiesQuery struct {
	// Now anchors "upcoming" (defaults to the current time if zero).
	Now time.Time

	// Limit caps the number of entries (default 5).
	Limit int
}

// ListWatchPartiesHandler handles the ListWatchPartiesQuery.
type ListWatchPartiesHandler struct {
	parties movie.WatchPartyRepository
}

// NewListWatchPartiesHandler creates a new ListWatchPartiesHandler.
func NewListWatchPartiesHandler(parties movie.WatchPartyRepository) *ListWatchPartiesHandler {
	return &ListWatchPartiesHandler{parties: parties}
}

// Handle executes the query.
func (h *ListWatchPartiesHandler) Handle(ctx context.Context, q ListWatchPartiesQuery) ([]*movie.WatchParty, error) {
	now := q.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultWatchPartyLimit
	}

	parties, err := h.parties.Upcoming(ctx, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list_watch_parties: %w", err)
	}
	return parties, nil
}
