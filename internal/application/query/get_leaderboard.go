package query

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/progression"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET LEADERBOARD QUERY
// Backs the /top command. Reads go through the cache when one is configured;
// a cold cache falls through to the store and re-warms.
// ══════════════════════════════════════════════════════════════════════════════

// DefaultLeaderboardLimit is the number of entries shown by default.
const DefaultLeaderboardLimit = 10

// GetLeaderboardQuery asks for the highest-XP members.
type GetLeaderboardQuery struct {
	// Limit caps the number of entries (default 10).
	Limit int
}

// GetLeaderboardHandler handles the GetLeaderboardQuery.
type GetLeaderboardHandler struct {
	store  progression.ProgressStore
	cache  progression.LeaderboardCache // optional
	logger *slog.Logger
}

// NewGetLeaderboardHandler creates a new GetLeaderboardHandler.
// cache may be nil when Redis is disabled.
func NewGetLeaderboardHandler(
	store progression.ProgressStore,
	cache progression.LeaderboardCache,
	logger *slog.Logger,
) *GetLeaderboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetLeaderboardHandler{
		store:  store,
		cache:  cache,
		logger: logger.With("handler", "get_leaderboard"),
	}
}

// Handle executes the query.
func (h *GetLeaderboardHandler) Handle(ctx context.Context, q GetLeaderboardQuery) ([]progression.LeaderboardEntry, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	if h.cache != nil {
		entries, err := h.cache.Top(ctx, limit)
		if err == nil {
			return entries, nil
		}
		if !shared.IsNotFound(err) {
			h.logger.Warn("leaderboard cache read failed", "error", err)
		}
	}

	rows, err := h.store.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("get_leaderboard: %w", err)
	}

	entries := make([]progression.LeaderboardEntry, 0, len(rows))
	for _, p := range rows {
		entries = append(entries, progression.LeaderboardEntry{
			UserID: p.UserID,
			XP:     p.XP,
			Level:  p.Level,
		})
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, entries); err != nil {
			h.logger.Warn("leaderboard cache warm failed", "error", err)
		}
	}

	return entries, nil
}
