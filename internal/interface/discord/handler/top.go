package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cinema-hub/cinema-community-bot/internal/application/query"
	"github.com/cinema-hub/cinema-community-bot/internal/interface/discord/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// TOP HANDLER
// Handles !top [n] - shows the XP leaderboard.
// ══════════════════════════════════════════════════════════════════════════════

// TopHandler handles the top command.
type TopHandler struct {
	leaderboard *query.GetLeaderboardHandler
}

// NewTopHandler creates a new TopHandler.
func NewTopHandler(leaderboard *query.GetLeaderboardHandler) *TopHandler {
	return &TopHandler{leaderboard: leaderboard}
}

// Handle processes the top command. An optional numeric argument changes how
// many entries are shown.
func (h *TopHandler) Handle(ctx context.Context, req Request) (*Response, error) {
	limit := 0
	if req.Args != "" {
		if n, err := strconv.Atoi(req.Args); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.leaderboard.Handle(ctx, query.GetLeaderboardQuery{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("top command: %w", err)
	}
	return &Response{Embed: presenter.Leaderboard(entries)}, nil
}
