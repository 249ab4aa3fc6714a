package handler

import (
	"context"
	"fmt"

	"github.com/cinema-hub/cinema-community-bot/internal/application/query"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/progression"
	"github.com/cinema-hub/cinema-community-bot/internal/interface/discord/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEVEL HANDLER
// Handles !level - shows the member's XP, level and next rank threshold.
// ══════════════════════════════════════════════════════════════════════════════

// LevelHandler handles the level command.
type LevelHandler struct {
	progress *query.GetProgressHandler
}

// NewLevelHandler creates a new LevelHandler.
func NewLevelHandler(progress *query.GetProgressHandler) *LevelHandler {
	return &LevelHandler{progress: progress}
}

// Handle processes the level command.
func (h *LevelHandler) Handle(ctx context.Context, req Request) (*Response, error) {
	res, err := h.progress.Handle(ctx, query.GetProgressQuery{
		UserID: progression.UserID(req.UserID),
	})
	if err != nil {
		return nil, fmt.Errorf("level command: %w", err)
	}
	return &Response{Content: presenter.Level(req.Mention, res)}, nil
}
