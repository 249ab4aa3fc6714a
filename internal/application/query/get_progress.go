// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"fmt"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/progression"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PROGRESS QUERY
// Backs the /level command: a member's current XP, level and rank role.
// ══════════════════════════════════════════════════════════════════════════════

// GetProgressQuery asks for one member's progression state.
type GetProgressQuery struct {
	// UserID is the member to look up.
	UserID progression.UserID
}

// GetProgressResult is the member's progression state.
type GetProgressResult struct {
	// Found is false when the member has never earned XP.
	Found bool

	// XP is the current experience total.
	XP int

	// Level is the current rank, 1-indexed.
	Level int

	// RoleName is the rank role label for the level.
	RoleName string

	// NextThreshold is the XP needed for the next rank; zero at the top rank.
	NextThreshold int
}

// GetProgressHandler handles the GetProgressQuery.
type GetProgressHandler struct {
	store progression.ProgressStore
}

// NewGetProgressHandler creates a new GetProgressHandler.
func NewGetProgressHandler(store progression.ProgressStore) *GetProgressHandler {
	return &GetProgressHandler{store: store}
}

// Handle executes the query.
func (h *GetProgressHandler) Handle(ctx context.Context, q GetProgressQuery) (*GetProgressResult, error) {
	if !q.UserID.IsValid() {
		return nil, shared.ErrInvalidUserID
	}

	progress, err := h.store.Get(ctx, q.UserID)
	if err != nil {
		if shared.IsNotFound(err) {
			return &GetProgressResult{Found: false}, nil
		}
		return nil, fmt.Errorf("get_progress: %w", err)
	}

	result := &GetProgressResult{
		Found:    true,
		XP:       int(progress.XP),
		Level:    int(progress.Level),
		RoleName: progression.RoleNameForLevel(progress.Level),
	}
	if int(progress.Level) < progression.RankCount {
		result.NextThreshold = int(progression.ThresholdForLevel(progress.Level + 1))
	}
	return result, nil
}
