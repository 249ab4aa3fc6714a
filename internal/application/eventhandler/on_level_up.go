// Package eventhandler contains handlers for domain events. They are the
// reactive part of the system: they respond to changes and run side effects
// like cache invalidation, without the emitting command knowing about them.
package eventhandler

import (
	"context"
	"log/slog"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/progression"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// ON LEVEL UP HANDLER
// A promotion changes the leaderboard ordering, so the cached leaderboard is
// dropped and the next /top read re-warms it from the store.
// ═══════════════════════════════════════════════════════════════════════════

// OnLevelUpHandler reacts to LevelUpEvent.
type OnLevelUpHandler struct {
	cache  progression.LeaderboardCache
	logger *slog.Logger
}

// NewOnLevelUpHandler creates a new OnLevelUpHandler.
// cache may be nil when Redis is disabled; the handler is then a no-op.
func NewOnLevelUpHandler(cache progression.LeaderboardCache, logger *slog.Logger) *OnLevelUpHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OnLevelUpHandler{
		cache:  cache,
		logger: logger.With("handler", "on_level_up"),
	}
}

// Handle implements shared.EventHandler.
func (h *OnLevelUpHandler) Handle(event shared.Event) error {
	levelUp, ok := event.(shared.LevelUpEvent)
	if !ok {
		h.logger.Warn("received non-LevelUpEvent", "event_type", event.EventType())
		return nil
	}

	h.logger.Info("processing level up event",
		"user_id", levelUp.AggregateID(),
		"new_level", levelUp.NewLevel,
		"role", levelUp.RoleName,
	)

	if h.cache == nil {
		return nil
	}

	if err := h.cache.Invalidate(context.Background()); err != nil {
		// Stale cache entries expire on their own; log and move on.
		h.logger.Warn("failed to invalidate leaderboard cache", "error", err)
	}
	return nil
}

// EventType returns the event type this handler subscribes to.
func (h *OnLevelUpHandler) EventType() shared.EventType {
	return shared.EventLevelUp
}
