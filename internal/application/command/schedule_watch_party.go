package command

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/movie"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULE WATCH PARTY COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// ScheduleWatchPartyCommand schedules a community screening.
type ScheduleWatchPartyCommand struct {
	// MovieName is the movie being screened.
	MovieName string

	// HostID is the member hosting the party.
	HostID string

	// ChannelID is where the reminder announcement goes.
	ChannelID string

	// StartsAt is the screening time; must be in the future.
	StartsAt time.Time
}

// Validate validates the command.
func (c ScheduleWatchPartyCommand) Validate() error {
	if c.MovieName == "" {
		return shared.NewDomainError("movie", "Schedule", shared.ErrEmptyValue, "movie name is required")
	}
	if c.HostID == "" {
		return shared.NewDomainError("movie", "Schedule", shared.ErrInvalidID, "host ID is required")
	}
	if c.StartsAt.IsZero() {
		return shared.NewDomainError("movie", "Schedule", shared.ErrEmptyValue, "start time is required")
	}
	return nil
}

// ScheduleWatchPartyHandler handles the ScheduleWatchPartyCommand.
type ScheduleWatchPartyHandler struct {
	parties movie.WatchPartyRepository
	events  shared.EventPublisher
	logger  *slog.Logger
}

// NewScheduleWatchPartyHandler creates a new ScheduleWatchPartyHandler.
func NewScheduleWatchPartyHandler(
	parties movie.WatchPartyRepository,
	events shared.EventPublisher,
	logger *slog.Logger,
) *ScheduleWatchPartyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduleWatchPartyHandler{
		parties: parties,
		events:  events,
		logger:  logger.With("handler", "schedule_watch_party"),
	}
}

// Handle schedules the watch party.
func (h *ScheduleWatchPartyHandler) Handle(ctx context.Context, cmd ScheduleWatchPartyCommand) (*movie.WatchParty, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("schedule_watch_party: validation failed: %w", err)
	}

	party, err := movie.NewWatchParty(
		uuid.NewString(), cmd.MovieName, cmd.HostID, cmd.ChannelID,
		cmd.StartsAt, time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err := h.parties.Save(ctx, party); err != nil {
		return nil, shared.WrapError("movie", "Schedule", shared.ErrStorage,
			"failed to save watch party", err)
	}

	h.logger.Info("watch party scheduled",
		"party_id", party.ID,
		"movie", party.MovieName,
		"starts_at", party.StartsAt,
	)

	if h.events != nil {
		_ = h.events.Publish(shared.NewWatchPartyScheduledEvent(
			party.ID, party.MovieName, party.HostID, party.ChannelID, party.StartsAt))
	}

	return party, nil
}
