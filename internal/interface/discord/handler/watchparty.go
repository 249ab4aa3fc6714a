package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cinema-hub/cinema-community-bot/internal/application/command"
	"github.com/cinema-hub/cinema-community-bot/internal/application/query"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
	"github.com/cinema-hub/cinema-community-bot/internal/interface/discord/presenter"
	"github.com/cinema-hub/cinema-community-bot/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// WATCH PARTY HANDLERS
// !watchparty <YYYY-MM-DD HH:MM> <movie> schedules a screening;
// !watchparties lists the upcoming ones.
// ══════════════════════════════════════════════════════════════════════════════

// WatchPartyHandler handles the watchparty command.
type WatchPartyHandler struct {
	schedule *command.ScheduleWatchPartyHandler
}

// NewWatchPartyHandler creates a new WatchPartyHandler.
func NewWatchPartyHandler(schedule *command.ScheduleWatchPartyHandler) *WatchPartyHandler {
	return &WatchPartyHandler{schedule: schedule}
}

// Handle processes the watchparty command. The first two tokens are the date
// and time; everything after is the movie name.
func (h *WatchPartyHandler) Handle(ctx context.Context, req Request) (*Response, error) {
	usage := "Usage: `!watchparty <YYYY-MM-DD HH:MM> <movie name>`"

	fields := strings.Fields(req.Args)
	if len(fields) < 3 {
		return &Response{Content: usage}, nil
	}

	startsAt, err := timeutil.ParsePartyTime(fields[0] + " " + fields[1])
	if err != nil {
		return &Response{Content: usage}, nil
	}
	movieName := strings.Join(fields[2:], " ")

	party, err := h.schedule.Handle(ctx, command.ScheduleWatchPartyCommand{
		MovieName: movieName,
		HostID:    req.UserID,
		ChannelID: req.ChannelID,
		StartsAt:  startsAt,
	})
	if err != nil {
		if errors.Is(err, shared.ErrWatchPartyInPast) {
			return &Response{Content: "⏰ That time is already behind us. Pick a future showtime!"}, nil
		}
		if shared.IsValidation(err) {
			return &Response{Content: presenter.ErrorMessage(err)}, nil
		}
		return nil, fmt.Errorf("watchparty command: %w", err)
	}

	return &Response{
		Content: presenter.WatchPartyScheduled(req.Mention, party.MovieName, timeutil.FormatPartyTime(party.StartsAt)),
	}, nil
}

// WatchPartiesHandler handles the watchparties command.
type WatchPartiesHandler struct {
	list *query.ListWatchPartiesHandler
}

// NewWatchPartiesHandler creates a new WatchPartiesHandler.
func NewWatchPartiesHandler(list *query.ListWatchPartiesHandler) *WatchPartiesHandler {
	return &WatchPartiesHandler{list: list}
}

// Handle processes the watchparties command.
func (h *WatchPartiesHandler) Handle(ctx context.Context, req Request) (*Response, error) {
	parties, err := h.list.Handle(ctx, query.ListWatchPartiesQuery{})
	if err != nil {
		return nil, fmt.Errorf("watchparties command: %w", err)
	}
	return &Response{Embed: presenter.WatchParties(parties)}, nil
}
