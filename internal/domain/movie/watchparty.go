package movie

import (
	"strings"
	"time"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// WatchPartyStatus tracks the announcement lifecycle of a watch party.
type WatchPartyStatus string

const (
	// WatchPartyScheduled - created, reminder not yet sent.
	WatchPartyScheduled WatchPartyStatus = "scheduled"

	// WatchPartyReminded - the reminder announcement went out.
	WatchPartyReminded WatchPartyStatus = "reminded"

	// WatchPartyDone - the start time has passed.
	WatchPartyDone WatchPartyStatus = "done"
)

// WatchParty is a scheduled community screening.
type WatchParty struct {
	ID        string
	MovieName string
	HostID    string
	ChannelID string
	StartsAt  time.Time
	Status    WatchPartyStatus
	CreatedAt time.Time
}

// NewWatchParty schedules a watch party. The start time must be in the future
// relative to now.
func NewWatchParty(id, movieName, hostID, channelID string, startsAt, now time.Time) (*WatchParty, error) {
	movieName = strings.TrimSpace(movieName)
	if movieName == "" {
		return nil, shared.NewDomainError("movie", "Schedule", shared.ErrEmptyValue, "movie name is required")
	}
	if hostID == "" {
		return nil, shared.NewDomainError("movie", "Schedule", shared.ErrInvalidID, "host ID is required")
	}
	if !startsAt.After(now) {
		return nil, shared.ErrWatchPartyInPast
	}
	return &WatchParty{
		ID:        id,
		MovieName: movieName,
		HostID:    hostID,
		ChannelID: channelID,
		StartsAt:  startsAt,
		Status:    WatchPartyScheduled,
		CreatedAt: now,
	}, nil
}

// DueForReminder reports whether the party starts within the window and has
// not been announced yet.
func (w *WatchParty) DueForReminder(now time.Time, window time.Duration) bool {
	if w.Status != WatchPartyScheduled {
		return false
	}
	until := w.StartsAt.Sub(now)
	return until > 0 && until <= window
}

// MarkReminded transitions the party to the reminded state.
func (w *WatchParty) MarkReminded() {
	if w.Status == WatchPartyScheduled {
		w.Status = WatchPartyReminded
	}
}

// MarkDone transitions the party to the done state once it has started.
func (w *WatchParty) MarkDone(now time.Time) {
	if !now.Before(w.StartsAt) {
		w.Status = WatchPartyDone
	}
}
