package movie

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

func TestNewWatchParty(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	startsAt := now.Add(2 * time.Hour)

	party, err := NewWatchParty("wp-1", " Dune ", "host-1", "chan-1", startsAt, now)

	assert.NoError(t, err)
	assert.Equal(t, "Dune", party.MovieName)
	assert.Equal(t, WatchPartyScheduled, party.Status)
	assert.Equal(t, startsAt, party.StartsAt)
}

func TestNewWatchParty_RejectsPastStart(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	_, err := NewWatchParty("wp-1", "Dune", "host-1", "chan-1", now.Add(-time.Minute), now)
	assert.True(t, errors.Is(err, shared.ErrWatchPartyInPast))

	// Starting exactly now is also too late.
	_, err = NewWatchParty("wp-1", "Dune", "host-1", "chan-1", now, now)
	assert.True(t, errors.Is(err, shared.ErrWatchPartyInPast))
}

func TestNewWatchParty_RequiresNameAndHost(t *testing.T) {
	now := time.Now()
	startsAt := now.Add(time.Hour)

	_, err := NewWatchParty("wp-1", "  ", "host-1", "chan-1", startsAt, now)
	assert.Error(t, err)

	_, err = NewWatchParty("wp-1", "Dune", "", "chan-1", startsAt, now)
	assert.Error(t, err)
}

func TestDueForReminder(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	window := 30 * time.Minute

	party := &WatchParty{Status: WatchPartyScheduled, StartsAt: now.Add(20 * time.Minute)}
	assert.True(t, party.DueForReminder(now, window))

	// Too far out.
	party.StartsAt = now.Add(45 * time.Minute)
	assert.False(t, party.DueForReminder(now, window))

	// Already started.
	party.StartsAt = now.Add(-time.Minute)
	assert.False(t, party.DueForReminder(now, window))

	// Already announced.
	party.StartsAt = now.Add(20 * time.Minute)
	party.Status = WatchPartyReminded
	assert.False(t, party.DueForReminder(now, window))
}

func TestMarkReminded(t *testing.T) {
	party := &WatchParty{Status: WatchPartyScheduled}
	party.MarkReminded()
	assert.Equal(t, WatchPartyReminded, party.Status)

	// Done parties stay done.
	party.Status = WatchPartyDone
	party.MarkReminded()
	assert.Equal(t, WatchPartyDone, party.Status)
}

func TestMarkDone(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	party := &WatchParty{Status: WatchPartyReminded, StartsAt: now.Add(-time.Minute)}
	party.MarkDone(now)
	assert.Equal(t, WatchPartyDone, party.Status)

	// Not started yet.
	party = &WatchParty{Status: WatchPartyScheduled, StartsAt: now.Add(time.Hour)}
	party.MarkDone(now)
	assert.Equal(t, WatchPartyScheduled, party.Status)
}
