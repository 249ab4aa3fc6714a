package handler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cinema-hub/cinema-community-bot/internal/application/command"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/movie"
)

type memWatchParties struct {
	parties []*movie.WatchParty
}

func (r *memWatchParties) Save(ctx context.Context, party *movie.WatchParty) error {
	r.parties = append(r.parties, party)
	return nil
}

func (r *memWatchParties) Update(ctx context.Context, party *movie.WatchParty) error {
	return nil
}

func (r *memWatchParties) Upcoming(ctx context.Context, now time.Time, limit int) ([]*movie.WatchParty, error) {
	return r.parties, nil
}

func (r *memWatchParties) DueForReminder(ctx context.Context, now time.Time, window time.Duration) ([]*movie.WatchParty, error) {
	return nil, nil
}

func TestWatchPartyHandler(t *testing.T) {
	repo := &memWatchParties{}
	h := NewWatchPartyHandler(command.NewScheduleWatchPartyHandler(repo, nil, nil))
	when := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	resp, err := h.Handle(context.Background(), Request{
		UserID:    "host-1",
		ChannelID: "chan-1",
		Mention:   "<@host-1>",
		Args:      when + " 20:30 The Empire Strikes Back",
	})

	assert.NoError(t, err)
	assert.Contains(t, resp.Content, "🍿 <@host-1> scheduled a watch party for **The Empire Strikes Back**")
	assert.Len(t, repo.parties, 1)
	assert.Equal(t, "The Empire Strikes Back", repo.parties[0].MovieName)
	assert.Equal(t, "chan-1", repo.parties[0].ChannelID)
}

func TestWatchPartyHandler_Usage(t *testing.T) {
	h := NewWatchPartyHandler(command.NewScheduleWatchPartyHandler(&memWatchParties{}, nil, nil))

	for _, args := range []string{"", "Dune", "2026-09-01 Dune", "tonight 20:30 Dune"} {
		resp, err := h.Handle(context.Background(), Request{UserID: "host-1", Args: args})
		assert.NoError(t, err, "args=%q", args)
		assert.Contains(t, resp.Content, "Usage", "args=%q", args)
	}
}

func TestWatchPartyHandler_PastTime(t *testing.T) {
	h := NewWatchPartyHandler(command.NewScheduleWatchPartyHandler(&memWatchParties{}, nil, nil))

	resp, err := h.Handle(context.Background(), Request{
		UserID: "host-1",
		Args:   "2020-01-01 20:30 Dune",
	})

	assert.NoError(t, err)
	assert.Contains(t, resp.Content, "already behind us")
}
