package query

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/progression"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

type fakeProgressStore struct {
	rows     []*progression.UserProgress
	topErr   error
	topCalls int
}

func (s *fakeProgressStore) Get(ctx context.Context, userID progression.UserID) (*progression.UserProgress, error) {
	for _, p := range s.rows {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, shared.ErrProgressNotFound
}

func (s *fakeProgressStore) Put(ctx context.Context, progress *progression.UserProgress) error {
	return nil
}

func (s *fakeProgressStore) Top(ctx context.Context, limit int) ([]*progression.UserProgress, error) {
	s.topCalls++
	if s.topErr != nil {
		return nil, s.topErr
	}
	if limit > len(s.rows) {
		limit = len(s.rows)
	}
	return s.rows[:limit], nil
}

type fakeLeaderboardCache struct {
	mu      sync.Mutex
	entries []progression.LeaderboardEntry
	cold    bool
	topErr  error
	setErr  error

	setCalls int
}

func (c *fakeLeaderboardCache) Top(ctx context.Context, limit int) ([]progression.LeaderboardEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.topErr != nil {
		return nil, c.topErr
	}
	if c.cold {
		return nil, shared.ErrNotFound
	}
	if limit > len(c.entries) {
		limit = len(c.entries)
	}
	return c.entries[:limit], nil
}

func (c *fakeLeaderboardCache) Set(ctx context.Context, entries []progression.LeaderboardEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCalls++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries = entries
	c.cold = false
	return nil
}

func (c *fakeLeaderboardCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cold = true
	c.entries = nil
	return nil
}

func seededStore() *fakeProgressStore {
	return &fakeProgressStore{rows: []*progression.UserProgress{
		{UserID: "user-1", XP: 500, Level: 6},
		{UserID: "user-2", XP: 120, Level: 3},
		{UserID: "user-3", XP: 15, Level: 1},
	}}
}

func TestGetLeaderboard_ColdCacheFallsThroughAndWarms(t *testing.T) {
	store := seededStore()
	cache := &fakeLeaderboardCache{cold: true}
	h := NewGetLeaderboardHandler(store, cache, nil)

	entries, err := h.Handle(context.Background(), GetLeaderboardQuery{})

	assert.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, progression.UserID("user-1"), entries[0].UserID)
	assert.Equal(t, 1, store.topCalls)
	assert.Equal(t, 1, cache.setCalls)
}

func TestGetLeaderboard_WarmCacheSkipsStore(t *testing.T) {
	store := seededStore()
	cache := &fakeLeaderboardCache{entries: []progression.LeaderboardEntry{
		{UserID: "user-1", XP: 500, Level: 6},
	}}
	h := NewGetLeaderboardHandler(store, cache, nil)

	entries, err := h.Handle(context.Background(), GetLeaderboardQuery{})

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Zero(t, store.topCalls)
}

func TestGetLeaderboard_CacheFailureIsNotFatal(t *testing.T) {
	store := seededStore()
	cache := &fakeLeaderboardCache{topErr: errors.New("connection refused")}
	h := NewGetLeaderboardHandler(store, cache, nil)

	entries, err := h.Handle(context.Background(), GetLeaderboardQuery{})

	assert.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, 1, store.topCalls)
}

func TestGetLeaderboard_NoCacheConfigured(t *testing.T) {
	store := seededStore()
	h := NewGetLeaderboardHandler(store, nil, nil)

	entries, err := h.Handle(context.Background(), GetLeaderboardQuery{Limit: 2})

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestGetLeaderboard_DefaultLimit(t *testing.T) {
	store := &fakeProgressStore{}
	for i := 0; i < 15; i++ {
		store.rows = append(store.rows, &progression.UserProgress{
			UserID: progression.UserID(string(rune('a' + i))),
			XP:     progression.XP(1000 - i),
			Level:  1,
		})
	}
	h := NewGetLeaderboardHandler(store, nil, nil)

	entries, err := h.Handle(context.Background(), GetLeaderboardQuery{})

	assert.NoError(t, err)
	assert.Len(t, entries, DefaultLeaderboardLimit)
}

func TestGetLeaderboard_StoreErrorPropagates(t *testing.T) {
	store := &fakeProgressStore{topErr: shared.ErrStorage}
	h := NewGetLeaderboardHandler(store, nil, nil)

	_, err := h.Handle(context.Background(), GetLeaderboardQuery{})
	assert.Error(t, err)
	assert.True(t, shared.IsStorage(err))
}
