package handler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cinema-hub/cinema-community-bot/internal/application/command"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/movie"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// memRecommendations is an in-memory recommendation repository for handler
// tests.
type memRecommendations struct {
	recs []*movie.Recommendation
}

func (r *memRecommendations) Save(ctx context.Context, rec *movie.Recommendation) error {
	r.recs = append(r.recs, rec)
	return nil
}

func (r *memRecommendations) Recent(ctx context.Context, limit int) ([]*movie.Recommendation, error) {
	out := make([]*movie.Recommendation, 0, limit)
	for i := len(r.recs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.recs[i])
	}
	return out, nil
}

func (r *memRecommendations) Rate(ctx context.Context, movieName string, rating int) error {
	matched := false
	for _, rec := range r.recs {
		if rec.MovieName == movieName {
			rec.Rating = rating
			matched = true
		}
	}
	if !matched {
		return shared.ErrRecommendationNotFound
	}
	return nil
}

func TestParseRateArgs(t *testing.T) {
	cases := []struct {
		args       string
		wantMovie  string
		wantRating int
		wantOK     bool
	}{
		{"Inception 9", "Inception", 9, true},
		{"The Matrix 10", "The Matrix", 10, true},
		{"Apollo 13 7", "Apollo 13", 7, true},
		{"Inception", "", 0, false},
		{"Inception nine", "", 0, false},
		{"", "", 0, false},
	}

	for _, tc := range cases {
		movieName, rating, ok := parseRateArgs(tc.args)
		assert.Equal(t, tc.wantOK, ok, "args=%q", tc.args)
		assert.Equal(t, tc.wantMovie, movieName, "args=%q", tc.args)
		assert.Equal(t, tc.wantRating, rating, "args=%q", tc.args)
	}
}

func TestRateHandler(t *testing.T) {
	repo := &memRecommendations{}
	rec, _ := movie.NewRecommendation("rec-1", "The Matrix", "user-1", time.Now())
	repo.recs = append(repo.recs, rec)

	h := NewRateHandler(command.NewRateMovieHandler(repo, nil, nil))

	resp, err := h.Handle(context.Background(), Request{UserID: "user-2", Args: "The Matrix 9"})
	assert.NoError(t, err)
	assert.Equal(t, "⭐ You rated **The Matrix** 9/10!", resp.Content)
	assert.Equal(t, 9, rec.Rating)
}

func TestRateHandler_Usage(t *testing.T) {
	h := NewRateHandler(command.NewRateMovieHandler(&memRecommendations{}, nil, nil))

	resp, err := h.Handle(context.Background(), Request{UserID: "user-1", Args: "Inception"})
	assert.NoError(t, err)
	assert.Contains(t, resp.Content, "Usage")

	resp, err = h.Handle(context.Background(), Request{UserID: "user-1", Args: "Inception 15"})
	assert.NoError(t, err)
	assert.Equal(t, "Please rate between 1 and 10.", resp.Content)
}

func TestRateHandler_UnknownMovieIsFriendly(t *testing.T) {
	h := NewRateHandler(command.NewRateMovieHandler(&memRecommendations{}, nil, nil))

	resp, err := h.Handle(context.Background(), Request{UserID: "user-1", Args: "Unheard Of 5"})
	assert.NoError(t, err)
	assert.Contains(t, resp.Content, "Couldn't find")
}
