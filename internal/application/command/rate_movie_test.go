package command

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/movie"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// fakeRecommendationRepo is an in-memory recommendation repository.
type fakeRecommendationRepo struct {
	mu      sync.Mutex
	recs    []*movie.Recommendation
	saveErr error
	rateErr error
}

func (r *fakeRecommendationRepo) Save(ctx context.Context, rec *movie.Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.recs = append(r.recs, rec)
	return nil
}

func (r *fakeRecommendationRepo) Recent(ctx context.Context, limit int) ([]*movie.Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*movie.Recommendation, 0, limit)
	for i := len(r.recs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.recs[i])
	}
	return out, nil
}

func (r *fakeRecommendationRepo) Rate(ctx context.Context, movieName string, rating int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rateErr != nil {
		return r.rateErr
	}
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

func TestRecommendMovie(t *testing.T) {
	repo := &fakeRecommendationRepo{}
	h := NewRecommendMovieHandler(repo, nil, nil)

	rec, err := h.Handle(context.Background(), RecommendMovieCommand{
		MovieName:     "Inception",
		RecommenderID: "user-1",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "Inception", rec.MovieName)
	assert.False(t, rec.Rated())
	assert.Len(t, repo.recs, 1)
}

func TestRecommendMovie_Validation(t *testing.T) {
	h := NewRecommendMovieHandler(&fakeRecommendationRepo{}, nil, nil)

	_, err := h.Handle(context.Background(), RecommendMovieCommand{RecommenderID: "user-1"})
	assert.Error(t, err)
	assert.True(t, shared.IsValidation(err))

	_, err = h.Handle(context.Background(), RecommendMovieCommand{MovieName: "Inception"})
	assert.Error(t, err)
}

func TestRecommendMovie_StorageError(t *testing.T) {
	repo := &fakeRecommendationRepo{saveErr: errors.New("disk full")}
	h := NewRecommendMovieHandler(repo, nil, nil)

	_, err := h.Handle(context.Background(), RecommendMovieCommand{
		MovieName:     "Inception",
		RecommenderID: "user-1",
	})

	assert.Error(t, err)
	assert.True(t, shared.IsStorage(err))
}

func TestRateMovie(t *testing.T) {
	repo := &fakeRecommendationRepo{}
	rec, _ := movie.NewRecommendation("rec-1", "Inception", "user-1", time.Now())
	repo.recs = append(repo.recs, rec)

	events := &fakePublisher{}
	h := NewRateMovieHandler(repo, events, nil)

	err := h.Handle(context.Background(), RateMovieCommand{
		MovieName: "Inception",
		RaterID:   "user-2",
		Rating:    9,
	})

	assert.NoError(t, err)
	assert.Equal(t, 9, rec.Rating)
	assert.Contains(t, events.typesSeen(), shared.EventMovieRated)
}

func TestRateMovie_UnknownMovie(t *testing.T) {
	h := NewRateMovieHandler(&fakeRecommendationRepo{}, nil, nil)

	err := h.Handle(context.Background(), RateMovieCommand{
		MovieName: "Unheard Of",
		RaterID:   "user-1",
		Rating:    5,
	})

	assert.True(t, errors.Is(err, shared.ErrRecommendationNotFound))
}

func TestRateMovie_RatingBounds(t *testing.T) {
	h := NewRateMovieHandler(&fakeRecommendationRepo{}, nil, nil)

	for _, rating := range []int{0, 11, -1} {
		err := h.Handle(context.Background(), RateMovieCommand{
			MovieName: "Inception",
			RaterID:   "user-1",
			Rating:    rating,
		})
		assert.Error(t, err, "rating=%d", rating)
		assert.True(t, shared.IsValidation(err), "rating=%d", rating)
	}
}
