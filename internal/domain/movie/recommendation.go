// Package movie contains the movie-community domain model: peer
// recommendations with ratings, watch parties, genres and the movie chain
// game. No external dependencies live here.
package movie

import (
	"strings"
	"time"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// RatingMin and RatingMax bound a recommendation rating, inclusive.
// A zero rating means "not rated yet".
const (
	RatingMin = 1
	RatingMax = 10
)

// Recommendation is one peer movie recommendation.
type Recommendation struct {
	ID            string
	MovieName     string
	RecommenderID string
	Rating        int
	CreatedAt     time.Time
}

// NewRecommendation creates an unrated recommendation.
func NewRecommendation(id, movieName, recommenderID string, now time.Time) (*Recommendation, error) {
	movieName = strings.TrimSpace(movieName)
	if movieName == "" {
		return nil, shared.NewDomainError("movie", "Recommend", shared.ErrEmptyValue, "movie name is required")
	}
	if recommenderID == "" {
		return nil, shared.NewDomainError("movie", "Recommend", shared.ErrInvalidID, "recommender ID is required")
	}
	return &Recommendation{
		ID:            id,
		MovieName:     movieName,
		RecommenderID: recommenderID,
		Rating:        0,
		CreatedAt:     now,
	}, nil
}

// Rated reports whether the recommendation has received a rating.
func (r *Recommendation) Rated() bool {
	return r.Rating >= RatingMin
}

// ValidateRating checks a rating against the allowed range.
func ValidateRating(rating int) error {
	if rating < RatingMin || rating > RatingMax {
		return shared.ErrInvalidRating
	}
	return nil
}
