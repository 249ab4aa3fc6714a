package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/movie"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RATE MOVIE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// RateMovieCommand sets the rating on a recommended movie.
type RateMovieCommand struct {
	// MovieName is the recommended title to rate (exact match).
	MovieName string

	// RaterID is the member giving the rating.
	RaterID string

	// Rating is the score, 1-10 inclusive.
	Rating int
}

// Validate validates the command.
func (c RateMovieCommand) Validate() error {
	if c.MovieName == "" {
		return shared.NewDomainError("movie", "Rate", shared.ErrEmptyValue, "movie name is required")
	}
	return movie.ValidateRating(c.Rating)
}

// RateMovieHandler handles the RateMovieCommand.
type RateMovieHandler struct {
	recs   movie.RecommendationRepository
	events shared.EventPublisher
	logger *slog.Logger
}

// NewRateMovieHandler creates a new RateMovieHandler.
func NewRateMovieHandler(
	recs movie.RecommendationRepository,
	events shared.EventPublisher,
	logger *slog.Logger,
) *RateMovieHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateMovieHandler{
		recs:   recs,
		events: events,
		logger: logger.With("handler", "rate_movie"),
	}
}

// Handle applies the rating to every recommendation of the movie.
func (h *RateMovieHandler) Handle(ctx context.Context, cmd RateMovieCommand) error {
	if err := cmd.Validate(); err != nil {
		return fmt.Errorf("rate_movie: validation failed: %w", err)
	}

	if err := h.recs.Rate(ctx, cmd.MovieName, cmd.Rating); err != nil {
		if shared.IsNotFound(err) {
			return shared.ErrRecommendationNotFound
		}
		return shared.WrapError("movie", "Rate", shared.ErrStorage,
			"failed to store rating", err)
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewMovieRatedEvent(cmd.MovieName, cmd.RaterID, cmd.Rating))
	}

	return nil
}
