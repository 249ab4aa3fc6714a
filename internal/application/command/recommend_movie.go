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
// RECOMMEND MOVIE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// RecommendMovieCommand stores a peer movie recommendation.
type RecommendMovieCommand struct {
	// MovieName is the recommended title.
	MovieName string

	// RecommenderID is the member making the recommendation.
	RecommenderID string
}

// Validate validates the command.
func (c RecommendMovieCommand) Validate() error {
	if c.MovieName == "" {
		return shared.NewDomainError("movie", "Recommend", shared.ErrEmptyValue, "movie name is required")
	}
	if c.RecommenderID == "" {
		return shared.NewDomainError("movie", "Recommend", shared.ErrInvalidID, "recommender ID is required")
	}
	return nil
}

// RecommendMovieHandler handles the RecommendMovieCommand.
type RecommendMovieHandler struct {
	recs   movie.RecommendationRepository
	events shared.EventPublisher
	logger *slog.Logger
}

// NewRecommendMovieHandler creates a new RecommendMovieHandler.
func NewRecommendMovieHandler(
	recs movie.RecommendationRepository,
	events shared.EventPublisher,
	logger *slog.Logger,
) *RecommendMovieHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecommendMovieHandler{
		recs:   recs,
		events: events,
		logger: logger.With("handler", "recommend_movie"),
	}
}

// Handle stores the recommendation.
func (h *RecommendMovieHandler) Handle(ctx context.Context, cmd RecommendMovieCommand) (*movie.Recommendation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("recommend_movie: validation failed: %w", err)
	}

	rec, err := movie.NewRecommendation(uuid.NewString(), cmd.MovieName, cmd.RecommenderID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := h.recs.Save(ctx, rec); err != nil {
		return nil, shared.WrapError("movie", "Recommend", shared.ErrStorage,
			"failed to save recommendation", err)
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewMovieRecommendedEvent(rec.ID, rec.MovieName, rec.RecommenderID))
	}

	return rec, nil
}
