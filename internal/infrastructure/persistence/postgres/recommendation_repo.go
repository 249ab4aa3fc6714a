package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/movie"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECOMMENDATION REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// RecommendationRepository implements movie.RecommendationRepository on
// PostgreSQL.
type RecommendationRepository struct {
	conn   *Connection
	logger *slog.Logger
}

// NewRecommendationRepository creates a PostgreSQL-backed recommendation
// repository.
func NewRecommendationRepository(conn *Connection, logger *slog.Logger) *RecommendationRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecommendationRepository{
		conn:   conn,
		logger: logger.With("repository", "recommendation"),
	}
}

// Save stores a new recommendation.
func (r *RecommendationRepository) Save(ctx context.Context, rec *movie.Recommendation) error {
	_, err := r.conn.Exec(ctx, `
		INSERT INTO recommendations (id, movie_name, recommender_id, rating, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.ID, rec.MovieName, rec.RecommenderID, rec.Rating, rec.CreatedAt)

	if err != nil {
		if IsUniqueViolation(err) {
			return shared.WrapError("movie", "Save", shared.ErrAlreadyExists,
				fmt.Sprintf("recommendation %s already exists", rec.ID), err)
		}
		return shared.WrapError("movie", "Save", shared.ErrStorage, "insert recommendation", err)
	}
	return nil
}

// Recent returns up to limit recommendations, newest first.
func (r *RecommendationRepository) Recent(ctx context.Context, limit int) ([]*movie.Recommendation, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT id, movie_name, recommender_id, rating, created_at
		FROM recommendations
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, shared.WrapError("movie", "Recent", shared.ErrStorage, "query recommendations", err)
	}
	defer rows.Close()

	var result []*movie.Recommendation
	for rows.Next() {
		var rec movie.Recommendation
		if err := rows.Scan(&rec.ID, &rec.MovieName, &rec.RecommenderID, &rec.Rating, &rec.CreatedAt); err != nil {
			return nil, shared.WrapError("movie", "Recent", shared.ErrStorage, "scan recommendation row", err)
		}
		result = append(result, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.WrapError("movie", "Recent", shared.ErrStorage, "iterate recommendation rows", err)
	}
	return result, nil
}

// Rate sets the rating on every recommendation matching the movie name,
// case-insensitively.
func (r *RecommendationRepository) Rate(ctx context.Context, movieName string, rating int) error {
	tag, err := r.conn.Exec(ctx, `
		UPDATE recommendations
		SET rating = $1
		WHERE LOWER(movie_name) = LOWER($2)
	`, rating, movieName)
	if err != nil {
		return shared.WrapError("movie", "Rate", shared.ErrStorage, "update rating", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrRecommendationNotFound
	}
	return nil
}
