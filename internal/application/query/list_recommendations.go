package query

import (
	"context"
	"fmt"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/movie"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST RECOMMENDATIONS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// DefaultRecommendationLimit is how many recent recommendations are shown.
const DefaultRecommendationLimit = 10

// ListRecommendationsQuery asks for the most recent recommendations.
type ListRecommendationsQuery struct {
	// Limit caps the number of entries (default 10).
	Limit int
}

// ListRecommendationsHandler handles the ListRecommendationsQuery.
type ListRecommendationsHandler struct {
	recs movie.RecommendationRepository
}

// NewListRecommendationsHandler creates a new ListRecommendationsHandler.
func NewListRecommendationsHandler(recs movie.RecommendationRepository) *ListRecommendationsHandler {
	return &ListRecommendationsHandler{recs: recs}
}

// Handle executes the query, newest recommendation first.
func (h *ListRecommendationsHandler) Handle(ctx context.Context, q ListRecommendationsQuery) ([]*movie.Recommendation, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	recs, err := h.recs.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list_recommendations: %w", err)
	}
	return recs, nil
}
