package handler

import (
	"context"
	"fmt"

	"github.com/cinema-hub/cinema-community-bot/internal/application/query"
	"github.com/cinema-hub/cinema-community-bot/internal/interface/discord/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECOMMENDATIONS HANDLER
// Handles !recommendations - lists the latest peer recommendations.
// ══════════════════════════════════════════════════════════════════════════════

// RecommendationsHandler handles the recommendations command.
type RecommendationsHandler struct {
	list *query.ListRecommendationsHandler
}

// NewRecommendationsHandler creates a new RecommendationsHandler.
func NewRecommendationsHandler(list *query.ListRecommendationsHandler) *RecommendationsHandler {
	return &RecommendationsHandler{list: list}
}

// Handle processes the recommendations command.
func (h *RecommendationsHandler) Handle(ctx context.Context, req Request) (*Response, error) {
	recs, err := h.list.Handle(ctx, query.ListRecommendationsQuery{})
	if err != nil {
		return nil, fmt.Errorf("recommendations command: %w", err)
	}
	if len(recs) == 0 {
		return &Response{Content: "No movie recommendations yet!"}, nil
	}
	return &Response{Embed: presenter.Recommendations(recs)}, nil
}
