package handler

import (
	"context"
	"fmt"

	"github.com/cinema-hub/cinema-community-bot/internal/application/command"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
	"github.com/cinema-hub/cinema-community-bot/internal/interface/discord/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECOMMEND HANDLER
// Handles !recommend <movie> - stores a peer recommendation.
// ══════════════════════════════════════════════════════════════════════════════

// RecommendHandler handles the recommend command.
type RecommendHandler struct {
	recommend *command.RecommendMovieHandler
}

// NewRecommendHandler creates a new RecommendHandler.
func NewRecommendHandler(recommend *command.RecommendMovieHandler) *RecommendHandler {
	return &RecommendHandler{recommend: recommend}
}

// Handle processes the recommend command.
func (h *RecommendHandler) Handle(ctx context.Context, req Request) (*Response, error) {
	if req.Args == "" {
		return &Response{Content: "Tell me the movie: `!recommend <movie name>`"}, nil
	}

	rec, err := h.recommend.Handle(ctx, command.RecommendMovieCommand{
		MovieName:     req.Args,
		RecommenderID: req.UserID,
	})
	if err != nil {
		if shared.IsValidation(err) {
			return &Response{Content: presenter.ErrorMessage(err)}, nil
		}
		return nil, fmt.Errorf("recommend command: %w", err)
	}
	return &Response{Content: presenter.Recommended(req.Mention, rec.MovieName)}, nil
}
