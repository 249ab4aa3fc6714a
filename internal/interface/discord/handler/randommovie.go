package handler

import (
	"context"

	"github.com/cinema-hub/cinema-community-bot/internal/application/query"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
	"github.com/cinema-hub/cinema-community-bot/internal/interface/discord/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// RANDOM MOVIE HANDLER
// Handles !randommovie - a random pick from the popular catalog.
// ══════════════════════════════════════════════════════════════════════════════

// RandomMovieHandler handles the randommovie command.
type RandomMovieHandler struct {
	random *query.RandomMovieHandler
}

// NewRandomMovieHandler creates a new RandomMovieHandler.
func NewRandomMovieHandler(random *query.RandomMovieHandler) *RandomMovieHandler {
	return &RandomMovieHandler{random: random}
}

// Handle processes the randommovie command. Catalog outages come back as a
// friendly message rather than an error; there is nothing the member can fix.
func (h *RandomMovieHandler) Handle(ctx context.Context, req Request) (*Response, error) {
	res, err := h.random.Handle(ctx)
	if err != nil {
		if shared.IsExternalService(err) {
			return &Response{Content: presenter.ErrorMessage(err)}, nil
		}
		return nil, err
	}
	return &Response{Embed: presenter.RandomMovie(res)}, nil
}
