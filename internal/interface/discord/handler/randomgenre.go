package handler

import (
	"context"

	"github.com/cinema-hub/cinema-community-bot/internal/application/query"
	"github.com/cinema-hub/cinema-community-bot/internal/interface/discord/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// RANDOM GENRE HANDLER
// Handles !randomgenre - suggests a genre from the fixed list.
// ══════════════════════════════════════════════════════════════════════════════

// RandomGenreHandler handles the randomgenre command.
type RandomGenreHandler struct {
	random *query.RandomGenreHandler
}

// NewRandomGenreHandler creates a new RandomGenreHandler.
func NewRandomGenreHandler(random *query.RandomGenreHandler) *RandomGenreHandler {
	return &RandomGenreHandler{random: random}
}

// Handle processes the randomgenre command.
func (h *RandomGenreHandler) Handle(_ context.Context, _ Request) (*Response, error) {
	return &Response{Content: presenter.RandomGenre(h.random.Handle())}, nil
}
