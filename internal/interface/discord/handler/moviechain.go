package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinema-hub/cinema-community-bot/internal/application/command"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
	"github.com/cinema-hub/cinema-community-bot/internal/interface/discord/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// MOVIE CHAIN HANDLER
// Handles !moviechain <movie> - one move in the word-chain game.
// ══════════════════════════════════════════════════════════════════════════════

// MovieChainHandler handles the moviechain command.
type MovieChainHandler struct {
	play *command.PlayChainHandler
}

// NewMovieChainHandler creates a new MovieChainHandler.
func NewMovieChainHandler(play *command.PlayChainHandler) *MovieChainHandler {
	return &MovieChainHandler{play: play}
}

// Handle processes the moviechain command. Rule violations are part of the
// game, so they come back as chat messages, never as errors.
func (h *MovieChainHandler) Handle(ctx context.Context, req Request) (*Response, error) {
	if req.Args == "" {
		return &Response{Content: "Name a movie: `!moviechain <movie name>`"}, nil
	}

	move, err := h.play.Handle(ctx, command.PlayChainCommand{
		MovieName: req.Args,
		PlayerID:  req.UserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrMovieAlreadyUsed):
			return &Response{Content: presenter.ChainAlreadyUsed()}, nil
		case errors.Is(err, shared.ErrChainLetterMismatch):
			return &Response{Content: presenter.ChainWrongLetter(h.play.RequiredLetter())}, nil
		case shared.IsValidation(err):
			return &Response{Content: presenter.ErrorMessage(err)}, nil
		}
		return nil, fmt.Errorf("moviechain command: %w", err)
	}
	return &Response{Content: presenter.ChainAccepted(move.NextLetter)}, nil
}
