package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/movie"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PLAY CHAIN COMMAND
// One move in the movie chain game. Chain state is volatile process memory
// scoped to this handler, like the cooldown gate.
// ══════════════════════════════════════════════════════════════════════════════

// PlayChainCommand submits a title into the chain.
type PlayChainCommand struct {
	// MovieName is the submitted title (normalized by the game).
	MovieName string

	// PlayerID is the member making the move.
	PlayerID string
}

// Validate validates the command.
func (c PlayChainCommand) Validate() error {
	if c.MovieName == "" {
		return shared.NewDomainError("movie", "ChainMove", shared.ErrEmptyValue, "movie name is required")
	}
	return nil
}

// PlayChainHandler handles the PlayChainCommand.
type PlayChainHandler struct {
	game   *movie.ChainGame
	logger *slog.Logger
}

// NewPlayChainHandler creates a new PlayChainHandler with a fresh chain.
func NewPlayChainHandler(logger *slog.Logger) *PlayChainHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlayChainHandler{
		game:   movie.NewChainGame(),
		logger: logger.With("handler", "play_chain"),
	}
}

// Handle plays the move. Rule violations come back as domain errors
// (shared.ErrMovieAlreadyUsed, shared.ErrChainLetterMismatch) for the
// interface layer to phrase.
func (h *PlayChainHandler) Handle(_ context.Context, cmd PlayChainCommand) (*movie.ChainMove, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("play_chain: validation failed: %w", err)
	}
	return h.game.Submit(cmd.MovieName)
}

// RequiredLetter exposes the current chain constraint for error messages.
func (h *PlayChainHandler) RequiredLetter() string {
	return h.game.RequiredLetter()
}
