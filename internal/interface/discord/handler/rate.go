package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cinema-hub/cinema-community-bot/internal/application/command"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
	"github.com/cinema-hub/cinema-community-bot/internal/interface/discord/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// RATE HANDLER
// Handles !rate <movie> <1-10> - rates a recommended movie. The rating is the
// last whitespace-separated token so movie titles may contain spaces.
// ══════════════════════════════════════════════════════════════════════════════

// RateHandler handles the rate command.
type RateHandler struct {
	rate *command.RateMovieHandler
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rate *command.RateMovieHandler) *RateHandler {
	return &RateHandler{rate: rate}
}

// Handle processes the rate command.
func (h *RateHandler) Handle(ctx context.Context, req Request) (*Response, error) {
	movieName, rating, ok := parseRateArgs(req.Args)
	if !ok {
		return &Response{Content: "Usage: `!rate <movie name> <1-10>`"}, nil
	}
	if rating < 1 || rating > 10 {
		return &Response{Content: "Please rate between 1 and 10."}, nil
	}

	err := h.rate.Handle(ctx, command.RateMovieCommand{
		MovieName: movieName,
		RaterID:   req.UserID,
		Rating:    rating,
	})
	if err != nil {
		if shared.IsNotFound(err) || shared.IsValidation(err) {
			return &Response{Content: presenter.ErrorMessage(err)}, nil
		}
		return nil, fmt.Errorf("rate command: %w", err)
	}
	return &Response{Content: presenter.Rated(movieName, rating)}, nil
}

// parseRateArgs splits "The Matrix 9" into ("The Matrix", 9).
func parseRateArgs(args string) (movieName string, rating int, ok bool) {
	idx := strings.LastIndexByte(args, ' ')
	if idx < 0 {
		return "", 0, false
	}
	movieName = strings.TrimSpace(args[:idx])
	ratingStr := strings.TrimSpace(args[idx+1:])
	if movieName == "" || ratingStr == "" {
		return "", 0, false
	}
	rating, err := strconv.Atoi(ratingStr)
	if err != nil {
		return "", 0, false
	}
	return movieName, rating, true
}
