package query

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/movie"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RANDOM MOVIE QUERY
// Backs /randommovie: a random pick from a random page of the catalog's
// popular movies, with the overview truncated for the embed.
// ══════════════════════════════════════════════════════════════════════════════

// popularPageRange is the page range to sample from, matching the original
// bot's behavior of drawing from the first ten popular pages.
const popularPageRange = 10

// overviewLimit is the maximum overview length before truncation.
const overviewLimit = 200

// RandomMovieResult is a single random movie suggestion.
type RandomMovieResult struct {
	Title    string
	Overview string
}

// RandomMovieHandler handles the random movie query.
type RandomMovieHandler struct {
	catalog movie.Catalog
	intn    func(n int) int
	logger  *slog.Logger
}

// NewRandomMovieHandler creates a new RandomMovieHandler. intn is the random
// index source; nil uses math/rand.
func NewRandomMovieHandler(catalog movie.Catalog, intn func(n int) int, logger *slog.Logger) *RandomMovieHandler {
	if intn == nil {
		intn = rand.Intn
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RandomMovieHandler{
		catalog: catalog,
		intn:    intn,
		logger:  logger.With("handler", "random_movie"),
	}
}

// Handle fetches a random popular movie.
func (h *RandomMovieHandler) Handle(ctx context.Context) (*RandomMovieResult, error) {
	page := 1 + h.intn(popularPageRange)

	movies, err := h.catalog.PopularMovies(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("random_movie: %w", err)
	}
	if len(movies) == 0 {
		return nil, shared.ErrTMDBInvalid
	}

	pick := movies[h.intn(len(movies))]

	overview := pick.Overview
	if runes := []rune(overview); len(runes) > overviewLimit {
		overview = string(runes[:overviewLimit]) + "..."
	}

	return &RandomMovieResult{
		Title:    pick.Title,
		Overview: overview,
	}, nil
}
