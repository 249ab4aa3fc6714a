package query

import (
	"math/rand"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/movie"
)

// ══════════════════════════════════════════════════════════════════════════════
// RANDOM GENRE QUERY
// ══════════════════════════════════════════════════════════════════════════════

// RandomGenreHandler backs /randomgenre with the fixed genre list.
type RandomGenreHandler struct {
	intn func(n int) int
}

// NewRandomGenreHandler creates a new RandomGenreHandler. intn is the random
// index source; nil uses math/rand.
func NewRandomGenreHandler(intn func(n int) int) *RandomGenreHandler {
	if intn == nil {
		intn = rand.Intn
	}
	return &RandomGenreHandler{intn: intn}
}

// Handle picks a genre.
func (h *RandomGenreHandler) Handle() string {
	return movie.RandomGenre(h.intn)
}
