package movie

import (
	"strings"
	"sync"
	"unicode"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// ChainGame is the movie word-chain: each submitted title must start with the
// last letter of the previous accepted title, and no title may repeat.
// State is volatile process memory, like the original game.
type ChainGame struct {
	mu         sync.Mutex
	used       map[string]struct{}
	order      []string
	nextLetter rune // zero until the first accepted title
}

// NewChainGame starts an empty chain.
func NewChainGame() *ChainGame {
	return &ChainGame{
		used: make(map[string]struct{}),
	}
}

// ChainMove is the outcome of an accepted submission.
type ChainMove struct {
	// Accepted is the normalized (title-cased) movie name.
	Accepted string

	// NextLetter is the uppercase letter the next title must start with.
	NextLetter string
}

// Submit plays a title into the chain. Titles are normalized to title case
// before any rule is checked, so "the matrix" and "The Matrix" are the same
// move. Returns shared.ErrMovieAlreadyUsed for repeats and
// shared.ErrChainLetterMismatch when the first letter does not match.
func (g *ChainGame) Submit(title string) (*ChainMove, error) {
	normalized := TitleCase(title)
	if normalized == "" {
		return nil, shared.NewDomainError("movie", "ChainMove", shared.ErrEmptyValue, "movie name is required")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.used[normalized]; ok {
		return nil, shared.ErrMovieAlreadyUsed
	}

	if g.nextLetter != 0 {
		first := firstLetter(normalized)
		if first == 0 || unicode.ToUpper(first) != unicode.ToUpper(g.nextLetter) {
			return nil, shared.ErrChainLetterMismatch
		}
	}

	g.used[normalized] = struct{}{}
	g.order = append(g.order, normalized)
	g.nextLetter = lastLetter(normalized)

	return &ChainMove{
		Accepted:   normalized,
		NextLetter: strings.ToUpper(string(g.nextLetter)),
	}, nil
}

// RequiredLetter returns the uppercase letter the next title must start with,
// or "" when the chain is empty.
func (g *ChainGame) RequiredLetter() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.nextLetter == 0 {
		return ""
	}
	return strings.ToUpper(string(g.nextLetter))
}

// Length returns the number of accepted titles.
func (g *ChainGame) Length() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.order)
}

// TitleCase normalizes a movie title: trimmed, with each word capitalized.
func TitleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func firstLetter(s string) rune {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return r
		}
	}
	return 0
}

// lastLetter returns the final rune of the title. Non-letter endings (e.g.
// "Se7en" ends with a letter, but "Apollo 13" does not) fall back to the last
// letter found anywhere, matching how players read the rule.
func lastLetter(s string) rune {
	var last rune
	for _, r := range s {
		if unicode.IsLetter(r) {
			last = r
		}
	}
	return last
}
