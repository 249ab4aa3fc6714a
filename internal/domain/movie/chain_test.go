package movie

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

func TestChainGame_FirstTitleAlwaysAccepted(t *testing.T) {
	game := NewChainGame()

	move, err := game.Submit("the matrix")

	assert.NoError(t, err)
	assert.Equal(t, "The Matrix", move.Accepted)
	assert.Equal(t, "X", move.NextLetter)
	assert.Equal(t, 1, game.Length())
}

func TestChainGame_ChainsOnLastLetter(t *testing.T) {
	game := NewChainGame()

	_, err := game.Submit("Titanic")
	assert.NoError(t, err)

	move, err := game.Submit("casablanca")
	assert.NoError(t, err)
	assert.Equal(t, "Casablanca", move.Accepted)
	assert.Equal(t, "A", move.NextLetter)
}

func TestChainGame_RejectsWrongFirstLetter(t *testing.T) {
	game := NewChainGame()

	_, err := game.Submit("Titanic")
	assert.NoError(t, err)

	_, err = game.Submit("Heat")
	assert.True(t, errors.Is(err, shared.ErrChainLetterMismatch))
	assert.Equal(t, 1, game.Length())
}

func TestChainGame_RejectsRepeats(t *testing.T) {
	game := NewChainGame()

	_, err := game.Submit("The Matrix")
	assert.NoError(t, err)

	// Same title in different casing is the same move.
	_, err = game.Submit("the MATRIX")
	assert.True(t, errors.Is(err, shared.ErrMovieAlreadyUsed))
}

func TestChainGame_RepeatCheckedBeforeLetter(t *testing.T) {
	game := NewChainGame()

	_, err := game.Submit("Titanic")
	assert.NoError(t, err)

	// "Titanic" neither starts with C nor is new; the repeat wins.
	_, err = game.Submit("titanic")
	assert.True(t, errors.Is(err, shared.ErrMovieAlreadyUsed))
}

func TestChainGame_NonLetterEndingFallsBack(t *testing.T) {
	game := NewChainGame()

	// "Apollo 13" ends with a digit; the chain letter is the last letter, "o".
	_, err := game.Submit("Apollo 13")
	assert.NoError(t, err)
	assert.Equal(t, "O", game.RequiredLetter())

	_, err = game.Submit("Oldboy")
	assert.NoError(t, err)
}

func TestChainGame_EmptyTitleRejected(t *testing.T) {
	game := NewChainGame()

	_, err := game.Submit("   ")
	assert.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestChainGame_RequiredLetterEmptyOnFreshGame(t *testing.T) {
	game := NewChainGame()
	assert.Equal(t, "", game.RequiredLetter())
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "The Matrix", TitleCase("the matrix"))
	assert.Equal(t, "The Matrix", TitleCase("  THE MATRIX  "))
	assert.Equal(t, "Apollo 13", TitleCase("apollo 13"))
	assert.Equal(t, "", TitleCase("   "))
}
