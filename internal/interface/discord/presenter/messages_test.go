package presenter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinema-hub/cinema-community-bot/internal/application/query"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

func TestWelcome(t *testing.T) {
	msg := Welcome("<@123>")
	assert.Equal(t, "🎥 **Welcome to the Cinema Society, <@123>!**\nGrab your popcorn 🍿 and join the show!", msg)
}

func TestLevel(t *testing.T) {
	msg := Level("<@123>", &query.GetProgressResult{Found: false})
	assert.Equal(t, "You don't have any XP yet. Start chatting to earn some!", msg)

	msg = Level("<@123>", &query.GetProgressResult{Found: true, XP: 120, Level: 3, NextThreshold: 200})
	assert.Equal(t, "🎬 <@123>, you're level **3** with **120 XP**! Next rank at **200 XP**.", msg)

	// Top rank has no next threshold.
	msg = Level("<@123>", &query.GetProgressResult{Found: true, XP: 1700, Level: 10})
	assert.Equal(t, "🎬 <@123>, you're level **10** with **1700 XP**!", msg)
}

func TestChainMessages(t *testing.T) {
	assert.Equal(t, "🎬 Nice! Next movie should start with **C**!", ChainAccepted("C"))
	assert.Equal(t, "❌ That movie has already been used!", ChainAlreadyUsed())
	assert.Equal(t, "⚠️ Movie must start with **C**!", ChainWrongLetter("c"))
}

func TestErrorMessage(t *testing.T) {
	assert.Contains(t, ErrorMessage(shared.ErrInvalidRating), "doesn't look right")
	assert.Contains(t, ErrorMessage(shared.ErrRecommendationNotFound), "Couldn't find")
	assert.Contains(t, ErrorMessage(shared.ErrTMDBUnavailable), "isn't answering")
	assert.Contains(t, ErrorMessage(assert.AnError), "Something went wrong")
}
