// Package presenter formats query and command results into Discord messages
// and embeds. Handlers decide what to say; this package decides how it looks.
package presenter

import (
	"fmt"
	"strings"

	"github.com/cinema-hub/cinema-community-bot/internal/application/query"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// TEXT MESSAGES
// ══════════════════════════════════════════════════════════════════════════════

// Welcome is the system-channel greeting for a new member.
func Welcome(mention string) string {
	return fmt.Sprintf("🎥 **Welcome to the Cinema Society, %s!**\nGrab your popcorn 🍿 and join the show!", mention)
}

// Level renders the /level reply.
func Level(mention string, res *query.GetProgressResult) string {
	if !res.Found {
		return "You don't have any XP yet. Start chatting to earn some!"
	}
	msg := fmt.Sprintf("🎬 %s, you're level **%d** with **%d XP**!", mention, res.Level, res.XP)
	if res.NextThreshold > 0 {
		msg += fmt.Sprintf(" Next rank at **%d XP**.", res.NextThreshold)
	}
	return msg
}

// Recommended confirms a stored recommendation.
func Recommended(mention, movieName string) string {
	return fmt.Sprintf("🎥 %s recommended **%s**!", mention, movieName)
}

// Rated confirms a stored rating.
func Rated(movieName string, rating int) string {
	return fmt.Sprintf("⭐ You rated **%s** %d/10!", movieName, rating)
}

// RandomGenre renders the /randomgenre reply.
func RandomGenre(genre string) string {
	return fmt.Sprintf("🎞️ Random genre: **%s**", genre)
}

// ChainAccepted confirms a chain move and prompts the next letter.
func ChainAccepted(nextLetter string) string {
	return fmt.Sprintf("🎬 Nice! Next movie should start with **%s**!", nextLetter)
}

// ChainAlreadyUsed rejects a repeated title.
func ChainAlreadyUsed() string {
	return "❌ That movie has already been used!"
}

// ChainWrongLetter rejects a title starting with the wrong letter.
func ChainWrongLetter(requiredLetter string) string {
	return fmt.Sprintf("⚠️ Movie must start with **%s**!", strings.ToUpper(requiredLetter))
}

// WatchPartyScheduled confirms a new watch party.
func WatchPartyScheduled(mention, movieName, when string) string {
	return fmt.Sprintf("🍿 %s scheduled a watch party for **%s** on %s!", mention, movieName, when)
}

// ══════════════════════════════════════════════════════════════════════════════
// ERROR PHRASING
// ══════════════════════════════════════════════════════════════════════════════

// ErrorMessage turns a domain error into something a member can act on.
// Anything unrecognized gets a generic apology; the real error is logged by
// the caller.
func ErrorMessage(err error) string {
	switch {
	case shared.IsValidation(err):
		return "🤔 That doesn't look right. Check the command and try again."
	case shared.IsNotFound(err):
		return "🔍 Couldn't find that one. Maybe recommend it first?"
	case shared.IsExternalService(err):
		return "📡 The movie database isn't answering right now. Try again in a bit."
	default:
		return "😬 Something went wrong on our end. Try again later."
	}
}
