package presenter

import (
	"fmt"

	"github.com/cinema-hub/cinema-community-bot/internal/application/query"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/movie"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/progression"
	external "github.com/cinema-hub/cinema-community-bot/internal/infrastructure/external/discord"
	"github.com/cinema-hub/cinema-community-bot/pkg/timeutil"
)

// Embed colors.
const (
	colorGold = 0xF1C40F
	colorBlue = 0x3498DB
)

// rankMedals decorate the top three leaderboard entries.
var rankMedals = [3]string{"🥇", "🥈", "🥉"}

// Recommendations renders the recent recommendation list.
func Recommendations(recs []*movie.Recommendation) *external.Embed {
	embed := &external.Embed{
		Title: "🎬 Movie Recommendations",
		Color: colorGold,
	}
	for _, rec := range recs {
		rating := "Not rated"
		if rec.Rated() {
			rating = fmt.Sprintf("%d/10", rec.Rating)
		}
		embed.Fields = append(embed.Fields, external.EmbedField{
			Name:  rec.MovieName,
			Value: fmt.Sprintf("By: <@%s> | ⭐ %s", rec.RecommenderID, rating),
		})
	}
	return embed
}

// RandomMovie renders a random movie suggestion.
func RandomMovie(res *query.RandomMovieResult) *external.Embed {
	return &external.Embed{
		Title:       res.Title,
		Description: res.Overview,
		Color:       colorBlue,
	}
}

// Leaderboard renders the /top reply.
func Leaderboard(entries []progression.LeaderboardEntry) *external.Embed {
	embed := &external.Embed{
		Title: "🏆 Cinema Society Leaderboard",
		Color: colorGold,
	}
	for i, e := range entries {
		medal := fmt.Sprintf("%d.", i+1)
		if i < len(rankMedals) {
			medal = rankMedals[i]
		}
		embed.Fields = append(embed.Fields, external.EmbedField{
			Name:  fmt.Sprintf("%s %s", medal, progression.RoleNameForLevel(e.Level)),
			Value: fmt.Sprintf("<@%s> - level %d, %d XP", e.UserID, e.Level, e.XP),
		})
	}
	if len(entries) == 0 {
		embed.Description = "Nobody has earned XP yet. Start chatting!"
	}
	return embed
}

// WatchParties renders the upcoming watch party list.
func WatchParties(parties []*movie.WatchParty) *external.Embed {
	embed := &external.Embed{
		Title: "🍿 Upcoming Watch Parties",
		Color: colorBlue,
	}
	for _, p := range parties {
		embed.Fields = append(embed.Fields, external.EmbedField{
			Name:  p.MovieName,
			Value: fmt.Sprintf("%s - hosted by <@%s> in <#%s>", timeutil.FormatPartyTime(p.StartsAt), p.HostID, p.ChannelID),
		})
	}
	if len(parties) == 0 {
		embed.Description = "No watch parties scheduled. Plan one with !watchparty!"
	}
	return embed
}
