// Package jobs contains implementations of scheduled jobs for the cinema
// community bot.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/movie"
	"github.com/cinema-hub/cinema-community-bot/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// WATCH PARTY REMINDER JOB
// ══════════════════════════════════════════════════════════════════════════════

// Announcer posts reminder messages to the channel a party was scheduled in.
type Announcer interface {
	SendMessage(ctx context.Context, channelID, content string) error
}

// DefaultReminderWindow is how far ahead of the start time the reminder goes
// out.
const DefaultReminderWindow = 30 * time.Minute

// WatchPartyReminderJob announces watch parties that start soon.
type WatchPartyReminderJob struct {
	parties   movie.WatchPartyRepository
	announcer Announcer
	window    time.Duration
	logger    *slog.Logger
}

// NewWatchPartyReminderJob creates the job. A non-positive window takes
// DefaultReminderWindow.
func NewWatchPartyReminderJob(parties movie.WatchPartyRepository, announcer Announcer, window time.Duration, logger *slog.Logger) *WatchPartyReminderJob {
	if window <= 0 {
		window = DefaultReminderWindow
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WatchPartyReminderJob{
		parties:   parties,
		announcer: announcer,
		window:    window,
		logger:    logger.With("job", "watch_party_reminder"),
	}
}

// Name implements scheduler.Job.
func (j *WatchPartyReminderJob) Name() string {
	return "watch_party_reminder"
}

// Run announces every scheduled party starting within the window. A failed
// announcement leaves the party in the scheduled state so the next run
// retries it.
func (j *WatchPartyReminderJob) Run(ctx context.Context) error {
	now := time.Now()

	due, err := j.parties.DueForReminder(ctx, now, j.window)
	if err != nil {
		return fmt.Errorf("find due watch parties: %w", err)
	}

	for _, party := range due {
		content := fmt.Sprintf("🍿 **%s** starts %s! Grab your snacks and join <#%s>.",
			party.MovieName,
			timeutil.FormatCountdown(party.StartsAt.Sub(now)),
			party.ChannelID,
		)
		if err := j.announcer.SendMessage(ctx, party.ChannelID, content); err != nil {
			j.logger.Warn("failed to announce watch party",
				"party_id", party.ID,
				"movie", party.MovieName,
				"error", err,
			)
			continue
		}

		party.MarkReminded()
		if err := j.parties.Update(ctx, party); err != nil {
			j.logger.Warn("failed to mark watch party reminded",
				"party_id", party.ID,
				"error", err,
			)
		}
	}

	return nil
}
