package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cinema-hub/cinema-community-bot/internal/application/command"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/progression"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
	external "github.com/cinema-hub/cinema-community-bot/internal/infrastructure/external/discord"
	"github.com/cinema-hub/cinema-community-bot/internal/interface/discord/handler"
	"github.com/cinema-hub/cinema-community-bot/internal/interface/discord/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// BOT
// Glues the gateway to the application layer: every guild message feeds the
// XP engine, command messages additionally go through the router, and new
// members get the welcome greeting.
// ══════════════════════════════════════════════════════════════════════════════

// BotConfig contains configuration for the bot loop.
type BotConfig struct {
	// WelcomeChannelID is where new-member greetings go. When empty, the
	// guild's system channel from GUILD_CREATE is used instead; greetings
	// are disabled only when the guild has no system channel either.
	WelcomeChannelID string

	// CommandTimeout bounds one command execution end to end.
	CommandTimeout time.Duration

	// Logger for structured logging.
	Logger *slog.Logger
}

// Bot runs the gateway event loop.
type Bot struct {
	config         BotConfig
	client         *external.Client
	router         *Router
	events         shared.EventPublisher
	recordActivity *command.RecordActivityHandler
	logger         *slog.Logger

	// chanMu guards systemChannels, the guildID -> system channel map
	// learned from GUILD_CREATE.
	chanMu         sync.Mutex
	systemChannels map[string]string
}

// NewBot creates the bot loop.
func NewBot(
	config BotConfig,
	client *external.Client,
	router *Router,
	recordActivity *command.RecordActivityHandler,
	events shared.EventPublisher,
) *Bot {
	if config.CommandTimeout <= 0 {
		config.CommandTimeout = 30 * time.Second
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Bot{
		config:         config,
		client:         client,
		router:         router,
		events:         events,
		recordActivity: recordActivity,
		logger:         config.Logger.With("component", "bot"),
		systemChannels: make(map[string]string),
	}
}

// Handlers returns the gateway callbacks for this bot.
func (b *Bot) Handlers() external.EventHandlers {
	return external.EventHandlers{
		OnReady: func(sessionID string, botUser external.User) {
			b.logger.Info("logged in", "bot", botUser.Username)
		},
		OnGuildCreate:    b.handleGuildCreate,
		OnMessageCreate:  b.handleMessage,
		OnGuildMemberAdd: b.handleMemberAdd,
	}
}

// handleMessage feeds the XP engine and dispatches commands. Bot authors are
// ignored entirely so bots cannot farm XP off each other.
func (b *Bot) handleMessage(msg external.MessageCreateEvent) {
	if msg.Author == nil || msg.Author.Bot {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.config.CommandTimeout)
	defer cancel()

	if msg.GuildID != "" {
		b.accrueXP(ctx, msg)
	}

	name, args, ok := ParseCommand(msg.Content)
	if !ok {
		return
	}

	req := handler.Request{
		UserID:     msg.Author.ID,
		GuildID:    msg.GuildID,
		ChannelID:  msg.ChannelID,
		AuthorName: msg.Author.DisplayName(),
		Mention:    fmt.Sprintf("<@%s>", msg.Author.ID),
		Args:       args,
	}

	resp, err := b.router.Dispatch(ctx, name, req)
	if err != nil {
		b.logger.Error("command failed", "command", name, "user_id", req.UserID, "error", err)
		resp = &handler.Response{Content: presenter.ErrorMessage(err)}
	}
	if resp == nil {
		return
	}
	b.send(ctx, msg.ChannelID, resp)
}

// accrueXP runs the activity engine for one message. Failures are logged and
// swallowed; XP must never break chat handling.
func (b *Bot) accrueXP(ctx context.Context, msg external.MessageCreateEvent) {
	result, err := b.recordActivity.Handle(ctx, command.RecordActivityCommand{
		UserID:  progression.UserID(msg.Author.ID),
		GuildID: progression.GuildID(msg.GuildID),
	})
	if err != nil {
		b.logger.Error("record activity failed",
			"user_id", msg.Author.ID,
			"guild_id", msg.GuildID,
			"error", err,
		)
		return
	}
	if result.LeveledUp {
		b.logger.Info("member promoted",
			"user_id", msg.Author.ID,
			"level", int(result.Progress.Level),
		)
	}
}

// handleGuildCreate records the guild's system channel for greetings.
func (b *Bot) handleGuildCreate(guild external.GuildCreateEvent) {
	if guild.SystemChannelID == "" {
		return
	}
	b.chanMu.Lock()
	b.systemChannels[guild.ID] = guild.SystemChannelID
	b.chanMu.Unlock()
}

// welcomeChannel returns the configured welcome channel, or the guild's
// system channel when none is configured. Empty means no greeting.
func (b *Bot) welcomeChannel(guildID string) string {
	if b.config.WelcomeChannelID != "" {
		return b.config.WelcomeChannelID
	}
	b.chanMu.Lock()
	defer b.chanMu.Unlock()
	return b.systemChannels[guildID]
}

// handleMemberAdd greets a new member in the welcome channel.
func (b *Bot) handleMemberAdd(member external.GuildMemberAddEvent) {
	if member.User == nil {
		return
	}
	channelID := b.welcomeChannel(member.GuildID)
	if channelID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.config.CommandTimeout)
	defer cancel()

	mention := fmt.Sprintf("<@%s>", member.User.ID)
	if _, err := b.client.SendMessage(ctx, channelID, presenter.Welcome(mention)); err != nil {
		b.logger.Warn("failed to send welcome message", "user_id", member.User.ID, "error", err)
		return
	}

	if b.events != nil {
		event := shared.NewMemberJoinedEvent(member.User.ID, member.GuildID, member.User.Username)
		if err := b.events.Publish(event); err != nil {
			b.logger.Warn("failed to publish member joined event", "error", err)
		}
	}
}

func (b *Bot) send(ctx context.Context, channelID string, resp *handler.Response) {
	var err error
	if resp.Embed != nil {
		_, err = b.client.SendEmbed(ctx, channelID, *resp.Embed)
	} else if resp.Content != "" {
		_, err = b.client.SendMessage(ctx, channelID, resp.Content)
	}
	if err != nil {
		b.logger.Warn("failed to send response", "channel_id", channelID, "error", err)
	}
}
