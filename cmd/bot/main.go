// Package main is the entrypoint of the Cinema Society community bot.
//
// The bot turns a movie-lovers Discord server into a living community: chat
// activity earns XP and cinema-themed rank roles, members trade movie
// recommendations and ratings, schedule watch parties, and play the movie
// word-chain game.
//
// The architecture follows Clean Architecture and DDD:
//   - Domain: progression and movie logic with no external dependencies
//   - Application: use case orchestration (commands/queries/event handlers)
//   - Infrastructure: persistence, Discord and TMDB clients, scheduler
//   - Interface: Discord command handlers, HTTP endpoints
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/cinema-hub/cinema-community-bot/config"
	"github.com/cinema-hub/cinema-community-bot/internal/application/command"
	"github.com/cinema-hub/cinema-community-bot/internal/application/eventhandler"
	"github.com/cinema-hub/cinema-community-bot/internal/application/query"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/movie"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/progression"
	"github.com/cinema-hub/cinema-community-bot/internal/infrastructure/external/discord"
	"github.com/cinema-hub/cinema-community-bot/internal/infrastructure/external/tmdb"
	"github.com/cinema-hub/cinema-community-bot/internal/infrastructure/messaging"
	"github.com/cinema-hub/cinema-community-bot/internal/infrastructure/persistence/postgres"
	redispersist "github.com/cinema-hub/cinema-community-bot/internal/infrastructure/persistence/redis"
	"github.com/cinema-hub/cinema-community-bot/internal/infrastructure/persistence/sqlite"
	"github.com/cinema-hub/cinema-community-bot/internal/infrastructure/scheduler"
	"github.com/cinema-hub/cinema-community-bot/internal/infrastructure/scheduler/jobs"
	botiface "github.com/cinema-hub/cinema-community-bot/internal/interface/discord"
	"github.com/cinema-hub/cinema-community-bot/internal/interface/discord/handler"
	httpserver "github.com/cinema-hub/cinema-community-bot/internal/interface/http"
	"github.com/cinema-hub/cinema-community-bot/internal/interface/http/handlers"
	"github.com/cinema-hub/cinema-community-bot/pkg/timeutil"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// storage bundles the three persistence ports behind one closer, whichever
// driver backs them.
type storage struct {
	progress        progression.ProgressStore
	recommendations movie.RecommendationRepository
	watchParties    movie.WatchPartyRepository
	healthCheck     handlers.CheckFunc
	close           func()
}

func run() error {
	// .env is a local development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := setupLogger(cfg)
	log.Info("starting", "app", cfg.App.Name, "env", cfg.App.Environment, "storage", cfg.Storage.Driver)

	if err := timeutil.SetCommunityTZ(cfg.App.Timezone); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Persistence ───────────────────────────────────────────────────────────

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	var cache progression.LeaderboardCache
	if cfg.Redis.Enabled() && cfg.Features.Enabled(config.FeatureLeaderboardCache) {
		client, err := redispersist.NewClient(ctx, redispersist.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()
		cache = redispersist.NewLeaderboardCache(client, cfg.Redis.TTL, log)
		log.Info("leaderboard cache enabled", "addr", cfg.Redis.Addr)
	}

	// ── Messaging ─────────────────────────────────────────────────────────────

	busConfig := messaging.DefaultConfig()
	busConfig.Logger = log
	bus := messaging.NewInMemoryEventBus(busConfig)
	defer bus.Close()

	onLevelUp := eventhandler.NewOnLevelUpHandler(cache, log)
	if err := bus.Subscribe(onLevelUp.EventType(), onLevelUp.Handle); err != nil {
		return fmt.Errorf("subscribe level-up handler: %w", err)
	}

	// ── External services ─────────────────────────────────────────────────────

	discordClient := discord.NewClient(discord.ClientConfig{
		Token:  cfg.Discord.Token,
		Logger: log,
	})
	if me, err := discordClient.Me(ctx); err != nil {
		return fmt.Errorf("discord credentials check: %w", err)
	} else {
		log.Info("authenticated with discord", "bot", me.Username)
	}

	var catalog movie.Catalog
	if cfg.TMDB.Enabled() && cfg.Features.Enabled(config.FeatureRandomMovie) {
		catalog = tmdb.NewClient(tmdb.ClientConfig{
			APIKey: cfg.TMDB.APIKey,
			Logger: log,
		})
	}

	// ── Application layer ─────────────────────────────────────────────────────

	roleSync := command.NewSyncRankRoleHandler(discordClient, discordClient, log, cfg.Discord.RoleCallTimeout)
	recordActivity := command.NewRecordActivityHandler(
		store.progress,
		progression.NewCooldownGate(progression.CooldownWindow),
		roleSync,
		bus,
		nil,
		log,
	)
	recommendMovie := command.NewRecommendMovieHandler(store.recommendations, bus, log)
	rateMovie := command.NewRateMovieHandler(store.recommendations, bus, log)
	scheduleParty := command.NewScheduleWatchPartyHandler(store.watchParties, bus, log)
	playChain := command.NewPlayChainHandler(log)

	getProgress := query.NewGetProgressHandler(store.progress)
	getLeaderboard := query.NewGetLeaderboardHandler(store.progress, cache, log)
	listRecommendations := query.NewListRecommendationsHandler(store.recommendations)
	listParties := query.NewListWatchPartiesHandler(store.watchParties)
	randomGenre := query.NewRandomGenreHandler(nil)

	// ── Interface layer ───────────────────────────────────────────────────────

	router := botiface.NewRouter(log)
	router.Register("level", handler.NewLevelHandler(getProgress))
	router.Register("top", handler.NewTopHandler(getLeaderboard))
	router.Register("recommend", handler.NewRecommendHandler(recommendMovie))
	router.Register("recommendations", handler.NewRecommendationsHandler(listRecommendations))
	router.Register("rate", handler.NewRateHandler(rateMovie))
	router.Register("randomgenre", handler.NewRandomGenreHandler(randomGenre))
	if catalog != nil {
		randomMovie := query.NewRandomMovieHandler(catalog, nil, log)
		router.Register("randommovie", handler.NewRandomMovieHandler(randomMovie))
	}
	if cfg.Features.Enabled(config.FeatureMovieChain) {
		router.Register("moviechain", handler.NewMovieChainHandler(playChain))
	}
	if cfg.Features.Enabled(config.FeatureWatchParties) {
		router.Register("watchparty", handler.NewWatchPartyHandler(scheduleParty))
		router.Register("watchparties", handler.NewWatchPartiesHandler(listParties))
	}

	welcomeChannel := cfg.Discord.WelcomeChannelID
	if !cfg.Features.Enabled(config.FeatureWelcomeMessages) {
		welcomeChannel = ""
	}
	bot := botiface.NewBot(botiface.BotConfig{
		WelcomeChannelID: welcomeChannel,
		Logger:           log,
	}, discordClient, router, recordActivity, bus)

	// ── Scheduler ─────────────────────────────────────────────────────────────

	sched := scheduler.New(log)
	if cfg.Features.Enabled(config.FeatureWatchParties) {
		reminder := jobs.NewWatchPartyReminderJob(store.watchParties, announcerFunc(discordClient.SendMessage), cfg.Scheduler.ReminderWindow, log)
		if err := sched.AddJob(reminder, cfg.Scheduler.ReminderInterval); err != nil {
			return err
		}
	}
	sched.Start(ctx)
	defer sched.Stop()

	// ── HTTP server ───────────────────────────────────────────────────────────

	health := handlers.NewHealthHandler()
	health.AddCheck("storage", store.healthCheck)

	var interactions *handlers.InteractionsHandler
	if cfg.Discord.UseWebhook {
		interactions, err = handlers.NewInteractionsHandler(cfg.Discord.PublicKey, router, log)
		if err != nil {
			return err
		}
	}

	server := httpserver.NewServer(httpserver.Config{
		Host: cfg.HTTP.Host,
		Port: cfg.HTTP.Port,
	}, health, interactions, log)

	errCh := make(chan error, 2)
	go func() { errCh <- server.Start() }()

	// In webhook mode the interactions endpoint replaces the gateway; XP from
	// chat activity requires the gateway, so webhook deployments trade the
	// passive XP stream for not holding a websocket open.
	if !cfg.Discord.UseWebhook {
		gateway := discord.NewGateway(discord.GatewayConfig{
			Token:  cfg.Discord.Token,
			Logger: log,
		}, discordClient, bot.Handlers())
		go func() { errCh <- gateway.Run(ctx) }()
	}

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			log.Error("component failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "error", err)
	}

	log.Info("goodbye")
	return nil
}

// announcerFunc adapts the Discord client to the reminder job's port.
type announcerFunc func(ctx context.Context, channelID, content string) (*discord.Message, error)

func (f announcerFunc) SendMessage(ctx context.Context, channelID, content string) error {
	_, err := f(ctx, channelID, content)
	return err
}

// openStorage wires the configured persistence driver.
func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		conn, err := postgres.NewConnection(ctx, postgres.DefaultConfig(cfg.Storage.PostgresURL))
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := postgres.NewMigrator(conn, log).Run(ctx); err != nil {
			conn.Close()
			return nil, err
		}
		return &storage{
			progress:        postgres.NewProgressRepository(conn, log),
			recommendations: postgres.NewRecommendationRepository(conn, log),
			watchParties:    postgres.NewWatchPartyRepository(conn, log),
			healthCheck:     conn.Ping,
			close:           conn.Close,
		}, nil

	case config.StorageSQLite:
		db, err := sqlite.Open(cfg.Storage.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		return &storage{
			progress:        db,
			recommendations: db,
			watchParties:    db.WatchParties(),
			healthCheck:     db.Ping,
			close:           func() { _ = db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// setupLogger configures structured logging: JSON in production, text with
// debug level in development.
func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	var h slog.Handler
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(h).With("app", cfg.App.Name)
	slog.SetDefault(log)
	return log
}
