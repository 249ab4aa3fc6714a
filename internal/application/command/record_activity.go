// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/progression"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD ACTIVITY COMMAND
// The leveling engine. One qualifying activity event comes in; a cooldown gate
// decides whether it accrues XP, the level is recomputed against the rank
// table, and a strict level increase triggers the role-sync side effect.
// ══════════════════════════════════════════════════════════════════════════════

// RecordActivityCommand contains the data for one qualifying activity event.
type RecordActivityCommand struct {
	// UserID is the member who produced the activity. Bot/system accounts are
	// filtered upstream by the gateway dispatcher.
	UserID progression.UserID

	// GuildID is the community the activity happened in, needed to resolve
	// and create rank roles.
	GuildID progression.GuildID

	// Timestamp is when the event occurred (defaults to now if zero). Only
	// elapsed time matters; a monotonic clock is acceptable.
	Timestamp time.Time
}

// Validate validates the command.
func (c RecordActivityCommand) Validate() error {
	if !c.UserID.IsValid() {
		return shared.ErrInvalidUserID
	}
	if !c.GuildID.IsValid() {
		return shared.ErrInvalidGuildID
	}
	return nil
}

// RecordActivityResult contains the outcome of one activity event.
type RecordActivityResult struct {
	// Accrued indicates whether the event granted XP. A cooldown-gated event
	// is a successful no-op, not an error.
	Accrued bool

	// XPGained is the amount granted (zero when gated).
	XPGained int

	// Progress is the persisted state after the event.
	Progress *progression.UserProgress

	// LeveledUp indicates a strict level increase.
	LeveledUp bool

	// RoleSync holds the role-sync outcome when LeveledUp is true.
	RoleSync *SyncRankRoleResult
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// XPGainFunc draws the XP amount for one accrual. Injected so tests are
// deterministic; the default draws uniformly from [10, 20] inclusive.
type XPGainFunc func() int

// DefaultXPGain draws uniformly from the fixed gain range.
func DefaultXPGain() int {
	return progression.DefaultXPGainMin +
		rand.Intn(progression.DefaultXPGainMax-progression.DefaultXPGainMin+1)
}

// RecordActivityHandler handles the RecordActivityCommand.
//
// Concurrency: accruals for the same user are serialized with a per-user lock,
// so the load-modify-upsert against the progress store cannot lose updates.
// Different users proceed fully in parallel.
type RecordActivityHandler struct {
	store    progression.ProgressStore
	gate     *progression.CooldownGate
	roleSync *SyncRankRoleHandler
	events   shared.EventPublisher
	xpGain   XPGainFunc
	logger   *slog.Logger

	mu    sync.Mutex
	locks map[progression.UserID]*sync.Mutex
}

// NewRecordActivityHandler creates a new RecordActivityHandler.
func NewRecordActivityHandler(
	store progression.ProgressStore,
	gate *progression.CooldownGate,
	roleSync *SyncRankRoleHandler,
	events shared.EventPublisher,
	xpGain XPGainFunc,
	logger *slog.Logger,
) *RecordActivityHandler {
	if xpGain == nil {
		xpGain = DefaultXPGain
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RecordActivityHandler{
		store:    store,
		gate:     gate,
		roleSync: roleSync,
		events:   events,
		xpGain:   xpGain,
		logger:   logger.With("handler", "record_activity"),
		locks:    make(map[progression.UserID]*sync.Mutex),
	}
}

// Handle executes the record activity command.
//
// The cooldown timestamp is written before persistence is attempted and is
// not rolled back when persistence fails: a user whose accrual was dropped by
// a storage error waits out the cooldown like everyone else. This mirrors the
// source behavior and keeps the gate independent of the store.
func (h *RecordActivityHandler) Handle(ctx context.Context, cmd RecordActivityCommand) (*RecordActivityResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("record_activity: validation failed: %w", err)
	}

	timestamp := cmd.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	lock := h.userLock(cmd.UserID)
	lock.Lock()
	defer lock.Unlock()

	// Cooldown gate: inside the window the event is a pure no-op.
	if !h.gate.TryAcquire(cmd.UserID, timestamp) {
		return &RecordActivityResult{Accrued: false}, nil
	}

	gain := h.xpGain()

	progress, err := h.store.Get(ctx, cmd.UserID)
	if err != nil {
		if shared.IsNotFound(err) {
			progress = progression.NewUserProgress(cmd.UserID)
		} else {
			return nil, shared.WrapError("progression", "RecordActivity", shared.ErrStorage,
				"failed to load progress", err)
		}
	}

	leveledUp := progress.Accrue(progression.XP(gain), timestamp)

	if err := h.store.Put(ctx, progress); err != nil {
		return nil, shared.WrapError("progression", "RecordActivity", shared.ErrStorage,
			"failed to persist progress", err)
	}

	result := &RecordActivityResult{
		Accrued:   true,
		XPGained:  gain,
		Progress:  progress,
		LeveledUp: leveledUp,
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewXPGainedEvent(
			cmd.UserID.String(), cmd.GuildID.String(), gain, int(progress.XP), int(progress.Level)))
	}

	if !leveledUp {
		return result, nil
	}

	h.logger.Info("level up",
		"user_id", cmd.UserID,
		"new_level", progress.Level,
		"xp", progress.XP,
	)

	if h.events != nil {
		_ = h.events.Publish(shared.NewLevelUpEvent(
			cmd.UserID.String(), cmd.GuildID.String(),
			int(progress.Level)-1, int(progress.Level),
			progression.RoleNameForLevel(progress.Level)))
	}

	// Exactly one role-sync invocation per strict increase; a multi-rank jump
	// reconciles directly against the final rank.
	syncResult, err := h.roleSync.Handle(ctx, SyncRankRoleCommand{
		UserID:   cmd.UserID,
		GuildID:  cmd.GuildID,
		NewLevel: progress.Level,
	})
	if err != nil {
		// Progress is already persisted; the caller gets the partial result
		// together with the error naming the failed directory step.
		return result, fmt.Errorf("record_activity: role sync after level up: %w", err)
	}
	result.RoleSync = syncResult

	return result, nil
}

// userLock returns the serialization lock for a user, creating it on first use.
func (h *RecordActivityHandler) userLock(userID progression.UserID) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()

	lock, ok := h.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		h.locks[userID] = lock
	}
	return lock
}
