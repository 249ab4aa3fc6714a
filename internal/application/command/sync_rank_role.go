package command

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/progression"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SYNC RANK ROLE COMMAND
// Reconciles the external role directory so the user holds exactly one rank
// role - the one for their current level - removing any other rank role they
// previously held. The directory is eventually-consistent external state.
// ══════════════════════════════════════════════════════════════════════════════

// SyncRankRoleCommand identifies the user and target rank to reconcile.
type SyncRankRoleCommand struct {
	// UserID is the member whose roles are reconciled.
	UserID progression.UserID

	// GuildID is the guild owning the role set.
	GuildID progression.GuildID

	// NewLevel is the rank to reflect; levels past the table clamp to the
	// last rank.
	NewLevel progression.Level
}

// Validate validates the command.
func (c SyncRankRoleCommand) Validate() error {
	if !c.UserID.IsValid() {
		return shared.ErrInvalidUserID
	}
	if !c.GuildID.IsValid() {
		return shared.ErrInvalidGuildID
	}
	if c.NewLevel < 1 {
		return shared.NewDomainError("progression", "SyncRankRole", shared.ErrValueOutOfRange, "level must be positive")
	}
	return nil
}

// SyncRankRoleResult describes what the reconciliation did.
type SyncRankRoleResult struct {
	// RoleName is the rank role the user now holds.
	RoleName string

	// RemovedRoles lists the stale rank role names that were removed.
	RemovedRoles []string

	// CreatedRole indicates the target role had to be created in the guild.
	CreatedRole bool

	// Notified indicates the promotion message was delivered. Delivery is
	// best-effort; false here is never an error.
	Notified bool
}

// RoleSyncError names which reconciliation step failed. The engine cannot
// safely retry the whole sequence without risking duplicate side effects, so
// callers and operators need to know exactly where it stopped.
type RoleSyncError struct {
	Step string // "list_roles", "member_roles", "remove_role", "create_role", "add_role"
	Err  error
}

// Error implements the error interface.
func (e *RoleSyncError) Error() string {
	return fmt.Sprintf("role sync failed at step %q: %v", e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *RoleSyncError) Unwrap() error {
	return e.Err
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// SyncRankRoleHandler handles the SyncRankRoleCommand.
type SyncRankRoleHandler struct {
	directory progression.RoleDirectory
	notifier  progression.PromotionNotifier
	logger    *slog.Logger

	// callTimeout bounds each directory call so a slow remote cannot pin the
	// worker indefinitely.
	callTimeout time.Duration
}

// DefaultRoleCallTimeout bounds individual role-directory calls.
const DefaultRoleCallTimeout = 10 * time.Second

// NewSyncRankRoleHandler creates a new SyncRankRoleHandler.
func NewSyncRankRoleHandler(
	directory progression.RoleDirectory,
	notifier progression.PromotionNotifier,
	logger *slog.Logger,
	callTimeout time.Duration,
) *SyncRankRoleHandler {
	if callTimeout <= 0 {
		callTimeout = DefaultRoleCallTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SyncRankRoleHandler{
		directory:   directory,
		notifier:    notifier,
		logger:      logger.With("handler", "sync_rank_role"),
		callTimeout: callTimeout,
	}
}

// Handle reconciles the user's rank role with the target level.
//
// After a successful run the user holds exactly one rank role. The operation
// is idempotent: running it twice for the same (user, level) leaves the same
// state and errors on nothing. Removing a role the user does not hold and
// creating a role that already exists are both treated as success.
func (h *SyncRankRoleHandler) Handle(ctx context.Context, cmd SyncRankRoleCommand) (*SyncRankRoleResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("sync_rank_role: validation failed: %w", err)
	}

	targetName := progression.RoleNameForLevel(cmd.NewLevel)

	guildRoles, err := h.listRoles(ctx, cmd.GuildID)
	if err != nil {
		return nil, &RoleSyncError{Step: "list_roles", Err: err}
	}

	rolesByName := make(map[string]progression.Role, len(guildRoles))
	for _, r := range guildRoles {
		rolesByName[r.Name] = r
	}

	heldIDs, err := h.memberRoles(ctx, cmd.GuildID, cmd.UserID)
	if err != nil {
		return nil, &RoleSyncError{Step: "member_roles", Err: err}
	}
	held := make(map[string]struct{}, len(heldIDs))
	for _, id := range heldIDs {
		held[id] = struct{}{}
	}

	result := &SyncRankRoleResult{RoleName: targetName}

	// Strip every other rank role the user holds - all ranks, not just lower
	// ones, so a manually granted higher role is reconciled away too.
	for _, name := range progression.RankRoleNames() {
		if name == targetName {
			continue
		}
		role, exists := rolesByName[name]
		if !exists {
			continue
		}
		if _, holds := held[role.ID]; !holds {
			continue
		}
		if err := h.removeRole(ctx, cmd.GuildID, cmd.UserID, role.ID); err != nil {
			if shared.IsNotFound(err) {
				// Already gone; the directory is eventually consistent.
				continue
			}
			return nil, &RoleSyncError{Step: "remove_role", Err: err}
		}
		result.RemovedRoles = append(result.RemovedRoles, name)
	}

	target, exists := rolesByName[targetName]
	if !exists {
		created, err := h.createRole(ctx, cmd.GuildID, targetName)
		if err != nil {
			if !shared.IsAlreadyExists(err) {
				return nil, &RoleSyncError{Step: "create_role", Err: err}
			}
			// Concurrent creation won the race; re-resolve the handle.
			refreshed, lerr := h.listRoles(ctx, cmd.GuildID)
			if lerr != nil {
				return nil, &RoleSyncError{Step: "create_role", Err: lerr}
			}
			for _, r := range refreshed {
				if r.Name == targetName {
					created = r
					break
				}
			}
			if created.ID == "" {
				return nil, &RoleSyncError{Step: "create_role", Err: err}
			}
		} else {
			result.CreatedRole = true
		}
		target = created
	}

	if err := h.addRole(ctx, cmd.GuildID, cmd.UserID, target.ID); err != nil {
		return nil, &RoleSyncError{Step: "add_role", Err: err}
	}

	// Promotion announcement is best-effort: closed DMs never fail the sync.
	if h.notifier != nil {
		if err := h.notifier.NotifyPromotion(ctx, cmd.UserID, targetName, cmd.NewLevel); err != nil {
			h.logger.Warn("promotion notification failed",
				"user_id", cmd.UserID,
				"role", targetName,
				"error", err,
			)
		} else {
			result.Notified = true
		}
	}

	return result, nil
}

func (h *SyncRankRoleHandler) listRoles(ctx context.Context, guildID progression.GuildID) ([]progression.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, h.callTimeout)
	defer cancel()
	return h.directory.ListRoles(ctx, guildID)
}

func (h *SyncRankRoleHandler) memberRoles(ctx context.Context, guildID progression.GuildID, userID progression.UserID) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, h.callTimeout)
	defer cancel()
	return h.directory.MemberRoles(ctx, guildID, userID)
}

func (h *SyncRankRoleHandler) removeRole(ctx context.Context, guildID progression.GuildID, userID progression.UserID, roleID string) error {
	ctx, cancel := context.WithTimeout(ctx, h.callTimeout)
	defer cancel()
	return h.directory.RemoveRole(ctx, guildID, userID, roleID)
}

func (h *SyncRankRoleHandler) createRole(ctx context.Context, guildID progression.GuildID, name string) (progression.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, h.callTimeout)
	defer cancel()
	return h.directory.CreateRole(ctx, guildID, name)
}

func (h *SyncRankRoleHandler) addRole(ctx context.Context, guildID progression.GuildID, userID progression.UserID, roleID string) error {
	ctx, cancel := context.WithTimeout(ctx, h.callTimeout)
	defer cancel()
	return h.directory.AddRole(ctx, guildID, userID, roleID)
}
