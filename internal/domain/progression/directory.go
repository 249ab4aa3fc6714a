package progression

import (
	"context"
)

// Role is a handle to a guild role in the external role directory.
type Role struct {
	// ID is the directory's identifier for the role.
	ID string

	// Name is the exact role label.
	Name string
}

// RoleDirectory is the capability port for the external directory that owns
// role state. The engine treats that state as eventually consistent and
// reconciles it on every level change; it never caches directory responses.
//
// All methods are network calls that may be slow or fail transiently.
// Implementations surface shared.ErrPermission when the bot lacks rights and
// shared.ErrNotFound for missing entities; callers decide which of those are
// fatal (removing a role the user does not hold is expected to be a no-op).
type RoleDirectory interface {
	// ListRoles returns every role defined in the guild.
	ListRoles(ctx context.Context, guildID GuildID) ([]Role, error)

	// CreateRole creates a role with the given name and returns its handle.
	CreateRole(ctx context.Context, guildID GuildID, name string) (Role, error)

	// AddRole grants a role to a member.
	AddRole(ctx context.Context, guildID GuildID, userID UserID, roleID string) error

	// RemoveRole revokes a role from a member.
	RemoveRole(ctx context.Context, guildID GuildID, userID UserID, roleID string) error

	// MemberRoles returns the IDs of the roles a member currently holds.
	MemberRoles(ctx context.Context, guildID GuildID, userID UserID) ([]string, error)
}

// PromotionNotifier delivers the promotion announcement to the user.
// Delivery is best-effort: a user with closed direct messages is not an error
// the caller should ever see.
type PromotionNotifier interface {
	NotifyPromotion(ctx context.Context, userID UserID, roleName string, level Level) error
}
