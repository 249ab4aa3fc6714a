package command

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/progression"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// FAKES
// ══════════════════════════════════════════════════════════════════════════════

// fakeDirectory is an in-memory role directory.
type fakeDirectory struct {
	mu     sync.Mutex
	roles  []progression.Role
	held   map[string]struct{}
	nextID int

	listErr   error
	createErr error
	addErr    error
	removeErr error

	// createConflict simulates a concurrent creation race: CreateRole fails
	// with already-exists while the role appears in the next listing.
	createConflict bool

	listCalls   int
	createCalls int
	addCalls    int
	removeCalls int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{held: make(map[string]struct{})}
}

func (d *fakeDirectory) seedRole(name string) progression.Role {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	role := progression.Role{ID: fmt.Sprintf("role-%d", d.nextID), Name: name}
	d.roles = append(d.roles, role)
	return role
}

func (d *fakeDirectory) grant(roleID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.held[roleID] = struct{}{}
}

func (d *fakeDirectory) holds(roleID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.held[roleID]
	return ok
}

func (d *fakeDirectory) ListRoles(ctx context.Context, guildID progression.GuildID) ([]progression.Role, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listCalls++
	if d.listErr != nil {
		return nil, d.listErr
	}
	out := make([]progression.Role, len(d.roles))
	copy(out, d.roles)
	return out, nil
}

func (d *fakeDirectory) CreateRole(ctx context.Context, guildID progression.GuildID, name string) (progression.Role, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.createCalls++
	if d.createErr != nil {
		return progression.Role{}, d.createErr
	}
	if d.createConflict {
		d.nextID++
		d.roles = append(d.roles, progression.Role{ID: fmt.Sprintf("role-%d", d.nextID), Name: name})
		return progression.Role{}, shared.ErrAlreadyExists
	}
	d.nextID++
	role := progression.Role{ID: fmt.Sprintf("role-%d", d.nextID), Name: name}
	d.roles = append(d.roles, role)
	return role, nil
}

func (d *fakeDirectory) AddRole(ctx context.Context, guildID progression.GuildID, userID progression.UserID, roleID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.addCalls++
	if d.addErr != nil {
		return d.addErr
	}
	d.held[roleID] = struct{}{}
	return nil
}

func (d *fakeDirectory) RemoveRole(ctx context.Context, guildID progression.GuildID, userID progression.UserID, roleID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.removeCalls++
	if d.removeErr != nil {
		return d.removeErr
	}
	delete(d.held, roleID)
	return nil
}

func (d *fakeDirectory) MemberRoles(ctx context.Context, guildID progression.GuildID, userID progression.UserID) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ids := make([]string, 0, len(d.held))
	for id := range d.held {
		ids = append(ids, id)
	}
	return ids, nil
}

// fakeNotifier records promotion announcements.
type fakeNotifier struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (n *fakeNotifier) NotifyPromotion(ctx context.Context, userID progression.UserID, roleName string, level progression.Level) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	return n.err
}

// ══════════════════════════════════════════════════════════════════════════════
// TESTS
// ══════════════════════════════════════════════════════════════════════════════

func syncCommand(level progression.Level) SyncRankRoleCommand {
	return SyncRankRoleCommand{UserID: "user-1", GuildID: "guild-1", NewLevel: level}
}

func TestSyncRankRole_CreatesMissingRole(t *testing.T) {
	dir := newFakeDirectory()
	notifier := &fakeNotifier{}
	h := NewSyncRankRoleHandler(dir, notifier, nil, 0)

	result, err := h.Handle(context.Background(), syncCommand(2))

	assert.NoError(t, err)
	assert.Equal(t, progression.RoleNameForLevel(2), result.RoleName)
	assert.True(t, result.CreatedRole)
	assert.True(t, result.Notified)
	assert.Equal(t, 1, dir.createCalls)
	assert.Equal(t, 1, dir.addCalls)
	assert.Equal(t, 1, notifier.calls)
}

func TestSyncRankRole_Idempotent(t *testing.T) {
	dir := newFakeDirectory()
	h := NewSyncRankRoleHandler(dir, &fakeNotifier{}, nil, 0)

	first, err := h.Handle(context.Background(), syncCommand(3))
	assert.NoError(t, err)
	assert.True(t, first.CreatedRole)

	second, err := h.Handle(context.Background(), syncCommand(3))
	assert.NoError(t, err)
	assert.False(t, second.CreatedRole)
	assert.Empty(t, second.RemovedRoles)

	// Still exactly one role held.
	ids, _ := dir.MemberRoles(context.Background(), "guild-1", "user-1")
	assert.Len(t, ids, 1)
}

func TestSyncRankRole_RemovesOtherRankRoles(t *testing.T) {
	dir := newFakeDirectory()
	oldRole := dir.seedRole(progression.RoleNameForLevel(1))
	dir.grant(oldRole.ID)
	// A manually granted higher rank is reconciled away too.
	highRole := dir.seedRole(progression.RoleNameForLevel(5))
	dir.grant(highRole.ID)

	h := NewSyncRankRoleHandler(dir, &fakeNotifier{}, nil, 0)
	result, err := h.Handle(context.Background(), syncCommand(2))

	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{
		progression.RoleNameForLevel(1),
		progression.RoleNameForLevel(5),
	}, result.RemovedRoles)
	assert.False(t, dir.holds(oldRole.ID))
	assert.False(t, dir.holds(highRole.ID))
}

func TestSyncRankRole_NonRankRolesUntouched(t *testing.T) {
	dir := newFakeDirectory()
	modRole := dir.seedRole("Moderator")
	dir.grant(modRole.ID)

	h := NewSyncRankRoleHandler(dir, &fakeNotifier{}, nil, 0)
	result, err := h.Handle(context.Background(), syncCommand(2))

	assert.NoError(t, err)
	assert.Empty(t, result.RemovedRoles)
	assert.True(t, dir.holds(modRole.ID))
}

func TestSyncRankRole_RemoveNotFoundContinues(t *testing.T) {
	dir := newFakeDirectory()
	oldRole := dir.seedRole(progression.RoleNameForLevel(1))
	dir.grant(oldRole.ID)
	dir.removeErr = shared.ErrDiscordNotFound

	h := NewSyncRankRoleHandler(dir, &fakeNotifier{}, nil, 0)
	result, err := h.Handle(context.Background(), syncCommand(2))

	assert.NoError(t, err)
	assert.Empty(t, result.RemovedRoles)
	assert.Equal(t, 1, dir.addCalls)
}

func TestSyncRankRole_CreateConflictResolvesViaRelist(t *testing.T) {
	dir := newFakeDirectory()
	dir.createConflict = true

	h := NewSyncRankRoleHandler(dir, &fakeNotifier{}, nil, 0)
	result, err := h.Handle(context.Background(), syncCommand(2))

	assert.NoError(t, err)
	assert.False(t, result.CreatedRole)
	assert.Equal(t, 1, dir.addCalls)
	assert.Equal(t, 2, dir.listCalls)
}

func TestSyncRankRole_NotifyFailureIsSwallowed(t *testing.T) {
	dir := newFakeDirectory()
	notifier := &fakeNotifier{err: shared.ErrDiscordPermission}

	h := NewSyncRankRoleHandler(dir, notifier, nil, 0)
	result, err := h.Handle(context.Background(), syncCommand(2))

	assert.NoError(t, err)
	assert.False(t, result.Notified)
}

func TestSyncRankRole_StepErrorsAreNamed(t *testing.T) {
	dir := newFakeDirectory()
	dir.listErr = shared.ErrDiscordFailed

	h := NewSyncRankRoleHandler(dir, &fakeNotifier{}, nil, 0)
	_, err := h.Handle(context.Background(), syncCommand(2))

	var syncErr *RoleSyncError
	assert.True(t, errors.As(err, &syncErr))
	assert.Equal(t, "list_roles", syncErr.Step)

	dir.listErr = nil
	dir.addErr = shared.ErrDiscordPermission
	_, err = h.Handle(context.Background(), syncCommand(2))

	assert.True(t, errors.As(err, &syncErr))
	assert.Equal(t, "add_role", syncErr.Step)
	assert.True(t, shared.IsPermission(err))
}

func TestSyncRankRole_Validation(t *testing.T) {
	h := NewSyncRankRoleHandler(newFakeDirectory(), &fakeNotifier{}, nil, 0)

	_, err := h.Handle(context.Background(), SyncRankRoleCommand{GuildID: "guild-1", NewLevel: 2})
	assert.Error(t, err)

	_, err = h.Handle(context.Background(), SyncRankRoleCommand{UserID: "user-1", NewLevel: 2})
	assert.Error(t, err)

	_, err = h.Handle(context.Background(), SyncRankRoleCommand{UserID: "user-1", GuildID: "guild-1", NewLevel: 0})
	assert.Error(t, err)
}
