package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/progression"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// ProgressRepository implements progression.ProgressStore on PostgreSQL.
type ProgressRepository struct {
	conn   *Connection
	logger *slog.Logger
}

// NewProgressRepository creates a PostgreSQL-backed progress store.
func NewProgressRepository(conn *Connection, logger *slog.Logger) *ProgressRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressRepository{
		conn:   conn,
		logger: logger.With("repository", "progress"),
	}
}

// Get returns the progress for a user.
func (r *ProgressRepository) Get(ctx context.Context, userID progression.UserID) (*progression.UserProgress, error) {
	var p progression.UserProgress
	err := r.conn.QueryRow(ctx, `
		SELECT user_id, xp, level, updated_at
		FROM user_progress
		WHERE user_id = $1
	`, userID.String()).Scan(&p.UserID, &p.XP, &p.Level, &p.UpdatedAt)

	if IsNoRows(err) {
		return nil, shared.ErrProgressNotFound
	}
	if err != nil {
		return nil, shared.WrapError("progression", "Get", shared.ErrStorage,
			fmt.Sprintf("query progress for user %s", userID), err)
	}
	return &p, nil
}

// Put upserts the full progress row for a user.
func (r *ProgressRepository) Put(ctx context.Context, progress *progression.UserProgress) error {
	_, err := r.conn.Exec(ctx, `
		INSERT INTO user_progress (user_id, xp, level, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			xp         = EXCLUDED.xp,
			level      = EXCLUDED.level,
			updated_at = EXCLUDED.updated_at
	`, progress.UserID.String(), int(progress.XP), int(progress.Level), progress.UpdatedAt)

	if err != nil {
		return shared.WrapError("progression", "Put", shared.ErrStorage,
			fmt.Sprintf("upsert progress for user %s", progress.UserID), err)
	}
	return nil
}

// Top returns up to limit users ordered by XP descending.
func (r *ProgressRepository) Top(ctx context.Context, limit int) ([]*progression.UserProgress, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT user_id, xp, level, updated_at
		FROM user_progress
		ORDER BY xp DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, shared.WrapError("progression", "Top", shared.ErrStorage, "query leaderboard", err)
	}
	defer rows.Close()

	var result []*progression.UserProgress
	for rows.Next() {
		var p progression.UserProgress
		if err := rows.Scan(&p.UserID, &p.XP, &p.Level, &p.UpdatedAt); err != nil {
			return nil, shared.WrapError("progression", "Top", shared.ErrStorage, "scan leaderboard row", err)
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.WrapError("progression", "Top", shared.ErrStorage, "iterate leaderboard rows", err)
	}
	return result, nil
}
