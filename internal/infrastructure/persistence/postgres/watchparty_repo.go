package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/movie"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// WATCH PARTY REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// WatchPartyRepository implements movie.WatchPartyRepository on PostgreSQL.
type WatchPartyRepository struct {
	conn   *Connection
	logger *slog.Logger
}

// NewWatchPartyRepository creates a PostgreSQL-backed watch party repository.
func NewWatchPartyRepository(conn *Connection, logger *slog.Logger) *WatchPartyRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &WatchPartyRepository{
		conn:   conn,
		logger: logger.With("repository", "watch_party"),
	}
}

// Save stores a new watch party.
func (r *WatchPartyRepository) Save(ctx context.Context, party *movie.WatchParty) error {
	_, err := r.conn.Exec(ctx, `
		INSERT INTO watch_parties (id, movie_name, host_id, channel_id, starts_at, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, party.ID, party.MovieName, party.HostID, party.ChannelID, party.StartsAt, string(party.Status), party.CreatedAt)

	if err != nil {
		if IsUniqueViolation(err) {
			return shared.WrapError("movie", "SaveWatchParty", shared.ErrAlreadyExists,
				fmt.Sprintf("watch party %s already exists", party.ID), err)
		}
		return shared.WrapError("movie", "SaveWatchParty", shared.ErrStorage, "insert watch party", err)
	}
	return nil
}

// Update persists status changes.
func (r *WatchPartyRepository) Update(ctx context.Context, party *movie.WatchParty) error {
	tag, err := r.conn.Exec(ctx, `
		UPDATE watch_parties
		SET status = $1
		WHERE id = $2
	`, string(party.Status), party.ID)
	if err != nil {
		return shared.WrapError("movie", "UpdateWatchParty", shared.ErrStorage, "update watch party", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrWatchPartyNotFound
	}
	return nil
}

// Upcoming returns parties starting after now, soonest first.
func (r *WatchPartyRepository) Upcoming(ctx context.Context, now time.Time, limit int) ([]*movie.WatchParty, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT id, movie_name, host_id, channel_id, starts_at, status, created_at
		FROM watch_parties
		WHERE starts_at > $1 AND status <> 'done'
		ORDER BY starts_at ASC
		LIMIT $2
	`, now, limit)
	if err != nil {
		return nil, shared.WrapError("movie", "Upcoming", shared.ErrStorage, "query upcoming watch parties", err)
	}
	defer rows.Close()
	return scanWatchParties(rows)
}

// DueForReminder returns scheduled parties starting within the window.
func (r *WatchPartyRepository) DueForReminder(ctx context.Context, now time.Time, window time.Duration) ([]*movie.WatchParty, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT id, movie_name, host_id, channel_id, starts_at, status, created_at
		FROM watch_parties
		WHERE status = 'scheduled' AND starts_at > $1 AND starts_at <= $2
		ORDER BY starts_at ASC
	`, now, now.Add(window))
	if err != nil {
		return nil, shared.WrapError("movie", "DueForReminder", shared.ErrStorage, "query due watch parties", err)
	}
	defer rows.Close()
	return scanWatchParties(rows)
}

// scanner is the row-scanning subset shared by pgx.Rows iterations here.
type scanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanWatchParties(rows scanner) ([]*movie.WatchParty, error) {
	var result []*movie.WatchParty
	for rows.Next() {
		var (
			party  movie.WatchParty
			status string
		)
		if err := rows.Scan(&party.ID, &party.MovieName, &party.HostID, &party.ChannelID,
			&party.StartsAt, &status, &party.CreatedAt); err != nil {
			return nil, shared.WrapError("movie", "ScanWatchParty", shared.ErrStorage, "scan watch party row", err)
		}
		party.Status = movie.WatchPartyStatus(status)
		result = append(result, &party)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.WrapError("movie", "ScanWatchParty", shared.ErrStorage, "iterate watch party rows", err)
	}
	return result, nil
}
