// Package sqlite implements the persistence ports on a local SQLite file.
// It is the zero-setup storage driver for local development and small
// single-server deployments; production uses the postgres package.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/movie"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/progression"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

const schema = `
CREATE TABLE IF NOT EXISTS user_progress (
	user_id    TEXT PRIMARY KEY,
	xp         INTEGER NOT NULL DEFAULT 0,
	level      INTEGER NOT NULL DEFAULT 1,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_user_progress_xp ON user_progress (xp DESC);

CREATE TABLE IF NOT EXISTS recommendations (
	id             TEXT PRIMARY KEY,
	movie_name     TEXT NOT NULL,
	recommender_id TEXT NOT NULL,
	rating         INTEGER NOT NULL DEFAULT 0,
	created_at     TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_recommendations_created_at ON recommendations (created_at DESC);

CREATE TABLE IF NOT EXISTS watch_parties (
	id         TEXT PRIMARY KEY,
	movie_name TEXT NOT NULL,
	host_id    TEXT NOT NULL,
	channel_id TEXT NOT NULL,
	starts_at  TIMESTAMP NOT NULL,
	status     TEXT NOT NULL DEFAULT 'scheduled',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_watch_parties_starts_at ON watch_parties (starts_at);
`

// Store is a SQLite-backed implementation of the progression and movie
// persistence ports. A single Store serves all three interfaces.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the SQLite database at path and applies the
// schema. WAL mode keeps readers from blocking the writer.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}

	// SQLite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent command handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	logger.Info("sqlite store opened", "path", path)
	return &Store{db: db, logger: logger.With("store", "sqlite")}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESSION.PROGRESSSTORE
// ══════════════════════════════════════════════════════════════════════════════

// Get returns the progress for a user.
func (s *Store) Get(ctx context.Context, userID progression.UserID) (*progression.UserProgress, error) {
	var p progression.UserProgress
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, xp, level, updated_at
		FROM user_progress
		WHERE user_id = ?
	`, userID.String()).Scan(&p.UserID, &p.XP, &p.Level, &p.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, shared.ErrProgressNotFound
	}
	if err != nil {
		return nil, shared.WrapError("progression", "Get", shared.ErrStorage,
			fmt.Sprintf("query progress for user %s", userID), err)
	}
	return &p, nil
}

// Put upserts the full progress row for a user.
func (s *Store) Put(ctx context.Context, progress *progression.UserProgress) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_progress (user_id, xp, level, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			xp         = excluded.xp,
			level      = excluded.level,
			updated_at = excluded.updated_at
	`, progress.UserID.String(), int(progress.XP), int(progress.Level), progress.UpdatedAt)

	if err != nil {
		return shared.WrapError("progression", "Put", shared.ErrStorage,
			fmt.Sprintf("upsert progress for user %s", progress.UserID), err)
	}
	return nil
}

// Top returns up to limit users ordered by XP descending.
func (s *Store) Top(ctx context.Context, limit int) ([]*progression.UserProgress, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, xp, level, updated_at
		FROM user_progress
		ORDER BY xp DESC
		LIMIT ?
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

// ══════════════════════════════════════════════════════════════════════════════
// MOVIE.RECOMMENDATIONREPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// Save stores a new recommendation.
func (s *Store) Save(ctx context.Context, rec *movie.Recommendation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recommendations (id, movie_name, recommender_id, rating, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.ID, rec.MovieName, rec.RecommenderID, rec.Rating, rec.CreatedAt)

	if err != nil {
		return shared.WrapError("movie", "Save", shared.ErrStorage, "insert recommendation", err)
	}
	return nil
}

// Recent returns up to limit recommendations, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*movie.Recommendation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, movie_name, recommender_id, rating, created_at
		FROM recommendations
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, shared.WrapError("movie", "Recent", shared.ErrStorage, "query recommendations", err)
	}
	defer rows.Close()

	var result []*movie.Recommendation
	for rows.Next() {
		var rec movie.Recommendation
		if err := rows.Scan(&rec.ID, &rec.MovieName, &rec.RecommenderID, &rec.Rating, &rec.CreatedAt); err != nil {
			return nil, shared.WrapError("movie", "Recent", shared.ErrStorage, "scan recommendation row", err)
		}
		result = append(result, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.WrapError("movie", "Recent", shared.ErrStorage, "iterate recommendation rows", err)
	}
	return result, nil
}

// Rate sets the rating on every recommendation matching the movie name,
// case-insensitively.
func (s *Store) Rate(ctx context.Context, movieName string, rating int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE recommendations
		SET rating = ?
		WHERE LOWER(movie_name) = LOWER(?)
	`, rating, movieName)
	if err != nil {
		return shared.WrapError("movie", "Rate", shared.ErrStorage, "update rating", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return shared.WrapError("movie", "Rate", shared.ErrStorage, "read rows affected", err)
	}
	if affected == 0 {
		return shared.ErrRecommendationNotFound
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// MOVIE.WATCHPARTYREPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// SaveWatchParty stores a new watch party.
func (s *Store) SaveWatchParty(ctx context.Context, party *movie.WatchParty) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO watch_parties (id, movie_name, host_id, channel_id, starts_at, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, party.ID, party.MovieName, party.HostID, party.ChannelID, party.StartsAt, string(party.Status), party.CreatedAt)

	if err != nil {
		return shared.WrapError("movie", "SaveWatchParty", shared.ErrStorage, "insert watch party", err)
	}
	return nil
}

// UpdateWatchParty persists status changes.
func (s *Store) UpdateWatchParty(ctx context.Context, party *movie.WatchParty) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE watch_parties
		SET status = ?
		WHERE id = ?
	`, string(party.Status), party.ID)
	if err != nil {
		return shared.WrapError("movie", "UpdateWatchParty", shared.ErrStorage, "update watch party", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return shared.WrapError("movie", "UpdateWatchParty", shared.ErrStorage, "read rows affected", err)
	}
	if affected == 0 {
		return shared.ErrWatchPartyNotFound
	}
	return nil
}

// UpcomingWatchParties returns parties starting after now, soonest first.
func (s *Store) UpcomingWatchParties(ctx context.Context, now time.Time, limit int) ([]*movie.WatchParty, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, movie_name, host_id, channel_id, starts_at, status, created_at
		FROM watch_parties
		WHERE starts_at > ? AND status <> 'done'
		ORDER BY starts_at ASC
		LIMIT ?
	`, now, limit)
	if err != nil {
		return nil, shared.WrapError("movie", "Upcoming", shared.ErrStorage, "query upcoming watch parties", err)
	}
	defer rows.Close()
	return s.scanWatchParties(rows)
}

// WatchPartiesDueForReminder returns scheduled parties starting within the
// window.
func (s *Store) WatchPartiesDueForReminder(ctx context.Context, now time.Time, window time.Duration) ([]*movie.WatchParty, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, movie_name, host_id, channel_id, starts_at, status, created_at
		FROM watch_parties
		WHERE status = 'scheduled' AND starts_at > ? AND starts_at <= ?
		ORDER BY starts_at ASC
	`, now, now.Add(window))
	if err != nil {
		return nil, shared.WrapError("movie", "DueForReminder", shared.ErrStorage, "query due watch parties", err)
	}
	defer rows.Close()
	return s.scanWatchParties(rows)
}

func (s *Store) scanWatchParties(rows *sql.Rows) ([]*movie.WatchParty, error) {
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

// WatchParties adapts the Store to movie.WatchPartyRepository. The watch party
// methods carry distinct names on Store because Save/Update collide with the
// recommendation port.
func (s *Store) WatchParties() movie.WatchPartyRepository {
	return watchPartyAdapter{s}
}

type watchPartyAdapter struct{ s *Store }

func (a watchPartyAdapter) Save(ctx context.Context, party *movie.WatchParty) error {
	return a.s.SaveWatchParty(ctx, party)
}

func (a watchPartyAdapter) Update(ctx context.Context, party *movie.WatchParty) error {
	return a.s.UpdateWatchParty(ctx, party)
}

func (a watchPartyAdapter) Upcoming(ctx context.Context, now time.Time, limit int) ([]*movie.WatchParty, error) {
	return a.s.UpcomingWatchParties(ctx, now, limit)
}

func (a watchPartyAdapter) DueForReminder(ctx context.Context, now time.Time, window time.Duration) ([]*movie.WatchParty, error) {
	return a.s.WatchPartiesDueForReminder(ctx, now, window)
}
