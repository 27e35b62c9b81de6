package quota

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists per-user monthly geocoding-lookup counters.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Migrate creates the geocode_usage table if it does not already exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS geocode_usage (
			uid               TEXT PRIMARY KEY,
			lookups_remaining INTEGER NOT NULL,
			last_reset_month  TEXT NOT NULL
		)`)
	return err
}

// UseLookup atomically checks the monthly quota and deducts one lookup,
// resetting the counter to DefaultLookups when last_reset_month is behind
// the current month. Returns ErrInsufficientTokens when zero rows update
// (quota exhausted or uid absent).
func (s *Store) UseLookup(ctx context.Context, uid string) error {
	now := time.Now().Format("2006-01")

	tag, err := s.db.Exec(ctx, `
		UPDATE geocode_usage SET
			lookups_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE lookups_remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR lookups_remaining > 0)
	`, now, DefaultLookups, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientTokens
	}
	return nil
}

// EnsureUser inserts a new geocode_usage row for uid with the default
// allowance. A pre-existing row is left untouched.
func (s *Store) EnsureUser(ctx context.Context, uid string) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO geocode_usage (uid, lookups_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, DefaultLookups, time.Now().Format("2006-01"))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
