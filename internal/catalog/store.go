package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists the POI catalog in Postgres, adapted from the location and
// pricing modules' pgxpool-backed stores. Hours are stored as the same JSON
// encoding ParseHoursJSON/MarshalHoursJSON use for the CSV ingest format, so
// a row round-trips through either path identically.
type Store struct {
	db *pgxpool.Pool
}

// NewStore wraps a pgxpool.Pool for catalog persistence.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Migrate creates the catalog_places table if it does not already exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS catalog_places (
			name         TEXT PRIMARY KEY,
			lat          DOUBLE PRECISION NOT NULL,
			lon          DOUBLE PRECISION NOT NULL,
			rating       DOUBLE PRECISION NOT NULL DEFAULT 0,
			duration_min INTEGER NOT NULL DEFAULT 0,
			label        TEXT NOT NULL,
			period       TEXT NOT NULL,
			hours        JSONB NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("catalog: migrate: %w", err)
	}
	return nil
}

// Upsert inserts or replaces a single catalog record.
func (s *Store) Upsert(ctx context.Context, p PlaceRecord) error {
	hoursJSON, err := MarshalHoursJSON(p.Hours)
	if err != nil {
		return fmt.Errorf("catalog: marshal hours for %q: %w", p.Name, err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO catalog_places (name, lat, lon, rating, duration_min, label, period, hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name) DO UPDATE SET
			lat = EXCLUDED.lat, lon = EXCLUDED.lon, rating = EXCLUDED.rating,
			duration_min = EXCLUDED.duration_min, label = EXCLUDED.label,
			period = EXCLUDED.period, hours = EXCLUDED.hours`,
		p.Name, p.Lat, p.Lon, p.Rating, p.DurationMin, string(p.Label), string(p.Period), hoursJSON)
	if err != nil {
		return fmt.Errorf("catalog: upsert %q: %w", p.Name, err)
	}
	return nil
}

// All loads the entire catalog.
func (s *Store) All(ctx context.Context) ([]PlaceRecord, error) {
	rows, err := s.db.Query(ctx, `SELECT name, lat, lon, rating, duration_min, label, period, hours FROM catalog_places`)
	if err != nil {
		return nil, fmt.Errorf("catalog: query all: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Get loads a single catalog record by name. Returns (PlaceRecord{}, false, nil)
// when no row matches.
func (s *Store) Get(ctx context.Context, name string) (PlaceRecord, bool, error) {
	row := s.db.QueryRow(ctx, `SELECT name, lat, lon, rating, duration_min, label, period, hours FROM catalog_places WHERE name = $1`, name)
	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return PlaceRecord{}, false, nil
	}
	if err != nil {
		return PlaceRecord{}, false, fmt.Errorf("catalog: get %q: %w", name, err)
	}
	return rec, true, nil
}

// Delete removes a record by name.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM catalog_places WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("catalog: delete %q: %w", name, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (PlaceRecord, error) {
	var (
		name, label, period string
		lat, lon, rating    float64
		durationMin         int
		hoursJSON           []byte
	)
	if err := row.Scan(&name, &lat, &lon, &rating, &durationMin, &label, &period, &hoursJSON); err != nil {
		return PlaceRecord{}, err
	}
	hours, err := ParseHoursJSON(hoursJSON)
	if err != nil {
		return PlaceRecord{}, fmt.Errorf("parse hours for %q: %w", name, err)
	}
	return PlaceRecord{
		Name: name, Lat: lat, Lon: lon, Rating: rating, DurationMin: durationMin,
		Label: Label(label), Period: Period(period), Hours: hours,
	}, nil
}

func scanRecords(rows pgx.Rows) ([]PlaceRecord, error) {
	var out []PlaceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
