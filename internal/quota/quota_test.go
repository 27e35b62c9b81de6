// README: Geocoding-quota tests (lazy reset and boundary logic).
package quota

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"itinerary/internal/geocore"
)

type stubResolver struct{}

func (stubResolver) Resolve(ctx context.Context, name string) (geocore.Coordinate, error) {
	return geocore.Coordinate{Lat: 1, Lon: 2}, nil
}

func TestResolve_CrossMonthReset(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	if _, err := db.Exec(ctx, "INSERT INTO geocode_usage VALUES ('user_reset', 0, '2000-01')"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := svc.Resolve(ctx, "user_reset", "Some Place"); err != nil {
		t.Fatalf("Resolve after cross-month reset: %v", err)
	}

	var remaining int
	if err := db.QueryRow(ctx, "SELECT lookups_remaining FROM geocode_usage WHERE uid = 'user_reset'").Scan(&remaining); err != nil {
		t.Fatalf("query: %v", err)
	}
	if remaining != DefaultLookups-1 {
		t.Fatalf("expected %d lookups remaining, got %d", DefaultLookups-1, remaining)
	}
}

func TestResolve_InsufficientQuota(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	if _, err := db.Exec(ctx, "INSERT INTO geocode_usage (uid, lookups_remaining, last_reset_month) VALUES ('user_zero', 0, TO_CHAR(NOW(), 'YYYY-MM'))"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.Resolve(ctx, "user_zero", "Some Place")
	if err != ErrInsufficientTokens {
		t.Fatalf("expected ErrInsufficientTokens, got %v", err)
	}
}

func TestResolve_NewUser(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.Resolve(ctx, "user_new", "Some Place"); err != nil {
		t.Fatalf("Resolve for new user: %v", err)
	}

	var remaining int
	if err := db.QueryRow(ctx, "SELECT lookups_remaining FROM geocode_usage WHERE uid = 'user_new'").Scan(&remaining); err != nil {
		t.Fatalf("query: %v", err)
	}
	if remaining != DefaultLookups-1 {
		t.Fatalf("expected %d lookups remaining after first use, got %d", DefaultLookups-1, remaining)
	}
}

// setupTestService creates a real postgres-backed Service for integration
// tests. Skips when ITINERARY_TEST_DSN is not set.
func setupTestService(t *testing.T) (*Service, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("ITINERARY_TEST_DSN")
	if dsn == "" {
		t.Skip("ITINERARY_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := NewStore(db)
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE TABLE geocode_usage"); err != nil {
		t.Fatalf("truncate geocode_usage: %v", err)
	}

	return NewService(store, stubResolver{}), db
}
