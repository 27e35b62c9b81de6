// README: Config loader with env defaults for HTTP, DB, Redis, and planner settings.
package config

import (
	"os"
	"strconv"
)

// PlannerConfig holds the per-run tunables: meal window width, top-k
// randomization pool size, the LRU cache capacity backing the TravelOracle
// decorator, and the provider call timeout before degrading to the
// fallback estimator.
type PlannerConfig struct {
	MealWindowMin int
	TopK          int
	OracleCacheSize int
	OracleTimeoutMs int
}

type Config struct {
	HTTP struct {
		Addr string
	}
	// DB and Redis are optional: a zero-value DSN/Addr means the catalog
	// loads empty and runs with no GEO pre-filter rather than refusing to
	// start.
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Planner PlannerConfig
	Maps    struct {
		APIKey string
	}
	AI struct {
		GeminiKey string
	}
	Auth struct {
		FirebaseProjectID      string
		FirebaseCredentialsPath string
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("ITINERARY_HTTP_ADDR", ":8080")
	cfg.DB.DSN = envOrDefault("ITINERARY_DB_DSN", "")
	cfg.Redis.Addr = envOrDefault("ITINERARY_REDIS_ADDR", "")
	cfg.Planner.MealWindowMin = envOrDefaultInt("ITINERARY_MEAL_WINDOW_MIN", 60)
	cfg.Planner.TopK = envOrDefaultInt("ITINERARY_TOP_K", 1)
	cfg.Planner.OracleCacheSize = envOrDefaultInt("ITINERARY_ORACLE_CACHE_SIZE", 192)
	cfg.Planner.OracleTimeoutMs = envOrDefaultInt("ITINERARY_ORACLE_TIMEOUT_MS", 5000)
	cfg.Maps.APIKey = envOrDefault("GOOGLE_MAPS_API_KEY", "")
	cfg.AI.GeminiKey = envOrDefault("GEMINI_API_KEY", "")
	cfg.Auth.FirebaseProjectID = envOrDefault("FIREBASE_PROJECT_ID", "")
	cfg.Auth.FirebaseCredentialsPath = envOrDefault("FIREBASE_CREDENTIALS_PATH", "")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
