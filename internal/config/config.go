package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Roster sources.
const (
	RosterSourceJSON        = "json"
	RosterSourceSpreadsheet = "spreadsheet"
	RosterSourcePostgres    = "postgres"
)

// Session stores.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Roster    RosterConfig
	Directory DirectoryConfig
	Session   SessionConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Metrics   MetricsConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// RosterConfig selects where the staff roster is read from.
type RosterConfig struct {
	Source         string
	Path           string
	RefreshSeconds int
}

// DirectoryConfig tunes the directory engine.
type DirectoryConfig struct {
	SearchDebounceMS int
	PageTitle        string
}

// SessionConfig controls how per-visitor sort/view state is kept.
type SessionConfig struct {
	Store      string
	CookieName string
	TTLMinutes int
	MaxEntries int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	source := strings.ToLower(getEnv("ROSTER_SOURCE", RosterSourceJSON))
	switch source {
	case RosterSourceJSON, RosterSourceSpreadsheet, RosterSourcePostgres:
	default:
		return nil, fmt.Errorf("invalid ROSTER_SOURCE %q", source)
	}

	store := strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory))
	if store != SessionStoreMemory && store != SessionStoreRedis {
		return nil, fmt.Errorf("invalid SESSION_STORE %q", store)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "staff-directory"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Roster: RosterConfig{
			Source:         source,
			Path:           getEnv("ROSTER_PATH", "data/staff.json"),
			RefreshSeconds: getEnvAsInt("ROSTER_REFRESH_SECONDS", 0),
		},
		Directory: DirectoryConfig{
			SearchDebounceMS: getEnvAsInt("DIRECTORY_SEARCH_DEBOUNCE_MS", 300),
			PageTitle:        getEnv("DIRECTORY_PAGE_TITLE", "Staff Directory"),
		},
		Session: SessionConfig{
			Store:      store,
			CookieName: getEnv("SESSION_COOKIE_NAME", "directory_session"),
			TTLMinutes: getEnvAsInt("SESSION_TTL_MINUTES", 60),
			MaxEntries: getEnvAsInt("SESSION_MAX_ENTRIES", 10000),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			DB:        redisDB,
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "directory:session:"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// RefreshInterval returns how often the roster is reread; zero disables it.
func (r RosterConfig) RefreshInterval() time.Duration {
	if r.RefreshSeconds <= 0 {
		return 0
	}
	return time.Duration(r.RefreshSeconds) * time.Second
}

// SearchDebounce returns the search quiet period.
func (d DirectoryConfig) SearchDebounce() time.Duration {
	if d.SearchDebounceMS <= 0 {
		return 0
	}
	return time.Duration(d.SearchDebounceMS) * time.Millisecond
}

// TTL returns how long an idle session is kept.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
