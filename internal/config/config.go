// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/scoracle-standings/internal/cache"
	"github.com/albapepper/scoracle-standings/internal/provider"
)

// --------------------------------------------------------------------------
// Dataset registry
// --------------------------------------------------------------------------

// Default remote paths, relative to the stats API base URL.
const (
	StandingsRemotePath = "nba/standings.json"
	TeamStatsRemotePath = "nba/team-stats.json"
)

// Snapshot backends.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// DefaultMaxAgeHours is the refresh threshold used for both datasets when
// none is configured (3.6 seconds).
const DefaultMaxAgeHours = 0.001

// --------------------------------------------------------------------------
// Config is populated from environment variables.
// --------------------------------------------------------------------------

type Config struct {
	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Upstream stats API
	StatsAPIHost              string
	StatsAPIPath              string
	StatsAPIToken             string
	StatsUserAgent            string
	UpstreamRequestsPerMinute int
	UpstreamTimeout           time.Duration

	// Snapshot cache
	StandingsMaxAgeHours float64
	TeamStatsMaxAgeHours float64
	SnapshotBackend      string
	SnapshotDir          string
	RefreshInterval      time.Duration // 0 disables the background refresher

	// Database (postgres backend only)
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:4321",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		StatsAPIHost:              envOr("STATS_API_HOST", "erikberg.com"),
		StatsAPIPath:              envOr("STATS_API_PATH", "/"),
		StatsAPIToken:             envOr("STATS_API_TOKEN", ""),
		StatsUserAgent:            envOr("STATS_USER_AGENT", "scoracle-standings/1.0"),
		UpstreamRequestsPerMinute: envInt("UPSTREAM_REQUESTS_PER_MINUTE", 6),
		UpstreamTimeout:           time.Duration(envInt("UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second,

		StandingsMaxAgeHours: envFloat("STANDINGS_MAX_AGE_HOURS", DefaultMaxAgeHours),
		TeamStatsMaxAgeHours: envFloat("TEAM_STATS_MAX_AGE_HOURS", DefaultMaxAgeHours),
		SnapshotBackend:      strings.ToLower(envOr("SNAPSHOT_BACKEND", BackendFile)),
		SnapshotDir:          envOr("SNAPSHOT_DIR", "public/data"),
		RefreshInterval:      time.Duration(envInt("REFRESH_INTERVAL_MINUTES", 0)) * time.Minute,

		DatabaseURL:    envOr("DATABASE_URL", envOr("NEON_DATABASE_URL", "")),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 4),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.SnapshotBackend {
	case BackendFile:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set when SNAPSHOT_BACKEND is %q", BackendPostgres)
		}
	default:
		return fmt.Errorf("SNAPSHOT_BACKEND must be %q or %q, got %q", BackendFile, BackendPostgres, c.SnapshotBackend)
	}
	if c.StandingsMaxAgeHours < 0 || c.TeamStatsMaxAgeHours < 0 {
		return fmt.Errorf("max age hours must not be negative")
	}
	if c.StatsAPIHost == "" {
		return fmt.Errorf("STATS_API_HOST must not be empty")
	}
	return nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// StatsAPIBaseURL joins the API host and path into a base URL ending in "/".
// The host may carry its own scheme; https is assumed otherwise.
func (c *Config) StatsAPIBaseURL() string {
	host := strings.TrimRight(c.StatsAPIHost, "/")
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	path := strings.Trim(c.StatsAPIPath, "/")
	if path == "" {
		return host + "/"
	}
	return host + "/" + path + "/"
}

// Standings returns the standings dataset descriptor.
func (c *Config) Standings() cache.Dataset {
	return cache.Dataset{
		Name:        provider.DatasetStandings,
		RemotePath:  StandingsRemotePath,
		DateField:   "standings_date",
		MaxAgeHours: c.StandingsMaxAgeHours,
	}
}

// TeamStats returns the team stats dataset descriptor.
func (c *Config) TeamStats() cache.Dataset {
	return cache.Dataset{
		Name:        provider.DatasetTeamStats,
		RemotePath:  TeamStatsRemotePath,
		DateField:   "team_stats_date",
		MaxAgeHours: c.TeamStatsMaxAgeHours,
	}
}

// Datasets returns every dataset descriptor, team stats first.
func (c *Config) Datasets() []cache.Dataset {
	return []cache.Dataset{c.TeamStats(), c.Standings()}
}

// Dataset looks up a descriptor by name.
func (c *Config) Dataset(name string) (cache.Dataset, bool) {
	for _, ds := range c.Datasets() {
		if ds.Name == name {
			return ds, true
		}
	}
	return cache.Dataset{}, false
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
