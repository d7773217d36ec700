package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dugout-cli/dugout/internal/platform/logging"
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config stores runtime configuration for the CLI.
type Config struct {
	DBPath        string
	CurrentSeason int
	TwoWayPlayers []string
	ColorMode     string
	LogLevel      logging.Level

	MLBAPIBaseURL             string
	MLBAPITimeout             time.Duration
	MLBAPIMaxRetries          int
	MLBAPICircuitEnabled      bool
	MLBAPICircuitFailureCount int
	MLBAPICircuitOpenTimeout  time.Duration

	LoadWorkers int
}

func Load() (Config, error) {
	currentSeason, err := getEnvAsInt("DUGOUT_CURRENT_SEASON", 2025)
	if err != nil {
		return Config{}, fmt.Errorf("parse DUGOUT_CURRENT_SEASON: %w", err)
	}
	if currentSeason < 1871 {
		return Config{}, fmt.Errorf("DUGOUT_CURRENT_SEASON must be a modern season, got %d", currentSeason)
	}

	colorMode, err := parseColorMode(getEnv("DUGOUT_COLOR", ColorAuto))
	if err != nil {
		return Config{}, err
	}

	mlbTimeout, err := time.ParseDuration(getEnv("MLB_API_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_API_TIMEOUT: %w", err)
	}
	if mlbTimeout <= 0 {
		return Config{}, fmt.Errorf("MLB_API_TIMEOUT must be > 0")
	}

	mlbMaxRetries, err := getEnvAsInt("MLB_API_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_API_MAX_RETRIES: %w", err)
	}
	if mlbMaxRetries < 0 {
		return Config{}, fmt.Errorf("MLB_API_MAX_RETRIES must be >= 0")
	}

	mlbCircuitEnabled, err := strconv.ParseBool(getEnv("MLB_API_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_API_CIRCUIT_ENABLED: %w", err)
	}

	mlbCircuitFailureCount, err := getEnvAsInt("MLB_API_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_API_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if mlbCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("MLB_API_CIRCUIT_FAILURE_COUNT must be >= 1")
	}

	mlbCircuitOpenTimeout, err := time.ParseDuration(getEnv("MLB_API_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_API_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if mlbCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("MLB_API_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}

	loadWorkers, err := getEnvAsInt("DUGOUT_LOAD_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse DUGOUT_LOAD_WORKERS: %w", err)
	}
	if loadWorkers < 1 {
		return Config{}, fmt.Errorf("DUGOUT_LOAD_WORKERS must be >= 1")
	}

	cfg := Config{
		DBPath:                    getEnv("DUGOUT_DB_PATH", "baseball_stats.db"),
		CurrentSeason:             currentSeason,
		TwoWayPlayers:             splitCSV(getEnv("DUGOUT_TWO_WAY", "Shohei Ohtani")),
		ColorMode:                 colorMode,
		LogLevel:                  logging.ParseLevel(getEnv("DUGOUT_LOG_LEVEL", "warn")),
		MLBAPIBaseURL:             strings.TrimRight(getEnv("MLB_API_BASE_URL", "https://statsapi.mlb.com/api/v1"), "/"),
		MLBAPITimeout:             mlbTimeout,
		MLBAPIMaxRetries:          mlbMaxRetries,
		MLBAPICircuitEnabled:      mlbCircuitEnabled,
		MLBAPICircuitFailureCount: mlbCircuitFailureCount,
		MLBAPICircuitOpenTimeout:  mlbCircuitOpenTimeout,
		LoadWorkers:               loadWorkers,
	}

	if strings.TrimSpace(cfg.DBPath) == "" {
		return Config{}, fmt.Errorf("DUGOUT_DB_PATH cannot be empty")
	}

	return cfg, nil
}

// IsTwoWay reports whether name is on the configured two-way player list.
// Matching ignores case so prompt input and stored names both hit.
func (c Config) IsTwoWay(name string) bool {
	for _, p := range c.TwoWayPlayers {
		if strings.EqualFold(strings.TrimSpace(name), p) {
			return true
		}
	}
	return false
}

func parseColorMode(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case ColorAuto, ColorAlways, ColorNever:
		return value, nil
	default:
		return "", fmt.Errorf("invalid DUGOUT_COLOR %q: valid values are %s, %s, %s", v, ColorAuto, ColorAlways, ColorNever)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
