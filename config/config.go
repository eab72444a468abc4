package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"melv-core/service"
)

// Config is the complete runtime configuration.
type Config struct {
	Calculator service.Config
	Cache      CacheConfig
	LogLevel   slog.Level
}

// CacheConfig selects the result cache. An empty RedisAddr means in-memory.
type CacheConfig struct {
	RedisAddr string
	TTL       time.Duration
}

// Load reads an optional .env file, then the MELV_* environment variables,
// and validates the calculator settings.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		// godotenv no sobreescribe variables ya definidas
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	calc := service.DefaultConfig()
	var err error
	parse := func(key string, dst *float64) {
		if err != nil {
			return
		}
		*dst, err = getEnvFloat(key, *dst)
	}
	parse("MELV_CRITICAL_THRESHOLD", &calc.CriticalThreshold)
	parse("MELV_CRITICAL_EPSILON", &calc.CriticalEpsilon)
	parse("MELV_HIGH_BETA", &calc.HighBetaThreshold)
	parse("MELV_HIGH_PERPETUITY", &calc.HighPerpetuityThreshold)
	parse("MELV_STRONG_COMPETITION", &calc.StrongCompetitionThreshold)
	parse("MELV_CONFIDENCE_LEVEL", &calc.ConfidenceLevel)
	parse("MELV_DIFFERENTIATION_FLOOR", &calc.DifferentiationFloor)
	if err != nil {
		return nil, err
	}

	if calc.BootstrapN, err = getEnvInt("MELV_BOOTSTRAP_N", calc.BootstrapN); err != nil {
		return nil, err
	}
	if calc.MaxBootstrapN, err = getEnvInt("MELV_MAX_BOOTSTRAP_N", calc.MaxBootstrapN); err != nil {
		return nil, err
	}
	if calc.Workers, err = getEnvInt("MELV_WORKERS", calc.Workers); err != nil {
		return nil, err
	}
	if calc.BetaWeights, err = getEnvWeights("MELV_BETA_WEIGHTS", calc.BetaWeights); err != nil {
		return nil, err
	}

	if err := calc.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	ttl, err := getEnvDuration("MELV_CACHE_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	return &Config{
		Calculator: calc,
		Cache: CacheConfig{
			RedisAddr: os.Getenv("MELV_REDIS_ADDR"),
			TTL:       ttl,
		},
		LogLevel: ParseLogLevel(os.Getenv("MELV_LOG_LEVEL")),
	}, nil
}

// ParseLogLevel maps DEBUG/INFO/WARN/ERROR to a slog level; anything else is INFO.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", key, value)
	}
	return f, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, value)
	}
	return i, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, value)
	}
	return d, nil
}

// getEnvWeights parses "physical,service,temporal".
func getEnvWeights(key string, defaultValue [3]float64) ([3]float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return defaultValue, fmt.Errorf("%s: expected 3 comma-separated weights, got %d", key, len(parts))
	}
	var w [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return defaultValue, fmt.Errorf("%s: invalid weight %q", key, p)
		}
		w[i] = f
	}
	return w, nil
}
