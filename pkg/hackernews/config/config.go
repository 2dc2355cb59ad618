package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingSecret is returned by Load when JWT_SECRET is not set
var ErrMissingSecret = errors.New("JWT_SECRET must be set")

// Config holds the process-wide settings. It is built once at start-up and
// passed by value afterwards.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	TokenTTL  time.Duration
	GinMode   string
	SeedDemo  bool
}

// Load reads configuration from the environment, after loading any .env
// files given (or ".env" when none are given). Missing .env files are ignored.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...) // .env is optional outside local development

	cfg := Config{
		Port:      getEnv("PORT", "8080"),
		DBPath:    getEnv("HACKERNEWS_DB_PATH", "hackernews.db"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		GinMode:   getEnv("GIN_MODE", "release"),
	}
	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingSecret
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL: must be positive, got %s", ttl)
	}
	cfg.TokenTTL = ttl

	if v := os.Getenv("SEED_DEMO"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SEED_DEMO: %w", err)
		}
		cfg.SeedDemo = seed
	}

	return cfg, nil
}

// String renders the config for logging with the secret redacted
func (c Config) String() string {
	return fmt.Sprintf("port=%s db=%s token_ttl=%s gin_mode=%s seed_demo=%t jwt_secret=[redacted]",
		c.Port, c.DBPath, c.TokenTTL, c.GinMode, c.SeedDemo)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
