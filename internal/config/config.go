// Package config holds domain constants and the environment-driven runtime
// configuration.
package config

import (
	"os"
	"strconv"
	"time"
)

// Submission and account limits.
const (
	MaxDescriptionLen = 1000
	MinPasswordLen    = 6
	MaxImageBytes     = 5 << 20
)

// Canned delays emulating network latency, matching the original UX pacing.
// Disabled entirely when SIMULATE_LATENCY=false (tests construct Config
// directly with zero values).
const (
	DefaultLoginLatency  = 1 * time.Second
	DefaultSubmitLatency = 2 * time.Second
	DefaultListLatency   = 1 * time.Second
	DefaultUpdateLatency = 1 * time.Second
)

// Config is the runtime configuration for the server and admin CLI.
type Config struct {
	Addr           string
	JWTSecret      string
	StorageBackend string // "redis" (default) or "postgres"
	RedisAddr      string
	RedisDB        int
	PostgresDSN    string
	UploadDir      string

	TelegramToken  string
	TelegramChatID int64

	LoginLatency  time.Duration
	SubmitLatency time.Duration
	ListLatency   time.Duration
	UpdateLatency time.Duration
}

// Load reads the configuration from the environment.
func Load() Config {
	cfg := Config{
		Addr:           envOr("ADDR", ":8080"),
		JWTSecret:      envOr("JWT_SECRET", "dev-only-secret"),
		StorageBackend: envOr("STORAGE_BACKEND", "redis"),
		RedisAddr:      envOr("REDIS_ADDR", "localhost:6379"),
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		UploadDir:      envOr("UPLOAD_DIR", "uploads"),
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if db, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		cfg.RedisDB = db
	}
	if chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_ADMIN_CHAT_ID"), 10, 64); err == nil {
		cfg.TelegramChatID = chatID
	}

	if os.Getenv("SIMULATE_LATENCY") != "false" {
		cfg.LoginLatency = DefaultLoginLatency
		cfg.SubmitLatency = DefaultSubmitLatency
		cfg.ListLatency = DefaultListLatency
		cfg.UpdateLatency = DefaultUpdateLatency
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
