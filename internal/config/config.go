// Package config centralizes how PaperProbe reads environment variables and
// exposes them as strongly typed Go values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends understood by StoreBackend.
const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config represents runtime configuration for the tool.
type Config struct {
	StoreBackend string
	StatePath    string
	DatabaseURL  string

	StageDelay      time.Duration
	GenerationDelay time.Duration

	NotificationTTL       time.Duration
	PerNotificationExpiry bool

	QueueSize      int
	ExtractWorkers int

	// PrefersDark is the system-level theme signal used when no theme has
	// been persisted yet.
	PrefersDark bool
	LogMode     string
	LogLevel    string
}

const (
	defaultStageDelay      = 500 * time.Millisecond
	defaultGenerationDelay = 2 * time.Second
	defaultNotificationTTL = 5 * time.Second
	defaultQueueSize       = 16
	defaultExtractWorkers  = 4
	defaultLogMode         = "dev"
	defaultLogLevel        = "info"
)

// LoadDotEnv copies variables from a dotenv file into the environment
// without overriding ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables falling back to defaults.
func Load() (*Config, error) {
	cfg := &Config{
		StoreBackend:          strings.ToLower(readEnv("PAPERPROBE_STORE", StoreFile)),
		StatePath:             readEnv("PAPERPROBE_STATE_PATH", defaultStatePath()),
		DatabaseURL:           readEnv("PAPERPROBE_DATABASE_URL", ""),
		StageDelay:            parseDuration("PAPERPROBE_STAGE_DELAY", defaultStageDelay),
		GenerationDelay:       parseDuration("PAPERPROBE_GENERATION_DELAY", defaultGenerationDelay),
		NotificationTTL:       parseDuration("PAPERPROBE_NOTIFY_TTL", defaultNotificationTTL),
		PerNotificationExpiry: parseBool("PAPERPROBE_NOTIFY_PER_ITEM", false),
		QueueSize:             parseInt("PAPERPROBE_QUEUE_SIZE", defaultQueueSize),
		ExtractWorkers:        parseInt("PAPERPROBE_EXTRACT_WORKERS", defaultExtractWorkers),
		PrefersDark:           parseBool("PAPERPROBE_PREFERS_DARK", false),
		LogMode:               readEnv("PAPERPROBE_LOG_MODE", defaultLogMode),
		LogLevel:              readEnv("PAPERPROBE_LOG_LEVEL", defaultLogLevel),
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.ExtractWorkers <= 0 {
		cfg.ExtractWorkers = defaultExtractWorkers
	}
	if cfg.StageDelay < 0 {
		cfg.StageDelay = defaultStageDelay
	}
	if cfg.GenerationDelay < 0 {
		cfg.GenerationDelay = defaultGenerationDelay
	}
	if cfg.NotificationTTL <= 0 {
		cfg.NotificationTTL = defaultNotificationTTL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks combinations that defaults cannot repair.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreFile:
		if c.StatePath == "" {
			return fmt.Errorf("config: PAPERPROBE_STATE_PATH is required for the file store")
		}
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: PAPERPROBE_DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("config: unknown store backend %q", c.StoreBackend)
	}
	return nil
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "paperprobe", "state.json")
	}
	return filepath.Join(home, ".paperprobe", "state.json")
}

func readEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func parseInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func parseBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func parseDuration(key string, def time.Duration) time.Duration {
	// time.ParseDuration understands inputs like "500ms" or "2s".
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
