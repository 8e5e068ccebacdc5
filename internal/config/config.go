package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database    DatabaseConfig
	JWT         JWTConfig
	App         AppConfig
	Storage     StorageConfig
	Import      ImportConfig
	Timekeeping TimekeepingConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
	// SeedRosterFile and SeedSalesFile are loaded into a memory-only session at startup.
	SeedRosterFile string
	SeedSalesFile  string
}

// StorageConfig selects where the session snapshot is loaded from and persisted to.
type StorageConfig struct {
	Type        string // "memory" or "postgres"
	ArchivePath string
}

// ImportConfig holds branch inference settings for spreadsheet imports.
type ImportConfig struct {
	// BranchHints maps a facility code found in a source filename to a branch tag.
	BranchHints   map[string]string
	DefaultBranch string
}

type TimekeepingConfig struct {
	WeeklyBaseHours      float64
	ClearConfirmationTTL time.Duration
	PersistQueueSize     int
	// FlushInterval is how often pending durable writes are awaited and their failures logged.
	FlushInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timekeeping"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		SeedRosterFile: getEnv("SEED_ROSTER_FILE", ""),
		SeedSalesFile:  getEnv("SEED_SALES_FILE", ""),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	config.Storage = StorageConfig{
		Type:        getEnv("STORAGE_TYPE", "postgres"),
		ArchivePath: getEnv("ARCHIVE_PATH", "./archive"),
	}

	hints, err := parseBranchHints(getEnv("IMPORT_BRANCH_HINTS", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid IMPORT_BRANCH_HINTS: %w", err)
	}
	config.Import = ImportConfig{
		BranchHints:   hints,
		DefaultBranch: getEnv("IMPORT_DEFAULT_BRANCH", "unassigned"),
	}

	weeklyBase, err := strconv.ParseFloat(getEnv("WEEKLY_BASE_HOURS", "45"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid WEEKLY_BASE_HOURS: %w", err)
	}
	clearTTL, err := time.ParseDuration(getEnv("CLEAR_CONFIRMATION_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLEAR_CONFIRMATION_TTL: %w", err)
	}
	queueSize, err := strconv.Atoi(getEnv("PERSIST_QUEUE_SIZE", "1024"))
	if err != nil {
		return nil, fmt.Errorf("invalid PERSIST_QUEUE_SIZE: %w", err)
	}
	flushInterval, err := time.ParseDuration(getEnv("PERSIST_FLUSH_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid PERSIST_FLUSH_INTERVAL: %w", err)
	}
	config.Timekeeping = TimekeepingConfig{
		WeeklyBaseHours:      weeklyBase,
		ClearConfirmationTTL: clearTTL,
		PersistQueueSize:     queueSize,
		FlushInterval:        flushInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "memory":
	case "postgres":
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE: %s", c.Storage.Type)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Timekeeping.WeeklyBaseHours <= 0 {
		return fmt.Errorf("WEEKLY_BASE_HOURS must be positive")
	}
	if c.Timekeeping.PersistQueueSize <= 0 {
		return fmt.Errorf("PERSIST_QUEUE_SIZE must be positive")
	}
	if c.Storage.Type == "postgres" && c.Timekeeping.FlushInterval <= 0 {
		return fmt.Errorf("PERSIST_FLUSH_INTERVAL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseBranchHints reads "CODE:branch,CODE2:branch2".
func parseBranchHints(raw string) (map[string]string, error) {
	hints := make(map[string]string)
	if strings.TrimSpace(raw) == "" {
		return hints, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		code, branch, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || strings.TrimSpace(code) == "" || strings.TrimSpace(branch) == "" {
			return nil, fmt.Errorf("malformed hint %q", pair)
		}
		hints[strings.ToUpper(strings.TrimSpace(code))] = strings.TrimSpace(branch)
	}
	return hints, nil
}
