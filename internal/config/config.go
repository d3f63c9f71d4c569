package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Archive backend selectors.
const (
	ArchiveBackendLedger = "ledger"
	ArchiveBackendDrive  = "drive"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Ledger  LedgerConfig
	Archive ArchiveConfig
	Refresh RefreshConfig
	MongoDB MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
	// PublicBaseURL is prepended to viewer paths handed back to API
	// callers, e.g. "https://slips.example.com".
	PublicBaseURL string
}

// LedgerConfig points at the remote ledger endpoint that owns the
// authoritative slip rows and accepts file uploads.
type LedgerConfig struct {
	Endpoint string
	// FolderID is the destination folder passed along with uploads when
	// the ledger backend archives the artifact.
	FolderID string
}

// ArchiveConfig selects and configures the artifact archive gateway.
type ArchiveConfig struct {
	Backend string
	// Drive settings, used only when Backend == ArchiveBackendDrive.
	DriveCredentialsPath string
	DriveFolderID        string
}

// RefreshConfig holds the background slip-list refresh schedule.
type RefreshConfig struct {
	CronSchedule string
}

// MongoDBConfig holds settings for the optional artifact audit store.
// When URI is empty the audit store is disabled.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes
		// from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:          getenvWithDefault("APP_PORT", "8080"),
			PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
		},
		Ledger: LedgerConfig{
			Endpoint: os.Getenv("LEDGER_ENDPOINT"),
			FolderID: os.Getenv("LEDGER_FOLDER_ID"),
		},
		Archive: ArchiveConfig{
			Backend:              getenvWithDefault("ARCHIVE_BACKEND", ArchiveBackendLedger),
			DriveCredentialsPath: os.Getenv("GOOGLE_DRIVE_CREDENTIALS_PATH"),
			DriveFolderID:        os.Getenv("GOOGLE_DRIVE_FOLDER_ID"),
		},
		Refresh: RefreshConfig{
			CronSchedule: getenvWithDefault("REFRESH_CRON_SCHEDULE", "*/15 * * * *"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "slipdesk"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Ledger.Endpoint == "" {
		return errors.New("LEDGER_ENDPOINT must be provided")
	}

	switch c.Archive.Backend {
	case ArchiveBackendLedger:
		// Uploads ride the ledger endpoint; FolderID may legitimately be
		// empty when the remote script has a default destination folder.
	case ArchiveBackendDrive:
		if c.Archive.DriveCredentialsPath == "" {
			return errors.New("GOOGLE_DRIVE_CREDENTIALS_PATH must be provided when ARCHIVE_BACKEND=drive")
		}
		if c.Archive.DriveFolderID == "" {
			return errors.New("GOOGLE_DRIVE_FOLDER_ID must be provided when ARCHIVE_BACKEND=drive")
		}
	default:
		return fmt.Errorf("unsupported ARCHIVE_BACKEND %q", c.Archive.Backend)
	}

	if c.Refresh.CronSchedule == "" {
		return errors.New("REFRESH_CRON_SCHEDULE must not be empty")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
