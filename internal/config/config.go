// Package config loads the bot configuration: the transport core plus the
// table backend and reply contacts.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	coreconfig "github.com/m3rciful/photobot/core/config"
	coredatabase "github.com/m3rciful/photobot/core/database"
)

// Store backends.
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// DefaultSpreadsheetName is used when neither an id nor a name is configured.
const DefaultSpreadsheetName = "Электронная версия фото"

// SheetsConfig locates the Google spreadsheet.
type SheetsConfig struct {
	CredentialsJSON string `yaml:"-" envconfig:"GOOGLE_CREDENTIALS"`
	CredentialsFile string `yaml:"credentials_file" envconfig:"GOOGLE_CREDENTIALS_FILE"`
	SpreadsheetID   string `yaml:"spreadsheet_id" envconfig:"SHEET_ID"`
	SpreadsheetName string `yaml:"spreadsheet_name" envconfig:"SHEET_NAME"`
	Worksheet       string `yaml:"worksheet" envconfig:"SHEET_WORKSHEET"`
	EnsureHeader    bool   `yaml:"ensure_header" envconfig:"SHEET_ENSURE_HEADER"`
	// RequestTimeoutSeconds bounds each API call; 0 disables the bound.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" envconfig:"SHEET_REQUEST_TIMEOUT_SECONDS"`
}

// RequestTimeout returns the per-call bound.
func (s SheetsConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// StoreConfig picks the records backend.
type StoreConfig struct {
	Backend string `yaml:"backend" envconfig:"STORE_BACKEND"`
}

// SupportConfig carries the contacts quoted in replies.
type SupportConfig struct {
	Phone string `yaml:"phone" envconfig:"SUPPORT_PHONE"`
	Link  string `yaml:"link" envconfig:"SUPPORT_LINK"`
}

// Config is the full bot configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Store    StoreConfig         `yaml:"store"`
	Sheets   SheetsConfig        `yaml:"sheets"`
	Database coredatabase.Config `yaml:"database"`
	Support  SupportConfig       `yaml:"support"`
}

// CoreConfig exposes the transport part to the shared runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Config
}

// Load reads path (optional when missing), overlays the environment and
// validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.ReadYAML(path, true, &cfg); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}
	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates the transport core and the selected backend.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return err
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	if backend == "" {
		backend = BackendSheets
	}
	cfg.Store.Backend = backend

	switch backend {
	case BackendSheets:
		s := &cfg.Sheets
		if strings.TrimSpace(s.CredentialsJSON) == "" && strings.TrimSpace(s.CredentialsFile) == "" {
			return fmt.Errorf("sheets credentials are required (GOOGLE_CREDENTIALS or GOOGLE_CREDENTIALS_FILE)")
		}
		if strings.TrimSpace(s.SpreadsheetID) == "" && strings.TrimSpace(s.SpreadsheetName) == "" {
			s.SpreadsheetName = DefaultSpreadsheetName
		}
		if s.RequestTimeoutSeconds < 0 {
			return fmt.Errorf("sheets.request_timeout_seconds must be >= 0")
		}
	case BackendPostgres:
		if err := cfg.Database.Normalize(); err != nil {
			return err
		}
	case BackendMemory:
	default:
		return fmt.Errorf("invalid store.backend %q; allowed: sheets, postgres, memory", cfg.Store.Backend)
	}
	return nil
}
