package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Config holds the application configuration
type Config struct {
	Theme                string  `json:"theme,omitempty"`                 // UI theme name (e.g., "dark-purple", "nord")
	NotificationsEnabled bool    `json:"notifications_enabled,omitempty"` // Desktop notifications for long-running actions
	DatabaseDriver       string  `json:"database_driver,omitempty"`       // "sqlite" or "postgres"
	DatabaseDSN          string  `json:"database_dsn,omitempty"`          // Connection string; a file path for sqlite
	SnapshotDir          string  `json:"snapshot_dir,omitempty"`          // Rendered-snapshot cache location
	ExportDir            string  `json:"export_dir,omitempty"`            // Where conversation exports are written
	Profile              Profile `json:"profile"`                         // Shown in the header
	WelcomeShown         bool    `json:"welcome_shown,omitempty"`         // Whether welcome modal has been shown
	LastSeenVersion      string  `json:"last_seen_version,omitempty"`     // Last version user has seen changelog for

	mu       sync.RWMutex
	filePath string
}

// Dir returns the path to the application data directory
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".recall"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, "config.json")

	cfg := &Config{filePath: path}
	cfg.applyDefaults(dir)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Refill anything the file explicitly blanked out. This must happen
	// before Validate() since Validate() only reads.
	cfg.applyDefaults(dir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills empty fields with their defaults under dir.
//
// Thread-safety: This method is NOT thread-safe and must only be called
// during single-threaded initialization (i.e., from Load() before the Config
// is shared across goroutines).
func (c *Config) applyDefaults(dir string) {
	if c.DatabaseDriver == "" {
		c.DatabaseDriver = "sqlite"
	}
	if c.DatabaseDSN == "" && c.DatabaseDriver == "sqlite" {
		c.DatabaseDSN = filepath.Join(dir, "history.db")
	}
	if c.SnapshotDir == "" {
		c.SnapshotDir = filepath.Join(dir, "snapshots")
	}
	if c.ExportDir == "" {
		c.ExportDir = filepath.Join(dir, "exports")
	}
}

// Validate checks that the config is internally consistent.
// This is a read-only operation - call applyDefaults() first if needed.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown database driver: %s", c.DatabaseDriver)
	}

	if c.DatabaseDSN == "" {
		return fmt.Errorf("database driver %s requires a DSN", c.DatabaseDriver)
	}

	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.filePath, data, 0644)
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetDatabaseDriver returns the configured database driver
func (c *Config) GetDatabaseDriver() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DatabaseDriver
}

// GetDatabaseDSN returns the configured database connection string
func (c *Config) GetDatabaseDSN() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DatabaseDSN
}

// SetDatabase sets the database driver and connection string together
func (c *Config) SetDatabase(driver, dsn string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DatabaseDriver = driver
	c.DatabaseDSN = dsn
}

// GetSnapshotDir returns the snapshot cache directory
func (c *Config) GetSnapshotDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SnapshotDir
}

// GetExportDir returns the directory exports are written to
func (c *Config) GetExportDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ExportDir
}

// SetExportDir sets the directory exports are written to
func (c *Config) SetExportDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ExportDir = dir
}

// GetProfile returns a copy of the user profile
func (c *Config) GetProfile() Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Profile
}

// SetProfile replaces the user profile
func (c *Config) SetProfile(p Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Profile = p
}

// HasSeenWelcome returns whether the welcome modal has been shown
func (c *Config) HasSeenWelcome() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WelcomeShown
}

// MarkWelcomeShown marks the welcome modal as shown
func (c *Config) MarkWelcomeShown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.WelcomeShown = true
}

// GetLastSeenVersion returns the last version the user has seen
func (c *Config) GetLastSeenVersion() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LastSeenVersion
}

// SetLastSeenVersion sets the last version the user has seen
func (c *Config) SetLastSeenVersion(version string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastSeenVersion = version
}
