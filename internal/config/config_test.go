package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "sqlite",
			config:  &Config{DatabaseDriver: "sqlite", DatabaseDSN: "/tmp/history.db"},
			wantErr: false,
		},
		{
			name:    "postgres",
			config:  &Config{DatabaseDriver: "postgres", DatabaseDSN: "postgres://localhost/recall"},
			wantErr: false,
		},
		{
			name:    "unknown driver",
			config:  &Config{DatabaseDriver: "mongodb", DatabaseDSN: "mongodb://localhost"},
			wantErr: true,
		},
		{
			name:    "empty driver",
			config:  &Config{DatabaseDSN: "/tmp/history.db"},
			wantErr: true,
		},
		{
			name:    "missing dsn",
			config:  &Config{DatabaseDriver: "postgres"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults("/home/test/.recall")

	if cfg.DatabaseDriver != "sqlite" {
		t.Errorf("DatabaseDriver = %q, want sqlite", cfg.DatabaseDriver)
	}
	if cfg.DatabaseDSN != "/home/test/.recall/history.db" {
		t.Errorf("DatabaseDSN = %q", cfg.DatabaseDSN)
	}
	if cfg.SnapshotDir != "/home/test/.recall/snapshots" {
		t.Errorf("SnapshotDir = %q", cfg.SnapshotDir)
	}
	if cfg.ExportDir != "/home/test/.recall/exports" {
		t.Errorf("ExportDir = %q", cfg.ExportDir)
	}
}

func TestConfig_ApplyDefaultsKeepsPostgresDSNEmpty(t *testing.T) {
	cfg := &Config{DatabaseDriver: "postgres"}
	cfg.applyDefaults("/home/test/.recall")

	// A file path is never a sensible postgres DSN; Validate catches it.
	if cfg.DatabaseDSN != "" {
		t.Errorf("DatabaseDSN = %q, want empty", cfg.DatabaseDSN)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for postgres without a DSN")
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "recall-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.json")

	cfg := &Config{
		Theme:                "nord",
		NotificationsEnabled: true,
		DatabaseDriver:       "sqlite",
		DatabaseDSN:          filepath.Join(tmpDir, "history.db"),
		Profile:              Profile{Name: "Ada Lovelace", Email: "ada@example.com"},
		filePath:             configPath,
	}

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Verify file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	// Read and verify JSON structure
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Failed to unmarshal config: %v", err)
	}

	if loaded.Theme != "nord" {
		t.Errorf("Theme = %q, want 'nord'", loaded.Theme)
	}
	if !loaded.NotificationsEnabled {
		t.Error("NotificationsEnabled should persist")
	}
	if loaded.Profile.Name != "Ada Lovelace" {
		t.Errorf("Profile.Name = %q, want 'Ada Lovelace'", loaded.Profile.Name)
	}
}

func TestLoad_NewConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "recall-load-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Save original HOME and set temp dir
	origHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", origHome)

	// Load should create a new config when none exists
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	// Verify defaults are set
	if cfg.GetDatabaseDriver() != "sqlite" {
		t.Errorf("DatabaseDriver = %q, want sqlite", cfg.GetDatabaseDriver())
	}
	if !strings.HasSuffix(cfg.GetDatabaseDSN(), filepath.Join(".recall", "history.db")) {
		t.Errorf("DatabaseDSN = %q, want ~/.recall/history.db", cfg.GetDatabaseDSN())
	}
	if !strings.HasSuffix(cfg.GetSnapshotDir(), filepath.Join(".recall", "snapshots")) {
		t.Errorf("SnapshotDir = %q, want ~/.recall/snapshots", cfg.GetSnapshotDir())
	}
}

func TestLoad_ExistingConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "recall-load-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	origHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", origHome)

	recallDir := filepath.Join(tmpDir, ".recall")
	if err := os.MkdirAll(recallDir, 0755); err != nil {
		t.Fatalf("Failed to create recall dir: %v", err)
	}

	configData := `{
		"theme": "tokyo-night",
		"database_driver": "postgres",
		"database_dsn": "postgres://localhost/recall?sslmode=disable",
		"profile": {"name": "Grace Hopper"}
	}`

	configFile := filepath.Join(recallDir, "config.json")
	if err := os.WriteFile(configFile, []byte(configData), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.GetTheme() != "tokyo-night" {
		t.Errorf("Theme = %q, want 'tokyo-night'", cfg.GetTheme())
	}
	if cfg.GetDatabaseDriver() != "postgres" {
		t.Errorf("DatabaseDriver = %q, want postgres", cfg.GetDatabaseDriver())
	}
	if cfg.GetProfile().Name != "Grace Hopper" {
		t.Errorf("Profile.Name = %q, want 'Grace Hopper'", cfg.GetProfile().Name)
	}

	// Unspecified fields still get their defaults
	if cfg.GetSnapshotDir() == "" {
		t.Error("SnapshotDir should default even when the file omits it")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "recall-load-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	origHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", origHome)

	recallDir := filepath.Join(tmpDir, ".recall")
	if err := os.MkdirAll(recallDir, 0755); err != nil {
		t.Fatalf("Failed to create recall dir: %v", err)
	}

	configFile := filepath.Join(recallDir, "config.json")
	if err := os.WriteFile(configFile, []byte("invalid json"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() should fail with invalid JSON")
	}
}

func TestLoad_InvalidDriver(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "recall-load-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	origHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", origHome)

	recallDir := filepath.Join(tmpDir, ".recall")
	if err := os.MkdirAll(recallDir, 0755); err != nil {
		t.Fatalf("Failed to create recall dir: %v", err)
	}

	configFile := filepath.Join(recallDir, "config.json")
	if err := os.WriteFile(configFile, []byte(`{"database_driver": "oracle"}`), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() should fail validation for an unknown driver")
	}
}

func TestConfig_ConcurrentAccess(t *testing.T) {
	cfg := &Config{DatabaseDriver: "sqlite", DatabaseDSN: "/tmp/history.db"}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cfg.SetTheme("nord")
				_ = cfg.GetTheme()
				cfg.SetNotificationsEnabled(true)
				_ = cfg.GetNotificationsEnabled()
			}
		}()
	}
	wg.Wait()

	if cfg.GetTheme() != "nord" {
		t.Errorf("Theme = %q, want 'nord'", cfg.GetTheme())
	}
}

func TestProfile_DisplayName(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{name: "name set", profile: Profile{Name: "Ada Lovelace"}, want: "Ada Lovelace"},
		{name: "email fallback", profile: Profile{Email: "ada@example.com"}, want: "ada"},
		{name: "empty", profile: Profile{}, want: "Anonymous"},
		{name: "bare at sign", profile: Profile{Email: "@example.com"}, want: "Anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProfile_Initials(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{name: "two words", profile: Profile{Name: "Ada Lovelace"}, want: "AL"},
		{name: "three words uses first and last", profile: Profile{Name: "Grace Brewster Hopper"}, want: "GH"},
		{name: "single word", profile: Profile{Name: "ada"}, want: "A"},
		{name: "empty falls back to anonymous", profile: Profile{}, want: "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.Initials(); got != tt.want {
				t.Errorf("Initials() = %q, want %q", got, tt.want)
			}
		})
	}
}
