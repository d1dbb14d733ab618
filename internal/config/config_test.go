package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	tempDir := t.TempDir()

	cfg, err := LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("expected version 1, got %d", cfg.Version)
	}
	if cfg.Selection.ScoreThreshold != 0.3 {
		t.Errorf("expected default threshold 0.3, got %v", cfg.Selection.ScoreThreshold)
	}
	if cfg.Artifacts.Language != "en" {
		t.Errorf("expected default language en, got %s", cfg.Artifacts.Language)
	}
}

func TestSaveAndReload(t *testing.T) {
	tempDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Artifacts.QuizQuestions = 4
	cfg.Artifacts.Language = "ja"
	if err := cfg.Save(tempDir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tempDir, ConfigDirName, "config.json")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Artifacts.QuizQuestions != 4 {
		t.Errorf("expected 4 quiz questions, got %d", loaded.Artifacts.QuizQuestions)
	}
	if loaded.Artifacts.Language != "ja" {
		t.Errorf("expected language ja, got %s", loaded.Artifacts.Language)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"bad version", func(c *Config) { c.Version = 2 }, true},
		{"max below min files", func(c *Config) { c.Selection.MaxFiles = 1 }, true},
		{"zero trace depth", func(c *Config) { c.Analysis.MaxTraceDepth = 0 }, true},
		{"zero pool", func(c *Config) { c.Artifacts.PoolSize = 0 }, true},
		{"unknown language", func(c *Config) { c.Artifacts.Language = "tlh" }, true},
		{"spanish is supported", func(c *Config) { c.Artifacts.Language = "es" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}
