// Package config loads and persists the repotutor workspace configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete repotutor configuration
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Selection SelectionConfig `json:"selection" mapstructure:"selection"`
	Analysis  AnalysisConfig  `json:"analysis" mapstructure:"analysis"`
	Artifacts ArtifactsConfig `json:"artifacts" mapstructure:"artifacts"`
	TextGen   TextGenConfig   `json:"textGen" mapstructure:"textGen"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`
}

// SelectionConfig tunes the cascading file selector
type SelectionConfig struct {
	ScoreThreshold float64 `json:"scoreThreshold" mapstructure:"scoreThreshold"`
	MinFiles       int     `json:"minFiles" mapstructure:"minFiles"`
	MaxFiles       int     `json:"maxFiles" mapstructure:"maxFiles"`
}

// AnalysisConfig tunes the multi-file analyzer
type AnalysisConfig struct {
	MaxTraceDepth      int `json:"maxTraceDepth" mapstructure:"maxTraceDepth"`
	TraceFanout        int `json:"traceFanout" mapstructure:"traceFanout"`
	ConceptsPerFile    int `json:"conceptsPerFile" mapstructure:"conceptsPerFile"`
	MaxFileSizeBytes   int `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
	PatternMinFiles    int `json:"patternMinFiles" mapstructure:"patternMinFiles"`
	PatternMaxExamples int `json:"patternMaxExamples" mapstructure:"patternMaxExamples"`
}

// ArtifactsConfig tunes learning artifact generation
type ArtifactsConfig struct {
	PoolSize      int    `json:"poolSize" mapstructure:"poolSize"`
	MaxFlashcards int    `json:"maxFlashcards" mapstructure:"maxFlashcards"`
	QuizQuestions int    `json:"quizQuestions" mapstructure:"quizQuestions"`
	Language      string `json:"language" mapstructure:"language"`
}

// TextGenConfig configures the optional text generation collaborator
type TextGenConfig struct {
	Enabled   bool   `json:"enabled" mapstructure:"enabled"`
	Endpoint  string `json:"endpoint" mapstructure:"endpoint"`
	Model     string `json:"model" mapstructure:"model"`
	TimeoutMs int    `json:"timeoutMs" mapstructure:"timeoutMs"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// ConfigDirName is the workspace directory created under the repo root.
const ConfigDirName = ".repotutor"

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		Selection: SelectionConfig{
			ScoreThreshold: 0.3,
			MinFiles:       5,
			MaxFiles:       15,
		},
		Analysis: AnalysisConfig{
			MaxTraceDepth:      5,
			TraceFanout:        2,
			ConceptsPerFile:    3,
			MaxFileSizeBytes:   1 << 20,
			PatternMinFiles:    2,
			PatternMaxExamples: 3,
		},
		Artifacts: ArtifactsConfig{
			PoolSize:      12,
			MaxFlashcards: 20,
			QuizQuestions: 8,
			Language:      "en",
		},
		TextGen: TextGenConfig{
			Enabled:   false,
			Endpoint:  "http://localhost:11434",
			Model:     "llama3.1",
			TimeoutMs: 10000,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .repotutor/config.json under repoRoot.
// A missing config file yields the defaults, not an error.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("repoRoot", ".")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ConfigDirName))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to .repotutor/config.json
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ConfigDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Selection.MaxFiles < c.Selection.MinFiles {
		return &ConfigError{Field: "selection.maxFiles", Message: "maxFiles must be >= minFiles"}
	}
	if c.Analysis.MaxTraceDepth < 1 {
		return &ConfigError{Field: "analysis.maxTraceDepth", Message: "trace depth must be at least 1"}
	}
	if c.Artifacts.PoolSize < 1 {
		return &ConfigError{Field: "artifacts.poolSize", Message: "pool size must be at least 1"}
	}
	switch c.Artifacts.Language {
	case "en", "es", "ja":
	default:
		return &ConfigError{Field: "artifacts.language", Message: "unsupported output language"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
