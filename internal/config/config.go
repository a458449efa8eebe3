// Package config loads docxedit configuration from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default file names, created in the system temp directory.
const (
	StateFileName = "docx_mcp_current_doc.txt"
	LogFileName   = "docx_mcp_server.log"
)

// Config holds all docxedit configuration.
type Config struct {
	// StateFile remembers the last open document between runs
	StateFile string `yaml:"state_file" validate:"required"`

	// RestoreLastDocument reopens the recorded document on start instead of
	// starting clean.
	RestoreLastDocument bool `yaml:"restore_last_document"`

	// CopySuffix is appended to the base name by create_document_copy
	CopySuffix string `yaml:"copy_suffix" validate:"required"`

	// KeywordRadius is the default paragraph window for edit_section_by_keyword
	KeywordRadius int `yaml:"keyword_radius" validate:"gte=0,lte=1000"`

	// HeadingBoundary selects how replace_section finds the end of a section
	HeadingBoundary string `yaml:"heading_boundary" validate:"oneof=lexical level"`

	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`

	// File receives a copy of the log; empty disables it
	File string `yaml:"file"`

	// Encoding is "json" or "console"
	Encoding string `yaml:"encoding" validate:"oneof=json console"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address; empty disables the endpoint
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

var validate = validator.New()

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	tmp := os.TempDir()
	return &Config{
		StateFile:       filepath.Join(tmp, StateFileName),
		CopySuffix:      "-副本",
		KeywordRadius:   3,
		HeadingBoundary: "lexical",
		Logging: LoggingConfig{
			Level:    "info",
			File:     filepath.Join(tmp, LogFileName),
			Encoding: "json",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("DOCXEDIT_STATE_FILE"); path != "" {
		c.StateFile = path
	}
	if level := os.Getenv("DOCXEDIT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if path := os.Getenv("DOCXEDIT_LOG_FILE"); path != "" {
		c.Logging.File = path
	}
}
