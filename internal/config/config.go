package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileNames are the config file names looked up by Load, in order.
var FileNames = []string{"deckmerge.yml", "deckmerge.yaml"}

// ProjectConfig holds settings loaded from deckmerge.yml.
type ProjectConfig struct {
	OutputDir      string `yaml:"outputDir,omitempty"`
	DefaultTitle   string `yaml:"defaultTitle,omitempty"`
	TitleSlideLine string `yaml:"titleSlideLine,omitempty"`
	LogLevel       string `yaml:"logLevel,omitempty"`
	LogFormat      string `yaml:"logFormat,omitempty"` // text or json
	HTTPAddr       string `yaml:"httpAddr,omitempty"`
	Workers        int    `yaml:"workers,omitempty"`
	MaxFileSize    int64  `yaml:"maxFileSize,omitempty"`
}

// Defaults fills zero fields. OutputDir stays empty and resolves to the
// process temp directory where outputs are written.
func (c *ProjectConfig) Defaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.MaxFileSize == 0 {
		c.MaxFileSize = 100 << 20
	}
}

// Level parses LogLevel, defaulting to info.
func (c *ProjectConfig) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Load attempts to read deckmerge.yml or deckmerge.yaml from the given
// directory. Returns a defaulted config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadFile(path)
	}
	cfg := &ProjectConfig{}
	cfg.Defaults()
	return cfg, nil
}

// LoadFile reads a config file that must exist.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Defaults()
	return &cfg, nil
}
