// internal/config/config.go
//
// This package handles configuration and the .pile directory structure.
// Every directory you run `pile` from gets a .pile/ folder holding the
// config file and session logs. Todos themselves are never persisted —
// the list lives and dies with the process.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// PileDirName is the name of the directory we create per project.
	PileDirName = ".pile"

	configFileName = "config.yaml"
	defaultTail    = 8
)

const defaultConfigYAML = `# pile configuration
version: 1

# Filter applied at startup: all, completed or uncompleted.
filter: all

theme:
  accent: "#5B8DEF"
  muted: "#888888"
  danger: "#FF6B6B"
  done: "#6BCB77"

journal:
  # Lines shown in the in-app log panel.
  tail: 8
`

// ThemeConfig holds the lipgloss color values used by the TUI.
type ThemeConfig struct {
	Accent string `yaml:"accent"`
	Muted  string `yaml:"muted"`
	Danger string `yaml:"danger"`
	Done   string `yaml:"done"`
}

// JournalConfig captures log panel preferences.
type JournalConfig struct {
	Tail int `yaml:"tail"`
}

// FileConfig models .pile/config.yaml.
type FileConfig struct {
	Version int           `yaml:"version"`
	Filter  string        `yaml:"filter"`
	Theme   ThemeConfig   `yaml:"theme"`
	Journal JournalConfig `yaml:"journal"`
}

// Config holds the runtime configuration for pile.
type Config struct {
	// ProjectDir is the directory `pile` was started from.
	ProjectDir string

	// PileDir is ProjectDir/.pile.
	PileDir string

	File FileConfig
}

// InitPileDir creates the .pile directory structure in the given project
// directory. Called once at startup.
//
// Structure created:
// .pile/
// ├── config.yaml   <- Startup filter, theme, log panel preferences
// └── logs/         <- Session journal
func InitPileDir(projectDir string) error {
	pileDir := filepath.Join(projectDir, PileDirName)
	if err := os.MkdirAll(filepath.Join(pileDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: create %s: %w", pileDir, err)
	}
	configPath := filepath.Join(pileDir, configFileName)
	if _, err := os.Stat(configPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: stat %s: %w", configPath, err)
		}
		if err := os.WriteFile(configPath, []byte(defaultConfigYAML), 0o644); err != nil {
			return fmt.Errorf("config: write default config: %w", err)
		}
	}
	return nil
}

// New loads the configuration for projectDir, creating the .pile structure
// and the default config file if they do not exist yet.
func New(projectDir string) (*Config, error) {
	if err := InitPileDir(projectDir); err != nil {
		return nil, err
	}
	cfg := &Config{
		ProjectDir: projectDir,
		PileDir:    filepath.Join(projectDir, PileDirName),
	}
	raw, err := os.ReadFile(cfg.configPath())
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", cfg.configPath(), err)
	}
	if err := yaml.Unmarshal(raw, &cfg.File); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", cfg.configPath(), err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) configPath() string {
	return filepath.Join(c.PileDir, configFileName)
}

func (c *Config) applyDefaults() {
	if c.File.Version == 0 {
		c.File.Version = 1
	}
	if strings.TrimSpace(c.File.Filter) == "" {
		c.File.Filter = "all"
	}
	if c.File.Journal.Tail <= 0 {
		c.File.Journal.Tail = defaultTail
	}
	if c.File.Theme.Accent == "" {
		c.File.Theme.Accent = "#5B8DEF"
	}
	if c.File.Theme.Muted == "" {
		c.File.Theme.Muted = "#888888"
	}
	if c.File.Theme.Danger == "" {
		c.File.Theme.Danger = "#FF6B6B"
	}
	if c.File.Theme.Done == "" {
		c.File.Theme.Done = "#6BCB77"
	}
}

// StartupFilter returns the configured startup filter string. Unrecognized
// values are returned untouched; the state layer treats them the same way
// a live filter change would.
func (c *Config) StartupFilter() string {
	return strings.TrimSpace(c.File.Filter)
}

// SetStartupFilter persists the filter to use on the next start.
func (c *Config) SetStartupFilter(filter string) error {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return fmt.Errorf("config: filter is required")
	}
	c.File.Filter = filter
	return c.save()
}

// JournalTail returns how many journal lines the log panel shows.
func (c *Config) JournalTail() int {
	return c.File.Journal.Tail
}

func (c *Config) save() error {
	raw, err := yaml.Marshal(&c.File)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(c.configPath(), raw, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", c.configPath(), err)
	}
	return nil
}
