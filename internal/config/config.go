// Package config loads resonanz.yaml. Every key is optional; a missing file
// means defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/resonanz/internal/facets"
	"github.com/HendryAvila/resonanz/internal/page"
	"github.com/HendryAvila/resonanz/internal/simulator"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "resonanz.yaml"

// Config mirrors resonanz.yaml.
type Config struct {
	Version   int             `yaml:"version"`
	Log       LogConfig       `yaml:"log"`
	Simulator SimulatorConfig `yaml:"simulator"`
	Panels    PanelsConfig    `yaml:"panels"`
	Page      PageConfig      `yaml:"page"`
	Journal   JournalConfig   `yaml:"journal"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

type SimulatorConfig struct {
	Seed         uint64        `yaml:"seed"`
	AnalyzeDelay time.Duration `yaml:"analyze_delay"`
	ChatDelay    time.Duration `yaml:"chat_delay"`
}

type PanelsConfig struct {
	Lexikon          time.Duration `yaml:"lexikon"`
	Zielgruppen      time.Duration `yaml:"zielgruppen"`
	Resonanz         time.Duration `yaml:"resonanz"`
	Syntax           time.Duration `yaml:"syntax"`
	SyntaxRegenerate time.Duration `yaml:"syntax_regenerate"`
	Meta             time.Duration `yaml:"meta"`
	MetaSecurity     time.Duration `yaml:"meta_security"`
}

type PageConfig struct {
	RevealDelay time.Duration `yaml:"reveal_delay"`
}

type JournalConfig struct {
	// DSN selects the backend: sqlite://path or postgres://... Empty
	// disables the journal.
	DSN string `yaml:"dsn"`
}

// Default returns the production configuration.
func Default() *Config {
	d := facets.DefaultDelays()
	return &Config{
		Version: 1,
		Log:     LogConfig{Level: "info", Format: "json"},
		Simulator: SimulatorConfig{
			AnalyzeDelay: simulator.DefaultAnalyzeDelay,
			ChatDelay:    page.DefaultChatDelay,
		},
		Panels: PanelsConfig{
			Lexikon:          d.Lexikon,
			Zielgruppen:      d.Zielgruppen,
			Resonanz:         d.Resonanz,
			Syntax:           d.Syntax,
			SyntaxRegenerate: d.SyntaxRegenerate,
			Meta:             d.Meta,
			MetaSecurity:     d.MetaSecurity,
		},
		Page: PageConfig{RevealDelay: page.DefaultRevealDelay},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"json": true, "console": true}
)

func validate(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if !validLevels[cfg.Log.Level] {
		return fmt.Errorf("invalid log level %q: must be one of: debug, info, warn, error", cfg.Log.Level)
	}
	if !validFormats[cfg.Log.Format] {
		return fmt.Errorf("invalid log format %q: must be json or console", cfg.Log.Format)
	}

	delays := map[string]time.Duration{
		"simulator.analyze_delay":  cfg.Simulator.AnalyzeDelay,
		"simulator.chat_delay":     cfg.Simulator.ChatDelay,
		"panels.lexikon":           cfg.Panels.Lexikon,
		"panels.zielgruppen":       cfg.Panels.Zielgruppen,
		"panels.resonanz":          cfg.Panels.Resonanz,
		"panels.syntax":            cfg.Panels.Syntax,
		"panels.syntax_regenerate": cfg.Panels.SyntaxRegenerate,
		"panels.meta":              cfg.Panels.Meta,
		"panels.meta_security":     cfg.Panels.MetaSecurity,
		"page.reveal_delay":        cfg.Page.RevealDelay,
	}
	for key, d := range delays {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", key)
		}
	}

	dsn := strings.TrimSpace(cfg.Journal.DSN)
	if dsn != "" && !strings.HasPrefix(dsn, "sqlite://") &&
		!strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return fmt.Errorf("journal dsn must start with sqlite://, postgres:// or postgresql://")
	}
	return nil
}

// PageConfig converts the file settings into page wiring settings. The
// journal is opened by the caller.
func (c *Config) PageConfig() page.Config {
	return page.Config{
		Simulator: simulator.Config{AnalyzeDelay: c.Simulator.AnalyzeDelay},
		Panels: facets.Delays{
			Lexikon:          c.Panels.Lexikon,
			Zielgruppen:      c.Panels.Zielgruppen,
			Resonanz:         c.Panels.Resonanz,
			Syntax:           c.Panels.Syntax,
			SyntaxRegenerate: c.Panels.SyntaxRegenerate,
			Meta:             c.Panels.Meta,
			MetaSecurity:     c.Panels.MetaSecurity,
		},
		RevealDelay: c.Page.RevealDelay,
		ChatDelay:   c.Simulator.ChatDelay,
		Seed:        c.Simulator.Seed,
	}
}
