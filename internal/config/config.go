package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	LibraryRoot string `koanf:"library_root"` // music volume to scan
	WantedList  string `koanf:"wanted_list"`  // wanted-track list file
	PlaylistDir string `koanf:"playlist_dir"` // where playlist artifacts are written
	StateDB     string `koanf:"state_db"`     // match-state database (default: xdg data dir)

	Match  MatchConfig  `koanf:"match"`
	Scan   ScanConfig   `koanf:"scan"`
	Notify NotifyConfig `koanf:"notify"`
}

// MatchConfig holds fuzzy-matching settings.
type MatchConfig struct {
	Threshold float64 `koanf:"threshold"` // minimum combined score (0.0-1.0, default: 0.85)
	Epsilon   float64 `koanf:"epsilon"`   // ambiguity window (default: 0.02)
}

// ScanConfig holds trigger and scanning settings.
type ScanConfig struct {
	Debounce time.Duration `koanf:"debounce"` // quiet window after fs events (default: 2s)
	Interval time.Duration `koanf:"interval"` // periodic safety-net rescan (default: 1h)
	Workers  int           `koanf:"workers"`  // parallel tag readers (default: 8)
}

// NotifyConfig holds the optional track-found notification endpoint.
type NotifyConfig struct {
	URL string `koanf:"url"` // empty disables notifications
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.LibraryRoot = expandPath(cfg.LibraryRoot)
	cfg.WantedList = expandPath(cfg.WantedList)
	cfg.PlaylistDir = expandPath(cfg.PlaylistDir)
	cfg.StateDB = expandPath(cfg.StateDB)

	// Playlists land next to the wanted list unless configured.
	if cfg.PlaylistDir == "" && cfg.WantedList != "" {
		cfg.PlaylistDir = filepath.Dir(cfg.WantedList)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/wantlist/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "wantlist", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetMatchConfig returns the match configuration with defaults applied.
func (c *Config) GetMatchConfig() MatchConfig {
	cfg := c.Match

	if cfg.Threshold <= 0 || cfg.Threshold > 1 {
		cfg.Threshold = 0.85
	}
	if cfg.Epsilon <= 0 || cfg.Epsilon > 0.2 {
		cfg.Epsilon = 0.02
	}

	return cfg
}

// GetScanConfig returns the scan configuration with defaults applied.
func (c *Config) GetScanConfig() ScanConfig {
	cfg := c.Scan

	if cfg.Debounce <= 0 {
		cfg.Debounce = 2 * time.Second
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Workers <= 0 || cfg.Workers > 64 {
		cfg.Workers = 8
	}

	return cfg
}

// Validate checks the settings that must be right at startup. These
// are the only fatal errors in the daemon; everything past init is
// retried on the next trigger instead.
func (c *Config) Validate() error {
	if c.LibraryRoot == "" {
		return fmt.Errorf("library_root is required")
	}
	if info, err := os.Stat(c.LibraryRoot); err != nil {
		return fmt.Errorf("library_root: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("library_root %s: not a directory", c.LibraryRoot)
	}

	if c.WantedList == "" {
		return fmt.Errorf("wanted_list is required")
	}
	if _, err := os.Stat(c.WantedList); err != nil {
		return fmt.Errorf("wanted_list: %w", err)
	}

	if t := c.Match.Threshold; t != 0 && (t <= 0 || t > 1) {
		return fmt.Errorf("match.threshold %v: must be in (0, 1]", t)
	}

	return nil
}
