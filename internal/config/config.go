package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/pictty/internal/geometry"
	"github.com/llehouerou/pictty/internal/imagefile"
	"github.com/llehouerou/pictty/internal/transfer"
)

type Config struct {
	Upscale bool `koanf:"upscale"` // allow enlarging past native size

	// Cell pixel size; 0 means detect or use 8x16
	CellWidth      int   `koanf:"cell_width"`
	CellHeight     int   `koanf:"cell_height"`
	DetectCellSize *bool `koanf:"detect_cell_size"` // query the terminal (default: true)

	TempDir    string `koanf:"temp_dir"`    // empty means os.TempDir()
	TempPrefix string `koanf:"temp_prefix"` // must contain "tty-graphics-protocol" for auto-delete

	// Downscale decoded images larger than this before transfer (0 = off)
	MaxWidth  int `koanf:"max_width"`
	MaxHeight int `koanf:"max_height"`

	LogLevel string `koanf:"log_level"` // "debug", "info", "warn", "error"
}

// Load reads the default config files. An explicit path, when non-empty,
// is read last and must exist.
func Load(explicit string) (*Config, error) {
	paths := getConfigPaths()
	if explicit != "" {
		explicit = expandPath(explicit)
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		paths = append(paths, explicit)
	}
	return LoadFrom(paths...)
}

// LoadFrom reads the given TOML files in order (last wins), skipping files
// that do not exist.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		LogLevel: "warn",
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.TempDir != "" {
		cfg.TempDir = expandPath(cfg.TempDir)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/pictty/config.toml
	if xdg.ConfigHome != "" {
		paths = append(paths, filepath.Join(xdg.ConfigHome, "pictty", "config.toml"))
	}

	// 2. ./pictty.toml (pwd, highest priority)
	paths = append(paths, "pictty.toml")

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

// ShouldDetectCellSize returns whether to query the terminal for its cell size.
func (c *Config) ShouldDetectCellSize() bool {
	return c.DetectCellSize == nil || *c.DetectCellSize
}

// CellSize returns the configured cell size, calling detect when none is
// configured and detection is enabled.
func (c *Config) CellSize(detect func() geometry.CellSize) geometry.CellSize {
	configured := geometry.CellSize{Width: c.CellWidth, Height: c.CellHeight}
	if configured.Valid() {
		return configured
	}
	if c.ShouldDetectCellSize() && detect != nil {
		return detect()
	}
	return geometry.DefaultCellSize
}

// GetTempPrefix returns the transfer file prefix with the default applied.
func (c *Config) GetTempPrefix() string {
	if c.TempPrefix == "" {
		return transfer.DefaultPrefix
	}
	return c.TempPrefix
}

// DecodeOptions returns the image decoding options.
func (c *Config) DecodeOptions() imagefile.Options {
	return imagefile.Options{
		MaxWidth:  max(c.MaxWidth, 0),
		MaxHeight: max(c.MaxHeight, 0),
	}
}
