//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/llehouerou/pictty/internal/geometry"
	"github.com/llehouerou/pictty/internal/transfer"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/tmp",
			expected: filepath.Join(home, "tmp"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/var/tmp",
			expected: "/var/tmp",
		},
		{
			name:     "relative path unchanged",
			input:    "tmp/pictty",
			expected: "tmp/pictty",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	// Last path should be local pictty.toml
	lastPath := paths[len(paths)-1]
	if lastPath != "pictty.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "pictty.toml")
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Upscale {
		t.Error("upscale should default to false")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if !cfg.ShouldDetectCellSize() {
		t.Error("cell size detection should default to on")
	}
	if cfg.GetTempPrefix() != transfer.DefaultPrefix {
		t.Errorf("GetTempPrefix() = %q", cfg.GetTempPrefix())
	}
}

func TestLoadFrom_LastWins(t *testing.T) {
	first := writeConfig(t, "a.toml", "upscale = true\ncell_width = 10\ncell_height = 20\nlog_level = \"info\"\n")
	second := writeConfig(t, "b.toml", "cell_width = 12\ndetect_cell_size = false\nmax_width = 512\n")

	cfg, err := LoadFrom(first, second)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if !cfg.Upscale {
		t.Error("upscale should be kept from first file")
	}
	if cfg.CellWidth != 12 || cfg.CellHeight != 20 {
		t.Errorf("cell = %dx%d, want 12x20", cfg.CellWidth, cfg.CellHeight)
	}
	if cfg.ShouldDetectCellSize() {
		t.Error("detect_cell_size = false should disable detection")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if got := cfg.DecodeOptions(); got.MaxWidth != 512 || got.MaxHeight != 0 {
		t.Errorf("DecodeOptions() = %+v", got)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "bad.toml", "upscale = = true")
	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() should fail on invalid TOML")
	}
}

func TestLoad_ExplicitMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() should fail when the explicit config file is missing")
	}
}

func TestCellSize(t *testing.T) {
	detected := geometry.CellSize{Width: 9, Height: 18}
	detect := func() geometry.CellSize { return detected }
	off := false

	tests := []struct {
		name     string
		config   Config
		expected geometry.CellSize
	}{
		{
			name:     "configured wins",
			config:   Config{CellWidth: 10, CellHeight: 22},
			expected: geometry.CellSize{Width: 10, Height: 22},
		},
		{
			name:     "detected when unset",
			config:   Config{},
			expected: detected,
		},
		{
			name:     "half configured falls back to detection",
			config:   Config{CellWidth: 10},
			expected: detected,
		},
		{
			name:     "detection disabled",
			config:   Config{DetectCellSize: &off},
			expected: geometry.DefaultCellSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.CellSize(detect)
			if result != tt.expected {
				t.Errorf("CellSize() = %+v, want %+v", result, tt.expected)
			}
		})
	}
}
