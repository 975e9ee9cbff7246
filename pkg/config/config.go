// Package config loads the YAML configuration of the gable CLI.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvConfig     = "GABLE_CONFIG"
	EnvAssetDir   = "GABLE_ASSET_DIR"
	EnvLogLevel   = "GABLE_LOG_LEVEL"
	EnvExportCell = "GABLE_EXPORT_CELLS"
	EnvKernel     = "GABLE_EXPORT_KERNEL"
)

// Solid backends accepted by export.kernel.
const (
	KernelSdfx     = "sdfx"
	KernelManifold = "manifold"
)

// Config is the root of the configuration file.
type Config struct {
	Assets AssetsConfig `yaml:"assets"`
	Log    LogConfig    `yaml:"log"`
	Export ExportConfig `yaml:"export"`
}

type AssetsConfig struct {
	// Dir holds the *.shape scripts and an optional opposites.yaml.
	Dir string `yaml:"dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type ExportConfig struct {
	// Cells is the marching cubes resolution for collision hulls.
	Cells int `yaml:"cells"`
	// Kernel selects the solid backend, sdfx or manifold.
	Kernel string `yaml:"kernel"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Assets: AssetsConfig{Dir: "assets"},
		Log:    LogConfig{Level: "info"},
		Export: ExportConfig{Cells: 64, Kernel: KernelSdfx},
	}
}

// Load reads a YAML configuration file over the defaults and then applies
// environment overrides. If path == "", GABLE_CONFIG is tried; with
// neither, the defaults are used.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if _, err := cfg.SlogLevel(); err != nil {
		return nil, err
	}
	switch cfg.Export.Kernel {
	case KernelSdfx, KernelManifold:
	default:
		return nil, fmt.Errorf("config: unknown export kernel %q", cfg.Export.Kernel)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvAssetDir); v != "" {
		c.Assets.Dir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvExportCell); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("config: %s=%q is not a positive integer", EnvExportCell, v)
		}
		c.Export.Cells = n
	}
	if v := os.Getenv(EnvKernel); v != "" {
		c.Export.Kernel = v
	}
	return nil
}

// SlogLevel parses the log level (debug, info, warn or error).
func (c *Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("config: log level: %w", err)
	}
	return l, nil
}

// Logger returns a text logger writing to stderr at the configured level.
func (c *Config) Logger() *slog.Logger {
	level, err := c.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
