package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	appName        = "framedock"
	configFileName = "config.yaml"
	layoutsFile    = "layouts.yaml"
)

type Config struct {
	Theme        string       `yaml:"theme"`
	LogLevel     string       `yaml:"log_level"`
	LayoutsPath  string       `yaml:"layouts_path"`
	KeyboardStep float64      `yaml:"keyboard_step"`
	Web          WebConfig    `yaml:"web"`
	Export       ExportConfig `yaml:"export"`
}

type WebConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

type ExportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

const (
	defaultKeyboardStep = 0.025
	maxKeyboardStep     = 0.5
)

func DefaultConfig() Config {
	return Config{
		Theme:        "frappe",
		LogLevel:     "info",
		KeyboardStep: defaultKeyboardStep,
		Web:          WebConfig{Bind: "127.0.0.1"},
		Export:       ExportConfig{Width: 1280, Height: 800},
	}
}

func Load() (Config, error) {
	return LoadFrom(getConfigPath())
}

// LoadFromDir loads config.yaml from an explicit config directory.
func LoadFromDir(dir string) (Config, error) {
	return LoadFrom(filepath.Join(dir, configFileName))
}

func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", configPath, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills in zero values and clamps out-of-range settings.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.KeyboardStep <= 0 {
		c.KeyboardStep = def.KeyboardStep
	}
	c.KeyboardStep = min(c.KeyboardStep, maxKeyboardStep)
	if c.Web.Bind == "" {
		c.Web.Bind = def.Web.Bind
	}
	if c.Web.Port < 0 {
		c.Web.Port = 0
	}
	if c.Export.Width <= 0 {
		c.Export.Width = def.Export.Width
	}
	if c.Export.Height <= 0 {
		c.Export.Height = def.Export.Height
	}
}

// ResolveLayoutsPath returns the layouts file, relative paths resolved
// against dataDir.
func (c *Config) ResolveLayoutsPath(dataDir string) string {
	switch {
	case c.LayoutsPath == "":
		return filepath.Join(dataDir, layoutsFile)
	case filepath.IsAbs(c.LayoutsPath):
		return c.LayoutsPath
	case len(c.LayoutsPath) > 1 && c.LayoutsPath[:2] == "~/":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, c.LayoutsPath[2:])
		}
		return c.LayoutsPath
	default:
		return filepath.Join(dataDir, c.LayoutsPath)
	}
}

// DefaultDir is the directory holding config, layouts, logs and the
// instance lock when --config-dir is not given.
func DefaultDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, appName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", appName)
	}

	return filepath.Join(home, ".config", appName)
}

func getConfigPath() string {
	return filepath.Join(DefaultDir(), configFileName)
}
