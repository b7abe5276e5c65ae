package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the optional configuration file read from the
// working directory.
const DefaultConfigFile = "engine.yaml"

// Environment overrides applied after the file.
const (
	EnvScene   = "ENGINE_SCENE"
	EnvVerbose = "ENGINE_VERBOSE"
	EnvAssets  = "ENGINE_ASSETS"
)

// WindowConfig holds the window creation parameters.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// Config is the startup configuration of the demo.
type Config struct {
	Window     WindowConfig `yaml:"window"`
	Assets     string       `yaml:"assets"`
	Scene      string       `yaml:"scene"`
	Verbose    bool         `yaml:"verbose"`
	ClearColor []float32    `yaml:"clear_color"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  "TriangleApp",
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		Assets: "assets",
		Scene:  "triangle",
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from the environment using lookup
// (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvScene); ok && v != "" {
		c.Scene = v
	}
	if v, ok := lookup(EnvAssets); ok && v != "" {
		c.Assets = v
	}
	if v, ok := lookup(EnvVerbose); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbose, err)
		}
		c.Verbose = b
	}
	return nil
}

// Validate checks the values that would make window creation fail.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if len(c.ClearColor) != 0 && len(c.ClearColor) != 3 && len(c.ClearColor) != 4 {
		return fmt.Errorf("clear_color needs 3 or 4 components, got %d", len(c.ClearColor))
	}
	return nil
}

// Clear returns the configured clear colour or DefaultClearColor.
func (c Config) Clear() mgl32.Vec4 {
	switch len(c.ClearColor) {
	case 3:
		return mgl32.Vec4{c.ClearColor[0], c.ClearColor[1], c.ClearColor[2], 1}
	case 4:
		return mgl32.Vec4{c.ClearColor[0], c.ClearColor[1], c.ClearColor[2], c.ClearColor[3]}
	}
	return DefaultClearColor
}
