package engine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/engine"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := engine.LoadConfig(filepath.Join(t.TempDir(), "engine.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	def := engine.DefaultConfig()
	if cfg.Window != def.Window || cfg.Scene != def.Scene || cfg.Assets != def.Assets {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if cfg.Clear() != engine.DefaultClearColor {
		t.Errorf("expected default clear colour, got %v", cfg.Clear())
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	data := []byte(`
window:
  title: Quad
  width: 1280
  height: 720
scene: quad
clear_color: [0.1, 0.2, 0.3]
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := engine.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Window.Title != "Quad" || cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("unexpected window config %+v", cfg.Window)
	}
	if !cfg.Window.VSync {
		t.Error("vsync default should survive a partial window section")
	}
	if cfg.Scene != "quad" {
		t.Errorf("expected scene quad, got %q", cfg.Scene)
	}
	if cfg.Assets != "assets" {
		t.Errorf("expected default assets, got %q", cfg.Assets)
	}
	if want := (mgl32.Vec4{0.1, 0.2, 0.3, 1}); cfg.Clear() != want {
		t.Errorf("expected %v, got %v", want, cfg.Clear())
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":     "window: [",
		"zero width":   "window:\n  width: 0\n",
		"short colour": "clear_color: [1, 2]\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "engine.yaml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := engine.LoadConfig(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		engine.EnvScene:   "spinning",
		engine.EnvVerbose: "true",
		engine.EnvAssets:  "/tmp/assets",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := engine.DefaultConfig()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatal(err)
	}
	if cfg.Scene != "spinning" || !cfg.Verbose || cfg.Assets != "/tmp/assets" {
		t.Errorf("env not applied: %+v", cfg)
	}

	env[engine.EnvVerbose] = "loud"
	if err := cfg.ApplyEnv(lookup); err == nil {
		t.Error("expected an error for a non-boolean verbose value")
	}
}
