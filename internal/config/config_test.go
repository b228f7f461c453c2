package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/multierr"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 || !cfg.Window.VSync {
		t.Errorf("unexpected window %+v", cfg.Window)
	}
	if !cfg.Viewer.Deferred || !cfg.Viewer.ShowGUI || cfg.Viewer.Light != "directional" {
		t.Errorf("unexpected viewer %+v", cfg.Viewer)
	}
	if len(cfg.Viewer.Models) != 0 {
		t.Errorf("expected no startup models, got %v", cfg.Viewer.Models)
	}
	if cfg.Camera.FOV != 30 || cfg.Camera.Near != 0.01 || cfg.Camera.Far != 10 || cfg.Camera.Sensitivity != 15 {
		t.Errorf("unexpected camera %+v", cfg.Camera)
	}
	if cfg.Screenshot.Format != "png" {
		t.Errorf("expected png screenshots, got %s", cfg.Screenshot.Format)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.LogFile != "" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 1920
  height: 1080
  vsync: false
  clear_color: [0.2, 0.3, 0.4]

viewer:
  models: ["cube.obj", "teapot.obj"]
  deferred: false
  light: point
  programs:
    - description: toon
      fragment: toon.frag

camera:
  fov: 45
  orthographic: true

textures:
  max_size: 1024

screenshot:
  format: webp

logging:
  level: "debug"
  log_file: "viewer.log"
`)

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 || cfg.Window.VSync {
		t.Errorf("unexpected window %+v", cfg.Window)
	}
	if cfg.Window.ClearColor != [3]float32{0.2, 0.3, 0.4} {
		t.Errorf("unexpected clear color %v", cfg.Window.ClearColor)
	}
	if len(cfg.Viewer.Models) != 2 || cfg.Viewer.Models[1] != "teapot.obj" {
		t.Errorf("unexpected models %v", cfg.Viewer.Models)
	}
	if cfg.Viewer.Deferred || cfg.Viewer.Light != "point" {
		t.Errorf("unexpected viewer %+v", cfg.Viewer)
	}
	if len(cfg.Viewer.Programs) != 1 || cfg.Viewer.Programs[0].Fragment != "toon.frag" {
		t.Errorf("unexpected programs %+v", cfg.Viewer.Programs)
	}
	if cfg.Camera.FOV != 45 || !cfg.Camera.Orthographic {
		t.Errorf("unexpected camera %+v", cfg.Camera)
	}
	// Unset keys keep their defaults.
	if cfg.Camera.Far != 10 || !cfg.Viewer.ShowGUI {
		t.Error("defaults lost in merge")
	}
	if cfg.Textures.MaxSize != 1024 || cfg.Screenshot.Format != "webp" {
		t.Errorf("unexpected textures %+v / screenshot %+v", cfg.Textures, cfg.Screenshot)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"syntax", writeConfig(t, "window:\n  width: not a number\n  invalid syntax here\n")},
		{"unknown key", writeConfig(t, "window:\n  widht: 800\n")},
		{"missing", filepath.Join(t.TempDir(), "absent.yaml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := loadFromFile(Default(), tt.path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadFromFile_Empty(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, writeConfig(t, "")); err != nil {
		t.Fatalf("empty file: %v", err)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("empty file changed defaults: %+v", cfg.Window)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errs   int
	}{
		{"defaults", func(*Config) {}, 0},
		{"zero camera keeps defaults", func(c *Config) { c.Camera = CameraConfig{} }, 0},
		{"light case", func(c *Config) { c.Viewer.Light = "Spotlight" }, 0},
		{"no light", func(c *Config) { c.Viewer.Light = "none" }, 0},
		{"window", func(c *Config) { c.Window.Width = 0 }, 1},
		{"clear colour", func(c *Config) { c.Window.ClearColor = [3]float32{-1, 0, 2} }, 2},
		{"fov", func(c *Config) { c.Camera.FOV = 180 }, 1},
		{"clipping order", func(c *Config) { c.Camera.Near, c.Camera.Far = 5, 1 }, 1},
		{"zoom", func(c *Config) { c.Camera.ZoomFactor = 0.5 }, 1},
		{"format", func(c *Config) { c.Screenshot.Format = "gif" }, 1},
		{"light", func(c *Config) { c.Viewer.Light = "area" }, 1},
		{"several", func(c *Config) {
			c.Window.Height = -1
			c.Textures.MaxSize = -1
			c.Screenshot.Format = "bmp"
		}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			errs := multierr.Errors(err)
			if len(errs) != tt.errs {
				t.Fatalf("got %d errors %v, want %d", len(errs), err, tt.errs)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("%v does not wrap ErrInvalid", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" || !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir = %q, want an absolute path", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "xdg"))
	t.Setenv("HOME", filepath.Join(tmp, "home"))

	if path := findConfigFile(); path != "" {
		t.Errorf("found %s with no config present", path)
	}
	if err := os.WriteFile(filepath.Join(tmp, "objviewer.yaml"), []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if path := findConfigFile(); path != "objviewer.yaml" {
		t.Errorf("findConfigFile = %q, want objviewer.yaml", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name  string
		set   func()
		reset func()
		check func(*Config) bool
	}{
		{
			name:  "debug",
			set:   func() { *flagDebug = true },
			reset: func() { *flagDebug = false },
			check: func(c *Config) bool { return c.Logging.Level == "debug" },
		},
		{
			name:  "size",
			set:   func() { *flagWidth, *flagHeight = 2560, 1440 },
			reset: func() { *flagWidth, *flagHeight = 0, 0 },
			check: func(c *Config) bool { return c.Window.Width == 2560 && c.Window.Height == 1440 },
		},
		{
			name:  "shaders",
			set:   func() { *flagShaders = "/opt/shaders" },
			reset: func() { *flagShaders = "" },
			check: func(c *Config) bool { return c.Viewer.ShaderDir == "/opt/shaders" },
		},
		{
			name:  "log",
			set:   func() { *flagLog = "out.log" },
			reset: func() { *flagLog = "" },
			check: func(c *Config) bool { return c.Logging.LogFile == "out.log" },
		},
		{
			name: "repeated model",
			set: func() {
				_ = flagModels.Set("a.obj")
				_ = flagModels.Set("b.obj")
			},
			reset: func() { flagModels = nil },
			check: func(c *Config) bool {
				return strings.Join(c.Viewer.Models, ",") == "a.obj,b.obj"
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.set()
			defer tt.reset()

			cfg := Default()
			applyFlags(cfg)
			if !tt.check(cfg) {
				t.Errorf("flag not applied: %+v", cfg)
			}
		})
	}
}

func TestLoad_Priority(t *testing.T) {
	*flagConfig = writeConfig(t, "window:\n  width: 1600\n  height: 900\n")
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Flag beats file; file beats default.
	if cfg.Window.Width != 1920 || cfg.Window.Height != 900 {
		t.Errorf("got %dx%d, want 1920x900", cfg.Window.Width, cfg.Window.Height)
	}
}

func TestLoad_Invalid(t *testing.T) {
	*flagConfig = writeConfig(t, "camera:\n  near: 2\n  far: 1\n")
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load error = %v, want ErrInvalid", err)
	}
}

func TestLoad_ExpandsHome(t *testing.T) {
	*flagConfig = writeConfig(t, "viewer:\n  shader_dir: ~/shaders\n  models: [~/models/cube.obj]\n")
	defer func() { *flagConfig = "" }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	if want := filepath.Join(home, "shaders"); cfg.Viewer.ShaderDir != want {
		t.Errorf("shader dir %s, want %s", cfg.Viewer.ShaderDir, want)
	}
	if want := filepath.Join(home, "models", "cube.obj"); cfg.Viewer.Models[0] != want {
		t.Errorf("model %s, want %s", cfg.Viewer.Models[0], want)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Width = 800
	cfg.Viewer.Models = []string{"bunny.obj"}
	cfg.Viewer.Programs = []ProgramConfig{{Description: "normals", Geometry: "normals.geom"}}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Window.Width != 800 || len(loaded.Viewer.Models) != 1 || loaded.Viewer.Models[0] != "bunny.obj" {
		t.Errorf("unexpected reload %+v", loaded)
	}
	if len(loaded.Viewer.Programs) != 1 || loaded.Viewer.Programs[0].Geometry != "normals.geom" {
		t.Errorf("programs not saved: %+v", loaded.Viewer.Programs)
	}
}
