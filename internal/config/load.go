package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Load builds the configuration from defaults, then the config file, then
// command-line flags, and validates the result.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile returns the first existing candidate: objviewer.yaml in
// the working directory, then config.yaml in ConfigDir.
func findConfigFile() string {
	for _, path := range []string{
		"objviewer.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	} {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user directory for the config file and the
// GUI layout.
func ConfigDir() string {
	home, err := homedir.Dir()
	if err != nil {
		home = os.TempDir()
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "ObjViewer")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "ObjViewer")
		}
		return filepath.Join(home, "AppData", "Roaming", "ObjViewer")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "objviewer")
	}
	return filepath.Join(home, ".config", "objviewer")
}

// loadFromFile merges the YAML file at path over cfg. Keys the Config
// does not know are rejected so typos surface at startup.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// expandPaths replaces a leading ~ in every path setting.
func (c *Config) expandPaths() error {
	paths := []*string{
		&c.Viewer.ShaderDir,
		&c.Screenshot.Dir,
		&c.Logging.LogFile,
	}
	for i := range c.Viewer.Models {
		paths = append(paths, &c.Viewer.Models[i])
	}
	for i := range c.Viewer.Programs {
		p := &c.Viewer.Programs[i]
		paths = append(paths, &p.Vertex, &p.Geometry, &p.Fragment)
	}

	for _, p := range paths {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expanding %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// ErrInvalid is wrapped by every error Validate reports.
var ErrInvalid = errors.New("invalid config")

// Validate reports every setting that cannot be used as is. Zero camera
// values mean "keep the built-in default" and are accepted.
func (c *Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0,
		"window size %dx%d", c.Window.Width, c.Window.Height)
	for i, v := range c.Window.ClearColor {
		check(v >= 0 && v <= 1, "window.clear_color[%d] = %g is outside [0, 1]", i, v)
	}

	cam := c.Camera
	check(cam.FOV >= 0 && cam.FOV < 180, "camera.fov %g", cam.FOV)
	check(cam.Near >= 0 && cam.Far >= 0, "camera clipping (%g, %g) is negative", cam.Near, cam.Far)
	check(cam.Near == 0 || cam.Far == 0 || cam.Near < cam.Far,
		"camera.near %g is not below camera.far %g", cam.Near, cam.Far)
	check(cam.ZoomFactor == 0 || cam.ZoomFactor > 1, "camera.zoom_factor %g must exceed 1", cam.ZoomFactor)

	check(c.Textures.MaxSize >= 0, "textures.max_size %d", c.Textures.MaxSize)
	switch c.Screenshot.Format {
	case "", "png", "webp":
	default:
		check(false, "screenshot.format %q", c.Screenshot.Format)
	}
	switch strings.ToLower(c.Viewer.Light) {
	case "", "none", "directional", "point", "spotlight":
	default:
		check(false, "viewer.light %q", c.Viewer.Light)
	}
	return err
}
