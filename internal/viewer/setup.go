// Package viewer builds the scene both viewer binaries start from.
package viewer

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/config"
	"github.com/Faultbox/objviewer/internal/engine/camera"
	"github.com/Faultbox/objviewer/internal/engine/lighting"
	"github.com/Faultbox/objviewer/internal/engine/model"
	"github.com/Faultbox/objviewer/internal/engine/scene"
	"github.com/Faultbox/objviewer/internal/engine/shader"
	"github.com/Faultbox/objviewer/internal/logger"
	"github.com/Faultbox/objviewer/pkg/math"
)

// Controls converts the camera settings into the controls shared by
// every camera.
func Controls(cfg config.CameraConfig) *camera.Controls {
	c := camera.DefaultControls()
	if cfg.Speed > 0 {
		c.Speed = cfg.Speed
	}
	if cfg.BoostedSpeed > 0 {
		c.BoostedSpeed = cfg.BoostedSpeed
	}
	if cfg.Sensitivity > 0 {
		c.Sensitivity = cfg.Sensitivity
	}
	if cfg.ZoomFactor > 1 {
		c.ZoomFactor = cfg.ZoomFactor
	}
	return c
}

// InitLogger sets up the global logger from the logging settings.
func InitLogger(cfg config.LoggingConfig) error {
	return logger.InitWithFileConfig(cfg.Level, LogFile(cfg), true)
}

// LogFile converts the logging settings into the rotating file settings.
// An empty log file disables file output.
func LogFile(cfg config.LoggingConfig) logger.FileConfig {
	if cfg.LogFile == "" {
		return logger.FileConfig{}
	}
	fc := logger.DefaultFileConfig(cfg.LogFile)
	if cfg.MaxSizeMB > 0 {
		fc.MaxSizeMB = cfg.MaxSizeMB
	}
	if cfg.MaxBackups > 0 {
		fc.MaxBackups = cfg.MaxBackups
	}
	if cfg.MaxAgeDays > 0 {
		fc.MaxAgeDays = cfg.MaxAgeDays
	}
	fc.Compress = cfg.Compress
	return fc
}

// ShaderDir returns the directory shader files are read from: the
// configured one, or a "shaders" directory next to the executable. An
// empty result means only the built-in sources are used.
func ShaderDir(cfg config.ViewerConfig) string {
	if cfg.ShaderDir != "" {
		return cfg.ShaderDir
	}
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	dir := filepath.Join(filepath.Dir(exe), "shaders")
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir
	}
	return ""
}

// ClearColor returns the configured background colour.
func ClearColor(cfg config.WindowConfig) math.Vec3 {
	c := cfg.ClearColor
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}
}

// NewScene creates a registry configured from cfg: the active camera
// settings, the extra programs, the startup light and the startup models.
// Models are bound to the default geometry program.
func NewScene(cfg *config.Config, factory scene.ProgramFactory, log *zap.Logger) *scene.Registry {
	if log == nil {
		log = zap.NewNop()
	}
	reg := scene.New(scene.NewSession(cfg.Viewer.Deferred),
		scene.WithLogger(log.Named("scene")),
		scene.WithProgramFactory(factory),
		scene.WithControls(Controls(cfg.Camera)),
		scene.WithModelOptions(model.WithLogger(log.Named("model"))),
	)
	reg.SetResolution(cfg.Window.Width, cfg.Window.Height)

	_, cam := reg.ActiveCamera()
	ConfigureCamera(cam, cfg.Camera)

	for _, p := range cfg.Viewer.Programs {
		src := shader.Source{Vertex: p.Vertex, Geometry: p.Geometry, Fragment: p.Fragment}
		if src.Vertex == "" || src.Fragment == "" {
			src = reg.DefaultSource()
		}
		desc := p.Description
		if desc == "" {
			desc = "Program"
		}
		reg.AddProgram(desc, src)
	}

	if cfg.Viewer.Light != "" && cfg.Viewer.Light != "none" {
		kind, ok := lighting.ParseType(cfg.Viewer.Light)
		if !ok {
			log.Warn("unknown light type, using directional", zap.String("light", cfg.Viewer.Light))
		}
		id := reg.AddLight(kind)
		l, _ := reg.Light(id)
		l.Grabbed = true
	}

	for _, path := range cfg.Viewer.Models {
		reg.AddModel(path, scene.DefaultGeometryProgram)
	}

	log.Info("scene ready",
		zap.Bool("deferred", cfg.Viewer.Deferred),
		zap.Int("models", len(reg.ModelIDs())),
		zap.Int("programs", len(reg.ProgramIDs())),
		zap.Int("lights", len(reg.LightIDs())),
	)
	return reg
}

// ConfigureCamera applies the projection settings to c.
func ConfigureCamera(c *camera.Camera, cfg config.CameraConfig) {
	if cfg.FOV > 0 {
		c.SetFOV(cfg.FOV)
	}
	if cfg.Near > 0 && cfg.Far > cfg.Near {
		c.SetClipping(cfg.Near, cfg.Far)
	}
	c.SetOrthographic(cfg.Orthographic)
}
