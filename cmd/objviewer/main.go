// Command objviewer is an interactive OBJ/MTL model viewer.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/config"
	"github.com/Faultbox/objviewer/internal/engine/debug"
	"github.com/Faultbox/objviewer/internal/engine/input"
	"github.com/Faultbox/objviewer/internal/engine/lighting"
	"github.com/Faultbox/objviewer/internal/engine/renderer"
	"github.com/Faultbox/objviewer/internal/engine/scene"
	"github.com/Faultbox/objviewer/internal/engine/shader"
	"github.com/Faultbox/objviewer/internal/engine/ui"
	"github.com/Faultbox/objviewer/internal/logger"
	"github.com/Faultbox/objviewer/internal/viewer"
)

func main() {
	runtime.LockOSThread()

	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := viewer.InitLogger(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== OBJ Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	app, err := NewApp(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		os.Exit(1)
	}

	app.Run()

	if err := app.Close(); err != nil {
		logger.Error("viewer teardown", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

// glInfo describes the OpenGL implementation.
type glInfo struct {
	vendor, renderer, version, glsl string
}

// App is the viewer application state.
type App struct {
	cfg *config.Config
	log *zap.Logger

	backend  *ui.Backend
	renderer *renderer.Renderer
	reg      *scene.Registry
	ctrl     *scene.Controller
	queue    *input.Queue
	watcher  *shader.Watcher
	capture  *debug.Capture

	// Native dialogs run on their own goroutine; results are applied on
	// the main thread.
	dialogs chan pendingPath

	gl        glInfo
	clear     [3]float32
	started   time.Time
	lastFrame time.Time
	frames    uint64

	newLight   lighting.Type
	notice     string
	noticeTime time.Time
}

// NewApp creates the window, the renderer and the startup scene.
func NewApp(cfg *config.Config) (*App, error) {
	log := logger.Named("viewer")

	format, err := debug.ParseFormat(cfg.Screenshot.Format)
	if err != nil {
		return nil, err
	}

	iniFile := ""
	if dir := config.ConfigDir(); os.MkdirAll(dir, 0o755) == nil {
		iniFile = filepath.Join(dir, "imgui.ini")
	}

	b, err := ui.NewBackend(ui.Config{
		Title:   cfg.Window.Title,
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		IniFile: iniFile,
	}, logger.Named("ui"))
	if err != nil {
		return nil, err
	}

	lib := shader.NewLibrary(viewer.ShaderDir(cfg.Viewer))
	r, err := renderer.New(renderer.Config{
		Width:          cfg.Window.Width,
		Height:         cfg.Window.Height,
		ClearColor:     viewer.ClearColor(cfg.Window),
		Deferred:       cfg.Viewer.Deferred,
		MaxTextureSize: cfg.Textures.MaxSize,
		Mipmaps:        cfg.Textures.Mipmaps,
	}, lib, logger.Named("renderer"))
	if err != nil {
		return nil, err
	}

	reg := viewer.NewScene(cfg, renderer.ProgramFactory(lib, logger.Named("shader")), log)

	app := &App{
		cfg:      cfg,
		log:      log,
		backend:  b,
		renderer: r,
		reg:      reg,
		ctrl:     scene.NewController(reg, logger.Named("input")),
		queue:    input.NewQueue(),
		capture:  debug.NewCapture(cfg.Screenshot.Dir, cfg.Screenshot.Prefix, format),
		dialogs:  make(chan pendingPath, 4),
		clear:    cfg.Window.ClearColor,
		started:  time.Now(),
		gl: glInfo{
			vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
			renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
			version:  gl.GoStr(gl.GetString(gl.VERSION)),
			glsl:     gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		},
	}
	app.ctrl.ShowGUI = cfg.Viewer.ShowGUI
	app.backend.SetBgColor(app.clear[0], app.clear[1], app.clear[2])

	if cfg.Viewer.WatchShaders {
		if app.watcher, err = shader.NewWatcher(logger.Named("shader")); err != nil {
			log.Warn("shader hot reload disabled", zap.Error(err))
		} else {
			app.watcher.Watch(reg.WatchPaths())
		}
	}

	return app, nil
}

// Run starts the main loop and returns when the window closes.
func (a *App) Run() {
	a.lastFrame = time.Now()
	a.backend.Run(a.frame)
}

// Close releases the scene, the renderer and the watcher.
func (a *App) Close() error {
	a.reg.Close()
	err := a.renderer.Close()
	if a.watcher != nil {
		err = multierr.Append(err, a.watcher.Close())
	}
	return err
}

// frame runs once per frame inside the ImGui frame.
func (a *App) frame() {
	now := time.Now()
	dt := float32(now.Sub(a.lastFrame).Seconds())
	a.lastFrame = now
	a.frames++

	a.applyDialogs()

	a.ctrl.CaptureMouse, a.ctrl.CaptureKeyboard = ui.Capture()
	a.queue.Reset()
	a.backend.Poll(a.queue)
	for _, ev := range a.queue.Events() {
		a.ctrl.Handle(ev)
	}
	a.ctrl.Update(dt)

	if a.watcher != nil && a.watcher.Changed() {
		a.reloadPrograms()
	}

	selected, _ := a.ctrl.Selected()
	a.renderer.Render(a.reg, selected)
	if a.ctrl.TakeScreenshotRequest() {
		a.screenshot()
	}

	w, h := a.reg.Resolution()
	ui.DrawSceneTexture(0, 0, float32(w), float32(h), a.renderer.Texture())

	if a.ctrl.ShowGUI {
		a.drawMenu()
		a.drawSettings()
	}
	a.drawAbout()

	if a.notice != "" {
		if time.Since(a.noticeTime) < 3*time.Second {
			ui.Notify(a.notice, float32(w), float32(h))
		} else {
			a.notice = ""
		}
	}
}

// notify shows msg at the bottom of the window for a few seconds.
func (a *App) notify(msg string) {
	a.notice = msg
	a.noticeTime = time.Now()
}

func (a *App) reloadPrograms() {
	if err := a.reg.ReloadPrograms(); err != nil {
		a.notify("Shader reload failed, see the log")
	} else {
		a.notify("Shaders reloaded")
	}
	a.watchPrograms()
}

func (a *App) screenshot() {
	img, err := a.renderer.Snapshot()
	if err == nil {
		var name string
		if name, err = a.capture.Save(img); err == nil {
			a.log.Info("screenshot saved", zap.String("file", name))
			a.notify("Saved " + name)
			return
		}
	}
	a.log.Warn("screenshot failed", zap.Error(err))
	a.notify("Screenshot failed: " + err.Error())
}
