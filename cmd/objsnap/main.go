// Command objsnap renders OBJ models offscreen and writes one image per
// model. With -preview it opens a window instead and lets you fly around
// the models with the viewer controls.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/config"
	"github.com/Faultbox/objviewer/internal/engine/debug"
	"github.com/Faultbox/objviewer/internal/engine/input"
	"github.com/Faultbox/objviewer/internal/engine/renderer"
	"github.com/Faultbox/objviewer/internal/engine/scene"
	"github.com/Faultbox/objviewer/internal/engine/shader"
	"github.com/Faultbox/objviewer/internal/engine/window"
	"github.com/Faultbox/objviewer/internal/logger"
	"github.com/Faultbox/objviewer/internal/viewer"
)

var (
	flagOut     = flag.String("out", "", "Output directory (default: screenshot dir)")
	flagFormat  = flag.String("format", "", "Image format: png or webp (default: screenshot format)")
	flagPreview = flag.Bool("preview", false, "Open an interactive window instead of writing images")
)

func main() {
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

	if len(cfg.Viewer.Models) == 0 {
		fmt.Fprintln(os.Stderr, "usage: objsnap [flags] model.obj...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		logger.Error("objsnap failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) (err error) {
	log := logger.Named("objsnap")

	format, err := debug.ParseFormat(firstNonEmpty(*flagFormat, cfg.Screenshot.Format))
	if err != nil {
		return err
	}
	out := firstNonEmpty(*flagOut, cfg.Screenshot.Dir)

	win, err := window.New(window.Config{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
		Hidden: !*flagPreview,
	}, logger.Named("window"))
	if err != nil {
		return err
	}
	defer win.Close()

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
		return err
	}
	defer func() { err = multierr.Append(err, r.Close()) }()

	factory := renderer.ProgramFactory(lib, logger.Named("shader"))
	if *flagPreview {
		return preview(cfg, r, win, factory, format, out, log)
	}
	return snapshot(cfg, r, factory, format, out, log)
}

// snapshot renders every model in its own scene so each image is framed
// on one model.
func snapshot(cfg *config.Config, r *renderer.Renderer, factory scene.ProgramFactory, format debug.Format, out string, log *zap.Logger) error {
	var errs error
	for _, path := range cfg.Viewer.Models {
		one := *cfg
		one.Viewer.Models = []string{path}

		dst := filepath.Join(out, outputName(path, format))
		if err := snapshotOne(&one, r, factory, dst, log); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		log.Info("snapshot written", zap.String("model", path), zap.String("file", dst))
	}
	return errs
}

func snapshotOne(cfg *config.Config, r *renderer.Renderer, factory scene.ProgramFactory, dst string, log *zap.Logger) error {
	reg := viewer.NewScene(cfg, factory, log)
	defer reg.Close()

	id := reg.ModelIDs()[0]
	m, _ := reg.Model(id)
	if !m.Open() {
		return m.Err()
	}

	reg.FollowCamera()
	r.Render(reg, scene.NoID)
	img, err := r.Snapshot()
	if err != nil {
		return err
	}
	return debug.Save(dst, img)
}

// outputName maps a model path to the image file name.
func outputName(path string, format debug.Format) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + format.Ext()
}

func preview(cfg *config.Config, r *renderer.Renderer, win *window.Window, factory scene.ProgramFactory, format debug.Format, out string, log *zap.Logger) error {
	reg := viewer.NewScene(cfg, factory, log)
	defer reg.Close()

	ctrl := scene.NewController(reg, log)
	capture := debug.NewCapture(out, cfg.Screenshot.Prefix, format)

	var watcher *shader.Watcher
	if cfg.Viewer.WatchShaders {
		var err error
		if watcher, err = shader.NewWatcher(logger.Named("shader")); err != nil {
			log.Warn("shader hot reload disabled", zap.Error(err))
		} else {
			defer watcher.Close()
			watcher.Watch(reg.WatchPaths())
		}
	}

	q := input.NewQueue()
	lastTime := time.Now()
	for {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		q.Reset()
		win.PollEvents(q)
		if q.Quit() {
			return nil
		}
		for _, ev := range q.Events() {
			ctrl.Handle(ev)
		}
		ctrl.Update(dt)

		if watcher != nil && watcher.Changed() {
			if err := reg.ReloadPrograms(); err != nil {
				log.Warn("shader reload failed", zap.Error(err))
			}
			watcher.Watch(reg.WatchPaths())
		}

		selected, _ := ctrl.Selected()
		r.Render(reg, selected)

		if ctrl.TakeScreenshotRequest() {
			if err := saveScreenshot(r, capture, log); err != nil {
				log.Warn("screenshot failed", zap.Error(err))
			}
		}

		w, h := win.DrawableSize()
		r.Present(w, h)
		win.SwapBuffers()
	}
}

func saveScreenshot(r *renderer.Renderer, capture *debug.Capture, log *zap.Logger) error {
	img, err := r.Snapshot()
	if err != nil {
		return err
	}
	name, err := capture.Save(img)
	if err != nil {
		return err
	}
	log.Info("screenshot saved", zap.String("file", name))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
