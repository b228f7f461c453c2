package main

import (
	"errors"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"
)

// pendingPath is a file chosen in a native dialog, waiting to be applied
// on the main thread.
type pendingPath struct {
	path  string
	apply func(path string)
}

// fileFilter is a named set of extensions for the open dialog.
type fileFilter struct {
	desc string
	exts []string
}

var (
	modelFilters = []fileFilter{
		{"Wavefront OBJ", []string{"obj"}},
		{"All Files", []string{"*"}},
	}
	imageFilters = []fileFilter{
		{"Images", []string{"png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff", "webp", "tga"}},
		{"All Files", []string{"*"}},
	}
	shaderFilters = []fileFilter{
		{"GLSL", []string{"vert", "geom", "frag", "glsl"}},
		{"All Files", []string{"*"}},
	}
)

// openDialog shows a native open dialog on a goroutine so the frame loop
// keeps running. apply runs on the main thread with the chosen path.
func (a *App) openDialog(title string, filters []fileFilter, apply func(path string)) {
	go func() {
		b := dialog.File().Title(title)
		for _, f := range filters {
			b = b.Filter(f.desc, f.exts...)
		}
		path, err := b.Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				a.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		a.dialogs <- pendingPath{path: path, apply: apply}
	}()
}

// applyDialogs applies every dialog result that arrived since the last
// frame.
func (a *App) applyDialogs() {
	for {
		select {
		case p := <-a.dialogs:
			p.apply(p.path)
		default:
			return
		}
	}
}
