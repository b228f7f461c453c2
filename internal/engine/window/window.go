// Package window handles SDL2 window and OpenGL context creation.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/engine/input"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	// Hidden creates the window without showing it, for offscreen
	// rendering.
	Hidden bool
}

// Window wraps SDL2 window and OpenGL context.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	log       *zap.Logger
}

// New creates a new window with OpenGL context.
func New(cfg Config, log *zap.Logger) (*Window, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Window{
		config: cfg,
		log:    log,
	}

	log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL)
	switch {
	case cfg.Hidden:
		flags |= sdl.WINDOW_HIDDEN
	case cfg.Fullscreen:
		flags |= sdl.WINDOW_FULLSCREEN | sdl.WINDOW_RESIZABLE
	default:
		flags |= sdl.WINDOW_RESIZABLE
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("hidden", cfg.Hidden),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// Size returns the current window size.
func (w *Window) Size() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// DrawableSize returns the size of the OpenGL drawable in pixels, which
// differs from Size on HiDPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// PollEvents drains the SDL event queue into q.
func (w *Window) PollEvents(q *input.Queue) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if ev, ok := translate(event); ok {
			q.Push(ev)
		}
	}
}

func translate(event sdl.Event) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return input.Event{Type: input.EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return input.Event{}, false
		}
		ev := input.Event{
			Type: input.EventKeyUp,
			Key:  translateKey(e.Keysym.Sym),
			Mod:  translateMod(e.Keysym.Mod),
		}
		if e.Type == sdl.KEYDOWN {
			ev.Type = input.EventKeyDown
		}
		return ev, ev.Key != input.KeyUnknown

	case *sdl.MouseMotionEvent:
		return input.Event{Type: input.EventMouseMove, MouseX: int(e.X), MouseY: int(e.Y)}, true

	case *sdl.MouseButtonEvent:
		ev := input.Event{Type: input.EventMouseUp, Button: e.Button, MouseX: int(e.X), MouseY: int(e.Y)}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			ev.Type = input.EventMouseDown
		}
		return ev, true

	case *sdl.MouseWheelEvent:
		return input.Event{Type: input.EventMouseWheel, Wheel: float32(e.Y)}, true
	}
	return input.Event{}, false
}

var keys = map[sdl.Keycode]input.Key{
	sdl.K_w:      input.KeyW,
	sdl.K_a:      input.KeyA,
	sdl.K_s:      input.KeyS,
	sdl.K_d:      input.KeyD,
	sdl.K_c:      input.KeyC,
	sdl.K_r:      input.KeyR,
	sdl.K_SPACE:  input.KeySpace,
	sdl.K_UP:     input.KeyUp,
	sdl.K_DOWN:   input.KeyDown,
	sdl.K_LEFT:   input.KeyLeft,
	sdl.K_RIGHT:  input.KeyRight,
	sdl.K_LSHIFT: input.KeyShift,
	sdl.K_RSHIFT: input.KeyShift,
	sdl.K_LCTRL:  input.KeyCtrl,
	sdl.K_RCTRL:  input.KeyCtrl,
	sdl.K_ESCAPE: input.KeyEscape,
	sdl.K_F1:     input.KeyF1,
	sdl.K_F2:     input.KeyF2,
	sdl.K_F11:    input.KeyF11,
	sdl.K_F12:    input.KeyF12,
}

func translateKey(k sdl.Keycode) input.Key {
	return keys[k]
}

func translateMod(m uint16) input.Mod {
	var mod input.Mod
	if m&uint16(sdl.KMOD_SHIFT) != 0 {
		mod |= input.ModShift
	}
	if m&uint16(sdl.KMOD_CTRL) != 0 {
		mod |= input.ModCtrl
	}
	if m&uint16(sdl.KMOD_ALT) != 0 {
		mod |= input.ModAlt
	}
	return mod
}
