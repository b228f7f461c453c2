// Package ui provides ImGui-based user interface components.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/engine/input"
)

// Config holds the GUI window settings.
type Config struct {
	Title  string
	Width  int
	Height int
	// IniFile stores the window layout; empty disables it.
	IniFile string
}

// Backend wraps the ImGui SDL backend for viewer use.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	tracker *Tracker
	log     *zap.Logger
}

// NewBackend creates the window, the ImGui context and the OpenGL context.
func NewBackend(cfg Config, log *zap.Logger) (*Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Backend{tracker: NewTracker(), log: log}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(func() {
		io := imgui.CurrentIO()
		io.SetIniFilename(cfg.IniFile)
		imgui.StyleColorsDark()
	})

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(cfg.Title, cfg.Width, cfg.Height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	log.Info("gui backend created", zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width), zap.Int("height", cfg.Height))

	return b, nil
}

// Run starts the main render loop.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// SetBgColor sets the colour behind every ImGui window.
func (b *Backend) SetBgColor(r, g, bl float32) {
	b.backend.SetBgColor(imgui.NewVec4(r, g, bl, 1))
}

// Close asks the loop to stop after the current frame.
func (b *Backend) Close() {
	b.backend.SetShouldClose(true)
}

// Viewport returns the main viewport work area.
func Viewport() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// Capture reports whether ImGui wants the mouse and keyboard this frame.
func Capture() (mouse, keyboard bool) {
	io := imgui.CurrentIO()
	return io.WantCaptureMouse(), io.WantCaptureKeyboard()
}

var imguiKeys = map[imgui.Key]input.Key{
	imgui.KeyW:          input.KeyW,
	imgui.KeyA:          input.KeyA,
	imgui.KeyS:          input.KeyS,
	imgui.KeyD:          input.KeyD,
	imgui.KeyC:          input.KeyC,
	imgui.KeyR:          input.KeyR,
	imgui.KeySpace:      input.KeySpace,
	imgui.KeyUpArrow:    input.KeyUp,
	imgui.KeyDownArrow:  input.KeyDown,
	imgui.KeyLeftArrow:  input.KeyLeft,
	imgui.KeyRightArrow: input.KeyRight,
	imgui.KeyLeftShift:  input.KeyShift,
	imgui.KeyRightShift: input.KeyShift,
	imgui.KeyLeftCtrl:   input.KeyCtrl,
	imgui.KeyRightCtrl:  input.KeyCtrl,
	imgui.KeyEscape:     input.KeyEscape,
	imgui.KeyF1:         input.KeyF1,
	imgui.KeyF2:         input.KeyF2,
	imgui.KeyF11:        input.KeyF11,
	imgui.KeyF12:        input.KeyF12,
}

// Poll reads the ImGui input state and pushes the resulting events to q.
// Call it once per frame from the render function.
func (b *Backend) Poll(q *input.Queue) {
	io := imgui.CurrentIO()
	size := io.DisplaySize()
	mouse := imgui.MousePos()

	s := State{
		Width:  int(size.X),
		Height: int(size.Y),
		MouseX: int(mouse.X),
		MouseY: int(mouse.Y),
		Buttons: [3]bool{
			imgui.IsMouseDown(imgui.MouseButtonLeft),
			imgui.IsMouseDown(imgui.MouseButtonMiddle),
			imgui.IsMouseDown(imgui.MouseButtonRight),
		},
		Wheel: io.MouseWheel(),
		Keys:  make(map[input.Key]bool, len(imguiKeys)),
	}
	for k, key := range imguiKeys {
		if imgui.IsKeyDown(k) {
			s.Keys[key] = true
		}
	}
	if io.KeyShift() {
		s.Mod |= input.ModShift
	}
	if io.KeyCtrl() {
		s.Mod |= input.ModCtrl
	}
	if io.KeyAlt() {
		s.Mod |= input.ModAlt
	}

	b.tracker.Update(s, q)
}

// DrawSceneTexture draws a bottom-up OpenGL texture behind every other
// window. The window takes no input so clicks reach the scene.
func DrawSceneTexture(x, y, w, h float32, textureID uint32) {
	if textureID == 0 {
		return
	}

	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w, h))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoInputs | imgui.WindowFlagsNoSavedSettings

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##SceneBackground", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
		imgui.ImageV(*texRef,
			imgui.NewVec2(w, h),
			imgui.NewVec2(0, 1),
			imgui.NewVec2(1, 0))
	}
	imgui.End()
	imgui.PopStyleVar()
}

// Notify renders a short status message at the bottom of the screen.
func Notify(msg string, width, height float32) {
	msgWidth := float32(420)
	imgui.SetNextWindowPos(imgui.NewVec2((width-msgWidth)/2, height-60))
	imgui.SetNextWindowSize(imgui.NewVec2(msgWidth, 0))
	imgui.SetNextWindowBgAlpha(0.8)
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoInputs |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoSavedSettings
	if imgui.BeginV("##Notify", nil, flags) {
		imgui.TextColored(imgui.NewVec4(0.2, 1.0, 0.2, 1.0), msg)
	}
	imgui.End()
}
