package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/engine/camera"
	"github.com/Faultbox/objviewer/internal/engine/input"
	"github.com/Faultbox/objviewer/pkg/math"
)

// travelKeys maps held keys to camera travel directions.
var travelKeys = map[input.Key]camera.Direction{
	input.KeyW:     camera.Front,
	input.KeyUp:    camera.Front,
	input.KeyS:     camera.Back,
	input.KeyDown:  camera.Back,
	input.KeyA:     camera.Left,
	input.KeyLeft:  camera.Left,
	input.KeyD:     camera.Right,
	input.KeyRight: camera.Right,
	input.KeySpace: camera.Up,
	input.KeyC:     camera.Down,
}

// Controller turns input events into camera motion, picking and viewer
// toggles.
type Controller struct {
	reg *Registry

	held      map[input.Key]bool
	dragging  bool
	lastMouse math.Vec2

	selected    ID
	hasSelected bool

	ShowGUI        bool
	ShowAbout      bool
	ShowAboutImGui bool
	ShowMetrics    bool
	screenshot     bool

	// CaptureMouse and CaptureKeyboard are set by the GUI when it owns
	// the input this frame.
	CaptureMouse    bool
	CaptureKeyboard bool

	log *zap.Logger
}

// NewController creates a controller driving reg.
func NewController(reg *Registry, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		reg:     reg,
		held:    make(map[input.Key]bool),
		ShowGUI: true,
		log:     log,
	}
}

// Handle applies one event.
func (c *Controller) Handle(ev input.Event) {
	switch ev.Type {
	case input.EventWindowResize:
		c.reg.SetResolution(ev.Width, ev.Height)

	case input.EventKeyDown:
		c.keyDown(ev)

	case input.EventKeyUp:
		delete(c.held, ev.Key)
		if ev.Key == input.KeyShift {
			c.reg.Controls().Boosted = false
		}

	case input.EventMouseDown:
		if c.CaptureMouse {
			return
		}
		c.lastMouse = c.normalize(ev.MouseX, ev.MouseY)
		switch ev.Button {
		case input.ButtonLeft:
			c.dragging = true
			c.pick(ev.MouseX, ev.MouseY)
		case input.ButtonRight:
			c.dragging = true
		}

	case input.EventMouseUp:
		c.dragging = false

	case input.EventMouseMove:
		p := c.normalize(ev.MouseX, ev.MouseY)
		if c.dragging && !c.CaptureMouse {
			_, cam := c.reg.ActiveCamera()
			cam.Rotate(p.Sub(c.lastMouse))
		}
		c.lastMouse = p

	case input.EventMouseWheel:
		if !c.CaptureMouse && ev.Wheel != 0 {
			_, cam := c.reg.ActiveCamera()
			cam.Zoom(ev.Wheel)
		}
	}
}

func (c *Controller) keyDown(ev input.Event) {
	switch ev.Key {
	case input.KeyEscape:
		c.ShowGUI = !c.ShowGUI
		return
	case input.KeyF1:
		c.ShowAbout = !c.ShowAbout
		return
	case input.KeyF11:
		c.ShowAboutImGui = !c.ShowAboutImGui
		return
	case input.KeyF12:
		c.ShowMetrics = !c.ShowMetrics
		return
	case input.KeyF2:
		c.screenshot = true
		return
	case input.KeyShift:
		c.reg.Controls().Boosted = true
		return
	case input.KeyR:
		if ev.Mod&input.ModCtrl != 0 {
			if err := c.reg.ReloadPrograms(); err != nil {
				c.log.Warn("program reload failed", zap.Error(err))
			}
			return
		}
	}
	if !c.CaptureKeyboard {
		c.held[ev.Key] = true
	}
}

// Update moves the active camera for the held keys and lets grabbed
// lights follow it.
func (c *Controller) Update(dt float32) {
	_, cam := c.reg.ActiveCamera()
	if !c.CaptureKeyboard {
		for key := range c.held {
			if dir, ok := travelKeys[key]; ok {
				cam.Travel(dir, dt)
			}
		}
	}
	c.reg.FollowCamera()
}

// normalize maps a pixel to [-1, 1] with Y up.
func (c *Controller) normalize(x, y int) math.Vec2 {
	w, h := c.reg.Resolution()
	w, h = max(w, 1), max(h, 1)
	return math.Vec2{
		X: (2*float32(x) - float32(w)) / float32(w),
		Y: (float32(h) - 2*float32(y)) / float32(h),
	}
}

func (c *Controller) pick(x, y int) {
	id, ok := c.reg.Pick(float32(x), float32(y))
	if !ok {
		return
	}
	c.selected, c.hasSelected = id, true
	c.log.Debug("model picked", zap.Uint32("id", uint32(id)))
}

// Selected returns the selected model, if it still exists.
func (c *Controller) Selected() (ID, bool) {
	if !c.hasSelected {
		return NoID, false
	}
	if _, ok := c.reg.Model(c.selected); !ok {
		c.hasSelected = false
		return NoID, false
	}
	return c.selected, true
}

// Select makes a model the selection.
func (c *Controller) Select(id ID) {
	c.selected, c.hasSelected = id, true
}

// ClearSelection drops the selection.
func (c *Controller) ClearSelection() {
	c.hasSelected = false
}

// RequestScreenshot asks for a screenshot at the end of the frame.
func (c *Controller) RequestScreenshot() { c.screenshot = true }

// TakeScreenshotRequest reports and clears a pending screenshot request.
func (c *Controller) TakeScreenshotRequest() bool {
	r := c.screenshot
	c.screenshot = false
	return r
}
