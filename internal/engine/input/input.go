// Package input defines the window-system independent input events the
// viewer reacts to.
package input

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Key is a keyboard key known to the viewer.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyC
	KeyR
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyShift
	KeyCtrl
	KeyEscape
	KeyF1
	KeyF2
	KeyF11
	KeyF12
)

// Mouse buttons.
const (
	ButtonLeft   uint8 = 1
	ButtonMiddle uint8 = 2
	ButtonRight  uint8 = 3
)

// Mod is a bit set of held modifier keys.
type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Mod    Mod
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	Wheel  float32
}

// Queue collects the events of one frame.
type Queue struct {
	events []Event
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 16)}
}

// Push appends an event.
func (q *Queue) Push(e Event) { q.events = append(q.events, e) }

// Reset drops the events of the previous frame.
func (q *Queue) Reset() { q.events = q.events[:0] }

// Events returns the queued events.
func (q *Queue) Events() []Event { return q.events }

// Quit reports whether a quit event is queued.
func (q *Queue) Quit() bool {
	for _, e := range q.events {
		if e.Type == EventQuit {
			return true
		}
	}
	return false
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (q *Queue) IsKeyPressed(key Key) bool {
	for _, e := range q.events {
		if e.Type == EventKeyDown && e.Key == key {
			return true
		}
	}
	return false
}
