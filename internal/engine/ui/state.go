package ui

import "github.com/Faultbox/objviewer/internal/engine/input"

// State is the input snapshot of one GUI frame.
type State struct {
	Width, Height  int
	MouseX, MouseY int
	// Buttons holds the left, middle and right mouse buttons.
	Buttons [3]bool
	Wheel   float32
	Keys    map[input.Key]bool
	Mod     input.Mod
}

// Tracker turns successive snapshots into input events.
type Tracker struct {
	prev  State
	first bool
}

// NewTracker creates a tracker. The first snapshot reports a resize.
func NewTracker() *Tracker {
	return &Tracker{first: true}
}

var buttons = [3]uint8{input.ButtonLeft, input.ButtonMiddle, input.ButtonRight}

// Update pushes the events that lead from the previous snapshot to s.
func (t *Tracker) Update(s State, q *input.Queue) {
	prev := t.prev

	if t.first || s.Width != prev.Width || s.Height != prev.Height {
		q.Push(input.Event{Type: input.EventWindowResize, Width: s.Width, Height: s.Height})
	}

	for key, down := range s.Keys {
		if down && !prev.Keys[key] {
			q.Push(input.Event{Type: input.EventKeyDown, Key: key, Mod: s.Mod})
		}
	}
	for key, down := range prev.Keys {
		if down && !s.Keys[key] {
			q.Push(input.Event{Type: input.EventKeyUp, Key: key, Mod: s.Mod})
		}
	}

	if !t.first && (s.MouseX != prev.MouseX || s.MouseY != prev.MouseY) {
		q.Push(input.Event{Type: input.EventMouseMove, MouseX: s.MouseX, MouseY: s.MouseY})
	}
	for i, down := range s.Buttons {
		if down == prev.Buttons[i] {
			continue
		}
		ev := input.Event{Type: input.EventMouseUp, Button: buttons[i], MouseX: s.MouseX, MouseY: s.MouseY}
		if down {
			ev.Type = input.EventMouseDown
		}
		q.Push(ev)
	}
	if s.Wheel != 0 {
		q.Push(input.Event{Type: input.EventMouseWheel, Wheel: s.Wheel})
	}

	t.prev = s
	t.first = false
}
