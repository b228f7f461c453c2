package ui

import (
	"testing"

	"github.com/Faultbox/objviewer/internal/engine/input"
)

func countType(events []input.Event, typ input.EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestTracker_FirstFrameResizes(t *testing.T) {
	tr := NewTracker()
	q := input.NewQueue()
	tr.Update(State{Width: 640, Height: 480, MouseX: 10, MouseY: 10}, q)

	events := q.Events()
	if len(events) != 1 || events[0].Type != input.EventWindowResize {
		t.Fatalf("events = %+v, want a single resize", events)
	}
	if events[0].Width != 640 || events[0].Height != 480 {
		t.Errorf("resize = %dx%d", events[0].Width, events[0].Height)
	}

	q.Reset()
	tr.Update(State{Width: 640, Height: 480, MouseX: 10, MouseY: 10}, q)
	if len(q.Events()) != 0 {
		t.Errorf("unchanged state produced %+v", q.Events())
	}
}

func TestTracker_Keys(t *testing.T) {
	tr := NewTracker()
	q := input.NewQueue()
	tr.Update(State{}, q)

	q.Reset()
	tr.Update(State{Keys: map[input.Key]bool{input.KeyR: true}, Mod: input.ModCtrl}, q)
	events := q.Events()
	if len(events) != 1 || events[0].Type != input.EventKeyDown || events[0].Key != input.KeyR {
		t.Fatalf("events = %+v, want R down", events)
	}
	if events[0].Mod != input.ModCtrl {
		t.Errorf("mod = %v, want ctrl", events[0].Mod)
	}

	// Held keys do not repeat.
	q.Reset()
	tr.Update(State{Keys: map[input.Key]bool{input.KeyR: true}}, q)
	if len(q.Events()) != 0 {
		t.Errorf("held key produced %+v", q.Events())
	}

	q.Reset()
	tr.Update(State{}, q)
	events = q.Events()
	if len(events) != 1 || events[0].Type != input.EventKeyUp || events[0].Key != input.KeyR {
		t.Errorf("events = %+v, want R up", events)
	}
}

func TestTracker_Mouse(t *testing.T) {
	tr := NewTracker()
	q := input.NewQueue()
	tr.Update(State{MouseX: 5, MouseY: 5}, q)

	q.Reset()
	tr.Update(State{MouseX: 7, MouseY: 9, Buttons: [3]bool{false, false, true}, Wheel: -1}, q)
	events := q.Events()
	if countType(events, input.EventMouseMove) != 1 {
		t.Errorf("expected one move in %+v", events)
	}
	if countType(events, input.EventMouseWheel) != 1 {
		t.Errorf("expected one wheel event in %+v", events)
	}
	var down *input.Event
	for i := range events {
		if events[i].Type == input.EventMouseDown {
			down = &events[i]
		}
	}
	if down == nil || down.Button != input.ButtonRight || down.MouseX != 7 || down.MouseY != 9 {
		t.Errorf("mouse down = %+v", down)
	}

	q.Reset()
	tr.Update(State{MouseX: 7, MouseY: 9}, q)
	if countType(q.Events(), input.EventMouseUp) != 1 {
		t.Errorf("expected a release in %+v", q.Events())
	}
}
