package scene

// ID identifies a camera, model, light or program in a Registry. IDs are
// unique across all collections of a session.
type ID uint32

// Reserved program IDs.
const (
	// NoID is returned when an operation has nothing to report. It is also
	// the ID of the default geometry program.
	NoID ID = 0

	DefaultGeometryProgram ID = 0
	DefaultLightingProgram ID = 1
)

// Session owns the ID counter shared by every collection of a registry.
type Session struct {
	deferred bool
	next     ID
}

// NewSession returns a session. A deferred session reserves IDs 0 and 1
// for the default geometry and lighting programs; otherwise only 0 is
// reserved.
func NewSession(deferred bool) *Session {
	s := &Session{deferred: deferred, next: 1}
	if deferred {
		s.next = 2
	}
	return s
}

// Deferred reports whether the session uses the two pass pipeline.
func (s *Session) Deferred() bool { return s.deferred }

// NextID returns a fresh ID.
func (s *Session) NextID() ID {
	id := s.next
	s.next++
	return id
}
