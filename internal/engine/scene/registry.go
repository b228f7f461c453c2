// Package scene owns the cameras, models, lights and shader programs of a
// viewer session and resolves what to draw each frame.
package scene

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/engine/camera"
	"github.com/Faultbox/objviewer/internal/engine/lighting"
	"github.com/Faultbox/objviewer/internal/engine/model"
	"github.com/Faultbox/objviewer/internal/engine/shader"
)

// Registry errors.
var (
	ErrNotFound   = errors.New("scene: element not found")
	ErrLastCamera = errors.New("scene: cannot remove the last camera")
	ErrReserved   = errors.New("scene: default programs cannot be removed")
)

// Program is a linkable shader program.
type Program interface {
	Link() error
	Valid() bool
	Err() error
	Source() shader.Source
	SetSource(shader.Source)
	WatchPaths() []string
	Release()
}

// ProgramFactory creates an unlinked program.
type ProgramFactory func(src shader.Source) Program

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithProgramFactory sets how programs are created. Required for anything
// that draws; without it programs are placeholders that never link.
func WithProgramFactory(f ProgramFactory) Option {
	return func(r *Registry) {
		if f != nil {
			r.newProgram = f
		}
	}
}

// WithModelOptions passes options to every model the registry creates.
func WithModelOptions(opts ...model.Option) Option {
	return func(r *Registry) {
		r.modelOpts = append(r.modelOpts, opts...)
	}
}

// WithControls sets the movement settings shared by all cameras.
func WithControls(c *camera.Controls) Option {
	return func(r *Registry) {
		if c != nil {
			r.controls = c
		}
	}
}

// WithDefaultPrograms replaces the sources of the reserved programs.
func WithDefaultPrograms(geometry, lighting shader.Source) Option {
	return func(r *Registry) {
		r.geometrySrc = geometry
		r.lightingSrc = lighting
	}
}

type modelEntry struct {
	model   *model.Model
	program ID
}

type programEntry struct {
	desc    string
	program Program
}

// Registry stores scene elements under session-unique IDs. It is not safe
// for concurrent use.
type Registry struct {
	session *Session

	cameras  map[ID]*camera.Camera
	models   map[ID]*modelEntry
	lights   map[ID]*lighting.Light
	programs map[ID]*programEntry

	activeCamera    ID
	lightingProgram ID
	width, height   int

	controls    *camera.Controls
	newProgram  ProgramFactory
	modelOpts   []model.Option
	geometrySrc shader.Source
	lightingSrc shader.Source
	log         *zap.Logger
}

// New creates a registry with the default programs and one perspective
// camera.
func New(session *Session, opts ...Option) *Registry {
	if session == nil {
		session = NewSession(true)
	}
	r := &Registry{
		session:         session,
		cameras:         make(map[ID]*camera.Camera),
		models:          make(map[ID]*modelEntry),
		lights:          make(map[ID]*lighting.Light),
		programs:        make(map[ID]*programEntry),
		lightingProgram: DefaultLightingProgram,
		width:           1,
		height:          1,
		controls:        camera.DefaultControls(),
		newProgram:      func(src shader.Source) Program { return &nullProgram{src: src} },
		geometrySrc:     shader.GeometryPass,
		lightingSrc:     shader.LightingPass,
		log:             zap.NewNop(),
	}
	if !session.Deferred() {
		r.geometrySrc = shader.Forward
	}
	for _, opt := range opts {
		opt(r)
	}

	r.insertProgram(DefaultGeometryProgram, "Default geometry", r.geometrySrc)
	if session.Deferred() {
		r.insertProgram(DefaultLightingProgram, "Default lighting", r.lightingSrc)
	}
	r.activeCamera = r.AddCamera(false)
	return r
}

// Session returns the session the registry draws IDs from.
func (r *Registry) Session() *Session { return r.session }

// Controls returns the camera settings shared by all cameras.
func (r *Registry) Controls() *camera.Controls { return r.controls }

// DefaultSource returns the source of the default geometry program, used
// for programs added without their own files.
func (r *Registry) DefaultSource() shader.Source { return r.geometrySrc }

// AddCamera adds a camera at the current resolution.
func (r *Registry) AddCamera(orthographic bool) ID {
	c := camera.New(r.controls, orthographic)
	c.SetResolution(r.width, r.height)
	id := r.session.NextID()
	r.cameras[id] = c
	r.log.Debug("camera added", zap.Uint32("id", uint32(id)), zap.Bool("orthographic", orthographic))
	return id
}

// AddModel loads path and binds it to programID. A model that fails to
// load is still stored; Model.Err reports the failure.
func (r *Registry) AddModel(path string, programID ID) ID {
	m := model.New(path, r.modelOpts...)
	id := r.session.NextID()
	r.models[id] = &modelEntry{model: m, program: programID}
	if err := m.Err(); err != nil {
		r.log.Warn("model not loaded", zap.Uint32("id", uint32(id)), zap.String("path", path), zap.Error(err))
	} else {
		r.log.Info("model added", zap.Uint32("id", uint32(id)), zap.String("path", path))
	}
	return id
}

// AddLight adds a light of the given type.
func (r *Registry) AddLight(kind lighting.Type) ID {
	id := r.session.NextID()
	r.lights[id] = lighting.New(kind)
	r.log.Debug("light added", zap.Uint32("id", uint32(id)), zap.Stringer("type", kind))
	return id
}

// AddProgram creates and links a program. A link failure is logged and
// leaves the program invalid.
func (r *Registry) AddProgram(desc string, src shader.Source) ID {
	id := r.session.NextID()
	r.insertProgram(id, desc, src)
	return id
}

func (r *Registry) insertProgram(id ID, desc string, src shader.Source) {
	p := r.newProgram(src)
	r.programs[id] = &programEntry{desc: desc, program: p}
	if err := p.Link(); err != nil {
		r.log.Warn("program invalid", zap.Uint32("id", uint32(id)), zap.String("description", desc), zap.Error(err))
	}
}

// Camera returns the camera with id.
func (r *Registry) Camera(id ID) (*camera.Camera, bool) {
	c, ok := r.cameras[id]
	return c, ok
}

// Model returns the model with id.
func (r *Registry) Model(id ID) (*model.Model, bool) {
	e, ok := r.models[id]
	if !ok {
		return nil, false
	}
	return e.model, true
}

// ModelProgram returns the program ID bound to a model.
func (r *Registry) ModelProgram(id ID) (ID, bool) {
	e, ok := r.models[id]
	if !ok {
		return NoID, false
	}
	return e.program, true
}

// Light returns the light with id.
func (r *Registry) Light(id ID) (*lighting.Light, bool) {
	l, ok := r.lights[id]
	return l, ok
}

// Program returns the program with id.
func (r *Registry) Program(id ID) (Program, bool) {
	e, ok := r.programs[id]
	if !ok {
		return nil, false
	}
	return e.program, true
}

// ProgramDescription returns the label of a program.
func (r *Registry) ProgramDescription(id ID) string {
	if e, ok := r.programs[id]; ok {
		return e.desc
	}
	return ""
}

// SetProgramDescription relabels a program.
func (r *Registry) SetProgramDescription(id ID, desc string) bool {
	e, ok := r.programs[id]
	if ok {
		e.desc = desc
	}
	return ok
}

// CameraIDs returns the camera IDs in ascending order.
func (r *Registry) CameraIDs() []ID { return sortedKeys(r.cameras) }

// ModelIDs returns the model IDs in ascending order.
func (r *Registry) ModelIDs() []ID { return sortedKeys(r.models) }

// LightIDs returns the light IDs in ascending order.
func (r *Registry) LightIDs() []ID { return sortedKeys(r.lights) }

// ProgramIDs returns the program IDs in ascending order.
func (r *Registry) ProgramIDs() []ID { return sortedKeys(r.programs) }

func sortedKeys[V any](m map[ID]V) []ID {
	return slices.Sorted(maps.Keys(m))
}

// RemoveCamera removes a camera. The last camera cannot be removed. When
// the active camera goes, its successor becomes active, or its predecessor
// if it was the last one.
func (r *Registry) RemoveCamera(id ID) error {
	if _, ok := r.cameras[id]; !ok {
		return fmt.Errorf("camera %d: %w", id, ErrNotFound)
	}
	if len(r.cameras) == 1 {
		return ErrLastCamera
	}

	if id == r.activeCamera {
		ids := r.CameraIDs()
		i := slices.Index(ids, id)
		if i == len(ids)-1 {
			r.activeCamera = ids[i-1]
		} else {
			r.activeCamera = ids[i+1]
		}
	}
	delete(r.cameras, id)
	r.log.Debug("camera removed", zap.Uint32("id", uint32(id)), zap.Uint32("active", uint32(r.activeCamera)))
	return nil
}

// RemoveModel removes a model and releases its GPU resources.
func (r *Registry) RemoveModel(id ID) error {
	e, ok := r.models[id]
	if !ok {
		return fmt.Errorf("model %d: %w", id, ErrNotFound)
	}
	e.model.Release()
	delete(r.models, id)
	r.log.Debug("model removed", zap.Uint32("id", uint32(id)))
	return nil
}

// RemoveLight removes a light.
func (r *Registry) RemoveLight(id ID) error {
	if _, ok := r.lights[id]; !ok {
		return fmt.Errorf("light %d: %w", id, ErrNotFound)
	}
	delete(r.lights, id)
	return nil
}

// RemoveProgram removes and releases a program. Models bound to it fall
// back to the default program when drawn.
func (r *Registry) RemoveProgram(id ID) error {
	if r.reserved(id) {
		return ErrReserved
	}
	e, ok := r.programs[id]
	if !ok {
		return fmt.Errorf("program %d: %w", id, ErrNotFound)
	}
	e.program.Release()
	delete(r.programs, id)
	r.log.Debug("program removed", zap.Uint32("id", uint32(id)))
	return nil
}

func (r *Registry) reserved(id ID) bool {
	if id == DefaultGeometryProgram {
		return true
	}
	return id == DefaultLightingProgram && r.session.Deferred()
}

// SetProgramToModel binds a program to a model and returns the previous
// binding. ok is false when the model does not exist; the previous ID alone
// cannot tell, since the default geometry program is also ID 0.
func (r *Registry) SetProgramToModel(programID, modelID ID) (prev ID, ok bool) {
	e, ok := r.models[modelID]
	if !ok {
		return NoID, false
	}
	prev = e.program
	e.program = programID
	return prev, true
}

// ReloadModel reparses a model from its path.
func (r *Registry) ReloadModel(id ID) error {
	e, ok := r.models[id]
	if !ok {
		return fmt.Errorf("model %d: %w", id, ErrNotFound)
	}
	return e.model.Reload()
}

// ReloadPrograms relinks every program, the defaults included. Programs
// that fail stay invalid; all failures are returned together.
func (r *Registry) ReloadPrograms() error {
	var errs error
	for _, id := range r.ProgramIDs() {
		e := r.programs[id]
		if err := e.program.Link(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("program %d (%s): %w", id, e.desc, err))
		}
	}
	if errs != nil {
		r.log.Warn("programs reloaded with errors", zap.Error(errs))
	} else {
		r.log.Info("programs reloaded", zap.Int("count", len(r.programs)))
	}
	return errs
}

// WatchPaths returns the on-disk sources of every program.
func (r *Registry) WatchPaths() []string {
	var out []string
	for _, id := range r.ProgramIDs() {
		out = append(out, r.programs[id].program.WatchPaths()...)
	}
	return out
}

// ActiveCamera returns the active camera and its ID.
func (r *Registry) ActiveCamera() (ID, *camera.Camera) {
	if _, ok := r.cameras[r.activeCamera]; !ok {
		r.activeCamera = r.CameraIDs()[0]
	}
	return r.activeCamera, r.cameras[r.activeCamera]
}

// SelectCamera makes a camera active.
func (r *Registry) SelectCamera(id ID) bool {
	if _, ok := r.cameras[id]; !ok {
		return false
	}
	r.activeCamera = id
	return true
}

// SetLightingProgram selects the program of the lighting pass.
func (r *Registry) SetLightingProgram(id ID) bool {
	if _, ok := r.programs[id]; !ok {
		return false
	}
	r.lightingProgram = id
	return true
}

// SetResolution resizes every camera. Sizes below 1, as reported for a
// minimized window, are stored as 1.
func (r *Registry) SetResolution(width, height int) {
	r.width, r.height = max(width, 1), max(height, 1)
	for _, c := range r.cameras {
		c.SetResolution(width, height)
	}
}

// Resolution returns the size last passed to SetResolution.
func (r *Registry) Resolution() (width, height int) { return r.width, r.height }

// FollowCamera moves every grabbed light to the active camera.
func (r *Registry) FollowCamera() {
	_, c := r.ActiveCamera()
	for _, l := range r.lights {
		l.Follow(c.Position(), c.Direction())
	}
}

// Close releases every model and program.
func (r *Registry) Close() {
	for id, e := range r.models {
		e.model.Release()
		delete(r.models, id)
	}
	for id, e := range r.programs {
		e.program.Release()
		delete(r.programs, id)
	}
	clear(r.lights)
}

// nullProgram stands in when no factory is configured.
type nullProgram struct {
	src shader.Source
}

var errNoFactory = errors.New("no program factory configured")

func (p *nullProgram) Link() error                 { return errNoFactory }
func (p *nullProgram) Valid() bool                 { return false }
func (p *nullProgram) Err() error                  { return errNoFactory }
func (p *nullProgram) Source() shader.Source       { return p.src }
func (p *nullProgram) SetSource(src shader.Source) { p.src = src }
func (p *nullProgram) WatchPaths() []string        { return nil }
func (p *nullProgram) Release()                    {}
