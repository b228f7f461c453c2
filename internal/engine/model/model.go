// Package model provides the Model entity: a parsed OBJ mesh placed in the
// scene with its own transform.
package model

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/pkg/formats"
	"github.com/Faultbox/objviewer/pkg/math"
)

// minScale replaces unusable scale components.
const minScale = 0.001

// Resources are GPU objects created from a model's data.
type Resources interface {
	Release()
}

// LoadFunc parses a model file.
type LoadFunc func(path string, opts ...formats.Option) (*formats.ModelData, error)

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(m *Model) {
		if log != nil {
			m.log = log
		}
	}
}

// WithLoader replaces the file parser, formats.Load by default.
func WithLoader(load LoadFunc) Option {
	return func(m *Model) {
		if load != nil {
			m.load = load
		}
	}
}

// Model is a mesh with a position, rotation and scale. Its matrices are
// recomputed by every setter.
type Model struct {
	Enabled bool

	path string
	data *formats.ModelData
	err  error

	position math.Vec3
	rotation math.Quat
	scale    math.Vec3

	modelMat       math.Mat4
	modelOriginMat math.Mat4
	normalMat      math.Mat4

	global   formats.Material
	revision uint64

	resources Resources
	load      LoadFunc
	log       *zap.Logger
}

// New creates a model and loads path. A load failure leaves the model
// closed; Err reports why.
func New(path string, opts ...Option) *Model {
	m := &Model{
		Enabled: true,
		path:    path,
		load:    formats.Load,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.ResetGeometry()
	_ = m.Reload()
	return m
}

// Reload releases GPU resources and parses the model file again. An empty
// path leaves the model cleared.
func (m *Model) Reload() error {
	m.clear()
	if m.path == "" {
		return nil
	}

	data, err := m.load(m.path, formats.WithLogger(m.log))
	if err != nil {
		m.err = fmt.Errorf("load model %s: %w", m.path, err)
		m.log.Warn("model not loaded", zap.String("path", m.path), zap.Error(err))
		return m.err
	}
	m.data = data
	m.log.Debug("model loaded",
		zap.String("path", m.path),
		zap.Int("vertices", data.Stats.Vertices),
		zap.Int("triangles", data.Stats.Triangles),
		zap.Int("materials", len(data.Materials)),
		zap.Bool("material_open", data.MaterialOpen))
	m.updateMatrices()
	return nil
}

func (m *Model) clear() {
	m.Release()
	m.data = nil
	m.err = nil
	m.global = formats.NewMaterial("Global")
	m.revision++
	m.updateMatrices()
}

// Release frees the GPU resources of the model, if any.
func (m *Model) Release() {
	if m.resources != nil {
		m.resources.Release()
		m.resources = nil
	}
}

// Resources returns the GPU resources attached by the renderer, or nil.
func (m *Model) Resources() Resources { return m.resources }

// SetResources attaches GPU resources, releasing previous ones.
func (m *Model) SetResources(r Resources) {
	if m.resources != nil && m.resources != r {
		m.resources.Release()
	}
	m.resources = r
}

// SetPath changes the model file and reloads.
func (m *Model) SetPath(path string) error {
	m.path = path
	return m.Reload()
}

// Path returns the model file path.
func (m *Model) Path() string { return m.path }

// Name returns the base name of the model file.
func (m *Model) Name() string { return filepath.Base(m.path) }

// Err returns the last load error.
func (m *Model) Err() error { return m.err }

// Open reports whether the model parsed successfully.
func (m *Model) Open() bool { return m.data != nil && m.data.ModelOpen }

// MaterialOpen reports whether the material library was read.
func (m *Model) MaterialOpen() bool { return m.data != nil && m.data.MaterialOpen }

// MaterialPath returns the material library path referenced by the model.
func (m *Model) MaterialPath() string {
	if m.data == nil {
		return ""
	}
	return m.data.MaterialPath
}

// Data returns the parsed mesh, or nil when the model is not open.
func (m *Model) Data() *formats.ModelData { return m.data }

// Stats returns the mesh statistics.
func (m *Model) Stats() formats.Stats {
	if m.data == nil {
		return formats.Stats{}
	}
	return m.data.Stats
}

// Bounds returns the bounding box of the raw positions.
func (m *Model) Bounds() (lo, hi math.Vec3) {
	if m.data == nil {
		return math.Vec3{}, math.Vec3{}
	}
	return m.data.Min, m.data.Max
}
