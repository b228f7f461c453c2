package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/engine/lighting"
	"github.com/Faultbox/objviewer/internal/engine/model"
	"github.com/Faultbox/objviewer/internal/engine/picking"
)

// DrawItem is a model paired with the program it is drawn with.
type DrawItem struct {
	ID        ID
	Model     *model.Model
	ProgramID ID
	Program   Program
}

// DrawList returns the enabled, loaded models in ID order with their
// resolved programs. A missing or invalid program falls back to the
// default geometry program; models with no usable program are skipped.
func (r *Registry) DrawList() []DrawItem {
	fallback, fallbackOK := r.usableProgram(DefaultGeometryProgram)

	items := make([]DrawItem, 0, len(r.models))
	for _, id := range r.ModelIDs() {
		e := r.models[id]
		if !e.model.Enabled || !e.model.Open() {
			continue
		}
		item := DrawItem{ID: id, Model: e.model, ProgramID: e.program}
		if p, ok := r.usableProgram(e.program); ok {
			item.Program = p
		} else if fallbackOK {
			item.ProgramID, item.Program = DefaultGeometryProgram, fallback
		} else {
			r.log.Debug("model skipped, no usable program", zap.Uint32("id", uint32(id)))
			continue
		}
		items = append(items, item)
	}
	return items
}

// LightingProgram resolves the program of the lighting pass, falling back
// to the default lighting program when the selection is gone.
func (r *Registry) LightingProgram() (ID, Program, bool) {
	if _, ok := r.programs[r.lightingProgram]; !ok {
		r.lightingProgram = DefaultLightingProgram
	}
	if p, ok := r.usableProgram(r.lightingProgram); ok {
		return r.lightingProgram, p, true
	}
	if p, ok := r.usableProgram(DefaultLightingProgram); ok {
		return DefaultLightingProgram, p, true
	}
	return r.lightingProgram, nil, false
}

func (r *Registry) usableProgram(id ID) (Program, bool) {
	e, ok := r.programs[id]
	if !ok || !e.program.Valid() {
		return nil, false
	}
	return e.program, true
}

// EnabledLights returns the enabled lights in ID order.
func (r *Registry) EnabledLights() []*lighting.Light {
	var out []*lighting.Light
	for _, id := range r.LightIDs() {
		if l := r.lights[id]; l.Enabled {
			out = append(out, l)
		}
	}
	return out
}

// Pick returns the model under pixel (x, y) of the active camera's
// viewport.
func (r *Registry) Pick(x, y float32) (ID, bool) {
	_, c := r.ActiveCamera()
	w, h := c.Resolution()
	ray := picking.ScreenToRay(x, y, float32(w), float32(h), c.ViewProjection().Inverse())

	var targets []picking.Target
	for _, id := range r.ModelIDs() {
		m := r.models[id].model
		if !m.Enabled || !m.Open() {
			continue
		}
		lo, hi := m.WorldBounds()
		targets = append(targets, picking.Target{ID: uint32(id), Box: picking.NewAABB(lo, hi)})
	}
	id, _, ok := picking.Nearest(ray, targets)
	return ID(id), ok
}
