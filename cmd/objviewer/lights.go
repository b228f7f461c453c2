package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/objviewer/internal/engine/lighting"
	"github.com/Faultbox/objviewer/internal/engine/scene"
	"github.com/Faultbox/objviewer/pkg/math"
)

func (a *App) drawLights() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Lights", imgui.TreeNodeFlagsNone) {
		return
	}
	if !a.renderer.Deferred() {
		imgui.TextDisabled("The forward pipeline lights models with a headlight.")
	}

	var remove scene.ID
	for _, id := range a.reg.LightIDs() {
		l, _ := a.reg.Light(id)
		title := fmt.Sprintf("Light %d: %s###light%d", id, l.Type, id)
		if imgui.TreeNodeExStrV(title, imgui.TreeNodeFlagsNone) {
			if !lightWidget(id, l) {
				remove = id
			}
			imgui.TreePop()
		}
	}
	if remove != scene.NoID {
		if err := a.reg.RemoveLight(remove); err != nil {
			a.notify(err.Error())
		}
	}

	imgui.Spacing()
	lightTypeCombo("Type", &a.newLight)
	if wideButton("Add light") {
		a.reg.AddLight(a.newLight)
	}
	imgui.Spacing()
}

func lightTypeCombo(label string, t *lighting.Type) bool {
	changed := false
	if imgui.BeginCombo(label, t.String()) {
		for _, kind := range lighting.Types {
			if imgui.SelectableBoolV(kind.String(), kind == *t, 0, imgui.NewVec2(0, 0)) {
				*t = kind
				changed = true
			}
		}
		imgui.EndCombo()
	}
	return changed
}

// lightWidget edits one light. It returns false when the light should be
// removed.
func lightWidget(id scene.ID, l *lighting.Light) bool {
	imgui.PushIDInt(int32(id))
	defer imgui.PopID()

	keep := true
	imgui.Checkbox("Enabled", &l.Enabled)
	imgui.SameLine()
	imgui.Checkbox("Grab", &l.Grabbed)
	helpMarker("A grabbed light follows the active camera.")
	imgui.SameLine()
	if imgui.Button("Remove") {
		keep = false
	}

	lightTypeCombo("Type", &l.Type)

	if l.Type != lighting.Directional {
		if p, ok := dragVec3("Position", l.Position, 0.01); ok {
			l.Position = p
		}
	}
	if l.Type != lighting.Point {
		if d, ok := dragVec3("Direction", l.Direction(), 0.01); ok {
			l.SetDirection(d)
		}
	}
	if l.Type != lighting.Directional {
		if at, ok := dragVec3("Attenuation", l.Attenuation, 0.001); ok {
			l.Attenuation = at
		}
		helpMarker("Constant, linear and quadratic terms.")
	}
	if l.Type == lighting.Spotlight {
		c := l.Cutoff()
		cut := [2]float32{c.X, c.Y}
		if imgui.DragFloat2V("Cutoff", &cut, 0.1, 0, 90, "%.2f°", imgui.SliderFlagsNone) {
			l.SetCutoff(math.Vec2{X: cut[0], Y: cut[1]})
		}
		helpMarker("Inner and outer angles.")
	}

	imgui.Separator()
	if c, ok := colorVec3("Ambient", l.AmbientColor); ok {
		l.AmbientColor = c
	}
	imgui.DragFloatV("Ambient level", &l.AmbientLevel, 0.005, 0, 1e6, "%.4f", imgui.SliderFlagsNone)
	if c, ok := colorVec3("Diffuse", l.DiffuseColor); ok {
		l.DiffuseColor = c
	}
	imgui.DragFloatV("Diffuse level", &l.DiffuseLevel, 0.005, 0, 1e6, "%.4f", imgui.SliderFlagsNone)
	if c, ok := colorVec3("Specular", l.SpecularColor); ok {
		l.SpecularColor = c
	}
	imgui.DragFloatV("Specular level", &l.SpecularLevel, 0.005, 0, 1e6, "%.4f", imgui.SliderFlagsNone)
	imgui.DragFloatV("Shininess", &l.Shininess, 0.05, 0, 1e6, "%.4f", imgui.SliderFlagsNone)
	return keep
}
