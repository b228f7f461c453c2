package main

import (
	"errors"
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/objviewer/internal/engine/scene"
	"github.com/Faultbox/objviewer/internal/engine/shader"
)

// programTitle names a program in combos and tree nodes.
func (a *App) programTitle(id scene.ID) string {
	switch {
	case id == scene.DefaultGeometryProgram:
		return "Default geometry pass"
	case id == scene.DefaultLightingProgram && a.renderer.Deferred():
		return "Default lighting pass"
	}
	if _, ok := a.reg.Program(id); !ok {
		return "NULL"
	}
	return fmt.Sprintf("Program %d: %s", id, a.reg.ProgramDescription(id))
}

func (a *App) drawPrograms() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("GLSL Programs", imgui.TreeNodeFlagsNone) {
		return
	}

	if a.renderer.Deferred() {
		imgui.BulletText("Lighting pass program")
		imgui.Indent()
		current, _, _ := a.reg.LightingProgram()
		imgui.SetNextItemWidth(-1)
		if imgui.BeginCombo("##lighting_pass_program", a.programTitle(current)) {
			for _, id := range a.reg.ProgramIDs() {
				if imgui.SelectableBoolV(a.programTitle(id), id == current, 0, imgui.NewVec2(0, 0)) {
					a.reg.SetLightingProgram(id)
				}
			}
			imgui.EndCombo()
		}
		imgui.Unindent()
	}

	var remove scene.ID
	removing := false
	for _, id := range a.reg.ProgramIDs() {
		p, _ := a.reg.Program(id)
		if imgui.TreeNodeExStrV(fmt.Sprintf("%s###program%d", a.programTitle(id), id), imgui.TreeNodeFlagsNone) {
			if !a.programWidget(id, p) {
				remove, removing = id, true
			}
			imgui.TreePop()
		}
	}
	if removing {
		if err := a.reg.RemoveProgram(remove); err != nil {
			if errors.Is(err, scene.ErrReserved) {
				a.notify("The default programs cannot be removed")
			} else {
				a.notify(err.Error())
			}
		}
	}

	imgui.Spacing()
	if wideButton("Add GLSL program") {
		a.reg.AddProgram("Empty", a.reg.DefaultSource())
		a.watchPrograms()
	}
	if wideButton("Reload all") {
		a.reloadPrograms()
	}
	imgui.Spacing()
}

// programWidget edits one program. It returns false when the program
// should be removed.
func (a *App) programWidget(id scene.ID, p scene.Program) bool {
	imgui.PushIDInt(int32(id))
	defer imgui.PopID()

	keep := true
	if p.Valid() {
		imgui.TextColored(imgui.NewVec4(0.4, 1, 0.4, 1), "Linked")
	} else {
		imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), "Invalid")
	}
	imgui.SameLine()
	if imgui.Button("Reload") {
		a.relink(id, p)
	}
	imgui.SameLine()
	if imgui.Button("Remove") {
		keep = false
	}

	desc := a.reg.ProgramDescription(id)
	if imgui.InputTextWithHint("Description", "", &desc, 0, nil) {
		a.reg.SetProgramDescription(id, desc)
	}

	src := p.Source()
	stages := []struct {
		label string
		path  string
		set   func(*shader.Source, string)
	}{
		{"Vertex", src.Vertex, func(s *shader.Source, v string) { s.Vertex = v }},
		{"Geometry", src.Geometry, func(s *shader.Source, v string) { s.Geometry = v }},
		{"Fragment", src.Fragment, func(s *shader.Source, v string) { s.Fragment = v }},
	}
	for _, st := range stages {
		a.pathInput(st.label, "embedded or file path", st.path, shaderFilters, func(path string) {
			next := p.Source()
			st.set(&next, path)
			p.SetSource(next)
			a.relink(id, p)
		})
	}

	if err := p.Err(); err != nil {
		imgui.TextWrapped(err.Error())
	}
	return keep
}

func (a *App) relink(id scene.ID, p scene.Program) {
	if err := p.Link(); err != nil {
		a.notify(fmt.Sprintf("Program %d failed to link", id))
	} else {
		a.notify(fmt.Sprintf("Program %d linked", id))
	}
	a.watchPrograms()
}

func (a *App) watchPrograms() {
	if a.watcher != nil {
		a.watcher.Watch(a.reg.WatchPaths())
	}
}
