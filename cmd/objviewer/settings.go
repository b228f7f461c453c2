package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/objviewer/internal/engine/camera"
	"github.com/Faultbox/objviewer/internal/engine/scene"
	"github.com/Faultbox/objviewer/internal/engine/ui"
	"github.com/Faultbox/objviewer/pkg/math"
)

const settingsWidth = 501

func (a *App) drawMenu() {
	if !imgui.BeginMainMenuBar() {
		return
	}
	if imgui.BeginMenu("File") {
		if imgui.MenuItemBool("Open model...") {
			a.openDialog("Open model", modelFilters, a.addModel)
		}
		if imgui.MenuItemBoolV("Screenshot", "F2", false, true) {
			a.ctrl.RequestScreenshot()
		}
		imgui.Separator()
		if imgui.MenuItemBool("Quit") {
			a.backend.Close()
		}
		imgui.EndMenu()
	}
	if imgui.BeginMenu("View") {
		if imgui.MenuItemBoolV("Settings", "Esc", a.ctrl.ShowGUI, true) {
			a.ctrl.ShowGUI = !a.ctrl.ShowGUI
		}
		if imgui.MenuItemBoolV("Reload shaders", "Ctrl+R", false, true) {
			a.reloadPrograms()
		}
		if imgui.MenuItemBoolV("Metrics", "F12", a.ctrl.ShowMetrics, true) {
			a.ctrl.ShowMetrics = !a.ctrl.ShowMetrics
		}
		imgui.EndMenu()
	}
	if imgui.BeginMenu("Help") {
		if imgui.MenuItemBoolV("About OBJ Viewer", "F1", a.ctrl.ShowAbout, true) {
			a.ctrl.ShowAbout = !a.ctrl.ShowAbout
		}
		if imgui.MenuItemBoolV("About Dear ImGui", "F11", a.ctrl.ShowAboutImGui, true) {
			a.ctrl.ShowAboutImGui = !a.ctrl.ShowAboutImGui
		}
		imgui.EndMenu()
	}
	imgui.EndMainMenuBar()
}

func (a *App) addModel(path string) {
	id := a.reg.AddModel(path, scene.DefaultGeometryProgram)
	m, _ := a.reg.Model(id)
	if err := m.Err(); err != nil {
		a.notify(fmt.Sprintf("Cannot open %s: %v", m.Name(), err))
		return
	}
	a.ctrl.Select(id)
	a.notify("Opened " + m.Name())
}

// drawSettings draws the settings window docked to the left edge.
func (a *App) drawSettings() {
	x, y, _, h := ui.Viewport()
	imgui.PushStyleVarFloat(imgui.StyleVarWindowRounding, 0)
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(settingsWidth, h))
	flags := imgui.WindowFlagsNoResize | imgui.WindowFlagsNoMove | imgui.WindowFlagsNoBringToFrontOnFocus
	open := imgui.BeginV("Settings", &a.ctrl.ShowGUI, flags)
	imgui.PopStyleVar()
	if open {
		a.drawUserGuide()
		a.drawSceneSection()
		a.drawCameras()
		a.drawModels()
		a.drawLights()
		a.drawPrograms()
	}
	imgui.End()
}

func (a *App) drawUserGuide() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("User Guide", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	imgui.BulletText("ESCAPE to toggle this window.")
	imgui.BulletText("W, A, S, D or the arrows to move, SPACE and C to go up and down.")
	imgui.BulletText("Hold SHIFT to move faster.")
	imgui.BulletText("Drag with the left or right button to look around.")
	imgui.BulletText("Click on a model to select it, scroll to zoom.")
	imgui.BulletText("CTRL+R to reload the GLSL programs.")
	imgui.BulletText("F1 about, F2 screenshot, F11 about Dear ImGui, F12 metrics.")
	imgui.Spacing()

	if imgui.Button("About OBJ Viewer") {
		a.ctrl.ShowAbout = true
	}
	imgui.SameLine()
	if imgui.Button("About Dear ImGui") {
		a.ctrl.ShowAboutImGui = true
	}
	imgui.SameLine()
	if imgui.Button("Metrics") {
		a.ctrl.ShowMetrics = true
	}
}

func (a *App) drawSceneSection() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Scene", imgui.TreeNodeFlagsNone) {
		return
	}

	if imgui.TreeNodeExStrV("OpenGL", imgui.TreeNodeFlagsDefaultOpen) {
		imgui.Text("Vendor: " + a.gl.vendor)
		imgui.Text("Renderer: " + a.gl.renderer)
		imgui.Text("Version: " + a.gl.version)
		imgui.Text("GLSL version: " + a.gl.glsl)
		pipeline := "forward"
		if a.renderer.Deferred() {
			pipeline = "deferred"
		}
		imgui.Text("Pipeline: " + pipeline)
		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV("Window", imgui.TreeNodeFlagsDefaultOpen) {
		w, h := a.reg.Resolution()
		imgui.Text(fmt.Sprintf("Width:  %d", w))
		imgui.SameLine()
		imgui.SetCursorPosX(210)
		imgui.Text(fmt.Sprintf("Seconds: %.3fs", time.Since(a.started).Seconds()))
		imgui.Text(fmt.Sprintf("Height: %d", h))
		imgui.SameLine()
		imgui.SetCursorPosX(210)
		imgui.Text(fmt.Sprintf("Frames:  %.3fE3", float64(a.frames)/1000))
		mouse := imgui.MousePos()
		imgui.Text(fmt.Sprintf("Mouse: %.0f, %.0f", mouse.X, mouse.Y))
		helpMarker("[x, y]")
		imgui.Text(fmt.Sprintf("Frame rate: %.1f FPS", imgui.CurrentIO().Framerate()))
		imgui.Spacing()
		if imgui.ColorEdit3("Background", &a.clear) {
			a.renderer.SetClearColor(math.Vec3FromArray(a.clear))
			a.backend.SetBgColor(a.clear[0], a.clear[1], a.clear[2])
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV("Statistics*", imgui.TreeNodeFlagsNone) {
		a.drawStatistics()
		imgui.TreePop()
	}
}

func (a *App) drawStatistics() {
	var vertices, elements, triangles, materials, textures int
	for _, id := range a.reg.ModelIDs() {
		m, _ := a.reg.Model(id)
		st := m.Stats()
		vertices += st.Vertices
		elements += st.Elements
		triangles += st.Triangles
		textures += st.Textures
		materials += m.MaterialCount()
	}

	imgui.BulletText(fmt.Sprintf("Cameras: %d", len(a.reg.CameraIDs())))
	imgui.BulletText(fmt.Sprintf("Lights: %d", len(a.reg.LightIDs())))
	if imgui.TreeNodeExStrV(fmt.Sprintf("Models: %d###modelstats", len(a.reg.ModelIDs())), imgui.TreeNodeFlagsDefaultOpen) {
		imgui.Text(fmt.Sprintf("Elements:  %d", elements))
		helpMarker("Unique vertices")
		imgui.SameLine()
		imgui.SetCursorPosX(210)
		imgui.Text(fmt.Sprintf("Materials: %d", materials))
		imgui.Text(fmt.Sprintf("Vertices:  %d", vertices))
		helpMarker("Positions in the files")
		imgui.SameLine()
		imgui.SetCursorPosX(210)
		imgui.Text(fmt.Sprintf("Textures:  %d", textures))
		imgui.Text(fmt.Sprintf("Triangles: %d", triangles))
		imgui.TreePop()
	}
	imgui.BulletText(fmt.Sprintf("GLSL programs: %d", len(a.reg.ProgramIDs())))

	st := a.renderer.Stats()
	imgui.BulletText(fmt.Sprintf("Last frame: %d models, %d draw calls, %d lights", st.Models, st.DrawCalls, st.Lights))

	imgui.Spacing()
	imgui.TextDisabled("*Including the elements with errors.")
}

func (a *App) drawCameras() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Cameras", imgui.TreeNodeFlagsNone) {
		return
	}

	if imgui.TreeNodeExStrV("Global", imgui.TreeNodeFlagsDefaultOpen) {
		c := a.reg.Controls()
		imgui.DragFloatV("Sensitivity", &c.Sensitivity, 0.25, 0, 0, "%.4f", imgui.SliderFlagsNone)
		imgui.DragFloatV("Speed", &c.Speed, 0.005, 0, 1e6, "%.4f", imgui.SliderFlagsNone)
		imgui.DragFloatV("Boost speed", &c.BoostedSpeed, 0.05, 0, 1e6, "%.4f", imgui.SliderFlagsNone)
		helpMarker("The boost speed is expected to be\ngreater than the normal speed.")
		imgui.DragFloatV("Zoom factor", &c.ZoomFactor, 0.001, 1, 2, "%.4f", imgui.SliderFlagsNone)
		imgui.TreePop()
	}

	active, _ := a.reg.ActiveCamera()
	var remove scene.ID
	for _, id := range a.reg.CameraIDs() {
		c, _ := a.reg.Camera(id)
		title := fmt.Sprintf("Camera %d", id)
		if id == active {
			title += " (active)"
		}
		flags := imgui.TreeNodeFlagsNone
		if id == active {
			flags = imgui.TreeNodeFlagsDefaultOpen
		}
		if imgui.TreeNodeExStrV(fmt.Sprintf("%s###camera%d", title, id), flags) {
			if !a.cameraWidget(id, c, id == active) {
				remove = id
			}
			imgui.TreePop()
		}
	}
	if remove != scene.NoID {
		if err := a.reg.RemoveCamera(remove); err != nil {
			if errors.Is(err, scene.ErrLastCamera) {
				a.notify("The last camera cannot be removed")
			} else {
				a.notify(err.Error())
			}
		}
	}

	imgui.Spacing()
	if wideButton("Add camera") {
		a.reg.AddCamera(false)
	}
	imgui.Spacing()
}

// cameraWidget edits one camera. It returns false when the camera should
// be removed.
func (a *App) cameraWidget(id scene.ID, c *camera.Camera, active bool) bool {
	imgui.PushIDInt(int32(id))
	defer imgui.PopID()

	keep := true
	if !active {
		if imgui.Button("Make active") {
			a.reg.SelectCamera(id)
		}
		imgui.SameLine()
	}
	if imgui.Button("Reset") {
		c.Reset()
	}
	imgui.SameLine()
	if imgui.Button("Remove") {
		keep = false
	}

	ortho := c.Orthographic()
	if imgui.Checkbox("Orthographic", &ortho) {
		c.SetOrthographic(ortho)
	}
	if p, ok := dragVec3("Position", c.Position(), 0.01); ok {
		c.SetPosition(p)
	}
	if r, ok := dragVec3("Rotation", c.Rotation(), 0.5); ok {
		c.SetRotation(r)
	}
	helpMarker("Yaw, pitch and roll in degrees.")

	fov := c.FOV()
	if imgui.DragFloatV("FOV", &fov, 0.1, 0.1, 179, "%.2f°", imgui.SliderFlagsNone) {
		c.SetFOV(fov)
	}
	near, far := c.Clipping()
	clip := [2]float32{near, far}
	if imgui.DragFloat2V("Clipping", &clip, 0.01, 0.0001, 1e6, "%.4f", imgui.SliderFlagsNone) && clip[0] < clip[1] {
		c.SetClipping(clip[0], clip[1])
	}
	helpMarker("Near and far planes.")
	return keep
}

// drawAbout draws the about windows toggled from the keyboard or menus.
func (a *App) drawAbout() {
	if a.ctrl.ShowAbout {
		imgui.SetNextWindowSizeV(imgui.NewVec2(420, 0), imgui.CondFirstUseEver)
		if imgui.BeginV("About OBJ Viewer", &a.ctrl.ShowAbout, imgui.WindowFlagsAlwaysAutoResize) {
			imgui.Text("OBJ Viewer")
			imgui.Separator()
			imgui.Text("Loads Wavefront OBJ models with their MTL materials")
			imgui.Text("and renders them with a deferred shading pipeline.")
			imgui.Spacing()
			imgui.Text("OpenGL " + a.gl.version)
			imgui.Text("GLSL " + a.gl.glsl)
		}
		imgui.End()
	}
	if a.ctrl.ShowAboutImGui {
		imgui.ShowAboutWindowV(&a.ctrl.ShowAboutImGui)
	}
	if a.ctrl.ShowMetrics {
		imgui.ShowMetricsWindowV(&a.ctrl.ShowMetrics)
	}
}
