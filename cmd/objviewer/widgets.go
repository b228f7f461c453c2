package main

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/objviewer/pkg/math"
)

// helpMarker shows a "(?)" with a tooltip.
func helpMarker(text string) {
	imgui.SameLine()
	imgui.TextDisabled("(?)")
	if imgui.IsItemHovered() {
		imgui.SetTooltip(text)
	}
}

// dragVec3 edits a vector and reports whether it changed.
func dragVec3(label string, v math.Vec3, speed float32) (math.Vec3, bool) {
	a := v.Array()
	if imgui.DragFloat3V(label, &a, speed, 0, 0, "%.4f", imgui.SliderFlagsNone) {
		return math.Vec3FromArray(a), true
	}
	return v, false
}

// colorVec3 edits a colour and reports whether it changed.
func colorVec3(label string, c math.Vec3) (math.Vec3, bool) {
	a := c.Array()
	if imgui.ColorEdit3(label, &a) {
		return math.Vec3FromArray(a), true
	}
	return c, false
}

// wideButton is a button spanning the available width.
func wideButton(label string) bool {
	return imgui.ButtonV(label, imgui.NewVec2(-1, 0))
}

// pathInput edits a path and offers a browse button. apply runs when the
// text is confirmed with Enter or a file is chosen in the dialog.
func (a *App) pathInput(label, hint, value string, filters []fileFilter, apply func(string)) {
	imgui.PushIDStr(label)
	defer imgui.PopID()

	imgui.SetNextItemWidth(imgui.ContentRegionAvail().X * 0.6)
	if imgui.InputTextWithHint("##path", hint, &value, imgui.InputTextFlagsEnterReturnsTrue, nil) {
		apply(value)
	}
	imgui.SameLine()
	if imgui.Button("...") {
		a.openDialog(label, filters, apply)
	}
	imgui.SameLine()
	imgui.Text(label)
}
