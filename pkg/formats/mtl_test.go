package formats

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	vmath "github.com/Faultbox/objviewer/pkg/math"
)

func parseMTLString(t *testing.T, dir, src string) *MaterialLibrary {
	t.Helper()
	lib, err := ParseMTL(strings.NewReader(src), dir)
	if err != nil {
		t.Fatalf("ParseMTL failed: %v", err)
	}
	return lib
}

func TestNewMaterial_Defaults(t *testing.T) {
	m := NewMaterial("x")
	if m.Name != "x" {
		t.Errorf("name = %q", m.Name)
	}
	if m.Colors[ColorDiffuse] != vmath.Splat(1) || m.Colors[ColorSpecular] != vmath.Splat(0.125) {
		t.Errorf("unexpected default colors %v", m.Colors)
	}
	if m.Values[ValueShininess] != 10 || m.Values[ValueRefractiveIndex] != 1 {
		t.Errorf("unexpected default values %v", m.Values)
	}
	for slot, tex := range m.Textures {
		if tex.Enabled || tex.Path != "" {
			t.Errorf("texture slot %s enabled by default", TextureSlot(slot))
		}
	}
	if m.CubeMap.Enabled {
		t.Error("cube map enabled by default")
	}
}

func TestParseMTL_Attributes(t *testing.T) {
	dir := t.TempDir()
	lib := parseMTLString(t, dir, `
# exported
newmtl Brass
Ka 0.1 0.2 0.3
KD 0.5
Ks 1 1 1
Tf 0.9 0.8 0.7
Ns 96
Ni 1.45
Pr 0.6
Pm 0.9
map_Kd textures/brass diffuse.png
MAP_BUMP normal.png
disp /abs/height.png
`)

	if len(lib.Materials) != 1 {
		t.Fatalf("expected 1 material, got %d", len(lib.Materials))
	}
	m := lib.Materials[0]
	if m.Name != "Brass" {
		t.Errorf("name = %q", m.Name)
	}

	colors := []struct {
		attr ColorAttr
		want vmath.Vec3
	}{
		{ColorAmbient, vmath.Vec3{X: 0.1, Y: 0.2, Z: 0.3}},
		{ColorDiffuse, vmath.Splat(0.5)},
		{ColorSpecular, vmath.Splat(1)},
		{ColorTransparency, vmath.Vec3{X: 0.9, Y: 0.8, Z: 0.7}},
	}
	for _, tc := range colors {
		if !nearVec3(m.Colors[tc.attr], tc.want) {
			t.Errorf("%s = %v, want %v", tc.attr, m.Colors[tc.attr], tc.want)
		}
	}

	values := []struct {
		attr ValueAttr
		want float32
	}{
		{ValueShininess, 96},
		{ValueRefractiveIndex, 1.45},
		{ValueRoughness, 0.6},
		{ValueMetalness, 0.9},
	}
	for _, tc := range values {
		if !near(m.Values[tc.attr], tc.want) {
			t.Errorf("%s = %v, want %v", tc.attr, m.Values[tc.attr], tc.want)
		}
	}

	textures := []struct {
		slot TextureSlot
		want string
	}{
		{TextureDiffuse, filepath.Join(dir, "textures/brass diffuse.png")},
		{TextureNormal, filepath.Join(dir, "normal.png")},
		{TextureDisplacement, "/abs/height.png"},
	}
	for _, tc := range textures {
		tex := m.Textures[tc.slot]
		if !tex.Enabled || tex.Path != tc.want {
			t.Errorf("%s texture = %+v, want %q", tc.slot, tex, tc.want)
		}
	}
	if m.Textures[TextureAmbient].Enabled {
		t.Error("ambient texture should stay disabled")
	}
	if lib.Textures != 3 {
		t.Errorf("expected 3 texture references, got %d", lib.Textures)
	}
}

func TestParseMTL_TextureKeywords(t *testing.T) {
	tests := []struct {
		line string
		slot TextureSlot
	}{
		{"map_Ka amb.png", TextureAmbient},
		{"map_Kd dif.png", TextureDiffuse},
		{"map_Ks spec.png", TextureSpecular},
		{"map_Ns shin.png", TextureShininess},
		{"map_Bump nrm.png", TextureNormal},
		{"bump nrm.png", TextureNormal},
		{"Kn nrm.png", TextureNormal},
		{"BUMP nrm.png", TextureNormal},
		{"disp height.png", TextureDisplacement},
	}
	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			dir := t.TempDir()
			lib := parseMTLString(t, dir, "newmtl a\n"+tc.line+"\n")
			_, file, _ := strings.Cut(tc.line, " ")

			m := lib.Materials[0]
			for slot := TextureSlot(0); slot < TextureSlotCount; slot++ {
				tex := m.Textures[slot]
				if slot != tc.slot {
					if tex.Enabled {
						t.Errorf("%s enabled by %q", slot, tc.line)
					}
					continue
				}
				if !tex.Enabled || tex.Path != filepath.Join(dir, file) {
					t.Errorf("%s texture = %+v, want %q", slot, tex, filepath.Join(dir, file))
				}
			}
			if lib.Textures != 1 {
				t.Errorf("expected 1 texture reference, got %d", lib.Textures)
			}
		})
	}
}

func TestParseMTL_TextureCount(t *testing.T) {
	lib := parseMTLString(t, "", `
newmtl a
map_Ka a.png
map_Kd d.png
map_Ks s.png
map_Ns n.png
newmtl b
map_Bump b1.png
bump b2.png
Kn b3.png
disp h.png
refl -type cube_front f.png
refl -type sphere s.png
`)
	if lib.Textures != 9 {
		t.Errorf("expected 9 texture references, got %d", lib.Textures)
	}
	// Normal map aliases overwrite one another.
	if got := lib.Materials[1].Textures[TextureNormal].Path; got != "b3.png" {
		t.Errorf("normal texture = %q, want b3.png", got)
	}
}

func TestParseMTL_DissolveOrder(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want float32
	}{
		{"d only", "newmtl a\nd 0.75\n", 0.25},
		{"tr only", "newmtl a\nTr 0.4\n", 0.4},
		{"d then tr", "newmtl a\nd 0.75\nTr 0.6\n", 0.6},
		{"tr then d", "newmtl a\nTr 0.6\nd 0.75\n", 0.25},
		{"d with halo", "newmtl a\nd -halo 0.5\n", 0.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lib := parseMTLString(t, "", tc.src)
			got := lib.Materials[0].Values[ValueTransparency]
			if !near(got, tc.want) {
				t.Errorf("transparency = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseMTL_CubeMapFlush(t *testing.T) {
	dir := t.TempDir()
	lib := parseMTLString(t, dir, `
newmtl first
refl -type cube_right r.png
refl -type cube_left l.png
refl -type cube_top t.png
refl -type cube_bottom b.png
refl -type cube_front f.png
refl -type cube_back k.png
newmtl second
Kd 1 0 0
newmtl third
REFL -type cube_top sky top.png
`)

	if len(lib.Materials) != 3 {
		t.Fatalf("expected 3 materials, got %d", len(lib.Materials))
	}

	first := lib.Materials[0].CubeMap
	if !first.Enabled {
		t.Fatal("first material should own the cube map")
	}
	if first.Paths[CubeRight] != filepath.Join(dir, "r.png") || first.Paths[CubeBack] != filepath.Join(dir, "k.png") {
		t.Errorf("first cube map paths = %v", first.Paths)
	}

	if lib.Materials[1].CubeMap.Enabled {
		t.Error("second material declared no cube map")
	}

	third := lib.Materials[2].CubeMap
	if !third.Enabled {
		t.Fatal("cube map pending at end of file should be flushed")
	}
	if third.Paths[CubeTop] != filepath.Join(dir, "sky top.png") {
		t.Errorf("third top face = %q", third.Paths[CubeTop])
	}
	if third.Paths[CubeRight] != "" {
		t.Errorf("faces must not leak between materials, got %q", third.Paths[CubeRight])
	}
	if lib.Textures != 7 {
		t.Errorf("expected 7 texture references, got %d", lib.Textures)
	}
}

func TestParseMTL_UnsupportedReflection(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"sphere", "refl -type sphere env.png"},
		{"upper case side", "refl -type CUBE_TOP top.png"},
		{"mixed case side", "refl -type cube_Right right.png"},
		{"missing path", "refl -type"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lib := parseMTLString(t, "", "newmtl a\n"+tc.line+"\n")
			if lib.Materials[0].CubeMap.Enabled {
				t.Errorf("%q must not enable the cube map", tc.line)
			}
			if lib.Textures != 0 {
				t.Errorf("expected no texture references, got %d", lib.Textures)
			}
		})
	}
}

func TestParseMTL_DirectivesBeforeNewmtl(t *testing.T) {
	lib := parseMTLString(t, "", "Kd 1 0 0\nmap_Kd a.png\nnewmtl a\n")
	if len(lib.Materials) != 1 {
		t.Fatalf("expected 1 material, got %d", len(lib.Materials))
	}
	if lib.Materials[0].Colors[ColorDiffuse] != vmath.Splat(1) {
		t.Error("directive before newmtl must be ignored")
	}
	if lib.Textures != 0 {
		t.Errorf("expected no texture references, got %d", lib.Textures)
	}
}

func TestParseMTL_SpectralColorIgnored(t *testing.T) {
	lib := parseMTLString(t, "", "newmtl a\nKd spectral file.rfl\nKa xyz 1 1 1\n")
	m := lib.Materials[0]
	if m.Colors[ColorDiffuse] != vmath.Splat(1) || m.Colors[ColorAmbient] != vmath.Splat(0) {
		t.Errorf("non-RGB color forms must be ignored, got %v", m.Colors)
	}
}

func TestParseMTL_Lookup(t *testing.T) {
	lib := parseMTLString(t, "", "newmtl a\nnewmtl b\nnewmtl a\n")
	if got := lib.Lookup("a"); got != 0 {
		t.Errorf("Lookup(a) = %d, want first match 0", got)
	}
	if got := lib.Lookup("b"); got != 1 {
		t.Errorf("Lookup(b) = %d, want 1", got)
	}
	if got := lib.Lookup("c"); got != -1 {
		t.Errorf("Lookup(c) = %d, want -1", got)
	}
}

func TestLoadMTL_MissingFile(t *testing.T) {
	_, err := LoadMTL(filepath.Join(t.TempDir(), "none.mtl"))
	if !errors.Is(err, ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
}

func TestLoadMTL_SetsPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lib.mtl", "newmtl a\nmap_Ka a.png\n")
	lib, err := LoadMTL(path)
	if err != nil {
		t.Fatalf("LoadMTL failed: %v", err)
	}
	if lib.Path != path {
		t.Errorf("path = %q, want %q", lib.Path, path)
	}
	if got := lib.Materials[0].Textures[TextureAmbient].Path; got != filepath.Join(dir, "a.png") {
		t.Errorf("texture path = %q", got)
	}
}
