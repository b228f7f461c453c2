package shader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func testLibrary(t *testing.T) *Library {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "custom.frag"), []byte("disk custom"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "base.vert"), []byte("disk base"), 0644); err != nil {
		t.Fatal(err)
	}
	return &Library{
		Dir: dir,
		Embedded: fstest.MapFS{
			"base.vert": {Data: []byte("embedded base")},
			"base.frag": {Data: []byte("embedded frag")},
		},
	}
}

func TestLibrary_Read(t *testing.T) {
	lib := testLibrary(t)

	tests := []struct {
		name string
		want string
	}{
		{"base.vert", "disk base"},     // disk overrides embedded
		{"base.frag", "embedded frag"}, // embedded fallback
		{"custom.frag", "disk custom"},
	}
	for _, tc := range tests {
		got, err := lib.Read(tc.name)
		if err != nil {
			t.Errorf("Read(%s): %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Read(%s) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestLibrary_ReadAbsolute(t *testing.T) {
	lib := testLibrary(t)
	abs := filepath.Join(lib.Dir, "custom.frag")

	got, err := lib.Read(abs)
	if err != nil || got != "disk custom" {
		t.Errorf("Read(abs) = %q, %v", got, err)
	}
}

func TestLibrary_ReadMissing(t *testing.T) {
	lib := testLibrary(t)

	for _, name := range []string{"nope.frag", filepath.Join(lib.Dir, "nope.frag")} {
		if _, err := lib.Read(name); !errors.Is(err, ErrSource) {
			t.Errorf("Read(%s) error = %v, want ErrSource", name, err)
		}
	}
}

func TestLibrary_Load(t *testing.T) {
	lib := testLibrary(t)

	code, err := lib.Load(Source{Vertex: "base.vert", Fragment: "custom.frag"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if code.Vertex != "disk base" || code.Fragment != "disk custom" || code.Geometry != "" {
		t.Errorf("code = %+v", code)
	}
}

func TestLibrary_LoadRequiredStages(t *testing.T) {
	lib := testLibrary(t)

	tests := []Source{
		{Fragment: "base.frag"},
		{Vertex: "base.vert"},
		{},
	}
	for _, src := range tests {
		if _, err := lib.Load(src); !errors.Is(err, ErrSource) {
			t.Errorf("Load(%+v) error = %v, want ErrSource", src, err)
		}
	}
}

func TestLibrary_LoadMissingGeometry(t *testing.T) {
	lib := testLibrary(t)

	_, err := lib.Load(Source{Vertex: "base.vert", Geometry: "missing.geom", Fragment: "base.frag"})
	if !errors.Is(err, ErrSource) {
		t.Errorf("error = %v, want ErrSource", err)
	}
}

func TestLibrary_DiskPaths(t *testing.T) {
	lib := testLibrary(t)

	got := lib.DiskPaths(Source{Vertex: "base.vert", Fragment: "base.frag"})
	if len(got) != 1 || got[0] != filepath.Join(lib.Dir, "base.vert") {
		t.Errorf("DiskPaths = %v", got)
	}
}

func TestSource_Paths(t *testing.T) {
	src := Source{Vertex: "a.vert", Fragment: "a.frag"}
	if got := src.Paths(); len(got) != 2 || got[0] != "a.vert" || got[1] != "a.frag" {
		t.Errorf("Paths = %v", got)
	}
}

func TestDefaults_BuiltinPrograms(t *testing.T) {
	lib := NewLibrary("")

	for _, src := range []Source{GeometryPass, LightingPass, Forward, BoundingBox} {
		code, err := lib.Load(src)
		if err != nil {
			t.Errorf("Load(%+v): %v", src, err)
			continue
		}
		if !strings.HasPrefix(code.Vertex, "#version") || !strings.HasPrefix(code.Fragment, "#version") {
			t.Errorf("%+v: missing #version header", src)
		}
	}
}

func TestDefaults_UniformNames(t *testing.T) {
	lib := NewLibrary("")
	code, err := lib.Load(GeometryPass)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"model_mat", "normal_mat", "view_mat", "projection_mat", "diffuse_tex", "normal_tex", "cube_map_tex"} {
		if !strings.Contains(code.Vertex+code.Fragment, name) {
			t.Errorf("geometry pass lacks uniform %s", name)
		}
	}

	code, err = lib.Load(LightingPass)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"u_light_type", "u_light_direction", "u_light_cutoff", "u_shininess"} {
		if !strings.Contains(code.Fragment, name) {
			t.Errorf("lighting pass lacks uniform %s", name)
		}
	}
}
