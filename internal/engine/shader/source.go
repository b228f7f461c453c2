package shader

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

//go:embed glsl
var embedded embed.FS

// Defaults holds the built-in GLSL sources.
var Defaults fs.FS = mustSub(embedded, "glsl")

// Built-in programs.
var (
	GeometryPass = Source{Vertex: "geometry.vert", Fragment: "geometry.frag"}
	LightingPass = Source{Vertex: "lighting.vert", Fragment: "lighting.frag"}
	Forward      = Source{Vertex: "forward.vert", Fragment: "forward.frag"}
	BoundingBox  = Source{Vertex: "bbox.vert", Fragment: "bbox.frag"}
)

// ErrSource is returned when a shader file cannot be read.
var ErrSource = errors.New("shader source not found")

// Source names the files of a program's stages. Geometry is optional.
type Source struct {
	Vertex   string `yaml:"vertex"`
	Geometry string `yaml:"geometry"`
	Fragment string `yaml:"fragment"`
}

// Paths returns the non-empty stage paths.
func (s Source) Paths() []string {
	var out []string
	for _, p := range []string{s.Vertex, s.Geometry, s.Fragment} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Code is the GLSL text of each stage.
type Code struct {
	Vertex   string
	Geometry string
	Fragment string
}

// Library reads shader files. Absolute paths are read from disk. Relative
// paths are looked up in Dir first and then in Embedded.
type Library struct {
	Dir      string
	Embedded fs.FS
}

// NewLibrary returns a library over dir with the built-in fallback.
func NewLibrary(dir string) *Library {
	return &Library{Dir: dir, Embedded: Defaults}
}

// Resolve returns the disk path a shader file is read from, or false when
// it comes from the embedded set or does not exist.
func (l *Library) Resolve(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if filepath.IsAbs(name) {
		return name, fileExists(name)
	}
	if l.Dir != "" {
		p := filepath.Join(l.Dir, name)
		if fileExists(p) {
			return p, true
		}
	}
	return "", false
}

// Read returns the text of one shader file.
func (l *Library) Read(name string) (string, error) {
	if p, ok := l.Resolve(name); ok {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrSource, err)
		}
		return string(data), nil
	}
	if l.Embedded != nil && !filepath.IsAbs(name) {
		data, err := fs.ReadFile(l.Embedded, path.Clean(filepath.ToSlash(name)))
		if err == nil {
			return string(data), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrSource, name)
}

// Load reads every stage of src.
func (l *Library) Load(src Source) (Code, error) {
	var code Code
	var err error
	if src.Vertex == "" || src.Fragment == "" {
		return code, fmt.Errorf("%w: vertex and fragment stages are required", ErrSource)
	}
	if code.Vertex, err = l.Read(src.Vertex); err != nil {
		return code, err
	}
	if src.Geometry != "" {
		if code.Geometry, err = l.Read(src.Geometry); err != nil {
			return code, err
		}
	}
	if code.Fragment, err = l.Read(src.Fragment); err != nil {
		return code, err
	}
	return code, nil
}

// DiskPaths returns the files of src that live on disk, for watching.
func (l *Library) DiskPaths(src Source) []string {
	var out []string
	for _, name := range src.Paths() {
		if p, ok := l.Resolve(name); ok {
			out = append(out, p)
		}
	}
	return out
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
