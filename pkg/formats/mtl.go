package formats

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/pkg/math"
)

var mtlColors = map[string]ColorAttr{
	"ka": ColorAmbient,
	"kd": ColorDiffuse,
	"ks": ColorSpecular,
	"tf": ColorTransparency,
}

var mtlTextures = map[string]TextureSlot{
	"map_ka":   TextureAmbient,
	"map_kd":   TextureDiffuse,
	"map_ks":   TextureSpecular,
	"map_ns":   TextureShininess,
	"map_bump": TextureNormal,
	"bump":     TextureNormal,
	"kn":       TextureNormal,
	"disp":     TextureDisplacement,
}

var mtlCubeFaces = map[string]CubeFace{
	"cube_right":  CubeRight,
	"cube_left":   CubeLeft,
	"cube_top":    CubeTop,
	"cube_bottom": CubeBottom,
	"cube_front":  CubeFront,
	"cube_back":   CubeBack,
}

// LoadMTL parses the material library at path. Texture paths are resolved
// relative to the library's directory.
func LoadMTL(path string, opts ...Option) (*MaterialLibrary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	defer f.Close()

	lib, err := ParseMTL(f, filepath.Dir(path), opts...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	lib.Path = path
	return lib, nil
}

// ParseMTL parses a material library from r. dir is the directory texture
// paths are relative to.
func ParseMTL(r io.Reader, dir string, opts ...Option) (*MaterialLibrary, error) {
	p := &mtlParser{
		lib:     &MaterialLibrary{},
		dir:     dir,
		current: -1,
		log:     buildOptions(opts).log,
	}

	lr := newLineReader(r)
	for lr.next() {
		p.directive(lr)
	}
	if err := lr.err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lr.line, err)
	}
	p.flushCubeMap()
	return p.lib, nil
}

type mtlParser struct {
	lib     *MaterialLibrary
	dir     string
	current int
	log     *zap.Logger

	cube        [CubeFaceCount]string
	cubePending bool
}

func (p *mtlParser) directive(lr *lineReader) {
	keyword := strings.ToLower(lr.directive)
	if keyword == "newmtl" {
		// Pending cube faces describe the material they followed.
		p.flushCubeMap()
		p.lib.Materials = append(p.lib.Materials, NewMaterial(lr.rest))
		p.current = len(p.lib.Materials) - 1
		return
	}

	if p.current < 0 {
		p.log.Debug("mtl directive before newmtl", zap.String("directive", lr.directive), zap.Int("line", lr.line))
		return
	}
	m := &p.lib.Materials[p.current]

	if attr, ok := mtlColors[keyword]; ok {
		if c, ok := parseColor(lr.fields()); ok {
			m.Colors[attr] = c
		}
		return
	}
	if slot, ok := mtlTextures[keyword]; ok {
		m.SetTexture(slot, resolvePath(p.dir, lr.rest))
		p.lib.Textures++
		return
	}

	switch keyword {
	case "ns":
		p.setValue(m, ValueShininess, lr, false)
	case "d":
		p.setValue(m, ValueTransparency, lr, true)
	case "tr":
		p.setValue(m, ValueTransparency, lr, false)
	case "ni":
		p.setValue(m, ValueRefractiveIndex, lr, false)
	case "pr":
		p.setValue(m, ValueRoughness, lr, false)
	case "pm":
		p.setValue(m, ValueMetalness, lr, false)
	case "refl":
		p.reflection(lr)
	}
}

// setValue stores the last number on the line. Dissolve ("d") is opacity,
// stored as transparency 1-d.
func (p *mtlParser) setValue(m *Material, attr ValueAttr, lr *lineReader, invert bool) {
	tokens := lr.fields()
	if len(tokens) == 0 {
		return
	}
	f, err := strconv.ParseFloat(tokens[len(tokens)-1], 32)
	if err != nil {
		return
	}
	v := float32(f)
	if invert {
		v = 1 - v
	}
	m.Values[attr] = v
}

// reflection handles "refl -type cube_<side> <path>". Only the keyword is
// case-folded; side tokens must be lower case. Other reflection types are
// ignored.
func (p *mtlParser) reflection(lr *lineReader) {
	tokens, path := cutFields(lr.rest, 2)
	if len(tokens) < 2 {
		return
	}
	face, ok := mtlCubeFaces[tokens[1]]
	if !ok {
		return
	}
	p.cube[face] = resolvePath(p.dir, path)
	p.cubePending = true
	p.lib.Textures++
}

func (p *mtlParser) flushCubeMap() {
	if !p.cubePending {
		return
	}
	if p.current >= 0 {
		p.lib.Materials[p.current].SetCubeMap(p.cube)
	}
	p.cube = [CubeFaceCount]string{}
	p.cubePending = false
}

// parseColor reads "r g b" or a single gray value. Spectral and XYZ forms
// are not numbers and are rejected.
func parseColor(tokens []string) (math.Vec3, bool) {
	if len(tokens) == 0 {
		return math.Vec3{}, false
	}
	if _, err := strconv.ParseFloat(tokens[0], 32); err != nil {
		return math.Vec3{}, false
	}
	if len(tokens) < 3 {
		var v [1]float32
		parseFloats(tokens, v[:])
		return math.Splat(v[0]), true
	}
	var rgb [3]float32
	parseFloats(tokens, rgb[:])
	return math.Vec3{X: rgb[0], Y: rgb[1], Z: rgb[2]}, true
}

// cutFields splits off the first n whitespace-separated tokens of s and
// returns them with the untouched remainder.
func cutFields(s string, n int) ([]string, string) {
	tokens := make([]string, 0, n)
	for len(tokens) < n {
		s = strings.TrimLeft(s, trailingSpace)
		if s == "" {
			break
		}
		end := strings.IndexAny(s, trailingSpace)
		if end < 0 {
			tokens = append(tokens, s)
			s = ""
			break
		}
		tokens = append(tokens, s[:end])
		s = s[end:]
	}
	return tokens, strings.TrimLeft(s, trailingSpace)
}

// resolvePath joins a file reference to the directory of the file that
// mentions it. Absolute references are kept.
func resolvePath(dir, ref string) string {
	if ref == "" || filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(dir, ref)
}
