package formats

import "github.com/Faultbox/objviewer/pkg/math"

// ColorAttr selects one of a material's colors.
type ColorAttr int

// Material colors.
const (
	ColorAmbient ColorAttr = iota
	ColorDiffuse
	ColorSpecular
	ColorTransparency
	ColorAttrCount
)

var colorNames = [ColorAttrCount]string{"ambient", "diffuse", "specular", "transparency"}

func (a ColorAttr) String() string {
	if a < 0 || a >= ColorAttrCount {
		return "invalid"
	}
	return colorNames[a]
}

// ValueAttr selects one of a material's scalar attributes.
type ValueAttr int

// Material scalar attributes.
const (
	ValueShininess ValueAttr = iota
	ValueRoughness
	ValueMetalness
	ValueTransparency
	ValueDisplacement
	ValueRefractiveIndex
	ValueAttrCount
)

var valueNames = [ValueAttrCount]string{
	"shininess", "roughness", "metalness", "transparency", "displacement", "refractive_index",
}

func (a ValueAttr) String() string {
	if a < 0 || a >= ValueAttrCount {
		return "invalid"
	}
	return valueNames[a]
}

// TextureSlot selects one of a material's 2D textures.
type TextureSlot int

// 2D texture slots, in texture unit order.
const (
	TextureAmbient TextureSlot = iota
	TextureDiffuse
	TextureSpecular
	TextureShininess
	TextureNormal
	TextureDisplacement
	TextureSlotCount
)

var textureNames = [TextureSlotCount]string{
	"ambient", "diffuse", "specular", "shininess", "normal", "displacement",
}

func (s TextureSlot) String() string {
	if s < 0 || s >= TextureSlotCount {
		return "invalid"
	}
	return textureNames[s]
}

// CubeFace is one side of a cube map, in GL face order.
type CubeFace int

// Cube map faces.
const (
	CubeRight CubeFace = iota
	CubeLeft
	CubeTop
	CubeBottom
	CubeFront
	CubeBack
	CubeFaceCount
)

var cubeFaceNames = [CubeFaceCount]string{"right", "left", "top", "bottom", "front", "back"}

func (f CubeFace) String() string {
	if f < 0 || f >= CubeFaceCount {
		return "invalid"
	}
	return cubeFaceNames[f]
}

// Texture is a file reference for one texture slot.
type Texture struct {
	Path    string
	Enabled bool
}

// CubeMap holds the six face images of an environment map.
type CubeMap struct {
	Paths   [CubeFaceCount]string
	Enabled bool
}

// Material is a named set of shading attributes read from an MTL file.
type Material struct {
	Name     string
	Colors   [ColorAttrCount]math.Vec3
	Values   [ValueAttrCount]float32
	Textures [TextureSlotCount]Texture
	CubeMap  CubeMap
}

// DefaultMaterialName names the material synthesized when a model has no
// usable material library.
const DefaultMaterialName = "default"

// NewMaterial returns a material with the viewer's default attributes.
func NewMaterial(name string) Material {
	m := Material{Name: name}
	m.Colors[ColorAmbient] = math.Splat(0)
	m.Colors[ColorDiffuse] = math.Splat(1)
	m.Colors[ColorSpecular] = math.Splat(0.125)
	m.Colors[ColorTransparency] = math.Splat(1)
	m.Values[ValueShininess] = 10
	m.Values[ValueRoughness] = 0.3
	m.Values[ValueMetalness] = 0.1
	m.Values[ValueTransparency] = 0
	m.Values[ValueDisplacement] = 0.05
	m.Values[ValueRefractiveIndex] = 1
	return m
}

// SetTexture assigns a path to a slot. A non-empty path enables the slot.
func (m *Material) SetTexture(slot TextureSlot, path string) {
	m.Textures[slot] = Texture{Path: path, Enabled: path != ""}
}

// SetCubeMap assigns all six face paths and enables the cube map.
func (m *Material) SetCubeMap(paths [CubeFaceCount]string) {
	m.CubeMap = CubeMap{Paths: paths, Enabled: true}
}

// MaterialLibrary is the parsed content of one MTL file.
type MaterialLibrary struct {
	Path      string
	Materials []Material
	// Textures counts texture references, including cube map faces.
	Textures int
}

// Lookup returns the index of the first material with the given name,
// or -1.
func (l *MaterialLibrary) Lookup(name string) int {
	return lookupMaterial(l.Materials, name)
}

func lookupMaterial(stock []Material, name string) int {
	for i := range stock {
		if stock[i].Name == name {
			return i
		}
	}
	return -1
}
