package texture

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/pkg/formats"
)

// Upload creates a 2D texture from img.
func Upload(img *image.RGBA, mipmaps bool) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	if mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	return id
}

// UploadCube creates a cube map from six faces in GL face order. Cube maps
// keep their rows top first, so faces are expected unflipped.
func UploadCube(faces [formats.CubeFaceCount]*image.RGBA) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for i, img := range faces {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA,
			int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	return id
}

// Delete releases texture names. Zero names are skipped.
func Delete(ids ...uint32) {
	for _, id := range ids {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
	}
}

// Defaults are the textures bound to slots without an enabled image.
type Defaults struct {
	Slots [formats.TextureSlotCount]uint32
	Cube  uint32
}

// NewDefaults uploads the default 1×1 textures.
func NewDefaults() *Defaults {
	d := &Defaults{}
	for slot := range d.Slots {
		d.Slots[slot] = Upload(Solid(DefaultColor(formats.TextureSlot(slot))), false)
	}
	var faces [formats.CubeFaceCount]*image.RGBA
	for i := range faces {
		faces[i] = Solid(DefaultCubeColor())
	}
	d.Cube = UploadCube(faces)
	return d
}

// Release deletes the default textures.
func (d *Defaults) Release() {
	Delete(d.Slots[:]...)
	Delete(d.Cube)
	*d = Defaults{}
}

// Cache shares uploaded textures by path.
type Cache struct {
	maxSize int
	mipmaps bool
	entries map[string]uint32
	failed  map[string]bool
	log     *zap.Logger
}

// NewCache creates a cache that limits images to maxSize pixels per side.
func NewCache(maxSize int, mipmaps bool, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		maxSize: maxSize,
		mipmaps: mipmaps,
		entries: make(map[string]uint32),
		failed:  make(map[string]bool),
		log:     log,
	}
}

// Get returns the texture for path, loading it on first use. Files that
// fail to load are logged once and report false until Forget is called.
func (c *Cache) Get(path string) (uint32, bool) {
	if id, ok := c.entries[path]; ok {
		return id, true
	}
	if c.failed[path] {
		return 0, false
	}
	img, err := Load(path, c.maxSize, true)
	if err != nil {
		c.failed[path] = true
		c.log.Warn("texture not loaded", zap.String("path", path), zap.Error(err))
		return 0, false
	}
	id := Upload(img, c.mipmaps)
	c.entries[path] = id
	c.log.Debug("texture loaded", zap.String("path", path), zap.Uint32("id", id),
		zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))
	return id, true
}

// GetCube loads a cube map from six face paths. The result is not cached.
func (c *Cache) GetCube(paths [formats.CubeFaceCount]string) (uint32, bool) {
	var faces [formats.CubeFaceCount]*image.RGBA
	for i, p := range paths {
		img, err := Load(p, c.maxSize, false)
		if err != nil {
			c.log.Warn("cube map face not loaded", zap.String("path", p), zap.Stringer("face", formats.CubeFace(i)), zap.Error(err))
			return 0, false
		}
		faces[i] = img
	}
	return UploadCube(faces), true
}

// Forget drops path so the next Get reloads it.
func (c *Cache) Forget(path string) {
	if id, ok := c.entries[path]; ok {
		Delete(id)
		delete(c.entries, path)
	}
	delete(c.failed, path)
}

// Release deletes every cached texture.
func (c *Cache) Release() {
	for path, id := range c.entries {
		Delete(id)
		delete(c.entries, path)
	}
	clear(c.failed)
}
