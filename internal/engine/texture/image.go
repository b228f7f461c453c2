// Package texture decodes image files and uploads them as GL textures.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/ftrvxmtrx/tga"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ErrNotImage is returned for files that are not a supported image.
var ErrNotImage = errors.New("texture: not an image")

// sniffLen is the number of leading bytes filetype needs to match.
const sniffLen = 262

// decoders by the extension filetype reports.
var decoders = map[string]func(io.Reader) (image.Image, error){
	"png":  png.Decode,
	"jpg":  jpeg.Decode,
	"gif":  gif.Decode,
	"bmp":  bmp.Decode,
	"tif":  tiff.Decode,
	"webp": webp.Decode,
	"tga":  tga.Decode,
}

// Decode decodes an image. TGA data has no signature and is recognised by
// the extension of name.
func Decode(data []byte, name string) (image.Image, error) {
	format, err := sniff(data, name)
	if err != nil {
		return nil, err
	}
	img, err := decoders[format](bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s as %s: %w", name, format, err)
	}
	return img, nil
}

func sniff(data []byte, name string) (string, error) {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	kind, _ := filetype.Match(head)
	if kind == filetype.Unknown {
		if strings.EqualFold(filepath.Ext(name), ".tga") {
			return "tga", nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotImage, name)
	}
	if _, ok := decoders[kind.Extension]; !ok {
		return "", fmt.Errorf("%w: %s is %s", ErrNotImage, name, kind.MIME.Value)
	}
	return kind.Extension, nil
}

// ToRGBA converts any image to *image.RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Fit downscales img so neither side exceeds maxSize, keeping the aspect
// ratio. A non-positive maxSize disables the limit.
func Fit(img *image.RGBA, maxSize int) *image.RGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// Prepare converts and downscales an image. flip reverses the rows into
// the bottom first order of 2D GL textures.
func Prepare(img image.Image, maxSize int, flip bool) *image.RGBA {
	rgba := Fit(ToRGBA(img), maxSize)
	if flip {
		return transform.FlipV(rgba)
	}
	return rgba
}

// Load reads and prepares an image file for upload.
func Load(path string, maxSize int, flip bool) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	img, err := Decode(data, path)
	if err != nil {
		return nil, err
	}
	return Prepare(img, maxSize, flip), nil
}

// Solid returns a 1×1 image of c.
func Solid(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return img
}
