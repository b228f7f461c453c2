package debug

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

// Format is a screenshot image encoding.
type Format string

// Supported screenshot formats.
const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// ErrFormat is returned for an unsupported screenshot format.
var ErrFormat = errors.New("unsupported screenshot format")

// ParseFormat returns the format named s. An empty name selects PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, s)
}

// Ext returns the file extension of the format, with the dot.
func (f Format) Ext() string { return "." + string(f) }

// Encode writes img to w. WebP output is lossless.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatWebP:
		return nativewebp.Encode(w, img, nil)
	}
	return fmt.Errorf("%w: %q", ErrFormat, string(f))
}

// FromPixels builds an image from RGBA rows read back from OpenGL. The
// image is flipped vertically since OpenGL has origin at bottom-left.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// Save writes img to path in the format given by its extension.
func Save(path string, img image.Image) error {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := Encode(file, img, f); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", f, err)
	}
	return file.Close()
}

// Capture writes timestamped screenshots into a directory.
type Capture struct {
	dir    string
	prefix string
	format Format
	now    func() time.Time
}

// NewCapture creates a screenshot writer.
func NewCapture(dir, prefix string, format Format) *Capture {
	if prefix == "" {
		prefix = "screenshot"
	}
	return &Capture{dir: dir, prefix: prefix, format: format, now: time.Now}
}

// Filename returns the path of the next screenshot. A numeric suffix is
// added when a file with the same timestamp exists.
func (c *Capture) Filename() string {
	base := fmt.Sprintf("%s_%s", c.prefix, c.now().Format("2006-01-02_15-04-05"))
	name := filepath.Join(c.dir, base+c.format.Ext())
	for i := 2; fileExists(name); i++ {
		name = filepath.Join(c.dir, fmt.Sprintf("%s_%d%s", base, i, c.format.Ext()))
	}
	return name
}

// Save writes img and returns its path.
func (c *Capture) Save(img image.Image) (string, error) {
	name := c.Filename()
	if err := Save(name, img); err != nil {
		return "", err
	}
	return name, nil
}

// SavePixels writes OpenGL read-back pixels and returns the path.
func (c *Capture) SavePixels(pixels []byte, width, height int) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return c.Save(img)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
