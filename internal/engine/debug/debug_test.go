package debug

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/webp"

	"github.com/Faultbox/objviewer/internal/engine/picking"
	"github.com/Faultbox/objviewer/pkg/math"
)

func TestBoxLines(t *testing.T) {
	box := picking.NewAABB(math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{X: -1, Y: -2, Z: -3})
	v := BoxLines(box)
	if len(v) != BoxLineVertexCount*3 {
		t.Fatalf("len = %d, want %d", len(v), BoxLineVertexCount*3)
	}

	// Every edge runs along exactly one axis and spans the full box.
	var total [3]float32
	for i := 0; i < len(v); i += 6 {
		d := [3]float32{v[i+3] - v[i], v[i+4] - v[i+1], v[i+5] - v[i+2]}
		axes := 0
		for k, c := range d {
			if c != 0 {
				axes++
				total[k] += c
			}
		}
		if axes != 1 {
			t.Errorf("edge %d is not axis aligned: %v", i/6, d)
		}
	}
	if want := [3]float32{8, 16, 24}; total != want {
		t.Errorf("edge lengths per axis = %v, want %v", total, want)
	}
}

func TestPad(t *testing.T) {
	box := Pad(picking.AABB{Max: math.Splat(1)}, 0.5)
	if box.Min != math.Splat(-0.5) || box.Max != math.Splat(1.5) {
		t.Errorf("Pad = %v", box)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatPNG, false},
		{"png", FormatPNG, false},
		{".PNG", FormatPNG, false},
		{"webp", FormatWebP, false},
		{".webp", FormatWebP, false},
		{"jpg", "", true},
	}
	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseFormat(%q) error = %v", tc.in, err)
			continue
		}
		if tc.wantErr && !errors.Is(err, ErrFormat) {
			t.Errorf("ParseFormat(%q) error = %v, want ErrFormat", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFromPixels(t *testing.T) {
	// Two rows, bottom row first as OpenGL returns them.
	pixels := []byte{
		0, 0, 255, 255, // bottom: blue
		255, 0, 0, 255, // top: red
	}
	img, err := FromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("top = %v, want red", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("bottom = %v, want blue", got)
	}

	if _, err := FromPixels(pixels, 2, 2); err == nil {
		t.Error("expected a size mismatch error")
	}
	if _, err := FromPixels(nil, 0, 0); err == nil {
		t.Error("expected an error for an empty image")
	}
}

func gradient() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 80), B: 10, A: 255})
		}
	}
	return img
}

func sameImage(t *testing.T, got image.Image, want *image.RGBA) {
	t.Helper()
	if got.Bounds() != want.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), want.Bounds())
	}
	for y := 0; y < want.Bounds().Dy(); y++ {
		for x := 0; x < want.Bounds().Dx(); x++ {
			r, g, b, a := got.At(x, y).RGBA()
			w := want.RGBAAt(x, y)
			if uint8(r>>8) != w.R || uint8(g>>8) != w.G || uint8(b>>8) != w.B || uint8(a>>8) != w.A {
				t.Fatalf("pixel (%d,%d) = %d %d %d %d, want %v", x, y, r>>8, g>>8, b>>8, a>>8, w)
			}
		}
	}
}

func TestEncode(t *testing.T) {
	src := gradient()

	t.Run("png", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Encode(&buf, src, FormatPNG); err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			t.Fatal(err)
		}
		sameImage(t, img, src)
	})

	t.Run("webp", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Encode(&buf, src, FormatWebP); err != nil {
			t.Fatal(err)
		}
		img, err := webp.Decode(&buf)
		if err != nil {
			t.Fatal(err)
		}
		sameImage(t, img, src)
	})

	t.Run("unknown", func(t *testing.T) {
		if err := Encode(&bytes.Buffer{}, src, Format("gif")); !errors.Is(err, ErrFormat) {
			t.Errorf("Encode(gif) = %v, want ErrFormat", err)
		}
	})
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "shot.webp")
	if err := Save(path, gradient()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WEBP")) {
		t.Errorf("file does not start with a WebP header: %q", data[:12])
	}

	if err := Save(filepath.Join(dir, "shot.bmp"), gradient()); !errors.Is(err, ErrFormat) {
		t.Errorf("Save(.bmp) = %v, want ErrFormat", err)
	}
}

func TestCapture(t *testing.T) {
	dir := t.TempDir()
	c := NewCapture(dir, "view", FormatPNG)
	c.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

	first, err := c.Save(gradient())
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "view_2024-05-06_07-08-09.png"); first != want {
		t.Errorf("first = %s, want %s", first, want)
	}

	pixels := make([]byte, 2*2*4)
	second, err := c.SavePixels(pixels, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "view_2024-05-06_07-08-09_2.png"); second != want {
		t.Errorf("second = %s, want %s", second, want)
	}
}
