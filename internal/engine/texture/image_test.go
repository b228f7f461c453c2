package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/objviewer/pkg/formats"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// twoRows returns a 1×2 image with a red top row and a blue bottom row.
func twoRows() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(0, 1, blue)
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecode_PNG(t *testing.T) {
	img, err := Decode(encodePNG(t, twoRows()), "rows.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 2 {
		t.Errorf("bounds = %v", b)
	}
}

func TestDecode_BMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, twoRows()); err != nil {
		t.Fatal(err)
	}
	// The extension does not matter for formats with a signature.
	img, err := Decode(buf.Bytes(), "rows.dat")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := ToRGBA(img).RGBAAt(0, 0); got != red {
		t.Errorf("top pixel = %v, want red", got)
	}
}

func TestDecode_TGA(t *testing.T) {
	// Uncompressed 24-bit, 2×1, top-left origin, BGR pixels.
	header := []byte{0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 0, 1, 0, 24, 0x20}
	pixels := []byte{0, 0, 255, 255, 0, 0}
	data := append(header, pixels...)

	img, err := Decode(data, "pixels.TGA")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	rgba := ToRGBA(img)
	if b := rgba.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Fatalf("bounds = %v", b)
	}
	if rgba.RGBAAt(0, 0) != red || rgba.RGBAAt(1, 0) != blue {
		t.Errorf("pixels = %v, %v", rgba.RGBAAt(0, 0), rgba.RGBAAt(1, 0))
	}
}

func TestDecode_NotImage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"notes.txt", []byte("just some text")},
		{"archive.png", []byte("PK\x03\x04\x14\x00\x00\x00\x08\x00")},
	}
	for _, tc := range tests {
		if _, err := Decode(tc.data, tc.name); !errors.Is(err, ErrNotImage) {
			t.Errorf("Decode(%s) = %v, want ErrNotImage", tc.name, err)
		}
	}
}

func TestDecode_Corrupt(t *testing.T) {
	data := encodePNG(t, twoRows())
	_, err := Decode(data[:len(data)/2], "cut.png")
	if err == nil || errors.Is(err, ErrNotImage) {
		t.Errorf("Decode(truncated) = %v, want a decode error", err)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, max   int
		wantW, wantH int
	}{
		{400, 200, 100, 100, 50},
		{200, 400, 100, 50, 100},
		{1000, 1, 100, 100, 1},
		{10, 10, 100, 10, 10},
		{500, 500, 0, 500, 500},
	}
	for _, tc := range tests {
		img := image.NewRGBA(image.Rect(0, 0, tc.w, tc.h))
		got := Fit(img, tc.max).Bounds()
		if got.Dx() != tc.wantW || got.Dy() != tc.wantH {
			t.Errorf("Fit(%dx%d, %d) = %dx%d, want %dx%d", tc.w, tc.h, tc.max, got.Dx(), got.Dy(), tc.wantW, tc.wantH)
		}
	}
}

func TestToRGBA_Offset(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.Set(5, 5, red)

	got := ToRGBA(src)
	if got.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if got.RGBAAt(0, 0) != red {
		t.Errorf("pixel = %v, want red", got.RGBAAt(0, 0))
	}
}

func TestPrepare_Flip(t *testing.T) {
	flipped := Prepare(twoRows(), 0, true)
	if flipped.RGBAAt(0, 0) != blue || flipped.RGBAAt(0, 1) != red {
		t.Errorf("flipped rows = %v, %v", flipped.RGBAAt(0, 0), flipped.RGBAAt(0, 1))
	}

	kept := Prepare(twoRows(), 0, false)
	if kept.RGBAAt(0, 0) != red {
		t.Errorf("unflipped top = %v", kept.RGBAAt(0, 0))
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.png")
	if err := os.WriteFile(path, encodePNG(t, twoRows()), 0644); err != nil {
		t.Fatal(err)
	}

	img, err := Load(path, 4096, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.RGBAAt(0, 0) != blue {
		t.Errorf("first row = %v, want the bottom row", img.RGBAAt(0, 0))
	}

	if _, err := Load(filepath.Join(dir, "missing.png"), 0, true); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDefaultColor(t *testing.T) {
	tests := []struct {
		slot formats.TextureSlot
		want color.RGBA
	}{
		{formats.TextureAmbient, white},
		{formats.TextureDiffuse, white},
		{formats.TextureSpecular, white},
		{formats.TextureShininess, white},
		{formats.TextureNormal, color.RGBA{R: 128, G: 128, B: 255, A: 255}},
		{formats.TextureDisplacement, black},
	}
	for _, tc := range tests {
		if got := DefaultColor(tc.slot); got != tc.want {
			t.Errorf("DefaultColor(%v) = %v, want %v", tc.slot, got, tc.want)
		}
	}
	if DefaultCubeColor() != white {
		t.Error("default cube map must be white")
	}
}

func TestSolid(t *testing.T) {
	img := Solid(red)
	if img.Bounds().Dx() != 1 || img.RGBAAt(0, 0) != red {
		t.Errorf("Solid = %v", img.RGBAAt(0, 0))
	}
}
