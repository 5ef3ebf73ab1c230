package output

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{12, 34, 56, 255})
	return img
}

func samePixels(t *testing.T, want *image.RGBA, got image.Image) {
	t.Helper()
	if got.Bounds().Dx() != want.Bounds().Dx() || got.Bounds().Dy() != want.Bounds().Dy() {
		t.Fatalf("Expected bounds %v, got %v", want.Bounds(), got.Bounds())
	}
	for y := 0; y < want.Bounds().Dy(); y++ {
		for x := 0; x < want.Bounds().Dx(); x++ {
			wr, wg, wb, _ := want.At(x, y).RGBA()
			gr, gg, gb, _ := got.At(got.Bounds().Min.X+x, got.Bounds().Min.Y+y).RGBA()
			if wr != gr || wg != gg || wb != gb {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", x, y, want.At(x, y), got.At(x, y))
			}
		}
	}
}

func TestWritePPM(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, testImage()); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	expected := "P3\n2 2\n255\n255 0 0\n0 255 0\n0 0 255\n12 34 56\n"
	if buf.String() != expected {
		t.Errorf("Unexpected PPM output:\n%s", buf.String())
	}
}

func TestReadPPM(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "P3\n1 1\n255\n1 2 3\n", false},
		{"extra whitespace", "P3 1 1 255   1\t2\n3", false},
		{"binary magic", "P6\n1 1\n255\n", true},
		{"truncated", "P3\n2 1\n255\n1 2 3\n", true},
		{"out of range", "P3\n1 1\n255\n1 2 300\n", true},
		{"wrong max", "P3\n1 1\n15\n1 2 3\n", true},
		{"huge dimensions", "P3\n3000000000 3000000000 255\n", true},
		{"width over limit", "P3\n16385 1 255\n1 2 3\n", true},
		{"negative height", "P3\n1 -1 255\n", true},
		{"large header truncated", "P3\n16384 16384 255\n1 2 3\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ReadPPM(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				if img != nil {
					t.Error("Expected no image on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if c := img.RGBAAt(0, 0); c != (color.RGBA{1, 2, 3, 255}) {
				t.Errorf("Expected (1,2,3), got %v", c)
			}
		})
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, testImage()); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	samePixels(t, testImage(), decoded)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"frame.ppm", "frame.png", "nested/dir/frame.PNG"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, testImage()); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			samePixels(t, testImage(), loaded)
		})
	}
}

func TestSave_UnsupportedFormat(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "frame.jpg"), testImage())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := Load("frame.exr"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat from Load, got %v", err)
	}
}

func TestReadPPM_OversizedHeader(t *testing.T) {
	_, err := ReadPPM(strings.NewReader("P3\n3000000000 3000000000 255\n"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}
