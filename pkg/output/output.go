// Package output encodes rendered frames as PPM or PNG files.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
)

// ErrUnsupportedFormat is returned for file extensions other than .ppm and .png
var ErrUnsupportedFormat = errors.New("output: unsupported image format")

// WritePPM writes img as a plain-text P3 PPM: a header followed by one
// "r g b" triple per line, top row first
func WritePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r>>8, g>>8, b>>8); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// WritePNG writes img as PNG
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG writes img to path as PNG
func SavePNG(path string, img image.Image) error {
	return gg.SavePNG(path, img)
}

// Save writes img to path, choosing the encoder from the extension.
// Missing parent directories are created.
func Save(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".ppm" && ext != ".png" {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if ext == ".png" {
		return SavePNG(path, img)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WritePPM(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return file.Close()
}
