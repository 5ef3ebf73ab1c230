package output

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
)

// MaxPPMDimension bounds the width and height ReadPPM accepts
const MaxPPMDimension = 1 << 14

// Load reads a frame previously written by Save
func Load(path string) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img, err := gg.LoadPNG(path)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		return img, nil
	case ".ppm":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image file: %w", err)
		}
		defer file.Close()
		return ReadPPM(file)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadPPM decodes a plain-text P3 PPM with a maximum value of 255
func ReadPPM(r io.Reader) (*image.RGBA, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return scanner.Text(), nil
	}
	nextInt := func() (int, error) {
		token, err := next()
		if err != nil {
			return 0, err
		}
		var v int
		if _, err := fmt.Sscanf(token, "%d", &v); err != nil {
			return 0, fmt.Errorf("invalid PPM value %q: %w", token, err)
		}
		return v, nil
	}

	magic, err := next()
	if err != nil {
		return nil, err
	}
	if magic != "P3" {
		return nil, fmt.Errorf("%w: magic %q", ErrUnsupportedFormat, magic)
	}

	var header [3]int
	for i := range header {
		if header[i], err = nextInt(); err != nil {
			return nil, err
		}
	}
	width, height, maxValue := header[0], header[1], header[2]
	if width <= 0 || height <= 0 || width > MaxPPMDimension || height > MaxPPMDimension || maxValue != 255 {
		return nil, fmt.Errorf("%w: header %dx%d max %d", ErrUnsupportedFormat, width, height, maxValue)
	}

	// Pixels are buffered as they arrive so a truncated stream never
	// allocates the full frame its header claims
	pixels := make([]color.RGBA, 0, min(width*height, 1<<16))
	for len(pixels) < width*height {
		var rgb [3]int
		for c := range rgb {
			if rgb[c], err = nextInt(); err != nil {
				return nil, err
			}
			if rgb[c] < 0 || rgb[c] > 255 {
				return nil, fmt.Errorf("PPM value %d out of range", rgb[c])
			}
		}
		pixels = append(pixels, color.RGBA{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2]), A: 255})
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for idx, c := range pixels {
		img.SetRGBA(idx%width, idx/width, c)
	}

	return img, nil
}
