package material

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ErrUnknownColor is returned by NamedColor for names outside the SVG palette
var ErrUnknownColor = errors.New("material: unknown color name")

// NamedColor returns the albedo for an SVG 1.1 color keyword such as
// "steelblue". Components are scaled to [0, 1] without linearization.
func NamedColor(name string) (core.Color, error) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return core.Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return core.NewVec3(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255), nil
}

// MustNamedColor is NamedColor for compile-time constant names
func MustNamedColor(name string) core.Color {
	c, err := NamedColor(name)
	if err != nil {
		panic(err)
	}
	return c
}

// ColorNames lists the accepted color names in sorted order
func ColorNames() []string {
	names := make([]string, 0, len(colornames.Names))
	names = append(names, colornames.Names...)
	sort.Strings(names)
	return names
}
