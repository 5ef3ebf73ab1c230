package scene

import (
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// gridPalette is the albedo set for the small diffuse and metal spheres
var gridPalette = []string{
	"tomato", "gold", "mediumseagreen", "steelblue", "orchid", "coral",
	"turquoise", "slateblue", "khaki", "sienna", "lightpink", "olivedrab",
	"silver", "indianred", "teal", "goldenrod",
}

// NewSphereGridScene creates the cover scene: a field of small random
// spheres around three large ones. The layout depends only on seed.
func NewSphereGridScene(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 3.0 / 2.0,
	}
	config := renderer.DefaultConfig()
	config.Width = 600
	config.Height = 400
	config.SamplesPerPixel = 50
	config.Seed = seed

	s := newScene("sphere-grid", cameraConfig, config, cameraOverrides)
	s.SetGround(core.NewVec3(0, -1000, 0), 1000, material.MustNamedColor("gray"))

	random := rand.New(rand.NewSource(seed))
	pick := func() core.Color {
		return material.MustNamedColor(gridPalette[random.Intn(len(gridPalette))])
	}

	keepOut := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(keepOut).Length() <= 0.9 {
				continue
			}

			var m material.Material
			switch chooseMat := random.Float64(); {
			case chooseMat < 0.8:
				m = material.NewLambertian(pick().MultiplyVec(pick()))
			case chooseMat < 0.95:
				// Lighten toward white so metals stay reflective
				albedo := pick().Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5))
				m = material.NewMetal(albedo, 0.5*random.Float64())
			default:
				m = material.NewDielectric(1.5)
			}
			s.Add(geometry.NewSphere(center, 0.2, m))
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(material.MustNamedColor("saddlebrown"))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}
