package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// NewDefaultScene creates the three-sphere scene: a diffuse sphere flanked by
// hollow glass on the left and polished gold on the right, over a large
// ground sphere
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := newScene("default", renderer.DefaultCameraConfig(), renderer.DefaultConfig(), cameraOverrides)

	materialCenter := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialLeft := material.NewDielectric(1.5)
	materialRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	s.SetGround(core.NewVec3(0, -100.5, -1), 100, core.NewVec3(0.8, 0.8, 0.0))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, materialCenter),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, materialLeft),
		// Negative radius turns the normals inward, making the glass hollow
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.4, materialLeft),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, materialRight),
	)

	return s
}

// NewSimpleSphereScene creates a single diffuse sphere at (0,0,-1) against the sky
func NewSimpleSphereScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	config := renderer.DefaultConfig()
	config.SamplesPerPixel = 20
	config.MaxDepth = 10

	s := newScene("simple", renderer.DefaultCameraConfig(), config, cameraOverrides)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
	return s
}
