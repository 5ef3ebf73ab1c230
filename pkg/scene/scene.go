package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	Camera       *renderer.Camera
	CameraConfig renderer.CameraConfig
	World        *geometry.HittableList // Objects in the scene
	Ground       *geometry.Sphere       // Ground sphere, if the scene has one
	Config       renderer.Config        // Recommended render settings
}

// newScene builds an empty scene around a camera, applying any overrides
func newScene(name string, cameraConfig renderer.CameraConfig, config renderer.Config, cameraOverrides []renderer.CameraConfig) *Scene {
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	return &Scene{
		Name:         name,
		Camera:       renderer.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		World:        geometry.NewHittableList(),
		Config:       config,
	}
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld implements renderer.Scene
func (s *Scene) GetWorld() geometry.Shape {
	if s.World == nil {
		return geometry.NewHittableList()
	}
	return s.World
}

// Add appends shapes to the world
func (s *Scene) Add(shapes ...geometry.Shape) {
	if s.World == nil {
		s.World = geometry.NewHittableList()
	}
	s.World.Add(shapes...)
}

// SetGround adds a diffuse ground sphere and remembers it for SetGroundColor
func (s *Scene) SetGround(center core.Point3, radius float64, albedo core.Color) {
	s.Ground = geometry.NewSphere(center, radius, material.NewLambertian(albedo))
	s.Add(s.Ground)
}

// SetGroundColor replaces the ground albedo. It reports false when the
// scene has no ground.
func (s *Scene) SetGroundColor(albedo core.Color) bool {
	if s.Ground == nil {
		return false
	}
	s.Ground.Material = material.NewLambertian(albedo)
	return true
}

// Resize changes the output dimensions and rebuilds the camera so the
// viewport keeps the image's aspect ratio
func (s *Scene) Resize(width, height int) {
	s.Config.Width = width
	s.Config.Height = height
	if width > 0 && height > 0 {
		s.CameraConfig.AspectRatio = float64(width) / float64(height)
		s.Camera = renderer.NewCamera(s.CameraConfig)
	}
}
