package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestCamera_DefaultViewport(t *testing.T) {
	camera := NewCamera(DefaultCameraConfig())

	// Viewport is 2 high, 2*16/9 wide, one unit in front of the origin
	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"lower left", 0, 0, core.NewVec3(-16.0/9.0, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(16.0/9.0, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t)
			if !ray.Origin.Equals(core.NewVec3(0, 0, 0)) {
				t.Errorf("Expected origin at camera center, got %v", ray.Origin)
			}
			if !vecNear(ray.Direction, tt.expected, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestCamera_LooksAtTarget(t *testing.T) {
	config := CameraConfig{
		Center:      core.NewVec3(3, 3, 2),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 1.0,
	}
	camera := NewCamera(config)

	ray := camera.GetRay(0.5, 0.5)
	forward := config.LookAt.Subtract(config.Center).Normalize()
	if !vecNear(ray.Direction.Normalize(), forward, 1e-9) {
		t.Errorf("Center ray %v should point at target %v", ray.Direction.Normalize(), forward)
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := DefaultCameraConfig()
	merged := MergeCameraConfig(base, CameraConfig{VFov: 20, Center: core.NewVec3(1, 2, 3)})

	if merged.VFov != 20 {
		t.Errorf("Expected VFov override, got %f", merged.VFov)
	}
	if !merged.Center.Equals(core.NewVec3(1, 2, 3)) {
		t.Errorf("Expected Center override, got %v", merged.Center)
	}
	if merged.AspectRatio != base.AspectRatio || !merged.LookAt.Equals(base.LookAt) {
		t.Error("Zero fields should keep base values")
	}
}
