package renderer

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// MockScene implements Scene for testing
type MockScene struct {
	camera *Camera
	world  geometry.Shape
}

func (m MockScene) GetCamera() *Camera       { return m.camera }
func (m MockScene) GetWorld() geometry.Shape { return m.world }

func emptyScene() MockScene {
	return MockScene{
		camera: NewCamera(DefaultCameraConfig()),
		world:  geometry.NewHittableList(),
	}
}

func sphereScene() MockScene {
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0))),
	)
	return MockScene{camera: NewCamera(DefaultCameraConfig()), world: world}
}

func smallConfig() Config {
	return Config{
		Width:           16,
		Height:          9,
		SamplesPerPixel: 4,
		MaxDepth:        10,
		NumWorkers:      2,
		Seed:            7,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults are valid", func(c *Config) {}, nil},
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidDimensions},
		{"negative height", func(c *Config) { c.Height = -1 }, ErrInvalidDimensions},
		{"zero samples", func(c *Config) { c.SamplesPerPixel = 0 }, ErrInvalidSamples},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, ErrInvalidDepth},
		{"zero depth allowed", func(c *Config) { c.MaxDepth = 0 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)
			err := config.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewRaytracer_Errors(t *testing.T) {
	if _, err := NewRaytracer(nil, DefaultConfig(), nil); !errors.Is(err, ErrNoScene) {
		t.Errorf("Expected ErrNoScene, got %v", err)
	}

	noCamera := MockScene{world: geometry.NewHittableList()}
	if _, err := NewRaytracer(noCamera, DefaultConfig(), nil); !errors.Is(err, ErrCameraNotDefined) {
		t.Errorf("Expected ErrCameraNotDefined, got %v", err)
	}

	bad := DefaultConfig()
	bad.SamplesPerPixel = 0
	if _, err := NewRaytracer(emptyScene(), bad, nil); !errors.Is(err, ErrInvalidSamples) {
		t.Errorf("Expected ErrInvalidSamples, got %v", err)
	}
}

func TestRaytracer_EmptySceneRendersSky(t *testing.T) {
	config := smallConfig()
	rt, err := NewRaytracer(emptyScene(), config, nil)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}

	img, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if stats.Rows != config.Height {
		t.Errorf("Expected %d rows, got %d", config.Height, stats.Rows)
	}
	if stats.TotalSamples != config.Width*config.Height*config.SamplesPerPixel {
		t.Errorf("Unexpected total samples %d", stats.TotalSamples)
	}

	// Top rows look up into blue sky, bottom rows down toward white
	top := img.RGBAAt(config.Width/2, 0)
	bottom := img.RGBAAt(config.Width/2, config.Height-1)
	if top.B != 255 || bottom.B != 255 {
		t.Errorf("Sky should saturate blue, got top=%v bottom=%v", top, bottom)
	}
	if top.R >= bottom.R {
		t.Errorf("Top of frame should be bluer than bottom: top=%v bottom=%v", top, bottom)
	}
	for x := 0; x < config.Width; x++ {
		if a := img.RGBAAt(x, 0).A; a != 255 {
			t.Fatalf("Expected opaque pixels, got alpha %d", a)
		}
	}
}

func TestRaytracer_SphereDarkensCenter(t *testing.T) {
	config := smallConfig()
	config.Width, config.Height = 32, 18
	rt, err := NewRaytracer(sphereScene(), config, nil)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}

	img, _, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	center := img.RGBAAt(config.Width/2, config.Height/2)
	sky := img.RGBAAt(0, 0)
	if center.B >= sky.B {
		t.Errorf("Red diffuse sphere should absorb blue: center=%v sky=%v", center, sky)
	}
}

func TestRaytracer_DeterministicAcrossWorkerCounts(t *testing.T) {
	config := smallConfig()

	render := func(workers int) []uint8 {
		config.NumWorkers = workers
		rt, err := NewRaytracer(sphereScene(), config, nil)
		if err != nil {
			t.Fatalf("NewRaytracer failed: %v", err)
		}
		img, _, err := rt.Render(context.Background())
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		return img.Pix
	}

	single := render(1)
	parallel := render(4)
	for i := range single {
		if single[i] != parallel[i] {
			t.Fatalf("Pixel data differs at byte %d: %d vs %d", i, single[i], parallel[i])
		}
	}
}

func TestRaytracer_ZeroDepthRendersBlack(t *testing.T) {
	config := smallConfig()
	config.MaxDepth = 0
	rt, err := NewRaytracer(sphereScene(), config, nil)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}

	img, _, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if lum := CalculateAverageLuminance(img); lum != 0 {
		t.Errorf("Expected black frame, got average luminance %f", lum)
	}
}

func TestRaytracer_PixelColorAveragesSamples(t *testing.T) {
	config := smallConfig()
	config.SamplesPerPixel = 8
	rt, err := NewRaytracer(emptyScene(), config, nil)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}

	c := rt.PixelColor(0, 0, core.NewSeededSampler(1))
	// every sample is a sky color, so the average stays between white and blue
	if c.Z < 1-1e-12 || c.X < 0.5 || c.X > 1 || math.Abs(c.Y-(0.4+0.6*c.X)) > 1e-9 {
		t.Errorf("Average %v is not on the sky gradient", c)
	}
}

func TestRaytracer_CancelledContext(t *testing.T) {
	rt, err := NewRaytracer(sphereScene(), smallConfig(), nil)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img, _, err := rt.Render(ctx)
	if !errors.Is(err, ErrInterrupted) {
		t.Errorf("Expected ErrInterrupted, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected wrapped context.Canceled, got %v", err)
	}
	if img != nil {
		t.Error("Expected no image after cancellation")
	}
}

func TestVec3ToColor(t *testing.T) {
	tests := []struct {
		name     string
		input    core.Vec3
		expected [3]uint8
	}{
		{"black", core.NewVec3(0, 0, 0), [3]uint8{0, 0, 0}},
		{"white", core.NewVec3(1, 1, 1), [3]uint8{255, 255, 255}},
		{"gamma 2", core.NewVec3(0.25, 0.25, 0.25), [3]uint8{127, 127, 127}},
		{"clamped", core.NewVec3(4, 4, 4), [3]uint8{255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := vec3ToColor(tt.input)
			if [3]uint8{c.R, c.G, c.B} != tt.expected || c.A != 255 {
				t.Errorf("Expected %v, got %v", tt.expected, c)
			}
		})
	}
}

func TestViewportCoord(t *testing.T) {
	tests := []struct {
		name     string
		i        int
		offset   float64
		n        int
		expected float64
	}{
		{"first pixel corner", 0, 0, 16, 0},
		{"last pixel corner", 15, 0, 16, 1},
		{"last pixel center", 15, 0.5, 16, 15.5 / 15},
		{"middle pixel", 3, 0.5, 8, 0.5},
		{"single pixel", 0, 0.25, 1, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ViewportCoord(tt.i, tt.offset, tt.n)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}
