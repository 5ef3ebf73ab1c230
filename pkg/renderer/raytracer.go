package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// Config contains rendering configuration
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	NumWorkers      int   // Parallel scanline workers (0 = use CPU count)
	Seed            int64 // Base seed for the per-row samplers
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		NumWorkers:      0,
		Seed:            42,
	}
}

// Validate reports the first invalid field
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSamples, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, c.MaxDepth)
	}
	return nil
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Shape
}

// Raytracer drives the per-pixel sampling loop over a scene
type Raytracer struct {
	scene      Scene
	config     Config
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(scene Scene, config Config, logger core.Logger) (*Raytracer, error) {
	if scene == nil {
		return nil, ErrNoScene
	}
	if scene.GetCamera() == nil {
		return nil, ErrCameraNotDefined
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{
		scene:      scene,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
		logger:     logger,
	}, nil
}

// Config returns the active configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// rowSeed derives an independent, reproducible seed for scanline j
func (rt *Raytracer) rowSeed(j int) int64 {
	return rt.config.Seed*1_000_003 + int64(j)
}

// ViewportCoord maps pixel index i plus a sub-pixel offset to a viewport
// coordinate over n pixels. Pixel corners are spaced 1/(n-1) apart, so
// offset 0 on the first and last pixel lands exactly on 0 and 1, and
// jittered samples in the last pixel reach up to n/(n-1).
func ViewportCoord(i int, offset float64, n int) float64 {
	return (float64(i) + offset) / float64(max(1, n-1))
}

// PixelColor averages SamplesPerPixel jittered samples for pixel (i, j),
// where j counts scanlines upward from the bottom of the image
func (rt *Raytracer) PixelColor(i, j int, sampler core.Sampler) core.Color {
	camera := rt.scene.GetCamera()
	world := rt.scene.GetWorld()

	colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		u := ViewportCoord(i, sampler.Get1D(), rt.config.Width)
		v := ViewportCoord(j, sampler.Get1D(), rt.config.Height)

		ray := camera.GetRay(u, v)
		colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, world, sampler))
	}

	return colorAccum.Multiply(1.0 / float64(rt.config.SamplesPerPixel))
}

// renderRow fills image row y, which is scanline Height-1-y
func (rt *Raytracer) renderRow(img *image.RGBA) RowFunc {
	return func(ctx context.Context, y int) (int, error) {
		j := rt.config.Height - 1 - y
		sampler := core.NewSeededSampler(rt.rowSeed(j))

		for i := 0; i < rt.config.Width; i++ {
			img.SetRGBA(i, y, vec3ToColor(rt.PixelColor(i, j, sampler)))
		}

		return rt.config.Width * rt.config.SamplesPerPixel, nil
	}
}

// Render traces every pixel and returns the finished frame.
// Cancelling ctx stops scheduling new scanlines and returns ErrInterrupted.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	startTime := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.config.Width, rt.config.Height))

	pool := NewWorkerPool(rt.config.Height, rt.config.NumWorkers, rt.renderRow(img))
	stats := RenderStats{
		Width:           rt.config.Width,
		Height:          rt.config.Height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		MaxDepth:        rt.config.MaxDepth,
		TotalPixels:     rt.config.Width * rt.config.Height,
		Workers:         pool.GetNumWorkers(),
	}

	rt.logger.Infof("rendering %dx%d at %d spp (depth %d, %d workers)",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth, stats.Workers)

	pool.Start(ctx)
	for y := 0; y < rt.config.Height; y++ {
		pool.SubmitTask(RowTask{Row: y})
	}
	go pool.Stop()

	var renderErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}

		stats.Rows++
		stats.TotalSamples += result.Samples
		rt.logger.Debugf("scanlines remaining: %d", rt.config.Height-stats.Rows)
	}
	stats.Duration = time.Since(startTime)

	if renderErr != nil {
		if errors.Is(renderErr, context.Canceled) || errors.Is(renderErr, context.DeadlineExceeded) {
			return nil, stats, fmt.Errorf("%w: %w", ErrInterrupted, renderErr)
		}
		return nil, stats, renderErr
	}

	rt.logger.Infof("rendered %d samples in %v", stats.TotalSamples, stats.Duration)
	return img, stats, nil
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Apply gamma correction (gamma = 2.0)
	colorVec = colorVec.GammaCorrect(2.0)

	// Clamp to valid color range
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
