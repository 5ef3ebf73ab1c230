package integrator

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// ShadowAcneEpsilon is the minimum t accepted for any intersection, so a
// scattered ray does not re-hit the surface it just left
const ShadowAcneEpsilon = 0.001

var (
	skyWhite = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue  = core.NewVec3(0.5, 0.7, 1.0)
)

// PathTracingIntegrator implements unidirectional path tracing without
// light sampling: rays bounce until they escape to the sky, get absorbed,
// or run out of depth
type PathTracingIntegrator struct {
	MaxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// RayColor computes the color for a single ray using the configured depth
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Color {
	return RayColorDepth(ray, world, pt.MaxDepth, sampler)
}

// RayColorDepth resolves the color of ray with at most depth bounces.
//
// Each bounce multiplies the running throughput by the material attenuation;
// the path ends on a miss (sky times throughput), on absorption (black), or
// when the budget reaches zero (black).
func RayColorDepth(ray core.Ray, world geometry.Shape, depth int, sampler core.Sampler) core.Color {
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(BackgroundGradient(ray))
		}

		if hit.Material == nil {
			return core.Color{}
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return core.Color{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// If we've exceeded the ray bounce limit, no more light is gathered
	return core.Color{}
}

// BackgroundGradient blends white into sky blue by the ray's normalized
// vertical direction, mapped from [-1,1] to [0,1]
func BackgroundGradient(ray core.Ray) core.Color {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return skyWhite.Multiply(1.0 - t).Add(skyBlue.Multiply(t))
}
