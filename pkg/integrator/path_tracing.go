package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// Default sky colors
var (
	DefaultTopColor    = core.NewVec3(0.5, 0.7, 1.0)
	DefaultBottomColor = core.NewVec3(1.0, 1.0, 1.0)
)

// PathTracingIntegrator implements unidirectional path tracing against a sky gradient
type PathTracingIntegrator struct {
	config      core.SamplingConfig
	topColor    core.Vec3
	bottomColor core.Vec3
}

// NewPathTracingIntegrator creates a new path tracing integrator with the default sky
func NewPathTracingIntegrator(config core.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config:      config,
		topColor:    DefaultTopColor,
		bottomColor: DefaultBottomColor,
	}
}

// WithSky replaces the background gradient colors
func (pt *PathTracingIntegrator) WithSky(top, bottom core.Vec3) *PathTracingIntegrator {
	pt.topColor = top
	pt.bottomColor = bottom
	return pt
}

// RayColor follows the ray through at most MaxDepth bounces, multiplying the attenuation
// of every surface into a running throughput
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, random *rand.Rand) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for depth := pt.config.MaxDepth; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(BackgroundGradient(ray, pt.topColor, pt.bottomColor))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
		if !didScatter {
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce limit exceeded, no more light is gathered
	return core.Vec3{}
}

// BackgroundGradient blends from bottom to top by the height of the unit ray direction
func BackgroundGradient(ray core.Ray, top, bottom core.Vec3) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return bottom.Lerp(top, t)
}
