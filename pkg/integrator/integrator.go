package integrator

import (
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// ShadowAcneEpsilon is the lower bound of every scene query. It keeps a scattered ray from
// re-hitting the surface it just left because of floating point error.
const ShadowAcneEpsilon = 0.001

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the radiance carried back along the ray. The generator belongs to
	// the calling worker and must not be shared.
	RayColor(ray core.Ray, world geometry.Shape, random *rand.Rand) core.Vec3
}
