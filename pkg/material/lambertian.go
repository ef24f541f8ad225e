package material

import (
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// NewLambertian creates a perfectly diffuse material
func NewLambertian(albedo core.Vec3) Material {
	return Material{Kind: KindLambertian, Albedo: albedo}
}

func (m Material) scatterLambertian(hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	// Normal plus a point on the unit sphere gives a cosine-weighted lobe
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(random))

	// The random vector can almost cancel the normal; a zero direction would turn into NaN
	// further down the path.
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: m.Albedo,
	}, true
}
