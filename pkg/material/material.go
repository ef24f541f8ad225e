package material

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Kind identifies which scattering model a Material uses
type Kind int

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Material is a closed set of surface models. Only the fields used by Kind are meaningful:
// Albedo for lambertian and metal, Fuzz for metal, RefractiveIndex for dielectric.
// Materials are small values and are copied into every hit record.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Base color/reflectance
	Fuzz            float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
	RefractiveIndex float64   // Index of refraction (e.g., 1.5 for glass)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal at intersection, facing the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Scatter decides how an incoming ray interacts with the surface.
// It returns false when the ray is absorbed.
func (m Material) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(hit, random)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, random)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, random)
	default:
		panic(fmt.Sprintf("material: unknown kind %v", m.Kind))
	}
}

// Validate reports whether the material can be rendered
func (m Material) Validate() error {
	switch m.Kind {
	case KindLambertian, KindMetal:
		if !m.Albedo.IsFinite() {
			return fmt.Errorf("%w: %s albedo %v is not finite", core.ErrInvalidConfig, m.Kind, m.Albedo)
		}
		if m.Kind == KindMetal && (math.IsNaN(m.Fuzz) || m.Fuzz < 0 || m.Fuzz > 1) {
			return fmt.Errorf("%w: metal fuzz %f outside [0,1]", core.ErrInvalidConfig, m.Fuzz)
		}
	case KindDielectric:
		if !(m.RefractiveIndex > 0) || math.IsInf(m.RefractiveIndex, 0) {
			return fmt.Errorf("%w: refractive index must be positive and finite, got %f", core.ErrInvalidConfig, m.RefractiveIndex)
		}
	default:
		return fmt.Errorf("%w: unknown material kind %v", core.ErrInvalidConfig, m.Kind)
	}
	return nil
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
