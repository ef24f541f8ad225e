package core

import (
	"math"
	"math/rand"
)

// Every helper here draws from the generator passed in. A *rand.Rand is not safe for
// concurrent use, so each render worker owns its own.

// RandomInRange returns a vector with each component uniform in [min, max)
func RandomInRange(random *rand.Rand, min, max float64) Vec3 {
	span := max - min
	return NewVec3(
		min+span*random.Float64(),
		min+span*random.Float64(),
		min+span*random.Float64(),
	)
}

// RandomUnitVector returns a uniformly distributed point on the unit sphere
func RandomUnitVector(random *rand.Rand) Vec3 {
	a := 2.0 * math.Pi * random.Float64()
	z := 2.0*random.Float64() - 1.0
	r := math.Sqrt(1.0 - z*z)
	return NewVec3(r*math.Cos(a), r*math.Sin(a), z)
}

// RandomInUnitSphere generates a random point inside a unit sphere
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		// Generate random point in [-1,1]³ cube
		p := RandomInRange(random, -1, 1)
		// Accept if inside unit sphere
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomInUnitDisk generates a random point in a unit disk (for depth of field)
func RandomInUnitDisk(random *rand.Rand) Vec3 {
	for {
		// Generate random point in [-1,1] x [-1,1] square
		p := NewVec3(2*random.Float64()-1, 2*random.Float64()-1, 0)
		// Accept if inside unit disk
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomInHemisphere returns a point inside the unit sphere on the same side as normal
func RandomInHemisphere(normal Vec3, random *rand.Rand) Vec3 {
	inUnitSphere := RandomInUnitSphere(random)
	if inUnitSphere.Dot(normal) > 0.0 {
		return inUnitSphere
	}
	return inUnitSphere.Negate()
}
