package scene

import (
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// NewRandomScene creates the cover scene: a large ground sphere, a 22x22 grid of small
// spheres with random materials and three large feature spheres. The seed only drives the
// layout so the same seed always builds the same world.
func NewRandomScene(seed int64, width int, aspectRatio float64) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   aspectRatio,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	s, err := newScene(cameraConfig, samplingFor(width, aspectRatio))
	if err != nil {
		return nil, err
	}

	random := rand.New(rand.NewSource(seed))

	if err := s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))); err != nil {
		return nil, err
	}

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			// Keep the space around the metal feature sphere clear
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				albedo := randomColor(random).MultiplyVec(randomColor(random))
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := core.RandomInRange(random, 0.5, 1)
				mat = material.NewMetal(albedo, 0.5*random.Float64())
			default:
				mat = material.NewDielectric(1.5)
			}

			if err := s.AddSphere(center, 0.2, mat); err != nil {
				return nil, err
			}
		}
	}

	features := []struct {
		center core.Vec3
		mat    material.Material
	}{
		{core.NewVec3(0, 1, 0), material.NewDielectric(1.5)},
		{core.NewVec3(-4, 1, 0), material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))},
		{core.NewVec3(4, 1, 0), material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)},
	}
	for _, f := range features {
		if err := s.AddSphere(f.center, 1.0, f.mat); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func randomColor(random *rand.Rand) core.Vec3 {
	return core.NewVec3(random.Float64(), random.Float64(), random.Float64())
}
