package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// NewSimpleScene creates a diffuse sphere resting on a huge ground sphere, seen through a
// pinhole camera at the origin
func NewSimpleScene(width int, aspectRatio float64) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: aspectRatio,
	}

	s, err := newScene(cameraConfig, samplingFor(width, aspectRatio))
	if err != nil {
		return nil, err
	}

	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	if err := s.AddSphere(core.NewVec3(0, 0, -1), 0.5, gray); err != nil {
		return nil, err
	}
	if err := s.AddSphere(core.NewVec3(0, -100.5, -1), 100, gray); err != nil {
		return nil, err
	}

	return s, nil
}

// NewMaterialsScene lines up glass, diffuse and fuzzed metal spheres on a yellow ground,
// seen through a wide open lens focused on the middle sphere
func NewMaterialsScene(width int, aspectRatio float64) (*Scene, error) {
	lookFrom := core.NewVec3(3, 3, 2)
	lookAt := core.NewVec3(0, 0, -1)
	cameraConfig := geometry.CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        lookAt,
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   aspectRatio,
		Aperture:      2.0,
		FocusDistance: lookFrom.Subtract(lookAt).Length(),
	}

	s, err := newScene(cameraConfig, samplingFor(width, aspectRatio))
	if err != nil {
		return nil, err
	}

	spheres := []struct {
		center core.Vec3
		radius float64
		mat    material.Material
	}{
		{core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))},
		{core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))},
		{core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)},
		{core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)},
	}
	for _, sp := range spheres {
		if err := s.AddSphere(sp.center, sp.radius, sp.mat); err != nil {
			return nil, err
		}
	}

	return s, nil
}
