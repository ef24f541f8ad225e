package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

var testMaterial = material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

func mustSphere(t *testing.T, center core.Vec3, radius float64, mat material.Material) *Sphere {
	t.Helper()
	sphere, err := NewSphere(center, radius, mat)
	if err != nil {
		t.Fatalf("NewSphere(%v, %f): %v", center, radius, err)
	}
	return sphere
}

func TestNewSphere_Validation(t *testing.T) {
	tests := []struct {
		name   string
		center core.Vec3
		radius float64
		mat    material.Material
	}{
		{"zero radius", core.NewVec3(0, 0, 0), 0, testMaterial},
		{"negative radius", core.NewVec3(0, 0, 0), -1, testMaterial},
		{"NaN radius", core.NewVec3(0, 0, 0), math.NaN(), testMaterial},
		{"infinite center", core.NewVec3(math.Inf(1), 0, 0), 1, testMaterial},
		{"invalid material", core.NewVec3(0, 0, 0), 1, material.NewDielectric(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere, err := NewSphere(tt.center, tt.radius, tt.mat)
			if err == nil {
				t.Fatalf("Expected error, got sphere %+v", sphere)
			}
			if !errors.Is(err, core.ErrInvalidConfig) {
				t.Errorf("Expected error to wrap ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_TangentIsMiss(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	if _, isHit := sphere.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Error("Expected a ray with zero discriminant to miss")
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1.0, testMaterial)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 4, 0),
			rayDirection:   core.NewVec3(0, -3, 0),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}

			if hit.Material != testMaterial {
				t.Errorf("Expected hit record to carry the sphere material, got %+v", hit.Material)
			}
		})
	}
}

func TestSphere_Hit_AimedAtCenter(t *testing.T) {
	center := core.NewVec3(1, -2, 3)
	radius := 0.75
	sphere := mustSphere(t, center, radius, testMaterial)

	origins := []core.Vec3{
		core.NewVec3(10, 5, -4),
		core.NewVec3(-3, -2, 3),
		core.NewVec3(1, 8, 3.5),
	}

	for _, origin := range origins {
		ray := core.NewRay(origin, center.Subtract(origin))
		hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
		if !isHit {
			t.Fatalf("Ray from %v aimed at center missed", origin)
		}
		if !hit.FrontFace {
			t.Errorf("Ray from outside should hit the front face")
		}
		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
		}
		expected := hit.Point.Subtract(center).Divide(radius)
		if hit.Normal.Subtract(expected).Length() > 1e-9 {
			t.Errorf("Expected normal %v, got %v", expected, hit.Normal)
		}
	}
}

func TestSphere_Hit_RespectsInterval(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, -5), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []struct {
		name      string
		tMin      float64
		tMax      float64
		expectHit bool
		expectedT float64
	}{
		{"near root", 0.001, math.Inf(1), true, 4},
		{"skip near root", 4.5, math.Inf(1), true, 6},
		{"near root on open bound", 4, math.Inf(1), true, 6},
		{"both roots beyond tMax", 0.001, 3, false, 0},
		{"tMax equal to near root", 0.001, 4, false, 0},
		{"both roots before tMin", 7, math.Inf(1), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(ray, tt.tMin, tt.tMax)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
		})
	}
}
