package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

func TestHittableList_ClosestHitRegardlessOfOrder(t *testing.T) {
	red := material.NewLambertian(core.NewVec3(1, 0, 0))
	blue := material.NewLambertian(core.NewVec3(0, 0, 1))

	near := mustSphere(t, core.NewVec3(0, 0, -2), 0.5, red)
	far := mustSphere(t, core.NewVec3(0, 0, -6), 0.5, blue)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	orders := map[string]*HittableList{
		"near first": NewHittableList(near, far),
		"far first":  NewHittableList(far, near),
	}

	for name, list := range orders {
		t.Run(name, func(t *testing.T) {
			hit, isHit := list.Hit(ray, 0.001, math.Inf(1))
			if !isHit {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.T-1.5) > 1e-9 {
				t.Errorf("Expected closest t=1.5, got %f", hit.T)
			}
			if hit.Material != red {
				t.Errorf("Expected the near sphere's material, got %+v", hit.Material)
			}
		})
	}
}

func TestHittableList_TieKeepsFirstInserted(t *testing.T) {
	first := material.NewLambertian(core.NewVec3(1, 0, 0))
	second := material.NewMetal(core.NewVec3(0, 1, 0), 0)

	a := mustSphere(t, core.NewVec3(0, 0, -3), 1, first)
	b := mustSphere(t, core.NewVec3(0, 0, -3), 1, second)
	list := NewHittableList(a, b)

	hit, isHit := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != first {
		t.Errorf("Expected the first-inserted sphere to win a tie, got %+v", hit.Material)
	}
}

func TestHittableList_EmptyAndMiss(t *testing.T) {
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))

	empty := NewHittableList()
	if _, isHit := empty.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Error("Empty list should never report a hit")
	}

	list := NewHittableList()
	list.Add(mustSphere(t, core.NewVec3(0, 0, -3), 1, testMaterial))
	if list.Len() != 1 {
		t.Errorf("Expected 1 shape, got %d", list.Len())
	}
	if _, isHit := list.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Error("Ray pointing away from every shape should miss")
	}
}
