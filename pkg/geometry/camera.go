package geometry

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// CameraConfig describes a thin-lens camera
type CameraConfig struct {
	LookFrom      core.Vec3 // Eye position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // World up direction, must not be parallel to the view direction
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter (0 = pinhole)
	FocusDistance float64   // Distance to the plane in focus (0 = distance to LookAt)
}

// Camera generates rays for rendering. It is immutable after construction and safe to
// share between render workers; lens sampling draws from the caller's generator.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// DefaultFocusDistance returns the configured focus distance, or the distance from
// LookFrom to LookAt when none is set
func DefaultFocusDistance(config CameraConfig) float64 {
	if config.FocusDistance != 0 {
		return config.FocusDistance
	}
	return config.LookFrom.Subtract(config.LookAt).Length()
}

// Validate checks the configuration for degenerate geometry
func (c CameraConfig) Validate() error {
	if !c.LookFrom.IsFinite() || !c.LookAt.IsFinite() || !c.Up.IsFinite() {
		return fmt.Errorf("%w: camera vectors must be finite", core.ErrInvalidConfig)
	}
	view := c.LookFrom.Subtract(c.LookAt)
	if view.NearZero() {
		return fmt.Errorf("%w: camera LookFrom and LookAt coincide at %v", core.ErrInvalidConfig, c.LookFrom)
	}
	if c.Up.Cross(view).NearZero() {
		return fmt.Errorf("%w: camera up %v is parallel to the view direction", core.ErrInvalidConfig, c.Up)
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("%w: vertical field of view must be in (0, 180) degrees, got %f", core.ErrInvalidConfig, c.VFov)
	}
	if !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0) {
		return fmt.Errorf("%w: aspect ratio must be positive, got %f", core.ErrInvalidConfig, c.AspectRatio)
	}
	if !(c.Aperture >= 0) || math.IsInf(c.Aperture, 0) {
		return fmt.Errorf("%w: aperture must be non-negative, got %f", core.ErrInvalidConfig, c.Aperture)
	}
	if !(DefaultFocusDistance(c) > 0) || math.IsInf(c.FocusDistance, 0) {
		return fmt.Errorf("%w: focus distance must be positive, got %f", core.ErrInvalidConfig, c.FocusDistance)
	}
	return nil
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	focusDistance := DefaultFocusDistance(config)

	theta := config.VFov * math.Pi / 180.0
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	// Orthonormal basis, w points from the scene back toward the eye
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(focusDistance * viewportWidth)
	vertical := v.Multiply(focusDistance * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}, nil
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1,
// s running left to right and t bottom to top
func (c *Camera) GetRay(s, t float64, random *rand.Rand) core.Ray {
	var offset core.Vec3
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	}

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// Basis returns the camera's orthonormal basis (u right, v up, w backward)
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// Origin returns the eye position
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}
