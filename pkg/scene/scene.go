package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	World          *geometry.HittableList
	SamplingConfig core.SamplingConfig
	TopColor       core.Vec3 // Sky color straight up
	BottomColor    core.Vec3 // Sky color straight down
}

// newScene builds the camera and an empty world. The camera's aspect ratio is forced to
// match the image so pixels stay square.
func newScene(cameraConfig geometry.CameraConfig, sampling core.SamplingConfig) (*Scene, error) {
	if sampling.Height > 0 {
		cameraConfig.AspectRatio = float64(sampling.Width) / float64(sampling.Height)
	}
	camera, err := geometry.NewCamera(cameraConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create camera: %w", err)
	}

	return &Scene{
		Camera:         camera,
		CameraConfig:   cameraConfig,
		World:          geometry.NewHittableList(),
		SamplingConfig: sampling,
		TopColor:       integrator.DefaultTopColor,
		BottomColor:    integrator.DefaultBottomColor,
	}, nil
}

// ImageHeight returns the height of an image of the given width and aspect ratio,
// never less than 2 rows
func ImageHeight(width int, aspectRatio float64) int {
	if aspectRatio <= 0 {
		return 2
	}
	return max(2, int(float64(width)/aspectRatio))
}

// DefaultAspectRatio is used when a caller passes no aspect ratio
const DefaultAspectRatio = 16.0 / 9.0

// samplingFor returns the default sampling config resized to width x aspect
func samplingFor(width int, aspectRatio float64) core.SamplingConfig {
	if aspectRatio <= 0 {
		aspectRatio = DefaultAspectRatio
	}
	sampling := core.DefaultSamplingConfig()
	if width > 0 {
		sampling.Width = width
	}
	sampling.Height = ImageHeight(sampling.Width, aspectRatio)
	return sampling
}

// AddSphere validates and appends a sphere to the world
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) error {
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		return err
	}
	s.World.Add(sphere)
	return nil
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera { return s.Camera }

// GetWorld returns everything a ray can hit
func (s *Scene) GetWorld() geometry.Shape { return s.World }

// GetSamplingConfig returns the image size and sampling settings
func (s *Scene) GetSamplingConfig() core.SamplingConfig { return s.SamplingConfig }

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int { return s.World.Len() }

// NewIntegrator returns a path tracer using the scene's depth limit and sky
func (s *Scene) NewIntegrator() *integrator.PathTracingIntegrator {
	return integrator.NewPathTracingIntegrator(s.SamplingConfig).WithSky(s.TopColor, s.BottomColor)
}

// Validate checks the scene is ready to render
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return fmt.Errorf("%w: scene has no camera", core.ErrInvalidConfig)
	}
	if s.World == nil || s.World.Len() == 0 {
		return fmt.Errorf("%w: scene has no shapes", core.ErrInvalidConfig)
	}
	if !s.TopColor.IsFinite() || !s.BottomColor.IsFinite() {
		return fmt.Errorf("%w: sky colors must be finite", core.ErrInvalidConfig)
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return err
	}
	if aspect := float64(s.SamplingConfig.Width) / float64(s.SamplingConfig.Height); math.Abs(aspect-s.CameraConfig.AspectRatio) > 1e-9 {
		return fmt.Errorf("%w: camera aspect %f does not match image aspect %f", core.ErrInvalidConfig, s.CameraConfig.AspectRatio, aspect)
	}
	return nil
}
