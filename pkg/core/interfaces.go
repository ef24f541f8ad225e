package core

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every construction-time validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig matches the reference render: 16:9 at 400 wide, 100 spp, depth 50
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Validate checks that the sampling parameters describe a renderable image.
// Pixel coordinates are divided by Width-1 and Height-1, so both must be at least 2.
func (c SamplingConfig) Validate() error {
	if c.Width < 2 || c.Height < 2 {
		return fmt.Errorf("%w: image must be at least 2x2, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	return nil
}
