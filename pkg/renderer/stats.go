package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width
	Height          int           // Image height
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera rays traced
	SamplesPerPixel int           // Samples taken for every pixel
	Bands           int           // Number of worker bands
	Elapsed         time.Duration // Wall time of the render
}

// bandStats is what a single worker reports back
type bandStats struct {
	pixels  int
	samples int
}

func (s *RenderStats) add(b bandStats) {
	s.TotalPixels += b.pixels
	s.TotalSamples += b.samples
}

// SamplesPerSecond returns the camera ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%dx%d, %d pixels, %d samples (%d spp) in %d bands, %v (%.0f samples/s)",
		s.Width, s.Height, s.TotalPixels, s.TotalSamples, s.SamplesPerPixel, s.Bands,
		s.Elapsed.Round(time.Millisecond), s.SamplesPerSecond())
}
