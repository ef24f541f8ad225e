package renderer

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *geometry.Camera
	GetWorld() geometry.Shape
	GetSamplingConfig() core.SamplingConfig
}

// Config controls how a render is split across workers
type Config struct {
	NumWorkers int   // Number of parallel bands (0 = use CPU count)
	Seed       int64 // Band i draws from rand.NewSource(Seed + i)
}

// Image is a flat row-major pixel buffer, top row first
type Image struct {
	Width  int
	Height int
	Pixels []core.RGB8
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.RGB8, width*height),
	}
}

// At returns the pixel at column x of output row row
func (img *Image) At(x, row int) core.RGB8 {
	return img.Pixels[row*img.Width+x]
}

// Raytracer renders a scene into an Image with a fork-join over row bands
type Raytracer struct {
	scene        Scene
	config       Config
	sampling     core.SamplingConfig
	bandRenderer *BandRenderer
	pool         *WorkerPool
	logger       core.Logger
}

// NewRaytracer creates a raytracer. The scene is shared read-only by every worker.
func NewRaytracer(scene Scene, integratorInst integrator.Integrator, config Config, logger core.Logger) (*Raytracer, error) {
	sampling := scene.GetSamplingConfig()
	if err := sampling.Validate(); err != nil {
		return nil, err
	}
	if scene.GetCamera() == nil || scene.GetWorld() == nil {
		return nil, fmt.Errorf("%w: scene has no camera or world", core.ErrInvalidConfig)
	}
	if integratorInst == nil {
		integratorInst = integrator.NewPathTracingIntegrator(sampling)
	}
	if logger == nil {
		logger = NopLogger{}
	}

	return &Raytracer{
		scene:        scene,
		config:       config,
		sampling:     sampling,
		bandRenderer: NewBandRenderer(scene.GetCamera(), scene.GetWorld(), integratorInst, sampling),
		pool:         NewWorkerPool(config.NumWorkers),
		logger:       logger,
	}, nil
}

// Render traces every pixel and returns the finished image. Each band writes only to its
// own sub-slice of the buffer, so the workers share nothing mutable.
func (rt *Raytracer) Render(ctx context.Context) (*Image, RenderStats, error) {
	start := time.Now()
	width, height := rt.sampling.Width, rt.sampling.Height

	img := NewImage(width, height)
	bands := SplitBands(height, rt.pool.GetNumWorkers())
	perBand := make([]bandStats, len(bands))

	var remaining atomic.Int64
	remaining.Store(int64(height))

	rt.logger.Printf("Rendering %dx%d, %d spp, depth %d, %d bands\n",
		width, height, rt.sampling.SamplesPerPixel, rt.sampling.MaxDepth, len(bands))

	err := rt.pool.Run(ctx, bands, func(ctx context.Context, band Band) error {
		random := rand.New(rand.NewSource(rt.config.Seed + int64(band.Index)))
		pixels := img.Pixels[band.StartRow*width : band.EndRow*width]

		rt.logger.Printf("Started %v\n", band)
		stats, err := rt.bandRenderer.RenderBand(ctx, band, pixels, random, func() {
			rt.logger.Printf("Scanlines remaining: %d\n", remaining.Add(-1))
		})
		perBand[band.Index] = stats
		if err != nil {
			return err
		}
		rt.logger.Printf("Finished %v\n", band)
		return nil
	})
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("render failed: %w", err)
	}

	stats := RenderStats{
		Width:           width,
		Height:          height,
		SamplesPerPixel: rt.sampling.SamplesPerPixel,
		Bands:           len(bands),
	}
	for _, b := range perBand {
		stats.add(b)
	}
	stats.Elapsed = time.Since(start)

	rt.logger.Printf("Done: %v\n", stats)
	return img, stats, nil
}
