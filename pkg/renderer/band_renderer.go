package renderer

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// BandRenderer handles the actual rendering of row bands using an integrator
type BandRenderer struct {
	camera     *geometry.Camera
	world      geometry.Shape
	integrator integrator.Integrator
	config     core.SamplingConfig
}

// NewBandRenderer creates a band renderer for the given camera, world and integrator
func NewBandRenderer(camera *geometry.Camera, world geometry.Shape, integratorInst integrator.Integrator, config core.SamplingConfig) *BandRenderer {
	return &BandRenderer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
		config:     config,
	}
}

// RenderBand fills pixels, which holds exactly the band's rows in top-to-bottom order.
// onRow is called after each finished row and may be nil. The context is checked between rows.
func (br *BandRenderer) RenderBand(ctx context.Context, band Band, pixels []core.RGB8, random *rand.Rand, onRow func()) (bandStats, error) {
	width, height := br.config.Width, br.config.Height
	if len(pixels) != band.Rows()*width {
		return bandStats{}, fmt.Errorf("%v: pixel slice holds %d pixels, want %d", band, len(pixels), band.Rows()*width)
	}

	var stats bandStats
	for row := band.StartRow; row < band.EndRow; row++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		// Camera coordinates run bottom to top, output rows top to bottom
		y := height - 1 - row
		offset := (row - band.StartRow) * width
		for x := 0; x < width; x++ {
			pixels[offset+x] = br.samplePixel(x, y, random)
		}

		stats.pixels += width
		stats.samples += width * br.config.SamplesPerPixel
		if onRow != nil {
			onRow()
		}
	}

	return stats, nil
}

// samplePixel averages SamplesPerPixel jittered rays through pixel (x, y)
func (br *BandRenderer) samplePixel(x, y int, random *rand.Rand) core.RGB8 {
	width, height := br.config.Width, br.config.Height

	var sum core.Vec3
	for s := 0; s < br.config.SamplesPerPixel; s++ {
		u := (float64(x) + random.Float64()) / float64(width-1)
		v := (float64(y) + random.Float64()) / float64(height-1)
		ray := br.camera.GetRay(u, v, random)
		sum = sum.Add(br.integrator.RayColor(ray, br.world, random))
	}

	return core.FinalizeColor(sum, br.config.SamplesPerPixel)
}
