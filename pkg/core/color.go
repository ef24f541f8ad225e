package core

import (
	"fmt"
	"math"
)

// maxChannel keeps a fully saturated channel at 255 after scaling by 256
const maxChannel = 0.999

// RGB8 is a finalized 8-bit pixel
type RGB8 struct {
	R, G, B uint8
}

// String formats the pixel as a plain PPM triplet
func (c RGB8) String() string {
	return fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
}

// FinalizeColor averages an accumulated sample sum, applies gamma 2 and quantizes to 8 bits
func FinalizeColor(sum Vec3, samples int) RGB8 {
	scale := 1.0 / float64(samples)
	return RGB8{
		R: quantize(sum.X * scale),
		G: quantize(sum.Y * scale),
		B: quantize(sum.Z * scale),
	}
}

func quantize(linear float64) uint8 {
	// NaN fails both comparisons in max/min, so map it to black explicitly
	if math.IsNaN(linear) || linear <= 0 {
		return 0
	}
	gamma := math.Sqrt(linear)
	return uint8(256 * min(gamma, maxChannel))
}
