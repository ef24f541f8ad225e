package renderer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// PPMContentType is the media type of the P3 stream
const PPMContentType = "image/x-portable-pixmap"

// WritePPM writes the image as plain-text PPM (P3): a header followed by one "R G B" line
// per pixel, top row first, left to right
func WritePPM(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}
	for _, pixel := range img.Pixels {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", pixel.R, pixel.G, pixel.B); err != nil {
			return fmt.Errorf("failed to write PPM pixel: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM output: %w", err)
	}
	return nil
}

// EncodePPM returns the P3 stream as bytes
func EncodePPM(img *Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
