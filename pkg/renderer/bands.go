package renderer

import "fmt"

// Band is a contiguous range of output rows [StartRow, EndRow), counted from the top of the
// image, rendered by a single worker
type Band struct {
	Index    int
	StartRow int
	EndRow   int
}

// Rows returns the number of rows in the band
func (b Band) Rows() int {
	return b.EndRow - b.StartRow
}

func (b Band) String() string {
	return fmt.Sprintf("band %d [%d, %d)", b.Index, b.StartRow, b.EndRow)
}

// SplitBands partitions height rows into equal-size bands, one per worker. Rows left over by
// the integer division go to the last band so the bands always cover [0, height).
// Worker counts above height are reduced so that no band is empty.
func SplitBands(height, workers int) []Band {
	if height <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > height {
		workers = height
	}

	bandSize := height / workers
	bands := make([]Band, workers)
	for i := range bands {
		bands[i] = Band{
			Index:    i,
			StartRow: i * bandSize,
			EndRow:   (i + 1) * bandSize,
		}
	}
	bands[workers-1].EndRow = height

	return bands
}
