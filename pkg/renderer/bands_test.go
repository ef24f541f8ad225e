package renderer

import "testing"

func TestSplitBands_CoversEveryRowOnce(t *testing.T) {
	tests := []struct {
		name          string
		height        int
		workers       int
		expectedBands int
		lastBandRows  int
	}{
		{"even split", 224, 4, 4, 56},
		{"remainder to last band", 225, 4, 4, 57},
		{"single worker", 100, 1, 1, 100},
		{"more workers than rows", 3, 8, 3, 1},
		{"zero workers", 10, 0, 1, 10},
		{"reference size", 540, 4, 4, 135},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands := SplitBands(tt.height, tt.workers)
			if len(bands) != tt.expectedBands {
				t.Fatalf("Expected %d bands, got %d", tt.expectedBands, len(bands))
			}

			covered := make([]int, tt.height)
			for i, band := range bands {
				if band.Index != i {
					t.Errorf("Band %d has index %d", i, band.Index)
				}
				if band.Rows() <= 0 {
					t.Errorf("%v is empty", band)
				}
				if i > 0 && band.StartRow != bands[i-1].EndRow {
					t.Errorf("%v does not start where %v ends", band, bands[i-1])
				}
				for row := band.StartRow; row < band.EndRow; row++ {
					covered[row]++
				}
			}

			for row, count := range covered {
				if count != 1 {
					t.Errorf("Row %d covered %d times", row, count)
				}
			}

			if last := bands[len(bands)-1]; last.Rows() != tt.lastBandRows {
				t.Errorf("Expected last band to have %d rows, got %d", tt.lastBandRows, last.Rows())
			}
		})
	}
}

func TestSplitBands_EmptyImage(t *testing.T) {
	if bands := SplitBands(0, 4); bands != nil {
		t.Errorf("Expected no bands for an empty image, got %v", bands)
	}
}
