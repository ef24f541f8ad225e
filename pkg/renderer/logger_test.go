package renderer

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestDefaultLogger_ConcurrentBands(t *testing.T) {
	testScene := createTestScene(t, 16, 8, 1)
	var buf bytes.Buffer
	rt, err := NewRaytracer(testScene, nil, Config{NumWorkers: 4, Seed: 3}, NewDefaultLogger(&buf))
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}
	if _, _, err := rt.Render(context.Background()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Every line arrives whole: one header, start and finish per band, one countdown per row, done
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if want := 1 + 4*2 + 8 + 1; len(lines) != want {
		t.Fatalf("Expected %d log lines, got %d:\n%s", want, len(lines), buf.String())
	}
	for _, band := range []string{"band 0", "band 1", "band 2", "band 3"} {
		if strings.Count(buf.String(), "Started "+band) != 1 || strings.Count(buf.String(), "Finished "+band) != 1 {
			t.Errorf("Expected one start and one finish line for %s", band)
		}
	}
}
