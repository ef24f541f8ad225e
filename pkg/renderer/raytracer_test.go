package renderer

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// MockScene implements Scene for testing
type MockScene struct {
	camera *geometry.Camera
	world  geometry.Shape
	config core.SamplingConfig
}

func (m MockScene) GetCamera() *geometry.Camera           { return m.camera }
func (m MockScene) GetWorld() geometry.Shape              { return m.world }
func (m MockScene) GetSamplingConfig() core.SamplingConfig { return m.config }

// MockIntegrator returns a fixed color and counts how many rays it was asked about
type MockIntegrator struct {
	color       core.Vec3
	calls       atomic.Int64
	shouldPanic bool
}

func (m *MockIntegrator) RayColor(ray core.Ray, world geometry.Shape, random *rand.Rand) core.Vec3 {
	if m.shouldPanic {
		panic("integrator exploded")
	}
	m.calls.Add(1)
	return m.color
}

func createTestScene(t *testing.T, width, height, samples int, shapes ...geometry.Shape) MockScene {
	t.Helper()
	camera, err := geometry.NewCamera(geometry.CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: float64(width) / float64(height),
	})
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	return MockScene{
		camera: camera,
		world:  geometry.NewHittableList(shapes...),
		config: core.SamplingConfig{Width: width, Height: height, SamplesPerPixel: samples, MaxDepth: 10},
	}
}

func TestRaytracer_RejectsInvalidSampling(t *testing.T) {
	testScene := createTestScene(t, 10, 10, 1)
	testScene.config.SamplesPerPixel = 0

	if _, err := NewRaytracer(testScene, nil, Config{}, nil); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestRaytracer_EveryPixelSampled(t *testing.T) {
	testScene := createTestScene(t, 13, 7, 3)
	mock := &MockIntegrator{color: core.NewVec3(0.25, 0.25, 0.25)}

	rt, err := NewRaytracer(testScene, mock, Config{NumWorkers: 3, Seed: 1}, nil)
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}
	img, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if got := mock.calls.Load(); got != 13*7*3 {
		t.Errorf("Expected %d integrator calls, got %d", 13*7*3, got)
	}
	if stats.TotalPixels != 13*7 || stats.TotalSamples != 13*7*3 || stats.Bands != 3 {
		t.Errorf("Unexpected stats %+v", stats)
	}

	// sqrt(0.25) = 0.5, 0.5 * 256 = 128
	expected := core.RGB8{R: 128, G: 128, B: 128}
	for i, pixel := range img.Pixels {
		if pixel != expected {
			t.Fatalf("Pixel %d = %v, expected %v", i, pixel, expected)
		}
	}
}

func TestRaytracer_SkyOrientation(t *testing.T) {
	testScene := createTestScene(t, 20, 12, 4)
	rt, err := NewRaytracer(testScene, nil, Config{NumWorkers: 2, Seed: 42}, nil)
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}
	img, _, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Both sky colors have a blue channel of 1, which clamps to 255
	for i, pixel := range img.Pixels {
		if pixel.B != 255 {
			t.Fatalf("Pixel %d blue channel = %d, expected 255", i, pixel.B)
		}
	}

	// Row 0 is the top of the image and looks up into the bluer sky
	top, bottom := img.At(10, 0), img.At(10, img.Height-1)
	if top.R >= bottom.R {
		t.Errorf("Expected top row to be bluer than bottom row: top=%v bottom=%v", top, bottom)
	}
}

func TestRaytracer_Deterministic(t *testing.T) {
	ground, _ := geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	center, _ := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewDielectric(1.5))
	right, _ := geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3))

	render := func(seed int64) []byte {
		testScene := createTestScene(t, 32, 18, 4, center, ground, right)
		rt, err := NewRaytracer(testScene, nil, Config{NumWorkers: 4, Seed: seed}, nil)
		if err != nil {
			t.Fatalf("NewRaytracer: %v", err)
		}
		img, _, err := rt.Render(context.Background())
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		data, err := EncodePPM(img)
		if err != nil {
			t.Fatalf("EncodePPM: %v", err)
		}
		return data
	}

	first, second := render(42), render(42)
	if !bytes.Equal(first, second) {
		t.Error("Expected identical output for identical seeds")
	}
	if bytes.Equal(first, render(7)) {
		t.Error("Expected a different seed to change the noise")
	}
	if !strings.HasPrefix(string(first), "P3\n32 18\n255\n") {
		t.Errorf("Unexpected header in %q", string(first[:20]))
	}
}

func TestRaytracer_SimpleSceneReproducible(t *testing.T) {
	render := func() []byte {
		simple, err := scene.NewSimpleScene(100, 16.0/9.0)
		if err != nil {
			t.Fatalf("NewSimpleScene: %v", err)
		}
		simple.SamplingConfig.SamplesPerPixel = 4
		simple.SamplingConfig.MaxDepth = 10
		rt, err := NewRaytracer(simple, simple.NewIntegrator(), Config{NumWorkers: 4, Seed: 42}, nil)
		if err != nil {
			t.Fatalf("NewRaytracer: %v", err)
		}
		img, _, err := rt.Render(context.Background())
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		data, err := EncodePPM(img)
		if err != nil {
			t.Fatalf("EncodePPM: %v", err)
		}
		return data
	}

	first := render()
	if !strings.HasPrefix(string(first), "P3\n100 56\n255\n") {
		t.Fatalf("Unexpected header in %q", string(first[:20]))
	}
	if !bytes.Equal(first, render()) {
		t.Error("Expected byte-identical output for the same seed and worker count")
	}
}

func TestRaytracer_WorkerPanicBecomesError(t *testing.T) {
	testScene := createTestScene(t, 8, 8, 1)
	rt, err := NewRaytracer(testScene, &MockIntegrator{shouldPanic: true}, Config{NumWorkers: 2}, nil)
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}

	img, _, err := rt.Render(context.Background())
	if err == nil {
		t.Fatal("Expected render to fail")
	}
	if img != nil {
		t.Error("Expected no image from a failed render")
	}
	if !strings.Contains(err.Error(), "integrator exploded") {
		t.Errorf("Expected panic message in error, got %v", err)
	}
}

func TestRaytracer_Cancelled(t *testing.T) {
	testScene := createTestScene(t, 8, 8, 1)
	rt, err := NewRaytracer(testScene, nil, Config{NumWorkers: 2}, nil)
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := rt.Render(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRaytracer_LogsProgress(t *testing.T) {
	testScene := createTestScene(t, 4, 4, 1)
	var buf bytes.Buffer
	rt, err := NewRaytracer(testScene, nil, Config{NumWorkers: 1}, NewDefaultLogger(&buf))
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}
	if _, _, err := rt.Render(context.Background()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	log := buf.String()
	for _, want := range []string{"Started band 0", "Scanlines remaining: 0", "Finished band 0", "Done:"} {
		if !strings.Contains(log, want) {
			t.Errorf("Expected log to contain %q, got:\n%s", want, log)
		}
	}
}
