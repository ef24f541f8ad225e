package renderer

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_RunsEveryBand(t *testing.T) {
	pool := NewWorkerPool(4)
	bands := SplitBands(10, pool.GetNumWorkers())

	seen := make([]bool, len(bands))
	err := pool.Run(context.Background(), bands, func(ctx context.Context, band Band) error {
		seen[band.Index] = true
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, ok := range seen {
		if !ok {
			t.Errorf("Band %d never ran", i)
		}
	}
}

func TestWorkerPool_DefaultsToCPUCount(t *testing.T) {
	if pool := NewWorkerPool(0); pool.GetNumWorkers() < 1 {
		t.Errorf("Expected at least one worker, got %d", pool.GetNumWorkers())
	}
}

func TestWorkerPool_ReturnsFirstError(t *testing.T) {
	pool := NewWorkerPool(3)
	bands := SplitBands(9, 3)
	errBand := errors.New("band failed")

	err := pool.Run(context.Background(), bands, func(ctx context.Context, band Band) error {
		if band.Index == 1 {
			return errBand
		}
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, errBand) {
		t.Errorf("Expected band error, got %v", err)
	}
}

func TestWorkerPool_RecoversPanics(t *testing.T) {
	pool := NewWorkerPool(2)
	bands := SplitBands(4, 2)

	var finished atomic.Int32
	err := pool.Run(context.Background(), bands, func(ctx context.Context, band Band) error {
		if band.Index == 0 {
			panic("boom")
		}
		finished.Add(1)
		return nil
	})
	if err == nil {
		t.Fatal("Expected panic to surface as an error")
	}
	if !strings.Contains(err.Error(), "panicked: boom") {
		t.Errorf("Expected error to describe the panic, got %v", err)
	}
	if finished.Load() != 1 {
		t.Errorf("Expected the other band to finish, got %d", finished.Load())
	}
}
