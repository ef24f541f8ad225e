package renderer

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to an io.Writer.
// Band workers log concurrently, so writes are serialized.
type DefaultLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	fmt.Fprintf(dl.w, format, args...)
}

// NewDefaultLogger creates a logger writing to w, or to stderr when w is nil.
// The image stream owns stdout, so diagnostics never go there by default.
func NewDefaultLogger(w io.Writer) core.Logger {
	if w == nil {
		w = os.Stderr
	}
	return &DefaultLogger{w: w}
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
