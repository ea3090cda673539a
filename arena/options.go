package arena

import (
	"io"
	"log/slog"
	"os"

	"github.com/joshuapare/arenakit/internal/region"
)

// DefaultCapacity is the arena size used when WithCapacity is not given.
const DefaultCapacity = 1024

// Source obtains the arena's backing region from the host. It is called at
// most once per Allocator, on the first Alloc.
type Source interface {
	Region(size int) ([]byte, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(size int) ([]byte, error)

// Region calls f(size).
func (f SourceFunc) Region(size int) ([]byte, error) { return f(size) }

var (
	// MmapSource maps anonymous memory outside the Go heap. This is the default.
	MmapSource Source = SourceFunc(region.Map)

	// HeapSource allocates the region as an ordinary Go slice.
	HeapSource Source = SourceFunc(region.Heap)
)

// Runtime debug flag for allocation tracing - controlled by ARENA_LOG_ALLOC env var.
var logAlloc = os.Getenv("ARENA_LOG_ALLOC") != ""

// Option configures an Allocator.
type Option func(*config)

type config struct {
	capacity int
	source   Source
	logger   *slog.Logger
}

func defaultConfig() config {
	return config{
		capacity: DefaultCapacity,
		source:   MmapSource,
		logger:   defaultLogger(),
	}
}

func defaultLogger() *slog.Logger {
	if logAlloc {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithCapacity sets the total arena size in bytes, headers included.
// It must be at least HeaderSize.
func WithCapacity(n int) Option {
	return func(c *config) { c.capacity = n }
}

// WithSource sets where the region comes from. A nil Source is ignored.
func WithSource(s Source) Option {
	return func(c *config) {
		if s != nil {
			c.source = s
		}
	}
}

// WithLogger sets the logger used for debug-level lifecycle tracing.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
