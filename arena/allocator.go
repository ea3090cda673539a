package arena

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/joshuapare/arenakit/internal/buf"
	"github.com/joshuapare/arenakit/internal/format"
)

// nextID hands out allocator identities so handles from one allocator are
// rejected by every other.
var nextID atomic.Uint32

// Allocator is a fixed-capacity, first-fit, split-only allocator over one
// byte region.
//   - The region is requested from the Source on the first Alloc, never earlier
//     and never again.
//   - Blocks are carved by splitting and never merged back together.
//   - Not safe for concurrent use; see Locked.
type Allocator struct {
	id       uint32
	capacity int
	src      Source
	log      *slog.Logger

	// initialized flips on the first Alloc whether or not the host delivered.
	// hostErr is non-nil forever once the host request failed.
	initialized bool
	hostErr     error

	data   []byte
	blocks []block // sorted by off, exactly tiling data

	stats counters
}

// counters holds lifetime operation counts.
type counters struct {
	allocCalls  int
	freeCalls   int
	splits      int
	outOfMemory int
	rejected    int
}

// New returns an allocator that will manage a region of the configured
// capacity. No memory is requested until the first Alloc.
func New(opts ...Option) (*Allocator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.capacity < HeaderSize {
		return nil, fmt.Errorf("%w: capacity %d is smaller than one header (%d)",
			ErrBadSize, cfg.capacity, HeaderSize)
	}
	return &Allocator{
		id:       nextID.Add(1),
		capacity: cfg.capacity,
		src:      cfg.source,
		log:      cfg.logger,
	}, nil
}

// Capacity returns the total arena size in bytes, headers included.
func (a *Allocator) Capacity() int { return a.capacity }

// Initialized reports whether the region has been requested from the host.
func (a *Allocator) Initialized() bool { return a.initialized }

// init requests the region exactly once and installs a single free block
// spanning all of it.
func (a *Allocator) init() error {
	if a.initialized {
		return a.hostErr
	}
	a.initialized = true

	data, err := a.src.Region(a.capacity)
	if err == nil && len(data) < a.capacity {
		err = fmt.Errorf("host returned %d of %d bytes", len(data), a.capacity)
	}
	if err != nil {
		a.hostErr = fmt.Errorf("%w: %w: %w", ErrOutOfMemory, ErrHostMemoryUnavailable, err)
		a.log.Debug("arena: host region unavailable", "capacity", a.capacity, "error", err)
		return a.hostErr
	}

	a.data = data[:a.capacity:a.capacity]
	first := block{off: 0, size: a.capacity - HeaderSize}
	if err := a.writeHeader(first); err != nil {
		a.data = nil
		a.hostErr = fmt.Errorf("%w: %w: %w", ErrOutOfMemory, ErrHostMemoryUnavailable, err)
		return a.hostErr
	}
	a.blocks = append(a.blocks[:0], first)
	a.log.Debug("arena: region ready", "capacity", a.capacity, "free", first.size)
	return nil
}

// Alloc hands out the first free block, in address order, whose payload
// holds at least n bytes. A block with more than n+HeaderSize bytes is split
// so the caller gets exactly n; otherwise the caller gets the whole block.
//
// The returned slice has length n and a capacity equal to the block's
// payload size. Its contents are zeroed. n == 0 is legal and yields a
// distinct handle with an empty payload.
//
// Alloc returns ErrOutOfMemory when no block fits, and an error matching
// both ErrOutOfMemory and ErrHostMemoryUnavailable when the host never
// delivered the region.
func (a *Allocator) Alloc(n int) (Handle, []byte, error) {
	if n < 0 {
		return Handle{}, nil, fmt.Errorf("%w: negative request %d", ErrBadSize, n)
	}
	if err := a.init(); err != nil {
		return Handle{}, nil, err
	}
	a.stats.allocCalls++

	i := a.firstFit(n)
	if i < 0 {
		a.stats.outOfMemory++
		a.log.Debug("arena: no fit", "need", n, "blocks", len(a.blocks))
		return Handle{}, nil, fmt.Errorf("%w: no free block holds %d bytes", ErrOutOfMemory, n)
	}

	if a.blocks[i].size > n+HeaderSize {
		if err := a.split(i, n); err != nil {
			return Handle{}, nil, err
		}
	}

	b := &a.blocks[i]
	b.occupied = true
	b.req = n
	b.gen++
	if b.gen == 0 {
		// Generation 0 is reserved for the zero Handle.
		b.gen = 1
	}
	if err := a.writeHeader(*b); err != nil {
		return Handle{}, nil, err
	}

	payload, err := a.payload(*b)
	if err != nil {
		return Handle{}, nil, err
	}
	clear(payload[:cap(payload)])
	return Handle{arena: a.id, gen: b.gen, off: b.off}, payload, nil
}

// firstFit returns the index of the lowest-addressed free block whose
// payload holds n bytes, or -1.
func (a *Allocator) firstFit(n int) int {
	for i, b := range a.blocks {
		if !b.occupied && b.size >= n {
			return i
		}
	}
	return -1
}

// split shrinks blocks[i] to n payload bytes and inserts a free block in
// the slack that follows it. The caller guarantees size > n+HeaderSize.
func (a *Allocator) split(i, n int) error {
	b := a.blocks[i]
	rest := block{
		off:  b.off + HeaderSize + n,
		size: b.size - n - HeaderSize,
	}
	if err := a.writeHeader(rest); err != nil {
		return err
	}
	a.blocks[i].size = n
	a.blocks = slices.Insert(a.blocks, i+1, rest)
	a.stats.splits++
	a.log.Debug("arena: split", "off", b.off, "keep", n, "rest_off", rest.off, "rest", rest.size)
	return nil
}

// Free releases the block behind h. Neighbouring free blocks are left as
// they are; the chain is never merged.
//
// Free returns ErrInvalidHandle for handles this allocator never issued and
// ErrDoubleRelease for handles whose block was already released. In both
// cases the chain is left untouched.
func (a *Allocator) Free(h Handle) error {
	a.stats.freeCalls++
	i, err := a.lookup(h)
	if err != nil {
		a.stats.rejected++
		return err
	}
	b := &a.blocks[i]
	b.occupied = false
	b.req = 0
	return a.writeHeader(*b)
}

// Bytes returns the payload of a live handle, with the same length and
// capacity Alloc returned.
func (a *Allocator) Bytes(h Handle) ([]byte, error) {
	i, err := a.lookup(h)
	if errors.Is(err, ErrDoubleRelease) {
		return nil, fmt.Errorf("%w: %s was released", ErrInvalidHandle, h)
	}
	if err != nil {
		return nil, err
	}
	return a.payload(a.blocks[i])
}

// lookup resolves h to its block index, checking that h was issued here and
// that the block is still held under h's generation.
func (a *Allocator) lookup(h Handle) (int, error) {
	if h.IsZero() || h.arena != a.id || h.gen == 0 || a.data == nil {
		return -1, fmt.Errorf("%w: %s", ErrInvalidHandle, h)
	}
	i, found := slices.BinarySearchFunc(a.blocks, h.off, func(b block, off int) int {
		return cmp.Compare(b.off, off)
	})
	if !found {
		return -1, fmt.Errorf("%w: no block starts at offset %d", ErrInvalidHandle, h.off)
	}
	b := a.blocks[i]
	if !b.occupied || b.gen != h.gen {
		return -1, fmt.Errorf("%w: block at offset %d (handle g%d, block g%d)",
			ErrDoubleRelease, h.off, h.gen, b.gen)
	}
	return i, nil
}

// payload returns the caller's view of b: length req, capacity size.
func (a *Allocator) payload(b block) ([]byte, error) {
	p, ok := buf.Window(a.data, format.Payload(b.off), b.size)
	if !ok {
		return nil, fmt.Errorf("%w: payload of block at %d (%d bytes) exceeds region",
			ErrCorrupt, b.off, b.size)
	}
	return p[:b.req], nil
}

func (a *Allocator) writeHeader(b block) error {
	if err := format.PutHeader(a.data, b.off, b.header()); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return nil
}
