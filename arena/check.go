package arena

import (
	"fmt"

	"github.com/joshuapare/arenakit/internal/format"
)

// Check verifies the chain against the region:
//   - blocks tile [0, Capacity) exactly, in order, with no gap or overlap
//   - every header in the region agrees with the allocator's record
//   - occupied blocks carry a non-zero generation and fit their request
//
// Before the region exists there is nothing to check and Check returns nil.
func (a *Allocator) Check() error {
	if a.data == nil {
		return nil
	}
	if len(a.blocks) == 0 {
		return fmt.Errorf("%w: empty chain over %d bytes", ErrCorrupt, a.capacity)
	}

	next := 0
	for i, b := range a.blocks {
		if b.off != next {
			return fmt.Errorf("%w: block %d starts at %d, want %d", ErrCorrupt, i, b.off, next)
		}
		if b.size < 0 {
			return fmt.Errorf("%w: block %d has negative size %d", ErrCorrupt, i, b.size)
		}

		h, err := format.ReadHeader(a.data, b.off)
		if err != nil {
			return fmt.Errorf("%w: block %d: %w", ErrCorrupt, i, err)
		}
		if h != b.header() {
			return fmt.Errorf("%w: block %d header %+v disagrees with record %+v",
				ErrCorrupt, i, h, b.header())
		}
		if format.Next(b.off, h) != b.end() {
			return fmt.Errorf("%w: block %d successor mismatch", ErrCorrupt, i)
		}

		if b.occupied && (b.gen == 0 || b.req > b.size) {
			return fmt.Errorf("%w: block %d occupied with gen %d, request %d of %d",
				ErrCorrupt, i, b.gen, b.req, b.size)
		}

		next = b.end()
		if next > a.capacity {
			return fmt.Errorf("%w: block %d ends at %d past capacity %d", ErrCorrupt, i, next, a.capacity)
		}
	}
	if next != a.capacity {
		return fmt.Errorf("%w: chain ends at %d, capacity %d", ErrCorrupt, next, a.capacity)
	}
	return nil
}
