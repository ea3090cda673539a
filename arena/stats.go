package arena

import "fmt"

// Stats is a snapshot of the chain and of lifetime operation counts.
type Stats struct {
	Capacity    int  // Total arena size, headers included
	HeaderSize  int  // Bytes per block header
	Initialized bool // Region requested from the host
	Usable      bool // Region obtained; false before init or after host failure

	Blocks         int // Blocks in the chain
	FreeBlocks     int // Blocks not handed out
	OccupiedBlocks int // Blocks handed out

	FreeBytes      int // Payload bytes in free blocks
	UsedBytes      int // Payload bytes in occupied blocks
	RequestedBytes int // Bytes asked for by current owners
	HeaderBytes    int // Bytes spent on headers
	LargestFree    int // Payload of the largest free block

	// Fragmentation is 1 - LargestFree/FreeBytes: 0 when all free space is
	// one block, approaching 1 as free space splinters. 0 when nothing is free.
	Fragmentation float64

	AllocCalls  int // Alloc calls that reached the chain
	FreeCalls   int // Free calls, rejected ones included
	Splits      int // Blocks created by splitting
	OutOfMemory int // Alloc calls that found no fit
	Rejected    int // Free calls refused as invalid or double release
}

// Stats returns a snapshot of the allocator.
func (a *Allocator) Stats() Stats {
	s := Stats{
		Capacity:    a.capacity,
		HeaderSize:  HeaderSize,
		Initialized: a.initialized,
		Usable:      a.data != nil,
		AllocCalls:  a.stats.allocCalls,
		FreeCalls:   a.stats.freeCalls,
		Splits:      a.stats.splits,
		OutOfMemory: a.stats.outOfMemory,
		Rejected:    a.stats.rejected,
	}
	for _, b := range a.blocks {
		s.Blocks++
		s.HeaderBytes += HeaderSize
		if b.occupied {
			s.OccupiedBlocks++
			s.UsedBytes += b.size
			s.RequestedBytes += b.req
			continue
		}
		s.FreeBlocks++
		s.FreeBytes += b.size
		s.LargestFree = max(s.LargestFree, b.size)
	}
	if s.FreeBytes > 0 {
		s.Fragmentation = 1 - float64(s.LargestFree)/float64(s.FreeBytes)
	}
	return s
}

// Blocks calls fn for every block in address order until fn returns false.
// Nothing is visited before the region exists.
func (a *Allocator) Blocks(fn func(Block) bool) {
	for _, b := range a.blocks {
		if !fn(b.public()) {
			return
		}
	}
}

// BlockList returns every block in address order.
func (a *Allocator) BlockList() []Block {
	out := make([]Block, 0, len(a.blocks))
	a.Blocks(func(b Block) bool {
		out = append(out, b)
		return true
	})
	return out
}

// Contents returns a copy of the requested bytes of an occupied block, for
// inspection tools. Free blocks yield nil.
func (a *Allocator) Contents(b Block) ([]byte, error) {
	for _, rec := range a.blocks {
		if rec.off != b.Offset {
			continue
		}
		if !rec.occupied {
			return nil, nil
		}
		p, err := a.payload(rec)
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), p...), nil
	}
	return nil, fmt.Errorf("%w: no block starts at offset %d", ErrInvalidHandle, b.Offset)
}
