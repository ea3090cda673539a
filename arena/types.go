package arena

import (
	"fmt"

	"github.com/joshuapare/arenakit/internal/format"
)

// HeaderSize is the number of bytes every block spends on its header.
const HeaderSize = format.HeaderSize

// Handle is the opaque token returned by Alloc. It names one hand-out of one
// block; once the block is released the handle is spent for good, even if
// the same block is handed out again later.
//
// The zero Handle is never valid.
type Handle struct {
	arena uint32
	gen   uint32
	off   int
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h == Handle{} }

// Offset returns the payload offset of the block inside the arena.
func (h Handle) Offset() int { return format.Payload(h.off) }

func (h Handle) String() string {
	if h.IsZero() {
		return "arena.Handle(nil)"
	}
	return fmt.Sprintf("arena#%d@%d/g%d", h.arena, h.off, h.gen)
}

// Block describes one block of the chain, as reported by Blocks and BlockList.
type Block struct {
	Offset    int  // Header offset from the arena base
	Size      int  // Payload bytes, header excluded
	Requested int  // Bytes asked for by the current owner (0 when free)
	Occupied  bool // True while handed out
}

// PayloadOffset returns the offset of the first payload byte.
func (b Block) PayloadOffset() int { return format.Payload(b.Offset) }

// End returns the offset just past the block, which is where the next block starts.
func (b Block) End() int { return b.Offset + HeaderSize + b.Size }

// Slack returns payload bytes handed out beyond what the owner asked for.
func (b Block) Slack() int {
	if !b.Occupied {
		return 0
	}
	return b.Size - b.Requested
}

// block is the allocator's record for one block. Records are kept sorted by
// off and mirror the header written at off inside the region.
type block struct {
	off      int
	size     int
	req      int
	gen      uint32
	occupied bool
}

func (b block) header() format.Header {
	h := format.Header{Size: b.size, Gen: b.gen}
	if b.occupied {
		h.Flags |= format.FlagOccupied
	}
	return h
}

func (b block) public() Block {
	return Block{Offset: b.off, Size: b.size, Requested: b.req, Occupied: b.occupied}
}

func (b block) end() int { return b.off + HeaderSize + b.size }
