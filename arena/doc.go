// Package arena provides a fixed-capacity, first-fit, split-only allocator
// over a single byte region.
//
// # Overview
//
// An Allocator owns one region of Capacity bytes, requested from the host the
// first time Alloc is called. The region is carved into blocks, each made of
// a HeaderSize-byte header followed by its payload. Blocks always tile the
// region exactly: walking from offset 0 by HeaderSize+Size lands on the end
// of the region.
//
//	offset 0                                                   Capacity
//	| hdr | payload A | hdr | payload B | hdr | free ...              |
//
// # Allocation Policy
//
//   - First fit: Alloc takes the lowest-addressed free block that is large enough.
//   - Split: a block with more than n+HeaderSize payload bytes is cut into an
//     n-byte occupied block and a free remainder. Smaller slack stays with the
//     caller instead of becoming a sliver too small for a header.
//   - Never merge: Free only flips the block back to free. Adjacent free blocks
//     stay separate, so mixed-size workloads fragment the arena and later
//     requests can fail with ErrOutOfMemory while plenty of bytes are free.
//
// # Usage Example
//
//	a, err := arena.New(arena.WithCapacity(4096))
//	if err != nil {
//	    return err
//	}
//
//	h, buf, err := a.Alloc(50)
//	if errors.Is(err, arena.ErrOutOfMemory) {
//	    // release something and retry
//	}
//	copy(buf, "hello")
//
//	if err := a.Free(h); err != nil {
//	    return err
//	}
//
// # Handles
//
// Alloc returns an opaque Handle carrying the allocator's identity, the block
// offset, and a generation number. Free validates all three, so releasing a
// handle twice returns ErrDoubleRelease and releasing a handle from another
// allocator (or the zero Handle) returns ErrInvalidHandle. A rejected Free
// leaves the chain untouched.
//
// # Host Memory
//
// By default the region is an anonymous mapping outside the Go heap
// (MmapSource). HeapSource uses an ordinary slice. If the host refuses the
// region, the allocator never asks again and every Alloc fails with an error
// matching both ErrOutOfMemory and ErrHostMemoryUnavailable. The region is
// never released.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Use Locked, which holds one mutex
// around the whole arena, or give each goroutine its own Allocator.
//
// # Related Packages
//
//   - github.com/joshuapare/arenakit/arena/printer: text and JSON block maps
package arena
