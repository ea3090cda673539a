package arena

import "errors"

var (
	// ErrHostMemoryUnavailable indicates the one-time region request to the host
	// failed. The allocator stays unusable for the rest of the process.
	ErrHostMemoryUnavailable = errors.New("arena: host memory unavailable")

	// ErrOutOfMemory indicates no free block is large enough for the request.
	// Releasing blocks and retrying may succeed.
	ErrOutOfMemory = errors.New("arena: out of memory")

	// ErrInvalidHandle indicates a handle that was never issued by this allocator.
	ErrInvalidHandle = errors.New("arena: invalid handle")

	// ErrDoubleRelease indicates a handle whose block was already released.
	ErrDoubleRelease = errors.New("arena: double release")

	// ErrBadSize indicates a negative request or an unusable capacity.
	ErrBadSize = errors.New("arena: bad size")

	// ErrCorrupt indicates the block chain or an in-region header no longer
	// matches the allocator's bookkeeping.
	ErrCorrupt = errors.New("arena: corrupt block chain")
)
