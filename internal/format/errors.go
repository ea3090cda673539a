package format

import "errors"

var (
	// ErrTruncated indicates the region lacked the bytes required for a header.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrBadFlags indicates a header carried flag bits this package never writes.
	ErrBadFlags = errors.New("format: unknown header flags")
	// ErrSizeRange indicates a header size that cannot be represented as int.
	ErrSizeRange = errors.New("format: size out of range")
)
