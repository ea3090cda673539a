// Package region obtains the fixed byte region an arena manages from the host.
//
// Map returns memory outside the Go heap where the platform allows it
// (anonymous mmap on unix, VirtualAlloc on windows). Heap returns an
// ordinary Go slice. Neither region is ever handed back: an arena keeps its
// region for the lifetime of the process.
package region

import (
	"errors"
	"fmt"
)

// ErrSize indicates a region request for a non-positive number of bytes.
var ErrSize = errors.New("region: size must be positive")

// Heap returns a zeroed region of size bytes allocated on the Go heap.
func Heap(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSize, size)
	}
	return make([]byte, size), nil
}
