//go:build unix

package region

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Map returns an anonymous private mapping of size bytes. The kernel hands
// out zeroed pages, and the mapping is invisible to the garbage collector.
func Map(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSize, size)
	}
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE,
	)
	if err != nil {
		return nil, fmt.Errorf("region: mmap %d bytes: %w", size, err)
	}
	return data[:size:size], nil
}
