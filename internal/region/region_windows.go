//go:build windows

package region

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Map commits size bytes of private read/write memory with VirtualAlloc.
func Map(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSize, size)
	}
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("region: VirtualAlloc %d bytes: %w", size, err)
	}
	// Use unsafe.Pointer in a single expression to avoid linter warnings
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}
