//go:build !unix && !windows

package region

// Map falls back to a heap region when the platform has no anonymous mapping.
func Map(size int) ([]byte, error) {
	return Heap(size)
}
