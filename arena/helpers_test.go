package arena

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestAllocator returns a heap-backed allocator of the given capacity.
func newTestAllocator(t testing.TB, capacity int) *Allocator {
	t.Helper()
	a, err := New(WithCapacity(capacity), WithSource(HeapSource))
	require.NoError(t, err)
	return a
}

// mustAlloc allocates n bytes and fails the test on error.
func mustAlloc(t testing.TB, a *Allocator, n int) (Handle, []byte) {
	t.Helper()
	h, p, err := a.Alloc(n)
	require.NoError(t, err, "Alloc(%d)", n)
	return h, p
}

// assertInvariants checks the tiling invariant both through Check and by
// walking the public block list.
func assertInvariants(t testing.TB, a *Allocator) {
	t.Helper()
	require.NoError(t, a.Check())
	if !a.Stats().Usable {
		require.Empty(t, a.BlockList())
		return
	}
	next := 0
	for _, b := range a.BlockList() {
		require.Equal(t, next, b.Offset, "block must start where the previous one ended")
		next = b.End()
	}
	require.Equal(t, a.Capacity(), next, "chain must end exactly at capacity")
}

// countingSource records how often the host was asked for memory.
type countingSource struct {
	calls int
	err   error
	short int
}

func (s *countingSource) Region(size int) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.short > 0 {
		return make([]byte, size-s.short), nil
	}
	return make([]byte, size), nil
}

var errHostDown = errors.New("host: no memory")
