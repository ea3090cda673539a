package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoubleReleaseRejected(t *testing.T) {
	a := newTestAllocator(t, 256)
	h, _ := mustAlloc(t, a, 32)

	require.NoError(t, a.Free(h))
	before := a.BlockList()

	err := a.Free(h)
	require.ErrorIs(t, err, ErrDoubleRelease)
	assert.Equal(t, before, a.BlockList(), "a rejected release must not touch the chain")
	assert.Equal(t, 1, a.Stats().Rejected)
	assertInvariants(t, a)
}

// TestStaleHandleAfterReuse releases a handle whose block was handed out
// again. The stale release must fail and the new owner must keep its block.
func TestStaleHandleAfterReuse(t *testing.T) {
	a := newTestAllocator(t, 256)
	old, _ := mustAlloc(t, a, 32)
	require.NoError(t, a.Free(old))

	fresh, p := mustAlloc(t, a, 32)
	require.Equal(t, old.Offset(), fresh.Offset(), "first fit hands the same block out again")
	require.NotEqual(t, old, fresh)
	copy(p, "still mine")

	require.ErrorIs(t, a.Free(old), ErrDoubleRelease)

	got, err := a.Bytes(fresh)
	require.NoError(t, err)
	assert.Equal(t, "still mine", string(got[:10]))
	require.NoError(t, a.Free(fresh))
}

func TestZeroHandleRejected(t *testing.T) {
	a := newTestAllocator(t, 256)
	mustAlloc(t, a, 1)

	var h Handle
	assert.True(t, h.IsZero())
	require.ErrorIs(t, a.Free(h), ErrInvalidHandle)
	_, err := a.Bytes(h)
	require.ErrorIs(t, err, ErrInvalidHandle)
}

func TestForeignHandleRejected(t *testing.T) {
	a := newTestAllocator(t, 256)
	b := newTestAllocator(t, 256)

	ha, _ := mustAlloc(t, a, 16)
	mustAlloc(t, b, 16)

	require.ErrorIs(t, b.Free(ha), ErrInvalidHandle)
	assert.True(t, b.BlockList()[0].Occupied, "b's own block must stay occupied")
	require.NoError(t, a.Free(ha))
}

func TestReleaseBeforeInitRejected(t *testing.T) {
	a := newTestAllocator(t, 256)
	other := newTestAllocator(t, 256)
	h, _ := mustAlloc(t, other, 8)

	require.ErrorIs(t, a.Free(h), ErrInvalidHandle)
	assert.False(t, a.Initialized())
}

// TestForgedOffsetRejected builds a handle that names this allocator but an
// offset where no block starts.
func TestForgedOffsetRejected(t *testing.T) {
	a := newTestAllocator(t, 256)
	h, _ := mustAlloc(t, a, 8)

	forged := h
	forged.off += 3
	require.ErrorIs(t, a.Free(forged), ErrInvalidHandle)

	forged = h
	forged.gen = 0
	require.ErrorIs(t, a.Free(forged), ErrInvalidHandle)

	require.NoError(t, a.Free(h))
}

func TestHandleString(t *testing.T) {
	assert.Equal(t, "arena.Handle(nil)", Handle{}.String())

	h := Handle{arena: 7, gen: 2, off: 66}
	assert.Equal(t, "arena#7@66/g2", h.String())
	assert.Equal(t, 82, h.Offset())
}

// TestGenerationWraps keeps the generation away from the reserved zero value.
func TestGenerationWraps(t *testing.T) {
	a := newTestAllocator(t, 64)
	h, _ := mustAlloc(t, a, 8)
	require.NoError(t, a.Free(h))

	a.blocks[0].gen = ^uint32(0)
	require.NoError(t, a.writeHeader(a.blocks[0]))

	h2, _ := mustAlloc(t, a, 8)
	assert.Equal(t, uint32(1), h2.gen)
	require.NoError(t, a.Free(h2))
	assertInvariants(t, a)
}
