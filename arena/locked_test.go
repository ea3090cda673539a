package arena

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockedConcurrentAllocFree(t *testing.T) {
	l, err := NewLocked(WithCapacity(64*1024), WithSource(HeapSource))
	require.NoError(t, err)

	const workers = 8
	const rounds = 200

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range rounds {
				h, p, err := l.Alloc(8 + (w+r)%64)
				if err != nil {
					errs <- err
					return
				}
				for i := range p {
					p[i] = byte(w)
				}
				got, err := l.Bytes(h)
				if err != nil {
					errs <- err
					return
				}
				for _, b := range got {
					if b != byte(w) {
						errs <- assert.AnError
						return
					}
				}
				if err := l.Free(h); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	require.NoError(t, l.Check())
	s := l.Stats()
	assert.Equal(t, workers*rounds, s.AllocCalls)
	assert.Equal(t, workers*rounds, s.FreeCalls)
	assert.Equal(t, 0, s.OccupiedBlocks)
	assert.Equal(t, 64*1024, l.Capacity())
}

func TestLockedForwardsErrors(t *testing.T) {
	l, err := NewLocked(WithCapacity(64), WithSource(HeapSource))
	require.NoError(t, err)

	h, _, err := l.Alloc(8)
	require.NoError(t, err)
	require.NoError(t, l.Free(h))
	require.ErrorIs(t, l.Free(h), ErrDoubleRelease)

	_, _, err = l.Alloc(1000)
	require.ErrorIs(t, err, ErrOutOfMemory)

	blocks := l.BlockList()
	require.NotEmpty(t, blocks)
	got, err := l.Contents(blocks[0])
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = NewLocked(WithCapacity(1))
	require.ErrorIs(t, err, ErrBadSize)
}
