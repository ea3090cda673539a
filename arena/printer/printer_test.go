package printer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/joshuapare/arenakit/arena"
)

// newDemoArena replays alloc 50, alloc 100, free first, alloc 40 and writes
// a short string into the 40-byte block.
func newDemoArena(t *testing.T) *arena.Allocator {
	t.Helper()
	a, err := arena.New(arena.WithSource(arena.HeapSource))
	require.NoError(t, err)

	h1, _, err := a.Alloc(50)
	require.NoError(t, err)
	_, _, err = a.Alloc(100)
	require.NoError(t, err)
	require.NoError(t, a.Free(h1))
	_, p, err := a.Alloc(40)
	require.NoError(t, err)
	copy(p, "hello")
	return a
}

func TestPrinter_PrintMap_Text(t *testing.T) {
	a := newDemoArena(t)

	var buf bytes.Buffer
	p := New(a, &buf, DefaultOptions())
	require.NoError(t, p.PrintMap())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	t.Logf("Text output:\n%s", buf.String())
	require.Len(t, lines, 4, "header plus three blocks")
	assert.Contains(t, lines[0], "OFFSET")
	assert.Contains(t, lines[0], "DIGEST")
	assert.Contains(t, lines[1], "occupied")
	assert.Contains(t, lines[3], "free")

	contents := make([]byte, 40)
	copy(contents, "hello")
	assert.Contains(t, lines[1], fmt.Sprintf("%016x", xxhash.Sum64(contents)))
	assert.Contains(t, lines[1], "68656c6c6f", "hex preview of the payload")
	assert.Contains(t, lines[1], "...", "40 bytes exceed the 16-byte preview")
}

func TestPrinter_PrintMap_TextGroupsDigits(t *testing.T) {
	a, err := arena.New(arena.WithCapacity(8192), arena.WithSource(arena.HeapSource))
	require.NoError(t, err)
	_, _, err = a.Alloc(2048)
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.ShowDigests = false
	opts.MaxPayloadBytes = 0
	require.NoError(t, New(a, &buf, opts).PrintMap())

	out := buf.String()
	assert.Contains(t, out, "2,048")
	assert.NotContains(t, out, "DIGEST")
	assert.NotContains(t, out, "DATA")
}

func TestPrinter_PrintMap_JSON(t *testing.T) {
	a := newDemoArena(t)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatJSON
	require.NoError(t, New(a, &buf, opts).PrintMap())

	var blocks []jsonBlock
	require.NoError(t, json.Unmarshal(buf.Bytes(), &blocks))
	require.Len(t, blocks, 3)

	assert.Equal(t, 0, blocks[0].Offset)
	assert.Equal(t, 16, blocks[0].PayloadOffset)
	assert.Equal(t, 50, blocks[0].Size)
	assert.Equal(t, 40, blocks[0].Requested)
	assert.Equal(t, "occupied", blocks[0].State)
	assert.Len(t, blocks[0].Digest, 16)
	assert.True(t, blocks[0].Truncated)

	assert.Equal(t, "free", blocks[2].State)
	assert.Empty(t, blocks[2].Digest)
	assert.Empty(t, blocks[2].Data)
}

func TestPrinter_PrintStats_Text(t *testing.T) {
	a := newDemoArena(t)

	var buf bytes.Buffer
	require.NoError(t, New(a, &buf, DefaultOptions()).PrintStats())

	out := buf.String()
	assert.Contains(t, out, "Capacity:       1,024 bytes (header 16 bytes)")
	assert.Contains(t, out, "Blocks:         3 (2 occupied, 1 free)")
	assert.Contains(t, out, "Used:           150 bytes (140 requested)")
	assert.Contains(t, out, "Fragmentation:  0.0%")
	assert.Contains(t, out, "3 alloc, 1 free, 2 split")
}

func TestPrinter_PrintStats_TextBeforeInit(t *testing.T) {
	a, err := arena.New(arena.WithSource(arena.HeapSource))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, New(a, &buf, DefaultOptions()).PrintStats())
	assert.Contains(t, buf.String(), "not initialized")
}

func TestPrinter_PrintStats_TextHostFailure(t *testing.T) {
	a, err := arena.New(arena.WithSource(arena.SourceFunc(func(int) ([]byte, error) {
		return nil, errors.New("no memory")
	})))
	require.NoError(t, err)
	_, _, err = a.Alloc(1)
	require.ErrorIs(t, err, arena.ErrHostMemoryUnavailable)

	var buf bytes.Buffer
	require.NoError(t, New(a, &buf, DefaultOptions()).PrintStats())
	assert.Contains(t, buf.String(), "host memory unavailable")
}

func TestPrinter_PrintStats_JSON(t *testing.T) {
	a := newDemoArena(t)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatJSON
	require.NoError(t, New(a, &buf, opts).PrintStats())

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.EqualValues(t, 1024, got["capacity"])
	assert.EqualValues(t, 826, got["free_bytes"])
	assert.EqualValues(t, 2, got["splits"])
	assert.Equal(t, true, got["usable"])
}

func TestPrinter_LocalizedGrouping(t *testing.T) {
	a := newDemoArena(t)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Language = language.German
	require.NoError(t, New(a, &buf, opts).PrintStats())
	assert.Contains(t, buf.String(), "1.024 bytes")
}

func TestPrinter_WithLocked(t *testing.T) {
	l, err := arena.NewLocked(arena.WithSource(arena.HeapSource))
	require.NoError(t, err)
	_, _, err = l.Alloc(8)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, New(l, &buf, DefaultOptions()).PrintMap())
	assert.Contains(t, buf.String(), "occupied")
}

func TestDigest(t *testing.T) {
	assert.Equal(t, xxhash.Sum64String("abc"), Digest([]byte("abc")))
	assert.NotEqual(t, Digest([]byte("abc")), Digest([]byte("abd")))
}
