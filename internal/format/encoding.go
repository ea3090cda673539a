package format

import "github.com/joshuapare/arenakit/internal/buf"

// Little-endian field access at absolute offsets inside an arena region.
// Callers bounds-check the whole header once; these helpers only slice.

// PutU32 writes a uint32 value to the buffer at the specified offset in little-endian format.
func PutU32(b []byte, off int, v uint32) {
	buf.PutU32LE(b[off:off+4], v)
}

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	buf.PutU64LE(b[off:off+8], v)
}

// ReadU32 reads a uint32 value from the buffer at the specified offset in little-endian format.
func ReadU32(b []byte, off int) uint32 {
	return buf.U32LE(b[off : off+4])
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return buf.U64LE(b[off : off+8])
}
