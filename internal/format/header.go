// Package format defines the in-region block header layout used by the arena.
package format

import (
	"fmt"
	"math"

	"github.com/joshuapare/arenakit/internal/buf"
)

// Block header layout (little-endian):
//
//	Offset  Size  Description
//	0x00    8     Payload size in bytes, header excluded.
//	0x08    4     Flags. Bit 0 set => occupied.
//	0x0C    4     Generation, bumped every time the block is handed out.
//	0x10    ...   Payload.
const (
	HeaderSize = 16

	sizeOffset  = 0x00
	flagsOffset = 0x08
	genOffset   = 0x0C
)

// FlagOccupied marks a block that is currently handed out.
const FlagOccupied uint32 = 1 << 0

const knownFlags = FlagOccupied

// Header is the decoded form of a block header.
type Header struct {
	Size  int
	Flags uint32
	Gen   uint32
}

// Occupied reports whether the occupied flag is set.
func (h Header) Occupied() bool { return h.Flags&FlagOccupied != 0 }

// PutHeader encodes h at off.
func PutHeader(b []byte, off int, h Header) error {
	if !buf.Has(b, off, HeaderSize) {
		return fmt.Errorf("header at %d: %w", off, ErrTruncated)
	}
	if h.Size < 0 {
		return fmt.Errorf("header at %d: %w (%d)", off, ErrSizeRange, h.Size)
	}
	PutU64(b, off+sizeOffset, uint64(h.Size))
	PutU32(b, off+flagsOffset, h.Flags)
	PutU32(b, off+genOffset, h.Gen)
	return nil
}

// ReadHeader decodes the header at off.
func ReadHeader(b []byte, off int) (Header, error) {
	if !buf.Has(b, off, HeaderSize) {
		return Header{}, fmt.Errorf("header at %d: %w", off, ErrTruncated)
	}
	raw := ReadU64(b, off+sizeOffset)
	if raw > math.MaxInt {
		return Header{}, fmt.Errorf("header at %d: %w (%d)", off, ErrSizeRange, raw)
	}
	h := Header{
		Size:  int(raw),
		Flags: ReadU32(b, off+flagsOffset),
		Gen:   ReadU32(b, off+genOffset),
	}
	if h.Flags&^knownFlags != 0 {
		return Header{}, fmt.Errorf("header at %d: %w (0x%x)", off, ErrBadFlags, h.Flags)
	}
	return h, nil
}

// Payload returns the payload offset for the header at off.
func Payload(off int) int { return off + HeaderSize }

// Next returns the offset of the header following the block at off.
func Next(off int, h Header) int { return off + HeaderSize + h.Size }
