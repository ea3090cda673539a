// Package printer renders an arena's block chain and statistics as text or JSON.
package printer

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/arenakit/arena"
)

const (
	DefaultMaxPayloadBytes = 16
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs an aligned, human-readable block map.
	FormatText Format = "text"

	// FormatJSON outputs JSON format.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// Language selects number formatting for text output, e.g. digit
	// grouping in byte counts. JSON output is never localized.
	// Default: language.English
	Language language.Tag

	// ShowDigests adds an xxhash64 digest of each occupied block's payload.
	// Default: true
	ShowDigests bool

	// MaxPayloadBytes limits how many payload bytes are shown per occupied
	// block, hex encoded. Set to 0 to hide payloads.
	// Default: 16
	MaxPayloadBytes int
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:          FormatText,
		Language:        language.English,
		ShowDigests:     true,
		MaxPayloadBytes: DefaultMaxPayloadBytes,
	}
}

// Inspector is the read side of an allocator. Both *arena.Allocator and
// *arena.Locked satisfy it.
type Inspector interface {
	BlockList() []arena.Block
	Contents(arena.Block) ([]byte, error)
	Stats() arena.Stats
}

// Printer handles formatted output of an arena.
type Printer struct {
	opts   Options
	writer io.Writer
	src    Inspector
	msg    *message.Printer
}

// New creates a new Printer.
//
// Example:
//
//	a, _ := arena.New()
//	p := printer.New(a, os.Stdout, printer.DefaultOptions())
//	p.PrintMap()
func New(src Inspector, w io.Writer, opts Options) *Printer {
	return &Printer{
		opts:   opts,
		writer: w,
		src:    src,
		msg:    message.NewPrinter(opts.Language),
	}
}

// PrintMap prints every block in address order.
func (p *Printer) PrintMap() error {
	rows, err := p.rows()
	if err != nil {
		return err
	}
	switch p.opts.Format {
	case FormatJSON:
		return p.printMapJSON(rows)
	case FormatText:
		return p.printMapText(rows)
	default:
		return p.printMapText(rows)
	}
}

// PrintStats prints the allocator's statistics snapshot.
func (p *Printer) PrintStats() error {
	s := p.src.Stats()
	switch p.opts.Format {
	case FormatJSON:
		return p.printStatsJSON(s)
	case FormatText:
		return p.printStatsText(s)
	default:
		return p.printStatsText(s)
	}
}

// row is one block plus what the printer derived from its payload.
type row struct {
	arena.Block
	digest  uint64
	preview []byte
	cut     bool
}

func (p *Printer) rows() ([]row, error) {
	blocks := p.src.BlockList()
	out := make([]row, 0, len(blocks))
	for _, b := range blocks {
		r := row{Block: b}
		if b.Occupied && (p.opts.ShowDigests || p.opts.MaxPayloadBytes > 0) {
			data, err := p.src.Contents(b)
			if err != nil {
				return nil, fmt.Errorf("block at %d: %w", b.Offset, err)
			}
			r.digest = Digest(data)
			n := min(len(data), max(p.opts.MaxPayloadBytes, 0))
			r.preview = data[:n]
			r.cut = n < len(data)
		}
		out = append(out, r)
	}
	return out, nil
}

// Digest returns the xxhash64 digest of a payload.
func Digest(payload []byte) uint64 {
	return xxhash.Sum64(payload)
}

// digestHex formats a digest as 16 lowercase hex digits, never localized.
func digestHex(d uint64) string {
	return fmt.Sprintf("%016x", d)
}
