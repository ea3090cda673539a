package printer

import (
	"encoding/hex"

	"github.com/joshuapare/arenakit/arena"
)

func state(b arena.Block) string {
	if b.Occupied {
		return "occupied"
	}
	return "free"
}

// printMapText prints the block map as aligned columns.
func (p *Printer) printMapText(rows []row) error {
	header := "%8s %8s %8s %9s  %-8s"
	args := []any{"OFFSET", "PAYLOAD", "SIZE", "REQUESTED", "STATE"}
	if p.opts.ShowDigests {
		header += "  %-16s"
		args = append(args, "DIGEST")
	}
	if p.opts.MaxPayloadBytes > 0 {
		header += "  %s"
		args = append(args, "DATA")
	}
	if _, err := p.msg.Fprintf(p.writer, header+"\n", args...); err != nil {
		return err
	}

	for _, r := range rows {
		p.msg.Fprintf(p.writer, "%8d %8d %8d %9d  %-8s",
			r.Offset, r.PayloadOffset(), r.Size, r.Requested, state(r.Block))
		if p.opts.ShowDigests {
			if r.Occupied {
				p.msg.Fprintf(p.writer, "  %s", digestHex(r.digest))
			} else {
				p.msg.Fprintf(p.writer, "  %-16s", "-")
			}
		}
		if p.opts.MaxPayloadBytes > 0 && r.Occupied {
			data := hex.EncodeToString(r.preview)
			if r.cut {
				data += "..."
			}
			p.msg.Fprintf(p.writer, "  %s", data)
		}
		if _, err := p.msg.Fprintf(p.writer, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// printStatsText prints the statistics snapshot as labelled lines.
func (p *Printer) printStatsText(s arena.Stats) error {
	w := p.writer
	p.msg.Fprintf(w, "Capacity:       %d bytes (header %d bytes)\n", s.Capacity, s.HeaderSize)
	if !s.Usable {
		state := "not initialized"
		if s.Initialized {
			state = "host memory unavailable"
		}
		_, err := p.msg.Fprintf(w, "State:          %s\n", state)
		return err
	}
	p.msg.Fprintf(w, "Blocks:         %d (%d occupied, %d free)\n", s.Blocks, s.OccupiedBlocks, s.FreeBlocks)
	p.msg.Fprintf(w, "Used:           %d bytes (%d requested)\n", s.UsedBytes, s.RequestedBytes)
	p.msg.Fprintf(w, "Free:           %d bytes (largest block %d)\n", s.FreeBytes, s.LargestFree)
	p.msg.Fprintf(w, "Headers:        %d bytes\n", s.HeaderBytes)
	p.msg.Fprintf(w, "Fragmentation:  %.1f%%\n", s.Fragmentation*100)
	_, err := p.msg.Fprintf(w, "Operations:     %d alloc, %d free, %d split, %d out of memory, %d rejected\n",
		s.AllocCalls, s.FreeCalls, s.Splits, s.OutOfMemory, s.Rejected)
	return err
}
