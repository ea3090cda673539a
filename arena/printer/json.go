package printer

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/joshuapare/arenakit/arena"
)

// jsonBlock represents a block in JSON format.
type jsonBlock struct {
	Offset        int    `json:"offset"`
	PayloadOffset int    `json:"payload_offset"`
	Size          int    `json:"size"`
	Requested     int    `json:"requested"`
	State         string `json:"state"`
	Digest        string `json:"digest,omitempty"`
	Data          string `json:"data,omitempty"`
	Truncated     bool   `json:"truncated,omitempty"`
}

// jsonStats represents the statistics snapshot in JSON format.
type jsonStats struct {
	Capacity       int     `json:"capacity"`
	HeaderSize     int     `json:"header_size"`
	Initialized    bool    `json:"initialized"`
	Usable         bool    `json:"usable"`
	Blocks         int     `json:"blocks"`
	FreeBlocks     int     `json:"free_blocks"`
	OccupiedBlocks int     `json:"occupied_blocks"`
	FreeBytes      int     `json:"free_bytes"`
	UsedBytes      int     `json:"used_bytes"`
	RequestedBytes int     `json:"requested_bytes"`
	HeaderBytes    int     `json:"header_bytes"`
	LargestFree    int     `json:"largest_free"`
	Fragmentation  float64 `json:"fragmentation"`
	AllocCalls     int     `json:"alloc_calls"`
	FreeCalls      int     `json:"free_calls"`
	Splits         int     `json:"splits"`
	OutOfMemory    int     `json:"out_of_memory"`
	Rejected       int     `json:"rejected"`
}

func (p *Printer) printMapJSON(rows []row) error {
	out := make([]jsonBlock, 0, len(rows))
	for _, r := range rows {
		jb := jsonBlock{
			Offset:        r.Offset,
			PayloadOffset: r.PayloadOffset(),
			Size:          r.Size,
			Requested:     r.Requested,
			State:         state(r.Block),
		}
		if r.Occupied {
			if p.opts.ShowDigests {
				jb.Digest = digestHex(r.digest)
			}
			if p.opts.MaxPayloadBytes > 0 {
				jb.Data = hex.EncodeToString(r.preview)
				jb.Truncated = r.cut
			}
		}
		out = append(out, jb)
	}
	return p.encode(out)
}

func (p *Printer) printStatsJSON(s arena.Stats) error {
	return p.encode(jsonStats(s))
}

func (p *Printer) encode(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}
