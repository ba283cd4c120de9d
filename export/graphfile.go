package export

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/sarchlab/automa/autoerr"
	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
	"github.com/sarchlab/automa/simulate"
)

// GraphFile renders g as the HyperScan-style ".graph" adjacency format:
// a state count, then one line per STE ("id
// 256-bit-reachability start startDs accept"), then one adjacency line
// per edge.
type GraphFile struct{}

func (GraphFile) Write(w io.Writer, g *graph.Graph, _ *simulate.Profile) error {
	els := sortedElements(g)
	for _, e := range els {
		if e.Kind != element.KindSTE {
			return autoerr.NotSupported("graph file export cannot represent element " + e.ID + " (kind " + e.Kind.String() + ")")
		}
	}

	if _, err := fmt.Fprintf(w, "N %d\n", len(els)); err != nil {
		return err
	}

	for _, e := range els {
		start, startDs, accept := 0, 0, 0
		if e.Start == element.StartAllInput {
			start = 1
		}
		if e.Start == element.StartOfData {
			startDs = 1
		}
		if e.Reporting {
			accept = 1
		}
		if _, err := fmt.Fprintf(w, "%s %s %d %d %d\n", e.ID, reachabilityHex(e), start, startDs, accept); err != nil {
			return err
		}
	}

	for _, e := range els {
		for _, o := range e.Outputs {
			if to := g.GetByIndex(o.To); to != nil {
				if _, err := fmt.Fprintf(w, "%s -> %s\n", e.ID, to.ID); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// reachabilityHex packs the 256-bit match column into 32 bytes (symbol b
// is bit b%8, least significant first, of byte b/8) and hex-encodes it.
func reachabilityHex(e *element.Element) string {
	var raw [32]byte
	for _, b := range e.Column.Bytes() {
		raw[b/8] |= 1 << (b % 8)
	}
	return hex.EncodeToString(raw[:])
}
