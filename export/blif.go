package export

import (
	"fmt"
	"io"

	"github.com/sarchlab/automa/autoerr"
	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
	"github.com/sarchlab/automa/simulate"
)

const blifMaxFanIn = 16

// BLIF renders g as a BLIF netlist: every STE becomes a ".subckt ste"
// instance with up to blifMaxFanIn enable inputs (padded with "unconn")
// and one "active" output; fan-in above the limit is a fatal
// hardware-constraint-violated error.
type BLIF struct{}

func (BLIF) Write(w io.Writer, g *graph.Graph, _ *simulate.Profile) error {
	els := sortedElements(g)

	if _, err := fmt.Fprintf(w, ".model %s\n", sanitize(g.AutomatonID)); err != nil {
		return err
	}

	for _, e := range els {
		if e.Kind != element.KindSTE {
			return autoerr.NotSupported("BLIF export cannot represent element " + e.ID + " (kind " + e.Kind.String() + ")")
		}

		preds := predecessorIDs(g, e)
		if len(preds) > blifMaxFanIn {
			return autoerr.HardwareLimit("automaton fan-in exceeds hardware limit: %s has %d inputs (max %d)", e.ID, len(preds), blifMaxFanIn)
		}
		for len(preds) < blifMaxFanIn {
			preds = append(preds, "unconn")
		}

		if _, err := fmt.Fprintf(w, ".subckt ste %s active=%s\n", joinInputs(preds), e.ID); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, ".end")
	return err
}

func predecessorIDs(g *graph.Graph, e *element.Element) []string {
	var out []string
	for _, other := range g.Elements() {
		if other == e {
			continue
		}
		for _, o := range other.Outputs {
			if o.To == e.IntID {
				out = append(out, other.ID)
			}
		}
	}
	return out
}

func joinInputs(preds []string) string {
	out := ""
	for i, p := range preds {
		out += fmt.Sprintf("in%d=%s ", i, p)
	}
	return out
}
