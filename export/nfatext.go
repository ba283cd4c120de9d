package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/sarchlab/automa/autoerr"
	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
	"github.com/sarchlab/automa/simulate"
)

// NFAText renders g as a flat NFA text format: a state count, one line
// per state (": initial" / ": accepting k"), then one
// "from -> to : bytes..." line per edge. Only STEs are supported — a
// special element in g is an element-not-supported error, since the
// format has no special-element notation.
type NFAText struct{}

func (NFAText) Write(w io.Writer, g *graph.Graph, _ *simulate.Profile) error {
	els := sortedElements(g)
	for _, e := range els {
		if e.Kind != element.KindSTE {
			return autoerr.NotSupported("flat NFA text export cannot represent element " + e.ID + " (kind " + e.Kind.String() + ")")
		}
	}

	if _, err := fmt.Fprintln(w, len(els)); err != nil {
		return err
	}

	for _, e := range els {
		switch {
		case e.Start != element.StartNone:
			if _, err := fmt.Fprintf(w, "%s : initial\n", e.ID); err != nil {
				return err
			}
		case e.Reporting:
			if _, err := fmt.Fprintf(w, "%s : accepting %s\n", e.ID, reportNumber(e)); err != nil {
				return err
			}
		default:
			if _, err := fmt.Fprintf(w, "%s\n", e.ID); err != nil {
				return err
			}
		}
	}

	for _, e := range els {
		bytes := e.Column.Bytes()
		if len(bytes) == 0 {
			continue
		}
		for _, o := range e.Outputs {
			to := g.GetByIndex(o.To)
			if to == nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "%s -> %s : %s\n", e.ID, to.ID, byteRangeString(bytes)); err != nil {
				return err
			}
		}
	}

	return nil
}

func reportNumber(e *element.Element) string {
	if e.ReportCode != "" {
		return e.ReportCode
	}
	return "0"
}

// byteRangeString collapses a sorted byte list into "lo-hi" range tokens,
// so an all-input start's self-loop prints as "0-255" instead of 256
// individual bytes.
func byteRangeString(bytes []byte) string {
	var parts []string
	i := 0
	for i < len(bytes) {
		lo := bytes[i]
		hi := lo
		j := i + 1
		for j < len(bytes) && bytes[j] == hi+1 {
			hi = bytes[j]
			j++
		}
		if lo == hi {
			parts = append(parts, fmt.Sprintf("%d", lo))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", lo, hi))
		}
		i = j
	}
	return strings.Join(parts, ",")
}
