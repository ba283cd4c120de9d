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

// Verilog renders g as a Verilog HDL skeleton: a 256-entry one-hot case
// over Symbol per STE, a 12-bit counter with enable/reset OR-trees per
// counter, and a combinational negation of the input OR per inverter.
// Only latch-mode counters are supported; any other mode is an
// autoerr.ErrElementNotSupported.
type Verilog struct{}

func (Verilog) Write(w io.Writer, g *graph.Graph, _ *simulate.Profile) error {
	els := sortedElements(g)

	if _, err := fmt.Fprintf(w, "module %s(\n  input clk,\n  input [7:0] Symbol,\n  output reg [%d:0] Active\n);\n\n",
		sanitize(g.AutomatonID), maxInt(0, len(els)-1)); err != nil {
		return err
	}

	for i, e := range els {
		var err error
		switch e.Kind {
		case element.KindSTE:
			err = writeSTEVerilog(w, e, i)
		case element.KindCounter:
			if e.Mode != element.ModeLatch {
				return autoerr.NotSupported(fmt.Sprintf("verilog export: counter %q uses mode %s, only latch is supported", e.ID, e.Mode))
			}
			err = writeCounterVerilog(w, g, e, i)
		case element.KindInverter:
			err = writeInverterVerilog(w, g, e, i)
		default:
			err = writeGateVerilog(w, g, e, i)
		}
		if err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "endmodule")
	return err
}

func writeSTEVerilog(w io.Writer, e *element.Element, idx int) error {
	if _, err := fmt.Fprintf(w, "// %s: state-transition-element %q\n", sanitize(e.ID), e.Symbols); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "always @(*) case (Symbol)\n"); err != nil {
		return err
	}
	for _, b := range e.Column.Bytes() {
		if _, err := fmt.Fprintf(w, "  8'h%02X: Active[%d] = 1'b1;\n", b, idx); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  default: Active[%d] = 1'b0;\nendcase\n\n", idx)
	return err
}

func writeCounterVerilog(w io.Writer, g *graph.Graph, e *element.Element, idx int) error {
	cntOr, rstOr := portORTrees(g, e)
	_, err := fmt.Fprintf(w,
		"reg [11:0] counter_%[1]d;\nwire cnt_en_%[1]d = %[2]s;\nwire rst_%[1]d = %[3]s;\nalways @(posedge clk) begin\n  if (rst_%[1]d) counter_%[1]d <= 0;\n  else if (cnt_en_%[1]d) counter_%[1]d <= counter_%[1]d + 1;\nend\nalways @(*) Active[%[1]d] = (counter_%[1]d == %[4]d);\n\n",
		idx, cntOr, rstOr, e.Target)
	return err
}

func writeInverterVerilog(w io.Writer, g *graph.Graph, e *element.Element, idx int) error {
	or, _ := portORTrees(g, e)
	_, err := fmt.Fprintf(w, "always @(*) Active[%d] = ~(%s);\n\n", idx, or)
	return err
}

func writeGateVerilog(w io.Writer, g *graph.Graph, e *element.Element, idx int) error {
	or, _ := portORTrees(g, e)
	op := "|"
	if e.Kind == element.KindAND {
		op = "&"
	}
	terms := strings.ReplaceAll(or, "|", op)
	_, err := fmt.Fprintf(w, "always @(*) Active[%d] = %s;\n\n", idx, terms)
	return err
}

// portORTrees returns the Verilog OR-tree expression over every :cnt
// (or unnamed) and :rst predecessor's Active bit, respectively.
func portORTrees(g *graph.Graph, e *element.Element) (cnt, rst string) {
	pos := make(map[*element.Element]int)
	for i, el := range sortedElements(g) {
		pos[el] = i
	}
	var cntTerms, rstTerms []string
	for key := range e.Inputs {
		fromID, port := element.ParsePort(key)
		from, ok := g.Get(fromID)
		if !ok {
			continue
		}
		term := fmt.Sprintf("Active[%d]", pos[from])
		if port == element.PortRst {
			rstTerms = append(rstTerms, term)
		} else {
			cntTerms = append(cntTerms, term)
		}
	}
	if len(cntTerms) == 0 {
		cntTerms = []string{"1'b0"}
	}
	if len(rstTerms) == 0 {
		rstTerms = []string{"1'b0"}
	}
	return strings.Join(cntTerms, " | "), strings.Join(rstTerms, " | ")
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, s)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
