package transform

import (
	"fmt"

	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
	"github.com/sarchlab/automa/symset"
)

// Widen inserts, after every STE s, a new pad STE that only matches
// \x00: every successor of s becomes a successor of the pad instead, an
// edge s -> pad is added, and s's reporting status moves to the pad.
// This is the transform's own widening scheme for adding one cycle of
// delay per STE without changing which inputs are eventually reported
// on.
func Widen(g *graph.Graph) {
	col, err := symset.Compile(`\x00`)
	if err != nil {
		panic("transform: widen pad column: " + err.Error())
	}

	for _, s := range stes(g) {
		succs := successorsOf(g, s)

		pad := element.NewSTE(fmt.Sprintf("%s_pad", s.ID), `\x00`, col.Clone(), element.StartNone)
		pad.Reporting = s.Reporting
		pad.ReportCode = s.ReportCode
		pad.EOD = s.EOD
		g.AddElement(pad)

		s.Reporting = false
		s.ReportCode = ""

		for _, o := range succs {
			if o.element == s {
				continue // a self-loop still targets s, not the pad
			}
			g.RemoveEdge(s, o.element, o.port)
			g.AddEdge(pad, o.element, o.port)
		}
		g.AddEdge(s, pad, element.PortNone)
	}
	g.Finalize()
}

func stes(g *graph.Graph) []*element.Element {
	var out []*element.Element
	for _, e := range g.Elements() {
		if e.Kind == element.KindSTE {
			out = append(out, e)
		}
	}
	return out
}
