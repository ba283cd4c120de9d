// Package transform implements in-place graph rewrites that simplify or
// restructure an automaton while preserving its observable behavior:
// one file per transform.
package transform

import "github.com/sarchlab/automa/graph"

// EliminateOR removes every OR gate: predecessors gain a
// direct edge to every successor, a reporting OR hands its report status
// down to its predecessors first, then the gate itself is deleted.
func EliminateOR(g *graph.Graph) {
	for _, or := range orGates(g) {
		preds := predecessorsOf(g, or)
		succs := successorsOf(g, or)

		if or.Reporting {
			for _, p := range preds {
				p.element.Reporting = true
				if p.element.ReportCode == "" {
					p.element.ReportCode = or.ReportCode
				}
			}
		}

		for _, p := range preds {
			for _, s := range succs {
				g.AddEdge(p.element, s.element, s.port)
			}
		}

		g.RemoveElement(or)
	}
	g.Finalize()
}
