package transform

import (
	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
)

// RemoveRedundantEdges deletes every inbound edge to an all-input start
// STE: such an STE self-enables every cycle regardless of any
// predecessor, so a wired predecessor can never change its behavior.
func RemoveRedundantEdges(g *graph.Graph) {
	for _, e := range g.Elements() {
		if e.Kind != element.KindSTE || e.Start != element.StartAllInput {
			continue
		}
		for _, p := range predecessorsOf(g, e) {
			g.RemoveEdge(p.element, e, p.port)
		}
	}
	g.Finalize()
}
