package transform

import (
	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
)

// EliminateDeadStates removes every STE that cannot reach any reporting
// element, or that no start STE can reach, since neither contributes to
// any observable behavior.
func EliminateDeadStates(g *graph.Graph) {
	liveForward := reachableForward(g, g.Starts())
	liveBackward := reachableBackward(g, g.Reports())

	elems := g.Elements()
	for _, e := range elems {
		if e.Kind == element.KindSTE && (!liveForward[e.IntID] || !liveBackward[e.IntID]) {
			e.SetCut(true)
		}
	}
	for _, e := range elems {
		if e.Cut() {
			g.RemoveElement(e)
		}
	}
	g.Finalize()
}
