package transform

import (
	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
)

// MergeCommonPaths folds together STE siblings that share both their
// full input and output edge sets: the survivor's match column becomes
// the union of both, and the sibling is deleted. Reporting and special
// elements are never touched, since widening a reporting STE's column
// would change which inputs it reports on.
func MergeCommonPaths(g *graph.Graph) {
	for {
		a, b, ok := findEquivalentPair(g, commonPathEquivalent)
		if !ok {
			break
		}
		a.Column.Union(b.Column)
		g.RemoveElement(b)
		g.Finalize()
	}
}

func commonPathEquivalent(g *graph.Graph, a, b *element.Element) bool {
	if a.Kind != element.KindSTE || b.Kind != element.KindSTE {
		return false
	}
	if a.Reporting || b.Reporting {
		return false
	}
	return g.IdenticalInputs(a, b) && g.IdenticalOutputs(a, b)
}
