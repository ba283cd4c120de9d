package transform

import (
	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
)

// SuffixMerge is the dual of PrefixMerge: it merges right-equivalent STE
// pairs (identical column, start type, reporting state/code, and
// outgoing-edge multiset) by moving the right element's predecessors
// onto the left element and deleting the right element.
func SuffixMerge(g *graph.Graph) {
	for {
		left, right, ok := findEquivalentPair(g, RightEquivalent)
		if !ok {
			break
		}
		for _, p := range predecessorsOf(g, right) {
			g.AddEdge(p.element, left, p.port)
		}
		g.RemoveElement(right)
		g.Finalize()
	}
}

// RightEquivalent is the dual of LeftEquivalent: same column/start/
// reporting state and an identical outgoing edge multiset.
func RightEquivalent(g *graph.Graph, a, b *element.Element) bool {
	return a.Kind == element.KindSTE && b.Kind == element.KindSTE &&
		a.Column.Equal(b.Column) &&
		a.Start == b.Start &&
		a.Reporting == b.Reporting &&
		a.ReportCode == b.ReportCode &&
		g.IdenticalOutputs(a, b)
}
