package transform

import (
	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
)

// PrefixMerge repeatedly merges left-equivalent STE pairs to a fixed
// point: identical match column, start type, reporting state and report
// code, and identical incoming-edge multiset (ignoring self-loops). The
// right element's outgoing edges move onto the left element and the
// right element is deleted. The scan repeats over the whole graph until
// no pair is left, rather than processing one BFS level at a time: a
// merge replaces the right element by the left one in its successors'
// inputs, which can make those successors left-equivalent in turn, and
// the next scan picks them up.
func PrefixMerge(g *graph.Graph) {
	for {
		left, right, ok := findEquivalentPair(g, LeftEquivalent)
		if !ok {
			break
		}
		for _, s := range successorsOf(g, right) {
			g.AddEdge(left, s.element, s.port)
		}
		g.RemoveElement(right)
		g.Finalize()
	}
}

// LeftEquivalent reports whether a and b are candidates for prefix
// merging: same column/start/reporting state and an identical incoming
// edge multiset (ignoring self-loops). Exported so callers and tests can
// use exactly the definition PrefixMerge applies; MergeCommonPaths uses
// its own predicate (commonPathEquivalent).
func LeftEquivalent(g *graph.Graph, a, b *element.Element) bool {
	return a.Kind == element.KindSTE && b.Kind == element.KindSTE &&
		a.Column.Equal(b.Column) &&
		a.Start == b.Start &&
		a.Reporting == b.Reporting &&
		a.ReportCode == b.ReportCode &&
		g.IdenticalInputs(a, b)
}

// findEquivalentPair scans every unordered pair of live STEs and returns
// the first one satisfying eq, in arena order (deterministic).
func findEquivalentPair(g *graph.Graph, eq func(*graph.Graph, *element.Element, *element.Element) bool) (a, b *element.Element, ok bool) {
	elems := g.Elements()
	for i := 0; i < len(elems); i++ {
		for j := i + 1; j < len(elems); j++ {
			if eq(g, elems[i], elems[j]) {
				return elems[i], elems[j], true
			}
		}
	}
	return nil, nil, false
}
