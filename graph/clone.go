package graph

import "github.com/sarchlab/automa/element"

// Clone deep-copies every element of g into a new graph, preserving
// string identifiers. Callers merging clones with colliding ids are
// responsible for renaming first; Clone itself performs no collision
// checking since it always produces a single independent graph. Used
// by automaton.RunParallel to give each partition its own
// simulator-owned graph instance.
func (g *Graph) Clone() *Graph {
	ng := New(g.AutomatonID)
	for _, e := range g.Elements() {
		ng.AddElement(cloneOne(e))
	}
	for _, e := range g.Elements() {
		from, _ := ng.Get(e.ID)
		for _, o := range e.Outputs {
			to := g.GetByIndex(o.To)
			if to == nil {
				continue
			}
			toClone, _ := ng.Get(to.ID)
			ng.AddEdge(from, toClone, o.Port)
		}
	}
	ng.Finalize()
	return ng
}

func cloneOne(e *element.Element) *element.Element {
	var clone *element.Element
	switch e.Kind {
	case element.KindSTE:
		clone = element.NewSTE(e.ID, e.Symbols, e.Column.Clone(), e.Start)
	case element.KindCounter:
		clone = element.NewCounter(e.ID, e.Target, e.Mode)
	default:
		clone = element.NewGate(e.ID, e.Kind)
	}
	clone.Reporting = e.Reporting
	clone.ReportCode = e.ReportCode
	clone.EOD = e.EOD
	return clone
}
