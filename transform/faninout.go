package transform

import (
	"fmt"

	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
)

// EnforceFanIn splits every STE with more than limit non-self incoming
// edges into ceil(inputs/limit) clones, each receiving at most limit of
// the original predecessors, all of the original's outputs, and its own
// private self-loop if the original had one.
func EnforceFanIn(g *graph.Graph, limit int) {
	for _, e := range stesOverFanIn(g, limit) {
		preds := nonSelfPredecessors(g, e)
		succs := successorsOf(g, e)
		selfLoop, hasSelfLoop := selfLoopPort(e)

		splitInto(g, e, preds, limit, func(clone *element.Element, chunk []endpoint) {
			for _, p := range chunk {
				g.AddEdge(p.element, clone, p.port)
			}
			for _, s := range succs {
				g.AddEdge(clone, s.element, s.port)
			}
			if hasSelfLoop {
				g.AddEdge(clone, clone, selfLoop)
			}
		})

		g.RemoveElement(e)
	}
	g.Finalize()
}

// EnforceFanOut is the dual of EnforceFanIn: it splits every STE with
// more than limit outgoing edges into clones that each drive at most
// limit of the original successors, all sharing the original's full
// predecessor set.
func EnforceFanOut(g *graph.Graph, limit int) {
	for _, e := range stesOverFanOut(g, limit) {
		preds := nonSelfPredecessors(g, e)
		succs := successorsOf(g, e)
		selfLoop, hasSelfLoop := selfLoopPort(e)

		splitInto(g, e, succs, limit, func(clone *element.Element, chunk []endpoint) {
			for _, s := range chunk {
				g.AddEdge(clone, s.element, s.port)
			}
			for _, p := range preds {
				g.AddEdge(p.element, clone, p.port)
			}
			if hasSelfLoop {
				g.AddEdge(clone, clone, selfLoop)
			}
		})

		g.RemoveElement(e)
	}
	g.Finalize()
}

func stesOverFanIn(g *graph.Graph, limit int) []*element.Element {
	var out []*element.Element
	for _, e := range g.Elements() {
		if e.Kind == element.KindSTE && len(nonSelfPredecessors(g, e)) > limit {
			out = append(out, e)
		}
	}
	return out
}

func stesOverFanOut(g *graph.Graph, limit int) []*element.Element {
	var out []*element.Element
	for _, e := range g.Elements() {
		if e.Kind == element.KindSTE && len(nonSelfSuccessors(e)) > limit {
			out = append(out, e)
		}
	}
	return out
}

func nonSelfPredecessors(g *graph.Graph, e *element.Element) []endpoint {
	var out []endpoint
	for _, p := range predecessorsOf(g, e) {
		if p.element != e {
			out = append(out, p)
		}
	}
	return out
}

func nonSelfSuccessors(e *element.Element) []endpoint {
	var out []endpoint
	for _, o := range e.Outputs {
		if o.To != e.IntID {
			out = append(out, endpoint{nil, o.Port}) // resolved by caller via index
		}
	}
	return out
}

func selfLoopPort(e *element.Element) (element.Port, bool) {
	for _, o := range e.Outputs {
		if o.To == e.IntID {
			return o.Port, true
		}
	}
	return element.PortNone, false
}

// splitInto chunks items into groups of at most limit, materializes one
// clone STE per chunk via wire, and returns the clones created.
func splitInto(g *graph.Graph, original *element.Element, items []endpoint, limit int, wire func(clone *element.Element, chunk []endpoint)) []*element.Element {
	var clones []*element.Element
	for i := 0; i < len(items); i += limit {
		end := i + limit
		if end > len(items) {
			end = len(items)
		}
		id := fmt.Sprintf("%s_fanout%d", original.ID, i/limit)
		clone := element.NewSTE(id, original.Symbols, original.Column.Clone(), original.Start)
		clone.Reporting = original.Reporting
		clone.ReportCode = original.ReportCode
		clone.EOD = original.EOD
		g.AddElement(clone)
		wire(clone, items[i:end])
		clones = append(clones, clone)
	}
	return clones
}
