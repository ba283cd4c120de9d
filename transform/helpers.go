package transform

import (
	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
)

// endpoint pairs a target element with the port an edge uses to reach
// it, since several transforms need to replay an edge onto a new source
// or destination while keeping its original port.
type endpoint struct {
	element *element.Element
	port    element.Port
}

func orGates(g *graph.Graph) []*element.Element {
	var out []*element.Element
	for _, e := range g.Elements() {
		if e.Kind == element.KindOR {
			out = append(out, e)
		}
	}
	return out
}

// predecessorsOf returns every element with an outgoing edge into e,
// skipping self-loops.
func predecessorsOf(g *graph.Graph, e *element.Element) []endpoint {
	var out []endpoint
	for _, other := range g.Elements() {
		if other == e {
			continue
		}
		for _, o := range other.Outputs {
			if o.To == e.IntID {
				out = append(out, endpoint{other, o.Port})
			}
		}
	}
	return out
}

// successorsOf returns every (destination, port) edge leaving e.
func successorsOf(g *graph.Graph, e *element.Element) []endpoint {
	var out []endpoint
	for _, o := range e.Outputs {
		to := g.GetByIndex(o.To)
		if to == nil || to == e {
			continue
		}
		out = append(out, endpoint{to, o.Port})
	}
	return out
}

// reachableForward returns the set of element int ids reachable from
// roots following outgoing edges.
func reachableForward(g *graph.Graph, roots []*element.Element) map[int]bool {
	seen := make(map[int]bool)
	queue := append([]*element.Element(nil), roots...)
	for _, r := range roots {
		seen[r.IntID] = true
	}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		for _, o := range e.Outputs {
			if seen[o.To] {
				continue
			}
			to := g.GetByIndex(o.To)
			if to == nil {
				continue
			}
			seen[o.To] = true
			queue = append(queue, to)
		}
	}
	return seen
}

// reachableBackward returns the set of element int ids that can reach
// any of roots, following edges backward (i.e. forward from roots over
// the transposed graph).
func reachableBackward(g *graph.Graph, roots []*element.Element) map[int]bool {
	seen := make(map[int]bool)
	queue := append([]*element.Element(nil), roots...)
	for _, r := range roots {
		seen[r.IntID] = true
	}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		for _, other := range g.Elements() {
			if seen[other.IntID] {
				continue
			}
			for _, o := range other.Outputs {
				if o.To == e.IntID {
					seen[other.IntID] = true
					queue = append(queue, other)
					break
				}
			}
		}
	}
	return seen
}
