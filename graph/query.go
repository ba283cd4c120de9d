package graph

import "github.com/sarchlab/automa/element"

// IdenticalInputs reports whether a and b have the same incoming edge
// multiset, ignoring self-loops. Prefix/suffix merge rely on this.
func (g *Graph) IdenticalInputs(a, b *element.Element) bool {
	return sameNeighborSet(g.inputNeighbors(a), g.inputNeighbors(b))
}

// IdenticalOutputs reports whether a and b have the same outgoing edge
// multiset, ignoring self-loops.
func (g *Graph) IdenticalOutputs(a, b *element.Element) bool {
	return sameNeighborSet(g.outputNeighbors(a), g.outputNeighbors(b))
}

type neighborKey struct {
	id   string
	port element.Port
}

func (g *Graph) inputNeighbors(e *element.Element) map[neighborKey]int {
	m := make(map[neighborKey]int)
	for key := range e.Inputs {
		id, port := element.ParsePort(key)
		if id == e.ID {
			continue // ignore self-loops
		}
		m[neighborKey{id, port}]++
	}
	return m
}

func (g *Graph) outputNeighbors(e *element.Element) map[neighborKey]int {
	m := make(map[neighborKey]int)
	for _, out := range e.Outputs {
		if out.To == e.IntID {
			continue // ignore self-loops
		}
		to := g.arena[out.To]
		if to == nil {
			continue
		}
		m[neighborKey{to.ID, out.Port}]++
	}
	return m
}

func sameNeighborSet(a, b map[neighborKey]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
