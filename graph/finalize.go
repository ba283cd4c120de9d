package graph

import (
	"github.com/sarchlab/automa/autoerr"
	"github.com/sarchlab/automa/element"
)

// Finalize recomputes orderedSpecialElements and refreshes the starts/
// reports views from current element flags. orderedSpecials is a BFS
// order over special elements such that each element appears after all
// of its special-element predecessors, computed by repeatedly scanning
// for ready elements and re-enqueuing the rest, tolerating cycles
// between special elements by falling back to arrival order once no
// further progress is possible (a special-element cycle has no
// well-defined topological order).
func (g *Graph) Finalize() {
	g.refreshViews()

	specialPreds := make(map[int][]int) // idx -> special-element predecessor idxs
	for _, idx := range g.specials {
		specialPreds[idx] = nil
	}
	for _, from := range g.arena {
		if from == nil {
			continue
		}
		for _, out := range from.Outputs {
			to := g.arena[out.To]
			if to == nil || !to.IsSpecialElement() {
				continue
			}
			if from.IsSpecialElement() {
				specialPreds[out.To] = append(specialPreds[out.To], from.IntID)
			}
		}
	}

	emitted := make(map[int]bool, len(g.specials))
	order := make([]int, 0, len(g.specials))
	remaining := append([]int(nil), g.specials...)

	for len(remaining) > 0 {
		progressed := false
		next := remaining[:0]
		for _, idx := range remaining {
			ready := true
			for _, pred := range specialPreds[idx] {
				if !emitted[pred] {
					ready = false
					break
				}
			}
			if ready {
				order = append(order, idx)
				emitted[idx] = true
				progressed = true
			} else {
				next = append(next, idx)
			}
		}
		remaining = next
		if !progressed {
			// Cycle among special elements: emit the rest in arrival
			// order to guarantee every special element is still settled
			// once per cycle.
			for _, idx := range remaining {
				order = append(order, idx)
				emitted[idx] = true
			}
			break
		}
	}

	g.orderedSpecials = order
}

// Validate performs one linear pass over every element, checking edge
// bidirectionality and that every referenced id resolves, returning the
// first violation found.
func (g *Graph) Validate() error {
	for _, e := range g.arena {
		if e == nil {
			continue
		}
		for _, out := range e.Outputs {
			to := g.arena[out.To]
			if to == nil {
				return g.fail(autoerr.Malformed(
					"element %q has an output edge to non-existent index %d", e.ID, out.To))
			}
			key := e.ID + out.Port.String()
			if _, ok := to.Inputs[key]; !ok {
				return g.fail(autoerr.Malformed(
					"edge %s -> %s%s is not mirrored in the destination's inputs", e.ID, to.ID, out.Port.String()))
			}
		}
	}

	for _, e := range g.arena {
		if e == nil {
			continue
		}
		for key := range e.Inputs {
			fromID, port := element.ParsePort(key)
			from, ok := g.Get(fromID)
			if !ok {
				return g.fail(autoerr.Malformed(
					"element %q has an input from non-existent id %q", e.ID, fromID))
			}
			found := false
			for _, out := range from.Outputs {
				if out.To == e.IntID && out.Port == port {
					found = true
					break
				}
			}
			if !found {
				return g.fail(autoerr.Malformed(
					"input %s on %q has no mirroring output edge", key, e.ID))
			}
		}
	}

	return nil
}
