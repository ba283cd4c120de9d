// Package graph is the element container: it owns every element,
// maintains the starts/reports/specials views, finalizes the special-
// element topological order simulation needs, and validates the
// structural invariants of the graph model.
package graph

import (
	"github.com/sarchlab/automa/autoerr"
	"github.com/sarchlab/automa/element"
)

// Graph owns the elements of one automaton. Elements live in an arena
// (stable int id = arena index) with a side string-keyed index instead
// of intrusive pointers between elements.
type Graph struct {
	AutomatonID string

	arena []*element.Element // arena[i] == nil means a tombstoned slot
	ids   *idBinding

	starts   []int // arena indices of STEs with Start != StartNone
	reports  []int // arena indices of every reporting element
	specials []int // arena indices of every non-STE element

	// activateNoInput holds NOR/Inverter elements that can drive their
	// output high with no predecessor ever having fired.
	activateNoInput []int

	// orderedSpecials is the BFS-over-special-element-predecessors order
	// Finalize computes; Simulate relies on it for same-cycle visibility
	// during the special-element settle phase.
	orderedSpecials []int

	markEpoch uint64
	lastErr   error
}

// New creates an empty graph.
func New(automatonID string) *Graph {
	return &Graph{AutomatonID: automatonID, ids: newIDBinding()}
}

// LastError returns the most recent error recorded by a failing
// operation; it is not cleared automatically.
func (g *Graph) LastError() error { return g.lastErr }

func (g *Graph) fail(err error) error {
	g.lastErr = err
	return err
}

// Get looks up an element by string id.
func (g *Graph) Get(id string) (*element.Element, bool) {
	idx, ok := g.ids.lookup(id)
	if !ok {
		return nil, false
	}
	return g.arena[idx], true
}

// MustGet looks up an element by string id and panics if absent; for
// use by call sites that have already validated the id exists.
func (g *Graph) MustGet(id string) *element.Element {
	e, ok := g.Get(id)
	if !ok {
		panic("graph: MustGet(" + id + "): " + autoerr.NotFound(id).Error())
	}
	return e
}

// GetByIndex looks up an element by its dense arena index. Returns nil
// for a tombstoned or out-of-range index.
func (g *Graph) GetByIndex(idx int) *element.Element {
	if idx < 0 || idx >= len(g.arena) {
		return nil
	}
	return g.arena[idx]
}

// Len returns the number of live (non-tombstoned) elements.
func (g *Graph) Len() int {
	n := 0
	for _, e := range g.arena {
		if e != nil {
			n++
		}
	}
	return n
}

// Elements returns every live element in arena order. The returned
// slice is a fresh copy; callers may safely retain it across mutations.
func (g *Graph) Elements() []*element.Element {
	out := make([]*element.Element, 0, len(g.arena))
	for _, e := range g.arena {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

// AddElement inserts e into the arena, assigning it a dense int id, and
// updates the starts/reports/specials views from its current flags.
func (g *Graph) AddElement(e *element.Element) {
	idx := len(g.arena)
	e.IntID = idx
	g.arena = append(g.arena, e)
	g.ids.bind(e.ID, idx)
	g.indexElement(idx)
}

func (g *Graph) indexElement(idx int) {
	e := g.arena[idx]
	if e == nil {
		return
	}
	if e.Kind == element.KindSTE && e.Start != element.StartNone {
		g.starts = append(g.starts, idx)
	}
	if e.Reporting {
		g.reports = append(g.reports, idx)
	}
	if e.IsSpecialElement() {
		g.specials = append(g.specials, idx)
		if e.CanActivateWithoutEnable() {
			g.activateNoInput = append(g.activateNoInput, idx)
		}
	}
}

// RemoveElement deletes e from the graph: from the arena, from every
// view, and from every neighbor's edge lists.
func (g *Graph) RemoveElement(e *element.Element) {
	idx := e.IntID
	if idx < 0 || idx >= len(g.arena) || g.arena[idx] != e {
		return
	}

	for _, other := range g.arena {
		if other == nil || other == e {
			continue
		}
		other.RemoveOutput(idx, element.PortNone)
		other.RemoveOutput(idx, element.PortCnt)
		other.RemoveOutput(idx, element.PortRst)
		for key := range other.Inputs {
			id, _ := element.ParsePort(key)
			if id == e.ID {
				delete(other.Inputs, key)
			}
		}
	}

	g.ids.unbind(e.ID, idx)
	g.arena[idx] = nil
	g.starts = removeIndex(g.starts, idx)
	g.reports = removeIndex(g.reports, idx)
	g.specials = removeIndex(g.specials, idx)
	g.activateNoInput = removeIndex(g.activateNoInput, idx)
	g.orderedSpecials = removeIndex(g.orderedSpecials, idx)
}

func removeIndex(s []int, idx int) []int {
	out := s[:0]
	for _, v := range s {
		if v != idx {
			out = append(out, v)
		}
	}
	return out
}

// UpdateID renames e's string id, atomically reflecting the change in
// the side map.
func (g *Graph) UpdateID(e *element.Element, newID string) {
	g.ids.rebind(e.ID, newID, e.IntID)
	e.ID = newID
}

// AddEdge connects from -> to, attaching port to the destination side.
// Both endpoints' records are reconciled so each one reflects the
// connection: the source gets an Edge{To, Port} entry and the
// destination's Inputs map gains a "fromID[:port]" -> false key.
func (g *Graph) AddEdge(from, to *element.Element, port element.Port) {
	from.AddOutput(to.IntID, port)
	key := from.ID + port.String()
	if _, ok := to.Inputs[key]; !ok {
		to.Inputs[key] = false
	}
}

// AddEdgeByID is the string-id form of AddEdge.
func (g *Graph) AddEdgeByID(fromID, toID string, port element.Port) error {
	from, ok := g.Get(fromID)
	if !ok {
		return g.fail(autoerr.NotFound(fromID))
	}
	to, ok := g.Get(toID)
	if !ok {
		return g.fail(autoerr.NotFound(toID))
	}
	g.AddEdge(from, to, port)
	return nil
}

// RemoveEdge disconnects from -> to on the given port.
func (g *Graph) RemoveEdge(from, to *element.Element, port element.Port) {
	from.RemoveOutput(to.IntID, port)
	key := from.ID + port.String()
	delete(to.Inputs, key)
}

// Mark sets the traversal mark bit on e using the graph's current
// epoch; UnmarkAll bumps the epoch in O(1) instead of clearing every
// element's bit.
func (g *Graph) Mark(e *element.Element) { e.Marked = g.markEpoch }

// IsMarked reports whether e was marked since the last UnmarkAll.
func (g *Graph) IsMarked(e *element.Element) bool { return e.Marked == g.markEpoch && g.markEpoch != 0 }

// UnmarkAll clears every element's mark, amortized O(1).
func (g *Graph) UnmarkAll() { g.markEpoch++ }

// Starts returns the start STEs.
func (g *Graph) Starts() []*element.Element { return g.resolve(g.starts) }

// Reports returns every reporting element.
func (g *Graph) Reports() []*element.Element { return g.resolve(g.reports) }

// Specials returns every special (non-STE) element.
func (g *Graph) Specials() []*element.Element { return g.resolve(g.specials) }

// ActivateNoInputSpecials returns the NOR/Inverter elements that can
// activate with no predecessor ever firing.
func (g *Graph) ActivateNoInputSpecials() []*element.Element { return g.resolve(g.activateNoInput) }

// OrderedSpecials returns the topological order Finalize computed.
func (g *Graph) OrderedSpecials() []*element.Element { return g.resolve(g.orderedSpecials) }

func (g *Graph) resolve(idxs []int) []*element.Element {
	out := make([]*element.Element, 0, len(idxs))
	for _, idx := range idxs {
		if e := g.arena[idx]; e != nil {
			out = append(out, e)
		}
	}
	return out
}

// refreshViews rebuilds starts/reports/specials/activateNoInput from
// scratch, used by Finalize to guarantee the views reflect current
// element flags even if a transform mutated Reporting/Start directly.
func (g *Graph) refreshViews() {
	g.starts = g.starts[:0]
	g.reports = g.reports[:0]
	g.specials = g.specials[:0]
	g.activateNoInput = g.activateNoInput[:0]
	for idx := range g.arena {
		g.indexElement(idx)
	}
}
