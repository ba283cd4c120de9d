// Package subset implements NFA-to-DFA subset construction over
// homogeneous automata: classical powerset construction using each
// STE's match column as its input predicate.
package subset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sarchlab/automa/autoerr"
	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
	"github.com/sarchlab/automa/symset"
)

// nfaState is a set of original-graph int ids: one powerset element.
type nfaState map[int]bool

func (s nfaState) key(g *graph.Graph) string {
	ids := make([]string, 0, len(s))
	for idx := range s {
		ids = append(ids, g.GetByIndex(idx).ID)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

func union(a, b nfaState) nfaState {
	out := make(nfaState, len(a)+len(b))
	for k := range a {
		out[k] = true
	}
	for k := range b {
		out[k] = true
	}
	return out
}

type dfaState struct {
	set  nfaState
	elem *element.Element
}

// Determinize builds the deterministic equivalent of g by classical
// powerset construction. g must contain STEs only. The initial DFA
// state is the empty set; its successor on byte b is the set of start
// STEs (start-of-data or all-input) that match b, mirroring how the
// simulator's own enable-starts phase brings start STEs into play at
// cycle 0. Determinize is worst-case exponential in the number of
// source STEs and may not terminate on adversarial automata — callers
// must bound its use themselves.
func Determinize(g *graph.Graph) (*graph.Graph, error) {
	for _, e := range g.Elements() {
		if e.Kind != element.KindSTE {
			return nil, autoerr.NotSupported("subset construction requires an all-STE graph")
		}
	}

	dfa := graph.New(g.AutomatonID + "_dfa")

	allInput := nfaState{}
	startOfData := nfaState{}
	for _, e := range g.Elements() {
		switch e.Start {
		case element.StartAllInput:
			allInput[e.IntID] = true
		case element.StartOfData:
			startOfData[e.IntID] = true
		}
	}

	seen := make(map[string]*dfaState)
	var queue []*dfaState

	makeState := func(set nfaState, col symset.Column) *dfaState {
		ck := col.Key()
		key := set.key(g) + "|" + fmt.Sprintf("%d-%d-%d-%d", ck[0], ck[1], ck[2], ck[3])
		if rec, ok := seen[key]; ok {
			return rec
		}
		e := element.NewSTE(fmt.Sprintf("dfa%d", len(seen)), symset.Canonical(col), col, element.StartNone)
		for idx := range set {
			src := g.GetByIndex(idx)
			if src.Reporting {
				e.Reporting = true
				if e.ReportCode == "" {
					e.ReportCode = src.ReportCode
				}
			}
		}
		dfa.AddElement(e)
		rec := &dfaState{set: set, elem: e}
		seen[key] = rec
		queue = append(queue, rec)
		return rec
	}

	wireTransitions(g, union(allInput, startOfData), func(set nfaState, col symset.Column) {
		rec := makeState(set, col)
		rec.elem.Start = element.StartOfData
	})

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		enabled := nfaState{}
		for idx := range cur.set {
			for _, o := range g.GetByIndex(idx).Outputs {
				enabled[o.To] = true
			}
		}
		wireTransitions(g, union(enabled, allInput), func(set nfaState, col symset.Column) {
			rec := makeState(set, col)
			dfa.AddEdge(cur.elem, rec.elem, element.PortNone)
		})
	}

	dfa.Finalize()
	return dfa, nil
}

// wireTransitions groups bytes 0..255 by the set of STEs in active that
// match them, and invokes emit once per distinct non-empty matched set
// with the union column of bytes that produce it.
func wireTransitions(g *graph.Graph, active nfaState, emit func(nfaState, symset.Column)) {
	type group struct {
		set nfaState
		col symset.Column
	}
	groups := make(map[string]*group)
	var order []string

	for b := 0; b < 256; b++ {
		next := nfaState{}
		for idx := range active {
			s := g.GetByIndex(idx)
			if s == nil || !s.Matches(byte(b)) {
				continue
			}
			next[idx] = true
		}
		if len(next) == 0 {
			continue
		}
		k := next.key(g)
		grp, ok := groups[k]
		if !ok {
			grp = &group{set: next, col: symset.NewColumn()}
			groups[k] = grp
			order = append(order, k)
		}
		grp.col.Set(byte(b))
	}

	for _, k := range order {
		grp := groups[k]
		emit(grp.set, grp.col)
	}
}
