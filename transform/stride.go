package transform

import (
	"fmt"
	"math/bits"

	"github.com/bits-and-blooms/bitset"

	"github.com/sarchlab/automa/autoerr"
	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
)

// StrideState is one state of a 2-strided automaton. Unlike every other
// transform in this package, striding cannot be represented as a
// graph.Graph of element.Element values: a strided state's alphabet is
// k-byte-wide packed symbols (up to 14 bits for a [0,127] source
// alphabet), which does not fit the 256-bit symset.Column the element
// model assumes for a single-byte-per-cycle stream. StrideResult is
// therefore its own minimal widened-alphabet graph representation.
type StrideState struct {
	ID         string
	Column     *bitset.BitSet // indexed by packed symbol, width 1<<(2*K)
	Start      element.StartType
	Reporting  bool
	ReportCode string
	Out        []string
	Dangling   bool // a single-symbol node for an STE with no outgoing edges
}

// StrideResult is the full output of a 2-stride transform.
type StrideResult struct {
	States   map[string]*StrideState
	Starts   []string
	K        uint // bit-width of the original alphabet
	Dangling []string
}

// Matches reports whether the packed symbol (c2<<k | c1) is a member of
// s's column.
func (s *StrideState) Matches(c1, c2 byte, k uint) bool {
	return s.Column.Test(uint(c2)<<k | uint(c1))
}

// Stride2 builds a 2-strided automaton from g: one new state per
// original edge (s1, s2) between STEs, whose column contains packed
// symbol (c2<<k | c1) whenever s1 matches c1 and s2 matches c2. New
// edges connect (s1,s2) to (s2,s3) for every successor s3 of s2 (spec
// §4.5). Valid only when g contains STEs alone and every STE matches
// within [0,127]; any STE touching byte 128 or above makes k exceed
// what a single packed symbol can carry two-sided and is rejected.
func Stride2(g *graph.Graph) (*StrideResult, error) {
	for _, e := range g.Elements() {
		if e.Kind != element.KindSTE {
			return nil, autoerr.NotSupported("stride2: special elements are not supported")
		}
		for _, b := range e.Column.Bytes() {
			if b > 127 {
				return nil, autoerr.Malformed("stride2: STE %q matches byte 0x%02X outside [0,127]", e.ID, b)
			}
		}
	}

	k := alphabetWidth(g)

	res := &StrideResult{States: make(map[string]*StrideState), K: k}

	pairID := func(a, b string) string { return a + "__" + b }

	ensurePair := func(s1, s2 *element.Element) *StrideState {
		id := pairID(s1.ID, s2.ID)
		if st, ok := res.States[id]; ok {
			return st
		}
		st := &StrideState{
			ID:         id,
			Column:     bitset.New(1 << (2 * k)),
			Start:      s1.Start,
			Reporting:  s1.Reporting || s2.Reporting,
			ReportCode: firstNonEmpty(s1.ReportCode, s2.ReportCode),
		}
		for _, c1 := range s1.Column.Bytes() {
			for _, c2 := range s2.Column.Bytes() {
				st.Column.Set(uint(c2)<<k | uint(c1))
			}
		}
		res.States[id] = st
		if s1.Start != element.StartNone {
			res.Starts = append(res.Starts, id)
		}
		return st
	}

	for _, s1 := range g.Elements() {
		for _, out := range s1.Outputs {
			s2 := g.GetByIndex(out.To)
			if s2 == nil {
				continue
			}
			ensurePair(s1, s2)
		}
	}

	for _, s1 := range g.Elements() {
		for _, out1 := range s1.Outputs {
			s2 := g.GetByIndex(out1.To)
			if s2 == nil {
				continue
			}
			from := pairID(s1.ID, s2.ID)
			for _, out2 := range s2.Outputs {
				s3 := g.GetByIndex(out2.To)
				if s3 == nil {
					continue
				}
				to := ensurePair(s2, s3)
				res.States[from].Out = append(res.States[from].Out, to.ID)
			}
		}
	}

	for _, e := range g.Elements() {
		if len(e.Outputs) != 0 {
			continue
		}
		st := &StrideState{
			ID:         fmt.Sprintf("%s_odd", e.ID),
			Column:     bitset.New(1 << (2 * k)),
			Start:      e.Start,
			Reporting:  e.Reporting,
			ReportCode: e.ReportCode,
			Dangling:   true,
		}
		for _, c1 := range e.Column.Bytes() {
			st.Column.Set(uint(c1) << k)
		}
		res.States[st.ID] = st
		res.Dangling = append(res.Dangling, st.ID)
		if e.Start != element.StartNone {
			res.Starts = append(res.Starts, st.ID)
		}
	}

	return res, nil
}

// alphabetWidth returns the minimum number of bits covering every byte
// any STE in g matches.
func alphabetWidth(g *graph.Graph) uint {
	var maxByte int = -1
	for _, e := range g.Elements() {
		for _, b := range e.Column.Bytes() {
			if int(b) > maxByte {
				maxByte = int(b)
			}
		}
	}
	if maxByte < 0 {
		return 0
	}
	return uint(bits.Len(uint(maxByte)))
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
