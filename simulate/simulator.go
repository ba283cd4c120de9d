package simulate

import (
	"context"
	"log/slog"

	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
)

// EndOfData decides, for the symbol at the given stream position (0
// based) out of total symbols, whether the end-of-data signal should be
// asserted this cycle. The default (see Builder.Build) treats the final
// symbol of the stream, or any '\n' byte, as end of data, for a
// line-oriented batch simulator.
type EndOfData func(pos, total int, symbol byte) bool

// DefaultEndOfData is the builder's default EndOfData predicate.
func DefaultEndOfData(pos, total int, symbol byte) bool {
	return symbol == '\n' || pos == total-1
}

// Simulator drives one graph through a five-phase synchronous cycle:
// enable starts, match, propagate, special-element settle, advance.
type Simulator struct {
	g   *graph.Graph
	eod EndOfData
	log *slog.Logger

	ste []*element.Element // cached STE view, built once at Initialize

	cycle        int
	sodAsserted  bool // start-of-data: true on the first cycle and on the cycle after a '\n'
	activatedSTE []*element.Element

	Reports []Report
	Profile *Profile
}

// Initialize resets the simulator to cycle 0, clears every element's
// runtime state (including counter state), and asserts start-of-data
// for the first Step call.
func (s *Simulator) Initialize() {
	s.ste = s.ste[:0]
	for _, e := range s.g.Elements() {
		if e.Kind == element.KindSTE {
			s.ste = append(s.ste, e)
		}
	}
	s.cycle = 0
	s.sodAsserted = true
	s.Reports = s.Reports[:0]
	s.Profile = NewProfile()
	for _, e := range s.g.Elements() {
		e.Enabled = false
		e.Activated = false
		e.ClearInputs()
		e.Reset()
	}
}

// Step runs one full cycle over symbol b and returns whether a start STE
// was enabled, an STE matched, or a special element fired this cycle.
func (s *Simulator) Step(b byte, eod bool) bool {
	s.log.Log(context.Background(), LevelTrace, "cycle begin", "cycle", s.cycle, "symbol", b, "eod", eod)

	s.phaseZeroLatency()
	progress := s.phaseEnableStarts()
	matched := s.phaseMatch(b, eod)
	s.phasePropagate()
	fired := s.phaseSettle(eod)

	s.cycle++
	s.sodAsserted = b == '\n'

	return progress || matched || fired
}

// Run drives the simulator over data, a byte range starting at
// startIndex within a stream of totalLength bytes overall, deciding
// end-of-data per symbol with the EndOfData predicate the Builder
// installed. A caller simulating the whole stream in one call passes
// startIndex 0 and totalLength len(data); a caller simulating one
// partition of a larger stream (see automaton.Pipeline.RunParallel)
// passes the partition's offset and the true length of the full
// stream, so end-of-data is only asserted at the actual end of the
// stream rather than at every partition boundary.
func (s *Simulator) Run(data []byte, startIndex, totalLength int) {
	s.Initialize()
	for i, b := range data {
		pos := startIndex + i
		s.Step(b, s.eod(pos, totalLength, b))
	}
}

// phaseZeroLatency pre-enables the successors of any NOR/Inverter that
// has no wired predecessor at all. Such a gate's output can never depend
// on this cycle's STE activity, so its successors must already be
// visible to phaseMatch this same cycle. A NOR/Inverter that does have
// wired predecessors still settles at its normal phaseSettle position,
// one cycle behind the STEs that feed it, like any other special
// element.
func (s *Simulator) phaseZeroLatency() {
	for _, e := range s.g.ActivateNoInputSpecials() {
		if len(e.Inputs) != 0 {
			continue
		}
		s.enableSuccessors(e)
	}
}

// phaseEnableStarts enables every start STE whose StartType fires this
// cycle.
func (s *Simulator) phaseEnableStarts() bool {
	any := false
	for _, e := range s.g.Starts() {
		if e.Start == element.StartAllInput || (e.Start == element.StartOfData && s.sodAsserted) {
			e.Enabled = true
			any = true
		}
	}
	return any
}

// phaseMatch tests every enabled STE against b, activates the ones that
// match, records reports, and disables every STE that was enabled this
// cycle regardless of outcome.
func (s *Simulator) phaseMatch(b byte, eod bool) bool {
	s.activatedSTE = s.activatedSTE[:0]
	matched := false
	for _, e := range s.ste {
		if !e.Enabled {
			continue
		}
		s.Profile.recordEnable(s.cycle, e.ID)
		if e.Matches(b) {
			e.Activate()
			s.activatedSTE = append(s.activatedSTE, e)
			s.Profile.recordActivate(s.cycle, e.ID)
			matched = true
			s.maybeReport(e, eod)
		}
		e.Disable()
		e.ClearInputs()
	}
	return matched
}

// phasePropagate enables every successor of an STE that activated this
// cycle, then deactivates the STE. STEs never refuse
// to deactivate; only latched counters do.
func (s *Simulator) phasePropagate() {
	for _, e := range s.activatedSTE {
		s.enableSuccessors(e)
		e.Deactivate()
	}
}

// phaseSettle evaluates every special element in topological order,
// activates and propagates the ones that fire, reports as needed, and
// finally clears every special element's enable inputs for the next
// cycle.
func (s *Simulator) phaseSettle(eod bool) bool {
	any := false
	for _, e := range s.g.OrderedSpecials() {
		var fired bool
		if e.Kind == element.KindCounter {
			fired = e.Tick()
		} else {
			fired = e.Calculate()
		}

		if fired {
			any = true
			e.Activate()
			s.Profile.recordActivate(s.cycle, e.ID)
			s.maybeReport(e, eod)
			s.enableSuccessors(e)
			e.Deactivate()
		} else {
			e.Deactivate()
		}
		e.ClearInputs()
	}
	return any
}

func (s *Simulator) enableSuccessors(e *element.Element) {
	for _, out := range e.Outputs {
		to := s.g.GetByIndex(out.To)
		if to == nil {
			continue
		}
		to.Enable(e.ID + out.Port.String())
	}
}

func (s *Simulator) maybeReport(e *element.Element, eod bool) {
	if !e.Reporting {
		return
	}
	if e.EOD && !eod {
		return
	}
	s.Reports = append(s.Reports, Report{Cycle: s.cycle, ID: e.ID})
}

// Cycle returns the number of cycles already stepped.
func (s *Simulator) Cycle() int { return s.cycle }
