// Package element provides the uniform representation of automaton
// elements: state-transition elements (STEs), stateless Boolean gates,
// and stateful counters, sharing one set of enable/activate/edge
// operations.
package element

import "github.com/sarchlab/automa/symset"

// Kind discriminates the element variant. Go has no sealed class
// hierarchy; a tagged struct with kind-specific fields stands in for
// a virtual-dispatch base class.
type Kind int

const (
	KindSTE Kind = iota
	KindAND
	KindOR
	KindNOR
	KindInverter
	KindCounter
)

func (k Kind) String() string {
	switch k {
	case KindSTE:
		return "STE"
	case KindAND:
		return "AND"
	case KindOR:
		return "OR"
	case KindNOR:
		return "NOR"
	case KindInverter:
		return "Inverter"
	case KindCounter:
		return "Counter"
	default:
		return "Unknown"
	}
}

// IsGate reports whether k is one of the stateless Boolean gates.
func (k Kind) IsGate() bool {
	return k == KindAND || k == KindOR || k == KindNOR || k == KindInverter
}

// Port names the destination suffix on an edge. Only counters use named
// ports; everything else uses PortNone (an unnamed, implicit port).
type Port int

const (
	PortNone Port = iota
	PortCnt
	PortRst
)

// String renders the wire-level suffix ("" / ":cnt" / ":rst") used when
// materializing edges as "id[:port]" strings at the graph boundary.
func (p Port) String() string {
	switch p {
	case PortCnt:
		return ":cnt"
	case PortRst:
		return ":rst"
	default:
		return ""
	}
}

// ParsePort recognizes the suffix of an "id[:port]" string and returns
// the bare id and the port.
func ParsePort(s string) (id string, port Port) {
	switch {
	case len(s) > 4 && s[len(s)-4:] == ":cnt":
		return s[:len(s)-4], PortCnt
	case len(s) > 4 && s[len(s)-4:] == ":rst":
		return s[:len(s)-4], PortRst
	default:
		return s, PortNone
	}
}

// StartType classifies when an STE self-enables.
type StartType int

const (
	StartNone StartType = iota
	StartOfData
	StartAllInput
)

// CounterMode selects a counter's report-emission behavior.
type CounterMode int

const (
	ModePulse CounterMode = iota
	ModeRoll
	ModeLatch
)

func ParseCounterMode(s string) CounterMode {
	switch s {
	case "latch":
		return ModeLatch
	case "roll":
		return ModeRoll
	default:
		return ModePulse
	}
}

func (m CounterMode) String() string {
	switch m {
	case ModeLatch:
		return "latch"
	case ModeRoll:
		return "roll"
	default:
		return "pulse"
	}
}

// Edge is an outgoing edge: the destination's arena index and the port
// on that destination.
type Edge struct {
	To   int
	Port Port
}

// Base holds the fields common to every element variant.
type Base struct {
	ID     string
	IntID  int
	Kind   Kind

	Outputs []Edge // ordered outgoing edges
	Inputs  map[string]bool // "sourceId[:port]" -> current signal value

	Reporting  bool
	ReportCode string
	EOD        bool // only report while the simulator's EOD signal is high

	Enabled   bool
	Activated bool
	Marked    uint64 // compared against the graph's current mark epoch

	cut bool // transient bookkeeping bit used by some transforms
}

// Element is one node of the automaton graph: a Base plus kind-specific
// payload. Only the fields relevant to Kind are meaningful; this keeps
// the sum type to a single allocation per element.
type Element struct {
	Base

	// STE payload.
	Symbols string
	Column  symset.Column
	Start   StartType

	// Counter payload.
	Target  uint32
	Mode    CounterMode
	count   uint32
	dormant bool
	latched bool
}

// NewSTE creates a state-transition element from a symbol-set string.
func NewSTE(id string, symbols string, column symset.Column, start StartType) *Element {
	return &Element{
		Base:    Base{ID: id, Kind: KindSTE, Inputs: make(map[string]bool)},
		Symbols: symbols,
		Column:  column,
		Start:   start,
	}
}

// NewGate creates a stateless Boolean gate element.
func NewGate(id string, kind Kind) *Element {
	if !kind.IsGate() {
		panic("element: NewGate called with non-gate kind " + kind.String())
	}
	return &Element{Base: Base{ID: id, Kind: kind, Inputs: make(map[string]bool)}}
}

// NewCounter creates a counter element with the given target and mode.
func NewCounter(id string, target uint32, mode CounterMode) *Element {
	return &Element{
		Base:   Base{ID: id, Kind: KindCounter, Inputs: make(map[string]bool)},
		Target: target,
		Mode:   mode,
	}
}

// Matches reports whether the STE's column accepts symbol b. Only
// meaningful for Kind == KindSTE.
func (e *Element) Matches(b byte) bool {
	return e.Column.Test(b)
}

// IsStateful reports whether the element carries cross-cycle state:
// true for STEs and counters, false for Boolean gates.
func (e *Element) IsStateful() bool {
	return e.Kind == KindSTE || e.Kind == KindCounter
}

// IsSpecialElement reports whether the element is a gate or counter
// (anything that is not an STE).
func (e *Element) IsSpecialElement() bool {
	return e.Kind != KindSTE
}

// CanActivateWithoutEnable reports whether the element's output can go
// high with no predecessor having fired: true for NOR and Inverter,
// false for every other kind. Start STEs also self-enable, but the
// simulator decides that case itself (it depends on cycle 0 vs EOD);
// this method returns false for them.
func (e *Element) CanActivateWithoutEnable() bool {
	return e.Kind == KindNOR || e.Kind == KindInverter
}

// Enable records that source fired into this element's named port.
func (e *Element) Enable(source string) {
	e.Inputs[source] = true
	e.Enabled = true
}

// Disable clears this element's enabled bit. Incoming signal values
// persist in Inputs until explicitly cleared (ClearInputs): per-port
// values carry until overwritten.
func (e *Element) Disable() {
	e.Enabled = false
}

// ClearInputs resets every incoming signal to false, used by the
// simulator after a special element settles.
func (e *Element) ClearInputs() {
	for k := range e.Inputs {
		e.Inputs[k] = false
	}
}

// Activate sets the activation bit.
func (e *Element) Activate() {
	e.Activated = true
}

// Deactivate clears the activation bit unless the element refuses
// (a latched counter). Returns whether the bit was actually cleared.
func (e *Element) Deactivate() bool {
	if e.Kind == KindCounter && e.latched {
		return false
	}
	e.Activated = false
	return true
}

// IsSelfRef reports whether the element has an outgoing edge back to
// itself (a self-loop), ignoring port.
func (e *Element) IsSelfRef() bool {
	for _, out := range e.Outputs {
		if out.To == e.IntID {
			return true
		}
	}
	return false
}

// Cut reports whether a transform has marked this element pending
// deletion. Transforms that must scan the whole element set before
// mutating it (so deletion doesn't disturb the scan's iteration order)
// mark-then-sweep using Cut/SetCut instead of removing elements inline.
func (e *Element) Cut() bool {
	return e.cut
}

// SetCut marks or unmarks this element as pending deletion.
func (e *Element) SetCut(v bool) {
	e.cut = v
}

// AddOutput appends an outgoing edge if it is not already present.
func (e *Element) AddOutput(toIntID int, port Port) {
	for _, out := range e.Outputs {
		if out.To == toIntID && out.Port == port {
			return
		}
	}
	e.Outputs = append(e.Outputs, Edge{To: toIntID, Port: port})
}

// RemoveOutput deletes an outgoing edge if present.
func (e *Element) RemoveOutput(toIntID int, port Port) {
	out := e.Outputs[:0]
	for _, o := range e.Outputs {
		if o.To == toIntID && o.Port == port {
			continue
		}
		out = append(out, o)
	}
	e.Outputs = out
}
