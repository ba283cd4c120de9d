package graph

import (
	"github.com/sarchlab/automa/autoerr"
	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/symset"
)

// Builder incrementally populates a Graph with a fluent With... chain
// and a final Build() call. Any input format (ANML, MNRL, or a
// hand-written graph) is expected to drive a Builder rather than touch
// Graph's arena directly.
type Builder struct {
	g *Graph
}

// NewBuilder starts a new graph under construction, identified by
// automatonID (used to prefix batch report output).
func NewBuilder(automatonID string) Builder {
	return Builder{g: New(automatonID)}
}

// WithSTE adds a state-transition element compiled from a symbol-set
// string.
func (b Builder) WithSTE(id, symbols string, start element.StartType, reporting bool, reportCode string) Builder {
	col, err := symset.Compile(symbols)
	if err != nil {
		b.g.lastErr = err
		return b
	}
	e := element.NewSTE(id, symbols, col, start)
	e.Reporting = reporting
	e.ReportCode = reportCode
	b.g.AddElement(e)
	return b
}

// WithGate adds a stateless Boolean gate.
func (b Builder) WithGate(id string, kind element.Kind, reporting bool, reportCode string) Builder {
	if !kind.IsGate() {
		b.g.lastErr = autoerr.NotSupported("WithGate: kind " + kind.String() + " is not a gate")
		return b
	}
	e := element.NewGate(id, kind)
	e.Reporting = reporting
	e.ReportCode = reportCode
	b.g.AddElement(e)
	return b
}

// WithCounter adds a counter element.
func (b Builder) WithCounter(id string, target uint32, mode element.CounterMode, reporting bool, reportCode string) Builder {
	e := element.NewCounter(id, target, mode)
	e.Reporting = reporting
	e.ReportCode = reportCode
	b.g.AddElement(e)
	return b
}

// WithEOD marks the element id as only reporting while the simulator's
// end-of-data signal is high.
func (b Builder) WithEOD(id string) Builder {
	if e, ok := b.g.Get(id); ok {
		e.EOD = true
	} else {
		b.g.lastErr = autoerr.NotFound(id)
	}
	return b
}

// WithEdge connects fromID -> toID, optionally through a named port on
// the destination (counters only recognize PortCnt/PortRst).
func (b Builder) WithEdge(fromID, toID string, port element.Port) Builder {
	if err := b.g.AddEdgeByID(fromID, toID, port); err != nil {
		b.g.lastErr = err
	}
	return b
}

// Build finalizes and validates the graph. If a With... step failed, it
// returns the most recent such error without validating; otherwise it
// returns the first validation error, if any.
func (b Builder) Build() (*Graph, error) {
	if b.g.lastErr != nil {
		return nil, b.g.lastErr
	}
	b.g.Finalize()
	if err := b.g.Validate(); err != nil {
		return nil, err
	}
	return b.g, nil
}
