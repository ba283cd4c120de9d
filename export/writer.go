// Package export implements the abstract export contract and its
// seven concrete emitters. Every emitter is a pure reader over a
// finalized graph.Graph — none mutates state.
package export

import (
	"io"

	"github.com/sarchlab/automa/graph"
	"github.com/sarchlab/automa/simulate"
)

// Writer is the contract every concrete emitter implements. profile may
// be nil; only export/dot.go uses it, for activation heat-map coloring.
type Writer interface {
	Write(w io.Writer, g *graph.Graph, profile *simulate.Profile) error
}
