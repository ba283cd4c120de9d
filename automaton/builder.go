package automaton

import (
	"log/slog"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/automa/graph"
	"github.com/sarchlab/automa/simulate"
)

// PipelineBuilder assembles a Pipeline with a value-receiver With...
// fluent chain.
type PipelineBuilder struct {
	automatonID string
	g           *graph.Graph
	eod         simulate.EndOfData
	log         *slog.Logger
	flushOnExit bool
}

// NewPipelineBuilder starts a builder. An empty automatonID is replaced
// at Build time with a random uuid (report prefixing needs some id).
func NewPipelineBuilder(automatonID string) PipelineBuilder {
	return PipelineBuilder{automatonID: automatonID}
}

// WithGraph installs an already-built, finalized, validated graph.
func (b PipelineBuilder) WithGraph(g *graph.Graph) PipelineBuilder {
	b.g = g
	return b
}

// WithEndOfData overrides the simulator's end-of-data predicate.
func (b PipelineBuilder) WithEndOfData(eod simulate.EndOfData) PipelineBuilder {
	b.eod = eod
	return b
}

// WithLogger overrides the simulator's structured logger.
func (b PipelineBuilder) WithLogger(log *slog.Logger) PipelineBuilder {
	b.log = log
	return b
}

// WithFlushOnExit registers an atexit hook (github.com/tebeka/atexit)
// that renders the pipeline's profiling table to stdout when the
// process exits, a batch-driver convenience for callers that don't
// otherwise collect profiling output.
func (b PipelineBuilder) WithFlushOnExit() PipelineBuilder {
	b.flushOnExit = true
	return b
}

// Build constructs the Pipeline. g must have been supplied via
// WithGraph already finalized and validated; Build does not repeat
// either step, the same expectation export.Writer holds for a
// finalized graph.
func (b PipelineBuilder) Build() *Pipeline {
	if b.automatonID == "" {
		b.automatonID = defaultAutomatonID()
	}
	b.g.AutomatonID = b.automatonID

	simBuilder := simulate.NewBuilder(b.g)
	if b.eod != nil {
		simBuilder = simBuilder.WithEndOfData(b.eod)
	}
	if b.log != nil {
		simBuilder = simBuilder.WithLogger(b.log)
	}
	sim := simBuilder.Build()

	p := &Pipeline{Graph: b.g, Simulator: sim}

	if b.flushOnExit {
		atexit.Register(func() {
			if p.Simulator.Profile != nil {
				p.Simulator.Profile.Render()
			}
		})
	}

	return p
}
