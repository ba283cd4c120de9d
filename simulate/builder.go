package simulate

import (
	"log/slog"
	"os"

	"github.com/sarchlab/automa/graph"
)

// Builder assembles a Simulator over a finalized graph, following the
// teacher's value-receiver WithX(...) fluent chain (api.DriverBuilder).
type Builder struct {
	g   *graph.Graph
	eod EndOfData
	log *slog.Logger
}

// NewBuilder starts a Builder bound to g. g must already be finalized
// and validated (graph.Builder.Build does both).
func NewBuilder(g *graph.Graph) Builder {
	return Builder{g: g}
}

// WithEndOfData overrides the default end-of-data predicate.
func (b Builder) WithEndOfData(eod EndOfData) Builder {
	b.eod = eod
	return b
}

// WithLogger overrides the default stderr text-handler logger.
func (b Builder) WithLogger(log *slog.Logger) Builder {
	b.log = log
	return b
}

// Build constructs the Simulator, ready for Initialize.
func (b Builder) Build() *Simulator {
	eod := b.eod
	if eod == nil {
		eod = DefaultEndOfData
	}
	log := b.log
	if log == nil {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return &Simulator{g: b.g, eod: eod, log: log}
}
