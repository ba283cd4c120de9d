// Package automaton is the top-level facade tying the graph container,
// structural transforms, simulation engine, and export contracts
// together into one pipeline, exposed as a small Driver-shaped facade
// with a fluent builder.
package automaton

import (
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/sarchlab/automa/export"
	"github.com/sarchlab/automa/graph"
	"github.com/sarchlab/automa/simulate"
)

// Pipeline owns one finalized graph and the simulator built over it. It
// is the programmatic surface a CLI front-end would drive.
type Pipeline struct {
	Graph     *graph.Graph
	Simulator *simulate.Simulator
}

// Run simulates data over the pipeline's graph from scratch (Initialize
// + Step per byte) and returns the resulting report log.
func (p *Pipeline) Run(data []byte) []simulate.Report {
	p.Simulator.Run(data, 0, len(data))
	return p.Simulator.Reports
}

// Export renders the pipeline's graph through w, optionally including
// the last run's profiling data for heat-map-capable emitters.
func (p *Pipeline) Export(dst io.Writer, w export.Writer) error {
	return w.Write(dst, p.Graph, p.Simulator.Profile)
}

// PartitionResult is one partition's outcome from RunParallel: its
// index (for deterministic re-ordering) and the reports its own
// simulator produced.
type PartitionResult struct {
	Partition int
	Reports   []simulate.Report
}

// RunParallel splits data into n disjoint byte ranges and simulates
// each range on its own clone of the pipeline's graph, one goroutine
// per partition: independent graphs running in parallel, one per CPU
// thread. It returns one PartitionResult per partition, ordered by
// partition index; each partition's report cycles count from the start
// of its own range. Merged combines the results into one log ordered
// by (cycle, partition index).
func (p *Pipeline) RunParallel(data []byte, n int) []PartitionResult {
	if n < 1 {
		n = 1
	}
	chunkSize := (len(data) + n - 1) / n
	if chunkSize == 0 {
		chunkSize = 1
	}

	total := len(data)

	var wg sync.WaitGroup
	results := make([]PartitionResult, 0, n)
	var mu sync.Mutex

	for i := 0; i*chunkSize < len(data); i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > len(data) {
			end = len(data)
		}
		idx := i

		wg.Add(1)
		go func(chunk []byte, startIndex int) {
			defer wg.Done()
			g := p.Graph.Clone()
			sim := simulate.NewBuilder(g).Build()
			sim.Run(chunk, startIndex, total)

			mu.Lock()
			results = append(results, PartitionResult{Partition: idx, Reports: sim.Reports})
			mu.Unlock()
		}(data[start:end], start)
	}

	wg.Wait()
	sort.Slice(results, func(i, j int) bool { return results[i].Partition < results[j].Partition })
	return results
}

// Merged flattens a set of PartitionResult into one report slice,
// ordered by (cycle, partition index) for a deterministic
// cross-partition ordering.
func Merged(parts []PartitionResult) []simulate.Report {
	type tagged struct {
		simulate.Report
		partition int
	}
	var all []tagged
	for _, p := range parts {
		for _, r := range p.Reports {
			all = append(all, tagged{r, p.Partition})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Cycle != all[j].Cycle {
			return all[i].Cycle < all[j].Cycle
		}
		return all[i].partition < all[j].partition
	})
	out := make([]simulate.Report, len(all))
	for i, t := range all {
		out[i] = t.Report
	}
	return out
}

// defaultAutomatonID generates a random id for a builder that was not
// given one explicitly ("networkId.elementId" report prefixing needs
// some id to exist).
func defaultAutomatonID() string {
	return uuid.NewString()
}
