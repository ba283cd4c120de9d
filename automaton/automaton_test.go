package automaton_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/automa/automaton"
	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/export"
	"github.com/sarchlab/automa/graph"
)

func buildChain() *graph.Graph {
	g, err := graph.NewBuilder("").
		WithSTE("s0", "[J]", element.StartAllInput, false, "").
		WithSTE("s1", "[a]", element.StartNone, false, "").
		WithSTE("s2", "[c]", element.StartNone, false, "").
		WithSTE("s3", "[k]", element.StartNone, true, "R3").
		WithEdge("s0", "s1", element.PortNone).
		WithEdge("s1", "s2", element.PortNone).
		WithEdge("s2", "s3", element.PortNone).
		Build()
	Expect(err).NotTo(HaveOccurred())
	return g
}

var _ = Describe("Pipeline", func() {
	It("assigns a random automaton id when none is given and runs end to end", func() {
		p := automaton.NewPipelineBuilder("").WithGraph(buildChain()).Build()
		Expect(p.Graph.AutomatonID).NotTo(BeEmpty())

		reports := p.Run([]byte("Jack"))
		Expect(reports).To(HaveLen(1))
		Expect(reports[0].ID).To(Equal("s3"))
	})

	It("exports through the pipeline facade", func() {
		p := automaton.NewPipelineBuilder("net").WithGraph(buildChain()).Build()
		p.Run([]byte("Jack"))

		var buf bytes.Buffer
		Expect(p.Export(&buf, export.NFAText{})).To(Succeed())
		Expect(buf.String()).NotTo(BeEmpty())
	})

	It("partitions a stream across parallel clones and merges deterministically", func() {
		p := automaton.NewPipelineBuilder("net").WithGraph(buildChain()).Build()

		parts := p.RunParallel([]byte("JackJack"), 2)
		Expect(parts).To(HaveLen(2))

		merged := automaton.Merged(parts)
		Expect(merged).To(HaveLen(2))
		for _, r := range merged {
			Expect(r.ID).To(Equal("s3"))
		}
	})

	It("only asserts end-of-data at the true end of the stream, not at partition boundaries", func() {
		g, err := graph.NewBuilder("net").
			WithSTE("r", "*", element.StartAllInput, true, "").
			WithEOD("r").
			Build()
		Expect(err).NotTo(HaveOccurred())

		p := automaton.NewPipelineBuilder("net").WithGraph(g).Build()

		parts := p.RunParallel([]byte("aaaa"), 2)
		Expect(parts).To(HaveLen(2))

		merged := automaton.Merged(parts)
		Expect(merged).To(HaveLen(1))
		Expect(merged[0].Cycle).To(Equal(1))
	})
})
