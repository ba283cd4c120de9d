package graph_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
)

var _ = Describe("Graph", func() {
	It("builds a simple chain and validates cleanly", func() {
		g, err := graph.NewBuilder("net0").
			WithSTE("s0", "[J]", element.StartAllInput, false, "").
			WithSTE("s1", "[a]", element.StartNone, false, "").
			WithSTE("s2", "[c]", element.StartNone, false, "").
			WithSTE("s3", "[k]", element.StartNone, true, "R3").
			WithEdge("s0", "s1", element.PortNone).
			WithEdge("s1", "s2", element.PortNone).
			WithEdge("s2", "s3", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Validate()).To(Succeed())
		Expect(g.Len()).To(Equal(4))
		Expect(g.Starts()).To(HaveLen(1))
		Expect(g.Reports()).To(HaveLen(1))
	})

	It("enforces edge symmetry between an element's outputs and its neighbor's inputs", func() {
		g, err := graph.NewBuilder("net0").
			WithSTE("a", "*", element.StartAllInput, false, "").
			WithSTE("b", "*", element.StartNone, true, "").
			WithEdge("a", "b", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())

		a := g.MustGet("a")
		b := g.MustGet("b")
		Expect(a.Outputs).To(ContainElement(element.Edge{To: b.IntID, Port: element.PortNone}))
		_, ok := b.Inputs["a"]
		Expect(ok).To(BeTrue())
	})

	It("rejects an edge to a non-existent element", func() {
		_, err := graph.NewBuilder("net0").
			WithSTE("a", "*", element.StartAllInput, false, "").
			WithEdge("a", "ghost", element.PortNone).
			Build()
		Expect(err).To(HaveOccurred())
	})

	It("removes an element and detaches it from neighbors", func() {
		g, err := graph.NewBuilder("net0").
			WithSTE("a", "*", element.StartAllInput, false, "").
			WithSTE("b", "*", element.StartNone, true, "").
			WithEdge("a", "b", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())

		b := g.MustGet("b")
		g.RemoveElement(b)

		a := g.MustGet("a")
		Expect(a.Outputs).To(BeEmpty())
		_, ok := g.Get("b")
		Expect(ok).To(BeFalse())
	})

	It("computes IdenticalInputs ignoring self-loops", func() {
		g, err := graph.NewBuilder("net0").
			WithSTE("src", "*", element.StartAllInput, false, "").
			WithSTE("a", "[a]", element.StartNone, false, "").
			WithSTE("b", "[b]", element.StartNone, false, "").
			WithEdge("src", "a", element.PortNone).
			WithEdge("src", "b", element.PortNone).
			WithEdge("a", "a", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())

		Expect(g.IdenticalInputs(g.MustGet("a"), g.MustGet("b"))).To(BeTrue())
	})

	It("reports element-kind counts and fan-in/out extremes in Stats", func() {
		g, err := graph.NewBuilder("net0").
			WithSTE("src", "*", element.StartAllInput, false, "").
			WithSTE("a", "[a]", element.StartNone, false, "").
			WithSTE("b", "[b]", element.StartNone, true, "").
			WithEdge("src", "a", element.PortNone).
			WithEdge("src", "b", element.PortNone).
			WithEdge("a", "b", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())

		s := g.Stats()
		Expect(s.STECount).To(Equal(3))
		Expect(s.StartCount).To(Equal(1))
		Expect(s.ReportCount).To(Equal(1))
		Expect(s.MaxFanIn).To(Equal(2))
	})
})
