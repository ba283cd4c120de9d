package transform_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
	"github.com/sarchlab/automa/transform"
)

var _ = Describe("EliminateOR", func() {
	It("hands a reporting OR's status down to its predecessors and wires them directly to its successors", func() {
		g, err := graph.NewBuilder("t").
			WithSTE("a", "*", element.StartAllInput, false, "").
			WithGate("or", element.KindOR, true, "R").
			WithSTE("b", "*", element.StartNone, false, "").
			WithEdge("a", "or", element.PortNone).
			WithEdge("or", "b", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())

		transform.EliminateOR(g)

		_, ok := g.Get("or")
		Expect(ok).To(BeFalse())

		a := g.MustGet("a")
		Expect(a.Reporting).To(BeTrue())
		Expect(a.ReportCode).To(Equal("R"))

		b := g.MustGet("b")
		found := false
		for _, o := range a.Outputs {
			if o.To == b.IntID {
				found = true
			}
		}
		Expect(found).To(BeTrue())
	})
})

var _ = Describe("PrefixMerge", func() {
	It("merges two STEs sharing the same predecessor set and properties", func() {
		g, err := graph.NewBuilder("t").
			WithSTE("src", "*", element.StartAllInput, false, "").
			WithSTE("x", "[a]", element.StartNone, false, "").
			WithSTE("y", "[a]", element.StartNone, false, "").
			WithEdge("src", "x", element.PortNone).
			WithEdge("src", "y", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Len()).To(Equal(3))

		transform.PrefixMerge(g)

		Expect(g.Len()).To(Equal(2))
	})
})

var _ = Describe("SuffixMerge", func() {
	It("merges two STEs sharing the same successor set and properties", func() {
		g, err := graph.NewBuilder("t").
			WithSTE("x", "[a]", element.StartAllInput, false, "").
			WithSTE("y", "[a]", element.StartAllInput, false, "").
			WithSTE("sink", "*", element.StartNone, true, "R").
			WithEdge("x", "sink", element.PortNone).
			WithEdge("y", "sink", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Len()).To(Equal(3))

		transform.SuffixMerge(g)

		Expect(g.Len()).To(Equal(2))
	})
})

var _ = Describe("MergeCommonPaths", func() {
	It("unions the columns of siblings sharing both predecessor and successor sets", func() {
		g, err := graph.NewBuilder("t").
			WithSTE("src", "*", element.StartAllInput, false, "").
			WithSTE("a", "[a]", element.StartNone, false, "").
			WithSTE("b", "[b]", element.StartNone, false, "").
			WithSTE("sink", "*", element.StartNone, true, "").
			WithEdge("src", "a", element.PortNone).
			WithEdge("src", "b", element.PortNone).
			WithEdge("a", "sink", element.PortNone).
			WithEdge("b", "sink", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Len()).To(Equal(4))

		transform.MergeCommonPaths(g)

		Expect(g.Len()).To(Equal(3))
		survivor := g.MustGet("a")
		Expect(survivor.Column.Test('a')).To(BeTrue())
		Expect(survivor.Column.Test('b')).To(BeTrue())
	})
})

var _ = Describe("EnforceFanIn", func() {
	It("splits an over-fan-in STE into clones each within the limit", func() {
		g, err := graph.NewBuilder("t").
			WithSTE("sink", "*", element.StartNone, true, "").
			WithSTE("p0", "[a]", element.StartAllInput, false, "").
			WithSTE("p1", "[b]", element.StartAllInput, false, "").
			WithSTE("p2", "[c]", element.StartAllInput, false, "").
			WithEdge("p0", "sink", element.PortNone).
			WithEdge("p1", "sink", element.PortNone).
			WithEdge("p2", "sink", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())

		transform.EnforceFanIn(g, 2)

		_, ok := g.Get("sink")
		Expect(ok).To(BeFalse())
		Expect(g.Stats().MaxFanIn).To(BeNumerically("<=", 2))
	})
})

var _ = Describe("EnforceFanOut", func() {
	It("splits an over-fan-out STE into clones each within the limit", func() {
		g, err := graph.NewBuilder("t").
			WithSTE("src", "*", element.StartAllInput, false, "").
			WithSTE("s0", "[a]", element.StartNone, true, "").
			WithSTE("s1", "[b]", element.StartNone, true, "").
			WithSTE("s2", "[c]", element.StartNone, true, "").
			WithEdge("src", "s0", element.PortNone).
			WithEdge("src", "s1", element.PortNone).
			WithEdge("src", "s2", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())

		transform.EnforceFanOut(g, 2)

		_, ok := g.Get("src")
		Expect(ok).To(BeFalse())
		Expect(g.Stats().MaxFanOut).To(BeNumerically("<=", 2))
	})
})

var _ = Describe("ReplaceCounters", func() {
	It("rewrites a pulse counter fed by a single :cnt predecessor into an STE clone chain", func() {
		g, err := graph.NewBuilder("t").
			WithSTE("src", "[c]", element.StartAllInput, false, "").
			WithCounter("ctr", 3, element.ModePulse, true, "R").
			WithEdge("src", "ctr", element.PortCnt).
			Build()
		Expect(err).NotTo(HaveOccurred())

		transform.ReplaceCounters(g)

		_, ok := g.Get("ctr")
		Expect(ok).To(BeFalse())
		Expect(g.Len()).To(Equal(4)) // src + 3 clones

		last := g.MustGet("src_ctr2")
		Expect(last.Reporting).To(BeTrue())
		Expect(last.ReportCode).To(Equal("R"))
	})

	It("leaves latch counters untouched", func() {
		g, err := graph.NewBuilder("t").
			WithSTE("src", "[c]", element.StartAllInput, false, "").
			WithCounter("ctr", 3, element.ModeLatch, true, "R").
			WithEdge("src", "ctr", element.PortCnt).
			Build()
		Expect(err).NotTo(HaveOccurred())

		transform.ReplaceCounters(g)

		_, ok := g.Get("ctr")
		Expect(ok).To(BeTrue())
	})
})

var _ = Describe("EliminateDeadStates", func() {
	It("removes an STE unreachable from any start and unable to reach any report", func() {
		g, err := graph.NewBuilder("t").
			WithSTE("src", "*", element.StartAllInput, false, "").
			WithSTE("live", "*", element.StartNone, true, "").
			WithSTE("dead", "*", element.StartNone, false, "").
			WithEdge("src", "live", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Len()).To(Equal(3))

		transform.EliminateDeadStates(g)

		Expect(g.Len()).To(Equal(2))
		_, ok := g.Get("dead")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("RemoveRedundantEdges", func() {
	It("strips inbound edges into an all-input start STE", func() {
		g, err := graph.NewBuilder("t").
			WithSTE("a", "*", element.StartNone, false, "").
			WithSTE("b", "*", element.StartAllInput, false, "").
			WithEdge("a", "b", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())

		transform.RemoveRedundantEdges(g)

		a := g.MustGet("a")
		Expect(a.Outputs).To(BeEmpty())
	})
})

var _ = Describe("Widen", func() {
	It("inserts a pad STE after every STE and moves reporting onto the pad", func() {
		g, err := graph.NewBuilder("t").
			WithSTE("s0", "[a]", element.StartAllInput, false, "").
			WithSTE("s1", "[b]", element.StartNone, true, "R").
			WithEdge("s0", "s1", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())

		transform.Widen(g)

		pad, ok := g.Get("s1_pad")
		Expect(ok).To(BeTrue())
		Expect(pad.Reporting).To(BeTrue())
		Expect(pad.ReportCode).To(Equal("R"))

		s1 := g.MustGet("s1")
		Expect(s1.Reporting).To(BeFalse())
	})
})

var _ = Describe("ConnectedComponents", func() {
	It("splits two disjoint chains into two independent graphs", func() {
		g, err := graph.NewBuilder("t").
			WithSTE("a", "*", element.StartAllInput, false, "").
			WithSTE("b", "*", element.StartNone, true, "").
			WithSTE("c", "*", element.StartAllInput, false, "").
			WithSTE("d", "*", element.StartNone, true, "").
			WithEdge("a", "b", element.PortNone).
			WithEdge("c", "d", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())

		comps := transform.ConnectedComponents(g)

		Expect(comps).To(HaveLen(2))
		for _, c := range comps {
			Expect(c.Len()).To(Equal(2))
		}
	})
})

var _ = Describe("Stride2", func() {
	It("packs consecutive edges into 2-strided pair states", func() {
		g, err := graph.NewBuilder("t").
			WithSTE("a", "[\\x41]", element.StartAllInput, false, "").
			WithSTE("b", "[\\x42]", element.StartNone, false, "").
			WithSTE("c", "[\\x43]", element.StartNone, true, "").
			WithEdge("a", "b", element.PortNone).
			WithEdge("b", "c", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())

		res, err := transform.Stride2(g)
		Expect(err).NotTo(HaveOccurred())

		ab, ok := res.States["a__b"]
		Expect(ok).To(BeTrue())
		Expect(ab.Matches('A', 'B', res.K)).To(BeTrue())
		Expect(ab.Matches('A', 'C', res.K)).To(BeFalse())
	})

	It("rejects graphs containing special elements", func() {
		g, err := graph.NewBuilder("t").
			WithSTE("a", "*", element.StartAllInput, false, "").
			WithGate("or", element.KindOR, false, "").
			WithEdge("a", "or", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())

		_, err = transform.Stride2(g)
		Expect(err).To(HaveOccurred())
	})

	It("emits a dangling single-symbol state for a terminal STE with predecessors", func() {
		g, err := graph.NewBuilder("t").
			WithSTE("a", "[\\x41]", element.StartAllInput, false, "").
			WithSTE("b", "[\\x42]", element.StartNone, false, "").
			WithSTE("c", "[\\x43]", element.StartNone, true, "").
			WithEdge("a", "b", element.PortNone).
			WithEdge("b", "c", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())

		res, err := transform.Stride2(g)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Dangling).To(ContainElement("c_odd"))

		c, ok := res.States["c_odd"]
		Expect(ok).To(BeTrue())
		Expect(c.Dangling).To(BeTrue())
		Expect(c.Reporting).To(BeTrue())
		Expect(c.Column.Test(uint('C') << res.K)).To(BeTrue())
		Expect(c.Column.Test(uint('C'))).To(BeFalse())
	})
})
