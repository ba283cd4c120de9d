package export_test

import (
	"bytes"
	"strings"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/export"
	"github.com/sarchlab/automa/graph"
)

func chainGraph() *graph.Graph {
	g, err := graph.NewBuilder("net").
		WithSTE("s0", "[J]", element.StartAllInput, false, "").
		WithSTE("s1", "[a]", element.StartNone, true, "R1").
		WithEdge("s0", "s1", element.PortNone).
		Build()
	Expect(err).NotTo(HaveOccurred())
	return g
}

var _ = Describe("export writers", func() {
	It("renders ANML XML without error", func() {
		var buf bytes.Buffer
		Expect(export.ANML{}.Write(&buf, chainGraph(), nil)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("state-transition-element"))
	})

	It("renders MNRL JSON without error", func() {
		var buf bytes.Buffer
		Expect(export.MNRL{}.Write(&buf, chainGraph(), nil)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("hState"))
	})

	It("renders flat NFA text with the initial and accepting state lines", func() {
		var buf bytes.Buffer
		Expect(export.NFAText{}.Write(&buf, chainGraph(), nil)).To(Succeed())
		out := buf.String()
		Expect(out).To(ContainSubstring("s0 : initial"))
		Expect(out).To(ContainSubstring("s1 : accepting"))
	})

	It("renders GraphViz DOT with double outline for a reporting node", func() {
		var buf bytes.Buffer
		Expect(export.DOT{}.Write(&buf, chainGraph(), nil)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("peripheries=2"))
	})

	It("renders a BLIF subckt per STE", func() {
		var buf bytes.Buffer
		Expect(export.BLIF{}.Write(&buf, chainGraph(), nil)).To(Succeed())
		Expect(strings.Count(buf.String(), ".subckt ste")).To(Equal(2))
	})

	It("rejects BLIF export above the 16-input fan-in limit", func() {
		b := graph.NewBuilder("net").WithSTE("sink", "*", element.StartNone, true, "")
		for i := 0; i < 17; i++ {
			id := string(rune('a' + i))
			b = b.WithSTE(id, "[x]", element.StartAllInput, false, "").WithEdge(id, "sink", element.PortNone)
		}
		g, err := b.Build()
		Expect(err).NotTo(HaveOccurred())

		var buf bytes.Buffer
		err = export.BLIF{}.Write(&buf, g, nil)
		Expect(err).To(HaveOccurred())
	})

	It("renders the HyperScan-style graph file", func() {
		var buf bytes.Buffer
		Expect(export.GraphFile{}.Write(&buf, chainGraph(), nil)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("N 2"))
	})

	It("rejects Verilog export for non-latch counters", func() {
		g, err := graph.NewBuilder("net").
			WithSTE("src", "[c]", element.StartAllInput, false, "").
			WithCounter("ctr", 2, element.ModePulse, true, "").
			WithEdge("src", "ctr", element.PortCnt).
			Build()
		Expect(err).NotTo(HaveOccurred())

		var buf bytes.Buffer
		err = export.Verilog{}.Write(&buf, g, nil)
		Expect(err).To(HaveOccurred())
	})

	It("invokes a mocked Writer with the graph under test", func() {
		ctrl := gomock.NewController(GinkgoT())
		defer ctrl.Finish()

		g := chainGraph()
		mock := export.NewMockWriter(ctrl)
		mock.EXPECT().Write(gomock.Any(), g, gomock.Any()).Return(nil)

		var sink export.Writer = mock
		Expect(sink.Write(&bytes.Buffer{}, g, nil)).To(Succeed())
	})

	It("renders Verilog for a latch counter", func() {
		g, err := graph.NewBuilder("net").
			WithSTE("src", "[c]", element.StartAllInput, false, "").
			WithCounter("ctr", 2, element.ModeLatch, true, "").
			WithEdge("src", "ctr", element.PortCnt).
			Build()
		Expect(err).NotTo(HaveOccurred())

		var buf bytes.Buffer
		Expect(export.Verilog{}.Write(&buf, g, nil)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("module"))
	})
})
