package simulate_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
	"github.com/sarchlab/automa/simulate"
)

var _ = Describe("Profile", func() {
	It("computes the minimal element fraction capturing each target share of enables", func() {
		p := simulate.NewProfile()
		p.Enables = map[string]int{"a": 90, "b": 9, "c": 1}

		shares := p.EnableConcentration([]float64{0.90, 0.99, 1.0})

		Expect(shares[0.90]).To(BeNumerically("~", 1.0/3.0, 1e-9))
		Expect(shares[0.99]).To(BeNumerically("~", 2.0/3.0, 1e-9))
		Expect(shares[1.0]).To(Equal(1.0))
	})

	It("returns zero concentration for an empty profile", func() {
		p := simulate.NewProfile()
		shares := p.EnableConcentration(simulate.DefaultConcentrationShares)
		for _, share := range simulate.DefaultConcentrationShares {
			Expect(shares[share]).To(Equal(0.0))
		}
	})

	It("tracks per-cycle enable and activate populations from a live run", func() {
		g, err := graph.NewBuilder("net").
			WithSTE("a", "*", element.StartAllInput, false, "").
			WithSTE("b", "*", element.StartNone, true, "").
			WithEdge("a", "b", element.PortNone).
			Build()
		Expect(err).NotTo(HaveOccurred())

		sim := simulate.NewBuilder(g).Build()
		data := []byte("xx")
		sim.Run(data, 0, len(data))

		Expect(sim.Profile.Enables).To(Equal(map[string]int{"a": 2, "b": 1}))
		Expect(sim.Profile.EnablesPerCycle).To(Equal([]int{1, 2}))
		Expect(sim.Profile.ActivatesPerCycle).To(Equal([]int{1, 2}))
		Expect(sim.Profile.MaxEnabledPopulation()).To(Equal(2))
		Expect(sim.Profile.MaxActivePopulation()).To(Equal(2))
	})
})
