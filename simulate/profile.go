package simulate

import (
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Profile accumulates per-run statistics: per-element enable and
// activation counts, the per-cycle enable and activate populations, and
// an ordered activation log.
type Profile struct {
	Enables   map[string]int
	Activates map[string]int

	EnablesPerCycle   []int // distinct elements enabled per cycle, indexed by cycle
	ActivatesPerCycle []int // elements activated per cycle, indexed by cycle

	Activations []ActivationEntry
}

// ActivationEntry is one (cycle, element) activation, in emission order.
type ActivationEntry struct {
	Cycle int
	ID    string
}

// DefaultConcentrationShares are the shares the spec's percentile
// distribution reports by default: what fraction of elements captures
// 90%, 99%, and 99.9% of all enables.
var DefaultConcentrationShares = []float64{0.90, 0.99, 0.999}

// NewProfile returns an empty accumulator.
func NewProfile() *Profile {
	return &Profile{
		Enables:   make(map[string]int),
		Activates: make(map[string]int),
	}
}

func (p *Profile) recordEnable(cycle int, id string) {
	p.Enables[id]++
	for len(p.EnablesPerCycle) <= cycle {
		p.EnablesPerCycle = append(p.EnablesPerCycle, 0)
	}
	p.EnablesPerCycle[cycle]++
}

func (p *Profile) recordActivate(cycle int, id string) {
	p.Activates[id]++
	for len(p.ActivatesPerCycle) <= cycle {
		p.ActivatesPerCycle = append(p.ActivatesPerCycle, 0)
	}
	p.ActivatesPerCycle[cycle]++
	p.Activations = append(p.Activations, ActivationEntry{Cycle: cycle, ID: id})
}

// MaxActivePopulation returns the largest single-cycle activation count
// observed across the run.
func (p *Profile) MaxActivePopulation() int {
	return maxInt(p.ActivatesPerCycle)
}

// MaxEnabledPopulation returns the largest single-cycle enable count
// observed across the run.
func (p *Profile) MaxEnabledPopulation() int {
	return maxInt(p.EnablesPerCycle)
}

func maxInt(vals []int) int {
	max := 0
	for _, n := range vals {
		if n > max {
			max = n
		}
	}
	return max
}

// EnableConcentration computes, for each requested share (e.g. 0.90 for
// 90%), the fraction of elements that account for at least that share
// of all enable events — the Pareto-style statistic spec §4.8 asks for
// ("what fraction of elements captures 90/99/99.9%... of all enables").
// Elements are ranked by descending enable count; the returned fraction
// is the minimal prefix of that ranking whose cumulative enables reach
// the share, divided by the total number of distinct enabled elements.
func (p *Profile) EnableConcentration(shares []float64) map[float64]float64 {
	result := make(map[float64]float64, len(shares))

	counts := make([]int, 0, len(p.Enables))
	total := 0
	for _, n := range p.Enables {
		counts = append(counts, n)
		total += n
	}
	if total == 0 || len(counts) == 0 {
		for _, share := range shares {
			result[share] = 0
		}
		return result
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	cumFrac := make([]float64, len(counts))
	cum := 0
	for i, c := range counts {
		cum += c
		cumFrac[i] = float64(cum) / float64(total)
	}

	for _, share := range shares {
		n := len(counts)
		for i, f := range cumFrac {
			if f >= share {
				n = i + 1
				break
			}
		}
		result[share] = float64(n) / float64(len(counts))
	}
	return result
}

// Render prints two go-pretty tables to stdout: per-element enable and
// activation counts, and the enable-concentration percentile
// distribution over DefaultConcentrationShares.
func (p *Profile) Render() {
	counts := table.NewWriter()
	counts.SetOutputMirror(os.Stdout)
	counts.SetTitle("Element Activity")
	counts.AppendHeader(table.Row{"element", "enables", "activations"})

	ids := make(map[string]struct{}, len(p.Enables)+len(p.Activates))
	for id := range p.Enables {
		ids[id] = struct{}{}
	}
	for id := range p.Activates {
		ids[id] = struct{}{}
	}
	sortedIDs := make([]string, 0, len(ids))
	for id := range ids {
		sortedIDs = append(sortedIDs, id)
	}
	sort.Strings(sortedIDs)

	for _, id := range sortedIDs {
		counts.AppendRow(table.Row{id, p.Enables[id], p.Activates[id]})
	}
	counts.AppendFooter(table.Row{"max population", p.MaxEnabledPopulation(), p.MaxActivePopulation()})
	counts.Render()
	fmt.Println()

	concentration := table.NewWriter()
	concentration.SetOutputMirror(os.Stdout)
	concentration.SetTitle("Enable Concentration")
	concentration.AppendHeader(table.Row{"share of enables", "fraction of elements"})

	shares := p.EnableConcentration(DefaultConcentrationShares)
	ordered := append([]float64(nil), DefaultConcentrationShares...)
	sort.Float64s(ordered)
	for _, share := range ordered {
		concentration.AppendRow(table.Row{
			fmt.Sprintf("%.1f%%", share*100),
			fmt.Sprintf("%.1f%%", shares[share]*100),
		})
	}
	concentration.Render()
}
