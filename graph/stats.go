package graph

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/automa/element"
)

// Stats summarizes element-kind counts and fan-in/out extremes: an
// automaton-level statistics dump useful before and after a transform.
type Stats struct {
	STECount      int
	ANDCount      int
	ORCount       int
	NORCount      int
	InverterCount int
	CounterCount  int
	StartCount    int
	ReportCount   int
	MaxFanIn      int
	MaxFanOut     int
}

// Stats computes a fresh snapshot over the current element set.
func (g *Graph) Stats() Stats {
	var s Stats
	for _, e := range g.arena {
		if e == nil {
			continue
		}
		switch e.Kind {
		case element.KindSTE:
			s.STECount++
		case element.KindAND:
			s.ANDCount++
		case element.KindOR:
			s.ORCount++
		case element.KindNOR:
			s.NORCount++
		case element.KindInverter:
			s.InverterCount++
		case element.KindCounter:
			s.CounterCount++
		}
		if len(e.Outputs) > s.MaxFanOut {
			s.MaxFanOut = len(e.Outputs)
		}
		if n := nonSelfInputCount(e); n > s.MaxFanIn {
			s.MaxFanIn = n
		}
	}
	s.StartCount = len(g.starts)
	s.ReportCount = len(g.reports)
	return s
}

// Render prints a go-pretty table of the snapshot, the same tabular
// diagnostics idiom simulate.Profile.Render uses for per-cycle counts.
func (s Stats) Render() {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"kind", "count"})
	t.AppendRow(table.Row{"STE", s.STECount})
	t.AppendRow(table.Row{"AND", s.ANDCount})
	t.AppendRow(table.Row{"OR", s.ORCount})
	t.AppendRow(table.Row{"NOR", s.NORCount})
	t.AppendRow(table.Row{"Inverter", s.InverterCount})
	t.AppendRow(table.Row{"Counter", s.CounterCount})
	t.AppendSeparator()
	t.AppendRow(table.Row{"starts", s.StartCount})
	t.AppendRow(table.Row{"reports", s.ReportCount})
	t.AppendRow(table.Row{"max fan-in", s.MaxFanIn})
	t.AppendRow(table.Row{"max fan-out", s.MaxFanOut})
	t.Render()
}

func nonSelfInputCount(e *element.Element) int {
	n := 0
	for key := range e.Inputs {
		fromID, _ := element.ParsePort(key)
		if fromID != e.ID {
			n++
		}
	}
	return n
}
