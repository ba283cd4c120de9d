package export

import (
	"fmt"
	"io"
	"math"

	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
	"github.com/sarchlab/automa/simulate"
)

// DOT renders g as GraphViz DOT: one node per element, a double-outline
// shape for reporting elements, a double circle for starts, and an
// optional activation-count heat-map fill sourced from profile.
// HeatMap defaults to HeatMapNone (no fill); HeatMapLinear or
// HeatMapLogScaled turn the fill on.
type DOT struct {
	HeatMap HeatMapScale
}

// HeatMapScale selects how activation counts map to fill intensity.
type HeatMapScale int

const (
	HeatMapNone HeatMapScale = iota
	HeatMapLinear
	HeatMapLogScaled
)

func (d DOT) Write(w io.Writer, g *graph.Graph, profile *simulate.Profile) error {
	if _, err := fmt.Fprintf(w, "digraph %q {\n", g.AutomatonID); err != nil {
		return err
	}

	maxCount := 0
	if profile != nil && d.HeatMap != HeatMapNone {
		for _, n := range profile.Activates {
			if n > maxCount {
				maxCount = n
			}
		}
	}

	for _, e := range sortedElements(g) {
		shape := "circle"
		if e.Start != element.StartNone {
			shape = "doublecircle"
		}
		peripheries := 1
		if e.Reporting {
			peripheries = 2
		}

		attrs := fmt.Sprintf("shape=%s peripheries=%d label=%q", shape, peripheries, nodeLabel(e))

		if profile != nil && d.HeatMap != HeatMapNone && maxCount > 0 {
			if fill, ok := heatFill(profile.Activates[e.ID], maxCount, d.HeatMap); ok {
				attrs += fmt.Sprintf(" style=filled fillcolor=%q", fill)
			}
		}

		if _, err := fmt.Fprintf(w, "  %q [%s];\n", e.ID, attrs); err != nil {
			return err
		}
	}

	for _, e := range sortedElements(g) {
		for _, o := range e.Outputs {
			to := g.GetByIndex(o.To)
			if to == nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "  %q -> %q;\n", e.ID, to.ID); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

func nodeLabel(e *element.Element) string {
	switch e.Kind {
	case element.KindSTE:
		return e.ID + "\n" + e.Symbols
	case element.KindCounter:
		return fmt.Sprintf("%s\ncnt:%d/%s", e.ID, e.Target, e.Mode)
	default:
		return e.ID + "\n" + e.Kind.String()
	}
}

// heatFill maps count/maxCount to a GraphViz "H,S,V" fill string with a
// red hue and full value, whose saturation grows with the ratio,
// scaling logarithmically when HeatMapLogScaled is selected.
func heatFill(count, maxCount int, scale HeatMapScale) (string, bool) {
	if count == 0 {
		return "", false
	}
	ratio := float64(count) / float64(maxCount)
	if scale == HeatMapLogScaled {
		ratio = math.Log1p(float64(count)) / math.Log1p(float64(maxCount))
	}
	intensity := 1.0 - 0.7*ratio // hotter -> more saturated red
	return fmt.Sprintf("%.3f,%.3f,%.3f", 0.0, 1.0-intensity, 1.0), true
}
