package export

import (
	"encoding/xml"
	"io"
	"sort"

	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
	"github.com/sarchlab/automa/simulate"
)

// ANML round-trips the element model to an XML-flavored dialect:
// element tags state-transition-element/and/or/nor/counter/inverter,
// with activate-on-match/report-on-match/activate-on-high/
// activate-on-target children. STE symbol sets are emitted verbatim.
type ANML struct{}

type anmlNetwork struct {
	XMLName xml.Name     `xml:"automata-network"`
	ID      string       `xml:"id,attr"`
	STEs    []anmlSTE    `xml:"state-transition-element"`
	Ands    []anmlGate   `xml:"and"`
	Ors     []anmlGate   `xml:"or"`
	Nors    []anmlGate   `xml:"nor"`
	Inverts []anmlGate   `xml:"inverter"`
	Counters []anmlCounter `xml:"counter"`
}

type anmlActivate struct {
	Element string `xml:"element,attr"`
}

type anmlReport struct {
	ReportCode string `xml:"reportcode,attr,omitempty"`
}

type anmlSTE struct {
	ID         string         `xml:"id,attr"`
	Symbols    string         `xml:"symbol-set,attr"`
	Start      string         `xml:"start,attr,omitempty"`
	Activates  []anmlActivate `xml:"activate-on-match"`
	Reports    []anmlReport   `xml:"report-on-match,omitempty"`
}

type anmlGate struct {
	ID        string         `xml:"id,attr"`
	Activates []anmlActivate `xml:"activate-on-match"`
	Reports   []anmlReport   `xml:"report-on-match,omitempty"`
}

type anmlCounter struct {
	ID         string         `xml:"id,attr"`
	Target     uint32         `xml:"target,attr"`
	AtTarget   string         `xml:"at-target,attr"`
	ActivateOn []anmlActivate `xml:"activate-on-high"`
	ActivateAt []anmlActivate `xml:"activate-on-target"`
	Reports    []anmlReport   `xml:"report-on-match,omitempty"`
}

func startAttr(s element.StartType) string {
	switch s {
	case element.StartOfData:
		return "start-of-data"
	case element.StartAllInput:
		return "all-input"
	default:
		return ""
	}
}

func reportsFor(e *element.Element) []anmlReport {
	if !e.Reporting {
		return nil
	}
	return []anmlReport{{ReportCode: e.ReportCode}}
}

func activatesFor(g *graph.Graph, e *element.Element) []anmlActivate {
	out := make([]anmlActivate, 0, len(e.Outputs))
	for _, o := range e.Outputs {
		if to := g.GetByIndex(o.To); to != nil {
			out = append(out, anmlActivate{Element: to.ID + o.Port.String()})
		}
	}
	return out
}

// Write renders g as ANML XML.
func (ANML) Write(w io.Writer, g *graph.Graph, _ *simulate.Profile) error {
	net := anmlNetwork{ID: g.AutomatonID}

	for _, e := range sortedElements(g) {
		switch e.Kind {
		case element.KindSTE:
			net.STEs = append(net.STEs, anmlSTE{
				ID: e.ID, Symbols: e.Symbols, Start: startAttr(e.Start),
				Activates: activatesFor(g, e), Reports: reportsFor(e),
			})
		case element.KindAND:
			net.Ands = append(net.Ands, anmlGate{ID: e.ID, Activates: activatesFor(g, e), Reports: reportsFor(e)})
		case element.KindOR:
			net.Ors = append(net.Ors, anmlGate{ID: e.ID, Activates: activatesFor(g, e), Reports: reportsFor(e)})
		case element.KindNOR:
			net.Nors = append(net.Nors, anmlGate{ID: e.ID, Activates: activatesFor(g, e), Reports: reportsFor(e)})
		case element.KindInverter:
			net.Inverts = append(net.Inverts, anmlGate{ID: e.ID, Activates: activatesFor(g, e), Reports: reportsFor(e)})
		case element.KindCounter:
			c := anmlCounter{ID: e.ID, Target: e.Target, AtTarget: e.Mode.String(), Reports: reportsFor(e)}
			for _, a := range activatesFor(g, e) {
				if e.Mode == element.ModeLatch {
					c.ActivateAt = append(c.ActivateAt, a)
				} else {
					c.ActivateOn = append(c.ActivateOn, a)
				}
			}
			net.Counters = append(net.Counters, c)
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(net)
}

func sortedElements(g *graph.Graph) []*element.Element {
	els := g.Elements()
	sort.Slice(els, func(i, j int) bool { return els[i].ID < els[j].ID })
	return els
}
