package export

import (
	"encoding/json"
	"io"

	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
	"github.com/sarchlab/automa/simulate"
)

// MNRL renders g as an MNRL-style JSON dialect: a node list
// (hState/boolean/upCounter) plus an explicit connection list with
// source port H_STATE_OUTPUT and a destination port keyed by node type.
type MNRL struct{}

type mnrlNode struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Attributes map[string]interface{} `json:"attributes"`
	Enabled    bool                   `json:"enabled"`
	Report     bool                   `json:"report"`
	ReportID   string                 `json:"reportId,omitempty"`
}

type mnrlPort struct {
	ID   string `json:"id"`
	Port string `json:"port"`
}

type mnrlConnection struct {
	Source mnrlPort `json:"source"`
	Dest   mnrlPort `json:"dest"`
}

type mnrlDoc struct {
	ID          string           `json:"id"`
	Nodes       []mnrlNode       `json:"nodes"`
	Connections []mnrlConnection `json:"connections"`
}

func mnrlType(k element.Kind) string {
	switch k {
	case element.KindSTE:
		return "hState"
	case element.KindCounter:
		return "upCounter"
	default:
		return "boolean"
	}
}

func mnrlDestPort(e *element.Element, port element.Port) string {
	switch e.Kind {
	case element.KindSTE:
		return "H_STATE_INPUT"
	case element.KindCounter:
		if port == element.PortRst {
			return "reset"
		}
		return "count"
	default:
		return "b_in"
	}
}

// Write renders g as an MNRL JSON document.
func (MNRL) Write(w io.Writer, g *graph.Graph, _ *simulate.Profile) error {
	doc := mnrlDoc{ID: g.AutomatonID}

	for _, e := range sortedElements(g) {
		attrs := map[string]interface{}{}
		switch e.Kind {
		case element.KindSTE:
			attrs["symbolSet"] = e.Symbols
			attrs["start"] = startAttr(e.Start)
		case element.KindCounter:
			attrs["target"] = e.Target
			attrs["mode"] = e.Mode.String()
		case element.KindAND, element.KindOR, element.KindNOR, element.KindInverter:
			attrs["gate"] = e.Kind.String()
		}

		doc.Nodes = append(doc.Nodes, mnrlNode{
			ID: e.ID, Type: mnrlType(e.Kind), Attributes: attrs,
			Report: e.Reporting, ReportID: e.ReportCode,
		})

		for _, o := range e.Outputs {
			to := g.GetByIndex(o.To)
			if to == nil {
				continue
			}
			doc.Connections = append(doc.Connections, mnrlConnection{
				Source: mnrlPort{ID: e.ID, Port: "H_STATE_OUTPUT"},
				Dest:   mnrlPort{ID: to.ID, Port: mnrlDestPort(to, o.Port)},
			})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
