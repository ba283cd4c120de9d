package transform

import (
	"fmt"

	"github.com/sarchlab/automa/element"
	"github.com/sarchlab/automa/graph"
)

// ConnectedComponents partitions g into independent graphs, one per
// undirected connected component over the union of outgoing and
// incoming edges. Each resulting graph is finalized and carries the
// same automaton id, suffixed by component index.
func ConnectedComponents(g *graph.Graph) []*graph.Graph {
	components := partition(g)

	graphs := make([]*graph.Graph, 0, len(components))
	for i, members := range components {
		graphs = append(graphs, extract(g, members, fmt.Sprintf("%s_cc%d", g.AutomatonID, i)))
	}
	return graphs
}

// partition computes the undirected connected components of g's
// elements as sets of int ids, in first-encountered order.
func partition(g *graph.Graph) [][]int {
	elems := g.Elements()
	adjacency := make(map[int][]int, len(elems))
	for _, e := range elems {
		for _, o := range e.Outputs {
			adjacency[e.IntID] = append(adjacency[e.IntID], o.To)
			adjacency[o.To] = append(adjacency[o.To], e.IntID)
		}
	}

	visited := make(map[int]bool, len(elems))
	var components [][]int
	for _, e := range elems {
		if visited[e.IntID] {
			continue
		}
		var members []int
		queue := []int{e.IntID}
		visited[e.IntID] = true
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			members = append(members, id)
			for _, nb := range adjacency[id] {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		components = append(components, members)
	}
	return components
}

// extract builds a standalone graph containing clones of every member
// element (identified by int id in g) plus the edges between them.
func extract(g *graph.Graph, members []int, automatonID string) *graph.Graph {
	memberSet := make(map[int]bool, len(members))
	for _, id := range members {
		memberSet[id] = true
	}

	ng := graph.New(automatonID)
	for _, id := range members {
		src := g.GetByIndex(id)
		ng.AddElement(cloneElement(src))
	}
	ng.Finalize()

	for _, id := range members {
		src := g.GetByIndex(id)
		clone, _ := ng.Get(src.ID)
		for _, o := range src.Outputs {
			if !memberSet[o.To] {
				continue
			}
			toClone, _ := ng.Get(g.GetByIndex(o.To).ID)
			ng.AddEdge(clone, toClone, o.Port)
		}
	}
	ng.Finalize()
	return ng
}

func cloneElement(src *element.Element) *element.Element {
	var clone *element.Element
	switch src.Kind {
	case element.KindSTE:
		clone = element.NewSTE(src.ID, src.Symbols, src.Column.Clone(), src.Start)
	case element.KindCounter:
		clone = element.NewCounter(src.ID, src.Target, src.Mode)
	default:
		clone = element.NewGate(src.ID, src.Kind)
	}
	clone.Reporting = src.Reporting
	clone.ReportCode = src.ReportCode
	clone.EOD = src.EOD
	return clone
}
