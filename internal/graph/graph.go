// Package graph extracts typed references between items of a rustdoc index
// and answers structural queries over them.
package graph

import (
	"sort"

	"github.com/morozRed/cratemap/internal/rustdoc"
)

// Index reports which ids belong to the local item index. *rustdoc.Crate implements it.
type Index interface {
	Has(id rustdoc.Id) bool
}

// Edge is one labeled reference from Source to Target.
type Edge struct {
	Source rustdoc.Id `json:"source"`
	Target rustdoc.Id `json:"target"`
	Label  Label      `json:"label"`
}

// Adjacent is the far end of an edge as seen from one node.
type Adjacent struct {
	ID    rustdoc.Id `json:"id"`
	Label Label      `json:"label"`
}

// Graph is a labeled directed graph over ids of one index. The edge set and
// both adjacency maps are only ever changed together through AddEdge.
//
// A Graph is built by a single writer and is read-only afterwards; readers
// need no synchronization once construction is done.
type Graph struct {
	index   Index
	edges   map[Edge]struct{}
	forward map[rustdoc.Id][]Adjacent
	reverse map[rustdoc.Id][]Adjacent
	dropped int
}

// New returns an empty graph whose edges are restricted to ids in index.
func New(index Index) *Graph {
	return &Graph{
		index:   index,
		edges:   make(map[Edge]struct{}),
		forward: make(map[rustdoc.Id][]Adjacent),
		reverse: make(map[rustdoc.Id][]Adjacent),
	}
}

// AddEdge inserts source -> target. It is a no-op when either endpoint is
// outside the index or the edge already exists, and reports whether the
// edge was inserted.
func (g *Graph) AddEdge(source, target rustdoc.Id, label Label) bool {
	if g.index == nil || !g.index.Has(source) || !g.index.Has(target) {
		g.dropped++
		return false
	}
	edge := Edge{Source: source, Target: target, Label: label}
	if _, exists := g.edges[edge]; exists {
		return false
	}
	g.edges[edge] = struct{}{}
	g.forward[source] = append(g.forward[source], Adjacent{ID: target, Label: label})
	g.reverse[target] = append(g.reverse[target], Adjacent{ID: source, Label: label})
	return true
}

// touch registers id as a node even when it has no edge in this graph.
func (g *Graph) touch(id rustdoc.Id) {
	if _, ok := g.forward[id]; !ok {
		g.forward[id] = nil
	}
}

// Children returns the direct successors of id in insertion order. The
// slice is shared with the graph and must not be modified.
func (g *Graph) Children(id rustdoc.Id) []Adjacent {
	return g.forward[id]
}

// Parents returns the direct predecessors of id in insertion order. The
// slice is shared with the graph and must not be modified.
func (g *Graph) Parents(id rustdoc.Id) []Adjacent {
	return g.reverse[id]
}

// SortedChildren returns a copy of Children ordered by target, then label.
func (g *Graph) SortedChildren(id rustdoc.Id) []Adjacent {
	return sortedAdjacent(g.forward[id])
}

// SortedParents returns a copy of Parents ordered by source, then label.
func (g *Graph) SortedParents(id rustdoc.Id) []Adjacent {
	return sortedAdjacent(g.reverse[id])
}

func sortedAdjacent(in []Adjacent) []Adjacent {
	out := append([]Adjacent(nil), in...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID == out[j].ID {
			return out[i].Label < out[j].Label
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// HasNode reports whether id is an endpoint of any edge.
func (g *Graph) HasNode(id rustdoc.Id) bool {
	_, out := g.forward[id]
	_, in := g.reverse[id]
	return out || in
}

// HasEdge reports whether the exact labeled edge is present.
func (g *Graph) HasEdge(source, target rustdoc.Id, label Label) bool {
	_, ok := g.edges[Edge{Source: source, Target: target, Label: label}]
	return ok
}

// Len is the number of distinct edges.
func (g *Graph) Len() int {
	return len(g.edges)
}

// Dropped counts AddEdge calls rejected because an endpoint was outside the
// index, typically references into other crates.
func (g *Graph) Dropped() int {
	return g.dropped
}

// Edges returns every edge ordered by source, target, label.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for edge := range g.edges {
		out = append(out, edge)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		if out[i].Target != out[j].Target {
			return out[i].Target < out[j].Target
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Nodes returns every id that appears as an edge endpoint, ascending.
func (g *Graph) Nodes() []rustdoc.Id {
	set := make(rustdoc.IdSet, len(g.forward)+len(g.reverse))
	for id := range g.forward {
		set.Add(id)
	}
	for id := range g.reverse {
		set.Add(id)
	}
	return set.Sorted()
}
