package graph

import (
	"sort"

	"github.com/morozRed/cratemap/internal/rustdoc"
)

// FindRoots returns every node with no incoming edge: items nothing else in
// the index structurally depends on.
func (g *Graph) FindRoots() rustdoc.IdSet {
	roots := make(rustdoc.IdSet)
	for id := range g.forward {
		if len(g.reverse[id]) == 0 {
			roots.Add(id)
		}
	}
	return roots
}

// FilterToLeaf returns the subgraph of nodes that can reach target, with
// every edge whose endpoints both reach it. An unknown target yields an
// empty graph.
func (g *Graph) FilterToLeaf(target rustdoc.Id) *Graph {
	out := New(g.index)
	if !g.HasNode(target) {
		return out
	}

	reach := g.Ancestors(target)
	reach.Add(target)
	out.touch(target)
	for edge := range g.edges {
		if reach.Has(edge.Source) && reach.Has(edge.Target) {
			out.AddEdge(edge.Source, edge.Target, edge.Label)
		}
	}
	return out
}

// Ancestors returns every node with a path to id, found by breadth-first
// search over reverse adjacency. id itself is included only if it sits on a cycle.
func (g *Graph) Ancestors(id rustdoc.Id) rustdoc.IdSet {
	seen := make(rustdoc.IdSet)
	queue := []rustdoc.Id{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, parent := range g.reverse[current] {
			if seen.Add(parent.ID) {
				queue = append(queue, parent.ID)
			}
		}
	}
	return seen
}

// Descendants returns every node reachable from id.
func (g *Graph) Descendants(id rustdoc.Id) rustdoc.IdSet {
	seen := make(rustdoc.IdSet)
	stack := []rustdoc.Id{id}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range g.forward[current] {
			if seen.Add(child.ID) {
				stack = append(stack, child.ID)
			}
		}
	}
	return seen
}

// ShortestPath returns the nodes of a shortest forward path from -> to,
// inclusive, or nil when there is none.
func (g *Graph) ShortestPath(from, to rustdoc.Id) []rustdoc.Id {
	if from == to {
		return []rustdoc.Id{from}
	}

	queue := []rustdoc.Id{from}
	visited := rustdoc.NewIdSet(from)
	parent := make(map[rustdoc.Id]rustdoc.Id)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range g.SortedChildren(current) {
			if !visited.Add(next.ID) {
				continue
			}
			parent[next.ID] = current
			if next.ID == to {
				return reconstructPath(parent, from, to)
			}
			queue = append(queue, next.ID)
		}
	}
	return nil
}

func reconstructPath(parent map[rustdoc.Id]rustdoc.Id, from, to rustdoc.Id) []rustdoc.Id {
	out := []rustdoc.Id{to}
	for current := to; current != from; {
		prev, ok := parent[current]
		if !ok {
			return nil
		}
		out = append(out, prev)
		current = prev
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Ranked is a node with its PageRank score.
type Ranked struct {
	ID   rustdoc.Id `json:"id"`
	Rank float64    `json:"rank"`
}

// TopRanked scores nodes with PageRank over the edge set and returns the n
// most depended-upon nodes.
func (g *Graph) TopRanked(n, iterations int, damping float64) []Ranked {
	nodes := g.Nodes()
	count := float64(len(nodes))
	if count == 0 || n <= 0 {
		return nil
	}

	rank := make(map[rustdoc.Id]float64, len(nodes))
	for _, id := range nodes {
		rank[id] = 1.0 / count
	}
	for i := 0; i < iterations; i++ {
		next := make(map[rustdoc.Id]float64, len(nodes))
		for _, id := range nodes {
			score := (1 - damping) / count
			for _, in := range g.reverse[id] {
				if outDegree := float64(len(g.forward[in.ID])); outDegree > 0 {
					score += damping * rank[in.ID] / outDegree
				}
			}
			next[id] = score
		}
		rank = next
	}

	out := make([]Ranked, 0, len(nodes))
	for _, id := range nodes {
		out = append(out, Ranked{ID: id, Rank: rank[id]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank == out[j].Rank {
			return out[i].ID < out[j].ID
		}
		return out[i].Rank > out[j].Rank
	})
	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}
