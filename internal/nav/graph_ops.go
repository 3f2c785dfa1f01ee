package nav

import (
	"sort"

	"github.com/morozRed/cratemap/internal/graph"
	"github.com/morozRed/cratemap/internal/rustdoc"
)

func CollectParents(l *Lookup, g *graph.Graph, id rustdoc.Id) []EdgeRecord {
	return collect(l, g.SortedParents(id))
}

func CollectChildren(l *Lookup, g *graph.Graph, id rustdoc.Id) []EdgeRecord {
	return collect(l, g.SortedChildren(id))
}

func collect(l *Lookup, adjacent []graph.Adjacent) []EdgeRecord {
	out := make([]EdgeRecord, 0, len(adjacent))
	for _, adj := range adjacent {
		out = append(out, EdgeRecord{Item: l.Record(adj.ID), Label: adj.Label.String()})
	}
	return out
}

// Trace lists every edge reachable from start within depth hops, breadth
// first. A node is expanded again only when reached at a smaller depth.
func Trace(l *Lookup, g *graph.Graph, start rustdoc.Id, depth int) []TraceHop {
	type queueItem struct {
		id    rustdoc.Id
		depth int
	}
	queue := []queueItem{{id: start, depth: 0}}
	seenDepth := map[rustdoc.Id]int{start: 0}
	hops := make([]TraceHop, 0)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.depth >= depth {
			continue
		}

		from := l.Record(current.id)
		for _, next := range g.SortedChildren(current.id) {
			nextDepth := current.depth + 1
			hops = append(hops, TraceHop{
				Depth: nextDepth,
				From:  from,
				To:    l.Record(next.ID),
				Label: next.Label.String(),
			})
			if previousDepth, exists := seenDepth[next.ID]; !exists || nextDepth < previousDepth {
				seenDepth[next.ID] = nextDepth
				queue = append(queue, queueItem{id: next.ID, depth: nextDepth})
			}
		}
	}

	sort.SliceStable(hops, func(i, j int) bool {
		if hops[i].Depth != hops[j].Depth {
			return hops[i].Depth < hops[j].Depth
		}
		if hops[i].From.ID != hops[j].From.ID {
			return hops[i].From.ID < hops[j].From.ID
		}
		return hops[i].To.ID < hops[j].To.ID
	})
	return hops
}

// Path returns the steps of a shortest path from -> to, or nil when to is
// unreachable. Each step carries the smallest label joining its endpoints.
func Path(l *Lookup, g *graph.Graph, from, to rustdoc.Id) []PathStep {
	ids := g.ShortestPath(from, to)
	if len(ids) < 2 {
		return nil
	}
	steps := make([]PathStep, 0, len(ids)-1)
	for i := 1; i < len(ids); i++ {
		label := ""
		for _, adj := range g.SortedChildren(ids[i-1]) {
			if adj.ID == ids[i] {
				label = adj.Label.String()
				break
			}
		}
		steps = append(steps, PathStep{
			From:  l.Record(ids[i-1]),
			To:    l.Record(ids[i]),
			Label: label,
		})
	}
	return steps
}
