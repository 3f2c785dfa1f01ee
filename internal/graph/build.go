package graph

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/morozRed/cratemap/internal/rustdoc"
)

// Build extracts references from every item of crate and returns the
// complete graph. Items are visited in id order so insertion order, and
// therefore Children order, is reproducible.
func Build(crate *rustdoc.Crate) *Graph {
	g := New(crate)
	for _, id := range crate.SortedIDs() {
		for _, ref := range References(crate.Index[id]) {
			g.AddEdge(id, ref.Target, ref.Label)
		}
	}
	return g
}

// BuildParallel produces the same graph as Build, extracting references on up
// to workers goroutines. Insertion still happens on the calling goroutine,
// in id order, once every extraction has finished.
func BuildParallel(ctx context.Context, crate *rustdoc.Crate, workers int) (*Graph, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	ids := crate.SortedIDs()
	if workers == 1 || len(ids) < 2*workers {
		return Build(crate), nil
	}

	refs := make([][]Reference, len(ids))
	chunk := (len(ids) + workers - 1) / workers

	eg, egCtx := errgroup.WithContext(ctx)
	for start := 0; start < len(ids); start += chunk {
		end := min(start+chunk, len(ids))
		eg.Go(func() error {
			for i := start; i < end; i++ {
				if err := egCtx.Err(); err != nil {
					return err
				}
				refs[i] = References(crate.Index[ids[i]])
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g := New(crate)
	for i, id := range ids {
		for _, ref := range refs[i] {
			g.AddEdge(id, ref.Target, ref.Label)
		}
	}
	return g, nil
}
