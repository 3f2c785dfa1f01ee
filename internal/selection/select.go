// Package selection computes the items a run works on: the members matched
// by path filters plus everything they structurally depend on.
package selection

import (
	"fmt"
	"log/slog"

	"github.com/morozRed/cratemap/internal/graph"
	"github.com/morozRed/cratemap/internal/ignore"
	"github.com/morozRed/cratemap/internal/modules"
	"github.com/morozRed/cratemap/internal/rustdoc"
)

// Result is the outcome of Select. Graph always covers the whole index.
type Result struct {
	Selected rustdoc.IdSet
	Seeds    rustdoc.IdSet
	Graph    *graph.Graph
	Warnings []string
}

type options struct {
	exclude *ignore.Matcher
	logger  *slog.Logger
	graph   *graph.Graph
}

// Option configures Select.
type Option func(*options)

// WithExclude drops seeds whose item path the matcher excludes. Excluded
// items can still be pulled in by the closure.
func WithExclude(m *ignore.Matcher) Option {
	return func(o *options) { o.exclude = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithGraph reuses a graph already built over the same crate.
func WithGraph(g *graph.Graph) Option {
	return func(o *options) { o.graph = g }
}

// Select builds the complete graph, seeds the selection with every resolved
// module member whose canonical path starts with one of filters, and closes
// the seeds over graph children. With no filters every item is selected.
//
// The only error is a malformed index (missing or unnamed root) when filters
// need the crate name to be normalized.
func Select(crate *rustdoc.Crate, filters []string, mods modules.Index, opts ...Option) (*Result, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	g := o.graph
	if g == nil {
		g = graph.Build(crate)
	}
	result := &Result{
		Selected: make(rustdoc.IdSet),
		Seeds:    make(rustdoc.IdSet),
		Graph:    g,
	}

	if len(filters) == 0 {
		for id := range crate.Index {
			result.Selected.Add(id)
		}
		return result, nil
	}

	crateName, err := crate.RootName()
	if err != nil {
		return nil, fmt.Errorf("failed to normalize filters: %w", err)
	}
	normalized := make([][]string, len(filters))
	for i, filter := range filters {
		normalized[i] = NormalizeFilter(crateName, filter)
	}

	matched := make([]bool, len(filters))
	for _, moduleID := range mods.SortedIDs() {
		modulePath, hasModulePath := crate.Path(moduleID)
		for _, member := range mods[moduleID].Items.Sorted() {
			if result.Seeds.Has(member) || !crate.Has(member) {
				continue
			}
			path, ok := crate.Path(member)
			if !ok {
				name := crate.Item(member).ItemName()
				if !hasModulePath || name == "" {
					continue
				}
				path = append(append(make([]string, 0, len(modulePath)+1), modulePath...), name)
			}

			hit := false
			for i, prefix := range normalized {
				if HasPathPrefix(path, prefix) {
					matched[i] = true
					hit = true
				}
			}
			if !hit {
				continue
			}
			if o.exclude.MatchesItem(path) {
				o.logger.Debug("excluded seed", "item", FormatPath(path))
				continue
			}
			result.Seeds.Add(member)
		}
	}

	for i, ok := range matched {
		if !ok {
			result.warn(o.logger, fmt.Sprintf("filter %q matched no items", filters[i]))
		}
	}

	result.Selected = Closure(g, result.Seeds)
	if len(result.Selected) == 0 {
		result.warn(o.logger, "selection is empty")
	}
	return result, nil
}

// Closure returns seeds plus every node reachable from them in g. Each node's
// children are expanded at most once.
func Closure(g *graph.Graph, seeds rustdoc.IdSet) rustdoc.IdSet {
	selected := make(rustdoc.IdSet, len(seeds))
	expanded := make(rustdoc.IdSet, len(seeds))
	worklist := seeds.Sorted()
	for _, id := range worklist {
		selected.Add(id)
	}

	for len(worklist) > 0 {
		current := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if !expanded.Add(current) {
			continue
		}
		for _, child := range g.Children(current) {
			if selected.Add(child.ID) {
				worklist = append(worklist, child.ID)
			}
		}
	}
	return selected
}

func (r *Result) warn(logger *slog.Logger, msg string) {
	r.Warnings = append(r.Warnings, msg)
	logger.Warn(msg)
}
