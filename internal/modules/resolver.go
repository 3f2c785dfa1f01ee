// Package modules flattens module re-exports into the set of items each
// module actually exposes.
package modules

import (
	"log/slog"

	"github.com/morozRed/cratemap/internal/rustdoc"
)

type resolutionState uint8

const (
	// stateUnresolved is represented by absence from the cache.
	stateResolving resolutionState = iota + 1
	stateResolved
)

type entry struct {
	state resolutionState
	items rustdoc.IdSet
}

// Resolver computes module membership with an explicit memo table. One
// Resolver serves one run; use a fresh one per index.
type Resolver struct {
	crate  *rustdoc.Crate
	cache  map[rustdoc.Id]*entry
	logger *slog.Logger

	visits int
	cycles int
}

func NewResolver(crate *rustdoc.Crate, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		crate:  crate,
		cache:  make(map[rustdoc.Id]*entry),
		logger: logger,
	}
}

// Resolve returns the ids module exposes: its direct members, the targets of
// its single re-exports, and the flattened members of modules it glob
// re-exports. A glob of a non-module (an enum's variants) contributes the
// glob target itself. Unknown modules resolve to the empty set.
//
// A module re-entered while it is still being resolved contributes nothing to
// the inner call, which is how mutually glob-importing modules terminate.
//
// The returned set is the cached value and must not be modified.
func (r *Resolver) Resolve(module rustdoc.Id) rustdoc.IdSet {
	if cached, ok := r.cache[module]; ok {
		if cached.state == stateResolving {
			r.cycles++
			r.logger.Debug("glob re-export cycle", "module", r.crate.DisplayName(module))
			return rustdoc.IdSet{}
		}
		return cached.items
	}

	item := r.crate.Item(module)
	if item == nil || item.Inner.Module == nil {
		empty := &entry{state: stateResolved, items: rustdoc.IdSet{}}
		r.cache[module] = empty
		return empty.items
	}

	r.visits++
	current := &entry{state: stateResolving}
	r.cache[module] = current

	items := make(rustdoc.IdSet, len(item.Inner.Module.Items))
	for _, memberID := range item.Inner.Module.Items {
		member := r.crate.Item(memberID)
		if member == nil || member.Inner.Use == nil {
			items.Add(memberID)
			continue
		}

		use := member.Inner.Use
		if use.ID == nil {
			continue
		}
		target := *use.ID
		if use.IsGlob && r.crate.Kind(target) == rustdoc.KindModule {
			items.Union(r.Resolve(target))
			continue
		}
		items.Add(target)
	}

	current.items = items
	current.state = stateResolved
	return items
}

// Cycles counts re-entrant resolutions cut short so far.
func (r *Resolver) Cycles() int {
	return r.cycles
}

// ResolvedModule is the flattened membership of one module.
type ResolvedModule struct {
	ID    rustdoc.Id
	Items rustdoc.IdSet
}

// Index maps every module id to its resolved membership.
type Index map[rustdoc.Id]*ResolvedModule

// BuildIndex resolves every module of crate with a shared resolver.
func BuildIndex(crate *rustdoc.Crate, logger *slog.Logger) Index {
	resolver := NewResolver(crate, logger)
	index := make(Index)
	for _, id := range crate.SortedIDs() {
		if !crate.IsModule(id) {
			continue
		}
		index[id] = &ResolvedModule{ID: id, Items: resolver.Resolve(id)}
	}
	if n := resolver.Cycles(); n > 0 {
		resolver.logger.Warn("glob re-export cycles cut during module resolution", "count", n)
	}
	return index
}

// SortedIDs returns the module ids in ascending order.
func (idx Index) SortedIDs() []rustdoc.Id {
	set := make(rustdoc.IdSet, len(idx))
	for id := range idx {
		set.Add(id)
	}
	return set.Sorted()
}
