package rustdoc

import "sort"

// IdSet is an unordered set of ids.
type IdSet map[Id]struct{}

func NewIdSet(ids ...Id) IdSet {
	set := make(IdSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Add inserts id and reports whether it was new.
func (s IdSet) Add(id Id) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

func (s IdSet) Has(id Id) bool {
	_, ok := s[id]
	return ok
}

// Union adds every member of other to s.
func (s IdSet) Union(other IdSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Sorted returns the members in ascending order.
func (s IdSet) Sorted() []Id {
	out := make([]Id, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
