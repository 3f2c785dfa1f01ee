package nav

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/morozRed/cratemap/internal/rustdoc"
	"github.com/morozRed/cratemap/internal/search"
	"github.com/morozRed/cratemap/internal/selection"
)

// recordCacheSize bounds the rendered records kept between calls to Record.
const recordCacheSize = 4096

var (
	ErrNotFound  = errors.New("item not found")
	ErrAmbiguous = errors.New("item reference is ambiguous")
)

// Lookup resolves user queries to item ids: "#12" or "12", a path such as
// "::style::Color" or "shapes::Canvas", or a bare item name.
type Lookup struct {
	crate     *rustdoc.Crate
	crateName string
	byName    map[string][]rustdoc.Id
	byPath    map[string]rustdoc.Id
	search    *search.Index
	records   *lru.Cache[rustdoc.Id, ItemRecord]
}

func NewLookup(crate *rustdoc.Crate) *Lookup {
	l := &Lookup{
		crate:  crate,
		byName: make(map[string][]rustdoc.Id),
		byPath: make(map[string]rustdoc.Id),
	}
	l.crateName, _ = crate.RootName()
	// lru.New only fails for a non-positive size.
	l.records, _ = lru.New[rustdoc.Id, ItemRecord](recordCacheSize)
	for _, id := range crate.SortedIDs() {
		if name := crate.Item(id).ItemName(); name != "" {
			l.byName[name] = append(l.byName[name], id)
		}
		if path, ok := crate.Path(id); ok {
			l.byPath[strings.Join(path, rustdoc.PathSeparator)] = id
		}
	}
	return l
}

func (l *Lookup) Crate() *rustdoc.Crate {
	return l.crate
}

// Resolve returns the exact matches for query in ascending id order.
func (l *Lookup) Resolve(query string) []rustdoc.Id {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	if id, ok := parseID(query); ok {
		if l.crate.Has(id) {
			return []rustdoc.Id{id}
		}
		return nil
	}
	if strings.Contains(query, rustdoc.PathSeparator) {
		path := selection.NormalizeFilter(l.crateName, query)
		if id, ok := l.byPath[selection.FormatPath(path)]; ok {
			return []rustdoc.Id{id}
		}
		return nil
	}
	if id, ok := l.byPath[selection.FormatPath(selection.NormalizeFilter(l.crateName, query))]; ok {
		return []rustdoc.Id{id}
	}
	return append([]rustdoc.Id(nil), l.byName[query]...)
}

// ResolveWithOptions falls back to fuzzy search when the exact lookup misses
// and opts.Fuzzy is set.
func (l *Lookup) ResolveWithOptions(query string, opts ResolveOptions) []rustdoc.Id {
	matches := l.Resolve(query)
	if len(matches) > 0 || !opts.Fuzzy {
		return matches
	}
	if l.search == nil {
		l.search = search.Build(l.crate)
	}
	results := search.Search(l.search, query, opts.Limit)
	out := make([]rustdoc.Id, 0, len(results))
	for _, result := range results {
		out = append(out, result.ID)
	}
	return out
}

func (l *Lookup) ResolveSingle(query string) (rustdoc.Id, error) {
	matches := l.Resolve(query)
	if len(matches) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, query)
	}
	if len(matches) == 1 {
		return matches[0], nil
	}

	options := make([]string, 0, len(matches))
	for _, match := range matches {
		options = append(options, "#"+match.String())
	}
	return 0, fmt.Errorf("%w: %q; use one of: %s", ErrAmbiguous, query, strings.Join(options, ", "))
}

// Record describes id for reports. Results are kept in a bounded LRU.
func (l *Lookup) Record(id rustdoc.Id) ItemRecord {
	if record, ok := l.records.Get(id); ok {
		return record
	}
	record := ItemRecord{ID: id, Kind: string(l.crate.Kind(id))}
	if item := l.crate.Item(id); item != nil {
		record.Name = item.ItemName()
	}
	if path, ok := l.crate.Path(id); ok {
		record.Path = strings.Join(path, rustdoc.PathSeparator)
	}
	l.records.Add(id, record)
	return record
}

// Name renders id for text output.
func (l *Lookup) Name(id rustdoc.Id) string {
	return l.crate.DisplayName(id)
}

func parseID(query string) (rustdoc.Id, bool) {
	query = strings.TrimPrefix(query, "#")
	value, err := strconv.ParseUint(query, 10, 32)
	if err != nil {
		return 0, false
	}
	return rustdoc.Id(value), true
}
