// Package rustdoc models the item index emitted by `rustdoc --output-format json`.
//
// The index is loaded once and treated as immutable by every consumer.
package rustdoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrMissingRoot means the index does not contain its own root item.
	ErrMissingRoot = errors.New("item index has no root item")
	// ErrUnnamedRoot means the root item exists but carries no name.
	ErrUnnamedRoot = errors.New("root item has no name")
)

// PathSeparator joins path segments in filters and rendered paths.
const PathSeparator = "::"

// Id names one item in the index.
type Id uint32

func (id Id) String() string {
	return fmt.Sprintf("%d", uint32(id))
}

// ItemSummary is the entry rustdoc keeps in `paths` for every item it can name,
// local or external.
type ItemSummary struct {
	CrateID uint32   `json:"crate_id"`
	Path    []string `json:"path"`
	Kind    ItemKind `json:"kind"`
}

// ExternalCrate describes a crate referenced from the index.
type ExternalCrate struct {
	Name        string `json:"name"`
	HTMLRootURL string `json:"html_root_url,omitempty"`
}

// Crate is the complete item index for one package.
type Crate struct {
	Root            Id                       `json:"root"`
	CrateVersion    string                   `json:"crate_version,omitempty"`
	IncludesPrivate bool                     `json:"includes_private"`
	Index           map[Id]*Item             `json:"index"`
	Paths           map[Id]ItemSummary       `json:"paths"`
	ExternalCrates  map[uint32]ExternalCrate `json:"external_crates,omitempty"`
	FormatVersion   int                      `json:"format_version"`
}

// Item is one entry of the index.
type Item struct {
	ID         Id              `json:"id"`
	CrateID    uint32          `json:"crate_id"`
	Name       *string         `json:"name"`
	Visibility json.RawMessage `json:"visibility,omitempty"`
	Docs       *string         `json:"docs"`
	Links      map[string]Id   `json:"links,omitempty"`
	Inner      ItemInner       `json:"inner"`
}

// ItemName returns the item's name or "" when it has none.
func (it *Item) ItemName() string {
	if it == nil || it.Name == nil {
		return ""
	}
	return *it.Name
}

// Kind is shorthand for it.Inner.Kind.
func (it *Item) Kind() ItemKind {
	if it == nil {
		return ""
	}
	return it.Inner.Kind
}

// Has reports whether id names an item in the local index.
func (c *Crate) Has(id Id) bool {
	if c == nil {
		return false
	}
	_, ok := c.Index[id]
	return ok
}

// Item returns the item for id, or nil when it is not in the index.
func (c *Crate) Item(id Id) *Item {
	if c == nil {
		return nil
	}
	return c.Index[id]
}

// RootName returns the name of the crate root. It fails when the index is
// malformed, which is the only condition that aborts a run.
func (c *Crate) RootName() (string, error) {
	root := c.Item(c.Root)
	if root == nil {
		return "", fmt.Errorf("%w (root id %d)", ErrMissingRoot, c.Root)
	}
	if root.Name == nil || *root.Name == "" {
		return "", fmt.Errorf("%w (root id %d)", ErrUnnamedRoot, c.Root)
	}
	return *root.Name, nil
}

// Path returns the canonical, crate-qualified path of id when rustdoc recorded one.
func (c *Crate) Path(id Id) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	summary, ok := c.Paths[id]
	if !ok || len(summary.Path) == 0 {
		return nil, false
	}
	return summary.Path, true
}

// Kind returns the kind of id, looking at the index first and `paths` second.
func (c *Crate) Kind(id Id) ItemKind {
	if item := c.Item(id); item != nil {
		return item.Kind()
	}
	if summary, ok := c.Paths[id]; ok {
		return summary.Kind
	}
	return ""
}

// IsModule reports whether id is a local module.
func (c *Crate) IsModule(id Id) bool {
	item := c.Item(id)
	return item != nil && item.Inner.Module != nil
}

// DisplayName renders id as a path when one is known, falling back to the item name.
func (c *Crate) DisplayName(id Id) string {
	if path, ok := c.Path(id); ok {
		return strings.Join(path, PathSeparator)
	}
	if name := c.Item(id).ItemName(); name != "" {
		return name
	}
	return "#" + id.String()
}

// SortedIDs returns every local id in ascending order.
func (c *Crate) SortedIDs() []Id {
	ids := make([]Id, 0, len(c.Index))
	for id := range c.Index {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
