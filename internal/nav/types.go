package nav

import "github.com/morozRed/cratemap/internal/rustdoc"

type ItemRecord struct {
	ID   rustdoc.Id `json:"id"`
	Name string     `json:"name,omitempty"`
	Kind string     `json:"kind,omitempty"`
	Path string     `json:"path,omitempty"`
}

type EdgeRecord struct {
	Item  ItemRecord `json:"item"`
	Label string     `json:"label"`
}

type TraceHop struct {
	Depth int        `json:"depth"`
	From  ItemRecord `json:"from"`
	To    ItemRecord `json:"to"`
	Label string     `json:"label"`
}

type PathStep struct {
	From  ItemRecord `json:"from"`
	To    ItemRecord `json:"to"`
	Label string     `json:"label"`
}

type ResolveOptions struct {
	Fuzzy bool
	Limit int
}
