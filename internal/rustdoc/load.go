package rustdoc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Load reads a rustdoc JSON file from disk.
func Load(path string) (*Crate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open item index %s: %w", path, err)
	}
	defer f.Close()

	crate, err := Decode(bufio.NewReaderSize(f, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to decode item index %s: %w", path, err)
	}
	return crate, nil
}

// Decode reads one rustdoc JSON document. Items whose `id` field disagrees
// with their key are keyed by the map key.
func Decode(r io.Reader) (*Crate, error) {
	var crate Crate
	if err := json.NewDecoder(r).Decode(&crate); err != nil {
		return nil, err
	}
	if crate.Index == nil {
		crate.Index = make(map[Id]*Item)
	}
	if crate.Paths == nil {
		crate.Paths = make(map[Id]ItemSummary)
	}
	for id, item := range crate.Index {
		if item == nil {
			delete(crate.Index, id)
			continue
		}
		item.ID = id
	}
	return &crate, nil
}
