package fileutil

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestWriteIfChangedTracked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "selection.json")

	written, err := WriteIfChangedTracked(path, []byte("a\n"))
	if err != nil || !written {
		t.Fatalf("expected first write, got written=%v err=%v", written, err)
	}
	written, err = WriteIfChangedTracked(path, []byte("a\n"))
	if err != nil || written {
		t.Fatalf("expected identical write to be skipped, got written=%v err=%v", written, err)
	}
	written, err = WriteIfChangedTracked(path, []byte("b\n"))
	if err != nil || !written {
		t.Fatalf("expected changed write, got written=%v err=%v", written, err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "b\n" {
		t.Fatalf("unexpected contents %q", data)
	}
}

func TestEncodeJSONL(t *testing.T) {
	type edge struct {
		From int    `json:"from"`
		To   int    `json:"to"`
		Kind string `json:"kind"`
	}
	data, err := EncodeJSONL([]edge{{1, 2, "a<b"}, {2, 3, "c"}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "{\"from\":1,\"to\":2,\"kind\":\"a<b\"}\n{\"from\":2,\"to\":3,\"kind\":\"c\"}\n"
	if string(data) != want {
		t.Fatalf("unexpected jsonl:\n%s", data)
	}
}

func TestWriteJSONLCountsLines(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteJSONL(&buf, []int{1, 2, 3})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if n != 3 || buf.String() != "1\n2\n3\n" {
		t.Fatalf("unexpected output n=%d %q", n, buf.String())
	}

	n, err = WriteJSONL(&buf, []any{1, func() {}})
	if err == nil || n != 1 {
		t.Fatalf("expected failure after one line, got n=%d err=%v", n, err)
	}
}

func TestFprintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := FprintJSON(&buf, map[string]int{"n": 1}); err != nil {
		t.Fatalf("print: %v", err)
	}
	if buf.String() != "{\n  \"n\": 1\n}\n" {
		t.Fatalf("unexpected json %q", buf.String())
	}
}

func TestDedupeStrings(t *testing.T) {
	got := DedupeStrings([]string{"::a", " ", "b", "::a", " b "})
	if !reflect.DeepEqual(got, []string{"::a", "b"}) {
		t.Fatalf("unexpected dedupe %v", got)
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	first, err := HashFile(path)
	if err != nil || len(first) != 16 {
		t.Fatalf("unexpected hash %q (%v)", first, err)
	}
	second, _ := HashFile(path)
	if first != second {
		t.Fatalf("hash not stable: %s vs %s", first, second)
	}
}
