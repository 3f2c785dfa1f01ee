package nav

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/morozRed/cratemap/internal/graph"
	"github.com/morozRed/cratemap/internal/rustdoc"
)

// plainGraph returns a graph over items 0..n-1 with the given edges, all
// labeled field_type.
func plainGraph(n int, edges ...[2]rustdoc.Id) *graph.Graph {
	b := rustdoc.NewBuilder(0, "demo")
	for i := 1; i < n; i++ {
		b.Add(rustdoc.Id(i), "", rustdoc.StructOf(nil, nil))
	}
	g := graph.New(b.Crate())
	for _, e := range edges {
		g.AddEdge(e[0], e[1], graph.LabelFieldType)
	}
	return g
}

type flatNode struct {
	depth  int
	id     rustdoc.Id
	marker Marker
}

func flatten(trees []*TreeNode) []flatNode {
	var out []flatNode
	var walk func(*TreeNode, int)
	walk = func(n *TreeNode, depth int) {
		out = append(out, flatNode{depth: depth, id: n.ID, marker: n.Marker})
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, tree := range trees {
		walk(tree, 0)
	}
	return out
}

func TestBuildTreeDiamondExpandsOnce(t *testing.T) {
	g := plainGraph(5, [2]rustdoc.Id{0, 2}, [2]rustdoc.Id{0, 1}, [2]rustdoc.Id{1, 3}, [2]rustdoc.Id{2, 3}, [2]rustdoc.Id{3, 4})

	got := flatten(BuildTree(g, []rustdoc.Id{0}, 0))
	want := []flatNode{
		{0, 0, ""},
		{1, 1, ""},
		{2, 3, ""},
		{3, 4, ""},
		{1, 2, ""},
		{2, 3, MarkerSeen},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tree:\n got %v\nwant %v", got, want)
	}
}

func TestBuildTreeMarksCycles(t *testing.T) {
	g := plainGraph(3, [2]rustdoc.Id{1, 2}, [2]rustdoc.Id{2, 1})

	got := flatten(BuildTree(g, []rustdoc.Id{1}, 0))
	want := []flatNode{
		{0, 1, ""},
		{1, 2, ""},
		{2, 1, MarkerCycle},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tree:\n got %v\nwant %v", got, want)
	}
}

func TestBuildTreeSelfLoop(t *testing.T) {
	g := plainGraph(2, [2]rustdoc.Id{1, 1})

	got := flatten(BuildTree(g, []rustdoc.Id{1}, 0))
	want := []flatNode{{0, 1, ""}, {1, 1, MarkerCycle}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tree:\n got %v\nwant %v", got, want)
	}
}

func TestBuildTreeDepthLimit(t *testing.T) {
	g := plainGraph(4, [2]rustdoc.Id{1, 2}, [2]rustdoc.Id{2, 3})

	got := flatten(BuildTree(g, []rustdoc.Id{1}, 1))
	want := []flatNode{{0, 1, ""}, {1, 2, MarkerTruncated}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tree at depth 1:\n got %v\nwant %v", got, want)
	}

	// Leaves at the ceiling carry no marker.
	got = flatten(BuildTree(g, []rustdoc.Id{1}, 2))
	want = []flatNode{{0, 1, ""}, {1, 2, ""}, {2, 3, ""}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tree at depth 2:\n got %v\nwant %v", got, want)
	}
}

func TestBuildTreeTruncatedNodeExpandsLater(t *testing.T) {
	g := plainGraph(4, [2]rustdoc.Id{1, 2}, [2]rustdoc.Id{2, 3})

	got := flatten(BuildTree(g, []rustdoc.Id{2, 1}, 1))
	want := []flatNode{
		{0, 1, ""},
		{1, 2, MarkerTruncated},
		{0, 2, ""},
		{1, 3, ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tree:\n got %v\nwant %v", got, want)
	}
}

func TestBuildTreeSkipsUnknownRoots(t *testing.T) {
	g := plainGraph(3, [2]rustdoc.Id{1, 2})

	got := flatten(BuildTree(g, []rustdoc.Id{42, 1, 1}, 0))
	want := []flatNode{{0, 1, ""}, {1, 2, ""}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tree:\n got %v\nwant %v", got, want)
	}
	if trees := BuildTree(g, []rustdoc.Id{42}, 0); len(trees) != 0 {
		t.Fatalf("expected empty dump for unknown root, got %v", trees)
	}
}

func TestDumpWritesIndentedTree(t *testing.T) {
	crate := rustdoc.NewBuilder(0, "root").
		Add(1, "Foo", rustdoc.StructOf([]rustdoc.Id{2}, nil), "root", "Foo").
		Add(2, "bar", rustdoc.FieldOf(rustdoc.ResolvedPathType(3, "Bar", nil))).
		Add(3, "Bar", rustdoc.StructOf(nil, nil), "root", "Bar").
		Contain(0, 1, 3).
		Crate()
	g := graph.Build(crate)

	var buf bytes.Buffer
	if err := Dump(&buf, g, g.FindRoots().Sorted(), 0, crate.DisplayName); err != nil {
		t.Fatalf("dump: %v", err)
	}
	want := "root (#0)\n" +
		"  contains -> root::Foo (#1)\n" +
		"    struct_field -> bar (#2)\n" +
		"      field_type -> root::Bar (#3)\n" +
		"  contains -> root::Bar (#3)\n"
	if buf.String() != want {
		t.Fatalf("unexpected dump:\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := Dump(&buf, g, []rustdoc.Id{1}, 1, nil); err != nil {
		t.Fatalf("dump: %v", err)
	}
	want = "#1\n  struct_field -> #2 [truncated]\n"
	if buf.String() != want {
		t.Fatalf("unexpected dump:\n%s\nwant:\n%s", buf.String(), want)
	}
}
