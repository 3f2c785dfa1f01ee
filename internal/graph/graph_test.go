package graph

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/morozRed/cratemap/internal/rustdoc"
)

// exampleCrate is module 0 containing Foo (1) and Bar (3); Foo has a field (2) of type Bar.
func exampleCrate() *rustdoc.Crate {
	return rustdoc.NewBuilder(0, "root").
		Add(1, "Foo", rustdoc.StructOf([]rustdoc.Id{2}, nil), "root", "Foo").
		Add(2, "bar", rustdoc.FieldOf(rustdoc.ResolvedPathType(3, "Bar", nil))).
		Add(3, "Bar", rustdoc.StructOf(nil, nil), "root", "Bar").
		Contain(0, 1, 3).
		Crate()
}

func TestBuildExampleScenario(t *testing.T) {
	g := Build(exampleCrate())

	want := []Edge{
		{Source: 0, Target: 1, Label: LabelContains},
		{Source: 0, Target: 3, Label: LabelContains},
		{Source: 1, Target: 2, Label: LabelStructField},
		{Source: 2, Target: 3, Label: LabelFieldType},
	}
	if got := g.Edges(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected edges %v, got %v", want, got)
	}

	roots := g.FindRoots().Sorted()
	if !reflect.DeepEqual(roots, []rustdoc.Id{0}) {
		t.Fatalf("expected roots [0], got %v", roots)
	}
}

func TestAddEdgeSetSemantics(t *testing.T) {
	g := New(exampleCrate())
	if !g.AddEdge(1, 3, LabelFieldType) {
		t.Fatalf("expected first insert to succeed")
	}
	if g.AddEdge(1, 3, LabelFieldType) {
		t.Fatalf("expected duplicate insert to be a no-op")
	}
	if !g.AddEdge(1, 3, LabelGenericArgument) {
		t.Fatalf("expected a different label to be a distinct edge")
	}
	if g.Len() != 2 {
		t.Fatalf("expected 2 edges, got %d", g.Len())
	}
	if len(g.Children(1)) != 2 || len(g.Parents(3)) != 2 {
		t.Fatalf("adjacency out of sync with edge set: children=%v parents=%v", g.Children(1), g.Parents(3))
	}
}

func TestAddEdgeDropsReferencesOutsideIndex(t *testing.T) {
	g := New(exampleCrate())
	if g.AddEdge(1, 999, LabelFieldType) {
		t.Fatalf("expected edge to unknown target to be dropped")
	}
	if g.AddEdge(999, 1, LabelFieldType) {
		t.Fatalf("expected edge from unknown source to be dropped")
	}
	if g.Len() != 0 || g.HasNode(999) {
		t.Fatalf("expected no dangling state, got %d edges", g.Len())
	}
	if g.Dropped() != 2 {
		t.Fatalf("expected 2 dropped references, got %d", g.Dropped())
	}
}

func TestBuildNeverCreatesDanglingEdges(t *testing.T) {
	crate := rustdoc.NewBuilder(0, "demo").
		Add(1, "Wrapper", rustdoc.StructOf([]rustdoc.Id{2}, nil), "demo", "Wrapper").
		Add(2, "inner", rustdoc.FieldOf(rustdoc.ResolvedPathType(500, "Vec",
			rustdoc.AngleArgs(rustdoc.ResolvedPathType(501, "String", nil))))).
		Contain(0, 1).
		Crate()

	g := Build(crate)
	for _, edge := range g.Edges() {
		if !crate.Has(edge.Source) || !crate.Has(edge.Target) {
			t.Fatalf("dangling edge %+v", edge)
		}
	}
	if g.Dropped() != 2 {
		t.Fatalf("expected both external references to be dropped, got %d", g.Dropped())
	}
}

func TestFilterToLeaf(t *testing.T) {
	// 0 -> 1 -> 2 -> 3, 0 -> 4, 5 -> 3
	crate := rustdoc.NewBuilder(0, "demo").
		Add(1, "a", rustdoc.MacroOf("")).
		Add(2, "b", rustdoc.MacroOf("")).
		Add(3, "c", rustdoc.MacroOf("")).
		Add(4, "d", rustdoc.MacroOf("")).
		Add(5, "e", rustdoc.MacroOf("")).
		Add(6, "lonely", rustdoc.MacroOf("")).
		Crate()
	g := New(crate)
	g.AddEdge(0, 1, LabelContains)
	g.AddEdge(1, 2, LabelFieldType)
	g.AddEdge(2, 3, LabelFieldType)
	g.AddEdge(0, 4, LabelContains)
	g.AddEdge(5, 3, LabelGenericArgument)

	filtered := g.FilterToLeaf(3)
	want := []Edge{
		{Source: 0, Target: 1, Label: LabelContains},
		{Source: 1, Target: 2, Label: LabelFieldType},
		{Source: 2, Target: 3, Label: LabelFieldType},
		{Source: 5, Target: 3, Label: LabelGenericArgument},
	}
	if got := filtered.Edges(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for _, edge := range filtered.Edges() {
		if edge.Target != 3 && len(g.ShortestPath(edge.Source, 3)) == 0 {
			t.Fatalf("edge %+v has no path to leaf", edge)
		}
	}

	if empty := g.FilterToLeaf(6); empty.Len() != 0 || empty.HasNode(6) {
		t.Fatalf("expected empty graph for isolated target")
	}
	if empty := g.FilterToLeaf(42); empty.Len() != 0 {
		t.Fatalf("expected empty graph for unknown target")
	}

	sourceOnly := g.FilterToLeaf(0)
	if sourceOnly.Len() != 0 || !sourceOnly.HasNode(0) {
		t.Fatalf("expected source-only target to be kept as a bare node")
	}
}

func TestFindRootsMatchesInDegreeZero(t *testing.T) {
	g := Build(exampleCrate())
	g.AddEdge(3, 1, LabelGenericArgument)

	roots := g.FindRoots()
	for _, id := range g.Nodes() {
		isRoot := len(g.Parents(id)) == 0
		if roots.Has(id) != isRoot {
			t.Fatalf("node %d: root=%v but in-degree zero=%v", id, roots.Has(id), isRoot)
		}
	}
}

func TestBuildParallelMatchesBuild(t *testing.T) {
	b := rustdoc.NewBuilder(0, "wide")
	members := make([]rustdoc.Id, 0, 64)
	for i := 1; i <= 64; i++ {
		id := rustdoc.Id(i * 2)
		field := id + 1
		b.Add(id, "S", rustdoc.StructOf([]rustdoc.Id{field}, nil), "wide", "S")
		b.Add(field, "f", rustdoc.FieldOf(rustdoc.ResolvedPathType(rustdoc.Id(2+(i%64)*2), "S", nil)))
		members = append(members, id)
	}
	crate := b.Contain(0, members...).Crate()

	serial := Build(crate)
	parallel, err := BuildParallel(context.Background(), crate, 4)
	if err != nil {
		t.Fatalf("BuildParallel failed: %v", err)
	}
	if !reflect.DeepEqual(serial.Edges(), parallel.Edges()) {
		t.Fatalf("parallel build differs from serial build")
	}
	for _, id := range crate.SortedIDs() {
		if !reflect.DeepEqual(serial.Children(id), parallel.Children(id)) {
			t.Fatalf("children of %d differ: %v vs %v", id, serial.Children(id), parallel.Children(id))
		}
	}
}

func TestBuildParallelHonoursCancellation(t *testing.T) {
	b := rustdoc.NewBuilder(0, "wide")
	for i := 1; i <= 32; i++ {
		b.Add(rustdoc.Id(i), "m", rustdoc.MacroOf(""))
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := BuildParallel(ctx, b.Crate(), 4); err == nil {
		t.Fatalf("expected cancelled build to fail")
	}
}

func TestShortestPathAndRanking(t *testing.T) {
	g := Build(exampleCrate())
	path := g.ShortestPath(0, 3)
	if !reflect.DeepEqual(path, []rustdoc.Id{0, 3}) {
		t.Fatalf("expected direct path, got %v", path)
	}
	if got := g.ShortestPath(3, 0); got != nil {
		t.Fatalf("expected no backward path, got %v", got)
	}

	top := g.TopRanked(1, 20, 0.85)
	if len(top) != 1 || top[0].ID != 3 {
		t.Fatalf("expected Bar to be the most depended-upon node, got %v", top)
	}
}

func TestLabelNames(t *testing.T) {
	for _, label := range Labels() {
		name := label.String()
		if name == "" || name == "unknown" {
			t.Fatalf("label %d has no name", label)
		}
		parsed, ok := ParseLabel(name)
		if !ok || parsed != label {
			t.Fatalf("label %q did not round-trip", name)
		}
	}
	if Label(200).String() != "unknown" {
		t.Fatalf("expected out-of-range label to be unknown")
	}
}

func TestEdgeJSONUsesLabelNames(t *testing.T) {
	data, err := json.Marshal(Edge{Source: 1, Target: 2, Label: LabelImplFor})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"source":1,"target":2,"label":"impl_for"}` {
		t.Fatalf("unexpected edge json %s", data)
	}
	var edge Edge
	if err := json.Unmarshal(data, &edge); err != nil || edge.Label != LabelImplFor {
		t.Fatalf("expected label to decode, got %+v (%v)", edge, err)
	}
	if err := json.Unmarshal([]byte(`{"source":1,"target":2,"label":"calls"}`), &edge); err == nil {
		t.Fatalf("expected unknown label to fail")
	}
}
