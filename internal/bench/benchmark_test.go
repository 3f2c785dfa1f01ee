package bench

import (
	"context"
	"fmt"
	"testing"

	"github.com/morozRed/cratemap/internal/graph"
	"github.com/morozRed/cratemap/internal/modules"
	"github.com/morozRed/cratemap/internal/rustdoc"
	"github.com/morozRed/cratemap/internal/selection"
)

// syntheticCrate builds mods modules of perMod structs. Each struct has one
// field typed as the next struct in the crate, and every module glob
// re-exports the next module, so the globs form a ring.
func syntheticCrate(tb testing.TB, mods, perMod int) *rustdoc.Crate {
	tb.Helper()

	b := rustdoc.NewBuilder(0, "synth")
	next := rustdoc.Id(1)
	alloc := func() rustdoc.Id {
		id := next
		next++
		return id
	}

	moduleIDs := make([]rustdoc.Id, mods)
	for m := range moduleIDs {
		moduleIDs[m] = alloc()
	}
	total := mods * perMod
	structIDs := make([]rustdoc.Id, total)
	fieldIDs := make([]rustdoc.Id, total)
	for i := 0; i < total; i++ {
		structIDs[i] = alloc()
		fieldIDs[i] = alloc()
	}

	for m, moduleID := range moduleIDs {
		modName := fmt.Sprintf("m%d", m)
		members := make([]rustdoc.Id, 0, perMod+1)
		for j := 0; j < perMod; j++ {
			i := m*perMod + j
			target := structIDs[(i+1)%total]
			name := fmt.Sprintf("S%d", i)
			b.Add(structIDs[i], name, rustdoc.StructOf([]rustdoc.Id{fieldIDs[i]}, nil), "synth", modName, name)
			b.Add(fieldIDs[i], "next", rustdoc.FieldOf(rustdoc.ResolvedPathType(target, "S", nil)))
			members = append(members, structIDs[i])
		}
		glob := alloc()
		b.Add(glob, "", rustdoc.UseOf(rustdoc.IdPtr(moduleIDs[(m+1)%mods]), "next", true))
		members = append(members, glob)
		b.Add(moduleID, modName, rustdoc.ModuleOf(members...), "synth", modName)
	}
	b.Contain(0, moduleIDs...)
	return b.Crate()
}

func TestSyntheticCrateShape(t *testing.T) {
	crate := syntheticCrate(t, 4, 3)
	g := graph.Build(crate)
	if g.Dropped() != 0 {
		t.Fatalf("expected no dropped references, got %d", g.Dropped())
	}

	mods := modules.BuildIndex(crate, nil)
	if len(mods) != 5 {
		t.Fatalf("expected root plus 4 modules, got %d", len(mods))
	}

	result, err := selection.Select(crate, []string{"::m0::S0"}, mods, selection.WithGraph(g))
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	// S0's field chain visits every struct and field.
	if got := len(result.Selected); got != 24 {
		t.Fatalf("expected 24 selected items, got %d", got)
	}
}

func BenchmarkBuild(b *testing.B) {
	crate := syntheticCrate(b, 50, 200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if g := graph.Build(crate); g.Len() == 0 {
			b.Fatalf("expected edges")
		}
	}
}

func BenchmarkBuildParallel(b *testing.B) {
	crate := syntheticCrate(b, 50, 200)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g, err := graph.BuildParallel(ctx, crate, 8)
		if err != nil {
			b.Fatalf("build failed: %v", err)
		}
		if g.Len() == 0 {
			b.Fatalf("expected edges")
		}
	}
}

func BenchmarkBuildModuleIndex(b *testing.B) {
	crate := syntheticCrate(b, 200, 50)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if mods := modules.BuildIndex(crate, nil); len(mods) == 0 {
			b.Fatalf("expected modules")
		}
	}
}

func BenchmarkSelect(b *testing.B) {
	crate := syntheticCrate(b, 50, 200)
	g := graph.Build(crate)
	mods := modules.BuildIndex(crate, nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result, err := selection.Select(crate, []string{"::m3"}, mods, selection.WithGraph(g))
		if err != nil {
			b.Fatalf("select failed: %v", err)
		}
		if len(result.Selected) == 0 {
			b.Fatalf("expected a selection")
		}
	}
}
