package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morozRed/cratemap/internal/rustdoc"
)

func TestResolveDirectAndSingleReexports(t *testing.T) {
	crate := rustdoc.NewBuilder(0, "demo").
		Add(1, "inner", rustdoc.ModuleOf(2), "demo", "inner").
		Add(2, "Widget", rustdoc.StructOf(nil, nil), "demo", "inner", "Widget").
		Add(3, "", rustdoc.UseOf(rustdoc.IdPtr(2), "Gadget", false)).
		Add(4, "", rustdoc.UseOf(nil, "u8", false)).
		Contain(0, 1, 3, 4).
		Crate()

	r := NewResolver(crate, nil)
	assert.Equal(t, []rustdoc.Id{1, 2}, r.Resolve(0).Sorted())
	assert.Equal(t, []rustdoc.Id{2}, r.Resolve(1).Sorted())
}

func TestResolveGlobReexports(t *testing.T) {
	crate := rustdoc.NewBuilder(0, "demo").
		Add(1, "prelude", rustdoc.ModuleOf(2, 3), "demo", "prelude").
		Add(2, "Reader", rustdoc.StructOf(nil, nil), "demo", "prelude", "Reader").
		Add(3, "Mode", rustdoc.EnumOf([]rustdoc.Id{4}, nil), "demo", "prelude", "Mode").
		Add(4, "Fast", rustdoc.VariantOf()).
		Add(5, "", rustdoc.UseOf(rustdoc.IdPtr(1), "prelude", true)).
		Add(6, "", rustdoc.UseOf(rustdoc.IdPtr(3), "Mode", true)).
		Add(7, "", rustdoc.UseOf(rustdoc.IdPtr(900), "std_io", true)).
		External(900, 1, rustdoc.KindModule, "std", "io").
		Contain(0, 5, 6, 7).
		Crate()

	r := NewResolver(crate, nil)
	// glob of a module flattens it; glob of an enum contributes the enum; glob
	// of an external module resolves to nothing.
	assert.Equal(t, []rustdoc.Id{2, 3}, r.Resolve(0).Sorted())
}

func TestResolveIsMemoized(t *testing.T) {
	crate := rustdoc.NewBuilder(0, "demo").
		Add(1, "a", rustdoc.ModuleOf(2), "demo", "a").
		Add(2, "f", rustdoc.FunctionOf(nil, nil, rustdoc.Generics{}), "demo", "a", "f").
		Add(3, "", rustdoc.UseOf(rustdoc.IdPtr(1), "a", true)).
		Contain(0, 1, 3).
		Crate()

	r := NewResolver(crate, nil)
	first := r.Resolve(0)
	visits := r.visits
	second := r.Resolve(0)

	assert.Equal(t, first.Sorted(), second.Sorted())
	assert.Equal(t, visits, r.visits, "second resolve must be a cache hit")
	first.Add(99)
	assert.True(t, second.Has(99), "repeat calls return the same cached set")
}

func TestResolveTerminatesOnGlobCycles(t *testing.T) {
	// a: struct A, pub use b::*;  b: struct B, pub use a::*;
	crate := rustdoc.NewBuilder(0, "demo").
		Add(1, "a", rustdoc.ModuleOf(3, 5), "demo", "a").
		Add(2, "b", rustdoc.ModuleOf(4, 6), "demo", "b").
		Add(3, "A", rustdoc.StructOf(nil, nil), "demo", "a", "A").
		Add(4, "B", rustdoc.StructOf(nil, nil), "demo", "b", "B").
		Add(5, "", rustdoc.UseOf(rustdoc.IdPtr(2), "b", true)).
		Add(6, "", rustdoc.UseOf(rustdoc.IdPtr(1), "a", true)).
		Contain(0, 1, 2).
		Crate()

	r := NewResolver(crate, nil)
	a := r.Resolve(1)
	require.True(t, a.Has(3), "outer call keeps its direct members")
	assert.Equal(t, []rustdoc.Id{3, 4}, a.Sorted())
	assert.Equal(t, 1, r.Cycles())

	// b was resolved while a was in flight; its cached set omits a's members.
	assert.Equal(t, []rustdoc.Id{4}, r.Resolve(2).Sorted())
}

func TestResolveSelfGlob(t *testing.T) {
	crate := rustdoc.NewBuilder(0, "demo").
		Add(1, "X", rustdoc.StructOf(nil, nil), "demo", "X").
		Add(2, "", rustdoc.UseOf(rustdoc.IdPtr(0), "self", true)).
		Contain(0, 1, 2).
		Crate()

	assert.Equal(t, []rustdoc.Id{1}, NewResolver(crate, nil).Resolve(0).Sorted())
}

func TestResolveUnknownModuleIsEmpty(t *testing.T) {
	crate := rustdoc.NewBuilder(0, "demo").
		Add(1, "X", rustdoc.StructOf(nil, nil), "demo", "X").
		Crate()

	r := NewResolver(crate, nil)
	assert.Empty(t, r.Resolve(404))
	assert.Empty(t, r.Resolve(1), "non-module items expose nothing")
}

func TestBuildIndexCoversEveryModule(t *testing.T) {
	crate := rustdoc.NewBuilder(0, "demo").
		Add(1, "a", rustdoc.ModuleOf(2), "demo", "a").
		Add(2, "f", rustdoc.FunctionOf(nil, nil, rustdoc.Generics{}), "demo", "a", "f").
		Add(3, "S", rustdoc.StructOf(nil, nil), "demo", "S").
		Contain(0, 1, 3).
		Crate()

	index := BuildIndex(crate, nil)
	require.Equal(t, []rustdoc.Id{0, 1}, index.SortedIDs())
	assert.Equal(t, rustdoc.Id(1), index[1].ID)
	assert.Equal(t, []rustdoc.Id{1, 3}, index[0].Items.Sorted())
	assert.Equal(t, []rustdoc.Id{2}, index[1].Items.Sorted())
}
