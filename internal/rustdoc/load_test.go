package rustdoc

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadShapes(t *testing.T) *Crate {
	t.Helper()
	crate, err := Load(filepath.Join("..", "..", "fixtures", "rustdoc", "shapes.json"))
	require.NoError(t, err)
	return crate
}

func TestLoadDecodesItemKinds(t *testing.T) {
	crate := loadShapes(t)

	name, err := crate.RootName()
	require.NoError(t, err)
	assert.Equal(t, "shapes", name)
	assert.Equal(t, 43, crate.FormatVersion)
	assert.Len(t, crate.Index, 15)

	cases := map[Id]ItemKind{
		0:  KindModule,
		1:  KindStruct,
		2:  KindStructField,
		6:  KindEnum,
		7:  KindImpl,
		8:  KindTrait,
		9:  KindFunction,
		10: KindUse,
		11: KindVariant,
		15: KindExternType,
	}
	for id, want := range cases {
		assert.Equal(t, want, crate.Kind(id), "item %d", id)
	}
	assert.Equal(t, KindStruct, crate.Kind(100), "external kinds come from paths")
}

func TestLoadDecodesNestedTypes(t *testing.T) {
	crate := loadShapes(t)

	field := crate.Item(2).Inner.StructField
	require.NotNil(t, field)
	require.Equal(t, TypeResolvedPath, field.Kind)
	assert.Equal(t, Id(100), field.ResolvedPath.ID)
	require.NotNil(t, field.ResolvedPath.Args)
	require.Equal(t, GenericArgsAngleBracketed, field.ResolvedPath.Args.Kind)
	arg := field.ResolvedPath.Args.AngleBracketed.Args[0]
	require.Equal(t, GenericArgType, arg.Kind)
	assert.Equal(t, Id(3), arg.Type.ResolvedPath.ID)

	fn := crate.Item(9).Inner.Function
	require.NotNil(t, fn)
	require.Len(t, fn.Sig.Inputs, 1)
	assert.Equal(t, "self", fn.Sig.Inputs[0].Name)
	assert.Equal(t, TypeBorrowedRef, fn.Sig.Inputs[0].Type.Kind)
	require.NotNil(t, fn.Sig.Output)
	assert.Equal(t, "bool", fn.Sig.Output.Primitive)

	impl := crate.Item(7).Inner.Impl
	require.NotNil(t, impl.Trait)
	assert.Equal(t, Id(8), impl.Trait.ID)
	assert.Equal(t, Id(1), impl.For.ResolvedPath.ID)

	unit := crate.Item(3).Inner.Struct
	assert.Equal(t, StructUnit, unit.Kind.Kind)

	variant := crate.Item(11).Inner.Variant
	require.Equal(t, VariantTuple, variant.Kind.Kind)
	assert.Equal(t, []*Id{nil}, variant.Kind.TupleFields)

	use := crate.Item(14).Inner.Use
	assert.Nil(t, use.ID)
	assert.True(t, crate.Item(10).Inner.Use.IsGlob)
}

func TestRootNameErrors(t *testing.T) {
	crate := NewBuilder(0, "demo").Crate()
	crate.Root = 42
	_, err := crate.RootName()
	assert.True(t, errors.Is(err, ErrMissingRoot))

	crate = NewBuilder(0, "demo").Unname(0).Crate()
	_, err = crate.RootName()
	assert.True(t, errors.Is(err, ErrUnnamedRoot))
}

func TestDecodeRejectsUnknownVariant(t *testing.T) {
	doc := `{"root": 0, "index": {"0": {"id": 0, "name": "x", "inner": {"spaceship": {}}}}, "paths": {}}`
	_, err := Decode(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spaceship")
}

func TestDecodeAcceptsLegacyPathName(t *testing.T) {
	var p Path
	require.NoError(t, p.UnmarshalJSON([]byte(`{"name": "Iterator", "id": 7, "args": null}`)))
	assert.Equal(t, "Iterator", p.Path)
	assert.Equal(t, Id(7), p.ID)
}

func TestDisplayNameFallsBack(t *testing.T) {
	crate := NewBuilder(0, "demo").
		Add(1, "Foo", StructOf(nil, nil), "demo", "Foo").
		Add(2, "bar", FieldOf(PrimitiveType("u8"))).
		Add(3, "", ImplOf(nil, GenericType("T"))).
		Crate()

	assert.Equal(t, "demo::Foo", crate.DisplayName(1))
	assert.Equal(t, "bar", crate.DisplayName(2))
	assert.Equal(t, "#3", crate.DisplayName(3))
	assert.Equal(t, []Id{0, 1, 2, 3}, crate.SortedIDs())
}

func TestIdSet(t *testing.T) {
	s := NewIdSet(3, 1)
	assert.True(t, s.Add(2))
	assert.False(t, s.Add(3))
	s.Union(NewIdSet(9, 1))
	assert.Equal(t, []Id{1, 2, 3, 9}, s.Sorted())
	assert.True(t, s.Has(9))
	assert.False(t, s.Has(4))
}
