package rustdoc

// Builder assembles a Crate in memory. It is used by tests and by callers
// that synthesize small indices without going through rustdoc.
type Builder struct {
	crate *Crate
}

// NewBuilder starts a crate whose root module has the given id and name.
func NewBuilder(root Id, crateName string) *Builder {
	b := &Builder{crate: &Crate{
		Root:  root,
		Index: make(map[Id]*Item),
		Paths: make(map[Id]ItemSummary),
	}}
	b.Add(root, crateName, ModuleOf(), crateName)
	b.crate.Index[root].Inner.Module.IsCrate = true
	return b
}

// Add inserts an item. A non-empty path is recorded as its canonical path.
func (b *Builder) Add(id Id, name string, inner ItemInner, path ...string) *Builder {
	item := &Item{ID: id, Inner: inner}
	if name != "" {
		n := name
		item.Name = &n
	}
	b.crate.Index[id] = item
	if len(path) > 0 {
		b.crate.Paths[id] = ItemSummary{Path: append([]string(nil), path...), Kind: inner.Kind}
	}
	return b
}

// External records an item that rustdoc can name but that lives in another crate.
func (b *Builder) External(id Id, crateID uint32, kind ItemKind, path ...string) *Builder {
	b.crate.Paths[id] = ItemSummary{CrateID: crateID, Path: append([]string(nil), path...), Kind: kind}
	return b
}

// Contain appends members to an existing module.
func (b *Builder) Contain(module Id, members ...Id) *Builder {
	item := b.crate.Index[module]
	if item == nil || item.Inner.Module == nil {
		return b
	}
	item.Inner.Module.Items = append(item.Inner.Module.Items, members...)
	return b
}

// Unname clears an item's name.
func (b *Builder) Unname(id Id) *Builder {
	if item := b.crate.Index[id]; item != nil {
		item.Name = nil
	}
	return b
}

func (b *Builder) Crate() *Crate {
	return b.crate
}

func ModuleOf(items ...Id) ItemInner {
	return ItemInner{Kind: KindModule, Module: &Module{Items: items}}
}

func UseOf(target *Id, name string, glob bool) ItemInner {
	return ItemInner{Kind: KindUse, Use: &Use{Source: name, Name: name, ID: target, IsGlob: glob}}
}

func StructOf(fields, impls []Id) ItemInner {
	return ItemInner{Kind: KindStruct, Struct: &Struct{
		Kind:  StructKind{Kind: StructPlain, Fields: fields},
		Impls: impls,
	}}
}

func FieldOf(t Type) ItemInner {
	return ItemInner{Kind: KindStructField, StructField: &t}
}

func EnumOf(variants, impls []Id) ItemInner {
	return ItemInner{Kind: KindEnum, Enum: &Enum{Variants: variants, Impls: impls}}
}

func VariantOf(fields ...*Id) ItemInner {
	kind := VariantKind{Kind: VariantPlain}
	if len(fields) > 0 {
		kind = VariantKind{Kind: VariantTuple, TupleFields: fields}
	}
	return ItemInner{Kind: KindVariant, Variant: &Variant{Kind: kind}}
}

func TraitOf(items []Id, bounds []GenericBound, impls []Id) ItemInner {
	return ItemInner{Kind: KindTrait, Trait: &Trait{Items: items, Bounds: bounds, Implementations: impls}}
}

func ImplOf(trait *Path, forType Type, items ...Id) ItemInner {
	return ItemInner{Kind: KindImpl, Impl: &Impl{Trait: trait, For: forType, Items: items}}
}

func FunctionOf(inputs []Param, output *Type, generics Generics) ItemInner {
	return ItemInner{Kind: KindFunction, Function: &Function{
		Sig:      FunctionSignature{Inputs: inputs, Output: output},
		Generics: generics,
	}}
}

func TypeAliasOf(t Type) ItemInner {
	return ItemInner{Kind: KindTypeAlias, TypeAlias: &TypeAlias{Type: t}}
}

func AssocTypeOf(bounds []GenericBound, def *Type) ItemInner {
	return ItemInner{Kind: KindAssocType, AssocType: &AssocType{Bounds: bounds, Type: def}}
}

func MacroOf(source string) ItemInner {
	return ItemInner{Kind: KindMacro, Macro: source}
}

func PrimitiveOf(name string, impls ...Id) ItemInner {
	return ItemInner{Kind: KindPrimitive, Primitive: &Primitive{Name: name, Impls: impls}}
}

// IdPtr returns a pointer to a copy of id, for `use` targets and tuple fields.
func IdPtr(id Id) *Id {
	return &id
}
