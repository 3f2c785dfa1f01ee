package rustdoc

// ItemKind is the snake_case kind tag rustdoc uses both for item payloads and
// for `paths` summaries.
type ItemKind string

const (
	KindModule      ItemKind = "module"
	KindExternCrate ItemKind = "extern_crate"
	KindUse         ItemKind = "use"
	KindUnion       ItemKind = "union"
	KindStruct      ItemKind = "struct"
	KindStructField ItemKind = "struct_field"
	KindEnum        ItemKind = "enum"
	KindVariant     ItemKind = "variant"
	KindFunction    ItemKind = "function"
	KindTrait       ItemKind = "trait"
	KindTraitAlias  ItemKind = "trait_alias"
	KindImpl        ItemKind = "impl"
	KindTypeAlias   ItemKind = "type_alias"
	KindConstant    ItemKind = "constant"
	KindStatic      ItemKind = "static"
	KindExternType  ItemKind = "extern_type"
	KindMacro       ItemKind = "macro"
	KindProcMacro   ItemKind = "proc_macro"
	KindPrimitive   ItemKind = "primitive"
	KindAssocConst  ItemKind = "assoc_const"
	KindAssocType   ItemKind = "assoc_type"

	// Only seen in `paths` summaries.
	KindProcAttribute ItemKind = "proc_attribute"
	KindProcDerive    ItemKind = "proc_derive"
	KindKeyword       ItemKind = "keyword"
)

func (k ItemKind) String() string {
	if k == "" {
		return "unknown"
	}
	return string(k)
}
