package rustdoc

import (
	"encoding/json"
	"fmt"
)

// ItemInner is the kind-specific payload of an item. Kind selects which
// pointer is set; extern_type carries no payload.
type ItemInner struct {
	Kind ItemKind

	Module      *Module
	ExternCrate *ExternCrate
	Use         *Use
	Union       *Union
	Struct      *Struct
	StructField *Type
	Enum        *Enum
	Variant     *Variant
	Function    *Function
	Trait       *Trait
	TraitAlias  *TraitAlias
	Impl        *Impl
	TypeAlias   *TypeAlias
	Constant    *ConstantItem
	Static      *Static
	Macro       string
	ProcMacro   *ProcMacro
	Primitive   *Primitive
	AssocConst  *AssocConst
	AssocType   *AssocType
}

type Module struct {
	IsCrate    bool `json:"is_crate"`
	Items      []Id `json:"items"`
	IsStripped bool `json:"is_stripped"`
}

type ExternCrate struct {
	Name   string  `json:"name"`
	Rename *string `json:"rename,omitempty"`
}

// Use is a re-export. ID is nil for targets with no item identity, such as
// primitives.
type Use struct {
	Source string `json:"source"`
	Name   string `json:"name"`
	ID     *Id    `json:"id"`
	IsGlob bool   `json:"is_glob"`
}

type Union struct {
	Generics          Generics `json:"generics"`
	HasStrippedFields bool     `json:"has_stripped_fields"`
	Fields            []Id     `json:"fields"`
	Impls             []Id     `json:"impls"`
}

type StructKindTag string

const (
	StructUnit  StructKindTag = "unit"
	StructTuple StructKindTag = "tuple"
	StructPlain StructKindTag = "plain"
)

type Struct struct {
	Kind     StructKind `json:"kind"`
	Generics Generics   `json:"generics"`
	Impls    []Id       `json:"impls"`
}

// StructKind holds the field layout. Tuple fields may be stripped (nil).
type StructKind struct {
	Kind              StructKindTag
	TupleFields       []*Id
	Fields            []Id
	HasStrippedFields bool
}

func (k *StructKind) UnmarshalJSON(data []byte) error {
	tag, payload, err := decodeTagged(data)
	if err != nil {
		return fmt.Errorf("struct kind: %w", err)
	}
	*k = StructKind{Kind: StructKindTag(tag)}
	switch k.Kind {
	case StructUnit:
		return nil
	case StructTuple:
		return decodePayload(tag, payload, &k.TupleFields)
	case StructPlain:
		var wire struct {
			Fields            []Id `json:"fields"`
			HasStrippedFields bool `json:"has_stripped_fields"`
		}
		if err := decodePayload(tag, payload, &wire); err != nil {
			return err
		}
		k.Fields, k.HasStrippedFields = wire.Fields, wire.HasStrippedFields
		return nil
	default:
		return fmt.Errorf("struct kind: unknown variant %q", tag)
	}
}

type Enum struct {
	Generics            Generics `json:"generics"`
	HasStrippedVariants bool     `json:"has_stripped_variants"`
	Variants            []Id     `json:"variants"`
	Impls               []Id     `json:"impls"`
}

type VariantKindTag string

const (
	VariantPlain  VariantKindTag = "plain"
	VariantTuple  VariantKindTag = "tuple"
	VariantStruct VariantKindTag = "struct"
)

type Variant struct {
	Kind         VariantKind   `json:"kind"`
	Discriminant *Discriminant `json:"discriminant,omitempty"`
}

type Discriminant struct {
	Expr  string `json:"expr"`
	Value string `json:"value"`
}

type VariantKind struct {
	Kind              VariantKindTag
	TupleFields       []*Id
	Fields            []Id
	HasStrippedFields bool
}

func (k *VariantKind) UnmarshalJSON(data []byte) error {
	tag, payload, err := decodeTagged(data)
	if err != nil {
		return fmt.Errorf("variant kind: %w", err)
	}
	*k = VariantKind{Kind: VariantKindTag(tag)}
	switch k.Kind {
	case VariantPlain:
		return nil
	case VariantTuple:
		return decodePayload(tag, payload, &k.TupleFields)
	case VariantStruct:
		var wire struct {
			Fields            []Id `json:"fields"`
			HasStrippedFields bool `json:"has_stripped_fields"`
		}
		if err := decodePayload(tag, payload, &wire); err != nil {
			return err
		}
		k.Fields, k.HasStrippedFields = wire.Fields, wire.HasStrippedFields
		return nil
	default:
		return fmt.Errorf("variant kind: unknown variant %q", tag)
	}
}

type Function struct {
	Sig      FunctionSignature `json:"sig"`
	Generics Generics          `json:"generics"`
	HasBody  bool              `json:"has_body"`
}

type FunctionSignature struct {
	Inputs      []Param `json:"inputs"`
	Output      *Type   `json:"output"`
	IsCVariadic bool    `json:"is_c_variadic"`
}

// Param is one `(name, type)` pair; rustdoc encodes it as a two element array.
type Param struct {
	Name string
	Type Type
}

func (p *Param) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("param: expected [name, type], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &p.Name); err != nil {
		return fmt.Errorf("param name: %w", err)
	}
	if err := json.Unmarshal(pair[1], &p.Type); err != nil {
		return fmt.Errorf("param %s: %w", p.Name, err)
	}
	return nil
}

type Trait struct {
	IsAuto          bool           `json:"is_auto"`
	IsUnsafe        bool           `json:"is_unsafe"`
	Items           []Id           `json:"items"`
	Generics        Generics       `json:"generics"`
	Bounds          []GenericBound `json:"bounds"`
	Implementations []Id           `json:"implementations"`
}

type TraitAlias struct {
	Generics Generics       `json:"generics"`
	Params   []GenericBound `json:"params"`
}

type Impl struct {
	IsUnsafe             bool     `json:"is_unsafe"`
	Generics             Generics `json:"generics"`
	ProvidedTraitMethods []string `json:"provided_trait_methods"`
	Trait                *Path    `json:"trait"`
	For                  Type     `json:"for"`
	Items                []Id     `json:"items"`
	IsNegative           bool     `json:"is_negative"`
	IsSynthetic          bool     `json:"is_synthetic"`
	BlanketImpl          *Type    `json:"blanket_impl"`
}

type TypeAlias struct {
	Type     Type     `json:"type"`
	Generics Generics `json:"generics"`
}

type ConstantItem struct {
	Type  Type     `json:"type"`
	Const Constant `json:"const"`
}

type Static struct {
	Type      Type   `json:"type"`
	IsMutable bool   `json:"is_mutable"`
	Expr      string `json:"expr"`
}

type ProcMacro struct {
	Kind    string   `json:"kind"`
	Helpers []string `json:"helpers"`
}

type Primitive struct {
	Name  string `json:"name"`
	Impls []Id   `json:"impls"`
}

type AssocConst struct {
	Type  Type    `json:"type"`
	Value *string `json:"value"`
}

type AssocType struct {
	Generics Generics       `json:"generics"`
	Bounds   []GenericBound `json:"bounds"`
	Type     *Type          `json:"type"`
}

func (in *ItemInner) UnmarshalJSON(data []byte) error {
	tag, payload, err := decodeTagged(data)
	if err != nil {
		return fmt.Errorf("item inner: %w", err)
	}
	*in = ItemInner{Kind: ItemKind(tag)}

	var dst any
	switch in.Kind {
	case KindExternType:
		return nil
	case KindModule:
		in.Module = &Module{}
		dst = in.Module
	case KindExternCrate:
		in.ExternCrate = &ExternCrate{}
		dst = in.ExternCrate
	case KindUse:
		in.Use = &Use{}
		dst = in.Use
	case KindUnion:
		in.Union = &Union{}
		dst = in.Union
	case KindStruct:
		in.Struct = &Struct{}
		dst = in.Struct
	case KindStructField:
		in.StructField = &Type{}
		dst = in.StructField
	case KindEnum:
		in.Enum = &Enum{}
		dst = in.Enum
	case KindVariant:
		in.Variant = &Variant{}
		dst = in.Variant
	case KindFunction:
		in.Function = &Function{}
		dst = in.Function
	case KindTrait:
		in.Trait = &Trait{}
		dst = in.Trait
	case KindTraitAlias:
		in.TraitAlias = &TraitAlias{}
		dst = in.TraitAlias
	case KindImpl:
		in.Impl = &Impl{}
		dst = in.Impl
	case KindTypeAlias:
		in.TypeAlias = &TypeAlias{}
		dst = in.TypeAlias
	case KindConstant:
		in.Constant = &ConstantItem{}
		dst = in.Constant
	case KindStatic:
		in.Static = &Static{}
		dst = in.Static
	case KindMacro:
		dst = &in.Macro
	case KindProcMacro:
		in.ProcMacro = &ProcMacro{}
		dst = in.ProcMacro
	case KindPrimitive:
		in.Primitive = &Primitive{}
		dst = in.Primitive
	case KindAssocConst:
		in.AssocConst = &AssocConst{}
		dst = in.AssocConst
	case KindAssocType:
		in.AssocType = &AssocType{}
		dst = in.AssocType
	default:
		return fmt.Errorf("item inner: unknown variant %q", tag)
	}
	return decodePayload(tag, payload, dst)
}
