package rustdoc

import (
	"encoding/json"
	"fmt"
)

// TypeKind tags the shape of a type expression.
type TypeKind string

const (
	TypeResolvedPath    TypeKind = "resolved_path"
	TypeDynTrait        TypeKind = "dyn_trait"
	TypeGeneric         TypeKind = "generic"
	TypePrimitive       TypeKind = "primitive"
	TypeFunctionPointer TypeKind = "function_pointer"
	TypeTuple           TypeKind = "tuple"
	TypeSlice           TypeKind = "slice"
	TypeArray           TypeKind = "array"
	TypePat             TypeKind = "pat"
	TypeImplTrait       TypeKind = "impl_trait"
	TypeInfer           TypeKind = "infer"
	TypeRawPointer      TypeKind = "raw_pointer"
	TypeBorrowedRef     TypeKind = "borrowed_ref"
	TypeQualifiedPath   TypeKind = "qualified_path"
)

// Type is a type expression. Exactly the field matching Kind is set.
type Type struct {
	Kind TypeKind

	ResolvedPath    *Path
	DynTrait        *DynTrait
	Generic         string
	Primitive       string
	FunctionPointer *FunctionPointer
	Tuple           []Type
	Slice           *Type
	Array           *ArrayType
	Pat             *PatType
	ImplTrait       []GenericBound
	RawPointer      *PointerType
	BorrowedRef     *BorrowedRefType
	QualifiedPath   *QualifiedPathType
}

// Path names an item, optionally with generic arguments.
type Path struct {
	Path string       `json:"path"`
	ID   Id           `json:"id"`
	Args *GenericArgs `json:"args,omitempty"`
}

func (p *Path) UnmarshalJSON(data []byte) error {
	var wire struct {
		Path string       `json:"path"`
		Name string       `json:"name"`
		ID   Id           `json:"id"`
		Args *GenericArgs `json:"args"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	p.Path = wire.Path
	if p.Path == "" {
		p.Path = wire.Name
	}
	p.ID = wire.ID
	p.Args = wire.Args
	return nil
}

type DynTrait struct {
	Traits   []PolyTrait `json:"traits"`
	Lifetime *string     `json:"lifetime,omitempty"`
}

// PolyTrait is a trait reference with optional higher-ranked params (`for<'a> Fn(&'a T)`).
type PolyTrait struct {
	Trait         Path              `json:"trait"`
	GenericParams []GenericParamDef `json:"generic_params"`
}

type FunctionPointer struct {
	Sig           FunctionSignature `json:"sig"`
	GenericParams []GenericParamDef `json:"generic_params"`
}

type ArrayType struct {
	Type Type   `json:"type"`
	Len  string `json:"len"`
}

type PatType struct {
	Type Type `json:"type"`
}

type PointerType struct {
	IsMutable bool `json:"is_mutable"`
	Type      Type `json:"type"`
}

type BorrowedRefType struct {
	Lifetime  *string `json:"lifetime,omitempty"`
	IsMutable bool    `json:"is_mutable"`
	Type      Type    `json:"type"`
}

// QualifiedPathType is `<SelfType as Trait>::Name`.
type QualifiedPathType struct {
	Name     string       `json:"name"`
	Args     *GenericArgs `json:"args,omitempty"`
	SelfType Type         `json:"self_type"`
	Trait    *Path        `json:"trait,omitempty"`
}

func (t *Type) UnmarshalJSON(data []byte) error {
	tag, payload, err := decodeTagged(data)
	if err != nil {
		return fmt.Errorf("type: %w", err)
	}
	*t = Type{Kind: TypeKind(tag)}
	switch t.Kind {
	case TypeInfer:
		return nil
	case TypeResolvedPath:
		t.ResolvedPath = &Path{}
		return decodePayload(tag, payload, t.ResolvedPath)
	case TypeDynTrait:
		t.DynTrait = &DynTrait{}
		return decodePayload(tag, payload, t.DynTrait)
	case TypeGeneric:
		return decodePayload(tag, payload, &t.Generic)
	case TypePrimitive:
		return decodePayload(tag, payload, &t.Primitive)
	case TypeFunctionPointer:
		t.FunctionPointer = &FunctionPointer{}
		return decodePayload(tag, payload, t.FunctionPointer)
	case TypeTuple:
		return decodePayload(tag, payload, &t.Tuple)
	case TypeSlice:
		t.Slice = &Type{}
		return decodePayload(tag, payload, t.Slice)
	case TypeArray:
		t.Array = &ArrayType{}
		return decodePayload(tag, payload, t.Array)
	case TypePat:
		t.Pat = &PatType{}
		return decodePayload(tag, payload, t.Pat)
	case TypeImplTrait:
		return decodePayload(tag, payload, &t.ImplTrait)
	case TypeRawPointer:
		t.RawPointer = &PointerType{}
		return decodePayload(tag, payload, t.RawPointer)
	case TypeBorrowedRef:
		t.BorrowedRef = &BorrowedRefType{}
		return decodePayload(tag, payload, t.BorrowedRef)
	case TypeQualifiedPath:
		t.QualifiedPath = &QualifiedPathType{}
		return decodePayload(tag, payload, t.QualifiedPath)
	default:
		return fmt.Errorf("type: unknown variant %q", tag)
	}
}

// Convenience constructors, mostly for building indices in tests.

func ResolvedPathType(id Id, path string, args *GenericArgs) Type {
	return Type{Kind: TypeResolvedPath, ResolvedPath: &Path{Path: path, ID: id, Args: args}}
}

func PrimitiveType(name string) Type {
	return Type{Kind: TypePrimitive, Primitive: name}
}

func GenericType(name string) Type {
	return Type{Kind: TypeGeneric, Generic: name}
}

func RefType(inner Type, mutable bool) Type {
	return Type{Kind: TypeBorrowedRef, BorrowedRef: &BorrowedRefType{IsMutable: mutable, Type: inner}}
}

func TupleType(elems ...Type) Type {
	return Type{Kind: TypeTuple, Tuple: elems}
}

func SliceType(elem Type) Type {
	return Type{Kind: TypeSlice, Slice: &elem}
}

// AngleArgs builds `<T, U>` generic arguments from plain types.
func AngleArgs(types ...Type) *GenericArgs {
	args := make([]GenericArg, 0, len(types))
	for i := range types {
		t := types[i]
		args = append(args, GenericArg{Kind: GenericArgType, Type: &t})
	}
	return &GenericArgs{Kind: GenericArgsAngleBracketed, AngleBracketed: &AngleBracketedArgs{Args: args}}
}
