package rustdoc

import (
	"encoding/json"
	"fmt"
)

type Generics struct {
	Params          []GenericParamDef `json:"params"`
	WherePredicates []WherePredicate  `json:"where_predicates"`
}

type GenericParamDef struct {
	Name string              `json:"name"`
	Kind GenericParamDefKind `json:"kind"`
}

type GenericParamKind string

const (
	ParamLifetime GenericParamKind = "lifetime"
	ParamType     GenericParamKind = "type"
	ParamConst    GenericParamKind = "const"
)

type GenericParamDefKind struct {
	Kind GenericParamKind

	Outlives []string

	Bounds      []GenericBound
	Default     *Type
	IsSynthetic bool

	ConstType    *Type
	ConstDefault *string
}

func (k *GenericParamDefKind) UnmarshalJSON(data []byte) error {
	tag, payload, err := decodeTagged(data)
	if err != nil {
		return fmt.Errorf("generic param: %w", err)
	}
	*k = GenericParamDefKind{Kind: GenericParamKind(tag)}
	switch k.Kind {
	case ParamLifetime:
		var wire struct {
			Outlives []string `json:"outlives"`
		}
		if err := decodePayload(tag, payload, &wire); err != nil {
			return err
		}
		k.Outlives = wire.Outlives
	case ParamType:
		var wire struct {
			Bounds      []GenericBound `json:"bounds"`
			Default     *Type          `json:"default"`
			IsSynthetic bool           `json:"is_synthetic"`
		}
		if err := decodePayload(tag, payload, &wire); err != nil {
			return err
		}
		k.Bounds, k.Default, k.IsSynthetic = wire.Bounds, wire.Default, wire.IsSynthetic
	case ParamConst:
		var wire struct {
			Type    Type    `json:"type"`
			Default *string `json:"default"`
		}
		if err := decodePayload(tag, payload, &wire); err != nil {
			return err
		}
		k.ConstType, k.ConstDefault = &wire.Type, wire.Default
	default:
		return fmt.Errorf("generic param: unknown variant %q", tag)
	}
	return nil
}

type WherePredicateKind string

const (
	PredicateBound    WherePredicateKind = "bound_predicate"
	PredicateLifetime WherePredicateKind = "lifetime_predicate"
	PredicateEq       WherePredicateKind = "eq_predicate"
)

// WherePredicate is one clause of a where block.
type WherePredicate struct {
	Kind WherePredicateKind

	// bound_predicate: `for<GenericParams> Type: Bounds`
	Type          *Type
	Bounds        []GenericBound
	GenericParams []GenericParamDef

	// lifetime_predicate
	Lifetime string
	Outlives []string

	// eq_predicate: `Lhs == Rhs`
	Lhs *Type
	Rhs *Term
}

func (p *WherePredicate) UnmarshalJSON(data []byte) error {
	tag, payload, err := decodeTagged(data)
	if err != nil {
		return fmt.Errorf("where predicate: %w", err)
	}
	*p = WherePredicate{Kind: WherePredicateKind(tag)}
	switch p.Kind {
	case PredicateBound:
		var wire struct {
			Type          Type              `json:"type"`
			Bounds        []GenericBound    `json:"bounds"`
			GenericParams []GenericParamDef `json:"generic_params"`
		}
		if err := decodePayload(tag, payload, &wire); err != nil {
			return err
		}
		p.Type, p.Bounds, p.GenericParams = &wire.Type, wire.Bounds, wire.GenericParams
	case PredicateLifetime:
		var wire struct {
			Lifetime string   `json:"lifetime"`
			Outlives []string `json:"outlives"`
		}
		if err := decodePayload(tag, payload, &wire); err != nil {
			return err
		}
		p.Lifetime, p.Outlives = wire.Lifetime, wire.Outlives
	case PredicateEq:
		var wire struct {
			Lhs Type `json:"lhs"`
			Rhs Term `json:"rhs"`
		}
		if err := decodePayload(tag, payload, &wire); err != nil {
			return err
		}
		p.Lhs, p.Rhs = &wire.Lhs, &wire.Rhs
	default:
		return fmt.Errorf("where predicate: unknown variant %q", tag)
	}
	return nil
}

type GenericBoundKind string

const (
	BoundTrait    GenericBoundKind = "trait_bound"
	BoundOutlives GenericBoundKind = "outlives"
	BoundUse      GenericBoundKind = "use"
)

type GenericBound struct {
	Kind GenericBoundKind

	Trait         *Path
	GenericParams []GenericParamDef
	Modifier      string

	Lifetime string
}

func (b *GenericBound) UnmarshalJSON(data []byte) error {
	tag, payload, err := decodeTagged(data)
	if err != nil {
		return fmt.Errorf("generic bound: %w", err)
	}
	*b = GenericBound{Kind: GenericBoundKind(tag)}
	switch b.Kind {
	case BoundTrait:
		var wire struct {
			Trait         Path              `json:"trait"`
			GenericParams []GenericParamDef `json:"generic_params"`
			Modifier      string            `json:"modifier"`
		}
		if err := decodePayload(tag, payload, &wire); err != nil {
			return err
		}
		b.Trait, b.GenericParams, b.Modifier = &wire.Trait, wire.GenericParams, wire.Modifier
	case BoundOutlives:
		return decodePayload(tag, payload, &b.Lifetime)
	case BoundUse:
		// Precise capturing (`use<'a, T>`) names only params, never items.
		return nil
	default:
		return fmt.Errorf("generic bound: unknown variant %q", tag)
	}
	return nil
}

// TraitBound builds a `Trait<args>` bound.
func TraitBound(id Id, path string, args *GenericArgs) GenericBound {
	return GenericBound{Kind: BoundTrait, Trait: &Path{Path: path, ID: id, Args: args}, Modifier: "none"}
}

type GenericArgsKind string

const (
	GenericArgsAngleBracketed     GenericArgsKind = "angle_bracketed"
	GenericArgsParenthesized      GenericArgsKind = "parenthesized"
	GenericArgsReturnTypeNotation GenericArgsKind = "return_type_notation"
)

type GenericArgs struct {
	Kind GenericArgsKind

	AngleBracketed *AngleBracketedArgs
	Parenthesized  *ParenthesizedArgs
}

// AngleBracketedArgs is `<'a, T, N, Item = U>`.
type AngleBracketedArgs struct {
	Args        []GenericArg          `json:"args"`
	Constraints []AssocItemConstraint `json:"constraints"`
}

// ParenthesizedArgs is `Fn(A, B) -> C`.
type ParenthesizedArgs struct {
	Inputs []Type `json:"inputs"`
	Output *Type  `json:"output"`
}

func (a *GenericArgs) UnmarshalJSON(data []byte) error {
	tag, payload, err := decodeTagged(data)
	if err != nil {
		return fmt.Errorf("generic args: %w", err)
	}
	*a = GenericArgs{Kind: GenericArgsKind(tag)}
	switch a.Kind {
	case GenericArgsAngleBracketed:
		var wire struct {
			Args        []GenericArg          `json:"args"`
			Constraints []AssocItemConstraint `json:"constraints"`
			Bindings    []AssocItemConstraint `json:"bindings"`
		}
		if err := decodePayload(tag, payload, &wire); err != nil {
			return err
		}
		if wire.Constraints == nil {
			wire.Constraints = wire.Bindings
		}
		a.AngleBracketed = &AngleBracketedArgs{Args: wire.Args, Constraints: wire.Constraints}
	case GenericArgsParenthesized:
		a.Parenthesized = &ParenthesizedArgs{}
		return decodePayload(tag, payload, a.Parenthesized)
	case GenericArgsReturnTypeNotation:
		return nil
	default:
		return fmt.Errorf("generic args: unknown variant %q", tag)
	}
	return nil
}

type GenericArgKind string

const (
	GenericArgLifetime GenericArgKind = "lifetime"
	GenericArgType     GenericArgKind = "type"
	GenericArgConst    GenericArgKind = "const"
	GenericArgInfer    GenericArgKind = "infer"
)

type GenericArg struct {
	Kind GenericArgKind

	Lifetime string
	Type     *Type
	Const    *Constant
}

func (a *GenericArg) UnmarshalJSON(data []byte) error {
	tag, payload, err := decodeTagged(data)
	if err != nil {
		return fmt.Errorf("generic arg: %w", err)
	}
	*a = GenericArg{Kind: GenericArgKind(tag)}
	switch a.Kind {
	case GenericArgInfer:
		return nil
	case GenericArgLifetime:
		return decodePayload(tag, payload, &a.Lifetime)
	case GenericArgType:
		a.Type = &Type{}
		return decodePayload(tag, payload, a.Type)
	case GenericArgConst:
		a.Const = &Constant{}
		return decodePayload(tag, payload, a.Const)
	default:
		return fmt.Errorf("generic arg: unknown variant %q", tag)
	}
}

// AssocItemConstraint is `Item = T` or `Item: Bound` inside angle brackets.
type AssocItemConstraint struct {
	Name    string
	Args    *GenericArgs
	Binding AssocItemConstraintKind
}

func (c *AssocItemConstraint) UnmarshalJSON(data []byte) error {
	var wire struct {
		Name    string                  `json:"name"`
		Args    *GenericArgs            `json:"args"`
		Binding AssocItemConstraintKind `json:"binding"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	c.Name, c.Args, c.Binding = wire.Name, wire.Args, wire.Binding
	return nil
}

type AssocItemConstraintKind struct {
	// Equality is set for `Item = Term`.
	Equality *Term
	// Constraint is set for `Item: Bounds`.
	Constraint []GenericBound
}

func (k *AssocItemConstraintKind) UnmarshalJSON(data []byte) error {
	tag, payload, err := decodeTagged(data)
	if err != nil {
		return fmt.Errorf("assoc item constraint: %w", err)
	}
	*k = AssocItemConstraintKind{}
	switch tag {
	case "equality":
		k.Equality = &Term{}
		return decodePayload(tag, payload, k.Equality)
	case "constraint":
		return decodePayload(tag, payload, &k.Constraint)
	default:
		return fmt.Errorf("assoc item constraint: unknown variant %q", tag)
	}
}

// Term is the right-hand side of an equality constraint.
type Term struct {
	Type     *Type
	Constant *Constant
}

func (t *Term) UnmarshalJSON(data []byte) error {
	tag, payload, err := decodeTagged(data)
	if err != nil {
		return fmt.Errorf("term: %w", err)
	}
	*t = Term{}
	switch tag {
	case "type":
		t.Type = &Type{}
		return decodePayload(tag, payload, t.Type)
	case "constant":
		t.Constant = &Constant{}
		return decodePayload(tag, payload, t.Constant)
	default:
		return fmt.Errorf("term: unknown variant %q", tag)
	}
}

// Constant is a constant expression; it never references items structurally.
type Constant struct {
	Expr      string  `json:"expr"`
	Value     *string `json:"value,omitempty"`
	IsLiteral bool    `json:"is_literal"`
}
