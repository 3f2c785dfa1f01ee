package graph

import "github.com/morozRed/cratemap/internal/rustdoc"

// Reference is one outgoing edge of an item before it is checked against the index.
type Reference struct {
	Target rustdoc.Id
	Label  Label
}

// References lists every item that item structurally refers to. Nested
// references (a bound on an associated type of a trait, an argument of a
// generic in a field type) are attributed to item itself. The result is in
// discovery order and may contain duplicates and targets outside the index.
func References(item *rustdoc.Item) []Reference {
	if item == nil {
		return nil
	}
	e := &extractor{}
	e.item(&item.Inner)
	return e.refs
}

type extractor struct {
	refs []Reference
}

func (e *extractor) emit(target rustdoc.Id, label Label) {
	e.refs = append(e.refs, Reference{Target: target, Label: label})
}

func (e *extractor) emitAll(targets []rustdoc.Id, label Label) {
	for _, target := range targets {
		e.emit(target, label)
	}
}

func (e *extractor) emitOptional(targets []*rustdoc.Id, label Label) {
	for _, target := range targets {
		if target != nil {
			e.emit(*target, label)
		}
	}
}

func (e *extractor) item(in *rustdoc.ItemInner) {
	switch {
	case in.Module != nil:
		e.emitAll(in.Module.Items, LabelContains)
	case in.Use != nil:
		if in.Use.ID != nil {
			e.emit(*in.Use.ID, LabelUseTarget)
		}
	case in.Struct != nil:
		s := in.Struct
		e.emitOptional(s.Kind.TupleFields, LabelStructField)
		e.emitAll(s.Kind.Fields, LabelStructField)
		e.emitAll(s.Impls, LabelImpl)
		e.generics(&s.Generics)
	case in.StructField != nil:
		e.typ(in.StructField, LabelFieldType)
	case in.Union != nil:
		u := in.Union
		e.emitAll(u.Fields, LabelUnionField)
		e.emitAll(u.Impls, LabelImpl)
		e.generics(&u.Generics)
	case in.Enum != nil:
		en := in.Enum
		e.emitAll(en.Variants, LabelVariant)
		e.emitAll(en.Impls, LabelImpl)
		e.generics(&en.Generics)
	case in.Variant != nil:
		e.emitOptional(in.Variant.Kind.TupleFields, LabelVariantField)
		e.emitAll(in.Variant.Kind.Fields, LabelVariantField)
	case in.Function != nil:
		e.generics(&in.Function.Generics)
		e.signature(&in.Function.Sig)
	case in.Trait != nil:
		tr := in.Trait
		e.emitAll(tr.Items, LabelTraitItem)
		e.bounds(tr.Bounds, LabelSupertrait)
		e.emitAll(tr.Implementations, LabelTraitImpl)
		e.generics(&tr.Generics)
	case in.TraitAlias != nil:
		e.generics(&in.TraitAlias.Generics)
		e.bounds(in.TraitAlias.Params, LabelTraitAlias)
	case in.Impl != nil:
		im := in.Impl
		if im.Trait != nil {
			e.path(im.Trait, LabelImplTrait)
		}
		e.typ(&im.For, LabelImplFor)
		e.emitAll(im.Items, LabelImplItem)
		if im.BlanketImpl != nil {
			e.typ(im.BlanketImpl, LabelBlanketImpl)
		}
		e.generics(&im.Generics)
	case in.TypeAlias != nil:
		e.typ(&in.TypeAlias.Type, LabelAliasType)
		e.generics(&in.TypeAlias.Generics)
	case in.Constant != nil:
		e.typ(&in.Constant.Type, LabelConstType)
	case in.Static != nil:
		e.typ(&in.Static.Type, LabelStaticType)
	case in.Primitive != nil:
		e.emitAll(in.Primitive.Impls, LabelPrimitiveImpl)
	case in.AssocConst != nil:
		e.typ(&in.AssocConst.Type, LabelConstType)
	case in.AssocType != nil:
		at := in.AssocType
		e.generics(&at.Generics)
		e.bounds(at.Bounds, LabelGenericBound)
		if at.Type != nil {
			e.typ(at.Type, LabelAssocType)
		}
	}
	// extern crates, macros, proc macros and extern types reference nothing.
}

func (e *extractor) signature(sig *rustdoc.FunctionSignature) {
	for i := range sig.Inputs {
		e.typ(&sig.Inputs[i].Type, LabelSignatureInput)
	}
	if sig.Output != nil {
		e.typ(sig.Output, LabelSignatureOutput)
	}
}

// typ walks a type expression. label applies to items named at this level;
// arguments of a named path are always generic_argument.
func (e *extractor) typ(t *rustdoc.Type, label Label) {
	if t == nil {
		return
	}
	switch t.Kind {
	case rustdoc.TypeResolvedPath:
		e.path(t.ResolvedPath, label)
	case rustdoc.TypeDynTrait:
		for i := range t.DynTrait.Traits {
			poly := &t.DynTrait.Traits[i]
			e.path(&poly.Trait, LabelDynTrait)
			e.params(poly.GenericParams)
		}
	case rustdoc.TypeFunctionPointer:
		e.params(t.FunctionPointer.GenericParams)
		e.signature(&t.FunctionPointer.Sig)
	case rustdoc.TypeTuple:
		for i := range t.Tuple {
			e.typ(&t.Tuple[i], label)
		}
	case rustdoc.TypeSlice:
		e.typ(t.Slice, label)
	case rustdoc.TypeArray:
		e.typ(&t.Array.Type, label)
	case rustdoc.TypePat:
		e.typ(&t.Pat.Type, label)
	case rustdoc.TypeImplTrait:
		e.bounds(t.ImplTrait, LabelImplTraitBound)
	case rustdoc.TypeRawPointer:
		e.typ(&t.RawPointer.Type, label)
	case rustdoc.TypeBorrowedRef:
		e.typ(&t.BorrowedRef.Type, label)
	case rustdoc.TypeQualifiedPath:
		qp := t.QualifiedPath
		if qp.Trait != nil {
			e.path(qp.Trait, LabelQualifiedTrait)
		}
		e.typ(&qp.SelfType, label)
		e.args(qp.Args)
	}
	// generic, primitive and infer carry no identity.
}

func (e *extractor) path(p *rustdoc.Path, label Label) {
	if p == nil {
		return
	}
	e.emit(p.ID, label)
	e.args(p.Args)
}

func (e *extractor) args(args *rustdoc.GenericArgs) {
	if args == nil {
		return
	}
	switch args.Kind {
	case rustdoc.GenericArgsAngleBracketed:
		for i := range args.AngleBracketed.Args {
			arg := &args.AngleBracketed.Args[i]
			if arg.Kind == rustdoc.GenericArgType {
				e.typ(arg.Type, LabelGenericArgument)
			}
		}
		for i := range args.AngleBracketed.Constraints {
			e.constraint(&args.AngleBracketed.Constraints[i])
		}
	case rustdoc.GenericArgsParenthesized:
		p := args.Parenthesized
		for i := range p.Inputs {
			e.typ(&p.Inputs[i], LabelSignatureInput)
		}
		if p.Output != nil {
			e.typ(p.Output, LabelSignatureOutput)
		}
	}
}

func (e *extractor) constraint(c *rustdoc.AssocItemConstraint) {
	e.args(c.Args)
	if c.Binding.Equality != nil {
		e.term(c.Binding.Equality)
	}
	e.bounds(c.Binding.Constraint, LabelGenericBound)
}

func (e *extractor) term(t *rustdoc.Term) {
	if t.Type != nil {
		e.typ(t.Type, LabelAssocType)
	}
}

func (e *extractor) bounds(bounds []rustdoc.GenericBound, label Label) {
	for i := range bounds {
		b := &bounds[i]
		if b.Kind != rustdoc.BoundTrait || b.Trait == nil {
			continue
		}
		e.path(b.Trait, label)
		e.params(b.GenericParams)
	}
}

func (e *extractor) generics(g *rustdoc.Generics) {
	e.params(g.Params)
	for i := range g.WherePredicates {
		wp := &g.WherePredicates[i]
		switch wp.Kind {
		case rustdoc.PredicateBound:
			e.typ(wp.Type, LabelGenericBound)
			e.bounds(wp.Bounds, LabelGenericBound)
			e.params(wp.GenericParams)
		case rustdoc.PredicateEq:
			e.typ(wp.Lhs, LabelAssocType)
			if wp.Rhs != nil {
				e.term(wp.Rhs)
			}
		}
	}
}

func (e *extractor) params(params []rustdoc.GenericParamDef) {
	for i := range params {
		k := &params[i].Kind
		switch k.Kind {
		case rustdoc.ParamType:
			e.bounds(k.Bounds, LabelGenericBound)
			if k.Default != nil {
				e.typ(k.Default, LabelGenericDefault)
			}
		case rustdoc.ParamConst:
			e.typ(k.ConstType, LabelConstType)
		}
	}
}
