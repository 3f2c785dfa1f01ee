package graph

import "fmt"

// Label says why a source item references a target item.
type Label uint8

const (
	LabelContains Label = iota
	LabelUseTarget
	LabelStructField
	LabelVariant
	LabelVariantField
	LabelUnionField
	LabelImpl
	LabelTraitItem
	LabelSupertrait
	LabelTraitImpl
	LabelImplTrait
	LabelImplFor
	LabelImplItem
	LabelBlanketImpl
	LabelFieldType
	LabelAliasType
	LabelConstType
	LabelStaticType
	LabelSignatureInput
	LabelSignatureOutput
	LabelGenericArgument
	LabelGenericBound
	LabelGenericDefault
	LabelAssocType
	LabelQualifiedTrait
	LabelDynTrait
	LabelImplTraitBound
	LabelTraitAlias
	LabelPrimitiveImpl

	numLabels
)

var labelNames = [numLabels]string{
	LabelContains:        "contains",
	LabelUseTarget:       "use_target",
	LabelStructField:     "struct_field",
	LabelVariant:         "variant",
	LabelVariantField:    "variant_field",
	LabelUnionField:      "union_field",
	LabelImpl:            "impl",
	LabelTraitItem:       "trait_item",
	LabelSupertrait:      "supertrait",
	LabelTraitImpl:       "trait_impl",
	LabelImplTrait:       "impl_trait",
	LabelImplFor:         "impl_for",
	LabelImplItem:        "impl_item",
	LabelBlanketImpl:     "blanket_impl",
	LabelFieldType:       "field_type",
	LabelAliasType:       "alias_type",
	LabelConstType:       "const_type",
	LabelStaticType:      "static_type",
	LabelSignatureInput:  "signature_input",
	LabelSignatureOutput: "signature_output",
	LabelGenericArgument: "generic_argument",
	LabelGenericBound:    "generic_bound",
	LabelGenericDefault:  "generic_default",
	LabelAssocType:       "assoc_type",
	LabelQualifiedTrait:  "qualified_trait",
	LabelDynTrait:        "dyn_trait",
	LabelImplTraitBound:  "impl_trait_bound",
	LabelTraitAlias:      "trait_alias",
	LabelPrimitiveImpl:   "primitive_impl",
}

func (l Label) String() string {
	if l < numLabels {
		return labelNames[l]
	}
	return "unknown"
}

// MarshalText encodes the label by name so JSON exports stay readable.
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Label) UnmarshalText(text []byte) error {
	parsed, ok := ParseLabel(string(text))
	if !ok {
		return fmt.Errorf("unknown edge label %q", text)
	}
	*l = parsed
	return nil
}

// ParseLabel is the inverse of Label.String.
func ParseLabel(name string) (Label, bool) {
	for i, candidate := range labelNames {
		if candidate == name {
			return Label(i), true
		}
	}
	return 0, false
}

// Labels returns every label in declaration order.
func Labels() []Label {
	out := make([]Label, 0, numLabels)
	for l := Label(0); l < numLabels; l++ {
		out = append(out, l)
	}
	return out
}
