package mib

import (
	"math/big"
	"slices"
)

// NamedNumber is an enumeration constant or a named bit.
type NamedNumber struct {
	idToken    *IdToken
	valueToken *BigIntToken
}

// NewNamedNumber creates a named number.
func NewNamedNumber(id *IdToken, value *BigIntToken) *NamedNumber {
	return &NamedNumber{idToken: id, valueToken: value}
}

// ID returns the label.
func (n *NamedNumber) ID() string { return n.idToken.ID }

// IDToken returns the label token.
func (n *NamedNumber) IDToken() *IdToken { return n.idToken }

// Value returns the number.
func (n *NamedNumber) Value() *big.Int { return n.valueToken.Value }

func findNamedNumber(list []*NamedNumber, id string) *NamedNumber {
	for _, nn := range list {
		if nn.ID() == id {
			return nn
		}
	}
	return nil
}

// Range is a closed interval of a range or size constraint. A single value
// has Min == Max.
type Range struct {
	Min *big.Int
	Max *big.Int
}

// NewRange creates an interval.
func NewRange(lo, hi int64) Range {
	return Range{Min: big.NewInt(lo), Max: big.NewInt(hi)}
}

func (r Range) String() string {
	if r.Min.Cmp(r.Max) == 0 {
		return r.Min.String()
	}
	return r.Min.String() + ".." + r.Max.String()
}

// Field is one member of a SEQUENCE type, naming the column it describes.
type Field struct {
	columnToken *IdToken
	typ         *Type
	column      *Variable
}

// NewField creates a sequence member. typ may be nil.
func NewField(column *IdToken, typ *Type) *Field {
	return &Field{columnToken: column, typ: typ}
}

// ColumnToken names the column.
func (f *Field) ColumnToken() *IdToken { return f.columnToken }

// Column returns the resolved column, or nil.
func (f *Field) Column() *Variable { return f.column }

// Type returns the member type, or nil.
func (f *Field) Type() *Type { return f.typ }

func (f *Field) resolve(mod *Module, p *Problems) {
	f.column, _ = resolveAs[*Variable](mod, f.columnToken, "variable", p)
	if f.typ != nil {
		f.typ = f.typ.resolveThis(p, nil)
	}
}

// TextualConvention is the metadata of a TEXTUAL-CONVENTION.
type TextualConvention struct {
	DisplayHint string
	Status      Status
	Description string
	Reference   string
}

// Type is a type assignment, an anonymous constrained type, or a forward
// reference to a type by name.
type Type struct {
	symbolBase

	base      *Type
	primitive PrimitiveType
	appTag    int // -1 if none

	enums        []*NamedNumber
	bits         []*NamedNumber
	namedNumbers []*NamedNumber // reference only, enum or bits not yet known
	ranges       []Range
	sizes        []Range
	fields       []*Field
	elementToken *IdToken
	element      *Type

	tc *TextualConvention

	ref       bool
	refModule *IdToken

	baseResolved bool
	refsResolved bool
}

// NewType creates a type owned by m. A nil id makes an anonymous type that
// is not added to the module's symbols.
func (m *Module) NewType(id *IdToken) *Type {
	return &Type{symbolBase: symbolBase{idToken: id, module: m}, appTag: -1}
}

// NewTextualConvention creates a TEXTUAL-CONVENTION owned by m.
func (m *Module) NewTextualConvention(id *IdToken, tc TextualConvention) *Type {
	mustID(KindTextualConvention, id)
	t := m.NewType(id)
	t.tc = &tc
	return t
}

// NewTypeRef creates a reference to a type by name, optionally qualified by
// a module. It is replaced by the named type during resolution.
func (m *Module) NewTypeRef(module, id *IdToken) *Type {
	t := m.NewType(id)
	t.ref = true
	t.refModule = module
	return t
}

func (t *Type) Kind() Kind {
	if t.tc != nil {
		return KindTextualConvention
	}
	return KindType
}

// IsReference reports whether t is an unresolved forward reference.
func (t *Type) IsReference() bool { return t.ref }

// ReferencedModule returns the qualifying module of a reference, or nil.
func (t *Type) ReferencedModule() *IdToken { return t.refModule }

// BaseType returns the type t derives from, or nil.
func (t *Type) BaseType() *Type { return t.base }

// SetBaseType sets the type t derives from.
func (t *Type) SetBaseType(base *Type) { t.base = base }

// OwnPrimitive returns the primitive set on t itself.
func (t *Type) OwnPrimitive() PrimitiveType { return t.primitive }

// SetPrimitive sets the primitive classification of t itself.
func (t *Type) SetPrimitive(p PrimitiveType) { t.primitive = p }

// ApplicationTag returns the [APPLICATION n] tag, or -1.
func (t *Type) ApplicationTag() int { return t.appTag }

// SetApplicationTag sets the [APPLICATION n] tag.
func (t *Type) SetApplicationTag(tag int) { t.appTag = tag }

// EnumValues returns the enumeration declared on t itself.
func (t *Type) EnumValues() []*NamedNumber { return t.enums }

// SetEnumValues declares an enumeration.
func (t *Type) SetEnumValues(nn []*NamedNumber) { t.enums = nn }

// BitFields returns the named bits declared on t itself.
func (t *Type) BitFields() []*NamedNumber { return t.bits }

// SetBitFields declares named bits.
func (t *Type) SetBitFields(nn []*NamedNumber) { t.bits = nn }

// SetNamedNumbers attaches named numbers to a reference whose target decides
// whether they are enum values or bits.
func (t *Type) SetNamedNumbers(nn []*NamedNumber) { t.namedNumbers = nn }

// RangeConstraints returns the value ranges declared on t itself.
func (t *Type) RangeConstraints() []Range { return t.ranges }

// SetRangeConstraints declares value ranges.
func (t *Type) SetRangeConstraints(r []Range) { t.ranges = r }

// SizeConstraints returns the size ranges declared on t itself.
func (t *Type) SizeConstraints() []Range { return t.sizes }

// SetSizeConstraints declares size ranges.
func (t *Type) SetSizeConstraints(r []Range) { t.sizes = r }

// Fields returns the SEQUENCE members.
func (t *Type) Fields() []*Field { return t.fields }

// SetFields declares SEQUENCE members.
func (t *Type) SetFields(f []*Field) { t.fields = f }

// ElementTypeToken names the SEQUENCE OF element type, or nil.
func (t *Type) ElementTypeToken() *IdToken { return t.elementToken }

// ElementType returns the resolved SEQUENCE OF element type, or nil.
func (t *Type) ElementType() *Type { return t.element }

// SetElementType declares t as SEQUENCE OF the named type.
func (t *Type) SetElementType(tok *IdToken) { t.elementToken = tok }

// TextualConvention returns the convention metadata, or nil.
func (t *Type) TextualConvention() *TextualConvention { return t.tc }

// hasConstraints reports whether a reference carries constraints of its own.
func (t *Type) hasConstraints() bool {
	return len(t.enums) > 0 || len(t.bits) > 0 || len(t.namedNumbers) > 0 ||
		len(t.ranges) > 0 || len(t.sizes) > 0
}

// walkChain calls fn for t and each base type in turn until fn returns
// false. A type seen twice ends the walk.
func (t *Type) walkChain(fn func(*Type) bool) {
	var seen []*Type
	for cur := t; cur != nil; cur = cur.base {
		if slices.Contains(seen, cur) {
			return
		}
		seen = append(seen, cur)
		if !fn(cur) {
			return
		}
	}
}

// PrimitiveType derives the effective classification: enum values make
// ENUM, then bit fields make BITS, then the type's own primitive, then the
// base type's classification.
func (t *Type) PrimitiveType() PrimitiveType {
	result := PrimitiveUnknown
	t.walkChain(func(cur *Type) bool {
		switch {
		case len(cur.enums) > 0:
			result = PrimitiveEnum
		case len(cur.bits) > 0:
			result = PrimitiveBits
		case cur.isSMIv2Integer32():
			result = PrimitiveInteger32
		case cur.primitive != PrimitiveUnknown:
			result = cur.primitive
		default:
			return true
		}
		return false
	})
	return result
}

// isSMIv2Integer32 covers SNMPv2-SMI defining Integer32 as a ranged INTEGER.
func (t *Type) isSMIv2Integer32() bool {
	return t.ID() == "Integer32" && t.module.ID() == "SNMPv2-SMI"
}

// FindEnumValues returns the first enumeration along the base chain.
func (t *Type) FindEnumValues() []*NamedNumber {
	var out []*NamedNumber
	t.walkChain(func(cur *Type) bool {
		out = cur.enums
		return out == nil
	})
	return out
}

// FindBitFields returns the first named bits along the base chain.
func (t *Type) FindBitFields() []*NamedNumber {
	var out []*NamedNumber
	t.walkChain(func(cur *Type) bool {
		out = cur.bits
		return out == nil
	})
	return out
}

// FindRangeConstraints returns the first ranges along the base chain.
func (t *Type) FindRangeConstraints() []Range {
	var out []Range
	t.walkChain(func(cur *Type) bool {
		out = cur.ranges
		return out == nil
	})
	return out
}

// FindSizeConstraints returns the first size ranges along the base chain.
func (t *Type) FindSizeConstraints() []Range {
	var out []Range
	t.walkChain(func(cur *Type) bool {
		out = cur.sizes
		return out == nil
	})
	return out
}

// FindTextualConvention returns the first textual convention along the base
// chain.
func (t *Type) FindTextualConvention() *Type {
	var out *Type
	t.walkChain(func(cur *Type) bool {
		if cur.tc != nil {
			out = cur
			return false
		}
		return true
	})
	return out
}
