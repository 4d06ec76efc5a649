package mib

import (
	"fmt"
	"log/slog"
	"math/big"
)

// DefvalForm tells which alternative a DEFVAL clause was written in.
type DefvalForm int

const (
	DefvalInteger DefvalForm = iota
	DefvalBits
	DefvalOid
	DefvalBinary
	DefvalHex
	DefvalString
	DefvalReference
	DefvalNull
)

func (f DefvalForm) String() string {
	switch f {
	case DefvalInteger:
		return "integer"
	case DefvalBits:
		return "bits"
	case DefvalOid:
		return "oid"
	case DefvalBinary:
		return "binary"
	case DefvalHex:
		return "hex"
	case DefvalString:
		return "string"
	case DefvalReference:
		return "reference"
	case DefvalNull:
		return "null"
	default:
		return fmt.Sprintf("DefvalForm(%d)", f)
	}
}

// DefaultValue is a DEFVAL clause. Exactly one of the literal forms is set,
// and resolution fills in the matching resolved value.
type DefaultValue struct {
	module   *Module
	variable *Variable
	form     DefvalForm
	loc      Location

	integer   *BigIntToken
	bitTokens []*IdToken
	oid       *OidComponent
	str       *StringToken
	ref       *ScopedID

	bits      []*NamedNumber
	enumValue *NamedNumber
	oidNode   *OidNode
	oidValue  OidSymbol
	symbol    Symbol
}

// NewIntegerDefault creates DEFVAL { 42 }.
func (m *Module) NewIntegerDefault(tok *BigIntToken) *DefaultValue {
	return &DefaultValue{module: m, form: DefvalInteger, loc: tok.Loc, integer: tok}
}

// NewBitsDefault creates DEFVAL { { a, b } }. loc is the position of the
// opening brace, used when the list is empty.
func (m *Module) NewBitsDefault(loc Location, ids []*IdToken) *DefaultValue {
	return &DefaultValue{module: m, form: DefvalBits, loc: loc, bitTokens: ids}
}

// NewOidDefault creates DEFVAL { iso 3 6 } from the last component of the
// expression.
func (m *Module) NewOidDefault(last *OidComponent) *DefaultValue {
	return &DefaultValue{module: m, form: DefvalOid, loc: last.Location(), oid: last}
}

// NewStringDefault creates a quoted ("..."), hex ('..'H) or binary ('..'B)
// default; form selects which.
func (m *Module) NewStringDefault(form DefvalForm, tok *StringToken) *DefaultValue {
	switch form {
	case DefvalString, DefvalHex, DefvalBinary:
	default:
		panic(fmt.Sprintf("mib: %s is not a string default form", form))
	}
	return &DefaultValue{module: m, form: form, loc: tok.Loc, str: tok}
}

// NewReferenceDefault creates DEFVAL { name } or DEFVAL { MODULE.name }.
func (m *Module) NewReferenceDefault(ref *ScopedID) *DefaultValue {
	return &DefaultValue{module: m, form: DefvalReference, loc: ref.symbolToken.Loc, ref: ref}
}

// NewNullDefault creates an explicit empty default.
func (m *Module) NewNullDefault(loc Location) *DefaultValue {
	return &DefaultValue{module: m, form: DefvalNull, loc: loc}
}

// Form returns the written alternative.
func (d *DefaultValue) Form() DefvalForm { return d.form }

// Location returns where the value was written.
func (d *DefaultValue) Location() Location { return d.loc }

// Variable returns the variable the default belongs to.
func (d *DefaultValue) Variable() *Variable { return d.variable }

// Integer returns the integer literal, or nil.
func (d *DefaultValue) Integer() *big.Int {
	if d.integer == nil {
		return nil
	}
	return d.integer.Value
}

// StringToken returns the quoted, hex or binary literal, or nil.
func (d *DefaultValue) StringToken() *StringToken { return d.str }

// BigValue returns the numeric value of a hex or binary literal.
func (d *DefaultValue) BigValue() (*big.Int, bool) {
	switch d.form {
	case DefvalHex:
		return d.str.BigValue(16)
	case DefvalBinary:
		return d.str.BigValue(2)
	case DefvalInteger:
		return d.integer.Value, true
	}
	return nil, false
}

// BitTokens returns the identifiers of a bits default.
func (d *DefaultValue) BitTokens() []*IdToken { return d.bitTokens }

// Bits returns the resolved bits, or nil when unresolved.
func (d *DefaultValue) Bits() []*NamedNumber { return d.bits }

// EnumValue returns the resolved enumeration constant, or nil.
func (d *DefaultValue) EnumValue() *NamedNumber { return d.enumValue }

// OidNode returns the resolved node of an OID default, or nil.
func (d *DefaultValue) OidNode() *OidNode { return d.oidNode }

// OidValue returns the OID value a reference default resolved to, or nil.
func (d *DefaultValue) OidValue() OidSymbol { return d.oidValue }

// Reference returns the referenced identifier, or nil.
func (d *DefaultValue) Reference() *ScopedID { return d.ref }

// FallbackSymbol returns the symbol of a reference that is neither an enum
// constant nor an OID value, or nil.
func (d *DefaultValue) FallbackSymbol() Symbol { return d.symbol }

func (d *DefaultValue) resolve(p *Problems) {
	switch d.form {
	case DefvalBits:
		d.resolveBits(p)
	case DefvalOid:
		d.oidNode = d.oid.resolveNode(d.module, p)
	case DefvalReference:
		d.resolveReference(p)
	}
}

func (d *DefaultValue) resolveBits(p *Problems) {
	fields := d.variable.BitFields()
	if fields == nil {
		tok := NewIdToken(d.loc, "{}")
		if len(d.bitTokens) > 0 {
			tok = d.bitTokens[0]
		}
		p.defvalBitsOnNonBits(tok, d.variable.ID())
		return
	}
	bits := make([]*NamedNumber, 0, len(d.bitTokens))
	for _, tok := range d.bitTokens {
		nn := findNamedNumber(fields, tok.ID)
		if nn == nil {
			p.bitFieldNotFound(tok)
			continue
		}
		bits = append(bits, nn)
	}
	d.bits = bits
}

func (d *DefaultValue) resolveReference(p *Problems) {
	tok := d.ref.symbolToken
	if d.ref.moduleToken != nil {
		d.module.mib.log.Log(slog.LevelDebug, "module-qualified default value not resolved",
			slog.String("module", d.module.ID()),
			slog.String("variable", d.variable.ID()),
			slog.String("reference", d.ref.String()))
		return
	}
	if enums := d.variable.EnumValues(); enums != nil {
		d.enumValue = findNamedNumber(enums, tok.ID)
		if d.enumValue == nil {
			p.enumConstantNotFound(tok)
		}
		return
	}
	sym := d.module.lookup(tok, nil, p)
	if sym == nil {
		return
	}
	if ov, ok := sym.(OidSymbol); ok && d.variable.PrimitiveType() == PrimitiveObjectIdentifier {
		d.oidValue = ov
		d.oidNode = ov.Node()
		return
	}
	d.symbol = sym
	p.defvalInvalidReference(tok, d.variable.ID())
}
