package mib

import (
	"testing"
)

// defvalFixture returns a module with a variable of type typ at 1.7.n.
func defvalFixture(t *testing.T, typ func(m *Mib, mod *Module) *Type) (*Mib, *Module, *Variable) {
	t.Helper()
	m := New()
	mod := newModule(t, m, "DEF-MIB")
	v := addVariable(t, mod, "value", typ(m, mod), "1", "7", "1")
	return m, mod, v
}

func bitsType(m *Mib, mod *Module) *Type {
	typ := mod.NewType(nil)
	typ.SetBaseType(m.Builtin(PrimitiveBits))
	typ.SetBitFields(namedNumbers("up", 0, "down", 1, "testing", 2))
	return typ
}

func enumType(m *Mib, mod *Module) *Type {
	typ := mod.NewType(nil)
	typ.SetBaseType(m.Builtin(PrimitiveInteger))
	typ.SetEnumValues(namedNumbers("enabled", 1, "disabled", 2))
	return typ
}

func builtinType(prim PrimitiveType) func(m *Mib, mod *Module) *Type {
	return func(m *Mib, _ *Module) *Type { return m.Builtin(prim) }
}

func TestDefvalBits(t *testing.T) {
	m, mod, v := defvalFixture(t, bitsType)
	v.SetDefaultValue(mod.NewBitsDefault(testLoc, []*IdToken{tok("up"), tokAt("bogus", 4), tok("testing")}))

	p := xref(m)
	dv := v.DefaultValue()
	if dv.Variable() != v {
		t.Error("default should point back at its variable")
	}
	got := dv.Bits()
	if len(got) != 2 || got[0].ID() != "up" || got[1].ID() != "testing" {
		t.Errorf("bits = %v, want [up testing]", got)
	}
	d := requireCode(t, p, DiagBitFieldNotFound)
	if d.Location.Line != 4 {
		t.Errorf("bit-field-not-found at line %d, want 4", d.Location.Line)
	}
}

func TestDefvalBitsOnNonBits(t *testing.T) {
	tests := []struct {
		name     string
		ids      []*IdToken
		wantLine int
	}{
		{"first token", []*IdToken{tokAt("a", 5), tokAt("b", 6)}, 5},
		{"empty list", nil, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, mod, v := defvalFixture(t, builtinType(PrimitiveInteger))
			brace := Location{Source: "test.mib", Line: 8, Column: 3}
			v.SetDefaultValue(mod.NewBitsDefault(brace, tt.ids))

			d := requireCode(t, xref(m), DiagDefvalBitsOnNonBits)
			if d.Location.Line != tt.wantLine {
				t.Errorf("reported at line %d, want %d", d.Location.Line, tt.wantLine)
			}
			if v.DefaultValue().Bits() != nil {
				t.Error("bits should stay unresolved")
			}
		})
	}
}

func TestDefvalEnum(t *testing.T) {
	m, mod, v := defvalFixture(t, enumType)
	v.SetDefaultValue(mod.NewReferenceDefault(NewScopedID(mod, nil, tok("disabled"))))

	requireNoProblems(t, xref(m))
	got := v.DefaultValue().EnumValue()
	if got == nil || got.ID() != "disabled" || got.Value().Int64() != 2 {
		t.Errorf("enum value = %v, want disabled(2)", got)
	}
}

func TestDefvalEnumNotFound(t *testing.T) {
	m, mod, v := defvalFixture(t, enumType)
	// An OID value of the same name must not be picked up for an enum.
	addOid(t, mod, "unknown", "1", "8")
	v.SetDefaultValue(mod.NewReferenceDefault(NewScopedID(mod, nil, tok("unknown"))))

	p := xref(m)
	requireCode(t, p, DiagEnumConstantNotFound)
	dv := v.DefaultValue()
	if dv.EnumValue() != nil || dv.OidValue() != nil || dv.FallbackSymbol() != nil {
		t.Error("nothing should resolve")
	}
}

func TestDefvalOidReference(t *testing.T) {
	m, mod, v := defvalFixture(t, builtinType(PrimitiveObjectIdentifier))
	zero := addOid(t, mod, "zeroDotZero", "0", "0")
	v.SetDefaultValue(mod.NewReferenceDefault(NewScopedID(mod, nil, tok("zeroDotZero"))))

	requireNoProblems(t, xref(m))
	dv := v.DefaultValue()
	if dv.OidValue() != OidSymbol(zero) {
		t.Errorf("oid value = %v, want zeroDotZero", dv.OidValue())
	}
	if dv.OidNode() == nil || dv.OidNode().OidString() != "0.0" {
		t.Errorf("oid node = %v, want 0.0", dv.OidNode())
	}
}

func TestDefvalInvalidReference(t *testing.T) {
	tests := []struct {
		name string
		prim PrimitiveType
		ref  string
	}{
		{"macro", PrimitiveInteger, "OBJECT-TYPE"},
		{"oid value on integer", PrimitiveInteger, "mib-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, mod, v := defvalFixture(t, builtinType(tt.prim))
			v.SetDefaultValue(mod.NewReferenceDefault(NewScopedID(mod, nil, tokAt(tt.ref, 12))))

			p := xref(m)
			d := requireCode(t, p, DiagDefvalInvalidReference)
			if d.Location.Line != 12 {
				t.Errorf("reported at line %d, want 12", d.Location.Line)
			}
			dv := v.DefaultValue()
			if dv.FallbackSymbol() == nil || dv.FallbackSymbol().ID() != tt.ref {
				t.Errorf("fallback = %v, want %s", dv.FallbackSymbol(), tt.ref)
			}
			if dv.OidValue() != nil {
				t.Error("oid value should stay unset")
			}
		})
	}
}

func TestDefvalQualifiedReferenceSkipped(t *testing.T) {
	m, mod, v := defvalFixture(t, enumType)
	v.SetDefaultValue(mod.NewReferenceDefault(NewScopedID(mod, tok("OTHER-MIB"), tok("enabled"))))

	requireNoProblems(t, xref(m))
	dv := v.DefaultValue()
	if dv.EnumValue() != nil || dv.FallbackSymbol() != nil {
		t.Error("qualified reference should stay unresolved")
	}
	if dv.Reference().String() != "OTHER-MIB.enabled" {
		t.Errorf("reference = %s", dv.Reference())
	}
}

func TestDefvalOidForm(t *testing.T) {
	m, mod, v := defvalFixture(t, builtinType(PrimitiveObjectIdentifier))
	v.SetDefaultValue(mod.NewOidDefault(chain(t, "iso", "3", "6")))

	requireNoProblems(t, xref(m))
	dv := v.DefaultValue()
	if dv.Form() != DefvalOid {
		t.Errorf("form = %s", dv.Form())
	}
	if dv.OidNode() == nil || dv.OidNode().OidString() != "1.3.6" {
		t.Errorf("oid node = %v, want 1.3.6", dv.OidNode())
	}
}

func TestDefvalLiterals(t *testing.T) {
	mod := newModule(t, New(), "DEF-MIB")
	tests := []struct {
		dv   *DefaultValue
		want int64
	}{
		{mod.NewStringDefault(DefvalHex, NewStringToken(testLoc, "0A")), 10},
		{mod.NewStringDefault(DefvalBinary, NewStringToken(testLoc, "101")), 5},
		{mod.NewStringDefault(DefvalHex, NewStringToken(testLoc, "")), 0},
		{mod.NewIntegerDefault(NewBigIntToken(testLoc, -3)), -3},
	}
	for _, tt := range tests {
		got, ok := tt.dv.BigValue()
		if !ok || got.Int64() != tt.want {
			t.Errorf("%s BigValue() = %v, %v, want %d", tt.dv.Form(), got, ok, tt.want)
		}
	}

	quoted := mod.NewStringDefault(DefvalString, NewStringToken(testLoc, "abc"))
	if _, ok := quoted.BigValue(); ok {
		t.Error("quoted string has no numeric value")
	}
	if quoted.StringToken().Value != "abc" {
		t.Errorf("string = %q", quoted.StringToken().Value)
	}
	if mod.NewNullDefault(testLoc).Form() != DefvalNull {
		t.Error("null form")
	}
}

func TestDefvalStringFormPanics(t *testing.T) {
	mod := newModule(t, New(), "DEF-MIB")
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	mod.NewStringDefault(DefvalInteger, NewStringToken(testLoc, "1"))
}
