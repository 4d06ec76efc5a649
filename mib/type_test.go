package mib

import (
	"slices"
	"testing"
)

func TestPrimitivePrecedence(t *testing.T) {
	m := New()
	smi := newModule(t, m, "SNMPv2-SMI")
	other := newModule(t, m, "OTHER-MIB")

	enumAndBits := other.NewType(tok("EnumAndBits"))
	enumAndBits.SetEnumValues(namedNumbers("a", 1))
	enumAndBits.SetBitFields(namedNumbers("b", 0))
	enumAndBits.SetPrimitive(PrimitiveOctetString)

	bitsOnly := other.NewType(tok("BitsOnly"))
	bitsOnly.SetBitFields(namedNumbers("b", 0))
	bitsOnly.SetPrimitive(PrimitiveOctetString)

	smiInt32 := smi.NewType(tok("Integer32"))
	smiInt32.SetPrimitive(PrimitiveInteger)

	otherInt32 := other.NewType(tok("Integer32"))
	otherInt32.SetPrimitive(PrimitiveInteger)

	own := other.NewType(tok("Own"))
	own.SetPrimitive(PrimitiveTimeTicks)
	own.SetBaseType(m.Builtin(PrimitiveInteger))

	inherited := other.NewType(tok("Inherited"))
	inherited.SetBaseType(bitsOnly)

	none := other.NewType(tok("None"))

	tests := []struct {
		typ  *Type
		want PrimitiveType
	}{
		{enumAndBits, PrimitiveEnum},
		{bitsOnly, PrimitiveBits},
		{smiInt32, PrimitiveInteger32},
		{otherInt32, PrimitiveInteger},
		{own, PrimitiveTimeTicks},
		{inherited, PrimitiveBits},
		{none, PrimitiveUnknown},
	}
	for _, tt := range tests {
		if got := tt.typ.PrimitiveType(); got != tt.want {
			t.Errorf("%s.%s PrimitiveType() = %s, want %s", tt.typ.Module(), tt.typ.ID(), got, tt.want)
		}
	}
}

func TestPrimitiveTerminatesOnCycle(t *testing.T) {
	m := New()
	mod := newModule(t, m, "A-MIB")
	a := mod.NewType(tok("A"))
	b := mod.NewType(tok("B"))
	a.SetBaseType(b)
	b.SetBaseType(a)

	if got := a.PrimitiveType(); got != PrimitiveUnknown {
		t.Errorf("PrimitiveType() = %s, want unknown", got)
	}
	if a.FindEnumValues() != nil || a.FindBitFields() != nil || a.FindRangeConstraints() != nil ||
		a.FindSizeConstraints() != nil || a.FindTextualConvention() != nil {
		t.Error("chain walkers should find nothing on an empty cycle")
	}
}

func TestTypeCycleReported(t *testing.T) {
	m := New()
	mod := newModule(t, m, "A-MIB")
	a := mod.NewType(tok("A"))
	a.SetBaseType(mod.NewTypeRef(nil, tok("B")))
	b := mod.NewType(tok("B"))
	b.SetBaseType(mod.NewTypeRef(nil, tok("A")))
	mod.AddSymbol(a)
	mod.AddSymbol(b)

	p := xref(m)
	requireCode(t, p, DiagTypeCycle)
	if p.OK() {
		t.Error("a type cycle should fail the run")
	}
	// The cut leaves both chains finite.
	for _, typ := range []*Type{a, b} {
		var n int
		for cur := typ; cur != nil && n < 10; cur = cur.BaseType() {
			n++
		}
		if n >= 10 {
			t.Errorf("%s base chain is still cyclic", typ.ID())
		}
	}
}

func TestTypeReferenceResolution(t *testing.T) {
	m := New()
	mod := newModule(t, m, "A-MIB")
	base := mod.NewType(tok("Base"))
	base.SetBaseType(m.Builtin(PrimitiveInteger))
	mod.AddSymbol(base)

	// Foo ::= Base (1..10)
	foo := mod.NewType(tok("Foo"))
	ref := mod.NewTypeRef(nil, tok("Base"))
	ref.SetRangeConstraints([]Range{NewRange(1, 10)})
	foo.SetBaseType(ref)
	mod.AddSymbol(foo)

	// x OBJECT-TYPE SYNTAX Base
	x := addVariable(t, mod, "x", mod.NewTypeRef(nil, tok("Base")), "1", "3", "1")
	// y OBJECT-TYPE SYNTAX Base (0..5)
	yRef := mod.NewTypeRef(nil, tok("Base"))
	yRef.SetRangeConstraints([]Range{NewRange(0, 5)})
	y := addVariable(t, mod, "y", yRef, "1", "3", "2")
	// z OBJECT-TYPE SYNTAX Missing
	z := addVariable(t, mod, "z", mod.NewTypeRef(nil, tok("Missing")), "1", "3", "3")

	p := xref(m)

	if foo.BaseType() != base {
		t.Errorf("Foo base = %v, want Base", foo.BaseType())
	}
	if got := foo.RangeConstraints(); len(got) != 1 || got[0].String() != "1..10" {
		t.Errorf("Foo ranges = %v, want merged 1..10", got)
	}

	if x.Type() != base {
		t.Errorf("x type = %v, want Base", x.Type())
	}

	yt := y.Type()
	if yt == base || yt.ID() != "" || yt.BaseType() != base {
		t.Errorf("y should get an anonymous type derived from Base")
	}
	if got := y.RangeConstraints(); len(got) != 1 || got[0].String() != "0..5" {
		t.Errorf("y ranges = %v, want 0..5", got)
	}

	if !z.Type().IsReference() {
		t.Error("unresolved reference should stay in place")
	}
	requireCode(t, p, DiagSymbolNotFound)
}

func TestTypeReferenceQualified(t *testing.T) {
	m := New()
	a := newModule(t, m, "A-MIB")
	aT := a.NewType(tok("T"))
	aT.SetPrimitive(PrimitiveOctetString)
	a.AddSymbol(aT)
	b := newModule(t, m, "B-MIB")
	bT := b.NewType(tok("T"))
	bT.SetPrimitive(PrimitiveInteger)
	b.AddSymbol(bT)

	user := newModule(t, m, "USER-MIB")
	v := addVariable(t, user, "v", user.NewTypeRef(tok("B-MIB"), tok("T")), "1", "9")
	w := addVariable(t, user, "w", user.NewTypeRef(tok("NO-MIB"), tok("T")), "1", "10")

	p := xref(m)
	if v.Type() != bT {
		t.Errorf("v type = %v, want B-MIB.T", v.Type())
	}
	if !w.Type().IsReference() {
		t.Error("reference into unknown module should stay unresolved")
	}
	requireCode(t, p, DiagModuleNotFound)
}

func TestTypeReferenceNamedNumbers(t *testing.T) {
	m := New()
	mod := newModule(t, m, "A-MIB")
	bits := mod.NewType(tok("Flags"))
	bits.SetBaseType(m.Builtin(PrimitiveBits))
	mod.AddSymbol(bits)
	ints := mod.NewType(tok("Level"))
	ints.SetBaseType(m.Builtin(PrimitiveInteger))
	mod.AddSymbol(ints)

	fRef := mod.NewTypeRef(nil, tok("Flags"))
	fRef.SetNamedNumbers(namedNumbers("up", 0, "down", 1))
	f := addVariable(t, mod, "f", fRef, "1", "4", "1")

	lRef := mod.NewTypeRef(nil, tok("Level"))
	lRef.SetNamedNumbers(namedNumbers("low", 1, "high", 2))
	l := addVariable(t, mod, "l", lRef, "1", "4", "2")

	requireNoProblems(t, xref(m))

	if got := f.PrimitiveType(); got != PrimitiveBits {
		t.Errorf("f PrimitiveType() = %s, want BITS", got)
	}
	if got := len(f.BitFields()); got != 2 {
		t.Errorf("f has %d bit fields, want 2", got)
	}
	if got := l.PrimitiveType(); got != PrimitiveEnum {
		t.Errorf("l PrimitiveType() = %s, want ENUM", got)
	}
	if got := len(l.EnumValues()); got != 2 {
		t.Errorf("l has %d enum values, want 2", got)
	}
}

func TestSequenceTypes(t *testing.T) {
	m := New()
	mod := newModule(t, m, "A-MIB")
	entry := mod.NewType(tok("FooEntry"))
	entry.SetFields([]*Field{
		NewField(tok("fooIndex"), mod.NewTypeRef(nil, tok("Integer32"))),
		NewField(tok("fooName"), m.Builtin(PrimitiveOctetString)),
	})
	mod.AddSymbol(entry)

	tableType := mod.NewType(nil)
	tableType.SetElementType(tok("FooEntry"))
	addTable(t, mod, "fooTable", "1", "5")
	tbl := mod.FindSymbol("fooTable").(*Table)
	tbl.typ = tableType

	idx := addVariable(t, mod, "fooIndex", nil, "fooTable", "1", "1")
	addVariable(t, mod, "fooName", nil, "fooTable", "1", "2")

	requireNoProblems(t, xref(m))

	if tableType.ElementType() != entry {
		t.Errorf("element type = %v, want FooEntry", tableType.ElementType())
	}
	fields := entry.Fields()
	if fields[0].Column() != idx {
		t.Errorf("field column = %v, want fooIndex", fields[0].Column())
	}
	if fields[0].Type().ID() != "Integer32" || fields[0].Type().Module().ID() != "SNMPv2-SMI" {
		t.Errorf("field type = %v, want SNMPv2-SMI.Integer32", fields[0].Type())
	}
}

func TestChainWalkers(t *testing.T) {
	m := New()
	mod := newModule(t, m, "A-MIB")
	tc := mod.NewTextualConvention(tok("DisplayString"), TextualConvention{DisplayHint: "255a", Status: StatusCurrent})
	tc.SetBaseType(m.Builtin(PrimitiveOctetString))
	tc.SetSizeConstraints([]Range{NewRange(0, 255)})
	derived := mod.NewType(tok("Derived"))
	derived.SetBaseType(tc)
	derived.SetSizeConstraints([]Range{NewRange(0, 32)})

	if got := derived.FindSizeConstraints(); got[0].String() != "0..32" {
		t.Errorf("FindSizeConstraints() = %v, want the nearest 0..32", got)
	}
	if got := derived.FindTextualConvention(); got != tc {
		t.Errorf("FindTextualConvention() = %v, want DisplayString", got)
	}
	if got := derived.PrimitiveType(); got != PrimitiveOctetString {
		t.Errorf("PrimitiveType() = %s, want OCTET STRING", got)
	}
	if tc.Kind() != KindTextualConvention || derived.Kind() != KindType {
		t.Error("kinds")
	}
}

func TestTextualConventionRequiresID(t *testing.T) {
	mod := newModule(t, New(), "A-MIB")
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	mod.NewTextualConvention(nil, TextualConvention{})
}

func TestRangeString(t *testing.T) {
	got := []string{NewRange(1, 1).String(), NewRange(-5, 5).String()}
	if !slices.Equal(got, []string{"1", "-5..5"}) {
		t.Errorf("got %v", got)
	}
}
