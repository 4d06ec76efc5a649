package mib

import (
	"testing"
)

func TestLookupPrecedence(t *testing.T) {
	m := New()
	a := newModule(t, m, "A-MIB")
	b := newModule(t, m, "B-MIB")
	c := newModule(t, m, "C-MIB")
	aFoo := a.NewMacro(tok("Foo"))
	a.AddSymbol(aFoo)
	bFoo := b.NewMacro(tok("Foo"))
	b.AddSymbol(bFoo)
	cFoo := c.NewMacro(tok("Foo"))
	c.AddSymbol(cFoo)
	c.AddImports(tok("B-MIB"), []*IdToken{tok("Foo")})
	b.AddImports(tok("A-MIB"), []*IdToken{tok("Foo")})
	user := newModule(t, m, "USER-MIB")
	user.AddImports(tok("B-MIB"), []*IdToken{tok("Foo")})
	xref(m)

	if got := c.ResolveReference(tok("Foo"), nil); got != Symbol(cFoo) {
		t.Errorf("local symbol should win over import, got %v", got)
	}
	if got := user.ResolveReference(tok("Foo"), nil); got != Symbol(bFoo) {
		t.Errorf("import should win over root table, got %v", got)
	}
}

func TestLookupNotFound(t *testing.T) {
	m := New()
	mod := newModule(t, m, "A-MIB")
	xref(m)

	if got := mod.ResolveReference(tok("missing"), nil); got != nil {
		t.Errorf("got %v, want nil", got)
	}
	if m.problems.Count() != 0 {
		t.Errorf("silent lookup reported %v", codes(m.problems))
	}

	p := newProblems(DefaultConfig())
	mod.ResolveReference(tok("missing"), p)
	requireCode(t, p, DiagSymbolNotFound)
}

func TestLookupVersionTieBreak(t *testing.T) {
	m := New()
	v1 := newModule(t, m, "V1-MIB")
	v1.IncV1Features()
	v1Foo := v1.NewMacro(tok("Foo"))
	v1.AddSymbol(v1Foo)

	v2 := newModule(t, m, "V2-MIB")
	v2.IncV2Features()
	v2Foo := v2.NewMacro(tok("Foo"))
	v2.AddSymbol(v2Foo)

	userV2 := newModule(t, m, "USER-V2")
	userV2.IncV2Features()
	userV1 := newModule(t, m, "USER-V1")
	userV1.IncV1Features()
	xref(m)

	p := newProblems(DefaultConfig())
	if got := userV2.ResolveReference(tok("Foo"), p); got != Symbol(v2Foo) {
		t.Errorf("V2 requester got %v, want V2-MIB.Foo", got)
	}
	if got := userV1.ResolveReference(tok("Foo"), p); got != Symbol(v1Foo) {
		t.Errorf("V1 requester got %v, want V1-MIB.Foo", got)
	}
	if p.Count() != 0 {
		t.Errorf("tie-break should not report, got %v", codes(p))
	}
}

func TestLookupImportTieBreak(t *testing.T) {
	m := New()
	a := newModule(t, m, "A-MIB")
	a.AddSymbol(a.NewMacro(tok("Foo")))
	b := newModule(t, m, "B-MIB")
	bFoo := b.NewMacro(tok("Foo"))
	b.AddSymbol(bFoo)

	user := newModule(t, m, "USER-MIB")
	// Imports something else from B-MIB; Foo itself is not imported.
	b.AddSymbol(b.NewMacro(tok("Bar")))
	user.AddImports(tok("B-MIB"), []*IdToken{tok("Bar")})
	xref(m)

	p := newProblems(DefaultConfig())
	if got := user.ResolveReference(tok("Foo"), p); got != Symbol(bFoo) {
		t.Errorf("got %v, want B-MIB.Foo", got)
	}
}

func TestLookupImportTieBreakThroughAlias(t *testing.T) {
	m := New()
	smi := newModule(t, m, "SNMPv2-SMI")
	smiFoo := smi.NewMacro(tok("Foo"))
	smi.AddSymbol(smiFoo)
	other := newModule(t, m, "OTHER-MIB")
	other.AddSymbol(other.NewMacro(tok("Foo")))

	user := newModule(t, m, "REQ-MIB")
	user.AddImports(tok("SNMPv2-SMI-v1"), []*IdToken{tok("mib-2")})
	requireNoProblems(t, xref(m))

	p := newProblems(DefaultConfig())
	if got := user.ResolveReference(tok("Foo"), p); got != Symbol(smiFoo) {
		t.Errorf("got %v, want SNMPv2-SMI.Foo", got)
	}
	if p.Count() != 0 {
		t.Errorf("unexpected problems: %v", p.All())
	}
}

func TestLookupAmbiguous(t *testing.T) {
	m := New()
	for _, id := range []string{"A-MIB", "B-MIB", "C-MIB"} {
		mod := newModule(t, m, id)
		mod.AddSymbol(mod.NewMacro(tok("Foo")))
	}
	user := newModule(t, m, "USER-MIB")
	xref(m)

	p := newProblems(DefaultConfig())
	if got := user.ResolveReference(tok("Foo"), p); got != nil {
		t.Errorf("got %v, want nil", got)
	}
	d := requireCode(t, p, DiagSymbolAmbiguous)
	if want := "symbol Foo is ambiguous, defined in A-MIB, B-MIB, C-MIB"; d.Message() != want {
		t.Errorf("message = %q, want %q", d.Message(), want)
	}
}

func TestLookupKindFilter(t *testing.T) {
	m := New()
	a := newModule(t, m, "A-MIB")
	a.AddSymbol(a.NewMacro(tok("thing")))
	b := newModule(t, m, "B-MIB")
	thing := addOid(t, b, "thing", "1", "5")
	user := newModule(t, m, "USER-MIB")
	leaf := addOid(t, user, "leaf", "thing", "1")

	p := xref(m)
	requireNoProblems(t, p)
	if leaf.Node() == nil || leaf.Node().Parent() != thing.Node() {
		t.Errorf("leaf should resolve below B-MIB.thing, got %s", leaf.Node())
	}
}

func TestResolveAsWrongKind(t *testing.T) {
	m := New()
	mod := newModule(t, m, "A-MIB")
	mod.AddSymbol(mod.NewMacro(tok("notAVariable")))
	xref(m)

	p := newProblems(DefaultConfig())
	v, ok := resolveAs[*Variable](mod, tok("notAVariable"), "variable", p)
	if ok || v != nil {
		t.Errorf("got %v, want no variable", v)
	}
	d := requireCode(t, p, DiagSymbolWrongKind)
	if want := "found symbol notAVariable in A-MIB but it is a macro, expected variable"; d.Message() != want {
		t.Errorf("message = %q, want %q", d.Message(), want)
	}
}

func TestVersionInference(t *testing.T) {
	tests := []struct {
		name   string
		v1, v2 int
		want   Version
	}{
		{"more v1", 3, 1, VersionV1},
		{"more v2", 1, 3, VersionV2},
		{"equal", 2, 2, VersionUnknown},
		{"none", 0, 0, VersionUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := newModule(t, New(), "A-MIB")
			for range tt.v1 {
				mod.IncV1Features()
			}
			for range tt.v2 {
				mod.IncV2Features()
			}
			if got := mod.Version(); got != tt.want {
				t.Errorf("Version() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestVersionMemoReset(t *testing.T) {
	mod := newModule(t, New(), "A-MIB")
	mod.IncV1Features()
	if mod.Version() != VersionV1 {
		t.Fatal("want V1")
	}
	mod.IncV2Features()
	mod.IncV2Features()
	if got := mod.Version(); got != VersionV2 {
		t.Errorf("Version() after more v2 features = %s, want SMIv2", got)
	}
}

func TestImportsResolve(t *testing.T) {
	m := New()
	user := newModule(t, m, "USER-MIB")
	imp := user.AddImports(tok("SNMPv2-SMI"), []*IdToken{tok("mib-2"), tokAt("noSuchThing", 7)})
	user.AddImports(tokAt("NO-SUCH-MIB", 9), []*IdToken{tok("x")})

	p := xref(m)
	if imp.ImportedModule() == nil || imp.ImportedModule().ID() != "SNMPv2-SMI" {
		t.Fatalf("imported module = %v", imp.ImportedModule())
	}
	if imp.Find("mib-2") == nil {
		t.Error("mib-2 should be bound")
	}
	d := requireCode(t, p, DiagImportNotFound)
	if d.Location.Line != 7 {
		t.Errorf("import-not-found at line %d, want 7", d.Location.Line)
	}
	d = requireCode(t, p, DiagModuleNotFound)
	if d.Location.Line != 9 {
		t.Errorf("module-not-found at line %d, want 9", d.Location.Line)
	}
}

func TestImportAlias(t *testing.T) {
	m := New()
	user := newModule(t, m, "USER-MIB")
	imp := user.AddImports(tok("SNMPv2-SMI-v1"), []*IdToken{tok("mib-2")})

	p := xref(m)
	requireNoProblems(t, p)
	if imp.ImportedModule() != m.FindModule("SNMPv2-SMI") {
		t.Errorf("alias resolved to %v", imp.ImportedModule())
	}
}

func TestScopedIDResolve(t *testing.T) {
	m := New()
	a := newModule(t, m, "A-MIB")
	target := addOid(t, a, "target", "1", "7")
	user := newModule(t, m, "USER-MIB")
	xref(m)

	p := newProblems(DefaultConfig())
	sid := NewScopedID(user, tok("A-MIB"), tok("target"))
	if got := sid.resolve(p); got != Symbol(target) {
		t.Errorf("resolve() = %v, want target", got)
	}
	if sid.String() != "A-MIB.target" {
		t.Errorf("String() = %q", sid.String())
	}

	bad := NewScopedID(user, tok("NOPE-MIB"), tok("target"))
	if bad.resolve(p) != nil {
		t.Error("unknown module should not resolve")
	}
	requireCode(t, p, DiagModuleNotFound)
}
