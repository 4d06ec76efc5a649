package mib

import (
	"testing"
)

func TestResolveNodeIdempotent(t *testing.T) {
	m := New()
	mod := newModule(t, m, "TEST-MIB")
	last := chain(t, "1", "3", "6")

	first := last.resolveNode(mod, m.problems)
	if first == nil {
		t.Fatal("expected a node")
	}
	var before int
	for range m.root.Subtree() {
		before++
	}

	second := last.resolveNode(mod, m.problems)
	if second != first {
		t.Error("second resolution returned a different node")
	}
	var after int
	for range m.root.Subtree() {
		after++
	}
	if before != after {
		t.Errorf("node count changed from %d to %d", before, after)
	}
	if got := first.OidString(); got != "1.3.6" {
		t.Errorf("OidString() = %q, want 1.3.6", got)
	}
}

func TestResolveNodeSharesPrefixes(t *testing.T) {
	m := New()
	mod := newModule(t, m, "TEST-MIB")
	a := chain(t, "1", "3", "6").resolveNode(mod, nil)
	b := chain(t, "1", "3", "7").resolveNode(mod, nil)
	if a.Parent() != b.Parent() {
		t.Error("sibling chains should share the parent node")
	}
}

func TestResolveNodeNamedComponent(t *testing.T) {
	m := New()
	mod := newModule(t, m, "TEST-MIB")
	addOid(t, mod, "base", "1", "3")
	leaf := addOid(t, mod, "leaf", "base", "9")

	p := xref(m)
	requireNoProblems(t, p)
	if got := leaf.OidString(); got != "1.3.9" {
		t.Errorf("leaf = %q, want 1.3.9", got)
	}
}

func TestResolveNodeProblems(t *testing.T) {
	tests := []struct {
		name string
		arcs []string
		code string
	}{
		{"unknown first name", []string{"nowhere", "1"}, DiagOidNonTerminalUnresolved},
		{"missing parent", []string{"nowhere", "1", "2"}, DiagOidParentMissing},
		{"terminal without value", []string{"iso", "org(3)", "dod"}, DiagOidValueMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			mod := newModule(t, m, "TEST-MIB")
			v := addOid(t, mod, "broken", tt.arcs...)

			p := xref(m)
			requireCode(t, p, tt.code)
			if v.Node() != nil {
				t.Errorf("broken resolved to %s", v.Node())
			}
		})
	}
}

func TestResolveNodeParentMissingOnce(t *testing.T) {
	m := New()
	mod := newModule(t, m, "TEST-MIB")
	addOid(t, mod, "broken", "nowhere", "1", "2", "3")

	p := xref(m)
	if got := len(p.WithCode(DiagOidParentMissing)); got != 1 {
		t.Errorf("got %d oid-parent-missing, want 1: %v", got, codes(p))
	}
	if got := len(p.WithCode(DiagOidNonTerminalUnresolved)); got != 1 {
		t.Errorf("got %d oid-nonterminal-unresolved, want 1", got)
	}
}

func TestResolveNodeWrongKind(t *testing.T) {
	m := New()
	mod := newModule(t, m, "TEST-MIB")
	mod.AddSymbol(mod.NewType(tok("NotAnOid")))
	addOid(t, mod, "broken", "NotAnOid", "1")

	p := xref(m)
	d := requireCode(t, p, DiagSymbolWrongKind)
	if d.Location != testLoc {
		t.Errorf("location = %s, want %s", d.Location, testLoc)
	}
	if got := len(p.WithCode(DiagOidNonTerminalUnresolved)); got != 0 {
		t.Errorf("wrong kind should not also report unresolved, got %v", codes(p))
	}
}

func TestResolveNodeValueMismatch(t *testing.T) {
	m := New()
	m.SetDiagnosticConfig(StrictConfig())
	mod := newModule(t, m, "TEST-MIB")
	addOid(t, mod, "base", "1", "3")
	leaf := addOid(t, mod, "leaf", "base(4)", "1")

	p := xref(m)
	requireCode(t, p, DiagOidValueMismatch)
	if got := leaf.OidString(); got != "1.3.1" {
		t.Errorf("leaf = %q, want 1.3.1 (symbol wins over literal)", got)
	}
	if !p.OK() {
		t.Error("a mismatch warning should not fail the run")
	}
}

func TestResolveOidCycle(t *testing.T) {
	m := New()
	mod := newModule(t, m, "TEST-MIB")
	a := addOid(t, mod, "a", "b", "1")
	b := addOid(t, mod, "b", "a", "2")

	p := xref(m)
	requireCode(t, p, DiagOidCycle)
	if a.Node() != nil || b.Node() != nil {
		t.Error("cyclic values should stay unresolved")
	}
}

func TestOidComponentWithoutIDOrValuePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewOidComponent(nil, nil, nil)
}

func TestClaimantsAcrossModules(t *testing.T) {
	m := New()
	a := newModule(t, m, "A-MIB")
	b := newModule(t, m, "B-MIB")
	va := addOid(t, a, "x", "1", "3", "99")
	vb := addOid(t, b, "y", "1", "3", "99")

	requireNoProblems(t, xref(m))
	if va.Node() != vb.Node() {
		t.Fatal("both values should claim the same node")
	}
	values := va.Node().Values()
	if len(values) != 2 || values[0] != OidSymbol(va) || values[1] != OidSymbol(vb) {
		t.Errorf("claimants = %v, want [x y]", values)
	}
}
