package mib

import (
	"testing"
)

var testLoc = Location{Source: "test.mib", Line: 1, Column: 1}

func tok(id string) *IdToken { return NewIdToken(testLoc, id) }

func tokAt(id string, line int) *IdToken {
	return NewIdToken(Location{Source: "test.mib", Line: line, Column: 1}, id)
}

// chain builds an OID expression from arc specs like "iso", "org(3)" and "6".
func chain(t *testing.T, arcs ...string) *OidComponent {
	t.Helper()
	var last *OidComponent
	for _, arc := range arcs {
		name, value, hasValue, err := ParseArcSpec(arc)
		if err != nil {
			t.Fatalf("arc %q: %v", arc, err)
		}
		var id *IdToken
		var v *IntToken
		if name != "" {
			id = tok(name)
		}
		if hasValue {
			v = NewIntToken(testLoc, value)
		}
		last = NewOidComponent(last, id, v)
	}
	return last
}

func newModule(t *testing.T, m *Mib, id string) *Module {
	t.Helper()
	mod, err := m.NewModule(tok(id))
	if err != nil {
		t.Fatalf("NewModule(%s): %v", id, err)
	}
	return mod
}

func addOid(t *testing.T, mod *Module, id string, arcs ...string) *OidValue {
	t.Helper()
	v := mod.NewOidValue(tok(id), chain(t, arcs...))
	mod.AddSymbol(v)
	return v
}

func addVariable(t *testing.T, mod *Module, id string, typ *Type, arcs ...string) *Variable {
	t.Helper()
	v := mod.NewVariable(tok(id), chain(t, arcs...), StatusCurrent, typ)
	mod.AddSymbol(v)
	return v
}

func addRow(t *testing.T, mod *Module, id string, arcs ...string) *Row {
	t.Helper()
	r := mod.NewRow(tok(id), chain(t, arcs...), StatusCurrent, nil)
	mod.AddSymbol(r)
	return r
}

func addTable(t *testing.T, mod *Module, id string, arcs ...string) *Table {
	t.Helper()
	tbl := mod.NewTable(tok(id), chain(t, arcs...), StatusCurrent, nil)
	mod.AddSymbol(tbl)
	return tbl
}

func namedNumbers(pairs ...any) []*NamedNumber {
	var out []*NamedNumber
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, NewNamedNumber(tok(pairs[i].(string)), NewBigIntToken(testLoc, int64(pairs[i+1].(int)))))
	}
	return out
}

// xref cross-references m with the SMI root module definer only.
func xref(m *Mib) *Problems {
	return m.CrossReference(XRefOptions{Definers: []Definer{smiDefiner}})
}

var smiDefiner = NewDefiner("SNMPv2-SMI", func(d *SymbolDefiner) {
	d.Module().IncV2Features()
	d.AddMacro("OBJECT-TYPE")
	d.AddOid("org", "iso", "3")
	d.AddOid("dod", "org", "6")
	d.AddOid("internet", "iso", "org(3)", "dod(6)", "1")
	d.AddOid("mgmt", "internet", "2")
	d.AddOid("mib-2", "mgmt", "1")
	d.AddOid("enterprises", "internet", "4", "1")
	d.AddInteger32Type("Integer32")
})

func codes(p *Problems) []string {
	var out []string
	for _, d := range p.All() {
		out = append(out, d.Code)
	}
	return out
}

func requireCode(t *testing.T, p *Problems, code string) Diagnostic {
	t.Helper()
	found := p.WithCode(code)
	if len(found) == 0 {
		t.Fatalf("expected %s, got %v", code, codes(p))
	}
	return found[0]
}

func requireNoProblems(t *testing.T, p *Problems) {
	t.Helper()
	if p.Count() != 0 {
		for _, d := range p.All() {
			t.Log(d)
		}
		t.Fatalf("expected no problems, got %v", codes(p))
	}
}
