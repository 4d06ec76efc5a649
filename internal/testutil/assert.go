// Package testutil provides schema fixtures and assertion helpers for tests.
package testutil

import (
	"slices"
	"testing"

	"github.com/golangsnmp/mibxref/mib"
)

// Codes returns the codes of the recorded diagnostics in report order.
func Codes(p *mib.Problems) []string {
	var codes []string
	for _, d := range p.All() {
		codes = append(codes, d.Code)
	}
	return codes
}

// NoProblems fails the test if any diagnostic was recorded.
func NoProblems(t testing.TB, p *mib.Problems) {
	t.Helper()
	for _, d := range p.All() {
		t.Errorf("unexpected diagnostic: %s", d)
	}
	if p.Count() > 0 {
		t.FailNow()
	}
}

// HasProblem fails the test unless a diagnostic with code was recorded and
// returns the first one.
func HasProblem(t testing.TB, p *mib.Problems, code string) mib.Diagnostic {
	t.Helper()
	found := p.WithCode(code)
	if len(found) == 0 {
		t.Fatalf("expected diagnostic %s, got %v", code, Codes(p))
	}
	return found[0]
}

// LacksProblem fails the test if a diagnostic with code was recorded.
func LacksProblem(t testing.TB, p *mib.Problems, code string) {
	t.Helper()
	if slices.Contains(Codes(p), code) {
		t.Fatalf("unexpected diagnostic %s: %v", code, p.WithCode(code))
	}
}

// Symbol returns the symbol id defined in module, failing the test if absent.
func Symbol(t testing.TB, m *mib.Mib, module, id string) mib.Symbol {
	t.Helper()
	mod := m.FindModule(module)
	if mod == nil {
		t.Fatalf("module %s not found", module)
	}
	s := mod.FindSymbol(id)
	if s == nil {
		t.Fatalf("symbol %s::%s not found", module, id)
	}
	return s
}

// As returns the symbol id defined in module as T, failing the test if it
// is absent or of another kind.
func As[T mib.Symbol](t testing.TB, m *mib.Mib, module, id string) T {
	t.Helper()
	s := Symbol(t, m, module, id)
	v, ok := s.(T)
	if !ok {
		t.Fatalf("symbol %s::%s is a %s", module, id, s.Kind())
	}
	return v
}

// OidOf returns the dotted OID of the symbol id in module, or "" when it
// did not resolve.
func OidOf(t testing.TB, m *mib.Mib, module, id string) string {
	t.Helper()
	s, ok := Symbol(t, m, module, id).(mib.OidSymbol)
	if !ok {
		t.Fatalf("symbol %s::%s has no OID", module, id)
	}
	if s.Node() == nil {
		return ""
	}
	return s.Node().OidString()
}
