package mib

import (
	"slices"
	"strings"
)

var defaultSeverities = func() map[string]Severity {
	m := make(map[string]Severity)
	for _, info := range AllDiagnosticCodes() {
		m[info.Code] = info.Severity
	}
	return m
}()

func defaultSeverity(code string) Severity {
	if sev, ok := defaultSeverities[code]; ok {
		return sev
	}
	return SeverityError
}

// Problems is the problem stream of one resolution run.
//
// A nil *Problems discards everything, which is how silent lookups are
// expressed.
type Problems struct {
	config      DiagnosticConfig
	diagnostics []Diagnostic
	counts      [SeverityInfo + 1]int
	failed      bool
}

func newProblems(cfg DiagnosticConfig) *Problems {
	return &Problems{config: cfg}
}

// Report records a diagnostic with the default severity of code, subject to
// the configured filters and overrides.
func (p *Problems) Report(loc Location, code, template string, args ...any) {
	if p == nil {
		return
	}
	sev := p.config.effectiveSeverity(code, defaultSeverity(code))
	if !p.config.ShouldReport(code, sev) {
		return
	}
	p.diagnostics = append(p.diagnostics, Diagnostic{
		Location: loc,
		Severity: sev,
		Code:     code,
		Template: template,
		Args:     args,
	})
	if sev >= SeverityFatal && sev <= SeverityInfo {
		p.counts[sev]++
	}
	if p.config.ShouldFail(sev) {
		p.failed = true
	}
}

// All returns the recorded diagnostics in report order.
func (p *Problems) All() []Diagnostic {
	if p == nil {
		return nil
	}
	return slices.Clone(p.diagnostics)
}

// Count returns the number of recorded diagnostics.
func (p *Problems) Count() int {
	if p == nil {
		return 0
	}
	return len(p.diagnostics)
}

// CountSeverity returns the number of diagnostics recorded at sev.
func (p *Problems) CountSeverity(sev Severity) int {
	if p == nil || sev < SeverityFatal || sev > SeverityInfo {
		return 0
	}
	return p.counts[sev]
}

// OK reports whether no recorded diagnostic reached the failure threshold.
func (p *Problems) OK() bool {
	return p == nil || !p.failed
}

// NotOK is the negation of OK.
func (p *Problems) NotOK() bool {
	return !p.OK()
}

// WithCode returns the diagnostics recorded under code.
func (p *Problems) WithCode(code string) []Diagnostic {
	if p == nil {
		return nil
	}
	var out []Diagnostic
	for _, d := range p.diagnostics {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

func (p *Problems) symbolNotFound(tok *IdToken) {
	p.Report(tok.Loc, DiagSymbolNotFound, "cannot find symbol %s", tok.ID)
}

func (p *Problems) symbolWrongKind(tok *IdToken, want string, got Symbol) {
	p.Report(tok.Loc, DiagSymbolWrongKind, "found symbol %s in %s but it is a %s, expected %s",
		tok.ID, got.Module().ID(), got.Kind(), want)
}

func (p *Problems) symbolAmbiguous(tok *IdToken, candidates []Symbol) {
	mods := make([]string, 0, len(candidates))
	for _, c := range candidates {
		mods = append(mods, c.Module().ID())
	}
	p.Report(tok.Loc, DiagSymbolAmbiguous, "symbol %s is ambiguous, defined in %s",
		tok.ID, strings.Join(mods, ", "))
}

func (p *Problems) symbolDuplicate(sym Symbol, first Symbol) {
	p.Report(sym.Location(), DiagSymbolDuplicate, "symbol %s is already defined at %s",
		sym.ID(), first.Location())
}

func (p *Problems) moduleNotFound(tok *IdToken) {
	p.Report(tok.Loc, DiagModuleNotFound, "cannot find module %s", tok.ID)
}

func (p *Problems) moduleDuplicate(tok *IdToken) {
	p.Report(tok.Loc, DiagModuleDuplicate, "module %s is already defined", tok.ID)
}

func (p *Problems) importNotFound(tok *IdToken, module string) {
	p.Report(tok.Loc, DiagImportNotFound, "cannot find symbol %s imported from %s", tok.ID, module)
}

func (p *Problems) oidParentMissing(loc Location, label string) {
	p.Report(loc, DiagOidParentMissing, "cannot find parent of oid component %s", label)
}

func (p *Problems) oidValueMissing(loc Location, label string) {
	p.Report(loc, DiagOidValueMissing, "oid component %s has no numeric value", label)
}

func (p *Problems) oidNonTerminalUnresolved(loc Location, label string) {
	p.Report(loc, DiagOidNonTerminalUnresolved, "cannot resolve non-terminal oid component %s", label)
}

func (p *Problems) oidCycle(tok *IdToken) {
	p.Report(tok.Loc, DiagOidCycle, "oid value %s refers to itself", tok.ID)
}

func (p *Problems) oidValueMismatch(loc Location, id string, declared, actual uint32) {
	p.Report(loc, DiagOidValueMismatch, "oid component %s(%d) resolves to arc %d", id, declared, actual)
}

func (p *Problems) typeCycle(tok *IdToken) {
	p.Report(tok.Loc, DiagTypeCycle, "type %s is derived from itself", tok.ID)
}

func (p *Problems) accessInvalid(tok *IdToken) {
	p.Report(tok.Loc, DiagAccessInvalid, "invalid ACCESS value %s", tok.ID)
}

func (p *Problems) maxAccessInvalid(tok *IdToken) {
	p.Report(tok.Loc, DiagMaxAccessInvalid, "invalid MAX-ACCESS value %s", tok.ID)
}

func (p *Problems) defvalBitsOnNonBits(tok *IdToken, variable string) {
	p.Report(tok.Loc, DiagDefvalBitsOnNonBits, "bits default value for %s, but its type has no bit fields", variable)
}

func (p *Problems) defvalInvalidReference(tok *IdToken, variable string) {
	p.Report(tok.Loc, DiagDefvalInvalidReference, "invalid default value %s for %s", tok.ID, variable)
}

func (p *Problems) bitFieldNotFound(tok *IdToken) {
	p.Report(tok.Loc, DiagBitFieldNotFound, "cannot find bit field %s", tok.ID)
}

func (p *Problems) enumConstantNotFound(tok *IdToken) {
	p.Report(tok.Loc, DiagEnumConstantNotFound, "cannot find enum constant %s", tok.ID)
}
