package mib

import (
	"fmt"
	"log/slog"
	"slices"
)

// Module is a named container of symbols.
type Module struct {
	idToken *IdToken
	mib     *Mib
	imports []*Imports
	symbols []Symbol

	// byID is the module's own identifier mapping, filled as symbols are
	// added so definers and lookups work before the tables phase.
	byID map[string]Symbol

	v1Features int
	v2Features int
	version    Version
	versionSet bool

	userData map[any]any

	symbolTables
}

// ID returns the module identifier (e.g. "IF-MIB").
func (m *Module) ID() string {
	if m == nil || m.idToken == nil {
		return ""
	}
	return m.idToken.ID
}

// IDToken returns the module identifier token.
func (m *Module) IDToken() *IdToken { return m.idToken }

// Mib returns the schema root owning this module.
func (m *Module) Mib() *Mib { return m.mib }

// UserData is a bag for consumers of the resolved model.
func (m *Module) UserData() map[any]any {
	if m.userData == nil {
		m.userData = make(map[any]any)
	}
	return m.userData
}

// Imports returns the IMPORTS declarations in declaration order.
func (m *Module) Imports() []*Imports { return slices.Clone(m.imports) }

// SymbolList returns the module's symbols in declaration order.
func (m *Module) SymbolList() []Symbol { return slices.Clone(m.symbols) }

// AddSymbol appends a symbol created by one of the module constructors.
// The first symbol with a given id wins; later ones are reported as
// duplicates when the tables are filled.
func (m *Module) AddSymbol(s Symbol) {
	if s.Module() != m {
		panic(fmt.Sprintf("mib: symbol %s belongs to module %s, not %s", s.ID(), s.Module().ID(), m.ID()))
	}
	mustID(s.Kind(), s.IDToken())
	m.symbols = append(m.symbols, s)
	if _, exists := m.byID[s.ID()]; exists {
		return
	}
	if m.byID == nil {
		m.byID = make(map[string]Symbol)
	}
	m.byID[s.ID()] = s
}

// FindSymbol returns the module's own symbol with the given id, or nil.
// Imports are not consulted.
func (m *Module) FindSymbol(id string) Symbol {
	return m.byID[id]
}

// IsMissing reports whether the module does not define id itself.
func (m *Module) IsMissing(id string) bool {
	_, ok := m.byID[id]
	return !ok
}

// AddImports declares an IMPORTS clause for symbols from another module.
func (m *Module) AddImports(from *IdToken, symbols []*IdToken) *Imports {
	imp := &Imports{
		module:       m,
		moduleToken:  from,
		symbolTokens: slices.Clone(symbols),
	}
	m.imports = append(m.imports, imp)
	return imp
}

// IncV1Features records a SMIv1-only construct seen while parsing.
func (m *Module) IncV1Features() {
	m.v1Features++
	m.versionSet = false
}

// IncV2Features records a SMIv2-only construct seen while parsing.
func (m *Module) IncV2Features() {
	m.v2Features++
	m.versionSet = false
}

// FeatureCounts returns the SMIv1 and SMIv2 feature counters.
func (m *Module) FeatureCounts() (v1, v2 int) {
	return m.v1Features, m.v2Features
}

// Version infers the SMI version from the feature counters.
// Equal counters give VersionUnknown, which is logged but not reported.
func (m *Module) Version() Version {
	if m.versionSet {
		return m.version
	}
	switch {
	case m.v1Features > m.v2Features:
		m.version = VersionV1
	case m.v2Features > m.v1Features:
		m.version = VersionV2
	default:
		m.version = VersionUnknown
		if m.mib != nil {
			m.mib.log.Log(slog.LevelDebug, "indeterminate module version",
				slog.String("module", m.ID()),
				slog.Int("v1", m.v1Features),
				slog.Int("v2", m.v2Features))
		}
	}
	m.versionSet = true
	return m.version
}

// importsModule reports whether any IMPORTS clause names mod, directly or
// through a known alias.
func (m *Module) importsModule(mod *Module) bool {
	for _, imp := range m.imports {
		if imp.imported != nil {
			if imp.imported == mod {
				return true
			}
			continue
		}
		id := imp.moduleToken.ID
		if alias, ok := importAliases[id]; ok {
			id = alias
		}
		if id == mod.ID() {
			return true
		}
	}
	return false
}

// fillTables builds the module's per-kind tables and forwards each symbol
// to the root tables. Duplicate ids are reported and left out.
func (m *Module) fillTables(p *Problems) {
	m.symbolTables = newSymbolTables(m.mib)
	for _, s := range m.symbols {
		if first := m.byID[s.ID()]; first != s {
			p.symbolDuplicate(s, first)
			continue
		}
		m.fill(s)
		m.mib.fill(s)
	}
}

func (m *Module) String() string {
	return m.ID()
}
