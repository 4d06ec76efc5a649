package mib

import (
	"log/slog"

	"github.com/golangsnmp/mibxref/internal/types"
)

// XRefOptions configures CrossReference.
type XRefOptions struct {
	// Logger receives phase and per-item logs. Nil disables logging.
	Logger *slog.Logger
	// Definers inject standard symbols before the tables are built, in order.
	Definers []Definer
}

// CrossReference resolves every reference in the schema: it injects the
// definers' symbols, builds the symbol tables, synthesizes missing OID roots,
// binds imports, resolves symbol references and OID nodes, infers the row
// hierarchy and resolves default values.
//
// All phases run regardless of problems found in earlier ones. The returned
// stream is the same as Problems().
func (m *Mib) CrossReference(opts XRefOptions) *Problems {
	m.log = types.Logger{L: types.Component(opts.Logger, "xref")}
	p := m.problems

	m.phase("inject")
	for _, d := range opts.Definers {
		mod := m.findOrCreateModule(d.ModuleID())
		d.DefineSymbols(mod)
		if m.log.TraceEnabled() {
			m.log.Trace("definer applied",
				slog.String("module", mod.ID()),
				slog.Int("symbols", len(mod.symbols)))
		}
	}

	m.phase("tables")
	m.symbolTables = newSymbolTables(m)
	for _, mod := range m.modules {
		mod.fillTables(p)
	}
	m.log.Log(slog.LevelDebug, "phase complete", slog.String("phase", "tables"),
		slog.Int("modules", len(m.modules)),
		slog.Int("symbols", m.symbols.Len()))

	m.phase("roots")
	m.synthesizeRoots()

	m.phase("imports")
	for _, mod := range m.modules {
		for _, imp := range mod.imports {
			imp.resolve(p)
		}
	}

	m.phase("references")
	for _, mod := range m.modules {
		for _, s := range mod.symbols {
			if m.log.TraceEnabled() {
				m.log.Trace("resolving references",
					slog.String("module", mod.ID()),
					slog.String("symbol", s.ID()))
			}
			s.resolveReferences(p)
		}
	}

	m.phase("oids")
	for _, mod := range m.modules {
		for _, v := range mod.oidValues.all {
			resolveOid(v, p)
		}
	}
	var nodes int
	for node := range m.root.Subtree() {
		node.determineFullOid()
		nodes++
	}
	m.log.Log(slog.LevelDebug, "phase complete", slog.String("phase", "oids"),
		slog.Int("nodes", nodes))

	m.phase("derived")
	for _, mod := range m.modules {
		mod.fillDerived()
	}
	m.fillDerived()
	m.inferRowHierarchy()

	m.phase("defvals")
	for _, mod := range m.modules {
		for _, v := range mod.variables.all {
			if v.defaultValue != nil {
				v.defaultValue.resolve(p)
			}
		}
	}

	m.log.Log(slog.LevelInfo, "cross-reference complete",
		slog.Int("modules", len(m.modules)),
		slog.Int("problems", p.Count()),
		slog.Bool("ok", p.OK()))
	return p
}

func (m *Mib) phase(name string) {
	m.log.Log(slog.LevelDebug, "starting phase", slog.String("phase", name))
}

// rootArcs are the top-level OID arcs of the registration tree.
var rootArcs = []struct {
	id  string
	arc uint32
}{
	{"itu", 0},
	{"iso", 1},
	{"joint-iso-itu-t", 2},
}

// synthesizeRoots creates the top-level OID values no loaded module
// defines. They belong to the internal module.
func (m *Mib) synthesizeRoots() {
	for _, r := range rootArcs {
		if len(m.symbols.byID[r.id]) > 0 {
			continue
		}
		mod := m.internalModule()
		node := m.root.childOrCreate(r.arc)
		v := mod.NewOidValue(NewIdToken(Synthetic, r.id), nil)
		v.node = node
		node.addValue(v)
		mod.AddSymbol(v)
		mod.fill(v)
		m.fill(v)
		m.log.Trace("synthesized root", slog.String("id", r.id))
	}
}
