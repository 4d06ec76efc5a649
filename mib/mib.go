package mib

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/golangsnmp/mibxref/internal/types"
)

// InternalModuleID names the module that owns synthesized OID roots and the
// builtin ASN.1 types.
const InternalModuleID = "MIBXREF-INTERNAL"

// ErrDuplicateModule is returned when a module id is registered twice.
var ErrDuplicateModule = errors.New("duplicate module")

// Mib is the schema root: it owns all modules, the OID tree and the
// cross-module symbol tables.
type Mib struct {
	modules     []*Module
	moduleByID  map[string]*Module
	root        *OidNode
	internal    *Module
	internalReg bool
	builtins    map[PrimitiveType]*Type

	problems *Problems
	log      types.Logger

	symbolTables
}

// New returns an empty schema root using DefaultConfig for diagnostics.
func New() *Mib {
	m := &Mib{
		moduleByID: make(map[string]*Module),
		root:       newRootNode(),
		problems:   newProblems(DefaultConfig()),
	}
	m.symbolTables = newSymbolTables(m)
	m.internal = &Module{idToken: NewIdToken(Synthetic, InternalModuleID), mib: m}
	m.builtins = map[PrimitiveType]*Type{
		PrimitiveInteger:          m.newBuiltin("INTEGER", PrimitiveInteger),
		PrimitiveOctetString:      m.newBuiltin("OCTET STRING", PrimitiveOctetString),
		PrimitiveObjectIdentifier: m.newBuiltin("OBJECT IDENTIFIER", PrimitiveObjectIdentifier),
		PrimitiveBits:             m.newBuiltin("BITS", PrimitiveBits),
	}
	return m
}

func (m *Mib) newBuiltin(id string, prim PrimitiveType) *Type {
	t := m.internal.NewType(NewIdToken(Synthetic, id))
	t.primitive = prim
	t.baseResolved = true
	return t
}

// Builtin returns the ASN.1 builtin type for INTEGER, OCTET STRING,
// OBJECT IDENTIFIER or BITS, or nil for any other classification.
func (m *Mib) Builtin(prim PrimitiveType) *Type {
	return m.builtins[prim]
}

// SetDiagnosticConfig replaces the filtering and failure policy applied to
// problems reported from now on.
func (m *Mib) SetDiagnosticConfig(cfg DiagnosticConfig) {
	m.problems.config = cfg
}

// Problems returns the problem stream collected so far.
func (m *Mib) Problems() *Problems { return m.problems }

// NewModule creates and registers a module. A second module with the same id
// is rejected with ErrDuplicateModule.
func (m *Mib) NewModule(id *IdToken) (*Module, error) {
	if _, exists := m.moduleByID[id.ID]; exists || id.ID == InternalModuleID {
		m.problems.moduleDuplicate(id)
		return nil, fmt.Errorf("%w: %s", ErrDuplicateModule, id.ID)
	}
	mod := &Module{idToken: id, mib: m}
	m.register(mod)
	return mod, nil
}

func (m *Mib) register(mod *Module) {
	m.modules = append(m.modules, mod)
	m.moduleByID[mod.ID()] = mod
}

// findOrCreateModule returns the module with the given id, creating a
// synthetic one when absent.
func (m *Mib) findOrCreateModule(id string) *Module {
	if mod := m.moduleByID[id]; mod != nil {
		return mod
	}
	mod := &Module{idToken: NewIdToken(Synthetic, id), mib: m}
	m.register(mod)
	return mod
}

// internalModule returns the internal module, registering it on first use.
func (m *Mib) internalModule() *Module {
	if !m.internalReg {
		m.register(m.internal)
		m.internalReg = true
	}
	return m.internal
}

// FindModule returns the module with the given id, or nil.
func (m *Mib) FindModule(id string) *Module {
	return m.moduleByID[id]
}

// Modules returns all modules in registration order.
func (m *Mib) Modules() []*Module {
	return slices.Clone(m.modules)
}

// FindModules returns the modules whose inferred version is v or unknown.
func (m *Mib) FindModules(v Version) []*Module {
	var out []*Module
	for _, mod := range m.modules {
		if mv := mod.Version(); mv == VersionUnknown || mv == v {
			out = append(out, mod)
		}
	}
	return out
}

// RootNode returns the unnamed root of the OID tree.
func (m *Mib) RootNode() *OidNode { return m.root }

// FindByOid returns the node at exactly oid, or nil if any arc is missing.
func (m *Mib) FindByOid(oid Oid) *OidNode {
	nd, full := m.root.walk(oid)
	if !full {
		return nil
	}
	return nd
}

// FindByOidPrefix returns the deepest node matching a prefix of oid. When no
// arc matches the root is returned. full reports whether all of oid matched.
func (m *Mib) FindByOidPrefix(oid Oid) (node *OidNode, full bool) {
	return m.root.walk(oid)
}

// FindByOidString parses a dotted OID and returns the node at exactly that
// path.
func (m *Mib) FindByOidString(s string) (*OidNode, error) {
	oid, err := ParseOID(s)
	if err != nil {
		return nil, err
	}
	return m.FindByOid(oid), nil
}

// importAliases maps module names found in IMPORTS clauses of real-world
// MIBs to the module that actually provides the symbols.
var importAliases = map[string]string{
	"SNMPv2-SMI-v1":  "SNMPv2-SMI",
	"SNMPv2-TC-v1":   "SNMPv2-TC",
	"RFC1065-SMI":    "RFC1155-SMI",
	"RFC1213-MIB-II": "RFC1213-MIB",
}

// resolveModule finds the module named by tok, reporting module-not-found.
func (m *Mib) resolveModule(tok *IdToken, p *Problems) *Module {
	if mod := m.moduleByID[tok.ID]; mod != nil {
		return mod
	}
	if alias, ok := importAliases[tok.ID]; ok {
		if mod := m.moduleByID[alias]; mod != nil {
			m.log.Trace("module alias",
				slog.String("from", tok.ID), slog.String("to", alias))
			return mod
		}
	}
	p.moduleNotFound(tok)
	return nil
}
