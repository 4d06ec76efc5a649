package mib

import (
	"errors"
	"fmt"
	"slices"
)

// ErrModuleNotFound is returned by module-scoped lookups naming an unknown module.
var ErrModuleNotFound = errors.New("module not found")

// Symbol is a named top-level definition within a module.
//
// The set of implementations is closed: *Macro, *Type, *OidValue, *OidMacro,
// *ObjectType, *Variable, *Row, *Table, *NotificationType and *TrapType.
type Symbol interface {
	Kind() Kind
	ID() string
	IDToken() *IdToken
	Module() *Module
	Location() Location
	// UserData is a bag for consumers of the resolved model.
	UserData() map[any]any

	resolveReferences(p *Problems)
}

// OidSymbol is a symbol registered in the OID tree.
type OidSymbol interface {
	Symbol
	OidBase() *OidValue
	Node() *OidNode
}

// ObjectTypeSymbol is an OBJECT-TYPE variant.
type ObjectTypeSymbol interface {
	OidSymbol
	ObjectBase() *ObjectType
}

type symbolBase struct {
	idToken  *IdToken
	module   *Module
	userData map[any]any
}

func (s *symbolBase) ID() string {
	if s.idToken == nil {
		return ""
	}
	return s.idToken.ID
}

func (s *symbolBase) IDToken() *IdToken { return s.idToken }

func (s *symbolBase) Module() *Module { return s.module }

func (s *symbolBase) Location() Location {
	if s.idToken != nil {
		return s.idToken.Loc
	}
	if s.module != nil && s.module.idToken != nil {
		return s.module.idToken.Loc
	}
	return Synthetic
}

func (s *symbolBase) UserData() map[any]any {
	if s.userData == nil {
		s.userData = make(map[any]any)
	}
	return s.userData
}

// mustID panics for kinds that cannot be anonymous.
func mustID(kind Kind, id *IdToken) {
	if id == nil || id.ID == "" {
		panic(fmt.Sprintf("mib: %s symbol without identifier", kind))
	}
}

// Macro is a MACRO definition such as OBJECT-TYPE.
type Macro struct {
	symbolBase
}

// NewMacro creates a macro symbol owned by m.
func (m *Module) NewMacro(id *IdToken) *Macro {
	mustID(KindMacro, id)
	return &Macro{symbolBase{idToken: id, module: m}}
}

func (*Macro) Kind() Kind { return KindMacro }

func (*Macro) resolveReferences(*Problems) {}

// SymbolMap is a multimap from identifier to symbols of one kind.
// Iteration order is insertion order.
type SymbolMap[T Symbol] struct {
	byID map[string][]T
	all  []T
	// mib answers whether a module with no entries here exists at all.
	mib *Mib
}

func (sm *SymbolMap[T]) add(s T) {
	if sm.byID == nil {
		sm.byID = make(map[string][]T)
	}
	sm.byID[s.ID()] = append(sm.byID[s.ID()], s)
	sm.all = append(sm.all, s)
}

func (sm *SymbolMap[T]) reset() {
	sm.byID = nil
	sm.all = nil
}

// Find returns the only symbol with the given id, or the zero value when
// there is none or more than one.
func (sm *SymbolMap[T]) Find(id string) T {
	var zero T
	found := sm.byID[id]
	if len(found) != 1 {
		return zero
	}
	return found[0]
}

// FindAll returns every symbol with the given id.
func (sm *SymbolMap[T]) FindAll(id string) []T {
	return slices.Clone(sm.byID[id])
}

// FindIn returns the symbol with the given id defined in the named module.
// A known module without a matching symbol yields the zero value and no
// error; ErrModuleNotFound is reserved for modules the schema lacks.
func (sm *SymbolMap[T]) FindIn(moduleID, id string) (T, error) {
	var zero T
	var moduleSeen bool
	for _, s := range sm.all {
		if s.Module().ID() == moduleID {
			moduleSeen = true
			if s.ID() == id {
				return s, nil
			}
		}
	}
	if !moduleSeen && (sm.mib == nil || sm.mib.FindModule(moduleID) == nil) {
		return zero, fmt.Errorf("%w: %s", ErrModuleNotFound, moduleID)
	}
	return zero, nil
}

// All returns every symbol in insertion order.
func (sm *SymbolMap[T]) All() []T {
	return slices.Clone(sm.all)
}

// Len returns the number of symbols.
func (sm *SymbolMap[T]) Len() int {
	return len(sm.all)
}

// symbolTables are the per-kind mappings kept both per module and at the
// schema root.
type symbolTables struct {
	symbols            SymbolMap[Symbol]
	macros             SymbolMap[*Macro]
	types              SymbolMap[*Type]
	textualConventions SymbolMap[*Type]
	oidValues          SymbolMap[OidSymbol]
	objectTypes        SymbolMap[ObjectTypeSymbol]
	variables          SymbolMap[*Variable]
	scalars            SymbolMap[*Variable]
	columns            SymbolMap[*Variable]
	rows               SymbolMap[*Row]
	tables             SymbolMap[*Table]
	notifications      SymbolMap[*NotificationType]
	traps              SymbolMap[*TrapType]
}

func newSymbolTables(m *Mib) symbolTables {
	var t symbolTables
	t.symbols.mib = m
	t.macros.mib = m
	t.types.mib = m
	t.textualConventions.mib = m
	t.oidValues.mib = m
	t.objectTypes.mib = m
	t.variables.mib = m
	t.scalars.mib = m
	t.columns.mib = m
	t.rows.mib = m
	t.tables.mib = m
	t.notifications.mib = m
	t.traps.mib = m
	return t
}

func (t *symbolTables) fill(s Symbol) {
	t.symbols.add(s)
	if o, ok := s.(OidSymbol); ok {
		t.oidValues.add(o)
	}
	if o, ok := s.(ObjectTypeSymbol); ok {
		t.objectTypes.add(o)
	}
	switch v := s.(type) {
	case *Macro:
		t.macros.add(v)
	case *Type:
		t.types.add(v)
		if v.tc != nil {
			t.textualConventions.add(v)
		}
	case *Variable:
		t.variables.add(v)
	case *Row:
		t.rows.add(v)
	case *Table:
		t.tables.add(v)
	case *NotificationType:
		t.notifications.add(v)
	case *TrapType:
		t.traps.add(v)
	}
}

// fillDerived rebuilds the column and scalar split.
func (t *symbolTables) fillDerived() {
	t.columns.reset()
	t.scalars.reset()
	for _, v := range t.variables.all {
		if v.IsColumn() {
			t.columns.add(v)
		} else {
			t.scalars.add(v)
		}
	}
}

// Symbols returns the any-kind mapping.
func (t *symbolTables) Symbols() *SymbolMap[Symbol] { return &t.symbols }

// Macros returns the macro mapping.
func (t *symbolTables) Macros() *SymbolMap[*Macro] { return &t.macros }

// Types returns the type mapping, textual conventions included.
func (t *symbolTables) Types() *SymbolMap[*Type] { return &t.types }

// TextualConventions returns the textual-convention mapping.
func (t *symbolTables) TextualConventions() *SymbolMap[*Type] { return &t.textualConventions }

// OidValues returns every symbol registered in the OID tree.
func (t *symbolTables) OidValues() *SymbolMap[OidSymbol] { return &t.oidValues }

// ObjectTypes returns the OBJECT-TYPE mapping.
func (t *symbolTables) ObjectTypes() *SymbolMap[ObjectTypeSymbol] { return &t.objectTypes }

// Variables returns the variable mapping (columns and scalars).
func (t *symbolTables) Variables() *SymbolMap[*Variable] { return &t.variables }

// Scalars returns the variables that are not table columns.
func (t *symbolTables) Scalars() *SymbolMap[*Variable] { return &t.scalars }

// Columns returns the variables that are table columns.
func (t *symbolTables) Columns() *SymbolMap[*Variable] { return &t.columns }

// Rows returns the row mapping.
func (t *symbolTables) Rows() *SymbolMap[*Row] { return &t.rows }

// Tables returns the table mapping.
func (t *symbolTables) Tables() *SymbolMap[*Table] { return &t.tables }

// Notifications returns the NOTIFICATION-TYPE mapping.
func (t *symbolTables) Notifications() *SymbolMap[*NotificationType] { return &t.notifications }

// Traps returns the TRAP-TYPE mapping.
func (t *symbolTables) Traps() *SymbolMap[*TrapType] { return &t.traps }
