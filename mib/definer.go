package mib

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Definer injects symbols into one module before resolution. Definers are
// how the standard SMI modules become available without parsed sources.
type Definer interface {
	// ModuleID names the module the definer fills; it is created when no
	// loaded module has that id.
	ModuleID() string
	// DefineSymbols adds symbols to mod. Implementations add only ids that
	// mod does not define yet.
	DefineSymbols(mod *Module)
}

type funcDefiner struct {
	moduleID string
	fn       func(*SymbolDefiner)
}

func (f funcDefiner) ModuleID() string { return f.moduleID }

func (f funcDefiner) DefineSymbols(mod *Module) {
	f.fn(&SymbolDefiner{mod: mod})
}

// NewDefiner returns a Definer for moduleID that calls fn with a toolkit
// bound to the module.
func NewDefiner(moduleID string, fn func(*SymbolDefiner)) Definer {
	return funcDefiner{moduleID: moduleID, fn: fn}
}

// SymbolDefiner adds synthetic symbols to a module. Every Add method skips
// ids the module already defines and returns nil in that case.
type SymbolDefiner struct {
	mod *Module
}

// NewSymbolDefiner returns a toolkit bound to mod.
func NewSymbolDefiner(mod *Module) *SymbolDefiner {
	return &SymbolDefiner{mod: mod}
}

// Module returns the module being filled.
func (d *SymbolDefiner) Module() *Module { return d.mod }

func (d *SymbolDefiner) missing(id string) bool {
	return d.mod.IsMissing(id)
}

// AddMacro defines a MACRO.
func (d *SymbolDefiner) AddMacro(id string) *Macro {
	if !d.missing(id) {
		return nil
	}
	m := d.mod.NewMacro(NewIdToken(Synthetic, id))
	d.mod.AddSymbol(m)
	return m
}

// AddOid defines an OID value. Each arc is written "name", "name(n)" or
// "n", as in an SMI value expression: AddOid("org", "iso", "3").
func (d *SymbolDefiner) AddOid(id string, arcs ...string) *OidValue {
	if !d.missing(id) {
		return nil
	}
	if len(arcs) == 0 {
		panic(fmt.Sprintf("mib: OID value %s without arcs", id))
	}
	var last *OidComponent
	for _, arc := range arcs {
		name, value, hasValue, err := ParseArcSpec(arc)
		if err != nil {
			panic(fmt.Sprintf("mib: OID value %s: %v", id, err))
		}
		var idTok *IdToken
		var valTok *IntToken
		if name != "" {
			idTok = NewIdToken(Synthetic, name)
		}
		if hasValue {
			valTok = NewIntToken(Synthetic, value)
		}
		last = NewOidComponent(last, idTok, valTok)
	}
	v := d.mod.NewOidValue(NewIdToken(Synthetic, id), last)
	d.mod.AddSymbol(v)
	return v
}

// AddType defines a type that derives from the builtin of prim
// (INTEGER, OCTET STRING, OBJECT IDENTIFIER or BITS).
func (d *SymbolDefiner) AddType(id string, prim PrimitiveType) *Type {
	if !d.missing(id) {
		return nil
	}
	t := d.mod.NewType(NewIdToken(Synthetic, id))
	t.base = d.builtin(prim)
	d.mod.AddSymbol(t)
	return t
}

// AddApplicationType defines an [APPLICATION tag] type classified as prim,
// derived from the builtin of base. A non-nil size or value range is
// attached as the corresponding constraint.
func (d *SymbolDefiner) AddApplicationType(id string, tag int, prim, base PrimitiveType, sizes, ranges []Range) *Type {
	if !d.missing(id) {
		return nil
	}
	t := d.mod.NewType(NewIdToken(Synthetic, id))
	t.appTag = tag
	t.primitive = prim
	t.base = d.builtin(base)
	t.sizes = sizes
	t.ranges = ranges
	d.mod.AddSymbol(t)
	return t
}

// AddChoiceType defines a CHOICE type. Its alternatives are not modelled, so
// the type has no classification.
func (d *SymbolDefiner) AddChoiceType(id string) *Type {
	if !d.missing(id) {
		return nil
	}
	t := d.mod.NewType(NewIdToken(Synthetic, id))
	t.baseResolved = true
	d.mod.AddSymbol(t)
	return t
}

// AddInteger32Type defines INTEGER (-2147483648..2147483647).
func (d *SymbolDefiner) AddInteger32Type(id string) *Type {
	if !d.missing(id) {
		return nil
	}
	t := d.mod.NewType(NewIdToken(Synthetic, id))
	t.base = d.builtin(PrimitiveInteger)
	t.ranges = []Range{NewRange(-2147483648, 2147483647)}
	d.mod.AddSymbol(t)
	return t
}

func (d *SymbolDefiner) builtin(prim PrimitiveType) *Type {
	b := d.mod.mib.Builtin(prim)
	if b == nil {
		panic(fmt.Sprintf("mib: no builtin type for %s", prim))
	}
	return b
}

var errEmptyArc = errors.New("empty OID arc")

// ParseArcSpec splits an OID arc written as "name", "name(n)" or "n".
func ParseArcSpec(s string) (name string, value uint32, hasValue bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", 0, false, errEmptyArc
	}
	if s[0] >= '0' && s[0] <= '9' {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return "", 0, false, fmt.Errorf("invalid OID arc %q: %w", s, err)
		}
		return "", uint32(v), true, nil
	}
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return s, 0, false, nil
	}
	if !strings.HasSuffix(s, ")") || open == 0 {
		return "", 0, false, fmt.Errorf("invalid OID arc %q", s)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(s[open+1:len(s)-1]), 10, 32)
	if err != nil {
		return "", 0, false, fmt.Errorf("invalid OID arc %q: %w", s, err)
	}
	return strings.TrimSpace(s[:open]), uint32(v), true, nil
}
