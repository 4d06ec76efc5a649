package mib

import "log/slog"

// resolveThis returns the concrete type that t stands for. Concrete types
// resolve their base and return themselves. References look up the named
// type; constraints written on the reference are merged onto parent when
// one is given, otherwise they wrap the found type in a new anonymous type.
// An unresolvable reference returns itself.
func (t *Type) resolveThis(p *Problems, parent *Type) *Type {
	if !t.ref {
		t.resolveReferences(p)
		return t
	}

	found := t.lookupReferenced(p)
	if found == nil {
		return t
	}
	if !t.hasConstraints() {
		return found
	}

	enums, bits := t.enums, t.bits
	if len(t.namedNumbers) > 0 {
		found.resolveBase(p)
		if found.PrimitiveType() == PrimitiveBits {
			bits = t.namedNumbers
		} else {
			enums = t.namedNumbers
		}
	}

	target := parent
	if target == nil {
		target = t.module.NewType(nil)
		target.base = found
		target.baseResolved = true
	}
	if len(enums) > 0 {
		target.enums = enums
	}
	if len(bits) > 0 {
		target.bits = bits
	}
	if len(t.ranges) > 0 {
		target.ranges = t.ranges
	}
	if len(t.sizes) > 0 {
		target.sizes = t.sizes
	}
	if parent != nil {
		return found
	}
	return target
}

func (t *Type) lookupReferenced(p *Problems) *Type {
	scope := t.module
	if t.refModule != nil {
		scope = t.module.mib.resolveModule(t.refModule, p)
		if scope == nil {
			return nil
		}
	}
	found, _ := resolveAs[*Type](scope, t.idToken, "type", p)
	if found == t {
		return nil
	}
	return found
}

// resolveBase resolves the base link once. A base chain that leads back to
// t is reported and cut at t.
func (t *Type) resolveBase(p *Problems) {
	if t.baseResolved {
		return
	}
	t.baseResolved = true
	if t.base == nil {
		return
	}
	t.base = t.base.resolveThis(p, t)
	if t.base != nil && t.base.derivesFrom(t) {
		tok := t.idToken
		if tok == nil {
			tok = NewIdToken(t.Location(), "<anonymous>")
		}
		p.typeCycle(tok)
		t.module.mib.log.Log(slog.LevelDebug, "cut cyclic type derivation",
			slog.String("module", t.module.ID()),
			slog.String("type", tok.ID))
		t.base = nil
	}
}

// derivesFrom reports whether target appears on t's base chain, t included.
func (t *Type) derivesFrom(target *Type) bool {
	var hit bool
	t.walkChain(func(cur *Type) bool {
		hit = cur == target
		return !hit
	})
	return hit
}

func (t *Type) resolveReferences(p *Problems) {
	if t.refsResolved {
		return
	}
	t.refsResolved = true
	t.resolveBase(p)
	if t.elementToken != nil {
		t.element, _ = resolveAs[*Type](t.module, t.elementToken, "type", p)
	}
	for _, f := range t.fields {
		f.resolve(t.module, p)
	}
}
