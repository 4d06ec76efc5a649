package mib

import "strconv"

// OidComponent is one `id(value)` element of an OID value expression. The
// components of one expression form a chain; the owner keeps the last one.
type OidComponent struct {
	parent     *OidComponent
	child      *OidComponent
	idToken    *IdToken
	valueToken *IntToken

	node          *OidNode
	resolved      bool
	parentMissing bool
}

// NewOidComponent appends a component to the chain ending at parent (nil for
// the first element). Either id or value may be nil, not both.
func NewOidComponent(parent *OidComponent, id *IdToken, value *IntToken) *OidComponent {
	if id == nil && value == nil {
		panic("mib: OID component without identifier and value")
	}
	c := &OidComponent{parent: parent, idToken: id, valueToken: value}
	if parent != nil {
		parent.child = c
	}
	return c
}

// Parent returns the preceding component, or nil for the first.
func (c *OidComponent) Parent() *OidComponent { return c.parent }

// Child returns the following component, or nil for the last.
func (c *OidComponent) Child() *OidComponent { return c.child }

// IDToken returns the symbolic part, or nil.
func (c *OidComponent) IDToken() *IdToken { return c.idToken }

// ValueToken returns the numeric part, or nil.
func (c *OidComponent) ValueToken() *IntToken { return c.valueToken }

// IsFirst reports whether c starts its chain.
func (c *OidComponent) IsFirst() bool { return c.parent == nil }

// IsLast reports whether c ends its chain.
func (c *OidComponent) IsLast() bool { return c.child == nil }

// Node returns the resolved node, or nil before or after failed resolution.
func (c *OidComponent) Node() *OidNode { return c.node }

// Location returns where the component was written.
func (c *OidComponent) Location() Location {
	if c.idToken != nil {
		return c.idToken.Loc
	}
	return c.valueToken.Loc
}

func (c *OidComponent) label() string {
	switch {
	case c.idToken != nil && c.valueToken != nil:
		return c.idToken.ID + "(" + strconv.FormatUint(uint64(c.valueToken.Value), 10) + ")"
	case c.idToken != nil:
		return c.idToken.ID
	default:
		return strconv.FormatUint(uint64(c.valueToken.Value), 10)
	}
}

// resolveNode resolves the chain up to c into a tree node. Ancestors are
// resolved first; the outcome is cached whether or not it succeeded. A
// missing parent is reported by its first descendant only.
func (c *OidComponent) resolveNode(mod *Module, p *Problems) *OidNode {
	if c.resolved {
		return c.node
	}
	var parent *OidNode
	if c.parent != nil {
		parent = c.parent.resolveNode(mod, p)
		if parent == nil {
			if !c.parent.parentMissing {
				p.oidParentMissing(c.Location(), c.label())
			}
			c.parentMissing = true
			c.resolved = true
			return nil
		}
	}
	node, reported := c.doResolve(mod, parent, p)
	if node == nil && !reported {
		switch {
		case !c.IsLast():
			p.oidNonTerminalUnresolved(c.Location(), c.label())
		case c.valueToken == nil:
			p.oidValueMissing(c.Location(), c.label())
		}
	}
	c.node = node
	c.resolved = true
	return c.node
}

// doResolve finds or creates the node for c below parent. reported is true
// when a failure was already reported.
func (c *OidComponent) doResolve(mod *Module, parent *OidNode, p *Problems) (node *OidNode, reported bool) {
	if c.idToken != nil && !c.IsLast() {
		if sym := mod.lookup(c.idToken, isOidSymbol, nil); sym != nil {
			ov, ok := sym.(OidSymbol)
			if !ok {
				p.symbolWrongKind(c.idToken, "OID value", sym)
				return nil, true
			}
			node := resolveOid(ov, p)
			if node == nil {
				return nil, true
			}
			if c.valueToken != nil && node.arc != c.valueToken.Value {
				p.oidValueMismatch(c.valueToken.Loc, c.idToken.ID, c.valueToken.Value, node.arc)
			}
			return node, false
		}
		if parent != nil && c.valueToken != nil {
			return parent.childOrCreate(c.valueToken.Value), false
		}
		return nil, false
	}
	switch {
	case c.valueToken == nil:
		return nil, false
	case c.IsFirst():
		return mod.mib.root.childOrCreate(c.valueToken.Value), false
	case parent != nil:
		return parent.childOrCreate(c.valueToken.Value), false
	}
	return nil, false
}

func isOidSymbol(s Symbol) bool {
	_, ok := s.(OidSymbol)
	return ok
}

// resolveOid resolves the node of an OID value and registers the value as a
// claimant. A value whose chain leads back to itself is reported and left
// unresolved.
func resolveOid(s OidSymbol, p *Problems) *OidNode {
	v := s.OidBase()
	if v.node != nil || v.lastComponent == nil {
		return v.node
	}
	if v.resolving {
		p.oidCycle(v.idToken)
		return nil
	}
	v.resolving = true
	node := v.lastComponent.resolveNode(v.module, p)
	v.resolving = false
	if node != nil {
		v.node = node
		node.addValue(s)
	}
	return node
}
