package mib

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"
)

// OidNode is a point in the OID tree. Each node has a numeric arc relative
// to its parent; the path from the root determines its OID. Any number of
// OID values may claim the same node, also from different modules.
type OidNode struct {
	arc         uint32
	parent      *OidNode
	children    map[uint32]*OidNode
	sortedCache []*OidNode // lazily computed sorted children; nil = invalidated
	values      []OidSymbol

	oid    Oid
	oidStr string
	oidSet bool
}

func newRootNode() *OidNode {
	return &OidNode{}
}

// Arc returns the numeric arc relative to the parent. The root has none
// and reports 0.
func (n *OidNode) Arc() uint32 { return n.arc }

// IsRoot reports whether this is the unnamed root of the OID tree.
func (n *OidNode) IsRoot() bool { return n.parent == nil }

// Parent returns the parent node, or nil for the root.
func (n *OidNode) Parent() *OidNode { return n.parent }

// Child returns the child at arc, or nil.
func (n *OidNode) Child(arc uint32) *OidNode {
	return n.children[arc] // nil map yields nil
}

// Children returns the direct children sorted by arc.
func (n *OidNode) Children() []*OidNode {
	return slices.Clone(n.sortedChildren())
}

func (n *OidNode) sortedChildren() []*OidNode {
	if len(n.children) == 0 {
		return nil
	}
	if n.sortedCache == nil {
		n.sortedCache = slices.SortedFunc(maps.Values(n.children), func(a, b *OidNode) int {
			return cmp.Compare(a.arc, b.arc)
		})
	}
	return n.sortedCache
}

// Subtree returns an iterator over this node and all its descendants,
// depth-first, children in arc order.
func (n *OidNode) Subtree() iter.Seq[*OidNode] {
	return func(yield func(*OidNode) bool) {
		n.yieldAll(yield)
	}
}

func (n *OidNode) yieldAll(yield func(*OidNode) bool) bool {
	if !yield(n) {
		return false
	}
	for _, child := range n.sortedChildren() {
		if !child.yieldAll(yield) {
			return false
		}
	}
	return true
}

// Values returns the OID values claiming this node in claim order.
func (n *OidNode) Values() []OidSymbol {
	return slices.Clone(n.values)
}

// SingleValue returns the only claimant defined in mod, or nil when mod has
// none or several.
func (n *OidNode) SingleValue(mod *Module) OidSymbol {
	var found OidSymbol
	for _, v := range n.values {
		if v.Module() != mod {
			continue
		}
		if found != nil {
			return nil
		}
		found = v
	}
	return found
}

// Name returns the id of the first claimant, or "".
func (n *OidNode) Name() string {
	if len(n.values) == 0 {
		return ""
	}
	return n.values[0].ID()
}

// Oid returns the full path from the root, or nil for the root. The path is
// computed once from the parent's path.
func (n *OidNode) Oid() Oid {
	n.determineFullOid()
	return slices.Clone(n.oid)
}

// OidString returns the dotted form of Oid.
func (n *OidNode) OidString() string {
	n.determineFullOid()
	return n.oidStr
}

func (n *OidNode) determineFullOid() {
	if n.oidSet || n.parent == nil {
		return
	}
	n.parent.determineFullOid()
	n.oid = append(slices.Clone(n.parent.oid), n.arc)
	n.oidStr = n.oid.String()
	n.oidSet = true
}

// walk follows oid from n, returning the last matched node and whether the
// whole OID matched.
func (n *OidNode) walk(oid Oid) (matched *OidNode, full bool) {
	current := n
	for _, arc := range oid {
		child := current.children[arc]
		if child == nil {
			return current, false
		}
		current = child
	}
	return current, true
}

func (n *OidNode) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.parent == nil {
		return "(root)"
	}
	if name := n.Name(); name != "" {
		return name + " (" + n.OidString() + ")"
	}
	return "(" + n.OidString() + ")"
}

// newChild registers a child at arc. The key must be free.
func (n *OidNode) newChild(arc uint32) *OidNode {
	if _, exists := n.children[arc]; exists {
		panic(fmt.Sprintf("mib: duplicate OID child %d under %s", arc, n))
	}
	if n.children == nil {
		n.children = make(map[uint32]*OidNode)
	}
	child := &OidNode{arc: arc, parent: n}
	n.children[arc] = child
	n.sortedCache = nil
	return child
}

// childOrCreate returns the child at arc, creating it if absent.
func (n *OidNode) childOrCreate(arc uint32) *OidNode {
	if child := n.children[arc]; child != nil {
		return child
	}
	return n.newChild(arc)
}

func (n *OidNode) addValue(v OidSymbol) {
	n.values = append(n.values, v)
}
