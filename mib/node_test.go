package mib

import (
	"slices"
	"testing"
)

// buildTree constructs:
//
//	root
//	  ├── 1
//	  │   ├── 3
//	  │   └── 1
//	  └── 5
//	      └── 2
func buildTree() *OidNode {
	root := newRootNode()
	a := root.newChild(1)
	b := root.newChild(5)
	a.newChild(3)
	a.newChild(1)
	b.newChild(2)
	return root
}

func TestChildrenSortOrder(t *testing.T) {
	root := buildTree()

	children := root.Children()
	if len(children) != 2 {
		t.Fatalf("got %d children, want 2", len(children))
	}
	if children[0].Arc() != 1 || children[1].Arc() != 5 {
		t.Errorf("got [%d, %d], want [1, 5]", children[0].Arc(), children[1].Arc())
	}

	a := children[0].Children()
	if a[0].Arc() != 1 || a[1].Arc() != 3 {
		t.Errorf("got [%d, %d], want [1, 3]", a[0].Arc(), a[1].Arc())
	}
}

func TestChildrenCacheInvalidated(t *testing.T) {
	root := buildTree()
	_ = root.Children()
	root.newChild(2)

	var arcs []uint32
	for _, c := range root.Children() {
		arcs = append(arcs, c.Arc())
	}
	if !slices.Equal(arcs, []uint32{1, 2, 5}) {
		t.Errorf("got %v, want [1 2 5]", arcs)
	}
}

func TestSubtreeOrder(t *testing.T) {
	root := buildTree()

	var oids []string
	for nd := range root.Subtree() {
		oids = append(oids, nd.OidString())
	}
	want := []string{"", "1", "1.1", "1.3", "5", "5.2"}
	if !slices.Equal(oids, want) {
		t.Errorf("got %v, want %v", oids, want)
	}
}

func TestSubtreeEarlyStop(t *testing.T) {
	root := buildTree()
	var n int
	for range root.Subtree() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("visited %d nodes, want 2", n)
	}
}

func TestChildParentInvariant(t *testing.T) {
	root := buildTree()
	for nd := range root.Subtree() {
		if nd.IsRoot() {
			continue
		}
		if got := nd.Parent().Child(nd.Arc()); got != nd {
			t.Errorf("parent of %s does not find it at arc %d", nd, nd.Arc())
		}
	}
}

func TestNewChildDuplicatePanics(t *testing.T) {
	root := buildTree()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for occupied arc")
		}
	}()
	root.newChild(5)
}

func TestChildOrCreateReuses(t *testing.T) {
	root := buildTree()
	existing := root.Child(5)
	if got := root.childOrCreate(5); got != existing {
		t.Error("childOrCreate should return the existing child")
	}
	created := root.childOrCreate(7)
	if root.Child(7) != created || created.Parent() != root {
		t.Error("childOrCreate should register the new child")
	}
}

func TestOidMemoized(t *testing.T) {
	root := buildTree()
	nd := root.Child(5).Child(2)

	if got := nd.Oid(); !got.Equal(Oid{5, 2}) {
		t.Errorf("Oid() = %v, want 5.2", got)
	}
	// The returned path is a copy.
	o := nd.Oid()
	o[0] = 99
	if nd.OidString() != "5.2" {
		t.Errorf("OidString() = %q after mutating a copy", nd.OidString())
	}
	if root.Oid() != nil {
		t.Errorf("root Oid() = %v, want nil", root.Oid())
	}
}

func TestWalk(t *testing.T) {
	root := buildTree()

	tests := []struct {
		oid      Oid
		wantOid  string
		wantFull bool
	}{
		{Oid{1, 3}, "1.3", true},
		{Oid{5, 2, 9}, "5.2", false},
		{Oid{7}, "", false},
		{Oid{}, "", true},
	}
	for _, tt := range tests {
		nd, full := root.walk(tt.oid)
		if nd.OidString() != tt.wantOid || full != tt.wantFull {
			t.Errorf("walk(%v) = (%s, %v), want (%s, %v)", tt.oid, nd.OidString(), full, tt.wantOid, tt.wantFull)
		}
	}
}

func TestSingleValue(t *testing.T) {
	m := New()
	a := newModule(t, m, "A")
	b := newModule(t, m, "B")
	nd := m.root.childOrCreate(1)

	va := a.NewOidValue(tok("x"), nil)
	vb := b.NewOidValue(tok("y"), nil)
	nd.addValue(va)
	nd.addValue(vb)

	if got := nd.SingleValue(a); got != va {
		t.Errorf("SingleValue(A) = %v, want x", got)
	}
	if nd.Name() != "x" {
		t.Errorf("Name() = %q, want x", nd.Name())
	}

	nd.addValue(a.NewOidValue(tok("z"), nil))
	if got := nd.SingleValue(a); got != nil {
		t.Errorf("SingleValue(A) with two claimants = %v, want nil", got)
	}
	if got := len(nd.Values()); got != 3 {
		t.Errorf("len(Values()) = %d, want 3", got)
	}
}
