package mib

import (
	"log/slog"
	"slices"
)

// Index is one INDEX entry of a row.
type Index struct {
	id      *ScopedID
	implied bool
	column  *Variable
	row     *Row
}

// NewIndex creates an INDEX entry. implied marks a variable-length last
// component written as IMPLIED.
func NewIndex(id *ScopedID, implied bool) *Index {
	return &Index{id: id, implied: implied}
}

// ID returns the column reference.
func (i *Index) ID() *ScopedID { return i.id }

// Implied reports whether the index was declared IMPLIED.
func (i *Index) Implied() bool { return i.implied }

// Column returns the resolved column, or nil.
func (i *Index) Column() *Variable { return i.column }

// Row returns the row declaring the index.
func (i *Index) Row() *Row { return i.row }

// IsColumnFromOtherTable reports whether the index column lives in a table
// other than the declaring row's. Unresolved columns report false.
func (i *Index) IsColumnFromOtherTable() bool {
	if i.column == nil || i.row == nil {
		return false
	}
	return i.row.Table() != i.column.Table()
}

// Row is an OBJECT-TYPE describing a table entry.
type Row struct {
	ObjectType
	indexes      []*Index
	augments     *ScopedID
	augmentedRow *Row

	parent   *Row
	children []*Row
}

// NewRow creates a row. Declare its INDEX with AddIndex or its AUGMENTS with
// SetAugments.
func (m *Module) NewRow(id *IdToken, last *OidComponent, status Status, typ *Type) *Row {
	return &Row{ObjectType: *m.NewObjectType(id, last, status, typ)}
}

func (*Row) Kind() Kind { return KindRow }

// AddIndex appends an INDEX entry.
func (r *Row) AddIndex(idx *Index) {
	idx.row = r
	r.indexes = append(r.indexes, idx)
}

// Indexes returns the INDEX entries in declaration order.
func (r *Row) Indexes() []*Index { return r.indexes }

// SetAugments declares the row as AUGMENTS of another row.
func (r *Row) SetAugments(id *ScopedID) { r.augments = id }

// Augments returns the AUGMENTS reference, or nil.
func (r *Row) Augments() *ScopedID { return r.augments }

// AugmentedRow returns the resolved AUGMENTS target, or nil.
func (r *Row) AugmentedRow() *Row { return r.augmentedRow }

// ParentRow returns the inferred parent row, or nil.
func (r *Row) ParentRow() *Row { return r.parent }

// ChildRows returns the rows whose inferred parent is r.
func (r *Row) ChildRows() []*Row { return slices.Clone(r.children) }

// Table returns the table the row belongs to, or nil.
func (r *Row) Table() *Table {
	if r.node == nil || r.node.parent == nil {
		return nil
	}
	table, _ := r.node.parent.SingleValue(r.module).(*Table)
	return table
}

// Columns returns the variables defined directly below the row, in arc order.
func (r *Row) Columns() []*Variable {
	if r.node == nil {
		return nil
	}
	var cols []*Variable
	for _, child := range r.node.sortedChildren() {
		if v, ok := child.SingleValue(r.module).(*Variable); ok {
			cols = append(cols, v)
		}
	}
	return cols
}

// HasSameIndexes reports whether both rows index by the same columns with
// the same IMPLIED flags, in the same order.
func (r *Row) HasSameIndexes(other *Row) bool {
	if len(r.indexes) != len(other.indexes) {
		return false
	}
	for i, idx := range r.indexes {
		o := other.indexes[i]
		if idx.column != o.column {
			return false
		}
		if idx.implied != o.implied {
			r.module.mib.log.Log(slog.LevelDebug, "index differs only in IMPLIED",
				slog.String("row", r.ID()),
				slog.String("other", other.ID()),
				slog.Int("position", i))
			return false
		}
	}
	return true
}

func (r *Row) resolveReferences(p *Problems) {
	r.ObjectType.resolveReferences(p)
	for _, idx := range r.indexes {
		sym := idx.id.resolve(p)
		if sym == nil {
			continue
		}
		col, ok := sym.(*Variable)
		if !ok {
			p.symbolWrongKind(idx.id.symbolToken, "variable", sym)
			continue
		}
		idx.column = col
	}
	if r.augments != nil {
		sym := r.augments.resolve(p)
		if sym == nil {
			return
		}
		row, ok := sym.(*Row)
		if !ok {
			p.symbolWrongKind(r.augments.symbolToken, "row", sym)
			return
		}
		r.augmentedRow = row
	}
}

// inferParent picks the row r extends: the AUGMENTS target; else, with a
// single index on another row's column, that row; else, with several
// indexes, the row of the last index column when it indexes identically.
func (r *Row) inferParent() *Row {
	if r.augments != nil {
		return r.augmentedRow
	}
	if len(r.indexes) == 0 {
		return nil
	}
	last := r.indexes[len(r.indexes)-1].column
	if last == nil {
		return nil
	}
	other := last.Row()
	if other == nil || other == r {
		return nil
	}
	if len(r.indexes) == 1 || r.HasSameIndexes(other) {
		return other
	}
	return nil
}

// linkParent records parent and child links together, once.
func (r *Row) linkParent(parent *Row) {
	if r.parent == parent {
		return
	}
	r.parent = parent
	parent.children = append(parent.children, r)
}

// inferRowHierarchy links every row to its inferred parent.
func (m *Mib) inferRowHierarchy() {
	for _, r := range m.rows.all {
		if parent := r.inferParent(); parent != nil {
			r.linkParent(parent)
		}
	}
}
