package testutil

import (
	"slices"

	"github.com/golangsnmp/mibxref/mib"
)

// TypeChain returns the ids along a type's base chain, "-" for anonymous
// types. It stops at the first repeated type.
func TypeChain(t *mib.Type) []string {
	var out []string
	var seen []*mib.Type
	for cur := t; cur != nil; cur = cur.BaseType() {
		if slices.Contains(seen, cur) {
			return out
		}
		seen = append(seen, cur)
		id := cur.ID()
		if id == "" {
			id = "-"
		}
		out = append(out, id)
	}
	return out
}

// NamedNumbers renders named numbers as "label(n)".
func NamedNumbers(nn []*mib.NamedNumber) []string {
	out := make([]string, len(nn))
	for i, n := range nn {
		out[i] = n.ID() + "(" + n.Value().String() + ")"
	}
	return out
}

// RowIDs returns the ids of rows.
func RowIDs(rows []*mib.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID()
	}
	return out
}
