package mib

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Oid is a sequence of arc values identifying a node in the OID tree.
type Oid []uint32

var errEmptyOid = errors.New("empty OID")

// ParseOID parses a dotted OID such as "1.3.6.1.2.1". A single leading dot
// is accepted.
func ParseOID(s string) (Oid, error) {
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return nil, errEmptyOid
	}
	parts := strings.Split(s, ".")
	oid := make(Oid, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("empty arc in OID %q", s)
		}
		arc, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid arc %q in OID %q: %w", part, s, err)
		}
		oid = append(oid, uint32(arc))
	}
	return oid, nil
}

// String returns the dotted form, "" for an empty OID.
func (o Oid) String() string {
	var b strings.Builder
	for i, arc := range o {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.FormatUint(uint64(arc), 10))
	}
	return b.String()
}

// Child returns a new OID with arc appended.
func (o Oid) Child(arc uint32) Oid {
	return append(slices.Clone(o), arc)
}

// HasPrefix reports whether o starts with prefix.
func (o Oid) HasPrefix(prefix Oid) bool {
	return len(prefix) <= len(o) && slices.Equal(o[:len(prefix)], prefix)
}

// Equal reports whether both OIDs have the same arcs.
func (o Oid) Equal(other Oid) bool {
	return slices.Equal(o, other)
}

// Compare orders OIDs lexicographically by arc.
func (o Oid) Compare(other Oid) int {
	return slices.Compare(o, other)
}
