package mib

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Location is a 1-based position in a source document.
// Line and Column are 0 when unknown.
type Location struct {
	Source string
	Line   int
	Column int
}

// Synthetic is the location of compiler-generated symbols.
var Synthetic = Location{Source: "<synthetic>"}

func (l Location) String() string {
	if l.Line == 0 {
		return l.Source
	}
	return fmt.Sprintf("%s:%d:%d", l.Source, l.Line, l.Column)
}

// IsSynthetic reports whether the location belongs to a generated construct.
func (l Location) IsSynthetic() bool {
	return l == Synthetic
}

// IdToken is an identifier together with where it appeared.
type IdToken struct {
	Loc Location
	ID  string
}

// NewIdToken creates an identifier token.
func NewIdToken(loc Location, id string) *IdToken {
	return &IdToken{Loc: loc, ID: id}
}

func (t *IdToken) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.ID
}

// IntToken is a non-negative integer literal, used for OID arcs.
type IntToken struct {
	Loc   Location
	Value uint32
}

// NewIntToken creates an integer token.
func NewIntToken(loc Location, v uint32) *IntToken {
	return &IntToken{Loc: loc, Value: v}
}

func (t *IntToken) String() string {
	return strconv.FormatUint(uint64(t.Value), 10)
}

// BigIntToken is an arbitrary-precision integer literal (ranges, named
// numbers, default values).
type BigIntToken struct {
	Loc   Location
	Value *big.Int
}

// NewBigIntToken creates a token from an int64.
func NewBigIntToken(loc Location, v int64) *BigIntToken {
	return &BigIntToken{Loc: loc, Value: big.NewInt(v)}
}

// StringToken is a quoted, hex ('..'H) or binary ('..'B) string literal.
// Value holds the literal without quotes or suffix.
type StringToken struct {
	Loc   Location
	Value string
}

// NewStringToken creates a string token.
func NewStringToken(loc Location, v string) *StringToken {
	return &StringToken{Loc: loc, Value: v}
}

// BigValue interprets the token as a number in the given base (2 or 16).
// Empty literals are zero.
func (t *StringToken) BigValue(base int) (*big.Int, bool) {
	s := strings.TrimSpace(t.Value)
	if s == "" {
		return new(big.Int), true
	}
	return new(big.Int).SetString(s, base)
}
