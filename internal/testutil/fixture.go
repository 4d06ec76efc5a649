package testutil

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/golangsnmp/mibxref/internal/stub"
	"github.com/golangsnmp/mibxref/internal/wellknown"
	"github.com/golangsnmp/mibxref/mib"
)

// Build decodes inline stub documents and adds their modules to a new
// schema without cross-referencing it. Each document gets the source name
// "fixtureN.yaml", N counting from 1.
func Build(t testing.TB, docs ...string) *mib.Mib {
	t.Helper()
	m := mib.New()
	for i, text := range docs {
		source := "fixture" + strconv.Itoa(i+1) + ".yaml"
		decoded, err := stub.Decode(source, strings.NewReader(text))
		if err != nil {
			t.Fatalf("decode %s: %v", source, err)
		}
		for _, d := range decoded {
			if _, err := d.Build(m); err != nil && !errors.Is(err, mib.ErrDuplicateModule) {
				t.Fatalf("build %s: %v", source, err)
			}
		}
	}
	return m
}

// Resolve builds the documents and cross-references them with the standard
// definers.
func Resolve(t testing.TB, docs ...string) *mib.Mib {
	t.Helper()
	m := Build(t, docs...)
	m.CrossReference(mib.XRefOptions{Definers: wellknown.Definers()})
	return m
}

// ResolveStrict is Resolve with every diagnostic recorded.
func ResolveStrict(t testing.TB, docs ...string) *mib.Mib {
	t.Helper()
	m := Build(t, docs...)
	m.SetDiagnosticConfig(mib.StrictConfig())
	m.CrossReference(mib.XRefOptions{Definers: wellknown.Definers()})
	return m
}
