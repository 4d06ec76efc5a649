// Package stub reads module stub documents: YAML serializations of the
// unresolved per-module symbols a grammar front end hands to the
// cross-reference engine.
//
// A document describes one module:
//
//	module: IF-MIB
//	features: {v2: 1}
//	imports:
//	  - from: SNMPv2-SMI
//	    symbols: [mib-2, OBJECT-TYPE, Integer32]
//	symbols:
//	  - oid-value: interfaces
//	    value: [mib-2, 2]
//	  - object-type: ifNumber
//	    value: [interfaces, 1]
//	    syntax: Integer32
//	    max-access: read-only
//	    status: current
//
// The reader does no name resolution. It only checks that the document is
// well formed and builds symbols through the mib constructors, keeping the
// line and column of every identifier.
package stub

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrMalformed is wrapped by every error about document content.
var ErrMalformed = errors.New("malformed stub document")

// Document is one decoded module stub.
type Document struct {
	Source string
	doc    document
}

// ModuleID returns the id of the module the document describes.
func (d *Document) ModuleID() string { return d.doc.Module.Value }

// Imports returns the ids of the modules the document imports from, in
// declaration order.
func (d *Document) Imports() []string {
	out := make([]string, 0, len(d.doc.Imports))
	for i := range d.doc.Imports {
		out = append(out, d.doc.Imports[i].From.Value)
	}
	return out
}

type document struct {
	Module   yaml.Node    `yaml:"module"`
	Features features     `yaml:"features"`
	Imports  []importDecl `yaml:"imports"`
	Symbols  []symbolDecl `yaml:"symbols"`
}

type features struct {
	V1 int `yaml:"v1"`
	V2 int `yaml:"v2"`
}

type importDecl struct {
	From    yaml.Node   `yaml:"from"`
	Symbols []yaml.Node `yaml:"symbols"`
}

// symbolDecl holds any symbol entry. Exactly one of the kind keys names the
// symbol; the remaining keys apply to the kinds that use them. Absent keys
// leave a zero node (Kind 0).
type symbolDecl struct {
	Macro             yaml.Node `yaml:"macro"`
	Type              yaml.Node `yaml:"type"`
	TextualConvention yaml.Node `yaml:"textual-convention"`
	OidValue          yaml.Node `yaml:"oid-value"`
	ObjectIdentity    yaml.Node `yaml:"object-identity"`
	ModuleIdentity    yaml.Node `yaml:"module-identity"`
	ObjectType        yaml.Node `yaml:"object-type"`
	NotificationType  yaml.Node `yaml:"notification-type"`
	TrapType          yaml.Node `yaml:"trap-type"`

	Value       []yaml.Node `yaml:"value"`
	Syntax      *typeSpec   `yaml:"syntax"`
	Variant     string      `yaml:"variant"`
	Access      yaml.Node   `yaml:"access"`
	MaxAccess   yaml.Node   `yaml:"max-access"`
	Status      string      `yaml:"status"`
	Description string      `yaml:"description"`
	Reference   string      `yaml:"reference"`
	DisplayHint string      `yaml:"display-hint"`
	Units       yaml.Node   `yaml:"units"`
	Default     *defvalSpec `yaml:"default"`
	Index       []yaml.Node `yaml:"index"`
	Augments    yaml.Node   `yaml:"augments"`
	Objects     []yaml.Node `yaml:"objects"`
	Enterprise  yaml.Node   `yaml:"enterprise"`
	Variables   []yaml.Node `yaml:"variables"`
	TrapNumber  yaml.Node   `yaml:"trap-number"`
}

// typeSpec is a SYNTAX clause. A plain scalar names a type; a mapping adds
// constraints or describes a SEQUENCE / SEQUENCE OF.
type typeSpec struct {
	node *yaml.Node

	Name        string      `yaml:"type"`
	Module      string      `yaml:"module"`
	Application *int        `yaml:"application"`
	Enums       []yaml.Node `yaml:"enums"`
	Bits        []yaml.Node `yaml:"bits"`
	Named       []yaml.Node `yaml:"named"`
	Range       []yaml.Node `yaml:"range"`
	Size        []yaml.Node `yaml:"size"`
	SequenceOf  yaml.Node   `yaml:"sequence-of"`
	Sequence    []fieldSpec `yaml:"sequence"`
}

type fieldSpec struct {
	Column yaml.Node `yaml:"column"`
	Syntax *typeSpec `yaml:"syntax"`
}

func (t *typeSpec) UnmarshalYAML(value *yaml.Node) error {
	t.node = value
	if value.Kind == yaml.ScalarNode {
		t.Name = value.Value
		return nil
	}
	type plain typeSpec
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	p.node = value
	*t = typeSpec(p)
	return nil
}

func (t *typeSpec) hasConstraints() bool {
	return len(t.Enums) > 0 || len(t.Bits) > 0 || len(t.Named) > 0 ||
		len(t.Range) > 0 || len(t.Size) > 0
}

// defvalSpec keeps the raw DEFVAL node; its shape selects the form.
type defvalSpec struct {
	node *yaml.Node
}

func (d *defvalSpec) UnmarshalYAML(value *yaml.Node) error {
	d.node = value
	return nil
}

// Decode reads every document in r. source names r in locations and errors.
// Unknown keys are rejected.
func Decode(source string, r io.Reader) ([]*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var docs []*Document
	for {
		d := &Document{Source: source}
		err := dec.Decode(&d.doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, source, err)
		}
		if d.doc.Module.Value == "" {
			return nil, fmt.Errorf("%w: %s: missing module id", ErrMalformed, source)
		}
		docs = append(docs, d)
	}
	return docs, nil
}
