package stub

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/golangsnmp/mibxref/mib"
)

// builtinTypes maps ASN.1 type keywords to the schema builtins.
var builtinTypes = map[string]mib.PrimitiveType{
	"INTEGER":           mib.PrimitiveInteger,
	"OCTET STRING":      mib.PrimitiveOctetString,
	"OBJECT IDENTIFIER": mib.PrimitiveObjectIdentifier,
	"BITS":              mib.PrimitiveBits,
}

// Build creates the document's module in m and adds its unresolved symbols.
// A module id that m already has yields mib.ErrDuplicateModule.
func (d *Document) Build(m *mib.Mib) (*mib.Module, error) {
	mod, err := m.NewModule(d.tok(&d.doc.Module))
	if err != nil {
		return nil, err
	}
	b := &builder{doc: d, mib: m, mod: mod}
	for range d.doc.Features.V1 {
		mod.IncV1Features()
	}
	for range d.doc.Features.V2 {
		mod.IncV2Features()
	}
	for i := range d.doc.Imports {
		imp := &d.doc.Imports[i]
		mod.AddImports(d.tok(&imp.From), d.toks(imp.Symbols))
	}
	for i := range d.doc.Symbols {
		if err := b.symbol(&d.doc.Symbols[i]); err != nil {
			return mod, err
		}
	}
	return mod, nil
}

func (d *Document) loc(n *yaml.Node) mib.Location {
	return mib.Location{Source: d.Source, Line: n.Line, Column: n.Column}
}

func (d *Document) tok(n *yaml.Node) *mib.IdToken {
	return mib.NewIdToken(d.loc(n), n.Value)
}

func (d *Document) toks(nodes []yaml.Node) []*mib.IdToken {
	out := make([]*mib.IdToken, len(nodes))
	for i := range nodes {
		out[i] = d.tok(&nodes[i])
	}
	return out
}

func (d *Document) errorf(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformed, d.loc(n), fmt.Sprintf(format, args...))
}

type builder struct {
	doc *Document
	mib *mib.Mib
	mod *mib.Module
}

func (b *builder) symbol(s *symbolDecl) error {
	for _, n := range []*yaml.Node{&s.Macro, &s.Type, &s.TextualConvention, &s.OidValue,
		&s.ObjectIdentity, &s.ModuleIdentity, &s.ObjectType, &s.NotificationType, &s.TrapType} {
		if present(n) && n.Value == "" {
			return b.doc.errorf(n, "symbol without identifier")
		}
	}
	switch {
	case present(&s.Macro):
		b.mod.AddSymbol(b.mod.NewMacro(b.doc.tok(&s.Macro)))
		return nil
	case present(&s.Type):
		return b.typeAssignment(s, &s.Type, false)
	case present(&s.TextualConvention):
		return b.typeAssignment(s, &s.TextualConvention, true)
	case present(&s.OidValue):
		last, err := b.oid(&s.OidValue, s.Value)
		if err != nil {
			return err
		}
		b.mod.AddSymbol(b.mod.NewOidValue(b.doc.tok(&s.OidValue), last))
		return nil
	case present(&s.ObjectIdentity):
		return b.oidMacro(s, &s.ObjectIdentity)
	case present(&s.ModuleIdentity):
		return b.oidMacro(s, &s.ModuleIdentity)
	case present(&s.ObjectType):
		return b.objectType(s)
	case present(&s.NotificationType):
		return b.notification(s)
	case present(&s.TrapType):
		return b.trap(s)
	}
	return fmt.Errorf("%w: %s: symbol entry without kind", ErrMalformed, b.doc.Source)
}

func (b *builder) status(s *symbolDecl, at *yaml.Node) (mib.Status, error) {
	if s.Status == "" {
		return mib.StatusUnknown, nil
	}
	st, ok := mib.ParseStatus(s.Status)
	if !ok {
		return st, b.doc.errorf(at, "unknown status %q", s.Status)
	}
	return st, nil
}

func (b *builder) typeAssignment(s *symbolDecl, id *yaml.Node, tc bool) error {
	var t *mib.Type
	if tc {
		st, err := b.status(s, id)
		if err != nil {
			return err
		}
		t = b.mod.NewTextualConvention(b.doc.tok(id), mib.TextualConvention{
			DisplayHint: s.DisplayHint,
			Status:      st,
			Description: s.Description,
			Reference:   s.Reference,
		})
		b.mod.IncV2Features()
	} else {
		t = b.mod.NewType(b.doc.tok(id))
	}
	if s.Syntax == nil {
		return b.doc.errorf(id, "type %s without syntax", id.Value)
	}
	if err := b.fillType(t, s.Syntax); err != nil {
		return err
	}
	b.mod.AddSymbol(t)
	return nil
}

// fillType describes t with spec. A builtin keyword becomes t's base with
// the constraints on t itself; a named type becomes a reference base that
// carries the constraints until resolution merges them onto t.
func (b *builder) fillType(t *mib.Type, spec *typeSpec) error {
	if spec.Application != nil {
		t.SetApplicationTag(*spec.Application)
	}
	switch {
	case present(&spec.SequenceOf):
		t.SetElementType(b.doc.tok(&spec.SequenceOf))
		return nil
	case spec.Sequence != nil:
		fields := make([]*mib.Field, 0, len(spec.Sequence))
		for i := range spec.Sequence {
			f := &spec.Sequence[i]
			var ft *mib.Type
			if f.Syntax != nil {
				var err error
				if ft, err = b.anonymous(f.Syntax); err != nil {
					return err
				}
			}
			fields = append(fields, mib.NewField(b.doc.tok(&f.Column), ft))
		}
		t.SetFields(fields)
		return nil
	}
	if spec.Name == "" {
		return b.doc.errorf(spec.node, "syntax without type")
	}
	if prim, ok := builtinTypes[spec.Name]; ok {
		t.SetBaseType(b.mib.Builtin(prim))
		return b.constrain(t, spec, prim)
	}
	var modTok *mib.IdToken
	if spec.Module != "" {
		modTok = mib.NewIdToken(b.doc.loc(spec.node), spec.Module)
	}
	ref := b.mod.NewTypeRef(modTok, mib.NewIdToken(b.doc.loc(spec.node), spec.Name))
	if err := b.constrain(ref, spec, mib.PrimitiveUnknown); err != nil {
		return err
	}
	t.SetBaseType(ref)
	return nil
}

// anonymous builds the type of a SYNTAX clause that is not a type
// assignment. A bare name stays a reference.
func (b *builder) anonymous(spec *typeSpec) (*mib.Type, error) {
	if !present(&spec.SequenceOf) && spec.Sequence == nil && spec.Name != "" {
		if _, builtin := builtinTypes[spec.Name]; !builtin {
			var modTok *mib.IdToken
			if spec.Module != "" {
				modTok = mib.NewIdToken(b.doc.loc(spec.node), spec.Module)
			}
			ref := b.mod.NewTypeRef(modTok, mib.NewIdToken(b.doc.loc(spec.node), spec.Name))
			return ref, b.constrain(ref, spec, mib.PrimitiveUnknown)
		}
		if !spec.hasConstraints() && spec.Application == nil {
			return b.mib.Builtin(builtinTypes[spec.Name]), nil
		}
	}
	t := b.mod.NewType(nil)
	return t, b.fillType(t, spec)
}

// constrain attaches the spec's named numbers and ranges to t. Named numbers
// under "named" go to enum values for INTEGER, to bits for BITS, and stay
// unclassified on references.
func (b *builder) constrain(t *mib.Type, spec *typeSpec, prim mib.PrimitiveType) error {
	enums, err := b.namedNumbers(spec.Enums)
	if err != nil {
		return err
	}
	bits, err := b.namedNumbers(spec.Bits)
	if err != nil {
		return err
	}
	named, err := b.namedNumbers(spec.Named)
	if err != nil {
		return err
	}
	switch prim {
	case mib.PrimitiveBits:
		bits = append(bits, named...)
	case mib.PrimitiveUnknown:
		if len(named) > 0 {
			t.SetNamedNumbers(named)
		}
	default:
		enums = append(enums, named...)
	}
	if len(enums) > 0 {
		t.SetEnumValues(enums)
	}
	if len(bits) > 0 {
		t.SetBitFields(bits)
	}
	ranges, err := b.ranges(spec.Range)
	if err != nil {
		return err
	}
	if len(ranges) > 0 {
		t.SetRangeConstraints(ranges)
	}
	sizes, err := b.ranges(spec.Size)
	if err != nil {
		return err
	}
	if len(sizes) > 0 {
		t.SetSizeConstraints(sizes)
	}
	return nil
}

// namedNumbers parses "label(n)" entries.
func (b *builder) namedNumbers(nodes []yaml.Node) ([]*mib.NamedNumber, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]*mib.NamedNumber, 0, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		name, num, ok := strings.Cut(n.Value, "(")
		if !ok || !strings.HasSuffix(num, ")") || name == "" {
			return nil, b.doc.errorf(n, "invalid named number %q", n.Value)
		}
		v, good := new(big.Int).SetString(strings.TrimSpace(strings.TrimSuffix(num, ")")), 10)
		if !good {
			return nil, b.doc.errorf(n, "invalid named number %q", n.Value)
		}
		loc := b.doc.loc(n)
		out = append(out, mib.NewNamedNumber(
			mib.NewIdToken(loc, strings.TrimSpace(name)),
			&mib.BigIntToken{Loc: loc, Value: v}))
	}
	return out, nil
}

// ranges parses "lo..hi" and single-value entries.
func (b *builder) ranges(nodes []yaml.Node) ([]mib.Range, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]mib.Range, 0, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		lo, hi, isRange := strings.Cut(n.Value, "..")
		if !isRange {
			hi = lo
		}
		loV, ok1 := new(big.Int).SetString(strings.TrimSpace(lo), 0)
		hiV, ok2 := new(big.Int).SetString(strings.TrimSpace(hi), 0)
		if !ok1 || !ok2 {
			return nil, b.doc.errorf(n, "invalid range %q", n.Value)
		}
		out = append(out, mib.Range{Min: loV, Max: hiV})
	}
	return out, nil
}

// oid builds the component chain of an OID value expression and returns its
// last element.
func (b *builder) oid(owner *yaml.Node, arcs []yaml.Node) (*mib.OidComponent, error) {
	if len(arcs) == 0 {
		return nil, b.doc.errorf(owner, "%s has no OID value", owner.Value)
	}
	var last *mib.OidComponent
	for i := range arcs {
		n := &arcs[i]
		name, value, hasValue, err := mib.ParseArcSpec(n.Value)
		if err != nil {
			return nil, b.doc.errorf(n, "%v", err)
		}
		loc := b.doc.loc(n)
		var idTok *mib.IdToken
		var valTok *mib.IntToken
		if name != "" {
			idTok = mib.NewIdToken(loc, name)
		}
		if hasValue {
			valTok = mib.NewIntToken(loc, value)
		}
		last = mib.NewOidComponent(last, idTok, valTok)
	}
	return last, nil
}

func (b *builder) oidMacro(s *symbolDecl, id *yaml.Node) error {
	last, err := b.oid(id, s.Value)
	if err != nil {
		return err
	}
	st, err := b.status(s, id)
	if err != nil {
		return err
	}
	om := b.mod.NewOidMacro(b.doc.tok(id), last, st)
	om.SetDescription(s.Description)
	b.mod.AddSymbol(om)
	b.mod.IncV2Features()
	return nil
}

func (b *builder) objectType(s *symbolDecl) error {
	id := &s.ObjectType
	last, err := b.oid(id, s.Value)
	if err != nil {
		return err
	}
	st, err := b.status(s, id)
	if err != nil {
		return err
	}
	if st.IsSMIv1() {
		b.mod.IncV1Features()
	}
	var typ *mib.Type
	if s.Syntax != nil {
		if typ, err = b.anonymous(s.Syntax); err != nil {
			return err
		}
	}

	variant := s.Variant
	if variant == "" {
		switch {
		case s.Syntax != nil && present(&s.Syntax.SequenceOf):
			variant = "table"
		case len(s.Index) > 0 || present(&s.Augments):
			variant = "row"
		default:
			variant = "variable"
		}
	}

	tok := b.doc.tok(id)
	var sym mib.ObjectTypeSymbol
	switch variant {
	case "object":
		sym = b.mod.NewObjectType(tok, last, st, typ)
	case "table":
		sym = b.mod.NewTable(tok, last, st, typ)
	case "row":
		row := b.mod.NewRow(tok, last, st, typ)
		for i := range s.Index {
			row.AddIndex(b.index(&s.Index[i]))
		}
		if present(&s.Augments) {
			row.SetAugments(b.scoped(&s.Augments))
		}
		sym = row
	case "variable":
		v := b.mod.NewVariable(tok, last, st, typ)
		if present(&s.Units) {
			v.SetUnits(mib.NewStringToken(b.doc.loc(&s.Units), s.Units.Value))
		}
		if s.Default != nil {
			dv, err := b.defval(s.Default.node)
			if err != nil {
				return err
			}
			v.SetDefaultValue(dv)
		}
		sym = v
	default:
		return b.doc.errorf(id, "unknown object-type variant %q", variant)
	}

	ot := sym.ObjectBase()
	ot.SetDescription(s.Description)
	switch {
	case present(&s.Access):
		ot.SetAccess(b.doc.tok(&s.Access))
		b.mod.IncV1Features()
	case present(&s.MaxAccess):
		ot.SetMaxAccess(b.doc.tok(&s.MaxAccess))
		b.mod.IncV2Features()
	}
	b.mod.AddSymbol(sym)
	return nil
}

// scoped parses "id" or "MODULE.id".
func (b *builder) scoped(n *yaml.Node) *mib.ScopedID {
	loc := b.doc.loc(n)
	if modID, id, ok := strings.Cut(n.Value, "."); ok {
		return mib.NewScopedID(b.mod, mib.NewIdToken(loc, modID), mib.NewIdToken(loc, id))
	}
	return mib.NewScopedID(b.mod, nil, mib.NewIdToken(loc, n.Value))
}

// index parses an INDEX entry, optionally prefixed with "IMPLIED ".
func (b *builder) index(n *yaml.Node) *mib.Index {
	rest, implied := strings.CutPrefix(n.Value, "IMPLIED ")
	entry := *n
	entry.Value = strings.TrimSpace(rest)
	return mib.NewIndex(b.scoped(&entry), implied)
}

// defval selects the default-value form from the node's shape: integers,
// quoted strings and bare references as scalars, everything else as a
// single-key mapping. An empty mapping is an explicit empty default.
func (b *builder) defval(n *yaml.Node) (*mib.DefaultValue, error) {
	loc := b.doc.loc(n)
	switch n.Kind {
	case yaml.ScalarNode:
		switch {
		case n.Tag == "!!int":
			v, ok := new(big.Int).SetString(n.Value, 0)
			if !ok {
				return nil, b.doc.errorf(n, "invalid integer default %q", n.Value)
			}
			return b.mod.NewIntegerDefault(&mib.BigIntToken{Loc: loc, Value: v}), nil
		case n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0:
			return b.mod.NewStringDefault(mib.DefvalString, mib.NewStringToken(loc, n.Value)), nil
		default:
			return b.mod.NewReferenceDefault(b.scoped(n)), nil
		}
	case yaml.MappingNode:
		if len(n.Content) == 0 {
			return b.mod.NewNullDefault(loc), nil
		}
		if len(n.Content) != 2 {
			return nil, b.doc.errorf(n, "default value must have one form")
		}
		key, val := n.Content[0], n.Content[1]
		switch key.Value {
		case "bits":
			return b.mod.NewBitsDefault(b.doc.loc(val), b.doc.toks(derefAll(val.Content))), nil
		case "oid":
			last, err := b.oid(key, derefAll(val.Content))
			if err != nil {
				return nil, err
			}
			return b.mod.NewOidDefault(last), nil
		case "hex":
			return b.mod.NewStringDefault(mib.DefvalHex, mib.NewStringToken(b.doc.loc(val), val.Value)), nil
		case "binary":
			return b.mod.NewStringDefault(mib.DefvalBinary, mib.NewStringToken(b.doc.loc(val), val.Value)), nil
		case "string":
			return b.mod.NewStringDefault(mib.DefvalString, mib.NewStringToken(b.doc.loc(val), val.Value)), nil
		}
		return nil, b.doc.errorf(key, "unknown default value form %q", key.Value)
	}
	return nil, b.doc.errorf(n, "unsupported default value")
}

// present reports whether a mapping key was given.
func present(n *yaml.Node) bool { return n.Kind != 0 }

func derefAll(nodes []*yaml.Node) []yaml.Node {
	out := make([]yaml.Node, len(nodes))
	for i, n := range nodes {
		out[i] = *n
	}
	return out
}

func (b *builder) notification(s *symbolDecl) error {
	id := &s.NotificationType
	last, err := b.oid(id, s.Value)
	if err != nil {
		return err
	}
	st, err := b.status(s, id)
	if err != nil {
		return err
	}
	n := b.mod.NewNotificationType(b.doc.tok(id), last, st, b.doc.toks(s.Objects))
	n.SetDescription(s.Description)
	b.mod.AddSymbol(n)
	b.mod.IncV2Features()
	return nil
}

func (b *builder) trap(s *symbolDecl) error {
	id := &s.TrapType
	if !present(&s.Enterprise) || !present(&s.TrapNumber) {
		return b.doc.errorf(id, "trap %s needs enterprise and trap-number", id.Value)
	}
	num, err := strconv.ParseUint(s.TrapNumber.Value, 10, 32)
	if err != nil {
		return b.doc.errorf(&s.TrapNumber, "invalid trap number %q", s.TrapNumber.Value)
	}
	t := b.mod.NewTrapType(b.doc.tok(id), b.doc.tok(&s.Enterprise), b.doc.toks(s.Variables),
		mib.NewIntToken(b.doc.loc(&s.TrapNumber), uint32(num)))
	t.SetDescription(s.Description)
	b.mod.AddSymbol(t)
	b.mod.IncV1Features()
	return nil
}
