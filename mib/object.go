package mib

// OidValue is an OBJECT IDENTIFIER value assignment.
type OidValue struct {
	symbolBase
	lastComponent *OidComponent
	node          *OidNode
	resolving     bool
}

// NewOidValue creates an OID value whose expression ends with last.
func (m *Module) NewOidValue(id *IdToken, last *OidComponent) *OidValue {
	return &OidValue{symbolBase: symbolBase{idToken: id, module: m}, lastComponent: last}
}

func (*OidValue) Kind() Kind { return KindOidValue }

// OidBase returns the OID part of any OID-bearing symbol.
func (v *OidValue) OidBase() *OidValue { return v }

// Node returns the resolved tree node, or nil.
func (v *OidValue) Node() *OidNode { return v.node }

// LastComponent returns the last element of the OID expression.
func (v *OidValue) LastComponent() *OidComponent { return v.lastComponent }

// Oid returns the resolved OID, or nil.
func (v *OidValue) Oid() Oid {
	if v.node == nil {
		return nil
	}
	return v.node.Oid()
}

// OidString returns the dotted resolved OID, or "".
func (v *OidValue) OidString() string {
	if v.node == nil {
		return ""
	}
	return v.node.OidString()
}

func (*OidValue) resolveReferences(*Problems) {}

// OidMacro is an OID value defined through a macro that carries a STATUS,
// such as OBJECT-IDENTITY or MODULE-IDENTITY.
type OidMacro struct {
	OidValue
	status      Status
	description string
}

// NewOidMacro creates a macro-defined OID value.
func (m *Module) NewOidMacro(id *IdToken, last *OidComponent, status Status) *OidMacro {
	return &OidMacro{OidValue: *m.NewOidValue(id, last), status: status}
}

func (*OidMacro) Kind() Kind { return KindOidMacro }

// Status returns the STATUS clause.
func (o *OidMacro) Status() Status { return o.status }

// Description returns the DESCRIPTION clause.
func (o *OidMacro) Description() string { return o.description }

// SetDescription sets the DESCRIPTION clause.
func (o *OidMacro) SetDescription(s string) { o.description = s }

// ObjectType is an OBJECT-TYPE definition.
type ObjectType struct {
	OidMacro
	typ            *Type
	accessToken    *IdToken
	maxAccessToken *IdToken
	access         Access
}

// NewObjectType creates an OBJECT-TYPE that is none of variable, row or
// table.
func (m *Module) NewObjectType(id *IdToken, last *OidComponent, status Status, typ *Type) *ObjectType {
	return &ObjectType{OidMacro: *m.NewOidMacro(id, last, status), typ: typ}
}

func (*ObjectType) Kind() Kind { return KindObjectType }

// ObjectBase returns the OBJECT-TYPE part of any object type.
func (o *ObjectType) ObjectBase() *ObjectType { return o }

// Type returns the SYNTAX type.
func (o *ObjectType) Type() *Type { return o.typ }

// Access returns the resolved access.
func (o *ObjectType) Access() Access { return o.access }

// SetAccess records an SMIv1 ACCESS keyword.
func (o *ObjectType) SetAccess(tok *IdToken) { o.accessToken = tok }

// SetMaxAccess records an SMIv2 MAX-ACCESS keyword.
func (o *ObjectType) SetMaxAccess(tok *IdToken) { o.maxAccessToken = tok }

// AccessToken returns the ACCESS or MAX-ACCESS keyword, whichever is set.
func (o *ObjectType) AccessToken() *IdToken {
	if o.accessToken != nil {
		return o.accessToken
	}
	return o.maxAccessToken
}

func (o *ObjectType) resolveReferences(p *Problems) {
	if o.typ != nil {
		o.typ = o.typ.resolveThis(p, nil)
	}
	o.resolveAccess(p)
}

func (o *ObjectType) resolveAccess(p *Problems) {
	var ok bool
	switch {
	case o.accessToken != nil:
		if o.access, ok = ParseAccessV1(o.accessToken.ID); !ok {
			p.accessInvalid(o.accessToken)
		}
	case o.maxAccessToken != nil:
		if o.access, ok = ParseAccessV2(o.maxAccessToken.ID); !ok {
			p.maxAccessInvalid(o.maxAccessToken)
		}
	}
}

// Variable is an OBJECT-TYPE describing a scalar or a column.
type Variable struct {
	ObjectType
	units        *StringToken
	defaultValue *DefaultValue
}

// NewVariable creates a scalar or column.
func (m *Module) NewVariable(id *IdToken, last *OidComponent, status Status, typ *Type) *Variable {
	return &Variable{ObjectType: *m.NewObjectType(id, last, status, typ)}
}

func (*Variable) Kind() Kind { return KindVariable }

// Units returns the UNITS clause, or nil.
func (v *Variable) Units() *StringToken { return v.units }

// SetUnits sets the UNITS clause.
func (v *Variable) SetUnits(tok *StringToken) { v.units = tok }

// DefaultValue returns the DEFVAL clause, or nil.
func (v *Variable) DefaultValue() *DefaultValue { return v.defaultValue }

// SetDefaultValue attaches a DEFVAL clause.
func (v *Variable) SetDefaultValue(dv *DefaultValue) {
	dv.variable = v
	v.defaultValue = dv
}

// Row returns the row this variable is a column of, or nil for scalars.
func (v *Variable) Row() *Row {
	if v.node == nil || v.node.parent == nil {
		return nil
	}
	row, _ := v.node.parent.SingleValue(v.module).(*Row)
	return row
}

// Table returns the table of the variable's row, or nil for scalars.
func (v *Variable) Table() *Table {
	if row := v.Row(); row != nil {
		return row.Table()
	}
	return nil
}

// IsColumn reports whether the variable belongs to a row.
func (v *Variable) IsColumn() bool { return v.Row() != nil }

// IsScalar reports whether the variable is not a column.
func (v *Variable) IsScalar() bool { return v.Row() == nil }

// PrimitiveType returns the classification of the variable's type.
func (v *Variable) PrimitiveType() PrimitiveType {
	if v.typ == nil {
		return PrimitiveUnknown
	}
	return v.typ.PrimitiveType()
}

// EnumValues returns the enumeration along the type chain.
func (v *Variable) EnumValues() []*NamedNumber {
	if v.typ == nil {
		return nil
	}
	return v.typ.FindEnumValues()
}

// BitFields returns the named bits along the type chain.
func (v *Variable) BitFields() []*NamedNumber {
	if v.typ == nil {
		return nil
	}
	return v.typ.FindBitFields()
}

// RangeConstraints returns the value ranges along the type chain.
func (v *Variable) RangeConstraints() []Range {
	if v.typ == nil {
		return nil
	}
	return v.typ.FindRangeConstraints()
}

// SizeConstraints returns the size ranges along the type chain.
func (v *Variable) SizeConstraints() []Range {
	if v.typ == nil {
		return nil
	}
	return v.typ.FindSizeConstraints()
}

// TextualConvention returns the textual convention the type derives from.
func (v *Variable) TextualConvention() *Type {
	if v.typ == nil {
		return nil
	}
	return v.typ.FindTextualConvention()
}

// Table is an OBJECT-TYPE whose syntax is SEQUENCE OF a row type.
type Table struct {
	ObjectType
}

// NewTable creates a table.
func (m *Module) NewTable(id *IdToken, last *OidComponent, status Status, typ *Type) *Table {
	return &Table{ObjectType: *m.NewObjectType(id, last, status, typ)}
}

func (*Table) Kind() Kind { return KindTable }

// Row returns the entry defined directly below the table, or nil.
func (t *Table) Row() *Row {
	if t.node == nil {
		return nil
	}
	for _, child := range t.node.sortedChildren() {
		if row, ok := child.SingleValue(t.module).(*Row); ok {
			return row
		}
	}
	return nil
}

// NotificationType is a NOTIFICATION-TYPE definition.
type NotificationType struct {
	OidMacro
	objectTokens []*IdToken
	objects      []*Variable
}

// NewNotificationType creates a notification listing the given objects.
func (m *Module) NewNotificationType(id *IdToken, last *OidComponent, status Status, objects []*IdToken) *NotificationType {
	return &NotificationType{OidMacro: *m.NewOidMacro(id, last, status), objectTokens: objects}
}

func (*NotificationType) Kind() Kind { return KindNotificationType }

// ObjectTokens returns the OBJECTS clause identifiers.
func (n *NotificationType) ObjectTokens() []*IdToken { return n.objectTokens }

// Objects returns the resolved OBJECTS, in clause order, unresolved ones left out.
func (n *NotificationType) Objects() []*Variable { return n.objects }

func (n *NotificationType) resolveReferences(p *Problems) {
	n.objects = n.objects[:0]
	for _, tok := range n.objectTokens {
		if v, ok := resolveAs[*Variable](n.module, tok, "variable", p); ok {
			n.objects = append(n.objects, v)
		}
	}
}

// TrapType is an SMIv1 TRAP-TYPE definition. It is not part of the OID tree.
type TrapType struct {
	symbolBase
	enterpriseToken *IdToken
	enterprise      OidSymbol
	variableTokens  []*IdToken
	variables       []*Variable
	specificType    *IntToken
	description     string
}

// NewTrapType creates a trap.
func (m *Module) NewTrapType(id, enterprise *IdToken, variables []*IdToken, specific *IntToken) *TrapType {
	return &TrapType{
		symbolBase:      symbolBase{idToken: id, module: m},
		enterpriseToken: enterprise,
		variableTokens:  variables,
		specificType:    specific,
	}
}

func (*TrapType) Kind() Kind { return KindTrapType }

// Enterprise returns the resolved ENTERPRISE value, or nil.
func (t *TrapType) Enterprise() OidSymbol { return t.enterprise }

// Variables returns the resolved VARIABLES, unresolved ones left out.
func (t *TrapType) Variables() []*Variable { return t.variables }

// SpecificType returns the trap number.
func (t *TrapType) SpecificType() uint32 { return t.specificType.Value }

// Description returns the DESCRIPTION clause.
func (t *TrapType) Description() string { return t.description }

// SetDescription sets the DESCRIPTION clause.
func (t *TrapType) SetDescription(s string) { t.description = s }

// OidString returns the enterprise OID followed by the trap number, or ""
// when the enterprise is unresolved.
func (t *TrapType) OidString() string {
	if t.enterprise == nil || t.enterprise.Node() == nil {
		return ""
	}
	return t.enterprise.Node().OidString() + "." + t.specificType.String()
}

func (t *TrapType) resolveReferences(p *Problems) {
	t.enterprise, _ = resolveAs[OidSymbol](t.module, t.enterpriseToken, "OID value", p)
	t.variables = t.variables[:0]
	for _, tok := range t.variableTokens {
		if v, ok := resolveAs[*Variable](t.module, tok, "variable", p); ok {
			t.variables = append(t.variables, v)
		}
	}
}
