package mib

import (
	"testing"
)

func TestNotificationObjects(t *testing.T) {
	m := New()
	mod := newModule(t, m, "A-MIB")
	up := addVariable(t, mod, "ifUp", nil, "1", "3", "1")
	down := addVariable(t, mod, "ifDown", nil, "1", "3", "2")
	mod.AddSymbol(mod.NewMacro(tok("notAnObject")))
	n := mod.NewNotificationType(tok("linkChange"), chain(t, "1", "3", "0", "1"), StatusCurrent,
		[]*IdToken{tok("ifUp"), tok("missing"), tok("notAnObject"), tok("ifDown")})
	n.SetDescription("link changed")
	mod.AddSymbol(n)

	p := xref(m)
	requireCode(t, p, DiagSymbolNotFound)
	requireCode(t, p, DiagSymbolWrongKind)

	got := n.Objects()
	if len(got) != 2 || got[0] != up || got[1] != down {
		t.Errorf("objects = %v, want [ifUp ifDown]", got)
	}
	if len(n.ObjectTokens()) != 4 {
		t.Error("tokens should be kept as written")
	}
	if n.OidString() != "1.3.0.1" || n.Status() != StatusCurrent || n.Description() != "link changed" {
		t.Errorf("notification = %s %s %q", n.OidString(), n.Status(), n.Description())
	}
}

func TestTrapType(t *testing.T) {
	m := New()
	mod := newModule(t, m, "TRAP-MIB")
	mod.IncV1Features()
	ent := addOid(t, mod, "acme", "enterprises", "9")
	v := addVariable(t, mod, "acmeState", nil, "acme", "1")
	trap := mod.NewTrapType(tok("acmeReset"), tok("acme"), []*IdToken{tok("acmeState")}, NewIntToken(testLoc, 3))
	mod.AddSymbol(trap)
	orphan := mod.NewTrapType(tok("orphan"), tok("nowhere"), nil, NewIntToken(testLoc, 1))
	mod.AddSymbol(orphan)

	p := xref(m)
	if trap.Enterprise() != OidSymbol(ent) {
		t.Errorf("enterprise = %v", trap.Enterprise())
	}
	if got := trap.Variables(); len(got) != 1 || got[0] != v {
		t.Errorf("variables = %v", got)
	}
	if got := trap.OidString(); got != "1.3.6.1.4.1.9.3" {
		t.Errorf("OidString() = %q", got)
	}
	if trap.SpecificType() != 3 {
		t.Errorf("SpecificType() = %d", trap.SpecificType())
	}
	if orphan.OidString() != "" {
		t.Error("unresolved enterprise has no OID")
	}
	requireCode(t, p, DiagSymbolNotFound)
	if nd, _ := m.FindByOidString("1.3.6.1.4.1.9.3"); nd != nil {
		t.Error("traps are not part of the OID tree")
	}
}

func TestObjectTypeKinds(t *testing.T) {
	mod := newModule(t, New(), "A-MIB")
	last := chain(t, "1")
	symbols := []Symbol{
		mod.NewOidValue(tok("a"), last),
		mod.NewOidMacro(tok("b"), last, StatusCurrent),
		mod.NewObjectType(tok("c"), last, StatusCurrent, nil),
		mod.NewVariable(tok("d"), last, StatusCurrent, nil),
		mod.NewRow(tok("e"), last, StatusCurrent, nil),
		mod.NewTable(tok("f"), last, StatusCurrent, nil),
	}
	want := []Kind{KindOidValue, KindOidMacro, KindObjectType, KindVariable, KindRow, KindTable}
	for i, s := range symbols {
		if s.Kind() != want[i] {
			t.Errorf("%s kind = %s, want %s", s.ID(), s.Kind(), want[i])
		}
		if _, ok := s.(OidSymbol); !ok {
			t.Errorf("%s should be an OID symbol", s.ID())
		}
	}
	if _, ok := symbols[1].(ObjectTypeSymbol); ok {
		t.Error("an OID macro is not an object type")
	}
}

func TestAccessTokenPrefersV1(t *testing.T) {
	mod := newModule(t, New(), "A-MIB")
	o := mod.NewObjectType(tok("o"), chain(t, "1"), StatusCurrent, nil)
	o.SetMaxAccess(tok("read-only"))
	if o.AccessToken().ID != "read-only" {
		t.Error("max-access token")
	}
	o.SetAccess(tok("read-write"))
	if o.AccessToken().ID != "read-write" {
		t.Error("ACCESS should take precedence")
	}
}

func TestAccessPermissions(t *testing.T) {
	tests := []struct {
		access                   Access
		read, write, createWrite bool
	}{
		{AccessUnknown, false, false, false},
		{AccessNotAccessible, false, false, false},
		{AccessAccessibleForNotify, false, false, false},
		{AccessReadOnly, true, false, false},
		{AccessReadWrite, true, true, false},
		{AccessReadCreate, true, true, true},
		{AccessWriteOnly, false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.access.String(), func(t *testing.T) {
			if got := tt.access.IsReadable(); got != tt.read {
				t.Errorf("IsReadable() = %v, want %v", got, tt.read)
			}
			if got := tt.access.IsWritable(); got != tt.write {
				t.Errorf("IsWritable() = %v, want %v", got, tt.write)
			}
			if got := tt.access.IsCreateWritable(); got != tt.createWrite {
				t.Errorf("IsCreateWritable() = %v, want %v", got, tt.createWrite)
			}
		})
	}
}
