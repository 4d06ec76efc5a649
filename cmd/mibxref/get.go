package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/golangsnmp/mibxref/cmd/internal/cliutil"
	"github.com/golangsnmp/mibxref/mib"
)

type getCommand struct {
	global *globalOptions

	Modules []string `short:"m" long:"module" value-name:"MODULE" description:"Load only this module and its imports (repeatable)"`

	Args struct {
		Query string `positional-arg-name:"NAME|OID" required:"yes"`
	} `positional-args:"yes"`
}

func (c *getCommand) Execute(_ []string) error {
	m, err := c.global.load(c.Modules, nil)
	if err != nil {
		return err
	}

	if oid, err := mib.ParseOID(c.Args.Query); err == nil {
		return printNode(m, oid)
	}

	var symbols []mib.Symbol
	if modID, id, ok := strings.Cut(c.Args.Query, "::"); ok {
		s, err := m.Symbols().FindIn(modID, id)
		if err != nil {
			return err
		}
		if s != nil {
			symbols = append(symbols, s)
		}
	} else {
		symbols = m.Symbols().FindAll(c.Args.Query)
	}
	if len(symbols) == 0 {
		return fmt.Errorf("symbol not found: %s", c.Args.Query)
	}
	return printSymbols(symbols)
}

func printNode(m *mib.Mib, oid mib.Oid) error {
	node, full := m.FindByOidPrefix(oid)
	if node.IsRoot() {
		return fmt.Errorf("no node matches %s", oid)
	}
	if !full {
		pterm.Warning.Printfln("no node at %s; deepest match is %s (%s)", oid, node.OidString(), node.Name())
	}
	var values []mib.Symbol
	for _, v := range node.Values() {
		values = append(values, v)
	}
	if len(values) == 0 {
		pterm.Info.Printfln("%s has no claimants", node.OidString())
		return nil
	}
	return printSymbols(values)
}

func printSymbols(symbols []mib.Symbol) error {
	rows := make([][]string, 0, len(symbols))
	for _, s := range symbols {
		rows = append(rows, describe(s))
	}
	out, err := cliutil.Table([]string{"Module", "Name", "Kind", "OID", "Type", "Access", "Status"}, rows)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// describe returns the table row of a symbol; columns that do not apply are
// left empty.
func describe(s mib.Symbol) []string {
	row := []string{s.Module().ID(), s.ID(), s.Kind().String(), "", "", "", ""}
	switch v := s.(type) {
	case mib.ObjectTypeSymbol:
		ot := v.ObjectBase()
		row[3] = ot.OidString()
		row[4] = cliutil.TypeChain(ot.Type())
		row[5] = ot.Access().String()
		row[6] = ot.Status().String()
	case *mib.OidMacro:
		row[3] = v.OidString()
		row[6] = v.Status().String()
	case *mib.NotificationType:
		row[3] = v.OidString()
		row[6] = v.Status().String()
	case mib.OidSymbol:
		row[3] = v.OidBase().OidString()
	case *mib.TrapType:
		row[3] = v.OidString()
	case *mib.Type:
		row[4] = cliutil.TypeChain(v) + " [" + v.PrimitiveType().String() + "]"
	}
	return row
}
