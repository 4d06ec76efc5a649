package main

import (
	"fmt"
	"strconv"

	"github.com/golangsnmp/mibxref/cmd/internal/cliutil"
)

type modulesCommand struct {
	global *globalOptions

	Args struct {
		Modules []string `positional-arg-name:"MODULE"`
	} `positional-args:"yes"`
}

func (c *modulesCommand) Execute(_ []string) error {
	m, err := c.global.load(c.Args.Modules, nil)
	if err != nil {
		return err
	}

	var rows [][]string
	for _, mod := range m.Modules() {
		source := mod.IDToken().Loc.Source
		if mod.IDToken().Loc.IsSynthetic() {
			source = "(built-in)"
		}
		rows = append(rows, []string{
			mod.ID(),
			mod.Version().String(),
			strconv.Itoa(mod.Symbols().Len()),
			strconv.Itoa(mod.ObjectTypes().Len()),
			strconv.Itoa(mod.Notifications().Len() + mod.Traps().Len()),
			source,
		})
	}
	out, err := cliutil.Table([]string{"Module", "Version", "Symbols", "Objects", "Notifications", "Source"}, rows)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
