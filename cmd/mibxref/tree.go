package main

import (
	"fmt"
	"strconv"

	"github.com/golangsnmp/mibxref/cmd/internal/cliutil"
	"github.com/golangsnmp/mibxref/mib"
)

type treeCommand struct {
	global *globalOptions

	Modules []string `short:"m" long:"module" value-name:"MODULE" description:"Load only this module and its imports (repeatable)"`
	Depth   int      `short:"d" long:"depth" value-name:"N" description:"Levels to render below the start node, 0 for all"`

	Args struct {
		OID string `positional-arg-name:"OID"`
	} `positional-args:"yes"`
}

func (c *treeCommand) Execute(_ []string) error {
	m, err := c.global.load(c.Modules, nil)
	if err != nil {
		return err
	}

	start := m.RootNode()
	if c.Args.OID != "" {
		node, err := m.FindByOidString(c.Args.OID)
		if err != nil {
			return err
		}
		if node == nil {
			return fmt.Errorf("no node at %s", c.Args.OID)
		}
		start = node
	}

	lines := treeLines(start, c.Depth)
	if len(lines) == 0 {
		return nil
	}
	out, err := cliutil.Tree(lines)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// treeLines lists the subtree of start in preorder. The unnamed root is not
// listed itself; its children are the top level.
func treeLines(start *mib.OidNode, depth int) []cliutil.TreeLine {
	base := len(start.Oid())
	if start.IsRoot() {
		base = 1
	}
	var lines []cliutil.TreeLine
	for n := range start.Subtree() {
		if n.IsRoot() {
			continue
		}
		level := len(n.Oid()) - base
		if depth > 0 && level > depth {
			continue
		}
		lines = append(lines, cliutil.TreeLine{Level: level, Text: nodeLabel(n)})
	}
	return lines
}

func nodeLabel(n *mib.OidNode) string {
	arc := strconv.FormatUint(uint64(n.Arc()), 10)
	name := n.Name()
	if name == "" {
		return arc
	}
	label := name + "(" + arc + ")"
	if extra := len(n.Values()) - 1; extra > 0 {
		label += " +" + strconv.Itoa(extra)
	}
	return label
}
