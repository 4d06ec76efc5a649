package main

import (
	"fmt"
	"os"

	"github.com/golangsnmp/mibxref"
)

type pathsCommand struct {
	global *globalOptions
}

func (c *pathsCommand) Execute(_ []string) error {
	paths := c.global.Paths
	if len(paths) == 0 {
		paths = mibxref.SystemPaths(c.global.logger())
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "no search paths found")
		return nil
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}
