// Command mibxref loads SMI module stubs, cross-references them and queries
// the resolved schema.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/jessevdk/go-flags"

	"github.com/golangsnmp/mibxref"
	"github.com/golangsnmp/mibxref/cmd/internal/cliutil"
	"github.com/golangsnmp/mibxref/mib"
)

// Exit codes.
const (
	exitOK    = 0 // success
	exitError = 1 // user error, load failure, or problems at the failure threshold
)

// errNotOK is returned by commands whose schema has failing problems. The
// problems have already been printed.
var errNotOK = errors.New("problems found")

type globalOptions struct {
	Paths   []string `short:"p" long:"path" value-name:"DIR" description:"Add a stub directory (repeatable)"`
	Config  string   `short:"c" long:"config" value-name:"FILE" description:"TOML configuration file"`
	Verbose []bool   `short:"v" long:"verbose" description:"Enable debug logging (repeat for trace)"`
	NoColor bool     `long:"no-color" description:"Disable colored output"`
	Version bool     `long:"version" description:"Show version"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var g globalOptions
	parser := newParser(&g)

	_, err := parser.ParseArgs(args)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errNotOK):
		return exitError
	}
	var ferr *flags.Error
	if errors.As(err, &ferr) {
		switch ferr.Type {
		case flags.ErrHelp:
			fmt.Fprintln(os.Stdout, ferr.Message)
			return exitOK
		case flags.ErrCommandRequired:
			if g.Version {
				printVersion()
				return exitOK
			}
		}
	}
	cliutil.PrintError("%v", err)
	return exitError
}

func newParser(g *globalOptions) *flags.Parser {
	parser := flags.NewParser(g, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "mibxref"
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		cliutil.SetColor(!g.NoColor)
		return cmd.Execute(args)
	}

	commands := []struct {
		name, short, long string
		data              any
	}{
		{"check", "Resolve modules and report problems",
			"Load and cross-reference modules, print the recorded problems and exit non-zero when any reaches the failure threshold.",
			&checkCommand{global: g}},
		{"get", "Look up a symbol or OID",
			"Show the symbols named NAME (or MODULE::NAME), or the node at a dotted OID with its claimants.",
			&getCommand{global: g}},
		{"tree", "Render the OID tree",
			"Render the OID tree below a node, or below the root when no OID is given.",
			&treeCommand{global: g}},
		{"modules", "List loaded modules",
			"List the modules of the resolved schema with their inferred SMI version and symbol counts.",
			&modulesCommand{global: g}},
		{"paths", "Show stub search paths",
			"Show the stub directories that would be searched. Without -p, shows the directories from MIBXREF_PATH, paths.conf and the defaults.",
			&pathsCommand{global: g}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			panic(err)
		}
	}
	return parser
}

func (g *globalOptions) logger() *slog.Logger {
	if len(g.Verbose) == 0 {
		return nil
	}
	level := slog.LevelDebug
	if len(g.Verbose) >= 2 {
		level = mibxref.LevelTrace
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// load builds the load options from the config file and flags and loads
// modules (everything when modules is empty). adjust, when set, edits the
// diagnostic configuration after the config file is applied.
func (g *globalOptions) load(modules []string, adjust func(*mib.DiagnosticConfig) error) (*mib.Mib, error) {
	var opts []mibxref.Option
	dc := mib.DefaultConfig()
	hasPaths := false

	if g.Config != "" {
		cfg, err := mibxref.LoadConfigFile(g.Config)
		if err != nil {
			return nil, err
		}
		cfgOpts, err := cfg.Options()
		if err != nil {
			return nil, err
		}
		opts = append(opts, cfgOpts...)
		if dc, err = cfg.DiagnosticConfig(); err != nil {
			return nil, err
		}
		hasPaths = len(cfg.Paths) > 0 || cfg.SystemPaths
	}

	for _, p := range g.Paths {
		src, err := mibxref.DirTree(p)
		if err != nil {
			cliutil.PrintError("cannot access path %s: %v", p, err)
			continue
		}
		opts = append(opts, mibxref.WithSource(src))
		hasPaths = true
	}
	if !hasPaths {
		if len(g.Paths) > 0 {
			return nil, mibxref.ErrNoSources
		}
		opts = append(opts, mibxref.WithSystemPaths())
	}

	if adjust != nil {
		if err := adjust(&dc); err != nil {
			return nil, err
		}
		opts = append(opts, mibxref.WithDiagnosticConfig(dc))
	}
	if logger := g.logger(); logger != nil {
		opts = append(opts, mibxref.WithLogger(logger))
	}
	if len(modules) > 0 {
		opts = append(opts, mibxref.WithModules(modules...))
	}
	return mibxref.Load(context.Background(), opts...)
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("mibxref %s\n", version)
}
