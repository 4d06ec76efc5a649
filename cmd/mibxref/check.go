package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/golangsnmp/mibxref"
	"github.com/golangsnmp/mibxref/cmd/internal/cliutil"
	"github.com/golangsnmp/mibxref/mib"
)

type checkCommand struct {
	global *globalOptions

	Strictness string   `long:"strictness" choice:"strict" choice:"normal" choice:"permissive" choice:"silent" description:"Strictness level"`
	FailAt     string   `long:"fail-at" value-name:"SEVERITY" description:"Fail on problems at this severity or worse (fatal, severe, error, minor, style, warning, info)"`
	Ignore     []string `long:"ignore" value-name:"CODE" description:"Ignore a diagnostic code, globs allowed (repeatable)"`
	Summary    bool     `long:"summary" description:"Print only the counts by severity"`
	JSON       bool     `long:"json" description:"Print problems as JSON"`

	Args struct {
		Modules []string `positional-arg-name:"MODULE"`
	} `positional-args:"yes"`
}

type jsonDiagnostic struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Source   string `json:"source,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

func (c *checkCommand) adjust(dc *mib.DiagnosticConfig) error {
	if c.Strictness != "" {
		level, _ := mib.ParseStrictness(c.Strictness)
		dc.Level = level
	}
	if c.FailAt != "" {
		sev, ok := mib.ParseSeverity(c.FailAt)
		if !ok {
			return fmt.Errorf("unknown severity %q", c.FailAt)
		}
		dc.FailAt = sev
	}
	dc.Ignore = append(dc.Ignore, c.Ignore...)
	return nil
}

func (c *checkCommand) Execute(_ []string) error {
	m, err := c.global.load(c.Args.Modules, c.adjust)
	var (
		p       *mib.Problems
		modules int
		rerr    *mibxref.ResolutionError
	)
	switch {
	case errors.As(err, &rerr):
		p, modules = rerr.Problems, rerr.Modules
	case err != nil:
		return err
	default:
		p, modules = m.Problems(), len(m.Modules())
	}

	switch {
	case c.JSON:
		if err := printDiagnosticsJSON(p.All()); err != nil {
			return err
		}
	case c.Summary:
		printSummary(modules, p)
	default:
		for _, d := range p.All() {
			fmt.Println(cliutil.FormatDiagnostic(d))
		}
		printSummary(modules, p)
	}

	if p.NotOK() {
		return errNotOK
	}
	return nil
}

func printSummary(modules int, p *mib.Problems) {
	var counts []string
	for sev := mib.SeverityFatal; sev <= mib.SeverityInfo; sev++ {
		if n := p.CountSeverity(sev); n > 0 {
			counts = append(counts, cliutil.SeverityStyle(sev).Sprintf("%d %s", n, sev))
		}
	}
	msg := fmt.Sprintf("%d modules, %d problems", modules, p.Count())
	for i, c := range counts {
		if i == 0 {
			msg += ": "
		} else {
			msg += ", "
		}
		msg += c
	}
	if p.NotOK() {
		pterm.Error.Println(msg)
	} else {
		pterm.Success.Println(msg)
	}
}

func printDiagnosticsJSON(diags []mib.Diagnostic) error {
	out := make([]jsonDiagnostic, len(diags))
	for i, d := range diags {
		out[i] = jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code,
			Message:  d.Message(),
			Source:   d.Location.Source,
			Line:     d.Location.Line,
			Column:   d.Location.Column,
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
