// Package cliutil provides shared terminal output for the mibxref command.
package cliutil

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/golangsnmp/mibxref/mib"
)

// Severity styles, most severe first.
var (
	SevereStyle  = pterm.NewStyle(pterm.FgRed, pterm.Bold)
	ErrorStyle   = pterm.NewStyle(pterm.FgRed)
	MinorStyle   = pterm.NewStyle(pterm.FgYellow)
	WarningStyle = pterm.NewStyle(pterm.FgLightYellow)
	InfoStyle    = pterm.NewStyle(pterm.FgCyan)
)

// SetColor enables or disables colored output globally.
func SetColor(enabled bool) {
	if enabled {
		pterm.EnableColor()
	} else {
		pterm.DisableColor()
	}
}

// PrintError writes a formatted error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintln(os.Stderr, pterm.Error.Sprintf(format, args...))
}

// SeverityStyle returns the style used to print a severity.
func SeverityStyle(sev mib.Severity) *pterm.Style {
	switch {
	case sev <= mib.SeveritySevere:
		return SevereStyle
	case sev == mib.SeverityError:
		return ErrorStyle
	case sev <= mib.SeverityStyle:
		return MinorStyle
	case sev == mib.SeverityWarning:
		return WarningStyle
	default:
		return InfoStyle
	}
}

// FormatDiagnostic renders a diagnostic as one colored line.
func FormatDiagnostic(d mib.Diagnostic) string {
	sev := SeverityStyle(d.Severity).Sprintf("%-7s", d.Severity)
	return sev + " " + d.Location.String() + ": " + d.Message() + " " +
		pterm.FgGray.Sprint("("+d.Code+")")
}

// Table renders rows under a header.
func Table(header []string, rows [][]string) (string, error) {
	data := pterm.TableData{header}
	data = append(data, rows...)
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// TreeLine is one node of an indented tree listing.
type TreeLine struct {
	Level int
	Text  string
}

// Tree renders indented lines as a tree.
func Tree(lines []TreeLine) (string, error) {
	list := make(pterm.LeveledList, len(lines))
	for i, l := range lines {
		list[i] = pterm.LeveledListItem{Level: l.Level, Text: l.Text}
	}
	return pterm.DefaultTree.WithRoot(putils.TreeFromLeveledList(list)).Srender()
}

// TypeChain returns the ids along a type's base chain, "-" for anonymous
// types. It stops at the first repeated type.
func TypeChain(t *mib.Type) string {
	var out []string
	var seen []*mib.Type
	for cur := t; cur != nil; cur = cur.BaseType() {
		if slices.Contains(seen, cur) {
			break
		}
		seen = append(seen, cur)
		id := cur.ID()
		if id == "" {
			id = "-"
		}
		out = append(out, id)
	}
	return strings.Join(out, " -> ")
}
