package mibxref

import "github.com/golangsnmp/mibxref/mib"

// Type aliases for public API - all types come from mib subpackage.

// Mib is the top-level container for a cross-referenced schema.
type Mib = mib.Mib

// Module is one SMI module and its symbol tables.
type Module = mib.Module

// Symbol is any named definition in a module.
type Symbol = mib.Symbol

// OidSymbol is a symbol with an OID value.
type OidSymbol = mib.OidSymbol

// OidNode is a point in the OID tree.
type OidNode = mib.OidNode

// Oid is a sequence of arc values representing an SNMP Object Identifier.
type Oid = mib.Oid

// Type is a type assignment, textual convention or anonymous type.
type Type = mib.Type

// ObjectType is an OBJECT-TYPE definition.
type ObjectType = mib.ObjectType

// Variable is a scalar or column.
type Variable = mib.Variable

// Row is a conceptual table row.
type Row = mib.Row

// Table is a conceptual table.
type Table = mib.Table

// NotificationType is a NOTIFICATION-TYPE definition.
type NotificationType = mib.NotificationType

// TrapType is an SMIv1 TRAP-TYPE definition.
type TrapType = mib.TrapType

// Definer injects predefined symbols into a named module.
type Definer = mib.Definer

// SymbolDefiner adds predefined symbols to a module.
type SymbolDefiner = mib.SymbolDefiner

// DefaultValue is a DEFVAL clause.
type DefaultValue = mib.DefaultValue

// Kind identifies the variant of a symbol.
type Kind = mib.Kind

// Access levels for OBJECT-TYPE definitions.
type Access = mib.Access

// Status values for definitions.
type Status = mib.Status

// Version identifies the SMI version of a module.
type Version = mib.Version

// PrimitiveType identifies the fundamental SMI type.
type PrimitiveType = mib.PrimitiveType

// Severity for diagnostics.
type Severity = mib.Severity

// Location is a position in a stub document.
type Location = mib.Location

// Diagnostic represents a resolution issue.
type Diagnostic = mib.Diagnostic

// Problems is the diagnostic stream of a schema.
type Problems = mib.Problems

// NewDefiner returns a Definer that runs fn against the named module.
var NewDefiner = mib.NewDefiner

// Version constants.
const (
	VersionUnknown = mib.VersionUnknown
	VersionV1      = mib.VersionV1
	VersionV2      = mib.VersionV2
)

// Severity constants (libsmi-compatible, lower = more severe).
const (
	SeverityFatal   = mib.SeverityFatal   // 0: Cannot continue
	SeveritySevere  = mib.SeveritySevere  // 1: Semantics changed to continue
	SeverityError   = mib.SeverityError   // 2: Should correct
	SeverityMinor   = mib.SeverityMinor   // 3: Minor issue
	SeverityStyle   = mib.SeverityStyle   // 4: Style recommendation
	SeverityWarning = mib.SeverityWarning // 5: Might be correct
	SeverityInfo    = mib.SeverityInfo    // 6: Informational
)

// StrictnessLevel defines preset strictness configurations.
type StrictnessLevel = mib.StrictnessLevel

// StrictnessLevel constants.
const (
	StrictnessStrict     = mib.StrictnessStrict
	StrictnessNormal     = mib.StrictnessNormal
	StrictnessPermissive = mib.StrictnessPermissive
	StrictnessSilent     = mib.StrictnessSilent
)

// DiagnosticConfig controls strictness and diagnostic filtering.
type DiagnosticConfig = mib.DiagnosticConfig

// Config constructors.
var (
	DefaultConfig    = mib.DefaultConfig
	StrictConfig     = mib.StrictConfig
	PermissiveConfig = mib.PermissiveConfig
)

// ParseOID parses an OID from a dotted string (e.g., "1.3.6.1.2.1").
var ParseOID = mib.ParseOID
