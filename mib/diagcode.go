package mib

// Diagnostic codes emitted by the cross-reference phases.
// Centralizing these prevents silent breakage from typos in string literals.

// Symbol lookup codes.
const (
	DiagSymbolNotFound  = "symbol-not-found"
	DiagSymbolWrongKind = "symbol-wrong-kind"
	DiagSymbolAmbiguous = "symbol-ambiguous"
	DiagSymbolDuplicate = "symbol-duplicate"
	DiagModuleDuplicate = "module-duplicate"
	DiagModuleNotFound  = "module-not-found"
	DiagImportNotFound  = "import-not-found"
)

// OID tree codes.
const (
	DiagOidParentMissing         = "oid-parent-missing"
	DiagOidValueMissing          = "oid-value-missing"
	DiagOidNonTerminalUnresolved = "oid-nonterminal-unresolved"
	DiagOidCycle                 = "oid-cycle"
	DiagOidValueMismatch         = "oid-value-mismatch"
)

// Type and object codes.
const (
	DiagTypeCycle        = "type-cycle"
	DiagAccessInvalid    = "access-invalid"
	DiagMaxAccessInvalid = "max-access-invalid"
)

// Default value codes.
const (
	DiagDefvalBitsOnNonBits    = "defval-bits-on-non-bits"
	DiagDefvalInvalidReference = "defval-invalid-reference"
	DiagBitFieldNotFound       = "bit-field-not-found"
	DiagEnumConstantNotFound   = "enum-constant-not-found"
)

// DiagCodeInfo describes a diagnostic code and the category it belongs to.
type DiagCodeInfo struct {
	Code     string
	Category string // unresolved-symbol, wrong-symbol-kind, ...
	Severity Severity
}

// AllDiagnosticCodes returns every code with its default severity.
func AllDiagnosticCodes() []DiagCodeInfo {
	return []DiagCodeInfo{
		{Code: DiagSymbolNotFound, Category: "unresolved-symbol", Severity: SeverityError},
		{Code: DiagSymbolWrongKind, Category: "wrong-symbol-kind", Severity: SeverityError},
		{Code: DiagSymbolAmbiguous, Category: "ambiguous-symbol", Severity: SeverityError},
		{Code: DiagSymbolDuplicate, Category: "duplicate-symbol", Severity: SeverityError},
		{Code: DiagModuleDuplicate, Category: "duplicate-module", Severity: SeveritySevere},
		{Code: DiagModuleNotFound, Category: "unresolved-symbol", Severity: SeverityError},
		{Code: DiagImportNotFound, Category: "unresolved-symbol", Severity: SeverityError},
		{Code: DiagOidParentMissing, Category: "missing-oid-parent", Severity: SeverityError},
		{Code: DiagOidValueMissing, Category: "missing-oid-value", Severity: SeverityError},
		{Code: DiagOidNonTerminalUnresolved, Category: "unresolved-symbol", Severity: SeverityError},
		{Code: DiagOidCycle, Category: "missing-oid-parent", Severity: SeveritySevere},
		{Code: DiagOidValueMismatch, Category: "missing-oid-value", Severity: SeverityWarning},
		{Code: DiagTypeCycle, Category: "unresolved-symbol", Severity: SeveritySevere},
		{Code: DiagAccessInvalid, Category: "invalid-access-keyword", Severity: SeverityError},
		{Code: DiagMaxAccessInvalid, Category: "invalid-access-keyword", Severity: SeverityError},
		{Code: DiagDefvalBitsOnNonBits, Category: "malformed-default-value", Severity: SeverityError},
		{Code: DiagDefvalInvalidReference, Category: "malformed-default-value", Severity: SeverityMinor},
		{Code: DiagBitFieldNotFound, Category: "malformed-default-value", Severity: SeverityError},
		{Code: DiagEnumConstantNotFound, Category: "malformed-default-value", Severity: SeverityError},
	}
}
