// Package mib holds the symbol model of an SMI schema set and the
// cross-reference engine that resolves it.
package mib

import "fmt"

// Severity levels for diagnostics (libsmi-compatible).
// Lower values are more severe.
type Severity int

const (
	SeverityFatal   Severity = 0 // Cannot continue
	SeveritySevere  Severity = 1 // Semantics changed to continue, must correct
	SeverityError   Severity = 2 // Able to continue, should correct
	SeverityMinor   Severity = 3 // Minor issue, should correct
	SeverityStyle   Severity = 4 // Style recommendation
	SeverityWarning Severity = 5 // Might be correct under some circumstances
	SeverityInfo    Severity = 6 // Informational notice
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeveritySevere:
		return "severe"
	case SeverityError:
		return "error"
	case SeverityMinor:
		return "minor"
	case SeverityStyle:
		return "style"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("Severity(%d)", s)
	}
}

// ParseSeverity maps a severity name back to its value.
func ParseSeverity(s string) (Severity, bool) {
	for sev := SeverityFatal; sev <= SeverityInfo; sev++ {
		if sev.String() == s {
			return sev, true
		}
	}
	return 0, false
}

// StrictnessLevel defines preset strictness configurations.
type StrictnessLevel int

const (
	StrictnessStrict     StrictnessLevel = 0 // report everything
	StrictnessNormal     StrictnessLevel = 3 // Default, warn on issues
	StrictnessPermissive StrictnessLevel = 5 // Accept most real-world MIBs
	StrictnessSilent     StrictnessLevel = 6 // Accept everything, minimal output
)

func (l StrictnessLevel) String() string {
	switch l {
	case StrictnessStrict:
		return "strict"
	case StrictnessNormal:
		return "normal"
	case StrictnessPermissive:
		return "permissive"
	case StrictnessSilent:
		return "silent"
	default:
		return fmt.Sprintf("StrictnessLevel(%d)", l)
	}
}

// ParseStrictness maps a strictness name back to its level.
func ParseStrictness(s string) (StrictnessLevel, bool) {
	for _, l := range []StrictnessLevel{StrictnessStrict, StrictnessNormal, StrictnessPermissive, StrictnessSilent} {
		if l.String() == s {
			return l, true
		}
	}
	return 0, false
}

// Kind is the variant tag of a Symbol.
type Kind int

const (
	KindMacro Kind = iota
	KindType
	KindTextualConvention
	KindOidValue
	KindOidMacro
	KindObjectType
	KindVariable
	KindRow
	KindTable
	KindNotificationType
	KindTrapType
)

func (k Kind) String() string {
	switch k {
	case KindMacro:
		return "macro"
	case KindType:
		return "type"
	case KindTextualConvention:
		return "textual-convention"
	case KindOidValue:
		return "oid-value"
	case KindOidMacro:
		return "oid-macro"
	case KindObjectType:
		return "object-type"
	case KindVariable:
		return "variable"
	case KindRow:
		return "row"
	case KindTable:
		return "table"
	case KindNotificationType:
		return "notification-type"
	case KindTrapType:
		return "trap-type"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsType reports whether symbols of this kind are types.
func (k Kind) IsType() bool {
	return k == KindType || k == KindTextualConvention
}

// IsOidValue reports whether symbols of this kind are registered in the OID tree.
func (k Kind) IsOidValue() bool {
	switch k {
	case KindOidValue, KindOidMacro, KindObjectType, KindVariable, KindRow, KindTable, KindNotificationType:
		return true
	default:
		return false
	}
}

// IsObjectType reports whether this is an OBJECT-TYPE variant.
func (k Kind) IsObjectType() bool {
	switch k {
	case KindObjectType, KindVariable, KindRow, KindTable:
		return true
	default:
		return false
	}
}

// Access levels for OBJECT-TYPE definitions.
type Access int

const (
	AccessUnknown             Access = iota
	AccessNotAccessible              // both: not directly accessible
	AccessAccessibleForNotify        // SMIv2: only in notifications
	AccessReadOnly                   // both: GET only
	AccessReadWrite                  // both: GET and SET
	AccessReadCreate                 // SMIv2: GET, SET, row creation
	AccessWriteOnly                  // SMIv1: SET only (obsolete)
)

func (a Access) String() string {
	switch a {
	case AccessUnknown:
		return "unknown"
	case AccessNotAccessible:
		return "not-accessible"
	case AccessAccessibleForNotify:
		return "accessible-for-notify"
	case AccessReadOnly:
		return "read-only"
	case AccessReadWrite:
		return "read-write"
	case AccessReadCreate:
		return "read-create"
	case AccessWriteOnly:
		return "write-only"
	default:
		return fmt.Sprintf("Access(%d)", a)
	}
}

// IsReadable reports whether the object can be retrieved with GET.
func (a Access) IsReadable() bool {
	return a == AccessReadOnly || a == AccessReadWrite || a == AccessReadCreate
}

// IsWritable reports whether the object can be SET.
func (a Access) IsWritable() bool {
	return a == AccessReadWrite || a == AccessReadCreate || a == AccessWriteOnly
}

// IsCreateWritable reports whether the object can be SET during row creation.
func (a Access) IsCreateWritable() bool { return a == AccessReadCreate }

var (
	accessV1 = []Access{AccessReadOnly, AccessReadWrite, AccessWriteOnly, AccessNotAccessible}
	accessV2 = []Access{AccessNotAccessible, AccessAccessibleForNotify, AccessReadOnly, AccessReadWrite, AccessReadCreate}
)

// ParseAccessV1 maps an SMIv1 ACCESS keyword.
func ParseAccessV1(s string) (Access, bool) {
	return findAccess(accessV1, s)
}

// ParseAccessV2 maps an SMIv2 MAX-ACCESS keyword.
func ParseAccessV2(s string) (Access, bool) {
	return findAccess(accessV2, s)
}

func findAccess(set []Access, s string) (Access, bool) {
	for _, a := range set {
		if a.String() == s {
			return a, true
		}
	}
	return AccessUnknown, false
}

// Status values for MIB definitions.
// Preserves SMIv1-specific values (mandatory, optional) without normalizing.
type Status int

const (
	StatusUnknown    Status = iota
	StatusCurrent           // SMIv2: active definition
	StatusDeprecated        // SMIv2: being phased out
	StatusObsolete          // both: no longer used
	StatusMandatory         // SMIv1: agent MUST implement
	StatusOptional          // SMIv1: agent MAY implement
)

func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusCurrent:
		return "current"
	case StatusDeprecated:
		return "deprecated"
	case StatusObsolete:
		return "obsolete"
	case StatusMandatory:
		return "mandatory"
	case StatusOptional:
		return "optional"
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

// ParseStatus maps a STATUS keyword.
func ParseStatus(s string) (Status, bool) {
	for st := StatusCurrent; st <= StatusOptional; st++ {
		if st.String() == s {
			return st, true
		}
	}
	return StatusUnknown, false
}

// IsSMIv1 reports whether this is an SMIv1-specific status value.
func (s Status) IsSMIv1() bool {
	return s == StatusMandatory || s == StatusOptional
}

// Version is the inferred SMI language version of a module.
type Version int

const (
	VersionUnknown Version = iota // indeterminate
	VersionV1
	VersionV2
)

func (v Version) String() string {
	switch v {
	case VersionUnknown:
		return "unknown"
	case VersionV1:
		return "SMIv1"
	case VersionV2:
		return "SMIv2"
	default:
		return fmt.Sprintf("Version(%d)", v)
	}
}

// PrimitiveType is the fundamental classification of a type.
type PrimitiveType int

const (
	PrimitiveUnknown PrimitiveType = iota
	PrimitiveEnum
	PrimitiveInteger
	PrimitiveOctetString
	PrimitiveObjectIdentifier
	PrimitiveInteger32
	PrimitiveIpAddress
	PrimitiveCounter32
	PrimitiveGauge32
	PrimitiveUnsigned32
	PrimitiveTimeTicks
	PrimitiveOpaque
	PrimitiveCounter64
	PrimitiveBits
)

func (p PrimitiveType) String() string {
	switch p {
	case PrimitiveUnknown:
		return "unknown"
	case PrimitiveEnum:
		return "ENUM"
	case PrimitiveInteger:
		return "INTEGER"
	case PrimitiveOctetString:
		return "OCTET STRING"
	case PrimitiveObjectIdentifier:
		return "OBJECT IDENTIFIER"
	case PrimitiveInteger32:
		return "Integer32"
	case PrimitiveIpAddress:
		return "IpAddress"
	case PrimitiveCounter32:
		return "Counter32"
	case PrimitiveGauge32:
		return "Gauge32"
	case PrimitiveUnsigned32:
		return "Unsigned32"
	case PrimitiveTimeTicks:
		return "TimeTicks"
	case PrimitiveOpaque:
		return "Opaque"
	case PrimitiveCounter64:
		return "Counter64"
	case PrimitiveBits:
		return "BITS"
	default:
		return fmt.Sprintf("PrimitiveType(%d)", p)
	}
}
