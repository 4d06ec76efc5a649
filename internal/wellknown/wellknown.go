// Package wellknown defines the symbols of the SMI base modules, so schemas
// can import from SNMPv2-SMI, RFC1155-SMI and friends without their sources.
package wellknown

import (
	"math/big"

	"github.com/golangsnmp/mibxref/mib"
)

// Definers returns the standard definers in injection order.
func Definers() []mib.Definer {
	return []mib.Definer{
		mib.NewDefiner("SNMPv2-SMI", defineSNMPv2SMI),
		mib.NewDefiner("RFC1155-SMI", defineRFC1155SMI),
		mib.NewDefiner("RFC-1212", defineRFC1212),
		mib.NewDefiner("RFC-1215", defineRFC1215),
		mib.NewDefiner("SNMPv2-TC", defineSNMPv2TC),
		mib.NewDefiner("SNMPv2-CONF", defineSNMPv2CONF),
	}
}

// markVersion counts one feature of v for a module with no counts yet, so
// the synthetic base modules take part in version tie-breaking.
func markVersion(mod *mib.Module, v mib.Version) {
	if v1, v2 := mod.FeatureCounts(); v1 != 0 || v2 != 0 {
		return
	}
	switch v {
	case mib.VersionV1:
		mod.IncV1Features()
	case mib.VersionV2:
		mod.IncV2Features()
	}
}

// internetTree adds the registration subtree shared by both SMI versions.
func internetTree(d *mib.SymbolDefiner) {
	d.AddOid("org", "iso", "3")
	d.AddOid("dod", "org", "6")
	d.AddOid("internet", "iso", "org(3)", "dod(6)", "1")
	d.AddOid("directory", "internet", "1")
	d.AddOid("mgmt", "internet", "2")
	d.AddOid("mib-2", "mgmt", "1")
	d.AddOid("transmission", "mib-2", "10")
	d.AddOid("experimental", "internet", "3")
	d.AddOid("private", "internet", "4")
	d.AddOid("enterprises", "private", "1")
}

var (
	size4       = []mib.Range{mib.NewRange(4, 4)}
	uint32Range = []mib.Range{mib.NewRange(0, 4294967295)}
	uint64Range = []mib.Range{{Min: new(big.Int), Max: new(big.Int).SetUint64(18446744073709551615)}}
)

func defineSNMPv2SMI(d *mib.SymbolDefiner) {
	markVersion(d.Module(), mib.VersionV2)

	d.AddMacro("MODULE-IDENTITY")
	d.AddMacro("OBJECT-IDENTITY")
	d.AddMacro("OBJECT-TYPE")
	d.AddMacro("NOTIFICATION-TYPE")

	internetTree(d)
	d.AddOid("security", "internet", "5")
	d.AddOid("snmpV2", "internet", "6")
	d.AddOid("snmpDomains", "snmpV2", "1")
	d.AddOid("snmpProxys", "snmpV2", "2")
	d.AddOid("snmpModules", "snmpV2", "3")
	d.AddOid("zeroDotZero", "0", "0")

	d.AddInteger32Type("Integer32")
	d.AddApplicationType("IpAddress", 0, mib.PrimitiveIpAddress, mib.PrimitiveOctetString, size4, nil)
	d.AddApplicationType("Counter32", 1, mib.PrimitiveCounter32, mib.PrimitiveInteger, nil, uint32Range)
	d.AddApplicationType("Gauge32", 2, mib.PrimitiveGauge32, mib.PrimitiveInteger, nil, uint32Range)
	d.AddApplicationType("Unsigned32", 2, mib.PrimitiveUnsigned32, mib.PrimitiveInteger, nil, uint32Range)
	d.AddApplicationType("TimeTicks", 3, mib.PrimitiveTimeTicks, mib.PrimitiveInteger, nil, uint32Range)
	d.AddApplicationType("Opaque", 4, mib.PrimitiveOpaque, mib.PrimitiveOctetString, nil, nil)
	d.AddApplicationType("Counter64", 6, mib.PrimitiveCounter64, mib.PrimitiveInteger, nil, uint64Range)
	d.AddType("ObjectName", mib.PrimitiveObjectIdentifier)
	d.AddType("NotificationName", mib.PrimitiveObjectIdentifier)
	d.AddChoiceType("ObjectSyntax")
	d.AddChoiceType("SimpleSyntax")
	d.AddChoiceType("ApplicationSyntax")
}

func defineRFC1155SMI(d *mib.SymbolDefiner) {
	markVersion(d.Module(), mib.VersionV1)

	internetTree(d)

	d.AddChoiceType("NetworkAddress")
	d.AddApplicationType("IpAddress", 0, mib.PrimitiveIpAddress, mib.PrimitiveOctetString, size4, nil)
	d.AddApplicationType("Counter", 1, mib.PrimitiveCounter32, mib.PrimitiveInteger, nil, uint32Range)
	d.AddApplicationType("Gauge", 2, mib.PrimitiveGauge32, mib.PrimitiveInteger, nil, uint32Range)
	d.AddApplicationType("TimeTicks", 3, mib.PrimitiveTimeTicks, mib.PrimitiveInteger, nil, uint32Range)
	d.AddApplicationType("Opaque", 4, mib.PrimitiveOpaque, mib.PrimitiveOctetString, nil, nil)
	d.AddType("ObjectName", mib.PrimitiveObjectIdentifier)
	d.AddChoiceType("ObjectSyntax")
	d.AddChoiceType("SimpleSyntax")
	d.AddChoiceType("ApplicationSyntax")
}

func defineRFC1212(d *mib.SymbolDefiner) {
	markVersion(d.Module(), mib.VersionV1)
	d.AddMacro("OBJECT-TYPE")
	d.AddChoiceType("IndexSyntax")
}

func defineRFC1215(d *mib.SymbolDefiner) {
	markVersion(d.Module(), mib.VersionV1)
	d.AddMacro("TRAP-TYPE")
}

func defineSNMPv2TC(d *mib.SymbolDefiner) {
	markVersion(d.Module(), mib.VersionV2)
	d.AddMacro("TEXTUAL-CONVENTION")
}

func defineSNMPv2CONF(d *mib.SymbolDefiner) {
	markVersion(d.Module(), mib.VersionV2)
	d.AddMacro("OBJECT-GROUP")
	d.AddMacro("NOTIFICATION-GROUP")
	d.AddMacro("MODULE-COMPLIANCE")
	d.AddMacro("AGENT-CAPABILITIES")
}
