// Package render turns decoded module values into the human-readable
// report. It never decodes anything itself.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/vitaminmoo/cmisw-tool/internal/cmis"
	"github.com/vitaminmoo/cmisw-tool/internal/sff"
)

func line(sb *strings.Builder, name string, format string, args ...any) {
	fmt.Fprintf(sb, "\t%-41s : ", name)
	fmt.Fprintf(sb, format, args...)
	sb.WriteString("\n")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func onOff(v bool) string {
	if v {
		return "On"
	}
	return "Off"
}

// dbm converts an optical power reading in mW to dBm, with a floor for
// zero/dark readings.
func dbm(mw float64) float64 {
	if mw <= 0 {
		return -40.0
	}
	return 10 * math.Log10(mw)
}

// Module renders the full report for a decoded module.
func Module(m *cmis.Module) string {
	var sb strings.Builder
	desc := &m.Descriptor
	diag := &m.Diagnostics

	line(&sb, "Identifier", "0x%02x (%s)", desc.Identifier, sff.IdentifierName(desc.Identifier))
	line(&sb, "Power class", "%d", desc.PowerClass)
	line(&sb, "Max power", "%.02fW", desc.MaxPowerW)
	line(&sb, "Connector", "0x%02x (%s)", desc.Connector, sff.ConnectorName(desc.Connector))

	if desc.CableAssembly.OverMax {
		line(&sb, "Cable assembly length", "> 6.3km")
	} else {
		line(&sb, "Cable assembly length", "%0.2fkm", desc.CableAssembly.KM)
	}

	if desc.CDR != nil {
		line(&sb, "Tx CDR bypass control", "%s", yesNo(desc.CDR.TxBypass))
		line(&sb, "Rx CDR bypass control", "%s", yesNo(desc.CDR.RxBypass))
		line(&sb, "Tx CDR", "%s", yesNo(desc.CDR.TxImplemented))
		line(&sb, "Rx CDR", "%s", yesNo(desc.CDR.RxImplemented))
	}

	line(&sb, "Transmitter technology", "0x%02x (%s)", byte(desc.Technology), desc.Technology)
	if desc.Copper != nil {
		line(&sb, "Attenuation at 5GHz", "%ddb", desc.Copper.Atten5GHz)
		line(&sb, "Attenuation at 7GHz", "%ddb", desc.Copper.Atten7GHz)
		line(&sb, "Attenuation at 12.9GHz", "%ddb", desc.Copper.Atten12p9GHz)
		line(&sb, "Attenuation at 25.8GHz", "%ddb", desc.Copper.Atten25p8GHz)
	}
	if desc.Optical != nil {
		line(&sb, "Laser wavelength", "%.3fnm", desc.Optical.WavelengthNM)
		line(&sb, "Laser wavelength tolerance", "%.3fnm", desc.Optical.ToleranceNM)
	}

	temperature(&sb, "Module temperature", diag.TemperatureC)
	voltage(&sb, "Module voltage", diag.VoltageV)

	if diag.Extended {
		lanes(&sb, diag)
		flags(&sb, diag)
		thresholds(&sb, diag)
	}

	if desc.LinkLengths != nil {
		linkLengths(&sb, desc.LinkLengths)
	}

	vendor(&sb, &desc.Vendor)
	line(&sb, "Revision compliance", "%s", desc.Revision)

	return sb.String()
}

func temperature(sb *strings.Builder, name string, c float64) {
	line(sb, name, "%.04f degrees C / %.04f degrees F", c, c*9/5+32)
}

func voltage(sb *strings.Builder, name string, v float64) {
	line(sb, name, "%.04fV", v)
}

func bias(sb *strings.Builder, name string, ma float64) {
	line(sb, name, "%.03fmA", ma)
}

func power(sb *strings.Builder, name string, mw float64) {
	line(sb, name, "%.04fmW / %.02fdBm", mw, dbm(mw))
}

func lanes(sb *strings.Builder, d *cmis.Diagnostics) {
	for i, lane := range d.Lanes {
		bias(sb, fmt.Sprintf("Tx bias current monitor (Channel %d)", i+1), lane.BiasMA)
	}
	for i, lane := range d.Lanes {
		power(sb, fmt.Sprintf("Tx output optical power (Channel %d)", i+1), lane.TxPowerMW)
	}
	for i, lane := range d.Lanes {
		power(sb, fmt.Sprintf("Rx input optical power (Channel %d)", i+1), lane.RxPowerMW)
	}
}

var flagNames = [cmis.NumThresholdKinds]string{
	"%s power high alarm   (Channel %d)",
	"%s power low alarm    (Channel %d)",
	"%s power high warning (Channel %d)",
	"%s power low warning  (Channel %d)",
}

// flags prints the per-channel alarm/warning state. Each direction uses
// its own decoded table.
func flags(sb *strings.Builder, d *cmis.Diagnostics) {
	for lane := 0; lane < cmis.MaxLanes; lane++ {
		for kind := 0; kind < cmis.NumThresholdKinds; kind++ {
			name := fmt.Sprintf(flagNames[kind], "Rx", lane+1)
			line(sb, name, "%s", onOff(d.RxFlags[lane][kind]))
		}
	}
	for lane := 0; lane < cmis.MaxLanes; lane++ {
		for kind := 0; kind < cmis.NumThresholdKinds; kind++ {
			name := fmt.Sprintf(flagNames[kind], "Tx", lane+1)
			line(sb, name, "%s", onOff(d.TxFlags[lane][kind]))
		}
	}
}

func thresholds(sb *strings.Builder, d *cmis.Diagnostics) {
	kinds := [cmis.NumThresholdKinds]cmis.ThresholdKind{
		cmis.HighAlarm, cmis.LowAlarm, cmis.HighWarning, cmis.LowWarning,
	}
	for _, k := range kinds {
		bias(sb, fmt.Sprintf("Laser bias current %s threshold", k), d.BiasThresholdsMA[k])
	}
	for _, k := range kinds {
		power(sb, fmt.Sprintf("Laser output power %s threshold", k), d.TxPowerThresholdsMW[k])
	}
	for _, k := range kinds {
		temperature(sb, fmt.Sprintf("Module temperature %s threshold", k), d.TempThresholdsC[k])
	}
	for _, k := range kinds {
		voltage(sb, fmt.Sprintf("Module voltage %s threshold", k), d.VoltThresholdsV[k])
	}
	for _, k := range kinds {
		power(sb, fmt.Sprintf("Laser rx power %s threshold", k), d.RxPowerThresholdsMW[k])
	}
}

func linkLengths(sb *strings.Builder, ll *cmis.LinkLengths) {
	line(sb, "Length (SMF)", "%0.2fkm", ll.SMF.KM)
	line(sb, "Length (OM5)", "%dm", ll.OM5M)
	line(sb, "Length (OM4)", "%dm", ll.OM4M)
	line(sb, "Length (OM3 50/125um)", "%dm", ll.OM3M)
	line(sb, "Length (OM2 50/125um)", "%dm", ll.OM2M)
}

func vendor(sb *strings.Builder, v *cmis.Vendor) {
	line(sb, "Vendor name", "%s", v.Name)
	line(sb, "Vendor OUI", "%s", v.OUI)
	line(sb, "Vendor PN", "%s", v.PartNumber)
	line(sb, "Vendor rev", "%s", v.Revision)
	line(sb, "Vendor SN", "%s", v.SerialNumber)
	line(sb, "Date code", "%s", v.DateCode)
	if v.CLEI != "" {
		line(sb, "CLEI code", "%s", v.CLEI)
	}
}
