// Package sff holds the SFF-8024 code tables shared across module families.
package sff

import "fmt"

// IdentifierName returns a string description for a module identifier code
func IdentifierName(code byte) string {
	switch code {
	case 0x01:
		return "GBIC"
	case 0x02:
		return "Module soldered to motherboard"
	case 0x03:
		return "SFP/SFP+"
	case 0x0C:
		return "QSFP"
	case 0x0D:
		return "QSFP+"
	case 0x11:
		return "QSFP28"
	case 0x18:
		return "QSFP-DD"
	case 0x19:
		return "OSFP"
	case 0x1B:
		return "DSFP"
	case 0x1E:
		return "QSFP+ (CMIS)"
	default:
		return fmt.Sprintf("Unknown (0x%02x)", code)
	}
}

// IsCMIS reports whether the identifier code belongs to a CMIS-managed
// module family.
func IsCMIS(code byte) bool {
	switch code {
	case 0x18, 0x19, 0x1B, 0x1E:
		return true
	}
	return false
}

// ConnectorName returns a string description for a connector type code
func ConnectorName(code byte) string {
	switch code {
	case 0x00:
		return "Unknown"
	case 0x01:
		return "SC"
	case 0x02:
		return "FC Style 1"
	case 0x03:
		return "FC Style 2"
	case 0x04:
		return "BNC/TNC"
	case 0x05:
		return "FC coax"
	case 0x06:
		return "Fiber Jack"
	case 0x07:
		return "LC"
	case 0x08:
		return "MT-RJ"
	case 0x09:
		return "MU"
	case 0x0A:
		return "SG"
	case 0x0B:
		return "Optical Pigtail"
	case 0x0C:
		return "MPO 1x12"
	case 0x0D:
		return "MPO 2x16"
	case 0x20:
		return "HSSDC II"
	case 0x21:
		return "Copper Pigtail"
	case 0x22:
		return "RJ45"
	case 0x23:
		return "No separable connector"
	case 0x24:
		return "MXC 2x16"
	case 0x25:
		return "CS optical connector"
	case 0x27:
		return "MPO 1x16"
	default:
		return "Vendor specific"
	}
}
