package util

import (
	"fmt"
	"strings"
)

// TrimASCII interprets a byte span as space-padded ASCII and trims the
// padding. Zero-filled or non-printable spans decode to an empty string.
func TrimASCII(data []byte) string {
	for _, b := range data {
		if b != 0 && (b < 32 || b > 126) {
			return ""
		}
	}
	return strings.TrimRight(strings.TrimRight(string(data), "\x00"), " ")
}

// IsTextData checks if a byte slice contains only printable ASCII text
func IsTextData(data []byte) bool {
	for _, b := range data {
		if b < 32 && b != 9 && b != 10 && b != 13 || b > 126 {
			return false
		}
	}
	return true
}

// HexDump formats data in hex dump format
func HexDump(data []byte) string {
	var sb strings.Builder
	for i := 0; i < len(data); i += 16 {
		// Address
		fmt.Fprintf(&sb, "%04x  ", i)

		// Hex bytes
		for j := 0; j < 16; j++ {
			if i+j < len(data) {
				fmt.Fprintf(&sb, "%02x ", data[i+j])
			} else {
				sb.WriteString("   ")
			}
			if j == 7 {
				sb.WriteString(" ")
			}
		}

		// ASCII
		sb.WriteString(" |")
		for j := 0; j < 16 && i+j < len(data); j++ {
			b := data[i+j]
			if b >= 32 && b < 127 {
				sb.WriteByte(b)
			} else {
				sb.WriteString(".")
			}
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}
