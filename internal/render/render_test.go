package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaminmoo/cmisw-tool/internal/cmis"
)

func opticalImage() []byte {
	m := make([]byte, cmis.ExtendedLen)
	m[0x00] = 0x18
	m[0x01] = 0x40
	m[0x0E], m[0x0F] = 0x19, 0x00 // 25.0 C
	m[0x10], m[0x11] = 0x80, 0xE8 // 3.3 V
	m[0x55] = 0x02                // SMF

	copy(m[0x81:], "ACME PHOTONICS  ")
	m[0x91], m[0x92], m[0x93] = 0x00, 0x17, 0x6A
	copy(m[0x94:], "QDD-400G-LR4    ")
	copy(m[0xA6:], "SN0123456789    ")
	copy(m[0xB6:], "20260815")
	m[0xC8] = 0x40
	m[0xC9] = 0x38
	m[0xCA] = 0xFF // beyond the representable cable length
	m[0xCB] = 0x07
	m[0xD4] = 0x05 // 1550 nm DFB

	m[0x10A], m[0x10B] = 0x79, 0x18 // 1550.000 nm
	m[0x121] = 0x03
	m[0x122] = 0x01

	m[0x28B] = 0x01 // tx high alarm, lane 1
	return m
}

func copperImage() []byte {
	m := make([]byte, cmis.BaseLen)
	m[0x00] = 0x18
	m[0x55] = 0x04
	copy(m[0x81:], "ACME CABLES     ")
	m[0xCA] = 0x14 // 2.0 km at x0.1
	m[0xCB] = 0x23
	m[0xCC], m[0xCD], m[0xCE], m[0xCF] = 1, 2, 4, 8
	m[0xD4] = 0x0A // copper, unequalized
	return m
}

// fieldValue extracts the value printed for a named report line.
func fieldValue(t *testing.T, report, name string) string {
	t.Helper()
	for _, l := range strings.Split(report, "\n") {
		rest, ok := strings.CutPrefix(l, "\t"+name)
		if !ok {
			continue
		}
		_, val, ok := strings.Cut(rest, ": ")
		if ok {
			return val
		}
	}
	t.Fatalf("report has no line named %q", name)
	return ""
}

func TestModuleOptical(t *testing.T) {
	mod, err := cmis.Decode(opticalImage())
	require.NoError(t, err)

	out := Module(mod)

	assert.Equal(t, "0x18 (QSFP-DD)", fieldValue(t, out, "Identifier"))
	assert.Equal(t, "3", fieldValue(t, out, "Power class"))
	assert.Equal(t, "14.00W", fieldValue(t, out, "Max power"))
	assert.Equal(t, "0x07 (LC)", fieldValue(t, out, "Connector"))
	assert.Equal(t, "> 6.3km", fieldValue(t, out, "Cable assembly length"))
	assert.Equal(t, "0x05 (1550 nm DFB)", fieldValue(t, out, "Transmitter technology"))
	assert.Equal(t, "1550.000nm", fieldValue(t, out, "Laser wavelength"))
	assert.Equal(t, "Yes", fieldValue(t, out, "Tx CDR bypass control"))
	assert.Equal(t, "No", fieldValue(t, out, "Rx CDR bypass control"))
	assert.Equal(t, "25.0000 degrees C / 77.0000 degrees F",
		fieldValue(t, out, "Module temperature"))
	assert.Equal(t, "3.3000V", fieldValue(t, out, "Module voltage"))
	assert.Equal(t, "ACME PHOTONICS", fieldValue(t, out, "Vendor name"))
	assert.Equal(t, "00:17:6A", fieldValue(t, out, "Vendor OUI"))
	assert.Equal(t, "20260815", fieldValue(t, out, "Date code"))
	assert.Equal(t, "Rev. 4.0", fieldValue(t, out, "Revision compliance"))

	// No attenuation rows for an optical module.
	assert.NotContains(t, out, "Attenuation")
}

func TestModuleFlagsPerDirection(t *testing.T) {
	mod, err := cmis.Decode(opticalImage())
	require.NoError(t, err)

	out := Module(mod)

	// Only the tx table carries the lane 1 high alarm bit.
	assert.Equal(t, "On", fieldValue(t, out, "Tx power high alarm   (Channel 1)"))
	assert.Equal(t, "Off", fieldValue(t, out, "Rx power high alarm   (Channel 1)"))
	assert.Equal(t, "Off", fieldValue(t, out, "Tx power high alarm   (Channel 2)"))
}

func TestModuleCopper(t *testing.T) {
	mod, err := cmis.Decode(copperImage())
	require.NoError(t, err)

	out := Module(mod)

	assert.Equal(t, "2.00km", fieldValue(t, out, "Cable assembly length"))
	assert.Equal(t, "0x23 (No separable connector)", fieldValue(t, out, "Connector"))
	assert.Equal(t, "1db", fieldValue(t, out, "Attenuation at 5GHz"))
	assert.Equal(t, "8db", fieldValue(t, out, "Attenuation at 25.8GHz"))

	// No optical or per-lane rows without the diagnostic pages.
	assert.NotContains(t, out, "Laser wavelength")
	assert.NotContains(t, out, "Channel 1")
	assert.NotContains(t, out, "Length (SMF)")
}

func TestDBmFloor(t *testing.T) {
	mod, err := cmis.Decode(opticalImage())
	require.NoError(t, err)

	out := Module(mod)

	// Dark lanes read 0 mW and clamp to the -40 dBm floor.
	assert.Equal(t, "0.0000mW / -40.00dBm",
		fieldValue(t, out, "Rx input optical power (Channel 1)"))
}
