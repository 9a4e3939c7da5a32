package cmis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testOpticalImage builds a flattened 768-byte image for a single-mode
// optical module with known values in every decoded field.
func testOpticalImage() Memory {
	m := make(Memory, ExtendedLen)

	// Page 0x00 lower
	m[0x00] = 0x18 // QSFP-DD
	m[0x01] = 0x40 // CMIS rev 4.0
	m[0x02] = 0x20 // CLEI code present
	m[0x0E], m[0x0F] = 0x19, 0x00 // 25.0 C
	m[0x10], m[0x11] = 0x80, 0xE8 // 3.3 V
	m[0x55] = byte(MediaTypeSMF)

	// Page 0x00 upper
	copy(m[0x81:], "ACME PHOTONICS  ")
	m[0x91], m[0x92], m[0x93] = 0x00, 0x17, 0x6A
	copy(m[0x94:], "QDD-400G-LR4    ")
	copy(m[0xA4:], "1A")
	copy(m[0xA6:], "SN0123456789    ")
	copy(m[0xB6:], "20260815")
	copy(m[0xBE:], "CLEI123456")
	m[0xC8] = 0x40 // power class 3
	m[0xC9] = 0x38 // 14.0 W
	m[0xCA] = 0x41 // 1.0 km cable assembly
	m[0xCB] = 0x07 // LC connector
	m[0xD4] = byte(Tech1550DFB)

	// Page 0x01
	m[0x104] = 0x4A // SMF 10 km
	m[0x106] = 0x32 // OM4 100 m
	m[0x107] = 0x19 // OM3 50 m
	m[0x108] = 0x64 // OM2 100 m
	m[0x10A], m[0x10B] = 0x79, 0x18 // 1550.000 nm
	m[0x10C], m[0x10D] = 0x03, 0xE8 // 5.000 nm tolerance
	m[0x121] = 0x03 // tx CDR implemented, bypass supported
	m[0x122] = 0x01 // rx CDR implemented

	// Page 0x02 thresholds, HA, LA, HW, LW
	putU16 := func(off int, vals ...uint16) {
		for i, v := range vals {
			m[off+2*i] = byte(v >> 8)
			m[off+2*i+1] = byte(v)
		}
	}
	putU16(0x180, 0x5000, 0xF600, 0x4B00, 0x0000) // temp: 80, -10, 75, 0 C
	putU16(0x188, 0x8CA0, 0x7530, 0x88B8, 0x7918) // volt: 3.6, 3.0, 3.5, 3.1 V
	putU16(0x1B0, 0x4E20, 0x03E8, 0x3A98, 0x07D0) // tx power: 2.0, 0.1, 1.5, 0.2 mW
	putU16(0x1B8, 0x2710, 0x01F4, 0x1D4C, 0x03E8) // bias: 20, 1, 15, 2 mA
	putU16(0x1C0, 0x2710, 0x01F4, 0x2328, 0x03E8) // rx power: 1.0, 0.05, 0.9, 0.1 mW

	// Page 0x11 lane status
	m[0x28B] = 0x01 // tx high alarm, lane 1
	m[0x298] = 0x80 // rx low warning, lane 8
	putU16(0x29A, 0x1F40) // tx power lane 1: 0.8 mW
	putU16(0x2AA, 0x0190) // bias lane 1: 0.8 mA
	putU16(0x2BA, 0x2710) // rx power lane 1: 1.0 mW

	return m
}

// testCopperImage builds a 256-byte image for a passive copper cable.
func testCopperImage() Memory {
	m := make(Memory, BaseLen)
	m[0x00] = 0x18
	m[0x01] = 0x30 // CMIS rev 3.0
	m[0x0E], m[0x0F] = 0x1E, 0x80 // 30.5 C
	m[0x10], m[0x11] = 0x7E, 0xF4 // 3.25 V
	m[0x55] = 0x04 // passive copper media type

	copy(m[0x81:], "ACME CABLES     ")
	copy(m[0x94:], "QDD-DAC-2M      ")
	copy(m[0xA6:], "C0000042        ")
	copy(m[0xB6:], "20250101")
	m[0xC8] = 0x00 // power class 1
	m[0xC9] = 0x06 // 1.5 W
	m[0xCA] = 0x14 // 2.0 km encoding slot, x0.1 multiplier
	m[0xCB] = 0x23 // no separable connector
	m[0xCC], m[0xCD], m[0xCE], m[0xCF] = 1, 2, 4, 8
	m[0xD4] = byte(TechCopperUnequalized)
	return m
}

func TestDecodeDescriptorOptical(t *testing.T) {
	d := DecodeDescriptor(testOpticalImage())

	assert.Equal(t, byte(0x18), d.Identifier)
	assert.Equal(t, "Rev. 4.0", d.Revision.String())
	assert.Equal(t, MediaTypeSMF, d.MediaType)
	assert.Equal(t, byte(0x07), d.Connector)

	assert.Equal(t, 3, d.PowerClass)
	assert.InDelta(t, 14.0, d.MaxPowerW, 1e-9)
	assert.False(t, d.CableAssembly.OverMax)
	assert.InDelta(t, 1.0, d.CableAssembly.KM, 1e-9)

	assert.Equal(t, "ACME PHOTONICS", d.Vendor.Name)
	assert.Equal(t, "00:17:6A", d.Vendor.OUI)
	assert.Equal(t, "QDD-400G-LR4", d.Vendor.PartNumber)
	assert.Equal(t, "1A", d.Vendor.Revision)
	assert.Equal(t, "SN0123456789", d.Vendor.SerialNumber)
	assert.Equal(t, "20260815", d.Vendor.DateCode)
	assert.Equal(t, "CLEI123456", d.Vendor.CLEI)

	assert.Equal(t, Tech1550DFB, d.Technology)
	assert.Nil(t, d.Copper)
	require.NotNil(t, d.Optical)
	assert.InDelta(t, 1550.0, d.Optical.WavelengthNM, 1e-9)
	assert.InDelta(t, 5.0, d.Optical.ToleranceNM, 1e-9)

	require.NotNil(t, d.CDR)
	assert.True(t, d.CDR.TxImplemented)
	assert.True(t, d.CDR.TxBypass)
	assert.True(t, d.CDR.RxImplemented)
	assert.False(t, d.CDR.RxBypass)

	require.NotNil(t, d.LinkLengths)
	assert.InDelta(t, 10.0, d.LinkLengths.SMF.KM, 1e-9)
	assert.Equal(t, 0, d.LinkLengths.OM5M)
	assert.Equal(t, 100, d.LinkLengths.OM4M)
	assert.Equal(t, 50, d.LinkLengths.OM3M)
	assert.Equal(t, 100, d.LinkLengths.OM2M)
}

func TestDecodeDescriptorCopper(t *testing.T) {
	d := DecodeDescriptor(testCopperImage())

	assert.Equal(t, TechCopperUnequalized, d.Technology)
	assert.True(t, d.Technology.IsCopper())

	require.NotNil(t, d.Copper)
	assert.Equal(t, uint8(1), d.Copper.Atten5GHz)
	assert.Equal(t, uint8(2), d.Copper.Atten7GHz)
	assert.Equal(t, uint8(4), d.Copper.Atten12p9GHz)
	assert.Equal(t, uint8(8), d.Copper.Atten25p8GHz)

	// Page 0x01 is absent, so the optional blocks stay nil.
	assert.Nil(t, d.Optical)
	assert.Nil(t, d.CDR)
	assert.Nil(t, d.LinkLengths)

	// Status byte does not advertise a CLEI code.
	assert.Empty(t, d.Vendor.CLEI)
}

func TestMediaTechString(t *testing.T) {
	assert.Equal(t, "1550 nm DFB", Tech1550DFB.String())
	assert.Equal(t, "Copper cable, unequalized", TechCopperUnequalized.String())
	assert.Equal(t, "unknown/reserved (0x42)", MediaTech(0x42).String())
}
