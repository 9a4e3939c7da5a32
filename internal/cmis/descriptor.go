package cmis

import "fmt"

// MediaType is the module media type byte (address 0x55). Only the two
// fiber values gate the extended diagnostic pages.
type MediaType byte

const (
	MediaTypeMMF MediaType = 0x01
	MediaTypeSMF MediaType = 0x02
)

// IsFiber reports whether the module is an optical (multi-mode or
// single-mode) module.
func (t MediaType) IsFiber() bool {
	return t == MediaTypeMMF || t == MediaTypeSMF
}

// MediaTech is the media interface technology code (address 0xD4).
// Codes below TechCopperUnequalized form the optical-wavelength family,
// the rest the copper-equalization family.
type MediaTech byte

const (
	Tech850VCSEL MediaTech = iota
	Tech1310VCSEL
	Tech1550VCSEL
	Tech1310FP
	Tech1310DFB
	Tech1550DFB
	Tech1310EML
	Tech1550EML
	TechOther
	Tech1490DFB
	TechCopperUnequalized
	TechCopperPassiveEqualized
	TechCopperNearFarEqualized
	TechCopperFarEqualized
	TechCopperNearEqualized
	TechCopperLinearEqualized
)

// IsCopper reports whether the technology belongs to the copper family,
// which advertises attenuation instead of a laser wavelength.
func (t MediaTech) IsCopper() bool {
	return t >= TechCopperUnequalized && t <= TechCopperLinearEqualized
}

var mediaTechNames = map[MediaTech]string{
	Tech850VCSEL:               "850 nm VCSEL",
	Tech1310VCSEL:              "1310 nm VCSEL",
	Tech1550VCSEL:              "1550 nm VCSEL",
	Tech1310FP:                 "1310 nm FP",
	Tech1310DFB:                "1310 nm DFB",
	Tech1550DFB:                "1550 nm DFB",
	Tech1310EML:                "1310 nm EML",
	Tech1550EML:                "1550 nm EML",
	TechOther:                  "Others/Undefined",
	Tech1490DFB:                "1490 nm DFB",
	TechCopperUnequalized:      "Copper cable, unequalized",
	TechCopperPassiveEqualized: "Copper cable, passive equalized",
	TechCopperNearFarEqualized: "Copper cable, near and far end limiting active equalizers",
	TechCopperFarEqualized:     "Copper cable, far end limiting active equalizers",
	TechCopperNearEqualized:    "Copper cable, near end limiting active equalizers",
	TechCopperLinearEqualized:  "Copper cable, linear active equalizers",
}

// String returns the technology name, or an explicit unknown/reserved
// marker for codes outside the table. Unmapped codes are never an error.
func (t MediaTech) String() string {
	if s, ok := mediaTechNames[t]; ok {
		return s
	}
	return fmt.Sprintf("unknown/reserved (0x%02x)", byte(t))
}

// Revision is the CMIS revision compliance value, major.minor nibbles.
type Revision struct {
	Major int
	Minor int
}

func (r Revision) String() string {
	return fmt.Sprintf("Rev. %d.%d", r.Major, r.Minor)
}

// Vendor is the ASCII identity block from page 0x00 upper. CLEI is empty
// unless the module advertises one in its status byte.
type Vendor struct {
	Name         string
	OUI          string
	PartNumber   string
	Revision     string
	SerialNumber string
	DateCode     string
	CLEI         string
}

// OpticalMedia carries the optical-family technology payload from page 0x01.
type OpticalMedia struct {
	WavelengthNM float64
	ToleranceNM  float64
}

// CopperMedia carries the copper-family technology payload: attenuation in
// dB at four fixed frequencies.
type CopperMedia struct {
	Atten5GHz    uint8
	Atten7GHz    uint8
	Atten12p9GHz uint8
	Atten25p8GHz uint8
}

// CDR describes clock/data recovery implementation and bypass control.
type CDR struct {
	TxImplemented bool
	RxImplemented bool
	TxBypass      bool
	RxBypass      bool
}

// LinkLengths are the advertised maximum fiber lengths from page 0x01.
// OM5..OM3 are stored in 2 m units, OM2 in 1 m units; SMF uses the scaled
// length encoding.
type LinkLengths struct {
	SMF  Length
	OM5M int
	OM4M int
	OM3M int
	OM2M int
}

// Descriptor aggregates every decoded top-level field of the module. It is
// a fully decoded snapshot with no reference back to the source buffer.
type Descriptor struct {
	Identifier byte
	Revision   Revision
	Connector  byte
	MediaType  MediaType

	PowerClass int // 1..8
	MaxPowerW  float64

	CableAssembly     Length
	CableNearEndLanes byte
	CableFarEndConfig byte

	Technology MediaTech
	Optical    *OpticalMedia // non-nil for the optical family when page 01h is present
	Copper     *CopperMedia  // non-nil for the copper family

	CDR         *CDR         // nil when page 01h is absent
	LinkLengths *LinkLengths // nil when page 01h is absent

	Vendor Vendor
}

// DecodeDescriptor decodes all top-level fields. Only page 0x00 is
// required; fields advertised on page 0x01 stay nil for buffers that do
// not include it.
func DecodeDescriptor(m Memory) Descriptor {
	d := Descriptor{
		Identifier: m.byteAt(fieldIdentifier),
		Connector:  m.byteAt(fieldConnector),
		MediaType:  MediaType(m.byteAt(fieldMediaType)),
		Technology: MediaTech(m.byteAt(fieldMediaTech)),
	}

	rev := m.byteAt(fieldRevision)
	d.Revision = Revision{Major: int(rev >> 4), Minor: int(rev & 0x0F)}

	// Power class in the top three bits, base power in 0.25 W steps.
	d.PowerClass = int(m.byteAt(fieldPowerClass)>>5&0x07) + 1
	d.MaxPowerW = float64(m.byteAt(fieldMaxPower)) * basePowerScale

	d.CableAssembly = decodeCableLength(m.byteAt(fieldCableAsmLen))
	d.CableNearEndLanes = m.byteAt(fieldCableNearEnd)
	d.CableFarEndConfig = m.byteAt(fieldCableFarEnd)

	d.Vendor = Vendor{
		Name:         m.asciiAt(fieldVendorName),
		OUI:          formatOUI(m, fieldVendorOUI),
		PartNumber:   m.asciiAt(fieldVendorPN),
		Revision:     m.asciiAt(fieldVendorRev),
		SerialNumber: m.asciiAt(fieldVendorSN),
		DateCode:     m.asciiAt(fieldDateCode),
	}
	if m.byteAt(fieldStatus)&statusCLEIPresent != 0 {
		d.Vendor.CLEI = m.asciiAt(fieldCLEICode)
	}

	if d.Technology.IsCopper() {
		off := m.at(fieldCopperAtten)
		d.Copper = &CopperMedia{
			Atten5GHz:    m[off],
			Atten7GHz:    m[off+1],
			Atten12p9GHz: m[off+2],
			Atten25p8GHz: m[off+3],
		}
	}

	if m.HasPage(Page1) {
		if !d.Technology.IsCopper() {
			d.Optical = &OpticalMedia{
				WavelengthNM: float64(m.u16At(fieldWavelength, 0)) * wavelengthNM,
				ToleranceNM:  float64(m.u16At(fieldWavelengthTol, 0)) * wavelengthTolNM,
			}
		}

		tx := m.byteAt(fieldSigIntegTx)
		rx := m.byteAt(fieldSigIntegRx)
		d.CDR = &CDR{
			TxImplemented: tx&0x01 != 0,
			RxImplemented: rx&0x01 != 0,
			TxBypass:      tx&0x02 != 0,
			RxBypass:      rx&0x02 != 0,
		}

		d.LinkLengths = &LinkLengths{
			SMF:  decodeSMFLength(m.byteAt(fieldSMFLength)),
			OM5M: int(m.byteAt(fieldOM5Length)) * 2,
			OM4M: int(m.byteAt(fieldOM4Length)) * 2,
			OM3M: int(m.byteAt(fieldOM3Length)) * 2,
			OM2M: int(m.byteAt(fieldOM2Length)),
		}
	}

	return d
}

func formatOUI(m Memory, f Field) string {
	off := m.at(f)
	return fmt.Sprintf("%02X:%02X:%02X", m[off], m[off+1], m[off+2])
}
