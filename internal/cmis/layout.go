package cmis

// Field names one decodable span of module memory: the bank it lives in,
// its offset within the bank and how many bytes it spans. Multi-lane and
// multi-threshold fields record the offset of lane 0 / the HA entry;
// consecutive entries follow at 2-byte strides.
type Field struct {
	Page   Page
	Offset uint8
	Len    uint8
}

// Page 0x00 lower: identity, status and module-level monitors.
var (
	fieldIdentifier  = Field{Page0Lower, 0x00, 1}
	fieldRevision    = Field{Page0Lower, 0x01, 1}
	fieldStatus      = Field{Page0Lower, 0x02, 1}
	fieldCurrTemp    = Field{Page0Lower, 0x0E, 2}
	fieldCurrVoltage = Field{Page0Lower, 0x10, 2}
	fieldMediaType   = Field{Page0Lower, 0x55, 1}
)

// Page 0x00 upper: vendor block, power, cable assembly, media technology.
// Wire addresses are 0x80-based; offsets here are bank-local.
var (
	fieldVendorName   = Field{Page0Upper, 0x01, 16}
	fieldVendorOUI    = Field{Page0Upper, 0x11, 3}
	fieldVendorPN     = Field{Page0Upper, 0x14, 16}
	fieldVendorRev    = Field{Page0Upper, 0x24, 2}
	fieldVendorSN     = Field{Page0Upper, 0x26, 16}
	fieldDateCode     = Field{Page0Upper, 0x36, 8}
	fieldCLEICode     = Field{Page0Upper, 0x3E, 10}
	fieldPowerClass   = Field{Page0Upper, 0x48, 1}
	fieldMaxPower     = Field{Page0Upper, 0x49, 1}
	fieldCableAsmLen  = Field{Page0Upper, 0x4A, 1}
	fieldConnector    = Field{Page0Upper, 0x4B, 1}
	fieldCopperAtten  = Field{Page0Upper, 0x4C, 4} // 5, 7, 12.9, 25.8 GHz
	fieldCableNearEnd = Field{Page0Upper, 0x52, 1}
	fieldCableFarEnd  = Field{Page0Upper, 0x53, 1}
	fieldMediaTech    = Field{Page0Upper, 0x54, 1}
)

// Page 0x01: advertised capabilities of active modules.
var (
	fieldSMFLength     = Field{Page1, 0x04, 1}
	fieldOM5Length     = Field{Page1, 0x05, 1}
	fieldOM4Length     = Field{Page1, 0x06, 1}
	fieldOM3Length     = Field{Page1, 0x07, 1}
	fieldOM2Length     = Field{Page1, 0x08, 1}
	fieldWavelength    = Field{Page1, 0x0A, 2}
	fieldWavelengthTol = Field{Page1, 0x0C, 2}
	fieldSigIntegTx    = Field{Page1, 0x21, 1}
	fieldSigIntegRx    = Field{Page1, 0x22, 1}
)

// Page 0x02: module-defined monitor thresholds, four consecutive u16 values
// per measurement in HA, LA, HW, LW order.
var (
	fieldTempThresholds    = Field{Page2, 0x00, 8}
	fieldVoltThresholds    = Field{Page2, 0x08, 8}
	fieldTxPowerThresholds = Field{Page2, 0x30, 8}
	fieldBiasThresholds    = Field{Page2, 0x38, 8}
	fieldRxPowerThresholds = Field{Page2, 0x40, 8}
)

// Page 0x11: lane dynamic status. Flag fields are one mask byte per
// alarm/warning kind, one bit per lane. Monitor fields are one u16 per lane.
var (
	fieldTxFlagsHA = Field{Page17, 0x0B, 1}
	fieldTxFlagsLA = Field{Page17, 0x0C, 1}
	fieldTxFlagsHW = Field{Page17, 0x0D, 1}
	fieldTxFlagsLW = Field{Page17, 0x0E, 1}

	fieldRxFlagsHA = Field{Page17, 0x15, 1}
	fieldRxFlagsLA = Field{Page17, 0x16, 1}
	fieldRxFlagsHW = Field{Page17, 0x17, 1}
	fieldRxFlagsLW = Field{Page17, 0x18, 1}

	fieldTxPowerLanes = Field{Page17, 0x1A, 16}
	fieldTxBiasLanes  = Field{Page17, 0x2A, 16}
	fieldRxPowerLanes = Field{Page17, 0x3A, 16}
)

// statusCLEIPresent is the presence bit for the CLEI code in the status byte.
const statusCLEIPresent = 0x20
