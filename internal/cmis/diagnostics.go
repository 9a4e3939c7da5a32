package cmis

import "fmt"

// ThresholdKind indexes the four alarm/warning threshold slots. The device
// stores the four values for one measurement as consecutive u16 fields in
// exactly this order.
type ThresholdKind int

const (
	HighAlarm ThresholdKind = iota
	LowAlarm
	HighWarning
	LowWarning

	NumThresholdKinds = 4
)

func (k ThresholdKind) String() string {
	switch k {
	case HighAlarm:
		return "high alarm"
	case LowAlarm:
		return "low alarm"
	case HighWarning:
		return "high warning"
	case LowWarning:
		return "low warning"
	}
	return "unknown"
}

// Thresholds holds one measurement's module-defined limits, indexed by
// ThresholdKind.
type Thresholds [NumThresholdKinds]float64

// LaneFlags is the per-lane, per-kind alarm/warning state for one
// direction.
type LaneFlags [MaxLanes][NumThresholdKinds]bool

// LaneMonitor is the live reading of one lane.
type LaneMonitor struct {
	BiasMA    float64
	TxPowerMW float64
	RxPowerMW float64
}

// Diagnostics is the complete diagnostics record. Temperature and voltage
// are always valid; everything else is populated only when Extended is set.
type Diagnostics struct {
	TemperatureC float64
	VoltageV     float64

	// Extended reports whether the lane monitors, flags and thresholds
	// below were decoded. It is false for copper/passive modules and for
	// buffers without the diagnostic pages; that is a legitimate module
	// state, not an error.
	Extended bool

	TempThresholdsC     Thresholds
	VoltThresholdsV     Thresholds
	BiasThresholdsMA    Thresholds
	TxPowerThresholdsMW Thresholds
	RxPowerThresholdsMW Thresholds

	Lanes   [MaxLanes]LaneMonitor
	TxFlags LaneFlags
	RxFlags LaneFlags
}

// DecodeDiagnostics extracts the diagnostics record. The current
// temperature and voltage come from page 0x00 and are decoded
// unconditionally. The extended fields require an optical module (MMF or
// SMF media type) and the full 5-extended-page buffer; the gate is checked
// once here, never per field.
func DecodeDiagnostics(m Memory) Diagnostics {
	d := Diagnostics{
		TemperatureC: float64(m.s16At(fieldCurrTemp, 0)) * tempScale,
		VoltageV:     float64(m.u16At(fieldCurrVoltage, 0)) * voltScale,
	}

	mt := MediaType(m.byteAt(fieldMediaType))
	if !mt.IsFiber() || len(m) != ExtendedLen {
		return d
	}
	d.Extended = true

	// One u16 per lane, ascending lane order, 2-byte stride.
	for lane := 0; lane < MaxLanes; lane++ {
		d.Lanes[lane] = LaneMonitor{
			BiasMA:    float64(m.u16At(fieldTxBiasLanes, lane)) * biasScale,
			TxPowerMW: float64(m.u16At(fieldTxPowerLanes, lane)) * powerScale,
			RxPowerMW: float64(m.u16At(fieldRxPowerLanes, lane)) * powerScale,
		}
	}

	// One mask byte per alarm/warning kind, one bit per lane. The tx and
	// rx tables are decoded separately; they are distinct on the wire.
	txMasks := [NumThresholdKinds]Field{fieldTxFlagsHA, fieldTxFlagsLA, fieldTxFlagsHW, fieldTxFlagsLW}
	rxMasks := [NumThresholdKinds]Field{fieldRxFlagsHA, fieldRxFlagsLA, fieldRxFlagsHW, fieldRxFlagsLW}
	for lane := 0; lane < MaxLanes; lane++ {
		for kind := 0; kind < NumThresholdKinds; kind++ {
			d.TxFlags[lane][kind] = m.flagAt(txMasks[kind], lane)
			d.RxFlags[lane][kind] = m.flagAt(rxMasks[kind], lane)
		}
	}

	// Four consecutive u16 thresholds per measurement in HA, LA, HW, LW
	// order. Temperature thresholds are signed like the live reading.
	for k := 0; k < NumThresholdKinds; k++ {
		d.TempThresholdsC[k] = float64(m.s16At(fieldTempThresholds, k)) * tempScale
		d.VoltThresholdsV[k] = float64(m.u16At(fieldVoltThresholds, k)) * voltScale
		d.BiasThresholdsMA[k] = float64(m.u16At(fieldBiasThresholds, k)) * biasScale
		d.TxPowerThresholdsMW[k] = float64(m.u16At(fieldTxPowerThresholds, k)) * powerScale
		d.RxPowerThresholdsMW[k] = float64(m.u16At(fieldRxPowerThresholds, k)) * powerScale
	}

	return d
}

// Module is the result of decoding one memory image.
type Module struct {
	Descriptor  Descriptor
	Diagnostics Diagnostics
}

// Decode decodes a flattened module memory image. The buffer must be
// exactly 256 bytes (page 0x00 only) or 768 bytes (page 0x00 plus the five
// extended pages); anything else is a caller contract violation.
func Decode(data []byte) (*Module, error) {
	if len(data) != BaseLen && len(data) != ExtendedLen {
		return nil, fmt.Errorf("cmis: buffer must be %d or %d bytes, got %d",
			BaseLen, ExtendedLen, len(data))
	}
	m := Memory(data)
	return &Module{
		Descriptor:  DecodeDescriptor(m),
		Diagnostics: DecodeDiagnostics(m),
	}, nil
}
