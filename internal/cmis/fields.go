package cmis

import "github.com/vitaminmoo/cmisw-tool/internal/util"

// Fixed-point scale factors, one per measured quantity. The device stores
// everything as big-endian 16-bit integers in these units.
const (
	tempScale  = 1.0 / 256.0 // degrees C per LSB, signed
	voltScale  = 0.0001      // volts per LSB (0.1 mV)
	biasScale  = 0.002       // mA per LSB (2 uA)
	powerScale = 0.0001      // mW per LSB (0.1 uW)

	basePowerScale  = 0.25  // watts per LSB
	wavelengthNM    = 0.05  // nm per LSB
	wavelengthTolNM = 0.005 // nm per LSB
)

// Length multiplier selection, top two bits of a scaled-length byte.
const (
	lenMulMask = 0xC0
	lenValMask = 0x3F

	// cableLenOverMax marks a cable assembly longer than the encoding
	// can represent (> 6.3 km).
	cableLenOverMax = 0xFF
)

func (m Memory) byteAt(f Field) byte {
	return m[m.at(f)]
}

// u16At combines two consecutive bytes big-endian, stepping n 2-byte
// entries past the field's base (lane index or threshold index).
func (m Memory) u16At(f Field, n int) uint16 {
	off := m.at(f) + 2*n
	return uint16(m[off])<<8 | uint16(m[off+1])
}

// s16At is u16At reinterpreted as two's complement, used for temperatures.
func (m Memory) s16At(f Field, n int) int16 {
	return int16(m.u16At(f, n))
}

func (m Memory) asciiAt(f Field) string {
	off := m.at(f)
	return util.TrimASCII(m[off : off+int(f.Len)])
}

// flagAt extracts one lane's bit from a per-kind alarm/warning mask byte.
func (m Memory) flagAt(f Field, lane int) bool {
	return m.byteAt(f)&(1<<lane) != 0
}

// Length is a decoded cable or fiber length. OverMax is set for the 0xFF
// sentinel, meaning the real length exceeds the representable range.
type Length struct {
	KM      float64
	OverMax bool
}

// decodeCableLength decodes the cable assembly length byte: two multiplier
// bits selecting x0.1/x1/x10/x100 and six magnitude bits.
func decodeCableLength(b byte) Length {
	if b == cableLenOverMax {
		return Length{OverMax: true}
	}
	mul := 1.0
	switch b & lenMulMask {
	case 0x00:
		mul = 0.1
	case 0x40:
		mul = 1.0
	case 0x80:
		mul = 10.0
	case 0xC0:
		mul = 100.0
	}
	return Length{KM: float64(b&lenValMask) * mul}
}

// decodeSMFLength decodes the single-mode fiber link length, which only
// defines the x0.1 and x1 multipliers.
func decodeSMFLength(b byte) Length {
	mul := 1.0
	if b&lenMulMask == 0x00 {
		mul = 0.1
	}
	return Length{KM: float64(b&lenValMask) * mul}
}
