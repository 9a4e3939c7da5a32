// Package protocol implements the binary framing the XCVR Wizard dongle
// speaks over its GATT request/response characteristics.
package protocol

import (
	"errors"
	"fmt"
)

const (
	// Magic is the first byte of every frame in both directions.
	Magic = 0xA5

	// OpReadPage requests a span of module memory. The dongle performs
	// the bank/page select on the wire and returns the raw bytes.
	OpReadPage = 0x01

	// OpModuleStatus requests the presence/type byte of the inserted
	// module.
	OpModuleStatus = 0x02

	// responseBit is set on the opcode byte of every response frame.
	responseBit = 0x80
)

// Device status codes returned in response frames.
const (
	StatusOK       = 0x00
	StatusNoModule = 0x01
	StatusBadPage  = 0x02
	StatusBusError = 0x03
)

var (
	ErrShortFrame  = errors.New("protocol: frame too short")
	ErrBadMagic    = errors.New("protocol: bad magic byte")
	ErrBadChecksum = errors.New("protocol: checksum mismatch")
)

// DeviceError is a non-zero status code reported by the dongle.
type DeviceError struct {
	Code byte
}

func (e *DeviceError) Error() string {
	switch e.Code {
	case StatusNoModule:
		return "device: no module inserted"
	case StatusBadPage:
		return "device: module does not implement requested page"
	case StatusBusError:
		return "device: management bus error"
	}
	return fmt.Sprintf("device: error code 0x%02x", e.Code)
}

// ReadPageRequest asks the dongle for length bytes of module memory,
// starting at a wire offset within the selected bank/page.
type ReadPageRequest struct {
	Bank   uint8
	Page   uint8
	Offset uint8
	Length uint8
}

// Encode builds the request frame:
//
//	byte 0: magic (0xA5)
//	byte 1: opcode
//	byte 2: bank
//	byte 3: page
//	byte 4: offset
//	byte 5: length
//	byte 6: XOR checksum of bytes 0-5
func (r ReadPageRequest) Encode() []byte {
	frame := []byte{Magic, OpReadPage, r.Bank, r.Page, r.Offset, r.Length, 0}
	frame[6] = checksum(frame[:6])
	return frame
}

// EncodeStatusRequest builds the module-status request frame.
func EncodeStatusRequest() []byte {
	frame := []byte{Magic, OpModuleStatus, 0, 0, 0, 0, 0}
	frame[6] = checksum(frame[:6])
	return frame
}

// ParseResponse validates a response frame and returns its payload:
//
//	byte 0: magic (0xA5)
//	byte 1: opcode | 0x80
//	byte 2: status
//	byte 3: payload length
//	bytes 4..4+n: payload
//	last byte: XOR checksum of everything before it
func ParseResponse(frame []byte) ([]byte, error) {
	if len(frame) < 5 {
		return nil, ErrShortFrame
	}
	if frame[0] != Magic {
		return nil, ErrBadMagic
	}
	if frame[1]&responseBit == 0 {
		return nil, fmt.Errorf("protocol: not a response frame (opcode 0x%02x)", frame[1])
	}

	n := int(frame[3])
	if len(frame) < 5+n {
		return nil, ErrShortFrame
	}
	body := frame[: 4+n : 4+n]
	if checksum(body) != frame[4+n] {
		return nil, ErrBadChecksum
	}

	if status := frame[2]; status != StatusOK {
		return nil, &DeviceError{Code: status}
	}
	return frame[4 : 4+n], nil
}

func checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum ^= b
	}
	return sum
}
