// Package cmis decodes the memory map of CMIS / QSFP-DD class transceiver
// modules from a pre-flattened page buffer.
//
// Page 0x00 (lower and upper halves) is always implemented, so a valid
// buffer is at least 256 bytes. Optically connected modules usually expose
// additional pages with thresholds and lane diagnostics; in that case the
// buffer is 768 bytes in the following fixed order:
//
//	+----------+----------+----------+----------+----------+----------+
//	|   Page   |   Page   |   Page   |   Page   |   Page   |   Page   |
//	|   0x00   |   0x00   |   0x01   |   0x02   |   0x10   |   0x11   |
//	|  (lower) |  (upper) |  (upper) |  (upper) |  (upper) |  (upper) |
//	|   128B   |   128B   |   128B   |   128B   |   128B   |   128B   |
//	+----------+----------+----------+----------+----------+----------+
//
// Only 128 bytes of upper memory are visible on the wire at a time (bank
// select), but the caller hands us the flattened concatenation, so resolving
// an address is a fixed slot lookup, not a page-table walk.
package cmis

import "errors"

const (
	// PageSize is the size of one addressable page bank.
	PageSize = 128

	// BaseLen is the buffer length when only page 0x00 is present.
	BaseLen = 2 * PageSize

	// ExtendedLen is the buffer length when pages 0x01, 0x02, 0x10 and
	// 0x11 follow page 0x00.
	ExtendedLen = 6 * PageSize

	// MaxLanes is the number of electrical/optical lanes a module can have.
	MaxLanes = 8
)

// ErrPageNotPresent is returned when a page offset falls outside the
// supplied buffer.
var ErrPageNotPresent = errors.New("cmis: page not present in buffer")

// Page identifies one 128-byte bank within the flattened buffer.
type Page uint8

const (
	Page0Lower Page = iota
	Page0Upper
	Page1
	Page2
	Page16
	Page17
)

func (p Page) String() string {
	switch p {
	case Page0Lower:
		return "00h (lower)"
	case Page0Upper:
		return "00h (upper)"
	case Page1:
		return "01h"
	case Page2:
		return "02h"
	case Page16:
		return "10h"
	case Page17:
		return "11h"
	}
	return "unknown"
}

// Memory is a flattened module memory image. It is only ever read.
type Memory []byte

// HasPage reports whether the buffer is long enough to contain p.
func (m Memory) HasPage(p Page) bool {
	return len(m) >= (int(p)+1)*PageSize
}

// Resolve maps a (page, local offset) pair to an absolute offset in the
// flattened buffer. The local offset is relative to the start of the bank,
// so it is always in [0, 128).
func (m Memory) Resolve(p Page, offset uint8) (int, error) {
	if offset >= PageSize {
		return 0, errors.New("cmis: local offset out of range")
	}
	if !m.HasPage(p) {
		return 0, ErrPageNotPresent
	}
	return int(p)*PageSize + int(offset), nil
}

// at returns the absolute offset of a field whose page is known to be
// present. Callers check the page once up front; a miss here is a
// programming error, not a runtime condition.
func (m Memory) at(f Field) int {
	return int(f.Page)*PageSize + int(f.Offset)
}
