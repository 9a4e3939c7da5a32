package ble

import (
	"errors"
	"fmt"
	"time"

	"github.com/vitaminmoo/cmisw-tool/internal/cmis"
	"github.com/vitaminmoo/cmisw-tool/internal/config"
	"github.com/vitaminmoo/cmisw-tool/internal/protocol"
)

// chunkSize keeps response frames inside a single BLE notification.
const chunkSize = 64

const readTimeout = 5 * time.Second

// readSpan fetches n bytes of module memory at a wire offset within the
// given page, in chunkSize pieces.
func (c *Context) readSpan(page, bank, offset uint8, n int) ([]byte, error) {
	out := make([]byte, 0, n)
	for n > 0 {
		chunk := n
		if chunk > chunkSize {
			chunk = chunkSize
		}
		req := protocol.ReadPageRequest{
			Bank:   bank,
			Page:   page,
			Offset: offset,
			Length: uint8(chunk),
		}
		frame, err := c.Exchange(req.Encode(), readTimeout)
		if err != nil {
			return nil, err
		}
		payload, err := protocol.ParseResponse(frame)
		if err != nil {
			return nil, err
		}
		if len(payload) != chunk {
			return nil, fmt.Errorf("short read: asked %d bytes at page 0x%02x offset 0x%02x, got %d",
				chunk, page, offset, len(payload))
		}
		out = append(out, payload...)
		offset += uint8(chunk)
		n -= chunk
	}
	return out, nil
}

// readBank fetches one 128-byte bank. Lower memory lives at wire offsets
// 0x00-0x7F, upper banks at 0x80-0xFF regardless of page.
func (c *Context) readBank(page uint8, upper bool) ([]byte, error) {
	var base uint8
	if upper {
		base = 0x80
	}
	return c.readSpan(page, 0, base, cmis.PageSize)
}

// ReadModuleMemory reads the inserted module's memory and flattens it into
// the page order the decoder consumes: page 0x00 lower+upper always, then
// pages 0x01, 0x02, 0x10, 0x11 when the module is optical and implements
// them. Copper and passive modules yield the 256-byte base image.
func ReadModuleMemory(ctx *Context) (cmis.Memory, error) {
	config.Debugf("Reading page 00h...")
	lower, err := ctx.readBank(0x00, false)
	if err != nil {
		return nil, fmt.Errorf("failed to read page 00h (lower): %w", err)
	}
	upper, err := ctx.readBank(0x00, true)
	if err != nil {
		return nil, fmt.Errorf("failed to read page 00h (upper): %w", err)
	}

	buf := make([]byte, 0, cmis.ExtendedLen)
	buf = append(buf, lower...)
	buf = append(buf, upper...)

	// Extended pages only exist on optical modules.
	if !cmis.MediaType(lower[0x55]).IsFiber() {
		return buf, nil
	}

	for _, page := range []uint8{0x01, 0x02, 0x10, 0x11} {
		config.Debugf("Reading page %02xh...", page)
		bank, err := ctx.readBank(page, true)
		if err != nil {
			var devErr *protocol.DeviceError
			if errors.As(err, &devErr) && devErr.Code == protocol.StatusBadPage {
				// Module advertises fiber but implements no diagnostic
				// pages; hand back the base image.
				return buf[:cmis.BaseLen], nil
			}
			return nil, fmt.Errorf("failed to read page %02xh: %w", page, err)
		}
		buf = append(buf, bank...)
	}

	return buf, nil
}
