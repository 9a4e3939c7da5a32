package ble

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/vitaminmoo/cmisw-tool/internal/config"

	"tinygo.org/x/bluetooth"
)

// Find scans for the XCVR Wizard and connects to it. Unlike Connect it
// returns errors instead of exiting, so it is usable from the TUI.
func Find() (bluetooth.Device, error) {
	var device bluetooth.Device

	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return device, fmt.Errorf("failed to enable bluetooth: %w", err)
	}

	var deviceResult bluetooth.ScanResult
	var found bool

	err := adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
		name := result.LocalName()
		nameLower := strings.ToLower(name)

		if config.Verbose && name != "" {
			address, _ := result.Address.MarshalText()
			fmt.Printf("  Found: '%s' (%s)\n", name, string(address))
		}

		if nameLower == "xcvr-wizard" || strings.Contains(nameLower, "xcvr") {
			deviceResult = result
			found = true
			adapter.StopScan()
		}
	})
	if err != nil {
		return device, fmt.Errorf("scan error: %w", err)
	}

	if !found {
		return device, fmt.Errorf("XCVR Wizard device not found")
	}

	address, _ := deviceResult.Address.MarshalText()
	config.Debugf("Connecting to %s...", string(address))

	device, err = adapter.Connect(deviceResult.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return device, fmt.Errorf("failed to connect: %w", err)
	}

	return device, nil
}

// Connect scans for and connects to the XCVR Wizard device, exiting on
// failure. CLI entry points use this; the TUI uses Find.
func Connect() bluetooth.Device {
	fmt.Println("Scanning for XCVR Wizard...")
	device, err := Find()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Connected!")
	return device
}

// Context holds the discovered characteristics and the response stream for
// one connected dongle.
type Context struct {
	WriteChar    *bluetooth.DeviceCharacteristic
	ResponseChar *bluetooth.DeviceCharacteristic

	responses chan []byte
}

// Setup discovers the transceiver service and wires up notifications.
func Setup(device bluetooth.Device) (*Context, error) {
	config.Debugf("Discovering services...")

	allServices, err := device.DiscoverServices(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to discover services: %w", err)
	}

	var svc *bluetooth.DeviceService
	for i := range allServices {
		uuidStr := allServices[i].UUID().String()
		if strings.EqualFold(uuidStr, XCVRServiceUUID) {
			svc = &allServices[i]
			config.Debugf("Found XCVR service: %s", uuidStr)
			break
		}
	}
	if svc == nil {
		return nil, fmt.Errorf("XCVR service not found")
	}

	chars, err := svc.DiscoverCharacteristics(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to discover characteristics: %w", err)
	}

	ctx := &Context{responses: make(chan []byte, 8)}
	for i := range chars {
		uuidStr := chars[i].UUID().String()
		config.Debugf("Found characteristic: %s", uuidStr)
		if strings.EqualFold(uuidStr, XCVRRequestCharUUID) {
			ctx.WriteChar = &chars[i]
		}
		if strings.EqualFold(uuidStr, XCVRResponseCharUUID) {
			ctx.ResponseChar = &chars[i]
		}
	}

	if ctx.WriteChar == nil {
		return nil, fmt.Errorf("request characteristic not found")
	}
	if ctx.ResponseChar == nil {
		return nil, fmt.Errorf("response characteristic not found")
	}

	err = ctx.ResponseChar.EnableNotifications(func(buf []byte) {
		frame := make([]byte, len(buf))
		copy(frame, buf)
		select {
		case ctx.responses <- frame:
		default:
			// Drop if nobody is waiting; stale responses are useless.
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enable notifications: %w", err)
	}

	return ctx, nil
}

// Exchange writes one request frame and waits for the response frame.
func (c *Context) Exchange(frame []byte, timeout time.Duration) ([]byte, error) {
	// Drain anything left over from a previous timed-out exchange.
	for {
		select {
		case <-c.responses:
			continue
		default:
		}
		break
	}

	if _, err := c.WriteChar.WriteWithoutResponse(frame); err != nil {
		return nil, fmt.Errorf("failed to write request: %w", err)
	}

	select {
	case resp := <-c.responses:
		return resp, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("timed out waiting for response")
	}
}
