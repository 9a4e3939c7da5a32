package ble

const (
	// XCVRServiceUUID is the primary transceiver service UUID
	XCVRServiceUUID = "4F1D2C8A-9B3E-47D5-8C21-6A90E4B7F312"

	// XCVRRequestCharUUID is the characteristic for writing request frames
	XCVRRequestCharUUID = "7E58A3D1-42C6-4B9F-A7D0-3F81B2C9E654"

	// XCVRResponseCharUUID is the characteristic for response frames (notify)
	XCVRResponseCharUUID = "C2B4F7E9-15D8-4A36-9E72-8D40A1C5B987"

	// XCVRInfoCharUUID is the characteristic for device info (read)
	XCVRInfoCharUUID = "9A6E4B23-D07F-48C1-B5A8-1C39F6D2E470"
)
