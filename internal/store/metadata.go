package store

import (
	"time"

	"github.com/vitaminmoo/cmisw-tool/internal/cmis"
	"github.com/vitaminmoo/cmisw-tool/internal/sff"
)

// Metadata contains parsed information about a module profile.
type Metadata struct {
	ContentHash string    `json:"content_hash"`
	ModuleType  string    `json:"module_type"` // "QSFP-DD", "OSFP", ...
	Size        int       `json:"size"`
	Identity    Identity  `json:"identity"`
	Specs       Specs     `json:"specs,omitempty"`
	Sources     []Source  `json:"sources"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Identity contains vendor and serial information.
type Identity struct {
	VendorName   string `json:"vendor_name"`
	VendorOUI    string `json:"vendor_oui,omitempty"`
	PartNumber   string `json:"part_number"`
	Revision     string `json:"revision,omitempty"`
	SerialNumber string `json:"serial_number"`
	DateCode     string `json:"date_code,omitempty"`
	CLEI         string `json:"clei,omitempty"`
}

// Specs contains module specifications.
type Specs struct {
	ConnectorType string  `json:"connector_type,omitempty"`
	Technology    string  `json:"technology,omitempty"`
	WavelengthNM  float64 `json:"wavelength_nm,omitempty"`
	CableLengthKM float64 `json:"cable_length_km,omitempty"`
	PowerClass    int     `json:"power_class,omitempty"`
	MaxPowerW     float64 `json:"max_power_w,omitempty"`
}

// Source records where a profile was obtained from.
type Source struct {
	DeviceMAC string    `json:"device_mac,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Method    string    `json:"method"` // "module_read", "import"
	Filename  string    `json:"filename,omitempty"`
}

// ExtractMetadata decodes a memory image and extracts profile metadata.
// Returns nil for buffers the decoder rejects.
func ExtractMetadata(data []byte, hash string) *Metadata {
	mod, err := cmis.Decode(data)
	if err != nil {
		return nil
	}
	desc := mod.Descriptor

	meta := &Metadata{
		ContentHash: hash,
		ModuleType:  sff.IdentifierName(desc.Identifier),
		Size:        len(data),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	meta.Identity = Identity{
		VendorName:   desc.Vendor.Name,
		VendorOUI:    desc.Vendor.OUI,
		PartNumber:   desc.Vendor.PartNumber,
		Revision:     desc.Vendor.Revision,
		SerialNumber: desc.Vendor.SerialNumber,
		DateCode:     desc.Vendor.DateCode,
		CLEI:         desc.Vendor.CLEI,
	}

	meta.Specs = Specs{
		ConnectorType: sff.ConnectorName(desc.Connector),
		Technology:    desc.Technology.String(),
		CableLengthKM: desc.CableAssembly.KM,
		PowerClass:    desc.PowerClass,
		MaxPowerW:     desc.MaxPowerW,
	}
	if desc.Optical != nil {
		meta.Specs.WavelengthNM = desc.Optical.WavelengthNM
	}

	return meta
}
