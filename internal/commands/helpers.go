package commands

import (
	"fmt"

	"github.com/vitaminmoo/cmisw-tool/internal/cmis"
)

// DisplayModuleSummary shows a compact summary of module identity from a
// memory image.
func DisplayModuleSummary(data []byte) {
	mod, err := cmis.Decode(data)
	if err != nil {
		return
	}

	fmt.Printf("\nModule info:\n")
	fmt.Printf("  Vendor: %s\n", mod.Descriptor.Vendor.Name)
	fmt.Printf("  Part:   %s\n", mod.Descriptor.Vendor.PartNumber)
	fmt.Printf("  S/N:    %s\n", mod.Descriptor.Vendor.SerialNumber)
}
