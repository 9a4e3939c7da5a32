package commands

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/vitaminmoo/cmisw-tool/internal/ble"
	"github.com/vitaminmoo/cmisw-tool/internal/cmis"
	"github.com/vitaminmoo/cmisw-tool/internal/render"
	"github.com/vitaminmoo/cmisw-tool/internal/store"

	"tinygo.org/x/bluetooth"
)

// ModuleInfo reads the inserted module and prints the full decoded report.
func ModuleInfo(device bluetooth.Device) {
	data, err := ReadModuleData(device)
	if err != nil {
		log.Fatal(err)
	}

	mod, err := cmis.Decode(data)
	if err != nil {
		log.Fatalf("Failed to decode module memory: %v", err)
	}

	fmt.Print(render.Module(mod))
}

// ModuleRead reads the inserted module's memory and saves it to the store.
// If filename is not empty, also saves to that file.
func ModuleRead(device bluetooth.Device, filename string) {
	data, err := ReadModuleData(device)
	if err != nil {
		log.Fatal(err)
	}

	// Always save to store
	s, err := store.OpenDefault()
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	source := store.Source{
		Timestamp: time.Now(),
		Method:    "module_read",
		Filename:  filename,
	}

	hash, isNew, err := s.Import(data, source)
	if err != nil {
		log.Fatalf("Failed to save to store: %v", err)
	}

	shortHash := store.ShortHash(hash)
	if isNew {
		fmt.Printf("Saved to store: %s (new)\n", shortHash)
	} else {
		fmt.Printf("Saved to store: %s (existing profile)\n", shortHash)
	}

	// Optionally save to file
	if filename != "" {
		if err := os.WriteFile(filename, data, 0o644); err != nil {
			log.Fatalf("Failed to write file: %v", err)
		}
		fmt.Printf("Saved to file: %s\n", filename)
	}

	DisplayModuleSummary(data)
}

// ReadModuleData acquires the flattened memory image from the dongle.
// This is the low-level function used by both CLI and TUI.
func ReadModuleData(device bluetooth.Device) ([]byte, error) {
	ctx, err := ble.Setup(device)
	if err != nil {
		return nil, fmt.Errorf("failed to set up device: %w", err)
	}

	fmt.Println("Reading module memory...")
	data, err := ble.ReadModuleMemory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read module memory: %w", err)
	}

	fmt.Printf("Received %d bytes\n", len(data))
	return data, nil
}
