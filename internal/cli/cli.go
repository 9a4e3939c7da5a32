package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/vitaminmoo/cmisw-tool/internal/ble"
	"github.com/vitaminmoo/cmisw-tool/internal/commands"
	"github.com/vitaminmoo/cmisw-tool/internal/config"
	"github.com/vitaminmoo/cmisw-tool/internal/store"
	"github.com/vitaminmoo/cmisw-tool/internal/tui"
)

// CLI is the root command structure for cmisw.
type CLI struct {
	Verbose bool `short:"v" help:"Enable verbose debug output"`

	// Default command - TUI
	Tui TuiCmd `cmd:"" default:"withargs" help:"Launch interactive TUI (default)"`

	Decode DecodeCmd `cmd:"" help:"Decode a module memory image file"`
	Dump   DumpCmd   `cmd:"" help:"Hex dump a module memory image file"`
	Module ModuleCmd `cmd:"" help:"Operations on the inserted module"`
	Store  StoreCmd  `cmd:"" help:"Module profile store"`
}

// --- TUI Command ---

type TuiCmd struct{}

func (c *TuiCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose
	return tui.Run()
}

// --- Offline Commands ---

type DecodeCmd struct {
	File string `arg:"" help:"Memory image file to decode (256 or 768 bytes)"`
}

func (c *DecodeCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose
	commands.DecodeFile(c.File)
	return nil
}

type DumpCmd struct {
	File string `arg:"" help:"Memory image file to dump"`
}

func (c *DumpCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose
	commands.DumpFile(c.File)
	return nil
}

// --- Module Commands ---

type ModuleCmd struct {
	Info ModuleInfoCmd `cmd:"" help:"Decode and display the inserted module"`
	Read ModuleReadCmd `cmd:"" help:"Read module memory to the store (and optionally a file)"`
}

type ModuleInfoCmd struct{}

func (c *ModuleInfoCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose
	device := ble.Connect()
	defer device.Disconnect()
	commands.ModuleInfo(device)
	return nil
}

type ModuleReadCmd struct {
	Output string `arg:"" optional:"" help:"Output file path (optional; always saves to store)"`
}

func (c *ModuleReadCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose
	device := ble.Connect()
	defer device.Disconnect()
	commands.ModuleRead(device, c.Output)
	return nil
}

// --- Store Commands ---

type StoreCmd struct {
	List   StoreListCmd   `cmd:"" help:"List all stored module profiles"`
	Show   StoreShowCmd   `cmd:"" help:"Show details of a stored profile"`
	Import StoreImportCmd `cmd:"" help:"Import a memory image file into the store"`
	Export StoreExportCmd `cmd:"" help:"Export a profile to a file"`
}

type StoreListCmd struct{}

func (c *StoreListCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose

	s, err := store.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	profiles, err := s.List()
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	if len(profiles) == 0 {
		fmt.Println("No profiles in store.")
		fmt.Println("Import profiles with: cmisw store import <memory.bin>")
		return nil
	}

	fmt.Printf("Found %d profile(s):\n\n", len(profiles))
	for _, entry := range profiles {
		fmt.Printf("  %s  %-16s  %-20s  %s\n",
			store.ShortHash(entry.Hash),
			entry.VendorName,
			entry.PartNumber,
			entry.SerialNumber)
	}

	return nil
}

type StoreShowCmd struct {
	Hash string `arg:"" help:"Profile hash (full or short)"`
}

func (c *StoreShowCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose

	s, err := store.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	fullHash, err := s.Resolve(c.Hash)
	if err != nil {
		return err
	}

	meta, err := s.GetMetadata(fullHash)
	if err != nil {
		return fmt.Errorf("failed to get metadata: %w", err)
	}

	// Pretty print metadata
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))

	return nil
}

type StoreImportCmd struct {
	File string `arg:"" help:"Memory image file to import"`
}

func (c *StoreImportCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	s, err := store.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	source := store.Source{
		Timestamp: time.Now(),
		Method:    "import",
		Filename:  c.File,
	}

	hash, isNew, err := s.Import(data, source)
	if err != nil {
		return fmt.Errorf("failed to import: %w", err)
	}

	if isNew {
		fmt.Printf("Imported new profile: %s\n", store.ShortHash(hash))
	} else {
		fmt.Printf("Profile already exists: %s (added source)\n", store.ShortHash(hash))
	}

	// Show summary
	meta, _ := s.GetMetadata(hash)
	if meta != nil {
		fmt.Printf("  Vendor: %s\n", meta.Identity.VendorName)
		fmt.Printf("  Part:   %s\n", meta.Identity.PartNumber)
		fmt.Printf("  S/N:    %s\n", meta.Identity.SerialNumber)
	}

	return nil
}

type StoreExportCmd struct {
	Hash   string `arg:"" help:"Profile hash (full or short)"`
	Output string `arg:"" help:"Output file path"`
}

func (c *StoreExportCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose

	s, err := store.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	fullHash, err := s.Resolve(c.Hash)
	if err != nil {
		return err
	}

	if err := s.Export(fullHash, c.Output); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	fmt.Printf("Exported to: %s\n", c.Output)
	return nil
}
