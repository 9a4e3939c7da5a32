package commands

import (
	"fmt"
	"log"
	"os"

	"github.com/vitaminmoo/cmisw-tool/internal/cmis"
	"github.com/vitaminmoo/cmisw-tool/internal/render"
	"github.com/vitaminmoo/cmisw-tool/internal/util"
)

// DecodeFile parses a memory image file and prints the full report.
// No device connection is needed.
func DecodeFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read file: %v", err)
	}

	mod, err := cmis.Decode(data)
	if err != nil {
		log.Fatalf("Failed to decode %s: %v", path, err)
	}

	fmt.Print(render.Module(mod))
}

// DumpFile prints a memory image file as a hex dump.
func DumpFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read file: %v", err)
	}
	fmt.Print(util.HexDump(data))
}
