package main

import (
	"github.com/alecthomas/kong"

	"github.com/vitaminmoo/cmisw-tool/internal/cli"
)

func main() {
	var root cli.CLI
	ctx := kong.Parse(&root,
		kong.Name("cmisw"),
		kong.Description("CMIS/QSFP-DD module tool for the XCVR Wizard dongle"),
		kong.UsageOnError(),
	)
	err := ctx.Run(&root)
	ctx.FatalIfErrorf(err)
}
