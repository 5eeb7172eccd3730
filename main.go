package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"stint/internal/cmd"
	"stint/version"
)

func main() {
	var cli cmd.CLI

	settings, err := cmd.LoadSettingsOrWarn()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cli.SetSettings(settings)

	ctx := kong.Parse(&cli,
		kong.Name("stint"),
		kong.Description(version.Tagline),
		kong.UsageOnError(),
		kong.Vars{"version": version.Info()},
	)

	err = ctx.Run(&cli)
	if closeErr := cli.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
