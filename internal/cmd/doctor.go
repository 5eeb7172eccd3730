package cmd

import (
	"fmt"
	"os"

	"stint/internal/config"
)

// DoctorCmd prints the effective paths and settings for troubleshooting
type DoctorCmd struct{}

// Run executes the doctor command
func (s *DoctorCmd) Run(cli *CLI) error {
	fmt.Printf("home:        %s\n", config.GetHomeDir())
	fmt.Printf("settings:    %s\n", config.GetSettingsPath())
	fmt.Printf("database:    %s\n", cli.DB)
	fmt.Printf("debug:       %t\n", cli.Debug)
	if v := os.Getenv("STINT_DEBUG_FILE"); v != "" {
		fmt.Printf("log file:    %s\n", v)
	}
	if cli.settings != nil && cli.settings.ListenAddr != "" {
		fmt.Printf("listen addr: %s\n", cli.settings.ListenAddr)
	}
	return nil
}
