package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"stint/internal/config"
	"stint/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	DB          string           `help:"Database file path (defaults to $STINT_HOME/stint.db)"`

	Track      TrackCmd      `cmd:"" help:"Start timers and track time (default)" default:"1"`
	Activities ActivitiesCmd `cmd:"activities" help:"Manage the activity tree (add, list, rename, del, move, habit)"`
	Entries    EntriesCmd    `cmd:"entries" help:"Manage committed time entries (list, add, edit, del)"`
	Habits     HabitsCmd     `cmd:"habits" help:"Log habits and inspect streaks (log, clear, status, streak, heatmap)"`
	Day        DayCmd        `cmd:"day" help:"Show one day's entries and habit completion"`
	Stats      StatsCmd      `cmd:"stats" help:"Show historical average durations per activity"`
	Serve      ServeCmd      `cmd:"serve" help:"Serve a read-only status board over SSH"`
	Doctor     DoctorCmd     `cmd:"doctor" hidden:"" help:"Print effective paths and settings"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// LoadSettingsOrWarn loads settings, degrading to defaults on error.
func LoadSettingsOrWarn() (*config.Settings, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return &config.Settings{}, err
	}
	return settings, nil
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Apply settings with proper precedence: CLI flags > env vars > settings.json > defaults
	// Only apply if flag is at default value and env var is not set

	if c.settings != nil {
		if c.MaxLogFiles == 1000 {
			if _, hasEnv := os.LookupEnv("STINT_MAX_LOG_FILES"); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv("STINT_DEBUG"); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}

		if c.DB == "" && c.settings.DBPath != "" {
			c.DB = c.settings.DBPath
		}
	}
	if c.DB == "" {
		c.DB = config.GetDefaultDBPath()
	}

	// Initialize logging first and get the log file path
	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Export debug settings so child processes share the same log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv("STINT_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("STINT_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != 1000 {
		os.Setenv("STINT_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	// Create container AFTER logging is initialized so the GORM logger has a
	// real logger to write to.
	container, err := NewContainer(c.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
