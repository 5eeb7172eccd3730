package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings represents the structure of $STINT_HOME/settings.json
type Settings struct {
	AuthorizedKeys string `json:"authorized_keys,omitempty"`
	DBPath         string `json:"db_path,omitempty"`
	Debug          *bool  `json:"debug,omitempty"`
	ListenAddr     string `json:"listen_addr,omitempty"`
	MaxLogFiles    *int   `json:"max_log_files,omitempty"`
	// WeekStart is "monday" (default) or "sunday"; it only affects how the
	// heatmap aligns its columns.
	WeekStart string `json:"week_start,omitempty"`
}

// GetHomeDir returns $STINT_HOME, defaulting to ~/.stint
func GetHomeDir() string {
	if home := os.Getenv("STINT_HOME"); home != "" {
		return home
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "~/.stint" // Fallback to unexpanded path
	}
	return filepath.Join(homeDir, ".stint")
}

// GetSettingsPath returns the path to the settings file
func GetSettingsPath() string {
	return filepath.Join(GetHomeDir(), "settings.json")
}

// GetDefaultDBPath returns where the database lives unless overridden
func GetDefaultDBPath() string {
	return filepath.Join(GetHomeDir(), "stint.db")
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[1:])
}

// LoadSettings loads settings from $STINT_HOME/settings.json.
// Returns empty Settings if the file doesn't exist (not an error).
func LoadSettings() (*Settings, error) {
	path := GetSettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	if settings.DBPath != "" {
		settings.DBPath = ExpandPath(settings.DBPath)
	}
	if settings.AuthorizedKeys != "" {
		settings.AuthorizedKeys = ExpandPath(settings.AuthorizedKeys)
	}

	return &settings, nil
}

// SaveSettings saves settings to $STINT_HOME/settings.json
func SaveSettings(settings *Settings) error {
	if err := os.MkdirAll(GetHomeDir(), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(GetSettingsPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
