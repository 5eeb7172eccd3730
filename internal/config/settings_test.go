package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_MissingFileIsNotAnError(t *testing.T) {
	t.Setenv("STINT_HOME", t.TempDir())

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, &Settings{}, settings)
}

func TestLoadSettings_InvalidJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("STINT_HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "settings.json"), []byte("{nope"), 0644))

	_, err := LoadSettings()
	assert.Error(t, err)
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Setenv("STINT_HOME", t.TempDir())

	debug := true
	maxLogs := 50
	original := &Settings{
		DBPath:      "/tmp/stint-test.db",
		Debug:       &debug,
		ListenAddr:  "localhost:2223",
		MaxLogFiles: &maxLogs,
		WeekStart:   "sunday",
	}
	require.NoError(t, SaveSettings(original))

	loaded, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestGetHomeDirHonorsEnv(t *testing.T) {
	t.Setenv("STINT_HOME", "/custom/stint")
	assert.Equal(t, "/custom/stint", GetHomeDir())
	assert.Equal(t, "/custom/stint/stint.db", GetDefaultDBPath())
	assert.Equal(t, "/custom/stint/settings.json", GetSettingsPath())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".stint", "stint.db"), ExpandPath("~/.stint/stint.db"))
	assert.Equal(t, "/absolute/path", ExpandPath("/absolute/path"))
	assert.Equal(t, "", ExpandPath(""))
}
