// Package paths resolves where coursebook keeps its configuration and data.
//
// Each directory is chosen by the first non-empty source in order: the
// command-line flag, the COURSEBOOK_* environment variable, then (for data
// only) the data_dir value from config.yaml, and finally the per-user
// platform default.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under the platform base directories.
const AppName = "coursebook"

// Environment variables that override the directories.
const (
	EnvConfigDir = "COURSEBOOK_CONFIG_DIR"
	EnvDataDir   = "COURSEBOOK_DATA_DIR"
)

// ConfigFileName is the configuration file inside the config directory.
const ConfigFileName = "config.yaml"

// EnvFileName is the optional dotenv file inside the config directory.
const EnvFileName = ".env"

// platformDir holds platform lookups that tests replace.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// xdgDir returns $envVar/coursebook, or ~/<fallback...>/coursebook when the
// variable is unset.
func xdgDir(envVar string, fallback ...string) (string, error) {
	if xdg := os.Getenv(envVar); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, fallback...)
	return filepath.Join(append(parts, AppName)...), nil
}

// DefaultConfigDir returns the per-user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/coursebook (fallback ~/.config/coursebook)
// macOS:   ~/Library/Application Support/coursebook
// Windows: %AppData%/coursebook
func DefaultConfigDir() (string, error) {
	if platformDir.goos == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// DefaultDataDir returns the per-user data directory.
//
// Linux:   $XDG_DATA_HOME/coursebook (fallback ~/.local/share/coursebook)
// macOS and Windows: <DefaultConfigDir>/data
func DefaultDataDir() (string, error) {
	if platformDir.goos == "linux" {
		return xdgDir("XDG_DATA_HOME", ".local", "share")
	}
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// ResolveConfigDir returns the absolute configuration directory: flag, then
// COURSEBOOK_CONFIG_DIR, then DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the absolute data directory: flag, then
// COURSEBOOK_DATA_DIR, then the data_dir value from config.yaml, then
// DefaultDataDir.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, dir := range []string{flag, os.Getenv(EnvDataDir), configValue} {
		if dir != "" {
			return filepath.Abs(dir)
		}
	}
	return DefaultDataDir()
}

// ConfigFile returns the path of config.yaml in configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// EnvFile returns the path of the dotenv file in configDir.
func EnvFile(configDir string) string {
	return filepath.Join(configDir, EnvFileName)
}
