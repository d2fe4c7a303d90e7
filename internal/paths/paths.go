// Package paths resolves configuration and data directory locations and
// expands user-supplied file paths.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"
)

// AppName names the labels directory under each platform root.
const AppName = "address-labels"

// Environment overrides for the two directories.
const (
	EnvConfigDir = "LABELS_CONFIG_DIR"
	EnvDataDir   = "LABELS_DATA_DIR"
)

// platformDir holds the OS lookups, replaced in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the directory holding config.yaml when neither
// --config-dir nor LABELS_CONFIG_DIR is set. On Linux it follows the XDG
// base directory layout (~/.config/address-labels); elsewhere it sits in
// os.UserConfigDir.
func DefaultConfigDir() (string, error) {
	return appDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the directory holding the addresses.db address
// book when no override is set. On Linux this is ~/.local/share/address-labels
// unless XDG_DATA_HOME says otherwise; on macOS and Windows the address book
// shares the config directory.
func DefaultDataDir() (string, error) {
	return appDir("XDG_DATA_HOME", ".local", "share")
}

// appDir joins AppName onto the Linux XDG root named by xdgEnv, falling back
// to home/fallback, or onto os.UserConfigDir on other systems.
func appDir(xdgEnv string, fallback ...string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, fallback...)
	return filepath.Join(append(parts, AppName)...), nil
}

// ResolveConfigDir picks the config.yaml directory: the --config-dir value,
// then LABELS_CONFIG_DIR, then DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir picks the address book directory: the --data-dir value,
// then data_dir from config.yaml, then LABELS_DATA_DIR, then DefaultDataDir.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return Abs(flag)
	}
	if configYAMLValue != "" {
		return Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return Abs(env)
	}
	return DefaultDataDir()
}

// Abs expands a leading ~ to the user's home directory and makes the path
// absolute. An empty path stays empty.
func Abs(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}
