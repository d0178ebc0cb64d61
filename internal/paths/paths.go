// Package paths resolves where relay keeps its configuration and data.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user application directory.
const AppName = "relay"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "RELAY_CONFIG_DIR"
	EnvDataDir   = "RELAY_DATA_DIR"
)

// ConfigFileName is the configuration file inside the config directory.
const ConfigFileName = "config.yaml"

// platform holds OS lookups that tests override.
var platform = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// xdgDir returns $xdgEnv/relay, or ~/fallback.../relay when xdgEnv is unset.
// Outside Linux it returns the OS user config directory plus relay.
func xdgDir(xdgEnv string, fallback ...string) (string, error) {
	if platform.goos != "linux" {
		dir, err := platform.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platform.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, fallback...), AppName)...), nil
}

// DefaultConfigDir returns the platform configuration directory:
// $XDG_CONFIG_HOME/relay or ~/.config/relay on Linux, the OS user config
// directory elsewhere.
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform data directory:
// $XDG_DATA_HOME/relay or ~/.local/share/relay on Linux, the OS user config
// directory elsewhere.
func DefaultDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// ResolveConfigDir applies flag > RELAY_CONFIG_DIR > DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	return resolve(flag, os.Getenv(EnvConfigDir), "", DefaultConfigDir)
}

// ResolveDataDir applies flag > RELAY_DATA_DIR > configValue > DefaultDataDir.
func ResolveDataDir(flag, configValue string) (string, error) {
	return resolve(flag, os.Getenv(EnvDataDir), configValue, DefaultDataDir)
}

// resolve returns the first non-empty candidate as an absolute path, or the
// fallback directory.
func resolve(flag, env, configValue string, fallback func() (string, error)) (string, error) {
	for _, c := range []string{flag, env, configValue} {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}
