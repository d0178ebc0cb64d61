package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/relay/internal/logging"
	"github.com/mesh-intelligence/relay/internal/paths"
	"github.com/mesh-intelligence/relay/pkg/types"
)

// Config keys.
const (
	keyBackend   = "backend"
	keyDataDir   = "data_dir"
	keyLogLevel  = "log.level"
	keyLogPretty = "log.pretty"
)

// envPrefix prefixes environment overrides: RELAY_BACKEND, RELAY_LOG_LEVEL.
const envPrefix = "RELAY"

// settings is the decoded content of config.yaml plus overrides.
type settings struct {
	Backend string         `mapstructure:"backend" yaml:"backend"`
	DataDir string         `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	Log     logging.Config `mapstructure:"log" yaml:"log"`
}

func defaultSettings() settings {
	return settings{
		Backend: types.BackendSQLite,
		Log:     logging.Config{Level: "warn"},
	}
}

// loadSettings reads config.yaml from configDir with environment
// overrides. A missing file yields the defaults.
func loadSettings(configDir string) (settings, error) {
	d := defaultSettings()
	v := viper.New()
	v.SetDefault(keyBackend, d.Backend)
	v.SetDefault(keyDataDir, d.DataDir)
	v.SetDefault(keyLogLevel, d.Log.Level)
	v.SetDefault(keyLogPretty, d.Log.Pretty)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(filepath.Join(configDir, paths.ConfigFileName))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

// writeConfigIfMissing writes s to configDir/config.yaml unless the file
// already exists. It reports whether it wrote the file.
func writeConfigIfMissing(configDir string, s settings) (bool, error) {
	path := filepath.Join(configDir, paths.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(&s)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# relay configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
