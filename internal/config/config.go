// Package config handles the XDG configuration directory and client settings.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "taskdeck"

	// SettingsFile is the optional settings filename inside the config dir.
	SettingsFile = "config.yaml"

	// DefaultServerURL is used when no server URL is configured.
	DefaultServerURL = "http://localhost:5000/api"

	// ServerURLEnv overrides the settings-file server URL when set.
	ServerURLEnv = "TASKDECK_SERVER_URL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// ServerURL is the base URL of the task server.
	ServerURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// settings is the on-disk shape of config.yaml.
type settings struct {
	ServerURL string `yaml:"server_url"`
}

// New creates a Config with the default or specified config directory and
// resolves the server URL: config.yaml, then $TASKDECK_SERVER_URL, then the
// default. A missing settings file is not an error.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, ServerURL: DefaultServerURL}

	data, err := os.ReadFile(cfg.SettingsPath())
	if err == nil {
		var s settings
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		if s.ServerURL != "" {
			cfg.ServerURL = s.ServerURL
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if env := os.Getenv(ServerURLEnv); env != "" {
		cfg.ServerURL = env
	}

	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to the settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
