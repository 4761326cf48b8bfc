package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// SettingsFileName is the settings file looked up in the user config directory.
const SettingsFileName = "storm-alertd.yaml"

// EnvPrefix prefixes environment overrides of settings keys, e.g.
// STORM_ALERTD_UPDATE_INTERVAL.
const EnvPrefix = "STORM_ALERTD"

// DefaultUserAgent identifies the daemon to api.weather.gov, which asks
// clients to include contact information.
const DefaultUserAgent = "storm-alertd (https://github.com/couchcryptid/storm-alertd)"

// Settings is the daemon configuration read from the settings file.
type Settings struct {
	// UpdateInterval is the wait between polls, in seconds.
	UpdateInterval       int     `mapstructure:"update_interval" yaml:"update_interval"`
	Lat                  float64 `mapstructure:"lat" yaml:"lat"`
	Lon                  float64 `mapstructure:"lon" yaml:"lon"`
	DetailedNotification bool    `mapstructure:"detailed_notification" yaml:"detailed_notification"`
	NotificationIconPath string  `mapstructure:"notification_icon_path" yaml:"notification_icon_path"`
	UserAgent            string  `mapstructure:"user_agent" yaml:"user_agent"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		UpdateInterval:       300,
		Lat:                  36.974117,
		Lon:                  -122.030792,
		DetailedNotification: false,
		NotificationIconPath: "",
		UserAgent:            DefaultUserAgent,
	}
}

// Interval returns the poll interval as a duration.
func (s Settings) Interval() time.Duration {
	return time.Duration(s.UpdateInterval) * time.Second
}

// Validate checks that the settings describe a usable daemon.
func (s Settings) Validate() error {
	var errs []error
	if s.UpdateInterval < 1 {
		errs = append(errs, fmt.Errorf("update_interval must be at least 1 second, got %d", s.UpdateInterval))
	}
	if s.Lat < -90 || s.Lat > 90 {
		errs = append(errs, fmt.Errorf("lat must be within [-90, 90], got %v", s.Lat))
	}
	if s.Lon < -180 || s.Lon > 180 {
		errs = append(errs, fmt.Errorf("lon must be within [-180, 180], got %v", s.Lon))
	}
	if strings.TrimSpace(s.UserAgent) == "" {
		errs = append(errs, errors.New("user_agent is required"))
	}
	return errors.Join(errs...)
}

// DefaultSettingsPath returns the settings file location in the user config directory.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("find config directory: %w", err)
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// LoadSettings reads settings from path, falling back to DefaultSettingsPath
// when path is empty. Environment variables prefixed with EnvPrefix override
// file values. A missing file is not an error: defaults are used and found
// is false.
func LoadSettings(path string) (settings *Settings, found bool, err error) {
	if path == "" {
		if path, err = DefaultSettingsPath(); err != nil {
			return nil, false, err
		}
	}

	v := viper.New()
	defaults := DefaultSettings()
	v.SetDefault("update_interval", defaults.UpdateInterval)
	v.SetDefault("lat", defaults.Lat)
	v.SetDefault("lon", defaults.Lon)
	v.SetDefault("detailed_notification", defaults.DetailedNotification)
	v.SetDefault("notification_icon_path", defaults.NotificationIconPath)
	v.SetDefault("user_agent", defaults.UserAgent)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	switch _, statErr := os.Stat(path); {
	case statErr == nil:
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, false, fmt.Errorf("read settings %s: %w", path, err)
		}
		found = true
	case errors.Is(statErr, os.ErrNotExist):
	default:
		return nil, false, fmt.Errorf("stat settings %s: %w", path, statErr)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, found, fmt.Errorf("unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, found, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, found, nil
}

// ErrSettingsExist is returned by WriteDefaultSettings when the file is
// already present and overwriting was not requested.
var ErrSettingsExist = errors.New("settings file already exists")

// WriteDefaultSettings writes DefaultSettings as YAML to path, falling back
// to DefaultSettingsPath when path is empty. It returns the path written.
func WriteDefaultSettings(path string, force bool) (string, error) {
	if path == "" {
		var err error
		if path, err = DefaultSettingsPath(); err != nil {
			return "", err
		}
	}

	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%w: %s", ErrSettingsExist, path)
	}

	data, err := yaml.Marshal(DefaultSettings())
	if err != nil {
		return path, fmt.Errorf("serialize default settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return path, fmt.Errorf("create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, fmt.Errorf("write settings %s: %w", path, err)
	}
	return path, nil
}
