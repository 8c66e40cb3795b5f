package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	oerrors "github.com/wpmake/cli/internal/errors"
)

// Environment variable prefix for wpmake configuration.
const envPrefix = "WPMAKE"

// reservedKeys are RC keys that are settings rather than profile sections.
var reservedKeys = map[string]bool{
	"profile": true,
	"default": true,
	"pad":     true,
	"install": true,
	"log":     true,
}

// Loader reads the RC file.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("profile", "WPMAKE_PROFILE")
	_ = v.BindEnv("pad", "WPMAKE_PAD")

	return &Loader{v: v}
}

// Load reads configFile, or the default RC file when empty. A missing file
// is not an error. Environment variables take precedence over file values.
//
// Settings go through viper. Profile sections are decoded separately because
// viper folds keys to lower case and profile keys are case-sensitive
// question names.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	found := true
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		found = false
	}

	var raw map[string]any
	if found {
		raw, err = readRaw(expandedPath)
		if err != nil {
			return nil, err
		}
		validator, err := NewValidator()
		if err != nil {
			return nil, err
		}
		if err := validator.Validate(raw); err != nil {
			return nil, &oerrors.DetailError{
				Type:     "validation failed",
				Message:  err.Error(),
				Location: expandedPath,
				Hint:     "Run 'wpmake config init --force' to write a fresh RC file.",
				Cause:    oerrors.ErrValidation,
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Profiles = map[string]Profile{}
	if found {
		cfg.Path = expandedPath
		cfg.Profiles = profilesFrom(raw)
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}
	return cfg.WithDefaults(), nil
}

func readRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return raw, nil
}

func profilesFrom(raw map[string]any) map[string]Profile {
	profiles := make(map[string]Profile)
	for key, value := range raw {
		if reservedKeys[key] {
			continue
		}
		section, ok := value.(map[string]any)
		if !ok {
			continue
		}
		profiles[key] = Profile(section).Normalize()
	}
	return profiles
}

// ConfigFileExists reports whether the RC file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return false, err
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(expandedPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
