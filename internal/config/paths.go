package config

import (
	"os"
	"path/filepath"
)

// rcFileName is the RC file in the user's home directory.
const rcFileName = ".wpmakerc"

// Paths contains standard filesystem paths for wpmake.
type Paths struct {
	// ConfigFile is the path to the RC file (~/.wpmakerc).
	ConfigFile string

	// HomeDir is the user's home directory.
	HomeDir string
}

// DefaultPaths returns the default paths for wpmake.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return &Paths{
		ConfigFile: filepath.Join(homeDir, rcFileName),
		HomeDir:    homeDir,
	}, nil
}

// GetConfigFile returns the RC file path. WPMAKE_CONFIG takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("WPMAKE_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}
