package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dchest/safefile"
	"gopkg.in/yaml.v3"
)

// starterProfile is the profile section written by WriteStarter.
const starterProfile = "default-profile"

// StarterDocument returns the RC file contents written by `config init`.
func StarterDocument() map[string]any {
	return map[string]any{
		"default": starterProfile,
		"pad":     DefaultPad,
		"install": map[string]bool{
			"npm":      true,
			"composer": true,
		},
		starterProfile: map[string]any{
			"authorName":    "",
			"authorEmail":   "",
			"authorUrl":     "",
			"license":       "GPLv2+",
			"rootNamespace": "TenUp",
		},
	}
}

// WriteStarter writes StarterDocument to path atomically. An existing file
// is only replaced when force is set.
func WriteStarter(path string, force bool) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(expanded); err == nil {
			return fmt.Errorf("%s already exists", expanded)
		}
	}

	data, err := yaml.Marshal(StarterDocument())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := safefile.Create(expanded, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", expanded, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", expanded, err)
	}
	return f.Commit()
}
