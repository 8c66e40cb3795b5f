package config

import "os"

// Source indicates where a configuration value came from.
type Source string

const (
	// SourceFlag indicates the value came from a command-line flag.
	SourceFlag Source = "flag"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv Source = "env"
	// SourceConfig indicates the value came from the RC file.
	SourceConfig Source = "config"
	// SourceNone indicates no value was set.
	SourceNone Source = ""
)

// ResolvedProfile is the profile chosen for a run.
type ResolvedProfile struct {
	Name   string
	Source Source
	Values Profile
}

// ResolveProfile picks the profile using precedence:
// (1) --profile flag, (2) WPMAKE_PROFILE, (3) profile, then default, from
// the RC file.
func ResolveProfile(flagValue string, cfg *Config) ResolvedProfile {
	var res ResolvedProfile
	switch {
	case flagValue != "":
		res = ResolvedProfile{Name: flagValue, Source: SourceFlag}
	case os.Getenv("WPMAKE_PROFILE") != "":
		res = ResolvedProfile{Name: os.Getenv("WPMAKE_PROFILE"), Source: SourceEnv}
	case cfg != nil && cfg.ProfileName() != "":
		res = ResolvedProfile{Name: cfg.ProfileName(), Source: SourceConfig}
	}

	res.Values = Profile{}
	if cfg != nil {
		if p, ok := cfg.Profiles[res.Name]; ok {
			res.Values = p
		}
	}
	return res
}
