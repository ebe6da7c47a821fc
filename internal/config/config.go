// Package config holds small package-level constants and the optional
// project configuration file, grounded on funvibe/funxy's
// internal/config/constants.go (small const/var tables for recognized
// source extensions) and internal/ext/config.go (a yaml.v3-tagged project
// config struct).
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SourceFileExt is the recognized Compiscript source extension.
const SourceFileExt = ".cspt"

// TrimSourceExt removes a recognized source extension from name, returning
// name unchanged if it doesn't have one.
func TrimSourceExt(name string) string {
	if len(name) >= len(SourceFileExt) && name[len(name)-len(SourceFileExt):] == SourceFileExt {
		return name[:len(name)-len(SourceFileExt)]
	}
	return name
}

// HasSourceExt reports whether path ends with the recognized source
// extension.
func HasSourceExt(path string) bool {
	return len(path) >= len(SourceFileExt) && path[len(path)-len(SourceFileExt):] == SourceFileExt
}

// ProjectConfig is the optional `.compiscript.yaml` project file
// (SPEC_FULL.md §4): output routing and whether warnings are treated as
// build-failing.
type ProjectConfig struct {
	// OutputPath overrides the default sibling ".tac" file location.
	OutputPath string `yaml:"output,omitempty"`

	// WarningsAsErrors promotes Warning-severity diagnostics (currently
	// only DeadCode) to build-failing for this project.
	WarningsAsErrors bool `yaml:"warnings_as_errors,omitempty"`

	// Cache enables the sqlite compile cache for this project without
	// requiring the CLI's -cache flag.
	Cache bool `yaml:"cache,omitempty"`
}

// LoadProjectConfig reads and parses path. A missing file is not an error —
// it returns a zero ProjectConfig, the same as an empty `.compiscript.yaml`.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &ProjectConfig{}, nil
	}
	if err != nil {
		return nil, err
	}
	cfg := &ProjectConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
