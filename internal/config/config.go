// Package config holds project-level settings for the parser and analyzer:
// the configured name of the built-in array type, the recursion-depth guard,
// and strict-mode toggles. Settings are loaded from an optional
// `.angelscript.yml` file; every field has a working default so a project
// with no config file still analyzes correctly.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const ConfigFileName = ".angelscript.yml"

// ArrayTypeName is the built-in generic array type array-syntax `T[]`
// rewrites to (spec.md §4.4: "Array syntax T[] rewrites the type into a
// template instantiation of the configured built-in array type").
var ArrayTypeName = "array"

// MaxRecursionDepth bounds the Parser's nesting-depth guard (enterRecursive).
var MaxRecursionDepth = 256

// StrictMode, when true, escalates a handful of recovery-friendly
// diagnostics (e.g. missing default case in an exhaustive-looking switch)
// from advisory to reported; analysis never throws either way (spec.md §7).
var StrictMode = false

// Settings is the shape of a project's .angelscript.yml file.
type Settings struct {
	ArrayTypeName     string `yaml:"arrayTypeName"`
	MaxRecursionDepth int    `yaml:"maxRecursionDepth"`
	StrictMode        bool   `yaml:"strictMode"`
}

// Load reads path and applies any fields it sets onto the package-level
// defaults. A missing file is not an error — it just means "use defaults".
func Load(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return err
	}
	if s.ArrayTypeName != "" {
		ArrayTypeName = s.ArrayTypeName
	}
	if s.MaxRecursionDepth != 0 {
		MaxRecursionDepth = s.MaxRecursionDepth
	}
	StrictMode = s.StrictMode
	return nil
}
