// Package config loads the on-disk superset of pkg/compiler's Options
// from a `.ljconfig.yaml` file, the way the teacher's cobra commands bind
// CLI flags to option structs, but for file-based configuration instead.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ModuleResolution names one of pkg/compiler's built-in module resolution
// strategies, selectable from the config file by name.
type ModuleResolution string

const (
	ModuleResolutionIdentity  ModuleResolution = "identity"
	ModuleResolutionExtension ModuleResolution = "rewrite-extension"
	ModuleResolutionStdPrefix ModuleResolution = "std-prefix"
)

// CompileOptions is the full on-disk configuration shape. OutDir,
// SourceMap, Target, and ModuleResolution mirror pkg/compiler.Options;
// Include/Exclude are file globs that Load decodes; nothing in this
// repository reads them, and `ljc compile` takes exactly one file path.
type CompileOptions struct {
	OutDir           string           `yaml:"outDir"`
	SourceMap        bool             `yaml:"sourceMap"`
	Target           string           `yaml:"target"`
	ModuleResolution ModuleResolution `yaml:"moduleResolution"`
	StdRoot          string           `yaml:"stdRoot"`
	RuntimeModule    string           `yaml:"runtimeModule"`
	Include          []string         `yaml:"include"`
	Exclude          []string         `yaml:"exclude"`
}

// Default returns the zero-value configuration used when no config file
// is present: identity module resolution, no source maps, code written to
// stdout (OutDir empty).
func Default() CompileOptions {
	return CompileOptions{
		ModuleResolution: ModuleResolutionIdentity,
		RuntimeModule:    "lj-runtime",
	}
}

// Load reads and parses a `.ljconfig.yaml` file at path. A missing file is
// not an error; Load returns Default() so callers can always unconditionally
// call Load("./.ljconfig.yaml") without checking existence first.
func Load(path string) (CompileOptions, error) {
	opts := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if opts.ModuleResolution == "" {
		opts.ModuleResolution = ModuleResolutionIdentity
	}
	if opts.RuntimeModule == "" {
		opts.RuntimeModule = "lj-runtime"
	}
	return opts, nil
}
