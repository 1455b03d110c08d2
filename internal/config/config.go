// Package config loads a RunConfig — the caller-tunable knobs a
// deployment of the suite exposes without recompiling it — from a YAML
// document.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"irsuite/internal/optimizer"
)

// RunConfig mirrors optimizer.Options' tunable fields in a form a
// deployment can check into source control and load at startup. Dialect
// and Analyzer still have to be supplied by the caller in code — neither
// survives a YAML round trip.
type RunConfig struct {
	Debug                        string `yaml:"debug"`
	StackDepthLimit              int    `yaml:"stack_depth_limit"`
	StackCompressorMaxIterations int    `yaml:"stack_compressor_max_iterations"`
}

// Default returns the zero-value-safe defaults every field falls back to
// when absent from the YAML document.
func Default() RunConfig {
	return RunConfig{
		Debug:                        "none",
		StackDepthLimit:              0,
		StackCompressorMaxIterations: 0,
	}
}

// Load reads and parses a RunConfig from path, applying Default() to any
// field the document leaves unset.
func Load(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

// DebugMode resolves the textual Debug field to an optimizer.DebugMode,
// defaulting to optimizer.DebugNone for an empty or unrecognized value.
func (c RunConfig) DebugMode() optimizer.DebugMode {
	switch c.Debug {
	case "print-step":
		return optimizer.DebugPrintStep
	case "print-changes":
		return optimizer.DebugPrintChanges
	default:
		return optimizer.DebugNone
	}
}

// ApplyTo copies the config's tunables onto opts, leaving Dialect,
// Analyzer, ExternallyUsedNames, GasMeter, and Trace untouched.
func (c RunConfig) ApplyTo(opts optimizer.Options) optimizer.Options {
	opts.Debug = c.DebugMode()
	opts.StackDepthLimit = c.StackDepthLimit
	opts.StackCompressorMaxIterations = c.StackCompressorMaxIterations
	return opts
}
