package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"irsuite/internal/config"
	"irsuite/internal/optimizer"
)

func TestLoadAppliesDefaultsForMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stack_depth_limit: 8\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.StackDepthLimit)
	require.Equal(t, "none", cfg.Debug)
	require.Equal(t, optimizer.DebugNone, cfg.DebugMode())
}

func TestDebugModeResolvesKnownValues(t *testing.T) {
	require.Equal(t, optimizer.DebugPrintStep, config.RunConfig{Debug: "print-step"}.DebugMode())
	require.Equal(t, optimizer.DebugPrintChanges, config.RunConfig{Debug: "print-changes"}.DebugMode())
	require.Equal(t, optimizer.DebugNone, config.RunConfig{Debug: "bogus"}.DebugMode())
}

func TestApplyToLeavesDialectAndAnalyzerUntouched(t *testing.T) {
	opts := optimizer.Options{Dialect: nil, Analyzer: nil}
	cfg := config.RunConfig{StackDepthLimit: 12, StackCompressorMaxIterations: 4, Debug: "print-changes"}
	applied := cfg.ApplyTo(opts)
	require.Equal(t, 12, applied.StackDepthLimit)
	require.Equal(t, 4, applied.StackCompressorMaxIterations)
	require.Equal(t, optimizer.DebugPrintChanges, applied.Debug)
	require.Nil(t, applied.Dialect)
	require.Nil(t, applied.Analyzer)
}
