package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEngineConfigMissingFileUsesDefaults(t *testing.T) {
	cfg := LoadEngineConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, DefaultEngineConfig(), cfg)
}

func TestLoadEngineConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("suggestion_threshold: 40\nauto_accept_threshold: 90\n"), 0o644))

	cfg := LoadEngineConfig(path)

	assert.Equal(t, 40, cfg.SuggestionThreshold)
	assert.Equal(t, 90, cfg.AutoAcceptThreshold)
	// unset fields keep defaults
	assert.Equal(t, 5, cfg.MaxSuggestions)
}

func TestLoadEngineConfigInvalidYAMLUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":: not yaml ::"), 0o644))

	cfg := LoadEngineConfig(path)

	assert.Equal(t, DefaultEngineConfig(), cfg)
}
