package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hdcycles.toml")
	data := []byte("enable_subdivision = false\nmotion_steps = 5\nsubdivision_dicing_rate = 0.5\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.False(t, cfg.EnableSubdivision)
	assert.Equal(t, 5, cfg.MotionSteps)
	assert.InDelta(t, 0.5, float64(cfg.SubdivisionDicingRate), 1e-6)
	// Untouched keys keep their defaults.
	assert.True(t, cfg.EnableMotionBlur)
	assert.Equal(t, 12, cfg.MaxSubdivision)
}

func TestLoadMalformedFileFailsWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hdcycles.toml")
	require.NoError(t, os.WriteFile(path, []byte("enable_subdivision = {"), 0o644))

	cfg, err := Load(path)

	assert.Error(t, err)
	assert.Equal(t, Default(), cfg)
}
