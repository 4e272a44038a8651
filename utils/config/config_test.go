package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakub-suliga/Smart-City-Traffic/utils/config"
)

func TestDefaultPhaseDurationsMatchSpec(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 15.0, cfg.Phases.Green)
	assert.Equal(t, 3.0, cfg.Phases.Yellow)
	assert.Equal(t, 15.0, cfg.Phases.Red)
	assert.Equal(t, 2.0, cfg.Phases.RedYellow)
}

func TestDefaultVehicleProfilesMatchSpec(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, config.VehicleProfile{SpeedFactor: 1.50, ReactionTime: 0.8}, cfg.VehicleProfiles["raser"])
	assert.Equal(t, config.VehicleProfile{SpeedFactor: 1.00, ReactionTime: 1.0}, cfg.VehicleProfiles["normal"])
	assert.Equal(t, config.VehicleProfile{SpeedFactor: 0.75, ReactionTime: 1.5}, cfg.VehicleProfiles["slow_driver"])
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte("control:\n  respawn_probability: 0.25\n"), 0o644)
	assert.NoError(t, err)

	cfg, err := config.Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Control.RespawnProbability)
	// untouched fields keep their defaults
	assert.Equal(t, 15.0, cfg.Phases.Green)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
