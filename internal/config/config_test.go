package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quoteterm/internal/config"
)

func TestLoadFromCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quoteterm", "config.json")

	store, err := config.LoadFrom(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err, "config file written on first run")
	assert.Equal(t, config.DefaultAutosaveInterval, store.Config.AutosaveInterval)
	assert.Equal(t, "quoteAutoSaveData", store.Config.AutosaveKey)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "quoteterm.db"), store.Config.DatabasePath)
	assert.NotEmpty(t, store.Config.Name)
	assert.NotNil(t, store.Location())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store, err := config.LoadFrom(path)
	require.NoError(t, err)

	store.Config.Name = "Ada"
	store.Config.Timezone = "Australia/Melbourne"
	store.Config.AutosaveInterval = 2 * time.Minute
	require.NoError(t, store.Save())

	reloaded, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada", reloaded.Config.Name)
	assert.Equal(t, 2*time.Minute, reloaded.Config.AutosaveInterval)
	assert.Equal(t, "Australia/Melbourne", reloaded.Config.Timezone)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("QUOTETERM_AUTOSAVE_KEY", "otherKey")
	store, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, "otherKey", store.Config.AutosaveKey)
}

func TestLocationFallsBackToUTC(t *testing.T) {
	var nilStore *config.Store
	assert.Equal(t, time.UTC, nilStore.Location())

	store, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	store.Config.Timezone = "Nowhere/Special"
	assert.Equal(t, time.UTC, store.Location())
}
