package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "camp_quarters_config.test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromPath_FullConfig(t *testing.T) {
	path := writeConfig(t, `
databaseURL: postgres://localhost:5432/camps
preferences:
  groupByNationality: true
  groupByLanguage: true
  strictNationality: true
weights:
  nationality: 500
  homeState: 400
  language: 300
  trade: 200
  shift: 100
  maxUtilization: 50
  emptyRoom: 10
maintenanceWindows:
  - rrule: "FREQ=WEEKLY;BYDAY=SU;DTSTART=20250105T060000Z"
    durationHours: 6
    roomNumbers: ["101", "102"]
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/camps", cfg.DatabaseURL)
	assert.True(t, cfg.Preferences.GroupByNationality)
	assert.True(t, cfg.Preferences.GroupByLanguage)
	assert.False(t, cfg.Preferences.GroupByTrade)
	assert.True(t, cfg.Preferences.StrictNationality)

	assert.Equal(t, 500.0, cfg.EffectiveWeights().Nationality)
	assert.Equal(t, 10.0, cfg.EffectiveWeights().EmptyRoom)

	require.Len(t, cfg.MaintenanceWindows, 1)
	assert.Equal(t, 6, cfg.MaintenanceWindows[0].DurationHours)
	assert.Equal(t, []string{"101", "102"}, cfg.MaintenanceWindows[0].RoomNumbers)
}

func TestLoadFromPath_OmittedWeightsFallBackToDefaults(t *testing.T) {
	path := writeConfig(t, `
databaseURL: postgres://localhost:5432/camps
preferences:
  groupByNationality: true
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Nil(t, cfg.Weights)
	assert.Equal(t, DefaultScoringWeights(), cfg.EffectiveWeights())
}

func TestLoadFromPath_MissingDatabaseURL(t *testing.T) {
	path := writeConfig(t, `
preferences:
  groupByNationality: true
`)

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoadFromPath_InvalidRRule(t *testing.T) {
	path := writeConfig(t, `
databaseURL: postgres://localhost:5432/camps
maintenanceWindows:
  - rrule: "EVERY SUNDAY"
    durationHours: 6
    roomNumbers: ["101"]
`)

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rrule")
}

func TestLoadFromPath_WindowWithoutRoomsRejected(t *testing.T) {
	path := writeConfig(t, `
databaseURL: postgres://localhost:5432/camps
maintenanceWindows:
  - rrule: "FREQ=DAILY;DTSTART=20250101T060000Z"
    durationHours: 6
    roomNumbers: []
`)

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultScoringWeights_Ordering(t *testing.T) {
	weights := DefaultScoringWeights()

	// Each grouping bonus must outrank everything below it so one strong
	// agreement cannot be beaten by a pile of weaker ones
	assert.Greater(t, weights.Nationality, weights.HomeState)
	assert.Greater(t, weights.HomeState, weights.Language)
	assert.Greater(t, weights.Language, weights.Trade)
	assert.Greater(t, weights.Trade, weights.Shift)
	assert.Greater(t, weights.Shift, weights.MaxUtilization)
	assert.Greater(t, weights.MaxUtilization, weights.EmptyRoom)
}
