package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultScenarios(t *testing.T) {
	base := DefaultScenarios(false)
	require.Len(t, base, 3)
	assert.Equal(t, Scenario{NumProducers: 2, NumConsumers: 2}, base[0])
	assert.Equal(t, Scenario{NumProducers: 50, NumConsumers: 50}, base[2])

	high := DefaultScenarios(true)
	require.Len(t, high, 6)
	assert.Equal(t, base, high[:3])
	assert.Equal(t, Scenario{NumProducers: 500, NumConsumers: 500}, high[5])
}

func TestLoadValidFile(t *testing.T) {
	path := writeScenarioFile(t, `
scenarios:
  - producers: 4
    consumers: 2
  - producers: 100
    consumers: 100
`)

	scenarios, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []Scenario{
		{NumProducers: 4, NumConsumers: 2},
		{NumProducers: 100, NumConsumers: 100},
	}, scenarios)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeScenarioFile(t, "scenarios: [not a mapping")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestLoadEmptyScenarioList(t *testing.T) {
	path := writeScenarioFile(t, "scenarios: []")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scenarios")
}

func TestLoadRejectsNonPositiveCounts(t *testing.T) {
	path := writeScenarioFile(t, `
scenarios:
  - producers: 0
    consumers: 5
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 1")
}
