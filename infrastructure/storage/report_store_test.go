package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pom_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportStoreRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	store, err := NewReportStore(dir)
	require.NoError(t, err)

	latest, err := store.Latest()
	require.NoError(t, err)
	assert.Nil(t, latest)

	report := &entities.RunReport{
		ID:          "run-1",
		Environment: "local",
		StartedAt:   time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
		Steps: []entities.StepResult{
			{Name: "home page loads", Status: entities.StepStatusPassed, Duration: time.Second},
			{Name: "valid login succeeds", Status: entities.StepStatusFailed, Error: "boom", Warnings: []string{"slow"}},
		},
	}
	path, err := store.Save(report)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "run-1.json"), path)

	loaded, err := store.Load("run-1")
	require.NoError(t, err)
	assert.Equal(t, report, loaded)

	latest, err = store.Latest()
	require.NoError(t, err)
	assert.Equal(t, report, latest)
}

func TestReportStoreLatestFollowsSaves(t *testing.T) {
	store, err := NewReportStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(&entities.RunReport{ID: "first"})
	require.NoError(t, err)
	_, err = store.Save(&entities.RunReport{ID: "second"})
	require.NoError(t, err)

	latest, err := store.Latest()
	require.NoError(t, err)
	assert.Equal(t, "second", latest.ID)
}

func TestReportStoreErrors(t *testing.T) {
	dir := t.TempDir()
	store, err := NewReportStore(dir)
	require.NoError(t, err)

	_, err = store.Save(&entities.RunReport{})
	assert.Error(t, err)

	_, err = store.Load("missing")
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644))
	_, err = store.Load("broken")
	assert.ErrorContains(t, err, "failed to decode")
}
