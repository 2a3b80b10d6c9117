package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/infrastructure/browser"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"E2E_ENV", "BASE_URL", "API_URL", "BROWSER_ENGINE", "HEADLESS", "SLOW_MO_MS",
		"ACTION_TIMEOUT", "E2E_TIMEOUT", "PROBE_TIMEOUT", "OUTCOME_TIMEOUT",
		"SCREENSHOT_DIR", "REPORT_DIR", "FIXTURES_FILE", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultEnvironment, cfg.EnvName)
	assert.Equal(t, "http://localhost:3000", cfg.Environment.BaseURL)
	assert.Equal(t, browser.EnginePlaywright, cfg.Engine)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, DefaultNavigationTimeout, cfg.NavigationTimeout)
	assert.Equal(t, DefaultProbeTimeout, cfg.ProbeTimeout)
	assert.Equal(t, DefaultScreenshotDir, cfg.ScreenshotDir)
	assert.Equal(t, DefaultReportDir, cfg.ReportDir)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)

	_, err = cfg.Fixtures.User(entities.ValidUser)
	assert.NoError(t, err)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("E2E_ENV", "staging")
	t.Setenv("API_URL", "http://api.internal/v1/")
	t.Setenv("BROWSER_ENGINE", "selenium")
	t.Setenv("HEADLESS", "false")
	t.Setenv("SLOW_MO_MS", "250")
	t.Setenv("E2E_TIMEOUT", "45s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://staging.example.com", cfg.Environment.BaseURL)
	assert.Equal(t, "http://api.internal/v1", cfg.Environment.APIURL)
	assert.Equal(t, "selenium", cfg.Engine)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 250*time.Millisecond, cfg.Browser.SlowMo)
	assert.Equal(t, 45*time.Second, cfg.NavigationTimeout)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("E2E_ENV", "nowhere")
	_, err := Load()
	assert.ErrorIs(t, err, entities.ErrFixtureNotFound)

	clearEnv(t)
	t.Setenv("LOG_LEVEL", "chatty")
	_, err = Load()
	assert.ErrorContains(t, err, "LOG_LEVEL")

	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users: [oops"), 0644))
	t.Setenv("FIXTURES_FILE", path)
	_, err = Load()
	assert.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	t.Setenv("X_DURATION", "1500")
	assert.Equal(t, 1500*time.Millisecond, getDuration("X_DURATION", time.Second))

	t.Setenv("X_DURATION", "2m")
	assert.Equal(t, 2*time.Minute, getDuration("X_DURATION", time.Second))

	t.Setenv("X_DURATION", "soon")
	assert.Equal(t, time.Second, getDuration("X_DURATION", time.Second))
}
