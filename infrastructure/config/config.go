package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/infrastructure/browser"
	"pom_automation/infrastructure/fixtures"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DefaultEnvironment       = "local"
	DefaultNavigationTimeout = 30 * time.Second
	DefaultProbeTimeout      = 5 * time.Second
	DefaultOutcomeTimeout    = 10 * time.Second
	DefaultScreenshotDir     = "test-results/screenshots"
	DefaultReportDir         = "test-results/reports"
)

// Config is resolved once at process start and handed to test setup
type Config struct {
	EnvName     string
	Environment entities.Environment
	Fixtures    *entities.Fixtures

	Engine  string
	Browser browser.Options

	NavigationTimeout time.Duration
	ProbeTimeout      time.Duration
	OutcomeTimeout    time.Duration

	ScreenshotDir string
	ReportDir     string
	LogLevel      logrus.Level

	// DotEnvLoaded reports whether a .env file was found
	DotEnvLoaded bool
}

// Load - reads .env (optional) and the process environment
func Load() (*Config, error) {
	dotEnv := godotenv.Load() == nil

	fx, err := fixtures.NewSource(os.Getenv("FIXTURES_FILE")).Load()
	if err != nil {
		return nil, err
	}

	envName := getString("E2E_ENV", DefaultEnvironment)
	env, err := fx.Environment(envName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve environment: %w", err)
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		env.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("API_URL"); v != "" {
		env.APIURL = strings.TrimRight(v, "/")
	}

	level, err := logrus.ParseLevel(getString("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		EnvName:     envName,
		Environment: env,
		Fixtures:    fx,
		Engine:      getString("BROWSER_ENGINE", browser.EnginePlaywright),
		Browser: browser.Options{
			Headless:      getBool("HEADLESS", true),
			SlowMo:        getDuration("SLOW_MO_MS", 0),
			ActionTimeout: getDuration("ACTION_TIMEOUT", 10*time.Second),
			DriverPath:    os.Getenv("BROWSER_DRIVER_PATH"),
			ChromeBinary:  os.Getenv("CHROME_BINARY_PATH"),
		},
		NavigationTimeout: getDuration("E2E_TIMEOUT", DefaultNavigationTimeout),
		ProbeTimeout:      getDuration("PROBE_TIMEOUT", DefaultProbeTimeout),
		OutcomeTimeout:    getDuration("OUTCOME_TIMEOUT", DefaultOutcomeTimeout),
		ScreenshotDir:     getString("SCREENSHOT_DIR", DefaultScreenshotDir),
		ReportDir:         getString("REPORT_DIR", DefaultReportDir),
		LogLevel:          level,
		DotEnvLoaded:      dotEnv,
	}
	return cfg, nil
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

// getDuration accepts Go durations ("5s") or plain milliseconds ("5000")
func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Millisecond
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
