package pom

import (
	"strings"
	"time"
)

const (
	DefaultProbeTimeout      = 5 * time.Second
	DefaultNavigationTimeout = 30 * time.Second
	DefaultLoadTimeout       = 30 * time.Second
	DefaultOutcomeTimeout    = 10 * time.Second
	DefaultScreenshotDir     = "test-results/screenshots"
)

// Settings are shared by every component and page of a test case
type Settings struct {
	BaseURL           string
	ProbeTimeout      time.Duration
	NavigationTimeout time.Duration
	LoadTimeout       time.Duration
	OutcomeTimeout    time.Duration
	ScreenshotDir     string
}

func (s Settings) withDefaults() Settings {
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
	if s.ProbeTimeout <= 0 {
		s.ProbeTimeout = DefaultProbeTimeout
	}
	if s.NavigationTimeout <= 0 {
		s.NavigationTimeout = DefaultNavigationTimeout
	}
	if s.LoadTimeout <= 0 {
		s.LoadTimeout = DefaultLoadTimeout
	}
	if s.OutcomeTimeout <= 0 {
		s.OutcomeTimeout = DefaultOutcomeTimeout
	}
	if s.ScreenshotDir == "" {
		s.ScreenshotDir = DefaultScreenshotDir
	}
	return s
}
