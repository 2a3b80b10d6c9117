package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"pom_automation/application/pages"
	"pom_automation/application/pom"
	"pom_automation/application/smoke"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
	"pom_automation/infrastructure/api"
	"pom_automation/infrastructure/browser"
	"pom_automation/infrastructure/config"
	"pom_automation/infrastructure/security"
	"pom_automation/infrastructure/storage"

	"github.com/sirupsen/logrus"
)

type TerminalInterface struct {
	cfg         *config.Config
	runner      *smoke.Runner
	reports     interfaces.ReportStore
	browserCtrl interfaces.Browser
	logger      *logrus.Logger
	out         io.Writer
}

// NewLogger - builds the process logger
func NewLogger(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

// SettingsFromConfig maps the process configuration onto page settings
func SettingsFromConfig(cfg *config.Config) pom.Settings {
	return pom.Settings{
		BaseURL:           cfg.Environment.BaseURL,
		ProbeTimeout:      cfg.ProbeTimeout,
		NavigationTimeout: cfg.NavigationTimeout,
		LoadTimeout:       cfg.NavigationTimeout,
		OutcomeTimeout:    cfg.OutcomeTimeout,
		ScreenshotDir:     cfg.ScreenshotDir,
	}
}

func NewTerminalInterface() (*TerminalInterface, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := NewLogger(cfg.LogLevel)
	if !cfg.DotEnvLoaded {
		logger.Debug(".env file not found, using environment variables")
	}

	reports, err := storage.NewReportStore(cfg.ReportDir)
	if err != nil {
		return nil, err
	}

	// Initialize browser controller
	browserCtrl, err := browser.New(cfg.Engine, cfg.Browser, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize browser: %w", err)
	}

	site, err := pages.NewSite(browserCtrl, SettingsFromConfig(cfg), logger)
	if err != nil {
		browserCtrl.Close()
		return nil, fmt.Errorf("failed to build pages: %w", err)
	}

	var authAPI interfaces.AuthAPI
	if cfg.Environment.APIURL != "" {
		client, err := api.NewAuthClient(cfg.Environment.APIURL, logger, security.NewRedactor(logger))
		if err != nil {
			browserCtrl.Close()
			return nil, fmt.Errorf("failed to initialize API client: %w", err)
		}
		authAPI = client
	} else {
		logger.Warn("No API URL configured, API checks will be skipped")
	}

	return &TerminalInterface{
		cfg:         cfg,
		runner:      smoke.NewRunner(site, authAPI, cfg.Fixtures, cfg.EnvName, logger),
		reports:     reports,
		browserCtrl: browserCtrl,
		logger:      logger,
		out:         os.Stdout,
	}, nil
}

// Run - executes the smoke suite and prints a summary. It fails when any step failed.
func (t *TerminalInterface) Run(ctx context.Context) error {
	fmt.Fprintf(t.out, "E2E smoke run against %s (%s)\n", t.cfg.Environment.BaseURL, t.cfg.EnvName)
	fmt.Fprintln(t.out, strings.Repeat("=", 40))

	previous, err := t.reports.Latest()
	if err != nil {
		t.logger.Warnf("Failed to read previous report: %v", err)
	}

	report, err := t.runner.Run(ctx)
	if report != nil {
		PrintReport(t.out, report)
		if previous != nil {
			fmt.Fprintf(t.out, "previous run %s: %d failed\n", previous.ID, previous.Count(entities.StepStatusFailed))
		}
		if path, saveErr := t.reports.Save(report); saveErr != nil {
			t.logger.Warnf("Failed to save report: %v", saveErr)
		} else {
			t.logger.Infof("Report saved to %s", path)
		}
	}
	if err != nil {
		return err
	}
	if !report.Passed() {
		return fmt.Errorf("%d of %d steps failed", report.Count(entities.StepStatusFailed), len(report.Steps))
	}
	return nil
}

// PrintReport writes one line per step followed by the totals
func PrintReport(w io.Writer, report *entities.RunReport) {
	for _, step := range report.Steps {
		fmt.Fprintf(w, "[%s] %s (%s)\n", strings.ToUpper(string(step.Status)), step.Name, step.Duration.Round(time.Millisecond))
		if step.Error != "" && step.Status == entities.StepStatusFailed {
			fmt.Fprintf(w, "    error: %s\n", step.Error)
		}
		for _, warning := range step.Warnings {
			fmt.Fprintf(w, "    warning: %s\n", warning)
		}
		if step.Screenshot != "" {
			fmt.Fprintf(w, "    screenshot: %s\n", step.Screenshot)
		}
	}
	fmt.Fprintf(w, "\n%d passed, %d failed, %d skipped (run %s)\n",
		report.Count(entities.StepStatusPassed),
		report.Count(entities.StepStatusFailed),
		report.Count(entities.StepStatusSkipped),
		report.ID,
	)
}

func (t *TerminalInterface) Close() error {
	return t.browserCtrl.Close()
}
