package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"go.uber.org/multierr"
)

const seleniumPollInterval = 100 * time.Millisecond

// SeleniumController drives Chrome through a local chromedriver
type SeleniumController struct {
	wd            selenium.WebDriver
	service       *selenium.Service
	logger        *logrus.Logger
	actionTimeout time.Duration
}

var _ interfaces.Browser = (*SeleniumController)(nil)

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("chromedriver not found. Please install it or set BROWSER_DRIVER_PATH environment variable")
}

// NewSeleniumController - starts chromedriver and opens a remote session
func NewSeleniumController(opts Options, logger *logrus.Logger) (*SeleniumController, error) {
	opts = opts.withDefaults()

	driverPath, err := findChromeDriver(opts.DriverPath)
	if err != nil {
		return nil, fmt.Errorf("failed to find chromedriver: %w", err)
	}
	logger.Infof("Using ChromeDriver at: %s", driverPath)

	service, err := selenium.NewChromeDriverService(driverPath, opts.DriverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to start chromedriver: %w", err)
	}

	args := []string{
		"--disable-dev-shm-usage",
		"--no-sandbox",
		fmt.Sprintf("--window-size=%d,%d", opts.ViewportWidth, opts.ViewportHeight),
	}
	if opts.Headless {
		args = append(args, "--headless=new")
	}
	chromeCaps := chrome.Capabilities{Args: args}
	if opts.ChromeBinary != "" {
		chromeCaps.Path = opts.ChromeBinary
	}

	caps := selenium.Capabilities{"browserName": "chrome"}
	caps.AddChrome(chromeCaps)

	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", opts.DriverPort))
	if err != nil {
		service.Stop()
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found, set CHROME_BINARY_PATH: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"engine":   EngineSelenium,
		"headless": opts.Headless,
	}).Info("Browser started")

	return &SeleniumController{
		wd:            wd,
		service:       service,
		logger:        logger,
		actionTimeout: opts.ActionTimeout,
	}, nil
}

// Navigate - loads url and waits for the document to complete
func (s *SeleniumController) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.Debugf("Navigating to: %s", url)

	if err := s.wd.SetPageLoadTimeout(timeout); err != nil {
		s.logger.Warnf("Failed to set page load timeout: %v", err)
	}
	if err := s.wd.Get(url); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "timeout") {
			return timeoutError("navigate to "+url, timeout, err)
		}
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return s.WaitForLoad(ctx, timeout)
}

// WaitForLoad - waits for document.readyState to become complete
func (s *SeleniumController) WaitForLoad(ctx context.Context, timeout time.Duration) error {
	return s.wait(ctx, "wait for load", timeout, func(wd selenium.WebDriver) (bool, error) {
		state, err := wd.ExecuteScript("return document.readyState;", nil)
		if err != nil {
			return false, err
		}
		return state == "complete", nil
	})
}

// WaitForSelector - polls the first match of selector until it reaches state
func (s *SeleniumController) WaitForSelector(ctx context.Context, selector string, state entities.ElementState, timeout time.Duration) error {
	what := fmt.Sprintf("wait for %s to be %s", selector, state)
	return s.wait(ctx, what, timeout, func(wd selenium.WebDriver) (bool, error) {
		elements, err := wd.FindElements(selenium.ByCSSSelector, selector)
		if err != nil {
			return false, err
		}
		switch state {
		case entities.ElementAttached:
			return len(elements) > 0, nil
		case entities.ElementDetached:
			return len(elements) == 0, nil
		}
		if len(elements) == 0 {
			return state == entities.ElementHidden, nil
		}
		displayed, err := elements[0].IsDisplayed()
		if err != nil {
			// stale element, poll again
			return false, nil
		}
		if state == entities.ElementHidden {
			return !displayed, nil
		}
		return displayed, nil
	})
}

// WaitForURL - polls the current URL until match accepts it
func (s *SeleniumController) WaitForURL(ctx context.Context, match func(url string) bool, timeout time.Duration) error {
	return s.wait(ctx, "wait for url", timeout, func(wd selenium.WebDriver) (bool, error) {
		current, err := wd.CurrentURL()
		if err != nil {
			return false, err
		}
		return match(current), nil
	})
}

// Click - clicks on element identified by selector once it is displayed
func (s *SeleniumController) Click(ctx context.Context, selector string) error {
	s.logger.Debugf("Clicking on: %s", selector)

	element, err := s.actionable(ctx, selector)
	if err != nil {
		return err
	}
	if err := element.Click(); err != nil {
		return fmt.Errorf("failed to click %s: %w", selector, err)
	}
	return nil
}

// Fill - clears the input and types text into it
func (s *SeleniumController) Fill(ctx context.Context, selector string, text string) error {
	s.logger.Debugf("Filling: %s", selector)

	element, err := s.actionable(ctx, selector)
	if err != nil {
		return err
	}
	if err := element.Clear(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", selector, err)
	}
	if err := element.SendKeys(text); err != nil {
		return fmt.Errorf("failed to fill %s: %w", selector, err)
	}
	return nil
}

// Text - returns the visible text of the first match
func (s *SeleniumController) Text(ctx context.Context, selector string) (string, error) {
	element, err := s.actionable(ctx, selector)
	if err != nil {
		return "", err
	}
	text, err := element.Text()
	if err != nil {
		return "", fmt.Errorf("failed to read text of %s: %w", selector, err)
	}
	return strings.TrimSpace(text), nil
}

// Attribute - reads an attribute of the first match
func (s *SeleniumController) Attribute(ctx context.Context, selector string, name string) (string, error) {
	if err := s.WaitForSelector(ctx, selector, entities.ElementAttached, s.actionTimeout); err != nil {
		return "", err
	}
	element, err := s.wd.FindElement(selenium.ByCSSSelector, selector)
	if err != nil {
		return "", fmt.Errorf("element not found: %w", err)
	}
	return element.GetAttribute(name)
}

// Count - returns the number of matches without waiting
func (s *SeleniumController) Count(ctx context.Context, selector string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	elements, err := s.wd.FindElements(selenium.ByCSSSelector, selector)
	if err != nil {
		return 0, fmt.Errorf("failed to find %s: %w", selector, err)
	}
	return len(elements), nil
}

// CurrentURL - returns current page URL
func (s *SeleniumController) CurrentURL(ctx context.Context) (string, error) {
	return s.wd.CurrentURL()
}

// Title - returns current page title
func (s *SeleniumController) Title(ctx context.Context) (string, error) {
	return s.wd.Title()
}

// Screenshot - writes a screenshot of current page to path
func (s *SeleniumController) Screenshot(ctx context.Context, path string) error {
	data, err := s.wd.Screenshot()
	if err != nil {
		return fmt.Errorf("failed to take screenshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Close - closes browser and stops ChromeDriver service
func (s *SeleniumController) Close() error {
	var closeErr error
	if s.wd != nil {
		if err := s.wd.Quit(); err != nil && !isClosedError(err) {
			closeErr = multierr.Append(closeErr, fmt.Errorf("failed to quit webdriver: %w", err))
		}
		s.wd = nil
	}
	if s.service != nil {
		if err := s.service.Stop(); err != nil {
			closeErr = multierr.Append(closeErr, fmt.Errorf("failed to stop chromedriver: %w", err))
		}
		s.service = nil
	}
	return closeErr
}

// actionable - waits for selector to be displayed within the action timeout
func (s *SeleniumController) actionable(ctx context.Context, selector string) (selenium.WebElement, error) {
	if err := s.WaitForSelector(ctx, selector, entities.ElementVisible, s.actionTimeout); err != nil {
		return nil, err
	}
	element, err := s.wd.FindElement(selenium.ByCSSSelector, selector)
	if err != nil {
		return nil, fmt.Errorf("element not found: %w", err)
	}
	return element, nil
}

// wait - runs condition until it holds, fails or the timeout expires
func (s *SeleniumController) wait(ctx context.Context, what string, timeout time.Duration, condition selenium.Condition) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var condErr error
	err := s.wd.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		ok, err := condition(wd)
		if err != nil {
			condErr = err
		}
		return ok, err
	}, timeout, seleniumPollInterval)
	if err == nil {
		return nil
	}
	if condErr != nil {
		return fmt.Errorf("%s: %w", what, condErr)
	}
	return timeoutError(what, timeout, nil)
}
