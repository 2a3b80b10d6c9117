package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// PlaywrightController drives one Chromium tab through playwright-go
type PlaywrightController struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	logger  *logrus.Logger
}

// waitSlice bounds a single playwright wait so cancellation is noticed between slices
const waitSlice = 250 * time.Millisecond

var _ interfaces.Browser = (*PlaywrightController)(nil)

// NewPlaywrightController - starts playwright and opens a single page
func NewPlaywrightController(opts Options, logger *logrus.Logger) (*PlaywrightController, error) {
	opts = opts.withDefaults()

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(ms(opts.SlowMo)),
		Args: []string{
			"--disable-dev-shm-usage",
			"--no-sandbox",
			"--disable-setuid-sandbox",
			"--disable-infobars",
			"--disable-notifications",
		},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(ms(opts.ActionTimeout))

	page.OnDialog(func(dialog playwright.Dialog) {
		logger.Debugf("Accepting %s dialog: %s", dialog.Type(), dialog.Message())
		dialog.Accept()
	})

	logger.WithFields(logrus.Fields{
		"engine":   EnginePlaywright,
		"headless": opts.Headless,
	}).Info("Browser started")

	return &PlaywrightController{
		pw:      pw,
		browser: browser,
		context: bctx,
		page:    page,
		logger:  logger,
	}, nil
}

// Navigate - navigates to url and waits for network idle
func (b *PlaywrightController) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.logger.Debugf("Navigating to: %s", url)

	_, err := b.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(ms(timeout)),
	})
	if err != nil {
		if isPlaywrightTimeout(err) {
			return timeoutError("navigate to "+url, timeout, err)
		}
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// WaitForLoad - waits for the network idle load state
func (b *PlaywrightController) WaitForLoad(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := b.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(ms(timeout)),
	})
	if err != nil {
		if isPlaywrightTimeout(err) {
			return timeoutError("wait for load", timeout, err)
		}
		return fmt.Errorf("failed waiting for load: %w", err)
	}
	return nil
}

// WaitForSelector - waits until the first match of selector reaches state
func (b *PlaywrightController) WaitForSelector(ctx context.Context, selector string, state entities.ElementState, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	locator := b.page.Locator(selector).First()
	err := waitInSlices(ctx, timeout, func(slice time.Duration) error {
		return locator.WaitFor(playwright.LocatorWaitForOptions{
			State:   playwrightState(state),
			Timeout: playwright.Float(ms(slice)),
		})
	})
	if err != nil {
		if isPlaywrightTimeout(err) {
			return timeoutError(fmt.Sprintf("wait for %s to be %s", selector, state), timeout, err)
		}
		return fmt.Errorf("failed waiting for %s: %w", selector, err)
	}
	return nil
}

// WaitForURL - waits until the page URL satisfies match
func (b *PlaywrightController) WaitForURL(ctx context.Context, match func(url string) bool, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := waitInSlices(ctx, timeout, func(slice time.Duration) error {
		return b.page.WaitForURL(match, playwright.PageWaitForURLOptions{
			Timeout:   playwright.Float(ms(slice)),
			WaitUntil: playwright.WaitUntilStateCommit,
		})
	})
	if err != nil {
		if isPlaywrightTimeout(err) {
			return timeoutError("wait for url", timeout, err)
		}
		return fmt.Errorf("failed waiting for url: %w", err)
	}
	return nil
}

// Click - clicks on the first element matching selector
func (b *PlaywrightController) Click(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.logger.Debugf("Clicking on: %s", selector)
	if err := b.page.Locator(selector).First().Click(); err != nil {
		return b.actionError("click", selector, err)
	}
	return nil
}

// Fill - replaces the value of an input field
func (b *PlaywrightController) Fill(ctx context.Context, selector string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.logger.Debugf("Filling: %s", selector)
	if err := b.page.Locator(selector).First().Fill(text); err != nil {
		return b.actionError("fill", selector, err)
	}
	return nil
}

// Text - returns the text content of the first match
func (b *PlaywrightController) Text(ctx context.Context, selector string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := b.page.Locator(selector).First().TextContent()
	if err != nil {
		return "", b.actionError("read text of", selector, err)
	}
	return strings.TrimSpace(text), nil
}

// Attribute - reads an attribute of the first match
func (b *PlaywrightController) Attribute(ctx context.Context, selector string, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	value, err := b.page.Locator(selector).First().GetAttribute(name)
	if err != nil {
		return "", b.actionError("read attribute "+name+" of", selector, err)
	}
	return value, nil
}

// Count - returns the number of matches without waiting
func (b *PlaywrightController) Count(ctx context.Context, selector string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return b.page.Locator(selector).Count()
}

func (b *PlaywrightController) CurrentURL(ctx context.Context) (string, error) {
	return b.page.URL(), nil
}

func (b *PlaywrightController) Title(ctx context.Context) (string, error) {
	return b.page.Title()
}

// Screenshot - takes a screenshot of the current page
func (b *PlaywrightController) Screenshot(ctx context.Context, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	_, err := b.page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(path),
	})
	return err
}

// Close - closes the context, the browser and the playwright driver
func (b *PlaywrightController) Close() error {
	var closeErr error

	if b.context != nil {
		if err := b.context.Close(); err != nil && !isClosedError(err) {
			closeErr = multierr.Append(closeErr, fmt.Errorf("failed to close context: %w", err))
		}
		b.context = nil
	}

	if b.browser != nil {
		if err := b.browser.Close(); err != nil && !isClosedError(err) {
			closeErr = multierr.Append(closeErr, fmt.Errorf("failed to close browser: %w", err))
		}
		b.browser = nil
	}

	if b.pw != nil {
		if err := b.pw.Stop(); err != nil {
			closeErr = multierr.Append(closeErr, fmt.Errorf("failed to stop playwright: %w", err))
		}
		b.pw = nil
	}

	return closeErr
}

func (b *PlaywrightController) actionError(action, selector string, err error) error {
	if isPlaywrightTimeout(err) {
		return fmt.Errorf("%s %s: %w: %v", action, selector, entities.ErrTimeout, err)
	}
	return fmt.Errorf("failed to %s %s: %w", action, selector, err)
}

// waitInSlices repeats wait with short timeouts until it succeeds, fails for a reason
// other than a timeout, ctx is done or timeout has elapsed. The last timeout error is returned.
func waitInSlices(ctx context.Context, timeout time.Duration, wait func(slice time.Duration) error) error {
	deadline := time.Now().Add(timeout)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		slice := max(min(waitSlice, time.Until(deadline)), time.Millisecond)
		err := wait(slice)
		if err == nil || !isPlaywrightTimeout(err) || time.Until(deadline) <= 0 {
			return err
		}
	}
}

func isPlaywrightTimeout(err error) bool {
	if errors.Is(err, playwright.ErrTimeout) {
		return true
	}
	return strings.Contains(err.Error(), "Timeout") && strings.Contains(err.Error(), "exceeded")
}

func playwrightState(state entities.ElementState) *playwright.WaitForSelectorState {
	switch state {
	case entities.ElementAttached:
		return playwright.WaitForSelectorStateAttached
	case entities.ElementDetached:
		return playwright.WaitForSelectorStateDetached
	case entities.ElementHidden:
		return playwright.WaitForSelectorStateHidden
	default:
		return playwright.WaitForSelectorStateVisible
	}
}
