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

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

const chromedpPollInterval = 100 * time.Millisecond

// ChromedpController drives Chrome over the DevTools protocol
type ChromedpController struct {
	tabCtx        context.Context
	cancelTab     context.CancelFunc
	cancelAlloc   context.CancelFunc
	logger        *logrus.Logger
	actionTimeout time.Duration
}

var _ interfaces.Browser = (*ChromedpController)(nil)

// NewChromedpController - launches Chrome and attaches to its first tab
func NewChromedpController(opts Options, logger *logrus.Logger) (*ChromedpController, error) {
	opts = opts.withDefaults()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.NoSandbox,
		chromedp.IgnoreCertErrors,
		chromedp.WindowSize(opts.ViewportWidth, opts.ViewportHeight),
	)
	if opts.ChromeBinary != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromeBinary))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(logger.Debugf),
		chromedp.WithErrorf(logger.Errorf),
	)

	// Do not use a timeout here or the browser closes along with it.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"engine":   EngineChromedp,
		"headless": opts.Headless,
	}).Info("Browser started")

	return &ChromedpController{
		tabCtx:        tabCtx,
		cancelTab:     cancelTab,
		cancelAlloc:   cancelAlloc,
		logger:        logger,
		actionTimeout: opts.ActionTimeout,
	}, nil
}

// run - executes actions on the tab bounded by timeout and by the caller's ctx
func (c *ChromedpController) run(ctx context.Context, what string, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(c.tabCtx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutError(what, timeout, nil)
	}
	return fmt.Errorf("failed to %s: %w", what, err)
}

// poll - evaluates condition until it holds or the timeout expires
func (c *ChromedpController) poll(ctx context.Context, what string, timeout time.Duration, condition func(ctx context.Context) (bool, error)) error {
	return c.run(ctx, what, timeout, chromedp.ActionFunc(func(ctx context.Context) error {
		ticker := time.NewTicker(chromedpPollInterval)
		defer ticker.Stop()
		for {
			ok, err := condition(ctx)
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
	}))
}

// Navigate - loads url and waits for the document to complete
func (c *ChromedpController) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	c.logger.Debugf("Navigating to: %s", url)
	if err := c.run(ctx, "navigate to "+url, timeout, chromedp.Navigate(url)); err != nil {
		return err
	}
	return c.WaitForLoad(ctx, timeout)
}

// WaitForLoad - waits for document.readyState to become complete
func (c *ChromedpController) WaitForLoad(ctx context.Context, timeout time.Duration) error {
	return c.poll(ctx, "wait for load", timeout, func(ctx context.Context) (bool, error) {
		var state string
		if err := chromedp.Evaluate(`document.readyState`, &state).Do(ctx); err != nil {
			return false, err
		}
		return state == "complete", nil
	})
}

// WaitForSelector - waits until the first match of selector reaches state
func (c *ChromedpController) WaitForSelector(ctx context.Context, selector string, state entities.ElementState, timeout time.Duration) error {
	var action chromedp.Action
	switch state {
	case entities.ElementAttached:
		action = chromedp.WaitReady(selector, chromedp.ByQuery)
	case entities.ElementDetached:
		action = chromedp.WaitNotPresent(selector, chromedp.ByQuery)
	case entities.ElementHidden:
		action = chromedp.WaitNotVisible(selector, chromedp.ByQuery)
	default:
		action = chromedp.WaitVisible(selector, chromedp.ByQuery)
	}
	return c.run(ctx, fmt.Sprintf("wait for %s to be %s", selector, state), timeout, action)
}

// WaitForURL - polls the current location until match accepts it
func (c *ChromedpController) WaitForURL(ctx context.Context, match func(url string) bool, timeout time.Duration) error {
	return c.poll(ctx, "wait for url", timeout, func(ctx context.Context) (bool, error) {
		var location string
		if err := chromedp.Location(&location).Do(ctx); err != nil {
			return false, err
		}
		return match(location), nil
	})
}

// Click - clicks the first match once it is visible
func (c *ChromedpController) Click(ctx context.Context, selector string) error {
	c.logger.Debugf("Clicking on: %s", selector)
	return c.run(ctx, "click "+selector, c.actionTimeout,
		chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible))
}

// Fill - clears the input and types text into it
func (c *ChromedpController) Fill(ctx context.Context, selector string, text string) error {
	c.logger.Debugf("Filling: %s", selector)
	return c.run(ctx, "fill "+selector, c.actionTimeout,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.SetValue(selector, "", chromedp.ByQuery),
		chromedp.SendKeys(selector, text, chromedp.ByQuery),
	)
}

// Text - returns the text content of the first match
func (c *ChromedpController) Text(ctx context.Context, selector string) (string, error) {
	var text string
	err := c.run(ctx, "read text of "+selector, c.actionTimeout,
		chromedp.TextContent(selector, &text, chromedp.ByQuery))
	return strings.TrimSpace(text), err
}

// Attribute - reads an attribute of the first match
func (c *ChromedpController) Attribute(ctx context.Context, selector string, name string) (string, error) {
	var (
		value string
		ok    bool
	)
	err := c.run(ctx, "read attribute "+name+" of "+selector, c.actionTimeout,
		chromedp.AttributeValue(selector, name, &value, &ok, chromedp.ByQuery))
	return value, err
}

// Count - returns the number of matches without waiting
func (c *ChromedpController) Count(ctx context.Context, selector string) (int, error) {
	var nodes []*cdp.Node
	err := c.run(ctx, "count "+selector, c.actionTimeout,
		chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
	return len(nodes), err
}

func (c *ChromedpController) CurrentURL(ctx context.Context) (string, error) {
	var location string
	err := c.run(ctx, "read location", c.actionTimeout, chromedp.Location(&location))
	return location, err
}

func (c *ChromedpController) Title(ctx context.Context) (string, error) {
	var title string
	err := c.run(ctx, "read title", c.actionTimeout, chromedp.Title(&title))
	return title, err
}

// Screenshot - writes a viewport capture to path
func (c *ChromedpController) Screenshot(ctx context.Context, path string) error {
	var buf []byte
	if err := c.run(ctx, "capture screenshot", c.actionTimeout, chromedp.CaptureScreenshot(&buf)); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	return os.WriteFile(path, buf, 0644)
}

// Close - cancels the tab and the allocator, which ends the Chrome process
func (c *ChromedpController) Close() error {
	if c.cancelTab != nil {
		c.cancelTab()
		c.cancelTab = nil
	}
	if c.cancelAlloc != nil {
		c.cancelAlloc()
		c.cancelAlloc = nil
	}
	return nil
}
