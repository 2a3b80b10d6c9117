package pom

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Page is a full screen. It embeds a document-scoped Component for its own elements.
type Page[K ~string] struct {
	*Component[K]
	path   string
	logger *logrus.Entry
}

func NewPage[K ~string](b interfaces.Browser, name, path string, table SelectorTable[K], settings Settings, logger *logrus.Logger) (*Page[K], error) {
	component, err := NewComponent(b, name, "", table, settings, logger)
	if err != nil {
		return nil, err
	}
	return &Page[K]{
		Component: component,
		path:      path,
		logger:    logger.WithField("page", name),
	}, nil
}

func (p *Page[K]) Path() string { return p.path }

// URL returns the absolute URL of the page
func (p *Page[K]) URL() string {
	return p.settings.BaseURL + p.path
}

// Open navigates to the page's own path
func (p *Page[K]) Open(ctx context.Context) error {
	return p.NavigateTo(ctx, p.path)
}

// NavigateTo loads path relative to the base URL and waits for network idle.
// Failures, including timeouts, are always returned.
func (p *Page[K]) NavigateTo(ctx context.Context, path string) error {
	url := p.settings.BaseURL + path
	p.logger.Infof("Navigating to %s", url)
	if err := p.browser.Navigate(ctx, url, p.settings.NavigationTimeout); err != nil {
		return fmt.Errorf("%s: %w", p.name, err)
	}
	return nil
}

// WaitForPageLoad blocks until the load-completion signal; timeout 0 means DefaultLoadTimeout.
func (p *Page[K]) WaitForPageLoad(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = p.settings.LoadTimeout
	}
	if err := p.browser.WaitForLoad(ctx, timeout); err != nil {
		return fmt.Errorf("%s: %w", p.name, err)
	}
	return nil
}

// IsSelectorVisible probes a raw selector; a timeout is reported as false.
func (p *Page[K]) IsSelectorVisible(ctx context.Context, selector string) (bool, error) {
	return p.probe(ctx, selector)
}

// WaitForSelector blocks until a raw selector is visible and fails on timeout.
func (p *Page[K]) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	if err := p.browser.WaitForSelector(ctx, selector, entities.ElementVisible, timeout); err != nil {
		return fmt.Errorf("%s: %w", p.name, err)
	}
	return nil
}

// TakeScreenshot writes <dir>/<name>_<unix>.png and returns its path.
// It is best effort: failures are logged and "" is returned.
func (p *Page[K]) TakeScreenshot(ctx context.Context, name string) string {
	path := filepath.Join(p.settings.ScreenshotDir, fmt.Sprintf("%s_%d.png", sanitize(name), time.Now().Unix()))
	if err := p.browser.Screenshot(ctx, path); err != nil {
		p.logger.Warnf("Failed to take screenshot %s: %v", path, err)
		return ""
	}
	p.logger.Debugf("Screenshot saved to %s", path)
	return path
}

func (p *Page[K]) CurrentURL(ctx context.Context) (string, error) {
	return p.browser.CurrentURL(ctx)
}

func (p *Page[K]) Title(ctx context.Context) (string, error) {
	return p.browser.Title(ctx)
}

// URLChanges builds a race condition that resolves once the URL differs from the
// current one. Call it before triggering the action.
func (p *Page[K]) URLChanges(ctx context.Context, outcome func(ctx context.Context) entities.Outcome) Condition {
	from, err := p.browser.CurrentURL(ctx)
	return Condition{
		Name: p.name + ".url",
		Wait: func(ctx context.Context, timeout time.Duration) error {
			if err != nil {
				return err
			}
			return p.browser.WaitForURL(ctx, func(url string) bool { return url != from }, timeout)
		},
		Outcome: outcome,
	}
}

// Loaded runs the composite load check: page load, then every probe in order.
// The first probe reporting false ends the check.
func (p *Page[K]) Loaded(ctx context.Context, probes ...func(ctx context.Context) (bool, error)) (bool, error) {
	if err := p.WaitForPageLoad(ctx, 0); err != nil {
		if errors.Is(err, entities.ErrTimeout) {
			return false, nil
		}
		return false, err
	}
	for _, probe := range probes {
		ok, err := probe(ctx)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func sanitize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "screenshot"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
