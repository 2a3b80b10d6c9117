// Package pom holds the building blocks of page objects: components scoped to a root
// selector, pages that add navigation on top of them, and the outcome race used by
// composite actions.
package pom

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// glance is how long showing looks at an element that is attached but may be hidden
const glance = 50 * time.Millisecond

// SelectorTable maps the typed element keys of one screen to CSS selectors.
type SelectorTable[K ~string] map[K]string

// Component is a UI region scoped to a root selector. An empty root means the whole document.
type Component[K ~string] struct {
	name      string
	root      string
	browser   interfaces.Browser
	selectors map[K]string
	settings  Settings
	logger    *logrus.Entry
}

// NewComponent resolves every selector of table under root. The table is copied, so later
// changes to it do not affect the component.
func NewComponent[K ~string](b interfaces.Browser, name, root string, table SelectorTable[K], settings Settings, logger *logrus.Logger) (*Component[K], error) {
	settings = settings.withDefaults()

	selectors := make(map[K]string, len(table))
	for key, selector := range table {
		if strings.TrimSpace(selector) == "" {
			return nil, fmt.Errorf("%s: element %q: %w", name, key, entities.ErrEmptySelector)
		}
		selectors[key] = Scope(root, selector)
	}

	return &Component[K]{
		name:      name,
		root:      strings.TrimSpace(root),
		browser:   b,
		selectors: selectors,
		settings:  settings,
		logger:    logger.WithField("component", name),
	}, nil
}

// Scope joins a root and a child selector with the CSS descendant combinator.
func Scope(root, child string) string {
	root = strings.TrimSpace(root)
	child = strings.TrimSpace(child)
	if root == "" {
		return child
	}
	return root + " " + child
}

func (c *Component[K]) Name() string { return c.name }

func (c *Component[K]) Root() string { return c.root }

func (c *Component[K]) Browser() interfaces.Browser { return c.browser }

// Settings returns the settings with defaults applied
func (c *Component[K]) Settings() Settings { return c.settings }

// Locate returns the scoped selector of key. It does not wait.
func (c *Component[K]) Locate(key K) (string, error) {
	selector, ok := c.selectors[key]
	if !ok {
		return "", fmt.Errorf("%s: element %q is not declared", c.name, key)
	}
	return selector, nil
}

// IsVisible waits up to the probe timeout for the root to be visible.
// A timeout is reported as false, never as an error.
func (c *Component[K]) IsVisible(ctx context.Context) (bool, error) {
	root := c.root
	if root == "" {
		root = "body"
	}
	return c.probe(ctx, root)
}

// IsElementVisible applies the IsVisible contract to a child element.
func (c *Component[K]) IsElementVisible(ctx context.Context, key K) (bool, error) {
	selector, err := c.Locate(key)
	if err != nil {
		return false, err
	}
	return c.probe(ctx, selector)
}

// WaitForElement blocks until key is visible. Unlike IsElementVisible it fails on timeout.
func (c *Component[K]) WaitForElement(ctx context.Context, key K, timeout time.Duration) error {
	selector, err := c.Locate(key)
	if err != nil {
		return err
	}
	if err := c.browser.WaitForSelector(ctx, selector, entities.ElementVisible, timeout); err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}
	return nil
}

func (c *Component[K]) Click(ctx context.Context, key K) error {
	selector, err := c.Locate(key)
	if err != nil {
		return err
	}
	c.logger.Debugf("Click %s", key)
	if err := c.browser.Click(ctx, selector); err != nil {
		return fmt.Errorf("%s: click %s: %w", c.name, key, err)
	}
	return nil
}

func (c *Component[K]) Fill(ctx context.Context, key K, text string) error {
	selector, err := c.Locate(key)
	if err != nil {
		return err
	}
	c.logger.Debugf("Fill %s", key)
	if err := c.browser.Fill(ctx, selector, text); err != nil {
		return fmt.Errorf("%s: fill %s: %w", c.name, key, err)
	}
	return nil
}

func (c *Component[K]) GetText(ctx context.Context, key K) (string, error) {
	selector, err := c.Locate(key)
	if err != nil {
		return "", err
	}
	text, err := c.browser.Text(ctx, selector)
	if err != nil {
		return "", fmt.Errorf("%s: read %s: %w", c.name, key, err)
	}
	return text, nil
}

func (c *Component[K]) GetAttribute(ctx context.Context, key K, name string) (string, error) {
	selector, err := c.Locate(key)
	if err != nil {
		return "", err
	}
	value, err := c.browser.Attribute(ctx, selector, name)
	if err != nil {
		return "", fmt.Errorf("%s: read %s[%s]: %w", c.name, key, name, err)
	}
	return value, nil
}

// Count returns how many elements currently match key.
func (c *Component[K]) Count(ctx context.Context, key K) (int, error) {
	selector, err := c.Locate(key)
	if err != nil {
		return 0, err
	}
	return c.browser.Count(ctx, selector)
}

// OptionalText reads key if it shows up within the probe timeout.
// Absence is reported as ok == false.
func (c *Component[K]) OptionalText(ctx context.Context, key K) (string, bool) {
	visible, err := c.IsElementVisible(ctx, key)
	if err != nil || !visible {
		return "", false
	}
	text, err := c.GetText(ctx, key)
	if err != nil {
		c.logger.Debugf("Optional %s vanished: %v", key, err)
		return "", false
	}
	return text, true
}

// Appears builds a race condition that resolves when key becomes visible.
func (c *Component[K]) Appears(key K, outcome func(ctx context.Context) entities.Outcome) Condition {
	selector, err := c.Locate(key)
	return Condition{
		Name: fmt.Sprintf("%s.%s", c.name, key),
		Wait: func(ctx context.Context, timeout time.Duration) error {
			if err != nil {
				return err
			}
			return c.browser.WaitForSelector(ctx, selector, entities.ElementVisible, timeout)
		},
		Outcome: outcome,
	}
}

// Reappears is Appears for indicators that may still show the result of an earlier
// action. Call it before triggering the action: if key is visible at that point it
// has to go hidden before it counts.
func (c *Component[K]) Reappears(ctx context.Context, key K, outcome func(ctx context.Context) entities.Outcome) Condition {
	cond := c.Appears(key, outcome)
	if !c.showing(ctx, key) {
		return cond
	}
	selector, _ := c.Locate(key)
	appear := cond.Wait
	cond.Wait = func(ctx context.Context, timeout time.Duration) error {
		if err := c.browser.WaitForSelector(ctx, selector, entities.ElementHidden, timeout); err != nil {
			return fmt.Errorf("%s: earlier %s still shown: %w", c.name, key, err)
		}
		return appear(ctx, timeout)
	}
	return cond
}

// showing reports whether key is on screen right now. Absent elements are not waited for.
func (c *Component[K]) showing(ctx context.Context, key K) bool {
	selector, err := c.Locate(key)
	if err != nil {
		return false
	}
	if n, err := c.browser.Count(ctx, selector); err != nil || n == 0 {
		return false
	}
	return c.browser.WaitForSelector(ctx, selector, entities.ElementVisible, glance) == nil
}

// FailureText returns an outcome builder reporting the text of key as the failure message.
func (c *Component[K]) FailureText(key K) func(ctx context.Context) entities.Outcome {
	return func(ctx context.Context) entities.Outcome {
		text, err := c.GetText(ctx, key)
		if err != nil || text == "" {
			return entities.Failure(fmt.Sprintf("%s is shown", key))
		}
		return entities.Failure(text)
	}
}

func (c *Component[K]) probe(ctx context.Context, selector string) (bool, error) {
	err := c.browser.WaitForSelector(ctx, selector, entities.ElementVisible, c.settings.ProbeTimeout)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, entities.ErrTimeout) {
		return false, nil
	}
	return false, fmt.Errorf("%s: %w", c.name, err)
}
