// Package browsertest provides an in-memory interfaces.Browser for testing page objects
// without launching a real browser. Elements are keyed by their exact selector string.
package browsertest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

// DefaultActionTimeout is how long Click, Fill and Text wait for their target.
const DefaultActionTimeout = 200 * time.Millisecond

// Element is the simulated state of one selector.
type Element struct {
	Text    string
	Value   string
	Visible bool
	Attrs   map[string]string
}

// Browser is a fake page. It is safe for concurrent use, so the outcome race can
// run against it the same way it runs against a real engine.
type Browser struct {
	ActionTimeout time.Duration

	mu          sync.Mutex
	url         string
	title       string
	elements    map[string]*Element
	onClick     map[string]func(b *Browser)
	onNavigate  map[string]func(b *Browser)
	changed     chan struct{}
	clicks      []string
	screenshots []string
	closed      bool

	NavigateErr   error
	ScreenshotErr error
}

var _ interfaces.Browser = (*Browser)(nil)

func New() *Browser {
	return &Browser{
		ActionTimeout: DefaultActionTimeout,
		url:           "about:blank",
		elements:      make(map[string]*Element),
		onClick:       make(map[string]func(b *Browser)),
		onNavigate:    make(map[string]func(b *Browser)),
		changed:       make(chan struct{}),
	}
}

// notify wakes every pending wait. Callers hold b.mu.
func (b *Browser) notify() {
	close(b.changed)
	b.changed = make(chan struct{})
}

// Show adds a visible element or makes an existing one visible with text.
func (b *Browser) Show(selector, text string) *Browser {
	b.mu.Lock()
	defer b.mu.Unlock()
	el, ok := b.elements[selector]
	if !ok {
		el = &Element{Attrs: map[string]string{}}
		b.elements[selector] = el
	}
	el.Text = text
	el.Visible = true
	b.notify()
	return b
}

// Attach adds an element that is present in the DOM but not visible.
func (b *Browser) Attach(selector string) *Browser {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.elements[selector]; !ok {
		b.elements[selector] = &Element{Attrs: map[string]string{}}
	}
	b.notify()
	return b
}

func (b *Browser) Hide(selector string) *Browser {
	b.mu.Lock()
	defer b.mu.Unlock()
	if el, ok := b.elements[selector]; ok {
		el.Visible = false
	}
	b.notify()
	return b
}

func (b *Browser) Remove(selector string) *Browser {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.elements, selector)
	b.notify()
	return b
}

func (b *Browser) SetAttr(selector, name, value string) *Browser {
	b.mu.Lock()
	defer b.mu.Unlock()
	if el, ok := b.elements[selector]; ok {
		el.Attrs[name] = value
	}
	b.notify()
	return b
}

// SetValue pre-populates an input, as if typed by someone else.
func (b *Browser) SetValue(selector, value string) *Browser {
	b.mu.Lock()
	defer b.mu.Unlock()
	if el, ok := b.elements[selector]; ok {
		el.Value = value
	}
	b.notify()
	return b
}

func (b *Browser) SetURL(url string) *Browser {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.url = url
	b.notify()
	return b
}

func (b *Browser) SetTitle(title string) *Browser {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.title = title
	return b
}

// OnClick registers a reaction to clicking selector.
func (b *Browser) OnClick(selector string, fn func(b *Browser)) *Browser {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onClick[selector] = fn
	return b
}

// OnNavigate registers the page rendered when url is loaded.
func (b *Browser) OnNavigate(url string, fn func(b *Browser)) *Browser {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onNavigate[url] = fn
	return b
}

// After runs fn on the browser once d has elapsed.
func (b *Browser) After(d time.Duration, fn func(b *Browser)) {
	time.AfterFunc(d, func() { fn(b) })
}

// Value returns the current value of an input.
func (b *Browser) Value(selector string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if el, ok := b.elements[selector]; ok {
		return el.Value
	}
	return ""
}

// Clicks returns the selectors clicked so far, in order.
func (b *Browser) Clicks() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.clicks...)
}

// Screenshots returns the paths passed to Screenshot.
func (b *Browser) Screenshots() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.screenshots...)
}

func (b *Browser) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// wait blocks until cond holds, the timeout expires or ctx is done.
func (b *Browser) wait(ctx context.Context, what string, timeout time.Duration, cond func() bool) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		b.mu.Lock()
		ok := cond()
		changed := b.changed
		b.mu.Unlock()
		if ok {
			return nil
		}
		select {
		case <-changed:
		case <-timer.C:
			return fmt.Errorf("%s: %w after %s", what, entities.ErrTimeout, timeout)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (b *Browser) isVisible(selector string) bool {
	el, ok := b.elements[selector]
	return ok && el.Visible
}

func (b *Browser) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.NavigateErr != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, b.NavigateErr)
	}
	b.mu.Lock()
	b.url = url
	fn := b.onNavigate[url]
	b.notify()
	b.mu.Unlock()
	if fn != nil {
		fn(b)
	}
	return nil
}

func (b *Browser) WaitForLoad(ctx context.Context, timeout time.Duration) error {
	return ctx.Err()
}

func (b *Browser) WaitForSelector(ctx context.Context, selector string, state entities.ElementState, timeout time.Duration) error {
	what := fmt.Sprintf("wait for %s to be %s", selector, state)
	return b.wait(ctx, what, timeout, func() bool {
		el, ok := b.elements[selector]
		switch state {
		case entities.ElementAttached:
			return ok
		case entities.ElementDetached:
			return !ok
		case entities.ElementHidden:
			return !ok || !el.Visible
		default:
			return ok && el.Visible
		}
	})
}

func (b *Browser) WaitForURL(ctx context.Context, match func(url string) bool, timeout time.Duration) error {
	return b.wait(ctx, "wait for url", timeout, func() bool {
		return match(b.url)
	})
}

func (b *Browser) Click(ctx context.Context, selector string) error {
	if err := b.wait(ctx, "click "+selector, b.ActionTimeout, func() bool { return b.isVisible(selector) }); err != nil {
		return err
	}
	b.mu.Lock()
	b.clicks = append(b.clicks, selector)
	fn := b.onClick[selector]
	b.mu.Unlock()
	if fn != nil {
		fn(b)
	}
	return nil
}

func (b *Browser) Fill(ctx context.Context, selector string, text string) error {
	if err := b.wait(ctx, "fill "+selector, b.ActionTimeout, func() bool { return b.isVisible(selector) }); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.elements[selector].Value = text
	b.notify()
	return nil
}

func (b *Browser) Text(ctx context.Context, selector string) (string, error) {
	var text string
	err := b.wait(ctx, "read text of "+selector, b.ActionTimeout, func() bool {
		el, ok := b.elements[selector]
		if ok {
			text = el.Text
		}
		return ok
	})
	return text, err
}

func (b *Browser) Attribute(ctx context.Context, selector string, name string) (string, error) {
	var value string
	err := b.wait(ctx, "read attribute "+name+" of "+selector, b.ActionTimeout, func() bool {
		el, ok := b.elements[selector]
		if ok {
			value = el.Attrs[name]
		}
		return ok
	})
	return value, err
}

func (b *Browser) Count(ctx context.Context, selector string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.elements[selector]; ok {
		return 1, nil
	}
	return 0, nil
}

func (b *Browser) CurrentURL(ctx context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.url, nil
}

func (b *Browser) Title(ctx context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.title, nil
}

func (b *Browser) Screenshot(ctx context.Context, path string) error {
	if b.ScreenshotErr != nil {
		return b.ScreenshotErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.screenshots = append(b.screenshots, path)
	return nil
}

func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}
