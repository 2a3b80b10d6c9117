package browser

import (
	"fmt"
	"strings"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Engine names accepted by New
const (
	EnginePlaywright = "playwright"
	EngineSelenium   = "selenium"
	EngineChromedp   = "chromedp"
)

// Options configures every engine. Zero values fall back to the defaults below.
type Options struct {
	Headless       bool
	SlowMo         time.Duration
	ActionTimeout  time.Duration
	ViewportWidth  int
	ViewportHeight int
	// DriverPath and ChromeBinary are only read by the selenium engine
	DriverPath   string
	ChromeBinary string
	DriverPort   int
}

const (
	defaultActionTimeout  = 10 * time.Second
	defaultViewportWidth  = 1280
	defaultViewportHeight = 720
	defaultDriverPort     = 9515
)

func (o Options) withDefaults() Options {
	if o.ActionTimeout <= 0 {
		o.ActionTimeout = defaultActionTimeout
	}
	if o.ViewportWidth <= 0 {
		o.ViewportWidth = defaultViewportWidth
	}
	if o.ViewportHeight <= 0 {
		o.ViewportHeight = defaultViewportHeight
	}
	if o.DriverPort <= 0 {
		o.DriverPort = defaultDriverPort
	}
	return o
}

// New - starts the named engine
func New(engine string, opts Options, logger *logrus.Logger) (interfaces.Browser, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EnginePlaywright:
		return NewPlaywrightController(opts, logger)
	case EngineSelenium:
		return NewSeleniumController(opts, logger)
	case EngineChromedp:
		return NewChromedpController(opts, logger)
	default:
		return nil, fmt.Errorf("%q: %w", engine, entities.ErrUnknownEngine)
	}
}

// timeoutError wraps a native engine timeout so callers can match entities.ErrTimeout
func timeoutError(what string, timeout time.Duration, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w after %s", what, entities.ErrTimeout, timeout)
	}
	return fmt.Errorf("%s: %w after %s: %v", what, entities.ErrTimeout, timeout, cause)
}

// isClosedError - reports errors raised by an already closed target
func isClosedError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "closed") || strings.Contains(errStr, "target closed")
}

func ms(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
