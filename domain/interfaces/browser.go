package interfaces

import (
	"context"
	"time"

	"pom_automation/domain/entities"
)

// Browser defines the locator-resolution primitives the page objects are built on.
// Selectors are CSS expressions. Actions wait for actionability using the engine's
// default timeout; waits return an error wrapping entities.ErrTimeout on expiry.
type Browser interface {
	// Navigate loads url and blocks until the network is idle
	Navigate(ctx context.Context, url string, timeout time.Duration) error

	// WaitForLoad waits for the load-completion signal of the current document
	WaitForLoad(ctx context.Context, timeout time.Duration) error

	// WaitForSelector waits until the first match of selector reaches state
	WaitForSelector(ctx context.Context, selector string, state entities.ElementState, timeout time.Duration) error

	// WaitForURL waits until the current URL satisfies match
	WaitForURL(ctx context.Context, match func(url string) bool, timeout time.Duration) error

	// Click clicks the first element matching selector
	Click(ctx context.Context, selector string) error

	// Fill replaces the value of an input
	Fill(ctx context.Context, selector string, text string) error

	// Text returns the text content of the first match
	Text(ctx context.Context, selector string) (string, error)

	// Attribute reads an attribute of the first match
	Attribute(ctx context.Context, selector string, name string) (string, error)

	// Count returns the number of elements matching selector without waiting
	Count(ctx context.Context, selector string) (int, error)

	CurrentURL(ctx context.Context) (string, error)

	Title(ctx context.Context) (string, error)

	// Screenshot writes a PNG of the viewport to path
	Screenshot(ctx context.Context, path string) error

	// Close releases the browser and the driver behind it
	Close() error
}
