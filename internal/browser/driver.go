package browser

import (
	"errors"
	"time"
)

var (
	// ErrTimeout is returned when a bounded wait expires
	ErrTimeout = errors.New("browser: wait timed out")
	// ErrNotFound is returned when an element or window is missing
	ErrNotFound = errors.New("browser: not found")
)

// IsTimeout reports whether err is (or wraps) a wait timeout
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsNotFound reports whether err is (or wraps) a missing element/window
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Driver abstracts the browser automation session. Selectors beginning
// with "/" or "(" are treated as XPath expressions, everything else as a
// CSS selector. Every wait is timeout bounded; expired waits and missing
// elements are distinguishable via IsTimeout and IsNotFound.
//
// Windows are identified by opaque string handles. Exactly one window is
// active at a time; element operations run against the active window.
type Driver interface {
	// Navigate loads url in the active window
	Navigate(url string) error
	// Location returns the active window's current URL
	Location() (string, error)

	// WaitVisible blocks until the element is rendered or timeout expires
	WaitVisible(sel string, timeout time.Duration) error
	// Click waits for the element to be clickable, then clicks it
	Click(sel string, timeout time.Duration) error
	// SendKeys types text into the element
	SendKeys(sel, text string, timeout time.Duration) error
	// Text returns the visible text of the first matching element
	Text(sel string, timeout time.Duration) (string, error)
	// OuterHTML returns the serialized markup of the first matching element
	OuterHTML(sel string, timeout time.Duration) (string, error)

	// CurrentWindow returns the active window handle
	CurrentWindow() string
	// Windows lists all open window handles
	Windows() ([]string, error)
	// SwitchWindow makes the given window active
	SwitchWindow(handle string) error
	// OpenWindow opens url in a new window and returns its handle
	// without switching to it
	OpenWindow(url string) (string, error)
	// CloseWindow closes the given window
	CloseWindow(handle string) error

	// Screenshot captures the active window to path
	Screenshot(path string) error

	// Close shuts the whole browser session down
	Close() error
}
