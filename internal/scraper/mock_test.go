package scraper

import (
	"fmt"
	"time"

	"github.com/Vedansh2005/Indiamart-Scraper-final/internal/browser"
)

// stubDriver is a scripted browser.Driver. Windows are plain handles;
// each one carries a location and page markup. OpenWindow and Navigate
// serve markup from the profiles map, keyed by URL. Click behavior is
// scripted through clickHook.
type stubDriver struct {
	current  string
	windows  []string
	visible  map[string]bool
	pageHTML map[string]string
	urls     map[string]string
	profiles map[string]string

	typed     map[string]string
	clicks    []string
	clickHook func(sel string) error
	openErr   error

	nextID int
}

func newStubDriver() *stubDriver {
	return &stubDriver{
		current:  "main",
		windows:  []string{"main"},
		visible:  map[string]bool{},
		pageHTML: map[string]string{},
		urls:     map[string]string{},
		profiles: map[string]string{},
		typed:    map[string]string{},
	}
}

func (d *stubDriver) Navigate(url string) error {
	d.urls[d.current] = url
	if markup, ok := d.profiles[url]; ok {
		d.pageHTML[d.current] = markup
	}
	return nil
}

func (d *stubDriver) Location() (string, error) {
	return d.urls[d.current], nil
}

func (d *stubDriver) WaitVisible(sel string, _ time.Duration) error {
	if d.visible[sel] {
		return nil
	}
	return fmt.Errorf("%w: %s", browser.ErrTimeout, sel)
}

func (d *stubDriver) Click(sel string, _ time.Duration) error {
	d.clicks = append(d.clicks, sel)
	if d.clickHook != nil {
		return d.clickHook(sel)
	}
	return nil
}

func (d *stubDriver) SendKeys(sel, text string, _ time.Duration) error {
	d.typed[sel] = text
	return nil
}

func (d *stubDriver) Text(sel string, _ time.Duration) (string, error) {
	return "", nil
}

func (d *stubDriver) OuterHTML(_ string, _ time.Duration) (string, error) {
	html, ok := d.pageHTML[d.current]
	if !ok {
		return "", fmt.Errorf("%w: no markup for window %s", browser.ErrNotFound, d.current)
	}
	return html, nil
}

func (d *stubDriver) CurrentWindow() string {
	return d.current
}

func (d *stubDriver) Windows() ([]string, error) {
	out := make([]string, len(d.windows))
	copy(out, d.windows)
	return out, nil
}

func (d *stubDriver) SwitchWindow(handle string) error {
	for _, h := range d.windows {
		if h == handle {
			d.current = handle
			return nil
		}
	}
	return fmt.Errorf("%w: window %s", browser.ErrNotFound, handle)
}

// openWindow registers a new handle serving the markup mapped to url.
func (d *stubDriver) openWindow(url string) string {
	d.nextID++
	handle := fmt.Sprintf("w%d", d.nextID)
	d.windows = append(d.windows, handle)
	d.urls[handle] = url
	if markup, ok := d.profiles[url]; ok {
		d.pageHTML[handle] = markup
	}
	return handle
}

func (d *stubDriver) OpenWindow(url string) (string, error) {
	if d.openErr != nil {
		return "", d.openErr
	}
	return d.openWindow(url), nil
}

func (d *stubDriver) CloseWindow(handle string) error {
	for i, h := range d.windows {
		if h == handle {
			d.windows = append(d.windows[:i], d.windows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: window %s", browser.ErrNotFound, handle)
}

func (d *stubDriver) Screenshot(string) error { return nil }

func (d *stubDriver) Close() error { return nil }

// stubCreds scripts the login prompts.
type stubCreds struct {
	mobile string
	otp    string
}

func (c stubCreds) Mobile() (string, error) { return c.mobile, nil }
func (c stubCreds) OTP() (string, error)    { return c.otp, nil }
