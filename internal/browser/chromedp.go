package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"

	"github.com/Vedansh2005/Indiamart-Scraper-final/helpers"
	"github.com/Vedansh2005/Indiamart-Scraper-final/logger"
)

// ChromeDriver implements Driver on top of a chromedp session. Each
// window handle maps to a browser tab (a chromedp target context).
type ChromeDriver struct {
	allocCancel context.CancelFunc
	base        context.Context
	baseCancel  context.CancelFunc

	navTimeout time.Duration

	mu     sync.Mutex
	tabs   map[string]chromeTab
	active string
}

type chromeTab struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewChrome starts a Chrome session and returns a driver whose initial
// window is active.
func NewChrome(parent context.Context, headless bool) (*ChromeDriver, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-notifications", true),
		chromedp.Flag("disable-popup-blocking", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(helpers.RandomUserAgent()),
	)
	if headless {
		opts = append(opts, chromedp.WindowSize(1920, 1080))
	}
	if path := os.Getenv("CHROME_PATH"); path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	base, baseCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(logger.Debug),
	)

	// Start the browser so the first tab's target is known.
	if err := chromedp.Run(base, chromedp.Navigate("about:blank")); err != nil {
		baseCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	handle := string(chromedp.FromContext(base).Target.TargetID)

	d := &ChromeDriver{
		allocCancel: allocCancel,
		base:        base,
		baseCancel:  baseCancel,
		navTimeout:  30 * time.Second,
		tabs:        map[string]chromeTab{handle: {ctx: base, cancel: baseCancel}},
		active:      handle,
	}
	return d, nil
}

func queryOpts(sel string, extra ...chromedp.QueryOption) []chromedp.QueryOption {
	var opts []chromedp.QueryOption
	if strings.HasPrefix(sel, "/") || strings.HasPrefix(sel, "(") {
		opts = append(opts, chromedp.BySearch)
	} else {
		opts = append(opts, chromedp.ByQuery)
	}
	return append(opts, extra...)
}

func (d *ChromeDriver) activeTab() (chromeTab, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.tabs[d.active]
	if !ok {
		return chromeTab{}, fmt.Errorf("%w: no active window", ErrNotFound)
	}
	return t, nil
}

// run executes actions against the active window, bounding them with
// timeout when timeout > 0.
func (d *ChromeDriver) run(timeout time.Duration, actions ...chromedp.Action) error {
	t, err := d.activeTab()
	if err != nil {
		return err
	}

	ctx := t.ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := chromedp.Run(ctx, actions...); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return err
	}
	return nil
}

// Navigate loads url in the active window
func (d *ChromeDriver) Navigate(url string) error {
	return d.run(d.navTimeout, chromedp.Navigate(url))
}

// Location returns the active window's current URL
func (d *ChromeDriver) Location() (string, error) {
	var url string
	if err := d.run(d.navTimeout, chromedp.Location(&url)); err != nil {
		return "", err
	}
	return url, nil
}

// WaitVisible blocks until the element is rendered or timeout expires
func (d *ChromeDriver) WaitVisible(sel string, timeout time.Duration) error {
	return d.run(timeout, chromedp.WaitVisible(sel, queryOpts(sel)...))
}

// Click waits for the element to be visible, then clicks it
func (d *ChromeDriver) Click(sel string, timeout time.Duration) error {
	return d.run(timeout, chromedp.Click(sel, queryOpts(sel, chromedp.NodeVisible)...))
}

// SendKeys types text into the element
func (d *ChromeDriver) SendKeys(sel, text string, timeout time.Duration) error {
	return d.run(timeout, chromedp.SendKeys(sel, text, queryOpts(sel, chromedp.NodeVisible)...))
}

// Text returns the visible text of the first matching element
func (d *ChromeDriver) Text(sel string, timeout time.Duration) (string, error) {
	var out string
	if err := d.run(timeout, chromedp.Text(sel, &out, queryOpts(sel, chromedp.NodeVisible)...)); err != nil {
		return "", err
	}
	return out, nil
}

// OuterHTML returns the serialized markup of the first matching element
func (d *ChromeDriver) OuterHTML(sel string, timeout time.Duration) (string, error) {
	var out string
	if err := d.run(timeout, chromedp.OuterHTML(sel, &out, queryOpts(sel)...)); err != nil {
		return "", err
	}
	return out, nil
}

// CurrentWindow returns the active window handle
func (d *ChromeDriver) CurrentWindow() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// Windows lists the handles of all open page targets, including windows
// the page itself opened.
func (d *ChromeDriver) Windows() ([]string, error) {
	infos, err := chromedp.Targets(d.base)
	if err != nil {
		return nil, err
	}

	var handles []string
	for _, info := range infos {
		if info.Type == "page" {
			handles = append(handles, string(info.TargetID))
		}
	}
	sort.Strings(handles)
	return handles, nil
}

// SwitchWindow makes the given window active, attaching to its target if
// it was opened by the page rather than by us.
func (d *ChromeDriver) SwitchWindow(handle string) error {
	d.mu.Lock()
	t, ok := d.tabs[handle]
	d.mu.Unlock()

	if !ok {
		handles, err := d.Windows()
		if err != nil {
			return err
		}
		found := false
		for _, h := range handles {
			if h == handle {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: window %s", ErrNotFound, handle)
		}

		ctx, cancel := chromedp.NewContext(d.base, chromedp.WithTargetID(target.ID(handle)))
		if err := chromedp.Run(ctx, chromedp.ActionFunc(func(context.Context) error { return nil })); err != nil {
			cancel()
			return fmt.Errorf("failed to attach to window %s: %w", handle, err)
		}
		t = chromeTab{ctx: ctx, cancel: cancel}

		d.mu.Lock()
		d.tabs[handle] = t
		d.mu.Unlock()
	}

	d.mu.Lock()
	d.active = handle
	d.mu.Unlock()

	// Best effort; headless sessions do not care about stacking order.
	_ = chromedp.Run(t.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		return page.BringToFront().Do(ctx)
	}))
	return nil
}

// OpenWindow opens url in a new window and returns its handle without
// switching to it.
func (d *ChromeDriver) OpenWindow(url string) (string, error) {
	ctx, cancel := chromedp.NewContext(d.base)

	navCtx, navCancel := context.WithTimeout(ctx, d.navTimeout)
	defer navCancel()
	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		// The tab may have registered even though navigation failed; hand
		// the handle back so the caller can clean it up.
		handle := ""
		if t := chromedp.FromContext(ctx).Target; t != nil {
			handle = string(t.TargetID)
			d.mu.Lock()
			d.tabs[handle] = chromeTab{ctx: ctx, cancel: cancel}
			d.mu.Unlock()
		} else {
			cancel()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return handle, err
	}

	handle := string(chromedp.FromContext(ctx).Target.TargetID)
	d.mu.Lock()
	d.tabs[handle] = chromeTab{ctx: ctx, cancel: cancel}
	d.mu.Unlock()
	return handle, nil
}

// CloseWindow closes the given window
func (d *ChromeDriver) CloseWindow(handle string) error {
	d.mu.Lock()
	t, ok := d.tabs[handle]
	d.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: window %s", ErrNotFound, handle)
	}

	closeCtx, closeCancel := context.WithTimeout(t.ctx, 5*time.Second)
	err := chromedp.Run(closeCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		return page.Close().Do(ctx)
	}))
	closeCancel()
	t.cancel()

	d.mu.Lock()
	delete(d.tabs, handle)
	if d.active == handle {
		d.active = ""
	}
	d.mu.Unlock()

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Screenshot captures the active window to path
func (d *ChromeDriver) Screenshot(path string) error {
	var buf []byte
	if err := d.run(d.navTimeout, chromedp.CaptureScreenshot(&buf)); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf, 0o644)
}

// Close shuts down every window and the browser itself
func (d *ChromeDriver) Close() error {
	d.mu.Lock()
	tabs := make(map[string]chromeTab, len(d.tabs))
	for h, t := range d.tabs {
		tabs[h] = t
	}
	d.mu.Unlock()

	for h, t := range tabs {
		if t.ctx == d.base {
			continue
		}
		t.cancel()
		d.mu.Lock()
		delete(d.tabs, h)
		d.mu.Unlock()
	}

	d.baseCancel()
	d.allocCancel()
	return nil
}
