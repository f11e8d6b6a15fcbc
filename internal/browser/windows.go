package browser

import (
	"fmt"
	"time"

	"github.com/Vedansh2005/Indiamart-Scraper-final/logger"
)

// NewHandle returns the handle present in after but not in before. It is
// unambiguous only because callers expect exactly one new window.
func NewHandle(before, after []string) (string, bool) {
	prior := make(map[string]struct{}, len(before))
	for _, h := range before {
		prior[h] = struct{}{}
	}
	for _, h := range after {
		if _, ok := prior[h]; !ok {
			return h, true
		}
	}
	return "", false
}

// AwaitWindowCount polls the driver until exactly count windows are open
// or the timeout expires. Returns the final handle set.
func AwaitWindowCount(d Driver, count int, timeout time.Duration) ([]string, error) {
	deadline := time.Now().Add(timeout)
	for {
		handles, err := d.Windows()
		if err != nil {
			return nil, err
		}
		if len(handles) == count {
			return handles, nil
		}
		if time.Now().After(deadline) {
			return handles, fmt.Errorf("%w: window count is %d, want %d", ErrTimeout, len(handles), count)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// WithWindow opens url in a new window, switches to it, and runs fn.
// Whatever fn does, the window is closed (if it still exists) and focus
// is restored to the anchor handle before WithWindow returns. This keeps
// the session's handle set exactly as it was before the excursion.
func WithWindow(d Driver, anchor, url string, fn func() error) error {
	handle, err := d.OpenWindow(url)
	if err != nil {
		// Opening may have failed after the window registered; restore anyway.
		restoreAnchor(d, anchor, handle)
		return err
	}

	defer restoreAnchor(d, anchor, handle)

	if err := d.SwitchWindow(handle); err != nil {
		return err
	}
	return fn()
}

// restoreAnchor closes the transient window if it is still open and
// switches focus back to the anchor.
func restoreAnchor(d Driver, anchor, handle string) {
	if handle != "" && handle != anchor {
		if open, err := d.Windows(); err == nil {
			for _, h := range open {
				if h == handle {
					if err := d.CloseWindow(handle); err != nil {
						logger.Warn("Could not close window %s: %v", handle, err)
					}
					break
				}
			}
		}
	}
	if err := d.SwitchWindow(anchor); err != nil {
		logger.Error("Could not switch back to anchor window %s: %v", anchor, err)
	}
}
