package browser

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeDriver implements just enough of Driver to exercise the window
// registry helpers.
type fakeDriver struct {
	windows []string
	active  string
	nextID  int

	failOpen   bool
	failSwitch map[string]bool
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		windows:    []string{"w0"},
		active:     "w0",
		nextID:     1,
		failSwitch: map[string]bool{},
	}
}

func (f *fakeDriver) Navigate(string) error             { return nil }
func (f *fakeDriver) Location() (string, error)         { return "", nil }
func (f *fakeDriver) WaitVisible(string, time.Duration) error { return nil }
func (f *fakeDriver) Click(string, time.Duration) error { return nil }
func (f *fakeDriver) SendKeys(string, string, time.Duration) error { return nil }
func (f *fakeDriver) Text(string, time.Duration) (string, error)   { return "", nil }
func (f *fakeDriver) OuterHTML(string, time.Duration) (string, error) { return "", nil }
func (f *fakeDriver) Screenshot(string) error           { return nil }
func (f *fakeDriver) Close() error                      { return nil }

func (f *fakeDriver) CurrentWindow() string { return f.active }

func (f *fakeDriver) Windows() ([]string, error) {
	out := make([]string, len(f.windows))
	copy(out, f.windows)
	return out, nil
}

func (f *fakeDriver) SwitchWindow(handle string) error {
	if f.failSwitch[handle] {
		return errors.New("switch failed")
	}
	for _, h := range f.windows {
		if h == handle {
			f.active = handle
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeDriver) OpenWindow(string) (string, error) {
	if f.failOpen {
		return "", errors.New("open failed")
	}
	h := fmt.Sprintf("w%d", f.nextID)
	f.nextID++
	f.windows = append(f.windows, h)
	return h, nil
}

func (f *fakeDriver) CloseWindow(handle string) error {
	for i, h := range f.windows {
		if h == handle {
			f.windows = append(f.windows[:i], f.windows[i+1:]...)
			if f.active == handle {
				f.active = ""
			}
			return nil
		}
	}
	return ErrNotFound
}

func TestNewHandle(t *testing.T) {
	h, ok := NewHandle([]string{"a"}, []string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "b", h)

	_, ok = NewHandle([]string{"a"}, []string{"a"})
	assert.False(t, ok)

	h, ok = NewHandle(nil, []string{"a"})
	assert.True(t, ok)
	assert.Equal(t, "a", h)
}

func TestAwaitWindowCount(t *testing.T) {
	d := newFakeDriver()

	handles, err := AwaitWindowCount(d, 1, 100*time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, []string{"w0"}, handles)

	_, err = AwaitWindowCount(d, 2, 50*time.Millisecond)
	assert.True(t, IsTimeout(err))
}

func TestWithWindowRestoresOnSuccess(t *testing.T) {
	d := newFakeDriver()

	var seen string
	err := WithWindow(d, "w0", "https://example.com/profile", func() error {
		seen = d.CurrentWindow()
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "w1", seen)
	assert.Equal(t, []string{"w0"}, d.windows)
	assert.Equal(t, "w0", d.CurrentWindow())
}

func TestWithWindowRestoresOnError(t *testing.T) {
	d := newFakeDriver()
	boom := errors.New("boom")

	err := WithWindow(d, "w0", "https://example.com/profile", func() error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"w0"}, d.windows)
	assert.Equal(t, "w0", d.CurrentWindow())
}

func TestWithWindowRestoresWhenOpenFails(t *testing.T) {
	d := newFakeDriver()
	d.failOpen = true

	err := WithWindow(d, "w0", "https://example.com/profile", func() error {
		t.Fatal("fn must not run when the window fails to open")
		return nil
	})

	assert.Error(t, err)
	assert.Equal(t, []string{"w0"}, d.windows)
	assert.Equal(t, "w0", d.CurrentWindow())
}
