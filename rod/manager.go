package rod

import (
	"sync"

	"github.com/fwojciec/lunchmenu"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMaxPages is the number of pages opened in one browser before it is
// replaced with a fresh one.
const DefaultMaxPages = 50

// BrowserManager hands out pages of a headless Chrome.
//
// Chrome is started on the first Page call, so a run that renders no
// JavaScript menus never launches it. A failed launch is remembered and
// reported as EFETCH for every later page. After MaxPages pages the browser
// is replaced, since Chrome's memory use keeps growing across page loads.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	maxPages int
	bin      string

	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pages     int
	launchErr error
	closed    bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the number of pages before the browser is replaced.
func WithMaxPages(n int) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithBrowserBin uses the Chrome binary at path instead of looking one up
// or downloading it.
func WithBrowserBin(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.bin = path
	}
}

// NewBrowserManager creates a BrowserManager. No browser is started yet.
func NewBrowserManager(opts ...ManagerOption) *BrowserManager {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}
	return bm
}

// Page opens a blank page, launching or replacing the browser as needed.
func (bm *BrowserManager) Page() (*rod.Page, error) {
	b, err := bm.Browser()
	if err != nil {
		return nil, err
	}
	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, lunchmenu.Errorf(lunchmenu.EFETCH, "open page: %v", err)
	}
	return page, nil
}

// Browser returns the running browser and counts one page against it.
func (bm *BrowserManager) Browser() (*rod.Browser, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	switch {
	case bm.closed:
		return nil, lunchmenu.Errorf(lunchmenu.EFETCH, "browser closed")
	case bm.launchErr != nil:
		return nil, bm.launchErr
	case bm.browser == nil:
		if err := bm.start(); err != nil {
			bm.launchErr = lunchmenu.Errorf(lunchmenu.EFETCH, "browser unavailable (is Chrome or Chromium installed?): %v", err)
			return nil, bm.launchErr
		}
	case bm.maxPages > 0 && bm.pages >= bm.maxPages:
		bm.replace()
	}

	bm.pages++
	return bm.browser, nil
}

// Close shuts the browser down. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true
	return stopBrowser(bm.browser, bm.launcher)
}

// LauncherPID returns the process ID of the running browser launcher,
// or 0 when no browser runs.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil || bm.closed {
		return 0
	}
	return bm.launcher.PID()
}

// start must be called with mu held.
func (bm *BrowserManager) start() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	if bm.bin != "" {
		l = l.Bin(bm.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return err
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return err
	}

	bm.browser, bm.launcher, bm.pages = b, l, 0
	return nil
}

// replace swaps in a fresh browser. The old one stays in service when a new
// one cannot be started. Must be called with mu held.
func (bm *BrowserManager) replace() {
	oldBrowser, oldLauncher := bm.browser, bm.launcher
	if err := bm.start(); err != nil {
		bm.pages = 0
		return
	}
	_ = stopBrowser(oldBrowser, oldLauncher)
}

func stopBrowser(b *rod.Browser, l *launcher.Launcher) error {
	var err error
	if b != nil {
		err = b.Close()
	}
	if l != nil {
		l.Kill()
	}
	return err
}
