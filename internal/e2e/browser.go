// Package e2e drives the deployed storefront through a real browser and
// asserts the UI state transitions a human would observe. Page objects wrap
// one screen's locators and intents each; scenarios compose them into full
// user journeys. Every wait is bounded: checks tolerate network latency
// without flaking indefinitely.
package e2e

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"pawshop/internal/config"
)

// Browser owns the Chrome instance shared by scenario pages.
type Browser struct {
	cfg config.E2EConfig
	log *zap.Logger

	mu         sync.Mutex
	browser    *rod.Browser
	controlURL string
}

// NewBrowser creates an unstarted browser wrapper. log may be nil.
func NewBrowser(cfg config.E2EConfig, log *zap.Logger) *Browser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Browser{cfg: cfg, log: log}
}

// Start launches Chrome and connects to it.
func (b *Browser) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		if _, err := b.browser.Version(); err == nil {
			return nil
		}
		b.log.Warn("stale browser connection, relaunching")
		_ = b.browser.Close()
		b.browser = nil
	}

	controlURL, err := launcher.New().Headless(b.cfg.Headless).Launch()
	if err != nil {
		return fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect to chrome: %w", err)
	}

	b.browser = browser
	b.controlURL = controlURL
	b.log.Info("browser started", zap.Bool("headless", b.cfg.Headless))
	return nil
}

// Shutdown closes the browser.
func (b *Browser) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.browser == nil {
		return nil
	}
	err := b.browser.Close()
	b.browser = nil
	b.controlURL = ""
	return err
}

// NewPage opens a fresh incognito page so each scenario starts with clean
// cookies and storage.
func (b *Browser) NewPage(ctx context.Context) (*Page, error) {
	b.mu.Lock()
	browser := b.browser
	b.mu.Unlock()
	if browser == nil {
		return nil, errors.New("browser not started")
	}

	incognito, err := browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("incognito context: %w", err)
	}
	page, err := incognito.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             b.cfg.ViewportWidth,
		Height:            b.cfg.ViewportHeight,
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page); err != nil {
		b.log.Warn("failed to set viewport", zap.Error(err))
	}

	return &Page{
		page:          page.Context(ctx),
		baseURL:       strings.TrimRight(b.cfg.AppURL, "/"),
		navTimeout:    b.cfg.NavigationTimeout(),
		assertTimeout: b.cfg.AssertTimeout(),
	}, nil
}

// Page wraps one rod page with the app's base URL and bounded-wait helpers.
// Page objects build on these primitives only.
type Page struct {
	page          *rod.Page
	baseURL       string
	navTimeout    time.Duration
	assertTimeout time.Duration
}

// Close releases the page.
func (p *Page) Close() {
	_ = p.page.Close()
}

// Goto navigates to an app-relative path and waits for the load event.
func (p *Page) Goto(path string) error {
	page := p.page.Timeout(p.navTimeout)
	if err := page.Navigate(p.baseURL + path); err != nil {
		return fmt.Errorf("navigate %s: %w", path, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", path, err)
	}
	return nil
}

// Click waits for the selector and clicks it.
func (p *Page) Click(selector string) error {
	el, err := p.page.Timeout(p.assertTimeout).Element(selector)
	if err != nil {
		return fmt.Errorf("element not found: %s: %w", selector, err)
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// ClickText clicks the first element matching selector whose text contains
// text.
func (p *Page) ClickText(selector, text string) error {
	el, err := p.page.Timeout(p.assertTimeout).ElementR(selector, regexp.QuoteMeta(text))
	if err != nil {
		return fmt.Errorf("element not found: %s %q: %w", selector, text, err)
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// Fill replaces the element's current value with text.
func (p *Page) Fill(selector, text string) error {
	el, err := p.page.Timeout(p.assertTimeout).Element(selector)
	if err != nil {
		return fmt.Errorf("element not found: %s: %w", selector, err)
	}
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("select text: %s: %w", selector, err)
	}
	return el.Input(text)
}

// SelectByLabel picks a <select> option by its visible label.
func (p *Page) SelectByLabel(selector, label string) error {
	el, err := p.page.Timeout(p.assertTimeout).Element(selector)
	if err != nil {
		return fmt.Errorf("element not found: %s: %w", selector, err)
	}
	return el.Select([]string{label}, true, rod.SelectorTypeText)
}

// Text returns the visible text of the first match.
func (p *Page) Text(selector string) (string, error) {
	el, err := p.page.Timeout(p.assertTimeout).Element(selector)
	if err != nil {
		return "", fmt.Errorf("element not found: %s: %w", selector, err)
	}
	return el.Text()
}

// WaitVisible asserts the selector becomes visible within the assertion
// timeout.
func (p *Page) WaitVisible(selector string) error {
	el, err := p.page.Timeout(p.assertTimeout).Element(selector)
	if err != nil {
		return fmt.Errorf("not visible: %s: %w", selector, err)
	}
	if err := el.WaitVisible(); err != nil {
		return fmt.Errorf("not visible: %s: %w", selector, err)
	}
	return nil
}

// WaitText asserts an element matching selector contains text within the
// assertion timeout.
func (p *Page) WaitText(selector, text string) error {
	if _, err := p.page.Timeout(p.assertTimeout).ElementR(selector, regexp.QuoteMeta(text)); err != nil {
		return fmt.Errorf("text %q not found in %s: %w", text, selector, err)
	}
	return nil
}

// WaitAbsentText polls until no element matching selector contains text, or
// the assertion timeout passes.
func (p *Page) WaitAbsentText(selector, text string) error {
	deadline := time.Now().Add(p.assertTimeout)
	for {
		has, _, err := p.page.HasR(selector, regexp.QuoteMeta(text))
		if err == nil && !has {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("text %q still present in %s after %v", text, selector, p.assertTimeout)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// CurrentPath returns the current URL path.
func (p *Page) CurrentPath() (string, error) {
	info, err := p.page.Info()
	if err != nil {
		return "", fmt.Errorf("page info: %w", err)
	}
	u := info.URL
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	if i := strings.Index(u, "/"); i >= 0 {
		return strings.TrimSuffix(u[i:], "/"), nil
	}
	return "", nil
}

// WaitPath polls until the URL path equals path or the assertion timeout
// passes. Client-side routing changes the URL without a load event, so this
// polls instead of waiting for navigation.
func (p *Page) WaitPath(path string) error {
	path = strings.TrimSuffix(path, "/")
	deadline := time.Now().Add(p.assertTimeout)
	for {
		current, err := p.CurrentPath()
		if err == nil && current == path {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("expected path %q, still on %q after %v", path, current, p.assertTimeout)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
