package driver

import (
	"errors"
	"fmt"
	"time"

	"github.com/adyen/shopcheck/internal/config"
	"github.com/adyen/shopcheck/internal/locator"
	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"
)

// PlaywrightLauncher owns a Playwright driver process and one Chromium browser
type PlaywrightLauncher struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     *config.BrowserConfig
	log     zerolog.Logger
}

// LaunchPlaywright starts Playwright and launches Chromium.
// Browsers must be installed beforehand with
// go run github.com/playwright-community/playwright-go/cmd/playwright install chromium
func LaunchPlaywright(cfg *config.BrowserConfig, log zerolog.Logger) (*PlaywrightLauncher, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMo.Milliseconds())),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	log.Debug().Bool("headless", cfg.Headless).Msg("playwright chromium launched")
	return &PlaywrightLauncher{pw: pw, browser: browser, cfg: cfg, log: log}, nil
}

// NewSession opens a page in a fresh browser context
func (l *PlaywrightLauncher) NewSession() (Session, error) {
	bctx, err := l.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	page.SetDefaultNavigationTimeout(float64(l.cfg.NavigationTimeout.Milliseconds()))
	return &playwrightSession{bctx: bctx, page: page, log: l.log}, nil
}

// Close shuts down the browser and the Playwright driver
func (l *PlaywrightLauncher) Close() error {
	berr := l.browser.Close()
	if err := l.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return berr
}

type playwrightSession struct {
	bctx playwright.BrowserContext
	page playwright.Page
	log  zerolog.Logger
}

// playwrightSelector renders a locator in Playwright selector syntax
func playwrightSelector(loc locator.Locator) string {
	if expr, ok := loc.XPathExpr(); ok {
		return "xpath=" + expr
	}
	expr, _ := loc.CSSExpr()
	return "css=" + expr
}

func (s *playwrightSession) Navigate(url string) error {
	s.log.Debug().Str("url", url).Msg("navigate")
	if _, err := s.page.Goto(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (s *playwrightSession) Reload() error {
	if _, err := s.page.Reload(); err != nil {
		return fmt.Errorf("failed to reload page: %w", err)
	}
	return nil
}

func (s *playwrightSession) Title() (string, error) {
	return s.page.Title()
}

func (s *playwrightSession) PageSource() (string, error) {
	return s.page.Content()
}

func (s *playwrightSession) Find(loc locator.Locator) (Element, error) {
	return findFirst(s.page.Locator(playwrightSelector(loc)), loc)
}

func (s *playwrightSession) FindAll(loc locator.Locator) ([]Element, error) {
	// handles stay bound to their node when earlier matches leave the DOM
	handles, err := s.page.Locator(playwrightSelector(loc)).ElementHandles()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", loc, err)
	}
	elements := make([]Element, len(handles))
	for i, h := range handles {
		elements[i] = &playwrightHandle{handle: h}
	}
	return elements, nil
}

func (s *playwrightSession) WaitFor(loc locator.Locator, cond Condition, timeout time.Duration) (Element, error) {
	target := s.page.Locator(playwrightSelector(loc)).First()
	deadline := time.Now().Add(timeout)

	state := playwright.WaitForSelectorStateVisible
	if cond == ConditionPresent {
		state = playwright.WaitForSelectorStateAttached
	}
	err := target.WaitFor(playwright.LocatorWaitForOptions{
		State:   state,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err == nil && cond == ConditionClickable {
		// trial clicks run the actionability checks without clicking
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, timedOut(loc, cond, timeout)
		}
		err = target.Click(playwright.LocatorClickOptions{
			Trial:   playwright.Bool(true),
			Timeout: playwright.Float(float64(remaining.Milliseconds())),
		})
	}
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return nil, timedOut(loc, cond, timeout)
		}
		return nil, fmt.Errorf("failed waiting for %s: %w", loc, err)
	}
	return &playwrightElement{loc: target}, nil
}

func (s *playwrightSession) Close() error {
	return s.bctx.Close()
}

// findFirst resolves the first match immediately, failing when none exists
func findFirst(l playwright.Locator, loc locator.Locator) (Element, error) {
	count, err := l.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", loc, err)
	}
	if count == 0 {
		return nil, notFound(loc)
	}
	return &playwrightElement{loc: l.First()}, nil
}

type playwrightElement struct {
	loc playwright.Locator
}

func (e *playwrightElement) Click() error {
	return e.loc.Click()
}

func (e *playwrightElement) SendKeys(text string) error {
	return e.loc.PressSequentially(text)
}

func (e *playwrightElement) Text() (string, error) {
	return e.loc.InnerText()
}

func (e *playwrightElement) Attribute(name string) (string, error) {
	return e.loc.GetAttribute(name)
}

func (e *playwrightElement) Find(loc locator.Locator) (Element, error) {
	return findFirst(e.loc.Locator(playwrightSelector(loc)), loc)
}

// playwrightHandle is a FindAll match pinned to one DOM node
type playwrightHandle struct {
	handle playwright.ElementHandle
}

func (e *playwrightHandle) Click() error {
	return e.handle.Click()
}

func (e *playwrightHandle) SendKeys(text string) error {
	return e.handle.Type(text)
}

func (e *playwrightHandle) Text() (string, error) {
	return e.handle.InnerText()
}

func (e *playwrightHandle) Attribute(name string) (string, error) {
	return e.handle.GetAttribute(name)
}

func (e *playwrightHandle) Find(loc locator.Locator) (Element, error) {
	child, err := e.handle.QuerySelector(playwrightSelector(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", loc, err)
	}
	if child == nil {
		return nil, notFound(loc)
	}
	return &playwrightHandle{handle: child}, nil
}
