package driver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/adyen/shopcheck/internal/config"
	"github.com/adyen/shopcheck/internal/locator"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// ChromedpLauncher owns a Chrome process driven over the DevTools protocol
type ChromedpLauncher struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	cfg           *config.BrowserConfig
	log           zerolog.Logger
}

// LaunchChromedp starts a local Chrome through chromedp
func LaunchChromedp(cfg *config.BrowserConfig, log zerolog.Logger) (*ChromedpLauncher, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.WindowSize(1366, 900),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// the first Run on a fresh context starts the browser
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}
	if cfg.SlowMo > 0 {
		log.Warn().Dur("slow_mo", cfg.SlowMo).Msg("slow-mo is not supported by the chromedp driver")
	}

	log.Debug().Bool("headless", cfg.Headless).Msg("chromedp browser started")
	return &ChromedpLauncher{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		cfg:           cfg,
		log:           log,
	}, nil
}

// NewSession opens a new tab in the running browser
func (l *ChromedpLauncher) NewSession() (Session, error) {
	tabCtx, cancel := chromedp.NewContext(l.browserCtx)
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open tab: %w", err)
	}
	return &chromedpSession{ctx: tabCtx, cancel: cancel, timeout: l.cfg.NavigationTimeout, log: l.log}, nil
}

// Close stops the browser
func (l *ChromedpLauncher) Close() error {
	err := chromedp.Cancel(l.browserCtx)
	l.browserCancel()
	l.allocCancel()
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to stop chrome: %w", err)
	}
	return nil
}

type chromedpSession struct {
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	log     zerolog.Logger
}

// chromedpQuery renders a locator as a chromedp selector and query option.
// XPath goes through DOM.performSearch, CSS through querySelectorAll.
func chromedpQuery(loc locator.Locator) (string, chromedp.QueryOption) {
	if expr, ok := loc.XPathExpr(); ok {
		return expr, chromedp.BySearch
	}
	expr, _ := loc.CSSExpr()
	return expr, chromedp.ByQueryAll
}

// run executes actions bounded by the session action timeout
func (s *chromedpSession) run(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

func (s *chromedpSession) Navigate(url string) error {
	s.log.Debug().Str("url", url).Msg("navigate")
	if err := s.run(chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (s *chromedpSession) Reload() error {
	if err := s.run(chromedp.Reload()); err != nil {
		return fmt.Errorf("failed to reload page: %w", err)
	}
	return nil
}

func (s *chromedpSession) Title() (string, error) {
	var title string
	err := s.run(chromedp.Title(&title))
	return title, err
}

func (s *chromedpSession) PageSource() (string, error) {
	var html string
	err := s.run(chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

// nodes queries loc without waiting for a match
func (s *chromedpSession) nodes(loc locator.Locator) ([]*cdp.Node, error) {
	sel, by := chromedpQuery(loc)
	var nodes []*cdp.Node
	if err := s.run(chromedp.Nodes(sel, &nodes, by, chromedp.AtLeast(0))); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", loc, err)
	}
	return nodes, nil
}

func (s *chromedpSession) Find(loc locator.Locator) (Element, error) {
	nodes, err := s.nodes(loc)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, notFound(loc)
	}
	return &chromedpElement{s: s, id: nodes[0].NodeID}, nil
}

func (s *chromedpSession) FindAll(loc locator.Locator) ([]Element, error) {
	nodes, err := s.nodes(loc)
	if err != nil {
		return nil, err
	}
	elements := make([]Element, len(nodes))
	for i, n := range nodes {
		elements[i] = &chromedpElement{s: s, id: n.NodeID}
	}
	return elements, nil
}

func (s *chromedpSession) WaitFor(loc locator.Locator, cond Condition, timeout time.Duration) (Element, error) {
	sel, by := chromedpQuery(loc)

	var actions []chromedp.Action
	switch cond {
	case ConditionPresent:
		actions = append(actions, chromedp.WaitReady(sel, by))
	case ConditionVisible:
		actions = append(actions, chromedp.WaitVisible(sel, by))
	case ConditionClickable:
		actions = append(actions, chromedp.WaitVisible(sel, by), chromedp.WaitEnabled(sel, by))
	default:
		return nil, fmt.Errorf("unsupported wait condition %q", cond)
	}

	var nodes []*cdp.Node
	actions = append(actions, chromedp.Nodes(sel, &nodes, by, chromedp.AtLeast(0)))

	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	if err := chromedp.Run(ctx, actions...); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, timedOut(loc, cond, timeout)
		}
		return nil, fmt.Errorf("failed waiting for %s: %w", loc, err)
	}
	if len(nodes) == 0 {
		return nil, notFound(loc)
	}
	return &chromedpElement{s: s, id: nodes[0].NodeID}, nil
}

func (s *chromedpSession) Close() error {
	err := chromedp.Cancel(s.ctx)
	s.cancel()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

type chromedpElement struct {
	s  *chromedpSession
	id cdp.NodeID
}

func (e *chromedpElement) ids() []cdp.NodeID {
	return []cdp.NodeID{e.id}
}

func (e *chromedpElement) Click() error {
	return e.s.run(chromedp.Click(e.ids(), chromedp.ByNodeID))
}

func (e *chromedpElement) SendKeys(text string) error {
	return e.s.run(chromedp.SendKeys(e.ids(), text, chromedp.ByNodeID))
}

func (e *chromedpElement) Text() (string, error) {
	var text string
	err := e.s.run(chromedp.Text(e.ids(), &text, chromedp.ByNodeID))
	return text, err
}

func (e *chromedpElement) Attribute(name string) (string, error) {
	var value string
	var ok bool
	err := e.s.run(chromedp.AttributeValue(e.ids(), name, &value, &ok, chromedp.ByNodeID))
	return value, err
}

// scopedLookup is called with this bound to the parent element. XPath
// expressions starting with / are made relative to it.
const scopedLookup = `function() {
	var expr = %s;
	if (!%t) {
		return this.querySelector(expr);
	}
	if (expr.charAt(0) === '/') {
		expr = '.' + expr;
	}
	return document.evaluate(expr, this, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
}`

func (e *chromedpElement) Find(loc locator.Locator) (Element, error) {
	sel, _ := chromedpQuery(loc)
	quoted, err := json.Marshal(sel)
	if err != nil {
		return nil, err
	}
	fn := fmt.Sprintf(scopedLookup, quoted, loc.IsXPath())

	var child cdp.NodeID
	err = e.s.run(chromedp.ActionFunc(func(ctx context.Context) error {
		obj, err := dom.ResolveNode().WithNodeID(e.id).Do(ctx)
		if err != nil {
			return err
		}
		res, exc, err := runtime.CallFunctionOn(fn).WithObjectID(obj.ObjectID).Do(ctx)
		if err != nil {
			return err
		}
		if exc != nil {
			return fmt.Errorf("lookup of %s raised: %s", loc, exc.Text)
		}
		if res.ObjectID == "" {
			return notFound(loc)
		}
		child, err = dom.RequestNode(res.ObjectID).Do(ctx)
		return err
	}))
	if err != nil {
		if errors.Is(err, ErrElementNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to query %s: %w", loc, err)
	}
	return &chromedpElement{s: e.s, id: child}, nil
}
