package locator

import (
	"fmt"
	"sort"
	"strings"
)

// Strategy is the way a selector string is interpreted
type Strategy string

// Supported locator strategies
const (
	StrategyXPath    Strategy = "xpath"
	StrategyID       Strategy = "id"
	StrategyCSS      Strategy = "css selector"
	StrategyLinkText Strategy = "link text"
)

// Locator identifies how to find an element on a page. Locators are plain
// values and are never mutated after construction.
type Locator struct {
	Strategy Strategy
	Selector string
}

// XPath creates a locator using an XPath expression
func XPath(expr string) Locator {
	return Locator{Strategy: StrategyXPath, Selector: expr}
}

// ID creates a locator matching the element id attribute
func ID(id string) Locator {
	return Locator{Strategy: StrategyID, Selector: id}
}

// CSS creates a locator using a CSS selector
func CSS(selector string) Locator {
	return Locator{Strategy: StrategyCSS, Selector: selector}
}

// LinkText creates a locator matching anchors by their visible text
func LinkText(text string) Locator {
	return Locator{Strategy: StrategyLinkText, Selector: text}
}

// String returns the locator in a form suitable for logs and errors
func (l Locator) String() string {
	return fmt.Sprintf("%s=%q", l.Strategy, l.Selector)
}

// IsXPath reports whether the locator renders to an XPath expression
func (l Locator) IsXPath() bool {
	return l.Strategy == StrategyXPath || l.Strategy == StrategyLinkText
}

// XPathExpr renders XPath and link text locators as an XPath expression.
// It returns false for CSS and id locators.
func (l Locator) XPathExpr() (string, bool) {
	switch l.Strategy {
	case StrategyXPath:
		return l.Selector, true
	case StrategyLinkText:
		return "//a[normalize-space(.)=" + xpathLiteral(strings.TrimSpace(l.Selector)) + "]", true
	}
	return "", false
}

// CSSExpr renders id and CSS locators as a CSS selector.
// It returns false for XPath and link text locators.
func (l Locator) CSSExpr() (string, bool) {
	switch l.Strategy {
	case StrategyCSS:
		return l.Selector, true
	case StrategyID:
		return `[id="` + strings.ReplaceAll(l.Selector, `"`, `\"`) + `"]`, true
	}
	return "", false
}

// Expr renders the locator as either XPath or CSS, whichever applies
func (l Locator) Expr() string {
	if expr, ok := l.XPathExpr(); ok {
		return expr
	}
	expr, _ := l.CSSExpr()
	return expr
}

// xpathLiteral quotes s as an XPath string literal. XPath 1.0 has no escape
// sequences so strings holding both quote kinds are built with concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if p != "" {
			quoted = append(quoted, "'"+p+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

// Registry maps symbolic names to locators for one logical page
type Registry struct {
	page     string
	locators map[string]Locator
}

// NewRegistry creates a registry for the named page
func NewRegistry(page string, locators map[string]Locator) *Registry {
	copied := make(map[string]Locator, len(locators))
	for name, loc := range locators {
		copied[name] = loc
	}
	return &Registry{page: page, locators: copied}
}

// Page returns the page the registry belongs to
func (r *Registry) Page() string {
	return r.page
}

// Lookup returns the locator registered under name
func (r *Registry) Lookup(name string) (Locator, bool) {
	loc, ok := r.locators[name]
	return loc, ok
}

// MustLookup returns the locator registered under name and panics when the
// name is unknown. Only used with names declared next to the registry.
func (r *Registry) MustLookup(name string) Locator {
	loc, ok := r.locators[name]
	if !ok {
		panic(fmt.Sprintf("locator %q not registered for page %s", name, r.page))
	}
	return loc
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.locators))
	for name := range r.locators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
