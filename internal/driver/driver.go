// Package driver wraps browser-automation libraries behind a small session
// interface consumed by the page objects.
package driver

import (
	"errors"
	"fmt"
	"time"

	"github.com/adyen/shopcheck/internal/locator"
)

// Condition is a predicate over the current DOM state of a locator
type Condition string

// Wait conditions
const (
	ConditionPresent   Condition = "present"
	ConditionVisible   Condition = "visible"
	ConditionClickable Condition = "clickable"
)

// Driver errors
var (
	ErrElementNotFound = errors.New("element not found")
	ErrWaitTimeout     = errors.New("wait timed out")
	ErrUnknownDriver   = errors.New("unknown browser driver")
)

// Element is a live reference to a DOM node. It is only valid until the next
// navigation or DOM mutation and must not be cached across operations.
type Element interface {
	Click() error
	SendKeys(text string) error
	Text() (string, error)
	Attribute(name string) (string, error)
	// Find looks up the first match of loc inside this element
	Find(loc locator.Locator) (Element, error)
}

// Session is a browser tab owned by one scenario at a time
type Session interface {
	Navigate(url string) error
	Reload() error
	Title() (string, error)
	PageSource() (string, error)
	// Find returns the first element matching loc without waiting
	Find(loc locator.Locator) (Element, error)
	// FindAll returns every element matching loc, possibly none
	FindAll(loc locator.Locator) ([]Element, error)
	// WaitFor blocks until cond holds for loc or timeout elapses
	WaitFor(loc locator.Locator, cond Condition, timeout time.Duration) (Element, error)
	Close() error
}

func notFound(loc locator.Locator) error {
	return fmt.Errorf("%w: %s", ErrElementNotFound, loc)
}

func timedOut(loc locator.Locator, cond Condition, timeout time.Duration) error {
	return fmt.Errorf("%w: %s not %s after %s", ErrWaitTimeout, loc, cond, timeout)
}
