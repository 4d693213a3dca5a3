// Package wait applies timeout-bounded conditions before handing out elements.
// Polling is delegated to the session; a timeout is a failure, never a retry.
package wait

import (
	"time"

	"github.com/adyen/shopcheck/internal/driver"
	"github.com/adyen/shopcheck/internal/locator"
	"github.com/rs/zerolog"
)

// Page wait timeouts
const (
	DefaultTimeout = 10 * time.Second
	ShopTimeout    = 15 * time.Second
)

// Waiter waits on one session with a fixed timeout
type Waiter struct {
	session driver.Session
	timeout time.Duration
	log     zerolog.Logger
}

// New creates a waiter. A non-positive timeout falls back to DefaultTimeout.
func New(session driver.Session, timeout time.Duration, log zerolog.Logger) *Waiter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Waiter{session: session, timeout: timeout, log: log}
}

// Timeout returns the fixed timeout applied to every wait
func (w *Waiter) Timeout() time.Duration {
	return w.timeout
}

// Until blocks until cond holds for loc or the timeout elapses
func (w *Waiter) Until(loc locator.Locator, cond driver.Condition) (driver.Element, error) {
	start := time.Now()
	el, err := w.session.WaitFor(loc, cond, w.timeout)
	if err != nil {
		w.log.Debug().Err(err).Stringer("locator", loc).Str("condition", string(cond)).Msg("wait failed")
		return nil, err
	}
	w.log.Debug().Stringer("locator", loc).Str("condition", string(cond)).Dur("took", time.Since(start)).Msg("wait satisfied")
	return el, nil
}

// Visible waits for loc to be displayed
func (w *Waiter) Visible(loc locator.Locator) (driver.Element, error) {
	return w.Until(loc, driver.ConditionVisible)
}

// Clickable waits for loc to be displayed and enabled
func (w *Waiter) Clickable(loc locator.Locator) (driver.Element, error) {
	return w.Until(loc, driver.ConditionClickable)
}

// Present waits for loc to be attached to the document
func (w *Waiter) Present(loc locator.Locator) (driver.Element, error) {
	return w.Until(loc, driver.ConditionPresent)
}
