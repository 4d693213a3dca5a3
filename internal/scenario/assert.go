package scenario

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/adyen/shopcheck/internal/driver"
)

// AssertionError is a mismatch between an expected fixture value and what
// the page shows
type AssertionError struct {
	Message  string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %q, got %q", e.Message, e.Expected, e.Actual)
}

// Equal fails unless actual equals expected exactly
func Equal(message, expected, actual string) error {
	if expected != actual {
		return &AssertionError{Message: message, Expected: expected, Actual: actual}
	}
	return nil
}

// Contains fails unless needle occurs in haystack. Page sources are
// truncated in the error.
func Contains(message, haystack, needle string) error {
	if !strings.Contains(haystack, needle) {
		return &AssertionError{Message: message, Expected: "…" + needle + "…", Actual: truncate(haystack, 120)}
	}
	return nil
}

// EqualStrings fails unless both lists hold the same values in order
func EqualStrings(message string, expected, actual []string) error {
	if len(expected) == len(actual) {
		same := true
		for i := range expected {
			if expected[i] != actual[i] {
				same = false
				break
			}
		}
		if same {
			return nil
		}
	}
	return &AssertionError{
		Message:  message,
		Expected: strings.Join(expected, ", "),
		Actual:   strings.Join(actual, ", "),
	}
}

// truncate keeps at most n bytes of s without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}

// Kind classifies why a scenario failed
type Kind string

// Failure kinds
const (
	KindNone            Kind = ""
	KindElementNotFound Kind = "element-not-found"
	KindWaitTimeout     Kind = "wait-timeout"
	KindAssertion       Kind = "assertion-mismatch"
	KindOther           Kind = "error"
)

// Classify maps a scenario error onto its failure kind
func Classify(err error) Kind {
	var assertion *AssertionError
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &assertion):
		return KindAssertion
	case errors.Is(err, driver.ErrWaitTimeout):
		return KindWaitTimeout
	case errors.Is(err, driver.ErrElementNotFound):
		return KindElementNotFound
	}
	return KindOther
}
