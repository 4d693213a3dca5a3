// Package scenario runs ordered scenarios against a browser session and
// records one pass or fail result per scenario.
package scenario

import (
	"github.com/adyen/shopcheck/internal/driver"
	"github.com/adyen/shopcheck/internal/fixtures"
	"github.com/rs/zerolog"
)

// Tag marking the scenarios of the quick smoke set
const TagSmoke = "smoke"

// Context is what a scenario gets to work with. The session is shared by
// every scenario of the suite.
type Context struct {
	Session  driver.Session
	Fixtures *fixtures.Set
	Log      zerolog.Logger
	BaseURL  string
}

// Func is the body of a scenario
type Func func(*Context) error

// Scenario is one named check
type Scenario struct {
	Name string
	Tags []string
	Run  Func
}

// HasTag reports whether s carries tag
func (s Scenario) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Suite is an ordered group of scenarios sharing one session
type Suite struct {
	Name      string
	Scenarios []Scenario
}
