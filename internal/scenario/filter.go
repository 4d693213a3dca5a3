package scenario

import "strings"

// Filter selects scenarios by suite name, tag and scenario name. Empty
// fields match everything. A name also matches its parameterized variants,
// so "invalid_username" selects "invalid_username/dummy1234".
type Filter struct {
	Suites    []string
	Tags      []string
	Scenarios []string
}

// Apply returns the suites and scenarios that f selects, dropping suites
// left without scenarios. Declaration order is kept.
func (f Filter) Apply(suites []Suite) []Suite {
	var out []Suite
	for _, s := range suites {
		if !matches(f.Suites, s.Name) {
			continue
		}
		var kept []Scenario
		for _, sc := range s.Scenarios {
			if !matches(f.Scenarios, sc.Name) || !f.hasTag(sc) {
				continue
			}
			kept = append(kept, sc)
		}
		if len(kept) > 0 {
			out = append(out, Suite{Name: s.Name, Scenarios: kept})
		}
	}
	return out
}

func (f Filter) hasTag(sc Scenario) bool {
	if len(f.Tags) == 0 {
		return true
	}
	for _, t := range f.Tags {
		if sc.HasTag(t) {
			return true
		}
	}
	return false
}

func matches(names []string, name string) bool {
	if len(names) == 0 {
		return true
	}
	for _, n := range names {
		if n == name || strings.HasPrefix(name, n+"/") {
			return true
		}
	}
	return false
}
