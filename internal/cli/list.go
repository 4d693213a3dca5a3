package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/adyen/shopcheck/internal/locator"
	"github.com/adyen/shopcheck/internal/scenario"
)

// ListSuites prints every suite with its scenarios and tags
func ListSuites(out io.Writer, suites []scenario.Suite) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, s := range suites {
		fmt.Fprintf(w, "%s\n", s.Name)
		for _, sc := range s.Scenarios {
			fmt.Fprintf(w, "  %s\t%s\n", sc.Name, strings.Join(sc.Tags, ","))
		}
	}
	return w.Flush()
}

// ListLocators prints the locators of each registry
func ListLocators(out io.Writer, registries ...*locator.Registry) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range registries {
		fmt.Fprintf(w, "%s\n", r.Page())
		for _, name := range r.Names() {
			fmt.Fprintf(w, "  %s\t%s\n", name, r.MustLookup(name))
		}
	}
	return w.Flush()
}
