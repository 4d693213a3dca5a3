// Package suites declares the storefront scenarios grouped by page.
package suites

import (
	"fmt"

	"github.com/adyen/shopcheck/internal/driver"
	"github.com/adyen/shopcheck/internal/fixtures"
	"github.com/adyen/shopcheck/internal/scenario"
)

// All returns every suite in run order
func All(set *fixtures.Set) []scenario.Suite {
	return []scenario.Suite{Home(), Shop(), Signin(set)}
}

func click(el driver.Element, err error) error {
	if err != nil {
		return err
	}
	return el.Click()
}

func reload(c *scenario.Context) error {
	c.Log.Info().Msg("reloading page")
	if err := c.Session.Reload(); err != nil {
		return fmt.Errorf("failed to reload: %w", err)
	}
	return nil
}
