package suites

import (
	"fmt"

	"github.com/adyen/shopcheck/internal/pages"
	"github.com/adyen/shopcheck/internal/scenario"
)

// Home checks the landing page: title, search, navigation and categories
func Home() scenario.Suite {
	return scenario.Suite{
		Name: "home",
		Scenarios: []scenario.Scenario{
			{Name: "homepage_load", Tags: []string{scenario.TagSmoke}, Run: homepageLoad},
			{Name: "search_button", Run: searchButton},
			{Name: "nav_items", Run: navItems},
			{Name: "category_options", Run: categoryOptions},
			{Name: "signin_button", Run: signinButton},
		},
	}
}

func homepageLoad(c *scenario.Context) error {
	home := pages.NewHomePage(c.Session, c.Log)

	c.Log.Info().Msg("verifying page title")
	title, err := c.Session.Title()
	if err != nil {
		return err
	}
	if err := scenario.Contains("title is not as expected", title, c.Fixtures.Home.Title); err != nil {
		return err
	}

	c.Log.Info().Msg("locating header")
	_, err = home.Header()
	return err
}

func searchButton(c *scenario.Context) error {
	for _, term := range c.Fixtures.Home.SearchItems {
		if err := c.Session.Navigate(c.BaseURL); err != nil {
			return fmt.Errorf("failed to open home page: %w", err)
		}
		home := pages.NewHomePage(c.Session, c.Log)

		c.Log.Info().Str("term", term).Msg("searching")
		if _, err := home.SearchItem(term); err != nil {
			return err
		}
		text, err := home.ResultsText()
		if err != nil {
			return err
		}
		if err := scenario.Contains("search result heading does not name the term", text, c.Fixtures.Home.SearchResultText(term)); err != nil {
			return err
		}
	}
	return nil
}

func navItems(c *scenario.Context) error {
	c.Log.Info().Msg("reading navbar contents")
	texts, err := pages.NewHomePage(c.Session, c.Log).NavbarTexts()
	if err != nil {
		return err
	}
	c.Log.Info().Strs("content", texts).Msg("navbar content found")
	return scenario.EqualStrings("navigation items do not match", c.Fixtures.Home.HeaderContent, texts)
}

func categoryOptions(c *scenario.Context) error {
	home := pages.NewHomePage(c.Session, c.Log)

	c.Log.Info().Msg("returning to home page")
	if err := click(home.HomeIcon()); err != nil {
		return err
	}
	c.Log.Info().Msg("opening category menu")
	if err := click(home.Category()); err != nil {
		return err
	}
	c.Log.Info().Msg("selecting school option")
	if err := click(home.SchoolOption()); err != nil {
		return err
	}

	source, err := c.Session.PageSource()
	if err != nil {
		return err
	}
	return scenario.Contains("school content not found in page source", source, c.Fixtures.Home.SchoolContent)
}

func signinButton(c *scenario.Context) error {
	c.Log.Info().Msg("opening sign-in page")
	if err := pages.NewSigninPage(c.Session, c.Log).Load(); err != nil {
		return err
	}
	title, err := c.Session.Title()
	if err != nil {
		return err
	}
	return scenario.Equal("sign-in page title is not as expected", c.Fixtures.Signin.PageTitle, title)
}
