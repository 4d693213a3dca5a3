// Package pages exposes the storefront pages as flat wrappers over a driver
// session. Pages keep no state besides the session and its waiter.
package pages

import (
	"fmt"

	"github.com/adyen/shopcheck/internal/driver"
	"github.com/adyen/shopcheck/internal/locator"
	"github.com/adyen/shopcheck/internal/wait"
	"github.com/rs/zerolog"
)

// HomeLocators are the element locators of the home page
var HomeLocators = locator.NewRegistry("home", map[string]locator.Locator{
	"header":           locator.XPath("//div[@class='sc-cfda7d4b-0 fUeOuH']"),
	"search":           locator.ID("search"),
	"search_button":    locator.XPath("//button[@type='submit']"),
	"results":          locator.XPath("//span[@class='h-margin-r-x1']"),
	"navbar_content":   locator.XPath("//div[@class='sc-ab4ee1d1-4 idfyjy']"),
	"home_icon":        locator.XPath("//a[@aria-label='Target home']"),
	"category":         locator.LinkText("Categories"),
	"category_overlay": locator.XPath("//div[@id='overlay-:Rjkmuqlm:']"),
	"school_option":    locator.XPath("(//span[text()='Back to School'])[2]"),
})

// HomePage is the storefront landing page
type HomePage struct {
	session driver.Session
	wait    *wait.Waiter
	log     zerolog.Logger
}

// NewHomePage wraps session with the home page operations
func NewHomePage(session driver.Session, log zerolog.Logger) *HomePage {
	return &HomePage{
		session: session,
		wait:    wait.New(session, wait.DefaultTimeout, log),
		log:     log,
	}
}

// Header returns the page header
func (p *HomePage) Header() (driver.Element, error) {
	return p.session.Find(HomeLocators.MustLookup("header"))
}

// SearchBox returns the search input
func (p *HomePage) SearchBox() (driver.Element, error) {
	return p.session.Find(HomeLocators.MustLookup("search"))
}

// SearchButton returns the search submit button
func (p *HomePage) SearchButton() (driver.Element, error) {
	return p.session.Find(HomeLocators.MustLookup("search_button"))
}

// WaitForResults blocks until the search result heading is visible
func (p *HomePage) WaitForResults() error {
	_, err := p.wait.Visible(HomeLocators.MustLookup("results"))
	return err
}

// ResultsText returns the text of the search result heading once visible
func (p *HomePage) ResultsText() (string, error) {
	el, err := p.wait.Visible(HomeLocators.MustLookup("results"))
	if err != nil {
		return "", err
	}
	return el.Text()
}

// NavbarContents returns every entry of the top navigation bar
func (p *HomePage) NavbarContents() ([]driver.Element, error) {
	return p.session.FindAll(HomeLocators.MustLookup("navbar_content"))
}

// NavbarTexts returns the text of every navigation bar entry in order
func (p *HomePage) NavbarTexts() ([]string, error) {
	entries, err := p.NavbarContents()
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		text, err := e.Text()
		if err != nil {
			return nil, fmt.Errorf("failed to read navbar entry: %w", err)
		}
		texts = append(texts, text)
	}
	return texts, nil
}

// HomeIcon returns the logo link back to the home page
func (p *HomePage) HomeIcon() (driver.Element, error) {
	return p.session.Find(HomeLocators.MustLookup("home_icon"))
}

// Category waits for the categories menu link to be visible
func (p *HomePage) Category() (driver.Element, error) {
	return p.wait.Visible(HomeLocators.MustLookup("category"))
}

// SchoolOption waits for the category overlay and returns its
// "Back to School" entry
func (p *HomePage) SchoolOption() (driver.Element, error) {
	overlay, err := p.wait.Visible(HomeLocators.MustLookup("category_overlay"))
	if err != nil {
		return nil, err
	}
	return overlay.Find(HomeLocators.MustLookup("school_option"))
}

// SearchItem searches for term and returns the result page
func (p *HomePage) SearchItem(term string) (*ShopPage, error) {
	box, err := p.SearchBox()
	if err != nil {
		return nil, err
	}
	if err := box.SendKeys(term); err != nil {
		return nil, fmt.Errorf("failed to type search term: %w", err)
	}
	button, err := p.SearchButton()
	if err != nil {
		return nil, err
	}
	if err := button.Click(); err != nil {
		return nil, fmt.Errorf("failed to submit search: %w", err)
	}
	p.log.Debug().Str("term", term).Msg("search submitted")
	return NewShopPage(p.session, p.log), nil
}
