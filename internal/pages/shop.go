package pages

import (
	"fmt"

	"github.com/adyen/shopcheck/internal/driver"
	"github.com/adyen/shopcheck/internal/locator"
	"github.com/adyen/shopcheck/internal/wait"
	"github.com/rs/zerolog"
)

// ShopLocators are the element locators of the search result and cart pages.
// overlay_add, go_checkout and number are looked up inside their overlay.
var ShopLocators = locator.NewRegistry("shop", map[string]locator.Locator{
	"cart":             locator.XPath("//div[@data-test='@web/CartIcon']"),
	"cart_message":     locator.XPath("//h1[@class='sc-fe064f5c-0 dtCtuk']"),
	"add_cart":         locator.XPath("(//button[text()='Add to cart'])[1]"),
	"cart_overlay":     locator.XPath("//div[@class='sc-21fc04c0-2 JduZg']"),
	"overlay_add":      locator.XPath("//div[@class='sc-529a2ea7-0 hbiLND']"),
	"checkout_overlay": locator.XPath("//div[@class='sc-21fc04c0-2 biCmcH']"),
	"cart_page":        locator.XPath("//button[@data-test='cartItem-deleteBtn']"),
	"go_checkout":      locator.LinkText("View cart & check out"),
	"items":            locator.XPath("//span[@class = 'sc-93ec7147-3 fUVkzh']"),
	"number_dropdown":  locator.XPath("//ul[@class='sc-5a11d645-0 fPEaaU']"),
	"number":           locator.XPath("//li[3]"),
	"delete_button":    locator.XPath("//button[@data-test='cartItem-deleteBtn']"),
})

// ShopPage covers search results, the add-to-cart overlays and the cart
type ShopPage struct {
	session driver.Session
	wait    *wait.Waiter
	log     zerolog.Logger
}

// NewShopPage wraps session with the shop page operations
func NewShopPage(session driver.Session, log zerolog.Logger) *ShopPage {
	return &ShopPage{
		session: session,
		wait:    wait.New(session, wait.ShopTimeout, log),
		log:     log,
	}
}

// Cart waits for the cart icon to be clickable
func (p *ShopPage) Cart() (driver.Element, error) {
	return p.wait.Clickable(ShopLocators.MustLookup("cart"))
}

// CartMessage waits for the cart heading
func (p *ShopPage) CartMessage() (driver.Element, error) {
	return p.wait.Visible(ShopLocators.MustLookup("cart_message"))
}

// Items waits for the cart item count label
func (p *ShopPage) Items() (driver.Element, error) {
	return p.wait.Visible(ShopLocators.MustLookup("items"))
}

// AddToCart waits for the first "Add to cart" button of the result list
func (p *ShopPage) AddToCart() (driver.Element, error) {
	return p.wait.Clickable(ShopLocators.MustLookup("add_cart"))
}

// OverlayAdd waits for the cart overlay and returns its add button
func (p *ShopPage) OverlayAdd() (driver.Element, error) {
	return p.inside("cart_overlay", "overlay_add")
}

// Checkout waits for the checkout overlay and returns its
// "View cart & check out" link
func (p *ShopPage) Checkout() (driver.Element, error) {
	return p.inside("checkout_overlay", "go_checkout")
}

// Number waits for the quantity dropdown and returns its third option
func (p *ShopPage) Number() (driver.Element, error) {
	return p.inside("number_dropdown", "number")
}

// DeleteButtons waits for the cart page and returns every delete button
func (p *ShopPage) DeleteButtons() ([]driver.Element, error) {
	if _, err := p.wait.Visible(ShopLocators.MustLookup("cart_page")); err != nil {
		return nil, err
	}
	return p.session.FindAll(ShopLocators.MustLookup("delete_button"))
}

// OpenCart clicks the cart icon
func (p *ShopPage) OpenCart() error {
	cart, err := p.Cart()
	if err != nil {
		return err
	}
	if err := cart.Click(); err != nil {
		return fmt.Errorf("failed to open cart: %w", err)
	}
	return nil
}

// CartMessageText returns the cart heading text
func (p *ShopPage) CartMessageText() (string, error) {
	return textOf(p.CartMessage())
}

// ItemCountText returns the cart item count label
func (p *ShopPage) ItemCountText() (string, error) {
	return textOf(p.Items())
}

// OverlayAddText returns the label of the overlay add button
func (p *ShopPage) OverlayAddText() (string, error) {
	return textOf(p.OverlayAdd())
}

// RemoveAll clicks every delete button on the cart page and returns how
// many were clicked
func (p *ShopPage) RemoveAll() (int, error) {
	buttons, err := p.DeleteButtons()
	if err != nil {
		return 0, err
	}
	for i, b := range buttons {
		if err := b.Click(); err != nil {
			return i, fmt.Errorf("failed to remove cart item %d: %w", i+1, err)
		}
	}
	p.log.Debug().Int("removed", len(buttons)).Msg("cart items removed")
	return len(buttons), nil
}

func (p *ShopPage) inside(container, child string) (driver.Element, error) {
	parent, err := p.wait.Visible(ShopLocators.MustLookup(container))
	if err != nil {
		return nil, err
	}
	return parent.Find(ShopLocators.MustLookup(child))
}

func textOf(el driver.Element, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return el.Text()
}
