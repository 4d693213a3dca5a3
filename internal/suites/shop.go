package suites

import (
	"github.com/adyen/shopcheck/internal/pages"
	"github.com/adyen/shopcheck/internal/scenario"
)

// Shop checks the cart: the empty state, adding an item and removing items
func Shop() scenario.Suite {
	return scenario.Suite{
		Name: "shop",
		Scenarios: []scenario.Scenario{
			{Name: "initial_cart_status", Tags: []string{scenario.TagSmoke}, Run: initialCartStatus},
			{Name: "adding_to_cart", Run: addingToCart},
			{Name: "remove_cart_item", Run: removeCartItem},
		},
	}
}

func initialCartStatus(c *scenario.Context) error {
	shop := pages.NewShopPage(c.Session, c.Log)

	c.Log.Info().Msg("opening cart")
	if err := shop.OpenCart(); err != nil {
		return err
	}
	msg, err := shop.CartMessageText()
	if err != nil {
		return err
	}
	return scenario.Equal("cart is not empty", c.Fixtures.Shop.EmptyCartMessage, msg)
}

func searchFirstItem(c *scenario.Context) (*pages.ShopPage, error) {
	term := c.Fixtures.Home.SearchItems[0]
	c.Log.Info().Str("term", term).Msg("searching item to add")
	return pages.NewHomePage(c.Session, c.Log).SearchItem(term)
}

func addingToCart(c *scenario.Context) error {
	if err := reload(c); err != nil {
		return err
	}
	shop, err := searchFirstItem(c)
	if err != nil {
		return err
	}

	c.Log.Info().Msg("adding first item to cart")
	if err := click(shop.AddToCart()); err != nil {
		return err
	}
	if err := click(shop.OverlayAdd()); err != nil {
		return err
	}
	c.Log.Info().Msg("proceeding to checkout")
	if err := click(shop.Checkout()); err != nil {
		return err
	}
	if err := reload(c); err != nil {
		return err
	}

	if err := shop.OpenCart(); err != nil {
		return err
	}
	count, err := shop.ItemCountText()
	if err != nil {
		return err
	}
	c.Log.Info().Str("count", count).Msg("verifying item count")
	return scenario.Contains("expected item count not found in cart", count, c.Fixtures.Shop.ExpectedItemCount)
}

func removeCartItem(c *scenario.Context) error {
	shop, err := searchFirstItem(c)
	if err != nil {
		return err
	}
	if err := click(shop.AddToCart()); err != nil {
		return err
	}

	label, err := shop.OverlayAddText()
	if err != nil {
		return err
	}
	if err := click(shop.OverlayAdd()); err != nil {
		return err
	}

	if label != c.Fixtures.Shop.AddToCartLabel {
		c.Log.Info().Str("label", label).Msg("item already in cart, selecting quantity")
		if err := click(shop.Number()); err != nil {
			return err
		}
		if err := reload(c); err != nil {
			return err
		}
		if err := shop.OpenCart(); err != nil {
			return err
		}
	} else {
		c.Log.Info().Msg("item added, proceeding to checkout")
		if err := click(shop.Checkout()); err != nil {
			return err
		}
	}

	c.Log.Info().Msg("removing all items from cart")
	if _, err := shop.RemoveAll(); err != nil {
		return err
	}
	msg, err := shop.CartMessageText()
	if err != nil {
		return err
	}
	return scenario.Equal("cart is not empty after removing items", c.Fixtures.Shop.EmptyCartMessage, msg)
}
