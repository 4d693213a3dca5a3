package suites

import (
	"fmt"

	"github.com/adyen/shopcheck/internal/driver"
	"github.com/adyen/shopcheck/internal/driver/drivertest"
	"github.com/adyen/shopcheck/internal/fixtures"
	"github.com/adyen/shopcheck/internal/locator"
	"github.com/adyen/shopcheck/internal/pages"
)

func home(name string) locator.Locator   { return pages.HomeLocators.MustLookup(name) }
func shop(name string) locator.Locator   { return pages.ShopLocators.MustLookup(name) }
func signin(name string) locator.Locator { return pages.SigninLocators.MustLookup(name) }

// store scripts a drivertest session to behave like the storefront the
// suites expect. Every page transition re-renders the session nodes.
type store struct {
	s    *drivertest.Session
	set  *fixtures.Set
	page string
	term string
	cart int

	// brokenDelete keeps items in the cart when delete is clicked
	brokenDelete bool
	// noHeader renders pages without the header block
	noHeader bool
	// staleHeading keeps the result heading empty while the term still
	// appears elsewhere in the page source
	staleHeading bool
}

func newStore(set *fixtures.Set) *store {
	st := &store{s: drivertest.NewSession(), set: set}
	st.s.OnNavigate = func(string) { st.home() }
	st.s.OnReload = st.reload
	return st
}

func (st *store) reset() {
	for _, r := range []*locator.Registry{pages.HomeLocators, pages.ShopLocators, pages.SigninLocators} {
		for _, name := range r.Names() {
			st.s.Remove(r.MustLookup(name))
		}
	}
}

// chrome renders the header shared by home, result and cart pages
func (st *store) chrome() {
	if !st.noHeader {
		st.s.Set(home("header"), drivertest.NewNode(""))
	}

	box := drivertest.NewNode("")
	st.s.Set(home("search"), box)
	search := drivertest.NewNode("")
	search.OnClick = func() { st.results(box.Attrs["value"]) }
	st.s.Set(home("search_button"), search)

	var nav []*drivertest.Node
	for _, text := range st.set.Home.HeaderContent {
		nav = append(nav, drivertest.NewNode(text))
	}
	st.s.Set(home("navbar_content"), nav...)

	icon := drivertest.NewNode("")
	icon.OnClick = st.home
	st.s.Set(home("home_icon"), icon)

	category := drivertest.NewNode("Categories")
	category.OnClick = func() {
		school := drivertest.NewNode(st.set.Home.SchoolContent)
		school.OnClick = func() {
			st.s.SetSource("<html><h1>" + st.set.Home.SchoolContent + "</h1></html>")
		}
		st.s.Set(home("category_overlay"), drivertest.NewNode("").WithChild(home("school_option"), school))
	}
	st.s.Set(home("category"), category)

	cart := drivertest.NewNode("")
	cart.OnClick = st.cartPage
	st.s.Set(shop("cart"), cart)

	account := drivertest.NewNode("Sign in")
	account.OnClick = func() {
		tab := drivertest.NewNode("Sign in or create account")
		tab.OnClick = st.login
		st.s.Set(signin("account_overlay"), drivertest.NewNode(""))
		st.s.Set(signin("signin_tab"), tab)
	}
	st.s.Set(signin("signin_button"), account)
}

func (st *store) home() {
	st.page = "home"
	st.reset()
	st.chrome()
	st.s.SetTitle("Target : Expect More. Pay Less.")
	st.s.SetSource("<html>home</html>")
}

func (st *store) results(term string) {
	st.page = "results"
	st.term = term
	st.reset()
	st.chrome()
	text := "for “" + term + "”"
	heading := text
	if st.staleHeading {
		heading = "results"
	}
	st.s.Set(home("results"), drivertest.NewNode(heading))
	st.s.SetSource("<html><span>" + text + "</span></html>")

	add := drivertest.NewNode(st.set.Shop.AddToCartLabel)
	add.OnClick = st.cartOverlay
	st.s.Set(shop("add_cart"), add)
}

func (st *store) cartOverlay() {
	label := st.set.Shop.AddToCartLabel
	if st.cart > 0 {
		label = "Added to cart"
	}
	add := drivertest.NewNode(label)
	add.OnClick = func() {
		if st.cart > 0 {
			st.s.Set(shop("number_dropdown"), drivertest.NewNode("").WithChild(shop("number"), drivertest.NewNode("3")))
			return
		}
		st.cart++
		checkout := drivertest.NewNode("View cart & check out")
		checkout.OnClick = st.cartPage
		st.s.Set(shop("checkout_overlay"), drivertest.NewNode("").WithChild(shop("go_checkout"), checkout))
	}
	st.s.Set(shop("cart_overlay"), drivertest.NewNode("").WithChild(shop("overlay_add"), add))
}

func (st *store) cartPage() {
	st.page = "cart"
	st.reset()
	st.chrome()

	message := drivertest.NewNode(st.set.Shop.EmptyCartMessage)
	st.s.Set(shop("cart_message"), message)
	if st.cart == 0 {
		return
	}
	message.Text = "Cart"
	st.s.Set(shop("items"), drivertest.NewNode(fmt.Sprintf("%d item", st.cart)))

	var buttons []*drivertest.Node
	for i := 0; i < st.cart; i++ {
		b := drivertest.NewNode("")
		b.OnClick = func() {
			if st.brokenDelete {
				return
			}
			st.cart--
			if st.cart == 0 {
				message.Text = st.set.Shop.EmptyCartMessage
			}
		}
		buttons = append(buttons, b)
	}
	st.s.Set(shop("cart_page"), buttons[0])
	st.s.Set(shop("delete_button"), buttons...)
}

func (st *store) login() {
	st.page = "login"
	st.reset()
	st.s.SetTitle(st.set.Signin.PageTitle)

	email := drivertest.NewNode("")
	password := drivertest.NewNode("").WithAttr("type", st.set.Signin.HiddenPasswordType)
	show := drivertest.NewNode("show")
	show.OnClick = func() { password.Attrs["type"] = st.set.Signin.ShownPasswordType }
	hide := drivertest.NewNode("hide")
	hide.OnClick = func() { password.Attrs["type"] = st.set.Signin.HiddenPasswordType }

	login := drivertest.NewNode("Sign in")
	login.OnClick = func() { st.submit(email.Attrs["value"], password.Attrs["value"]) }

	st.s.Set(signin("email"), email)
	st.s.Set(signin("password"), password)
	st.s.Set(signin("show_button"), show)
	st.s.Set(signin("hide_button"), hide)
	st.s.Set(signin("login"), login)

	// the form fades in after every render
	for _, n := range []*drivertest.Node{email, password, show, hide, login} {
		n.PollsUntilVisible = 2
	}
}

func (st *store) submit(email, password string) {
	st.s.Remove(signin("email_error"))
	st.s.Remove(signin("password_error"))

	data := st.set.Signin
	switch {
	case email == data.ValidEmail && password == data.ValidPassword:
		st.s.Set(signin("user_greeting"), drivertest.NewNode(data.Greeting))
		return
	case email == "":
		st.s.Set(signin("email_error"), drivertest.NewNode(data.EmailRequiredError))
	default:
		st.s.Set(signin("email_error"), drivertest.NewNode(data.InvalidEmailError))
	}
	if password == "" {
		st.s.Set(signin("password_error"), drivertest.NewNode(data.PasswordRequiredError))
	}
}

func (st *store) reload() {
	switch st.page {
	case "results":
		st.results(st.term)
	case "cart":
		st.cartPage()
	case "login":
		st.login()
	default:
		st.home()
	}
}

// storeSessions opens a fresh store per suite
type storeSessions struct {
	set    *fixtures.Set
	tweak  func(*store)
	stores []*store
}

func (f *storeSessions) NewSession() (driver.Session, error) {
	st := newStore(f.set)
	if f.tweak != nil {
		f.tweak(st)
	}
	f.stores = append(f.stores, st)
	return st.s, nil
}
