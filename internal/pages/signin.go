package pages

import (
	"fmt"

	"github.com/adyen/shopcheck/internal/driver"
	"github.com/adyen/shopcheck/internal/locator"
	"github.com/adyen/shopcheck/internal/wait"
	"github.com/rs/zerolog"
)

// SigninLocators are the element locators of the account dialog
var SigninLocators = locator.NewRegistry("signin", map[string]locator.Locator{
	"signin_button":   locator.XPath("//span[text()='Sign in']"),
	"account_overlay": locator.XPath("//div[@role='dialog']"),
	"signin_tab":      locator.XPath("//span[@class = 'sc-859e7637-0 hHZPQy']"),
	"login":           locator.ID("login"),
	"email_error":     locator.ID("username--ErrorMessage"),
	"password_error":  locator.ID("password--ErrorMessage"),
	"password":        locator.ID("password"),
	"email":           locator.ID("username"),
	"show_button":     locator.XPath("//button[text()='show']"),
	"hide_button":     locator.XPath("//button[text()='hide']"),
	"user_greeting":   locator.CSS("span[class='sc-58ad44c0-3 kwbrXj h-margin-r-x3']"),
})

// SigninPage is the sign-in dialog opened from the header
type SigninPage struct {
	session driver.Session
	wait    *wait.Waiter
	log     zerolog.Logger
}

// NewSigninPage wraps session with the sign-in operations
func NewSigninPage(session driver.Session, log zerolog.Logger) *SigninPage {
	return &SigninPage{
		session: session,
		wait:    wait.New(session, wait.DefaultTimeout, log),
		log:     log,
	}
}

// SigninButton waits for the header "Sign in" entry to be clickable
func (p *SigninPage) SigninButton() (driver.Element, error) {
	return p.wait.Clickable(SigninLocators.MustLookup("signin_button"))
}

// SigninTab waits for the account overlay and then its sign-in tab
func (p *SigninPage) SigninTab() (driver.Element, error) {
	if _, err := p.wait.Visible(SigninLocators.MustLookup("account_overlay")); err != nil {
		return nil, err
	}
	return p.wait.Clickable(SigninLocators.MustLookup("signin_tab"))
}

// Load opens the sign-in form
func (p *SigninPage) Load() error {
	button, err := p.SigninButton()
	if err != nil {
		return err
	}
	if err := button.Click(); err != nil {
		return fmt.Errorf("failed to open account menu: %w", err)
	}
	tab, err := p.SigninTab()
	if err != nil {
		return err
	}
	if err := tab.Click(); err != nil {
		return fmt.Errorf("failed to open sign-in form: %w", err)
	}
	return nil
}

// LoginButton waits for the form submit button to be clickable
func (p *SigninPage) LoginButton() (driver.Element, error) {
	return p.wait.Clickable(SigninLocators.MustLookup("login"))
}

// EmailError waits for the message shown under the email field
func (p *SigninPage) EmailError() (driver.Element, error) {
	return p.wait.Visible(SigninLocators.MustLookup("email_error"))
}

// PasswordError waits for the message shown under the password field
func (p *SigninPage) PasswordError() (driver.Element, error) {
	return p.wait.Visible(SigninLocators.MustLookup("password_error"))
}

// PasswordInput waits for the password field to be visible
func (p *SigninPage) PasswordInput() (driver.Element, error) {
	return p.wait.Visible(SigninLocators.MustLookup("password"))
}

// EmailInput waits for the email or phone field to be visible
func (p *SigninPage) EmailInput() (driver.Element, error) {
	return p.wait.Visible(SigninLocators.MustLookup("email"))
}

// ShowButton waits for the toggle that reveals the password
func (p *SigninPage) ShowButton() (driver.Element, error) {
	return p.wait.Clickable(SigninLocators.MustLookup("show_button"))
}

// HideButton waits for the toggle that masks the password again
func (p *SigninPage) HideButton() (driver.Element, error) {
	return p.wait.Clickable(SigninLocators.MustLookup("hide_button"))
}

// UserGreeting waits for the greeting shown after a successful sign-in
func (p *SigninPage) UserGreeting() (driver.Element, error) {
	return p.wait.Visible(SigninLocators.MustLookup("user_greeting"))
}

// Submit types the non-empty values into the form and clicks login
func (p *SigninPage) Submit(email, password string) error {
	if email != "" {
		if err := typeInto(p.EmailInput, email); err != nil {
			return fmt.Errorf("failed to enter email: %w", err)
		}
	}
	if password != "" {
		if err := typeInto(p.PasswordInput, password); err != nil {
			return fmt.Errorf("failed to enter password: %w", err)
		}
	}
	login, err := p.LoginButton()
	if err != nil {
		return err
	}
	if err := login.Click(); err != nil {
		return fmt.Errorf("failed to click login: %w", err)
	}
	return nil
}

// EnterPassword types password without submitting the form
func (p *SigninPage) EnterPassword(password string) error {
	return typeInto(p.PasswordInput, password)
}

// ShowPassword clicks the show toggle of the password field
func (p *SigninPage) ShowPassword() error {
	return clickOn(p.ShowButton)
}

// HidePassword clicks the hide toggle of the password field
func (p *SigninPage) HidePassword() error {
	return clickOn(p.HideButton)
}

// PasswordType returns the type attribute of the password field
func (p *SigninPage) PasswordType() (string, error) {
	input, err := p.PasswordInput()
	if err != nil {
		return "", err
	}
	return input.Attribute("type")
}

// EmailErrorText returns the email error message once visible
func (p *SigninPage) EmailErrorText() (string, error) {
	return textOf(p.EmailError())
}

// PasswordErrorText returns the password error message once visible
func (p *SigninPage) PasswordErrorText() (string, error) {
	return textOf(p.PasswordError())
}

// GreetingText returns the greeting shown after a successful sign-in
func (p *SigninPage) GreetingText() (string, error) {
	return textOf(p.UserGreeting())
}

func typeInto(find func() (driver.Element, error), text string) error {
	el, err := find()
	if err != nil {
		return err
	}
	return el.SendKeys(text)
}

func clickOn(find func() (driver.Element, error)) error {
	el, err := find()
	if err != nil {
		return err
	}
	return el.Click()
}
