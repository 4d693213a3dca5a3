package suites

import (
	"github.com/adyen/shopcheck/internal/fixtures"
	"github.com/adyen/shopcheck/internal/pages"
	"github.com/adyen/shopcheck/internal/scenario"
)

// Signin checks the sign-in form with one invalid_username scenario per
// invalid credential in set. Scenarios run in order on the dialog opened by
// no_input_signin.
func Signin(set *fixtures.Set) scenario.Suite {
	scenarios := []scenario.Scenario{
		{Name: "no_input_signin", Tags: []string{scenario.TagSmoke}, Run: noInputSignin},
		{Name: "only_password", Run: onlyPassword},
	}
	for _, cred := range set.Signin.InvalidCredentials {
		scenarios = append(scenarios, scenario.Scenario{
			Name: "invalid_username/" + cred.Email,
			Run:  invalidUsername(cred),
		})
	}
	scenarios = append(scenarios,
		scenario.Scenario{Name: "password_masked", Run: passwordMasked},
		scenario.Scenario{Name: "hide_button", Run: hideButton},
		scenario.Scenario{Name: "valid_signin", Run: validSignin},
	)
	return scenario.Suite{Name: "signin", Scenarios: scenarios}
}

func noInputSignin(c *scenario.Context) error {
	signin := pages.NewSigninPage(c.Session, c.Log)

	c.Log.Info().Msg("opening sign-in page")
	if err := signin.Load(); err != nil {
		return err
	}
	c.Log.Info().Msg("submitting empty form")
	if err := signin.Submit("", ""); err != nil {
		return err
	}

	emailErr, err := signin.EmailErrorText()
	if err != nil {
		return err
	}
	passErr, err := signin.PasswordErrorText()
	if err != nil {
		return err
	}
	if err := scenario.Equal("email error message is not as expected", c.Fixtures.Signin.EmailRequiredError, emailErr); err != nil {
		return err
	}
	return scenario.Equal("password error message is not as expected", c.Fixtures.Signin.PasswordRequiredError, passErr)
}

func onlyPassword(c *scenario.Context) error {
	signin := pages.NewSigninPage(c.Session, c.Log)

	c.Log.Info().Msg("submitting password only")
	if err := signin.Submit("", c.Fixtures.Signin.DummyPassword); err != nil {
		return err
	}
	msg, err := signin.EmailErrorText()
	if err != nil {
		return err
	}
	return scenario.Equal("email error message is not as expected", c.Fixtures.Signin.EmailRequiredError, msg)
}

func invalidUsername(cred fixtures.Credential) scenario.Func {
	return func(c *scenario.Context) error {
		if err := reload(c); err != nil {
			return err
		}
		signin := pages.NewSigninPage(c.Session, c.Log)

		c.Log.Info().Str("email", cred.Email).Msg("submitting invalid credentials")
		if err := signin.Submit(cred.Email, cred.Password); err != nil {
			return err
		}
		msg, err := signin.EmailErrorText()
		if err != nil {
			return err
		}
		return scenario.Equal("invalid email error is not displayed", c.Fixtures.Signin.InvalidEmailError, msg)
	}
}

func passwordMasked(c *scenario.Context) error {
	signin := pages.NewSigninPage(c.Session, c.Log)

	if err := signin.EnterPassword(c.Fixtures.Signin.DummyPassword); err != nil {
		return err
	}
	typ, err := signin.PasswordType()
	if err != nil {
		return err
	}
	return scenario.Equal("password is not masked", c.Fixtures.Signin.HiddenPasswordType, typ)
}

func hideButton(c *scenario.Context) error {
	if err := reload(c); err != nil {
		return err
	}
	signin := pages.NewSigninPage(c.Session, c.Log)
	if err := signin.EnterPassword(c.Fixtures.Signin.DummyPassword); err != nil {
		return err
	}

	c.Log.Info().Msg("revealing password")
	if err := signin.ShowPassword(); err != nil {
		return err
	}
	typ, err := signin.PasswordType()
	if err != nil {
		return err
	}
	if err := scenario.Equal("show button did not reveal the password", c.Fixtures.Signin.ShownPasswordType, typ); err != nil {
		return err
	}

	c.Log.Info().Msg("hiding password")
	if err := signin.HidePassword(); err != nil {
		return err
	}
	typ, err = signin.PasswordType()
	if err != nil {
		return err
	}
	return scenario.Equal("hide button did not conceal the password", c.Fixtures.Signin.HiddenPasswordType, typ)
}

func validSignin(c *scenario.Context) error {
	if err := reload(c); err != nil {
		return err
	}
	signin := pages.NewSigninPage(c.Session, c.Log)

	c.Log.Info().Msg("submitting valid credentials")
	if err := signin.Submit(c.Fixtures.Signin.ValidEmail, c.Fixtures.Signin.ValidPassword); err != nil {
		return err
	}
	msg, err := signin.GreetingText()
	if err != nil {
		return err
	}
	return scenario.Equal("user greeting is not displayed correctly", c.Fixtures.Signin.Greeting, msg)
}
