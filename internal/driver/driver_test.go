package driver

import (
	"errors"
	"testing"
	"time"

	"github.com/adyen/shopcheck/internal/config"
	"github.com/adyen/shopcheck/internal/locator"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaywrightSelector(t *testing.T) {
	tests := []struct {
		name string
		loc  locator.Locator
		want string
	}{
		{name: "xpath", loc: locator.XPath("//button[@type='submit']"), want: "xpath=//button[@type='submit']"},
		{name: "id", loc: locator.ID("search"), want: `css=[id="search"]`},
		{name: "css", loc: locator.CSS("span.kwbrXj"), want: "css=span.kwbrXj"},
		{name: "link text", loc: locator.LinkText("Categories"), want: "xpath=//a[normalize-space(.)='Categories']"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, playwrightSelector(tt.loc))
		})
	}
}

func TestChromedpQuery(t *testing.T) {
	// GIVEN
	xp := locator.XPath("//h1")
	id := locator.ID("login")

	// WHEN
	xpSel, _ := chromedpQuery(xp)
	idSel, _ := chromedpQuery(id)

	// THEN
	assert.Equal(t, "//h1", xpSel)
	assert.Equal(t, `[id="login"]`, idSel)
}

func TestErrorHelpersWrapSentinels(t *testing.T) {
	loc := locator.ID("password")

	nf := notFound(loc)
	to := timedOut(loc, ConditionVisible, 10*time.Second)

	assert.True(t, errors.Is(nf, ErrElementNotFound))
	assert.True(t, errors.Is(to, ErrWaitTimeout))
	assert.Contains(t, to.Error(), "not visible after 10s")
	assert.Contains(t, nf.Error(), `id="password"`)
}

func TestLaunch_UnknownDriver(t *testing.T) {
	// GIVEN
	cfg := &config.BrowserConfig{Driver: "selenium"}

	// WHEN
	l, err := Launch(cfg, zerolog.Nop())

	// THEN
	require.Error(t, err)
	assert.Nil(t, l)
	assert.True(t, errors.Is(err, ErrUnknownDriver))
}

type countingLauncher struct {
	closes int
}

func (l *countingLauncher) NewSession() (Session, error) { return nil, errors.New("no browser") }

func (l *countingLauncher) Close() error {
	l.closes++
	return errors.New("playwright already stopped")
}

func TestCloseOnce_StopsBrowserOnce(t *testing.T) {
	// GIVEN
	inner := &countingLauncher{}
	l := closeOnce(inner)

	// WHEN
	first := l.Close()
	second := l.Close()

	// THEN
	assert.Equal(t, 1, inner.closes)
	assert.EqualError(t, first, "playwright already stopped")
	assert.Equal(t, first, second)
}
