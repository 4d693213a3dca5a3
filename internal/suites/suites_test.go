package suites

import (
	"testing"

	"github.com/adyen/shopcheck/internal/fixtures"
	"github.com/adyen/shopcheck/internal/scenario"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://www.target.com/"

func names(s scenario.Suite) []string {
	var out []string
	for _, sc := range s.Scenarios {
		out = append(out, sc.Name)
	}
	return out
}

func runSuites(t *testing.T, factory *storeSessions, suites ...scenario.Suite) []scenario.Result {
	t.Helper()
	return scenario.NewRunner(factory, factory.set, baseURL, zerolog.Nop()).Run(suites)
}

func requireAllPassed(t *testing.T, results []scenario.Result) {
	t.Helper()
	for _, r := range results {
		require.NoError(t, r.Err, "%s/%s", r.Suite, r.Name)
	}
}

func TestAll_DeclarationOrder(t *testing.T) {
	set := fixtures.MustDefault()
	all := All(set)

	require.Len(t, all, 3)
	assert.Equal(t, []string{"homepage_load", "search_button", "nav_items", "category_options", "signin_button"}, names(all[0]))
	assert.Equal(t, []string{"initial_cart_status", "adding_to_cart", "remove_cart_item"}, names(all[1]))
	assert.Equal(t, []string{
		"no_input_signin",
		"only_password",
		"invalid_username/dummy1234",
		"invalid_username/dummy_email@email",
		"invalid_username/dummyeamil2@.com",
		"invalid_username/123456",
		"invalid_username/dummy.com",
		"password_masked",
		"hide_button",
		"valid_signin",
	}, names(all[2]))
}

func TestAll_SmokeScenarios(t *testing.T) {
	smoke := scenario.Filter{Tags: []string{scenario.TagSmoke}}.Apply(All(fixtures.MustDefault()))

	var got []string
	for _, s := range smoke {
		got = append(got, names(s)...)
	}
	assert.Equal(t, []string{"homepage_load", "initial_cart_status", "no_input_signin"}, got)
}

func TestHome_PassesAgainstStore(t *testing.T) {
	// GIVEN
	factory := &storeSessions{set: fixtures.MustDefault()}

	// WHEN
	results := runSuites(t, factory, Home())

	// THEN
	require.Len(t, results, 5)
	requireAllPassed(t, results)
	assert.Equal(t, "login", factory.stores[0].page)
}

func TestShop_PassesAgainstStore(t *testing.T) {
	// GIVEN
	factory := &storeSessions{set: fixtures.MustDefault()}

	// WHEN
	results := runSuites(t, factory, Shop())

	// THEN
	require.Len(t, results, 3)
	requireAllPassed(t, results)
	assert.Zero(t, factory.stores[0].cart)
	assert.Equal(t, 3, factory.stores[0].s.Reloads)
}

func TestShop_RemoveFromFreshCart(t *testing.T) {
	factory := &storeSessions{set: fixtures.MustDefault()}
	only := scenario.Filter{Scenarios: []string{"remove_cart_item"}}.Apply([]scenario.Suite{Shop()})

	results := runSuites(t, factory, only...)

	require.Len(t, results, 1)
	requireAllPassed(t, results)
	assert.Zero(t, factory.stores[0].s.Reloads)
}

func TestSignin_PassesAgainstStore(t *testing.T) {
	set := fixtures.MustDefault()
	factory := &storeSessions{set: set}

	results := runSuites(t, factory, Signin(set))

	require.Len(t, results, 10)
	requireAllPassed(t, results)
}

func TestSignin_UsesOverriddenCredentials(t *testing.T) {
	set := *fixtures.MustDefault()
	set.Signin.InvalidCredentials = []fixtures.Credential{{Email: "nobody", Password: "x"}}

	suite := Signin(&set)

	assert.Contains(t, names(suite), "invalid_username/nobody")
	assert.NotContains(t, names(suite), "invalid_username/dummy1234")
}

func TestSuites_ReportFailureKinds(t *testing.T) {
	tests := []struct {
		name     string
		tweak    func(*store)
		suite    scenario.Suite
		scenario string
		want     scenario.Kind
	}{
		{
			name:     "missing header",
			tweak:    func(st *store) { st.noHeader = true },
			suite:    Home(),
			scenario: "homepage_load",
			want:     scenario.KindElementNotFound,
		},
		{
			name:     "result heading without the term",
			tweak:    func(st *store) { st.staleHeading = true },
			suite:    Home(),
			scenario: "search_button",
			want:     scenario.KindAssertion,
		},
		{
			name:     "cart keeps its items",
			tweak:    func(st *store) { st.brokenDelete = true },
			suite:    Shop(),
			scenario: "remove_cart_item",
			want:     scenario.KindAssertion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			factory := &storeSessions{set: fixtures.MustDefault(), tweak: tt.tweak}
			only := scenario.Filter{Scenarios: []string{tt.scenario}}.Apply([]scenario.Suite{tt.suite})

			// WHEN
			results := runSuites(t, factory, only...)

			// THEN
			require.Len(t, results, 1)
			assert.False(t, results[0].Passed())
			assert.Equal(t, tt.want, results[0].Kind, "%v", results[0].Err)
		})
	}
}
