// Package fixtures holds the expected values the scenarios assert against.
// The data ships embedded and is parsed once per process.
package fixtures

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var data embed.FS

// Home holds expected values for the home page
type Home struct {
	Title         string   `yaml:"title"`
	SearchItems   []string `yaml:"searchItems"`
	HeaderContent []string `yaml:"headerContent"`
	SchoolContent string   `yaml:"schoolContent"`
}

// SearchResultText is the phrase the result page shows for term
func (h Home) SearchResultText(term string) string {
	return "for “" + term + "”"
}

// Shop holds expected values for the cart
type Shop struct {
	EmptyCartMessage  string `yaml:"emptyCartMessage"`
	ExpectedItemCount string `yaml:"expectedItemCount"`
	AddToCartLabel    string `yaml:"addToCartLabel"`
}

// Credential is one email/password pair
type Credential struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// Signin holds expected values for the sign-in dialog
type Signin struct {
	PageTitle             string       `yaml:"pageTitle"`
	PasswordRequiredError string       `yaml:"passwordRequiredError"`
	EmailRequiredError    string       `yaml:"emailRequiredError"`
	InvalidEmailError     string       `yaml:"invalidEmailError"`
	DummyPassword         string       `yaml:"dummyPassword"`
	HiddenPasswordType    string       `yaml:"hiddenPasswordType"`
	ShownPasswordType     string       `yaml:"shownPasswordType"`
	ValidEmail            string       `yaml:"validEmail"`
	ValidPassword         string       `yaml:"validPassword"`
	Greeting              string       `yaml:"greeting"`
	InvalidCredentials    []Credential `yaml:"invalidCredentials"`
}

// Set is the complete fixture data
type Set struct {
	Home   Home   `yaml:"home"`
	Shop   Shop   `yaml:"shop"`
	Signin Signin `yaml:"signin"`
}

// ErrInvalidFixtures is returned when fixture data is incomplete
var ErrInvalidFixtures = errors.New("invalid fixtures")

var (
	defaultOnce sync.Once
	defaultSet  *Set
	defaultErr  error
)

// Default returns the embedded fixture data, parsed on first use
func Default() (*Set, error) {
	defaultOnce.Do(func() {
		defaultSet, defaultErr = loadEmbedded()
	})
	return defaultSet, defaultErr
}

// MustDefault is Default for callers that cannot continue without fixtures
func MustDefault() *Set {
	set, err := Default()
	if err != nil {
		panic(err)
	}
	return set
}

func loadEmbedded() (*Set, error) {
	var set Set
	parts := []struct {
		file string
		into interface{}
	}{
		{"data/home.yaml", &set.Home},
		{"data/shop.yaml", &set.Shop},
		{"data/signin.yaml", &set.Signin},
	}
	for _, p := range parts {
		raw, err := data.ReadFile(p.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p.file, err)
		}
		if err := yaml.Unmarshal(raw, p.into); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", p.file, err)
		}
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// LoadFile reads a fixture override file with home, shop and signin
// sections. Sections missing from the file keep their embedded values.
func LoadFile(path string) (*Set, error) {
	base, err := Default()
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path) //#nosec G304 -- user-provided fixture file
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}

	set := *base
	if err := yaml.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// Validate reports the first required value that is empty
func (s *Set) Validate() error {
	required := map[string]string{
		"home.title":                   s.Home.Title,
		"home.schoolContent":           s.Home.SchoolContent,
		"shop.emptyCartMessage":        s.Shop.EmptyCartMessage,
		"shop.expectedItemCount":       s.Shop.ExpectedItemCount,
		"signin.pageTitle":             s.Signin.PageTitle,
		"signin.passwordRequiredError": s.Signin.PasswordRequiredError,
		"signin.emailRequiredError":    s.Signin.EmailRequiredError,
		"signin.invalidEmailError":     s.Signin.InvalidEmailError,
		"signin.hiddenPasswordType":    s.Signin.HiddenPasswordType,
		"signin.shownPasswordType":     s.Signin.ShownPasswordType,
	}
	for _, key := range sortedKeys(required) {
		if required[key] == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidFixtures, key)
		}
	}
	if len(s.Home.SearchItems) == 0 {
		return fmt.Errorf("%w: home.searchItems must not be empty", ErrInvalidFixtures)
	}
	if len(s.Home.HeaderContent) == 0 {
		return fmt.Errorf("%w: home.headerContent must not be empty", ErrInvalidFixtures)
	}
	for i, c := range s.Signin.InvalidCredentials {
		if c.Email == "" {
			return fmt.Errorf("%w: signin.invalidCredentials[%d].email is required", ErrInvalidFixtures, i)
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
