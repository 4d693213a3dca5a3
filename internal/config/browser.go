package config

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Browser driver names
const (
	DriverPlaywright = "playwright"
	DriverChromedp   = "chromedp"
)

// DefaultBaseURL is the storefront the suites are written against
const DefaultBaseURL = "https://www.target.com/"

// BrowserConfig holds configuration for the browser session
type BrowserConfig struct {
	BaseURL           string
	Driver            string
	Headless          bool
	SlowMo            time.Duration
	NavigationTimeout time.Duration
}

// LoadBrowserConfig loads browser configuration from environment variables
func LoadBrowserConfig(getenv func(string) string) (*BrowserConfig, error) {
	config := &BrowserConfig{
		BaseURL:           getenv("SHOPCHECK_BASE_URL"),
		Driver:            getenv("SHOPCHECK_DRIVER"),
		Headless:          true,
		NavigationTimeout: 30 * time.Second,
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	u, err := url.Parse(config.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("SHOPCHECK_BASE_URL must be an absolute http(s) URL, got %q", config.BaseURL)
	}

	if config.Driver == "" {
		config.Driver = DriverPlaywright // Default to playwright
	}
	if config.Driver != DriverPlaywright && config.Driver != DriverChromedp {
		return nil, fmt.Errorf("SHOPCHECK_DRIVER must be %q or %q, got %q", DriverPlaywright, DriverChromedp, config.Driver)
	}

	if v := getenv("SHOPCHECK_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("SHOPCHECK_HEADLESS must be a boolean: %w", err)
		}
		config.Headless = headless
	}

	if v := getenv("SHOPCHECK_SLOW_MO"); v != "" {
		slowMo, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SHOPCHECK_SLOW_MO must be a duration: %w", err)
		}
		config.SlowMo = slowMo
	}

	if v := getenv("SHOPCHECK_NAV_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SHOPCHECK_NAV_TIMEOUT must be a duration: %w", err)
		}
		if timeout <= 0 {
			return nil, fmt.Errorf("SHOPCHECK_NAV_TIMEOUT must be positive, got %s", timeout)
		}
		config.NavigationTimeout = timeout
	}

	return config, nil
}
