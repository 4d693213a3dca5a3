package driver

import (
	"fmt"
	"sync"

	"github.com/adyen/shopcheck/internal/config"
	"github.com/rs/zerolog"
)

// Launcher owns a running browser and hands out sessions on it
type Launcher interface {
	NewSession() (Session, error)
	Close() error
}

// Launch starts the browser backend named by cfg.Driver
func Launch(cfg *config.BrowserConfig, log zerolog.Logger) (Launcher, error) {
	log = log.With().Str("driver", cfg.Driver).Logger()
	switch cfg.Driver {
	case config.DriverPlaywright:
		l, err := LaunchPlaywright(cfg, log)
		if err != nil {
			return nil, err
		}
		return closeOnce(l), nil
	case config.DriverChromedp:
		l, err := LaunchChromedp(cfg, log)
		if err != nil {
			return nil, err
		}
		return closeOnce(l), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}

// onceLauncher lets an interrupt handler and a deferred Close share one
// launcher. Only the first Close reaches the browser.
type onceLauncher struct {
	Launcher
	once sync.Once
	err  error
}

func closeOnce(l Launcher) Launcher {
	return &onceLauncher{Launcher: l}
}

func (l *onceLauncher) Close() error {
	l.once.Do(func() { l.err = l.Launcher.Close() })
	return l.err
}
