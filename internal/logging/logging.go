// Package logging builds the zerolog logger shared by the runner, the pages
// and the drivers.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adyen/shopcheck/internal/config"
	"github.com/rs/zerolog"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing human readable lines to console. When the
// config names a file, JSON lines are appended to it as well and the
// returned closer closes that file.
func New(cfg *config.LogConfig, console io.Writer) (zerolog.Logger, io.Closer, error) {
	var closer io.Closer = nopCloser{}
	writers := []io.Writer{zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen}}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644) //#nosec G304 -- operator-provided log path
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, f)
		closer = f
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
	return log, closer, nil
}

// Scenario returns a child logger tagged with the suite and scenario name
func Scenario(log zerolog.Logger, suite, name string) zerolog.Logger {
	return log.With().Str("suite", suite).Str("scenario", name).Logger()
}
