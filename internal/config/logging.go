package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level zerolog.Level
	File  string
}

// LoadLogConfig loads logging configuration from environment variables
func LoadLogConfig(getenv func(string) string) (*LogConfig, error) {
	config := &LogConfig{
		Level: zerolog.InfoLevel,
		File:  getenv("SHOPCHECK_LOG_FILE"),
	}

	if v := getenv("SHOPCHECK_LOG_LEVEL"); v != "" {
		level, err := zerolog.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("SHOPCHECK_LOG_LEVEL is invalid: %w", err)
		}
		config.Level = level
	}

	return config, nil
}
