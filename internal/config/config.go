// Package config holds the tool configuration mapped from viper.
package config

import "errors"

// Configuration validation errors.
var (
	ErrMissingContentDir = errors.New("contentDir is required")
	ErrMissingLayoutsDir = errors.New("layoutsDir is required")
	ErrMissingOutputDir  = errors.New("outputDir is required")
	ErrMissingSiteFile   = errors.New("siteFile is required")
	ErrInvalidLogLevel   = errors.New("logLevel must be one of: debug, info, warn, error")
)

// Config is the generator configuration. Values come from config.yaml,
// PORTFOLIO_* environment variables, or the defaults set in cmd/root.go.
type Config struct {
	ContentDir string `mapstructure:"contentDir"`
	LayoutsDir string `mapstructure:"layoutsDir"`
	StaticDir  string `mapstructure:"staticDir"`
	OutputDir  string `mapstructure:"outputDir"`
	SiteFile   string `mapstructure:"siteFile"`
	BaseURL    string `mapstructure:"baseURL"`
	LogLevel   string `mapstructure:"logLevel"`
	Preview    bool   `mapstructure:"preview"`
	Minify     bool   `mapstructure:"minify"`
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return ErrMissingContentDir
	}

	if c.LayoutsDir == "" {
		return ErrMissingLayoutsDir
	}

	if c.OutputDir == "" {
		return ErrMissingOutputDir
	}

	if c.SiteFile == "" {
		return ErrMissingSiteFile
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}

	return nil
}
