// Package config reads command line defaults from the environment.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	FormatText    = "text"
	FormatDecimal = "decimal"
	FormatHex     = "hex"
)

var ErrInvalidFormat = errors.New("format must be one of text, decimal, hex")

type Config struct {
	// Empty means seed from the clock.
	Seed string `env:"XPRNG_SEED"`
	// Parse Seed as a number instead of hashing it as text.
	Numeric bool   `env:"XPRNG_NUMERIC_SEED" envDefault:"false"`
	Format  string `env:"XPRNG_FORMAT" envDefault:"text"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatDecimal, FormatHex:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
}

// SeedValue returns the seed in the form prng.New expects: nil, a string,
// or a number when Numeric is set.
func (c Config) SeedValue() (any, error) {
	return ParseSeed(c.Seed, c.Numeric)
}

func ParseSeed(s string, numeric bool) (any, error) {
	if s == "" {
		return nil, nil
	}
	if !numeric {
		return s, nil
	}
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return i, nil
	}
	if u, err := strconv.ParseUint(s, 0, 64); err == nil {
		return u, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("numeric seed %q: %w", s, err)
	}
	return f, nil
}
