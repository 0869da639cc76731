// Package config loads the settings of the hensel command line tool.
//
// Settings come from three layers, later layers winning: built-in defaults,
// a YAML file, and HENSEL_* environment variables. Command line flags are
// applied on top by the CLI itself.
package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/henselcode/hensel"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

const (
	// DefaultPrime is the prime used when none is configured.
	DefaultPrime = "257"
	// DefaultExponent is the default truncation depth k.
	DefaultExponent = 3
	// DefaultRepresentation is the default code kind.
	DefaultRepresentation = "truncated"
	// DefaultLogLevel is the default zap level name.
	DefaultLogLevel = "info"

	// primalityRounds is the Miller–Rabin round count for the prime tag.
	primalityRounds = 20
)

// Config holds the CLI settings.
type Config struct {
	// Prime is p for single-prime representations.
	Prime string `yaml:"prime" validate:"required,prime"`
	// Primes is the ordered prime list of the composite representation.
	Primes []string `yaml:"primes,omitempty" validate:"omitempty,unique,dive,prime"`
	// Exponent is the truncation depth k.
	Exponent int `yaml:"exponent" validate:"gte=1,lte=4096"`
	// Representation is truncated, expansion or composite.
	Representation string `yaml:"representation" validate:"oneof=truncated expansion composite"`
	// Seed drives Hensel-lifting seed digits and random primes; 0 means
	// non-deterministic.
	Seed int64 `yaml:"seed"`
	// LogLevel is a zap level name.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("prime", validatePrime)
}

// validatePrime accepts decimal strings naming a (probable) prime.
func validatePrime(fl validator.FieldLevel) bool {
	n, ok := new(big.Int).SetString(fl.Field().String(), 10)
	return ok && n.ProbablyPrime(primalityRounds)
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Prime:          DefaultPrime,
		Exponent:       DefaultExponent,
		Representation: DefaultRepresentation,
		LogLevel:       DefaultLogLevel,
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path or a missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies HENSEL_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("HENSEL_PRIME"); v != "" {
		c.Prime = v
	}
	if v := os.Getenv("HENSEL_PRIMES"); v != "" {
		c.Primes = SplitList(v)
	}
	if v := os.Getenv("HENSEL_EXPONENT"); v != "" {
		k, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HENSEL_EXPONENT: %v", ErrInvalid, err)
		}
		c.Exponent = k
	}
	if v := os.Getenv("HENSEL_REPRESENTATION"); v != "" {
		c.Representation = v
	}
	if v := os.Getenv("HENSEL_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: HENSEL_SEED: %v", ErrInvalid, err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("HENSEL_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks field tags and the composite prime list.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Representation == "composite" && len(c.Primes) == 0 {
		return fmt.Errorf("%w: composite representation needs a primes list", ErrInvalid)
	}
	return nil
}

// Kind returns the configured representation.
func (c *Config) Kind() (hensel.Kind, error) {
	return hensel.ParseKind(c.Representation)
}

// PrimeList returns the primes the configured representation encodes over:
// Primes for composite codes, [Prime] otherwise.
func (c *Config) PrimeList() ([]*big.Int, error) {
	src := []string{c.Prime}
	if c.Representation == "composite" {
		src = c.Primes
	}
	out := make([]*big.Int, len(src))
	for i, s := range src {
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalid, s)
		}
		out[i] = n
	}
	return out, nil
}

// Options returns the hensel options implied by the configuration.
func (c *Config) Options() []hensel.Option {
	if c.Seed == 0 {
		return []hensel.Option{hensel.WithRandomSource(hensel.CryptoSource{})}
	}
	return []hensel.Option{hensel.WithSeed(c.Seed)}
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// SplitList splits a comma-separated list, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
