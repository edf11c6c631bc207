// Package config resolves runtime settings from defaults, an optional YAML
// file, a .env file and REGFORM_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/validation"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "REGFORM_"

var (
	// ErrInvalidConfig wraps validation failures for loaded settings.
	ErrInvalidConfig = errors.New("config: invalid configuration")
	// ErrInvalidPolicy is returned when the policy settings do not resolve.
	ErrInvalidPolicy = errors.New("config: invalid policy")
)

// RateLimit configures the per-client token bucket.
type RateLimit struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

// Theme selects the page theme. Tokens become CSS custom properties and
// Assets maps asset keys to URLs.
type Theme struct {
	Name    string            `yaml:"name"`
	Variant string            `yaml:"variant"`
	Tokens  map[string]string `yaml:"tokens"`
	Assets  map[string]string `yaml:"assets"`
}

// Config holds every runtime setting.
type Config struct {
	Addr            string        `yaml:"addr"`
	LogLevel        string        `yaml:"log_level"`
	Policy          string        `yaml:"policy"`
	PhoneRule       string        `yaml:"phone_rule"`
	PhoneOverflow   string        `yaml:"phone_overflow"`
	FormError       string        `yaml:"form_error"`
	SessionTTL      time.Duration `yaml:"session_ttl"`
	MaxSessions     int           `yaml:"max_sessions"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	RateLimit       RateLimit     `yaml:"rate_limit"`
	Theme           Theme         `yaml:"theme"`
	IntroHTML       string        `yaml:"intro_html"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:            ":8080",
		LogLevel:        "info",
		Policy:          validation.PolicyCanonical.Name,
		SessionTTL:      30 * time.Minute,
		MaxSessions:     10000,
		ShutdownTimeout: 10 * time.Second,
		RateLimit: RateLimit{
			Enabled: true,
			RPS:     5,
			Burst:   10,
		},
		Theme: Theme{
			Name:    "default",
			Variant: "light",
		},
	}
}

// LoadOptions locate the sources Load reads.
type LoadOptions struct {
	// Path is an optional YAML file. Empty skips it; a missing file is an
	// error.
	Path string
	// EnvFile is a dotenv file. Empty means ".env"; a missing file is ignored.
	EnvFile string
	// Lookup reads process environment variables. Defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Load builds a Config. Process environment variables take precedence over
// values read from the dotenv file.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	if opts.Path != "" {
		raw, err := os.ReadFile(opts.Path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", opts.Path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", opts.Path, err)
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: read %s: %w", envFile, err)
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	env := envReader{lookup: lookup, fallback: dotenv}
	if err := env.apply(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings are usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr is required", ErrInvalidConfig)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("%w: session_ttl must be positive", ErrInvalidConfig)
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("%w: max_sessions must not be negative", ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit rps and burst must be positive", ErrInvalidConfig)
	}
	if _, err := c.ResolvePolicy(); err != nil {
		return err
	}
	return nil
}

// ResolvePolicy starts from the named preset and applies any individual
// overrides.
func (c Config) ResolvePolicy() (validation.Policy, error) {
	policy, err := validation.ParsePolicy(c.Policy)
	if err != nil {
		return validation.Policy{}, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}

	overridden := false
	if c.PhoneRule != "" {
		policy.PhoneRule = validation.PhoneRule(c.PhoneRule)
		overridden = true
	}
	if c.PhoneOverflow != "" {
		policy.PhoneOverflow = validation.PhoneOverflow(c.PhoneOverflow)
		overridden = true
	}
	if c.FormError != "" {
		policy.FormError = validation.FormErrorMode(c.FormError)
		overridden = true
	}
	if overridden {
		policy.Name = ""
	}

	policy = policy.Normalize()
	if err := policy.Validate(); err != nil {
		return validation.Policy{}, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}
	return policy, nil
}

type envReader struct {
	lookup   func(string) (string, bool)
	fallback map[string]string
}

func (e envReader) get(key string) (string, bool) {
	name := EnvPrefix + key
	if value, ok := e.lookup(name); ok {
		return value, true
	}
	value, ok := e.fallback[name]
	return value, ok
}

func (e envReader) apply(cfg *Config) error {
	strs := map[string]*string{
		"ADDR":           &cfg.Addr,
		"LOG_LEVEL":      &cfg.LogLevel,
		"POLICY":         &cfg.Policy,
		"PHONE_RULE":     &cfg.PhoneRule,
		"PHONE_OVERFLOW": &cfg.PhoneOverflow,
		"FORM_ERROR":     &cfg.FormError,
		"THEME_NAME":     &cfg.Theme.Name,
		"THEME_VARIANT":  &cfg.Theme.Variant,
		"INTRO_HTML":     &cfg.IntroHTML,
	}
	for key, dst := range strs {
		if value, ok := e.get(key); ok {
			*dst = strings.TrimSpace(value)
		}
	}

	durations := map[string]*time.Duration{
		"SESSION_TTL":      &cfg.SessionTTL,
		"SHUTDOWN_TIMEOUT": &cfg.ShutdownTimeout,
	}
	for key, dst := range durations {
		value, ok := e.get(key)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf(`config: environment variable "%s%s" is not a valid duration: %w`, EnvPrefix, key, err)
		}
		*dst = d
	}

	if value, ok := e.get("MAX_SESSIONS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf(`config: environment variable "%sMAX_SESSIONS" is not a valid int: %w`, EnvPrefix, err)
		}
		cfg.MaxSessions = n
	}
	if value, ok := e.get("RATE_LIMIT_ENABLED"); ok {
		enabled, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf(`config: environment variable "%sRATE_LIMIT_ENABLED" is not a valid bool: %w`, EnvPrefix, err)
		}
		cfg.RateLimit.Enabled = enabled
	}
	if value, ok := e.get("RATE_LIMIT_RPS"); ok {
		rps, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf(`config: environment variable "%sRATE_LIMIT_RPS" is not a valid float: %w`, EnvPrefix, err)
		}
		cfg.RateLimit.RPS = rps
	}
	if value, ok := e.get("RATE_LIMIT_BURST"); ok {
		burst, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf(`config: environment variable "%sRATE_LIMIT_BURST" is not a valid int: %w`, EnvPrefix, err)
		}
		cfg.RateLimit.Burst = burst
	}
	return nil
}
