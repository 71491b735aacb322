package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/worxco/secretops/internal/logging"
	"github.com/worxco/secretops/internal/prompt"
	"github.com/worxco/secretops/internal/runner"
	"github.com/worxco/secretops/internal/store"
)

const (
	// DefaultPrefix is the namespace applied when none is supplied.
	DefaultPrefix = "worxco/production"

	// DefaultRegion is used when neither the environment nor the
	// config file selects one.
	DefaultRegion = "us-east-1"

	// DefaultRecoveryWindowDays is the grace period a deleted secret
	// stays restorable.
	DefaultRecoveryWindowDays = 7
)

// Config is the runtime configuration threaded into every command.
// It is assembled once during start-up and read-only afterwards.
type Config struct {
	Path               string // optional secretops.yaml location
	Prefix             string
	Region             string
	Profile            string
	RecoveryWindowDays int64
	DryRun             bool

	Logger   *logging.Logger
	Store    store.Store
	Runner   *runner.Runner
	Prompter prompt.Prompter
	Out      io.Writer
}

// fileConfig is the secretops.yaml structure. Every field is optional;
// unset fields keep their environment or built-in defaults.
type fileConfig struct {
	Prefix             string `yaml:"prefix"`
	Region             string `yaml:"region"`
	Profile            string `yaml:"profile"`
	RecoveryWindowDays int64  `yaml:"recovery_window_days"`
}

// Load fills in defaults, environment-derived settings, and any
// overrides from the config file. Precedence: file > environment >
// built-in default.
func (c *Config) Load() error {
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	if c.Region == "" {
		c.Region = regionFromEnv()
	}
	if c.Profile == "" {
		c.Profile = os.Getenv("AWS_PROFILE")
	}
	if c.RecoveryWindowDays == 0 {
		c.RecoveryWindowDays = DefaultRecoveryWindowDays
	}

	if c.Path == "" {
		return nil
	}
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", c.Path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("invalid config file %s: %w", c.Path, err)
	}

	if fc.Prefix != "" {
		c.Prefix = fc.Prefix
	}
	if fc.Region != "" {
		c.Region = fc.Region
	}
	if fc.Profile != "" {
		c.Profile = fc.Profile
	}
	if fc.RecoveryWindowDays > 0 {
		c.RecoveryWindowDays = fc.RecoveryWindowDays
	}

	return nil
}

// EffectivePrefix returns the positional prefix override when present,
// otherwise the configured default.
func (c *Config) EffectivePrefix(override string) string {
	if override != "" {
		return override
	}
	return c.Prefix
}

func regionFromEnv() string {
	if r := os.Getenv("AWS_REGION"); r != "" {
		return r
	}
	if r := os.Getenv("AWS_DEFAULT_REGION"); r != "" {
		return r
	}
	return DefaultRegion
}
