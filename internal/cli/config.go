package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mcoot/blockdrop/internal/services/game"
)

// EnvPrefix is prepended to every environment variable, e.g. BLOCKDROP_LOOKAHEAD
const EnvPrefix = "BLOCKDROP"

// Config holds CLI configuration. Values are layered, lowest first:
// defaults, config file, environment, flags.
type Config struct {
	game.Config `mapstructure:",squash" yaml:",inline"`

	Seed      uint64 `mapstructure:"seed" json:"seed" yaml:"seed"`
	LogLevel  string `mapstructure:"log_level" json:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" json:"log_format" yaml:"log_format"`
	Output    string `mapstructure:"output" json:"output" yaml:"output"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Config:    game.DefaultConfig(),
		LogLevel:  "warn",
		LogFormat: "text",
		Output:    "text",
	}
}

// Validate checks settings that the engine does not
func (c *Config) Validate() error {
	var errs []error
	if err := c.Config.Validate(); err != nil {
		errs = append(errs, err)
	}
	switch c.Output {
	case "text", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("unknown output format %q (want text, json or yaml)", c.Output))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat))
	}
	return errors.Join(errs...)
}

// newViper creates a viper instance with defaults and environment lookup
func newViper() *viper.Viper {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetDefault("rows", defaults.Rows)
	v.SetDefault("cols", defaults.Cols)
	v.SetDefault("hidden_rows", defaults.HiddenRows)
	v.SetDefault("lookahead", defaults.Lookahead)
	v.SetDefault("gravity_interval", defaults.GravityInterval)
	v.SetDefault("seed", defaults.Seed)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("output", defaults.Output)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// bindFlags maps config keys to the flags that override them
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"rows":             "rows",
		"cols":             "cols",
		"lookahead":        "lookahead",
		"gravity_interval": "gravity",
		"seed":             "seed",
		"log_level":        "log-level",
		"log_format":       "log-format",
		"output":           "output",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

// LoadConfig reads the optional config file and decodes every layer into a Config
func LoadConfig(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Output = strings.ToLower(cfg.Output)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
