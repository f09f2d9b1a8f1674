// Package config loads tagc settings from a YAML file, TAGC_ environment
// variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidWorkers  = errors.New("generation workers must be positive")
	ErrInvalidReceiver = errors.New("generation receiver must be a Go identifier")
	ErrInvalidSuffix   = errors.New("output suffix must end in .go")
	ErrInvalidLevel    = errors.New("unknown logging level")
	ErrInvalidFormat   = errors.New("unknown logging format")
)

const (
	envPrefix = "TAGC"

	defaultReceiver      = "p"
	defaultRuntimeImport = "github.com/lhaig/tagc/pkg/taghelpers"
	defaultWorkers       = 4
	defaultSuffix        = ".tagc.go"
)

// Config holds every tagc setting.
type Config struct {
	Generation GenerationConfig `mapstructure:"generation"`
	Output     OutputConfig     `mapstructure:"output"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// GenerationConfig controls what the generator emits.
type GenerationConfig struct {
	RuntimeImport string `mapstructure:"runtime_import"`
	Receiver      string `mapstructure:"receiver"`
	Workers       int    `mapstructure:"workers"`
	DesignTime    bool   `mapstructure:"design_time"`
	// StableIDs numbers tag occurrences per document instead of drawing
	// random identifiers.
	StableIDs     bool   `mapstructure:"stable_ids"`
}

// OutputConfig controls where and how generated files are written. An
// empty Dir writes next to each IR document.
type OutputConfig struct {
	Dir    string `mapstructure:"dir"`
	Suffix string `mapstructure:"suffix"`
	Format bool   `mapstructure:"format"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from path, or from tagc.yaml in the working
// directory when path is empty. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tagc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("generation.design_time", false)
	v.SetDefault("generation.stable_ids", false)
	v.SetDefault("generation.receiver", defaultReceiver)
	v.SetDefault("generation.runtime_import", defaultRuntimeImport)
	v.SetDefault("generation.workers", defaultWorkers)

	v.SetDefault("output.dir", "")
	v.SetDefault("output.suffix", defaultSuffix)
	v.SetDefault("output.format", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks the settings that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Generation.Workers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Generation.Workers)
	}
	if !token.IsIdentifier(c.Generation.Receiver) {
		return fmt.Errorf("%w: %q", ErrInvalidReceiver, c.Generation.Receiver)
	}
	if !strings.HasSuffix(c.Output.Suffix, ".go") {
		return fmt.Errorf("%w: %q", ErrInvalidSuffix, c.Output.Suffix)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLevel, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Logging.Format)
	}
	return nil
}
