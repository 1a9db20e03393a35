// Package config loads command line configuration with viper. Precedence is
// flags > BENCHTMPL_* environment variables > config file > defaults. The
// config file is benchtmpl.yaml in the working directory or $HOME/.benchtmpl,
// unless an explicit path is given.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every configuration environment variable.
const EnvPrefix = "BENCHTMPL"

// Config holds all CLI configuration.
type Config struct {
	// TemplatesDir adds templates on top of the built-in ones.
	TemplatesDir string
	// Renderer is the default renderer name.
	Renderer string
	// Concurrency bounds batch renders; 0 is unbounded.
	Concurrency int
	// ParamEnvPrefix selects environment variables used as parameters.
	ParamEnvPrefix string

	LogLevel  string
	LogFormat string

	// ConfigFile is the file that was read, if any.
	ConfigFile string
}

// New returns a viper instance with defaults, environment binding and config
// file discovery set up. Callers bind flags on it before calling Load.
func New(configFile string) *viper.Viper {
	v := viper.New()
	ApplyDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		return v
	}
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".benchtmpl"))
	}
	v.SetConfigName("benchtmpl")
	v.SetConfigType("yaml")
	return v
}

// Load reads the optional config file and resolves the configuration.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		return nil, errors.New("config: viper instance is required")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	cfg := &Config{
		TemplatesDir:   v.GetString(KeyTemplatesDir),
		Renderer:       v.GetString(KeyRenderEngine),
		Concurrency:    v.GetInt(KeyConcurrency),
		ParamEnvPrefix: v.GetString(KeyEnvPrefix),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
		ConfigFile:     v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Renderer) == "" {
		return fmt.Errorf("config: %s must not be empty", KeyRenderEngine)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config: %s must be >= 0, got %d", KeyConcurrency, c.Concurrency)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config: %s must be json or console, got %q", KeyLogFormat, c.LogFormat)
	}
	return nil
}
