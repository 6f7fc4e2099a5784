package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/abdul-hamid-achik/wave/packages/core/logging"
)

// DefaultDir is the collection directory used when none is configured.
const DefaultDir = ".wave"

// FileName is the config file looked up inside the collection directory.
const FileName = "config"

// EnvPrefix prefixes environment variables, e.g. WAVE_NO_COLOR.
const EnvPrefix = "WAVE"

// Config holds settings read from <dir>/config.yaml and WAVE_* variables.
// Command-line flags are applied on top by the CLI.
type Config struct {
	Dir       string            `mapstructure:"dir"`
	NoColor   bool              `mapstructure:"no_color"`
	NoSpinner bool              `mapstructure:"no_spinner"`
	Verbose   bool              `mapstructure:"verbose"`
	EnvFile   string            `mapstructure:"env_file"`
	Output    string            `mapstructure:"output"`
	UserAgent string            `mapstructure:"user_agent"`
	LogLevel  string            `mapstructure:"log_level"`
	Headers   map[string]string `mapstructure:"headers"` // sent with every request unless overridden
}

// Output formats.
const (
	OutputConsole = "console"
	OutputJSON    = "json"
)

func DefaultConfig() *Config {
	return &Config{
		Dir:      DefaultDir,
		Output:   OutputConsole,
		LogLevel: logging.LevelWarn.String(),
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("dir", d.Dir)
	v.SetDefault("no_color", d.NoColor)
	v.SetDefault("no_spinner", d.NoSpinner)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("env_file", d.EnvFile)
	v.SetDefault("output", d.Output)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("headers", map[string]string{})
}

// ResolveDir picks the collection directory: the flag value, then WAVE_DIR,
// then DefaultDir.
func ResolveDir(flag string) string {
	if flag != "" {
		return flag
	}
	if dir := os.Getenv(EnvPrefix + "_DIR"); dir != "" {
		return dir
	}
	return DefaultDir
}

// Load reads the config file at path, or <dir>/config.yaml when path is
// empty. A missing default file is not an error; a missing explicit file is.
func Load(path, dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Dir = dir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be expressed by types alone.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputConsole, OutputJSON:
	default:
		return fmt.Errorf("invalid output format %q (want %s or %s)", c.Output, OutputConsole, OutputJSON)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	for k := range c.Headers {
		if strings.TrimSpace(k) == "" || strings.ContainsAny(k, " \t") {
			return fmt.Errorf("invalid default header name %q", k)
		}
	}
	return nil
}
