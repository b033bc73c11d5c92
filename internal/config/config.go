package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable the config reads,
// e.g. PDFOUTLINE_OUTPUT or PDFOUTLINE_LOG_LEVEL.
const EnvPrefix = "PDFOUTLINE"

// Config holds settings shared by the run, extract and watch commands.
type Config struct {
	Input    string        `mapstructure:"input" yaml:"input"`
	Output   string        `mapstructure:"output" yaml:"output"`
	Workers  int           `mapstructure:"workers" yaml:"workers"`
	FailFast bool          `mapstructure:"fail_fast" yaml:"fail_fast"`
	LogLevel string        `mapstructure:"log_level" yaml:"log_level"`
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Input:    "input",
		Output:   "output",
		Workers:  runtime.NumCPU(),
		LogLevel: "info",
		Debounce: 500 * time.Millisecond,
	}
}

// Load resolves configuration from, in increasing precedence: defaults, the
// config file, PDFOUTLINE_* environment variables and any flags in fs that
// were set explicitly. cfgFile may be empty, in which case pdfoutline.yaml is
// looked up in the working directory and $HOME/.pdfoutline and is optional.
func Load(cfgFile string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("input", defaults.Input)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("fail_fast", defaults.FailFast)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("debounce", defaults.Debounce)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pdfoutline")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.pdfoutline")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// bindFlags binds each known key to the flag of the same name, with dashes
// in place of underscores, when fs defines it.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{"input", "output", "workers", "fail_fast", "log_level", "debounce"} {
		flag := fs.Lookup(strings.ReplaceAll(key, "_", "-"))
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag.Name, err)
		}
	}
	return nil
}

// Validate checks the values Load cannot default on its own.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %s", c.Debounce)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// WriteDefault writes the default configuration as YAML to path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# pdfoutline configuration
# Every key can be overridden with a PDFOUTLINE_<KEY> environment variable.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
