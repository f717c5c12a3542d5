package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultConfigName is the base name of the main configuration file.
const DefaultConfigName = "covcalc"

// Config holds the covcalc settings found under the top-level 'config' key.
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	LogDir   string `mapstructure:"log_dir"`

	// Workers bounds how many methods are analyzed concurrently.
	Workers int `mapstructure:"workers"`

	// Filters names the filter plugins to run, in order.
	Filters       []string                          `mapstructure:"filters"`
	FilterOptions map[string]map[string]interface{} `mapstructure:"filter_options"`

	Report ReportConfig `mapstructure:"report"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	Format    string `mapstructure:"format"` // "text" or "markdown"
}

// fileConfig mirrors the layout of the configuration file.
type fileConfig struct {
	Config Config `mapstructure:"config"`
}

func newViper(configName string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath("configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")
	return v
}

// LoadConfig loads configs/covcalc.yaml. A missing file is not an error: defaults are used.
// Environment variables such as COVCALC_CONFIG_WORKERS override file values.
func LoadConfig() (*Config, error) {
	return LoadNamed(DefaultConfigName)
}

// LoadNamed is LoadConfig with an explicit configuration file name.
func LoadNamed(configName string) (*Config, error) {
	v := newViper(configName)
	setDefaults(v)

	v.SetEnvPrefix("COVCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	cfg := &fc.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("config.log_level", "info")
	v.SetDefault("config.workers", 4)
	v.SetDefault("config.filters", []string{"synthetic", "directives"})
	v.SetDefault("config.report.output_dir", "coverage_out")
	v.SetDefault("config.report.format", "text")
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("invalid config: workers must be positive, got %d", c.Workers)
	}
	switch c.Report.Format {
	case "text", "markdown":
	default:
		return fmt.Errorf("invalid config: unknown report format %q", c.Report.Format)
	}
	return nil
}
