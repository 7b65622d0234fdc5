// Package config handles configuration loading for the chtlc tool.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the tool configuration, loadable from a chtlc.yaml file and
// overridable through flags.
type Config struct {
	// ModulePaths is the ordered module search path for `[Import]`
	// resolution.
	ModulePaths []string `mapstructure:"module_paths" yaml:"module_paths"`

	// Output configures where and how compiled documents are written.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Serve configures the development server.
	Serve ServeConfig `mapstructure:"serve" yaml:"serve"`

	// Debug enables classification and token tracing.
	Debug bool `mapstructure:"debug" yaml:"debug"`
}

// OutputConfig controls output file handling.
type OutputConfig struct {
	// Dir is the directory compiled documents are written into when no
	// explicit output path is given.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// ServeConfig controls the development server.
type ServeConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		ModulePaths: []string{".", "module"},
		Output:      OutputConfig{Dir: "."},
		Serve:       ServeConfig{Addr: "localhost:8375"},
	}
}

// Load reads the configuration file at path, or the defaults when path is
// empty and no chtlc.yaml is found in the working directory.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("module_paths", cfg.ModulePaths)
	v.SetDefault("output.dir", cfg.Output.Dir)
	v.SetDefault("serve.addr", cfg.Serve.Addr)
	v.SetDefault("debug", cfg.Debug)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("chtlc")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		return cfg, nil // no config file, defaults apply
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
