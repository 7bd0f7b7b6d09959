// Package config provides configuration management for lwcswitch using
// Viper for loading from files, environment variables and command-line flags.
//
// The surface switches are opaque to the lookup itself: they only decide
// whether a host surface command (status bar, code lens, hover, panel) runs
// at all.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the effective lwcswitch configuration.
type Config struct {
	Surfaces SurfacesConfig `mapstructure:"surfaces" yaml:"surfaces"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Watch    WatchConfig    `mapstructure:"watch" yaml:"watch"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// SurfacesConfig gates which host surfaces are offered.
type SurfacesConfig struct {
	EnableStatusBar bool `mapstructure:"enable_status_bar" yaml:"enable_status_bar"`
	EnableCodeLens  bool `mapstructure:"enable_code_lens" yaml:"enable_code_lens"`
	EnableHover     bool `mapstructure:"enable_hover" yaml:"enable_hover"`
	EnablePanel     bool `mapstructure:"enable_panel" yaml:"enable_panel"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	Color  string `mapstructure:"color" yaml:"color"`
}

type ServerConfig struct {
	Host           string   `mapstructure:"host" yaml:"host"`
	Port           int      `mapstructure:"port" yaml:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Defaults.
const (
	DefaultFormat   = "table"
	DefaultColor    = "auto"
	DefaultHost     = "localhost"
	DefaultPort     = 7777
	DefaultDebounce = 300 * time.Millisecond
	DefaultLogLevel = "info"
)

// Choices accepted by validation.
var (
	OutputFormats = []string{"table", "json", "yaml", "paths"}
	ColorModes    = []string{"auto", "always", "never"}
	LogFormats    = []string{"text", "json"}
)

var surfaceKeys = []string{
	"surfaces.enable_status_bar",
	"surfaces.enable_code_lens",
	"surfaces.enable_hover",
	"surfaces.enable_panel",
}

// Load builds the configuration from the global viper instance.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Surfaces default to on; an explicit false must survive.
	for _, key := range surfaceKeys {
		if !viper.IsSet(key) {
			config.setSurface(key, true)
		} else {
			config.setSurface(key, viper.GetBool(key))
		}
	}

	if config.Output.Format == "" {
		config.Output.Format = DefaultFormat
	}
	if config.Output.Color == "" {
		config.Output.Color = DefaultColor
	}
	if config.Server.Host == "" {
		config.Server.Host = DefaultHost
	}
	if !viper.IsSet("server.port") {
		config.Server.Port = DefaultPort
	}
	if viper.IsSet("server.allowed_origins") && len(config.Server.AllowedOrigins) == 0 {
		config.Server.AllowedOrigins = viper.GetStringSlice("server.allowed_origins")
	}
	if !viper.IsSet("watch.debounce") {
		config.Watch.Debounce = DefaultDebounce
	}
	if config.Log.Level == "" {
		config.Log.Level = DefaultLogLevel
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Surfaces: SurfacesConfig{
			EnableStatusBar: true,
			EnableCodeLens:  true,
			EnableHover:     true,
			EnablePanel:     true,
		},
		Output: OutputConfig{Format: DefaultFormat, Color: DefaultColor},
		Server: ServerConfig{Host: DefaultHost, Port: DefaultPort},
		Watch:  WatchConfig{Debounce: DefaultDebounce},
		Log:    LogConfig{Level: DefaultLogLevel, Format: "text"},
	}
}

func (c *Config) setSurface(key string, value bool) {
	switch key {
	case "surfaces.enable_status_bar":
		c.Surfaces.EnableStatusBar = value
	case "surfaces.enable_code_lens":
		c.Surfaces.EnableCodeLens = value
	case "surfaces.enable_hover":
		c.Surfaces.EnableHover = value
	case "surfaces.enable_panel":
		c.Surfaces.EnablePanel = value
	}
}
