// Package cmd provides the command-line interface for lwcswitch.
//
// Configuration is read from several sources with clear precedence:
//  1. Command-line flags (--config, --log-level, --output, ...) - highest priority
//  2. LWCSWITCH_CONFIG_FILE environment variable - custom config file path
//  3. Individual environment variables (LWCSWITCH_SURFACES_ENABLE_HOVER, ...)
//  4. Configuration file (.lwcswitch.yml) - lowest priority
package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/lwcswitch/internal/config"
	"github.com/conneroisu/lwcswitch/internal/logging"
	"github.com/conneroisu/lwcswitch/internal/renderer"
	"github.com/conneroisu/lwcswitch/internal/scanner"
	"github.com/conneroisu/lwcswitch/internal/types"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lwcswitch",
	Short: "Find and switch between the files of a Lightning Web Component",
	Long: `lwcswitch finds the sibling files of a Lightning Web Component: its
template, controller, stylesheet, metadata, SVG resources and Jest tests.

Given any file of a component it lists the related files ranked by kind, and
renders the same result for editor surfaces: status bar text, code lens
titles, hover cards and a live-updating side panel.

Quick Start:
  lwcswitch related force-app/main/default/lwc/card/card.js
  lwcswitch list force-app
  lwcswitch serve

Command Aliases:
  related (r), list (l), watch (w), serve (s)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .lwcswitch.yml, can also use LWCSWITCH_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().String("color", "auto", "color output (auto, always, never)")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("output.color", rootCmd.PersistentFlags().Lookup("color"))
}

// initConfig points viper at the config file and the environment.
//
// Config file lookup, highest priority first:
//  1. --config flag
//  2. LWCSWITCH_CONFIG_FILE environment variable
//  3. .lwcswitch.yml in the current directory
//
// Every key can be overridden from the environment with the LWCSWITCH_
// prefix, e.g. LWCSWITCH_SERVER_PORT=8080.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("LWCSWITCH_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lwcswitch")
	}

	viper.SetEnvPrefix("LWCSWITCH")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing or broken file falls back to defaults; config.Load reports
	// invalid values.
	_ = viper.ReadInConfig()
}

// app bundles what every command needs once configuration is loaded.
type app struct {
	config  *config.Config
	logger  logging.Logger
	scanner *scanner.ComponentScanner
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg)
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug(ctx, "Using config file", "path", used)
	}

	return &app{
		config:  cfg,
		logger:  logger,
		scanner: scanner.NewComponentScanner(logger),
	}, nil
}

func newLogger(cfg *config.Config) logging.Logger {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logging.LevelInfo
	}
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	}).WithComponent("cli")
}

// lookup runs one lookup for a file argument.
func (a *app) lookup(ctx context.Context, arg string) (*types.RankedFileList, error) {
	path, err := resolveFileArg(arg)
	if err != nil {
		return nil, err
	}
	list := a.scanner.Lookup(ctx, path)
	a.logger.Debug(ctx, "Lookup finished", "trigger", list.Trigger, "files", list.String())
	return list, nil
}

// terminal returns the writer settings for the configured color mode.
func (a *app) terminal() renderer.Terminal {
	switch a.config.Output.Color {
	case "never":
		return renderer.Terminal{Color: false}
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
		return renderer.Terminal{Color: true}
	default:
		return renderer.Terminal{Color: isatty.IsTerminal(os.Stdout.Fd())}
	}
}
