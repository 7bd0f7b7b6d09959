package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/conneroisu/lwcswitch/internal/config"
	"github.com/conneroisu/lwcswitch/internal/errors"
)

// StandardFlags provides consistent flag definitions across commands
type StandardFlags struct {
	// Server flags
	Port int    `flag:"port,p" desc:"Port to serve on"`
	Host string `flag:"host" desc:"Host to bind to"`

	// Output flags
	OutputFormat string `flag:"output,o" desc:"Output format (table|json|yaml|paths)"`
	Quiet        bool   `flag:"quiet,q" desc:"Suppress output"`
}

// AddStandardFlags adds standard flags to a command
func AddStandardFlags(cmd *cobra.Command, flagTypes ...string) *StandardFlags {
	flags := &StandardFlags{}

	for _, flagType := range flagTypes {
		switch flagType {
		case "server":
			addServerFlags(cmd, flags)
		case "output":
			addOutputFlags(cmd, flags)
		}
	}

	return flags
}

func addServerFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().IntVarP(&flags.Port, "port", "p", config.DefaultPort, "Port to serve on")
	cmd.Flags().StringVar(&flags.Host, "host", config.DefaultHost, "Host to bind to")
}

func addOutputFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().StringVarP(&flags.OutputFormat, "output", "o", config.DefaultFormat, "Output format (table|json|yaml|paths)")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress output")

	AddFlagValidation(cmd, "output", func(format string) error {
		return errors.ValidateChoice("output format", format, config.OutputFormats)
	})
}

// ResolveOutput returns the output format: the flag when given, the
// configured format otherwise.
func (f *StandardFlags) ResolveOutput(cmd *cobra.Command, cfg *config.Config) string {
	if flag := cmd.Flags().Lookup("output"); flag != nil && flag.Changed {
		return strings.ToLower(f.OutputFormat)
	}
	return cfg.Output.Format
}

// ApplyServer copies explicitly set server flags over the configuration.
func (f *StandardFlags) ApplyServer(cmd *cobra.Command, cfg *config.Config) {
	if flag := cmd.Flags().Lookup("port"); flag != nil && flag.Changed {
		cfg.Server.Port = f.Port
	}
	if flag := cmd.Flags().Lookup("host"); flag != nil && flag.Changed {
		cfg.Server.Host = f.Host
	}
}

// ValidateFlags validates flag values
func (f *StandardFlags) ValidateFlags() error {
	if f.OutputFormat != "" {
		if err := errors.ValidateChoice("output format", f.OutputFormat, config.OutputFormats); err != nil {
			return err
		}
	}
	if f.Port < 0 || f.Port > 65535 {
		return errors.NewValidationError(errors.ErrCodeInvalidArgument, "port must be between 0 and 65535").
			WithContext("port", f.Port)
	}
	return nil
}

// AddFlagValidation adds validation for a specific flag
func AddFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		return
	}

	flag.Value = &validatingValue{
		Value:     flag.Value,
		validator: validator,
	}
}

type validatingValue struct {
	pflag.Value
	validator func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.Value.Set(val)
}
