package config

import (
	"fmt"
	"time"

	"github.com/conneroisu/lwcswitch/internal/errors"
	"github.com/conneroisu/lwcswitch/internal/logging"
	"github.com/conneroisu/lwcswitch/internal/validation"
)

// maxDebounce bounds the watch debounce so edits still feel live.
const maxDebounce = 10 * time.Second

// validateConfig validates configuration values for correctness
func validateConfig(config *Config) error {
	if err := validateOutputConfig(&config.Output); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if config.Watch.Debounce < 0 || config.Watch.Debounce > maxDebounce {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("watch debounce %s is not in range 0-%s", config.Watch.Debounce, maxDebounce))
	}

	if _, err := logging.ParseLevel(config.Log.Level); err != nil {
		return errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "log config")
	}
	if err := errors.ValidateChoice("log format", config.Log.Format, LogFormats); err != nil {
		return fmt.Errorf("log config: %w", err)
	}

	return nil
}

func validateOutputConfig(config *OutputConfig) error {
	if err := errors.ValidateChoice("output format", config.Format, OutputFormats); err != nil {
		return err
	}
	return errors.ValidateChoice("color mode", config.Color, ColorModes)
}

// validateServerConfig validates server configuration values
func validateServerConfig(config *ServerConfig) error {
	// Allow 0 for system-assigned ports in testing
	if config.Port < 0 || config.Port > 65535 {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("port %d is not in valid range 0-65535", config.Port))
	}

	if err := validation.ValidateHost(config.Host); err != nil {
		return errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "invalid host")
	}

	for _, origin := range config.AllowedOrigins {
		if err := validation.ValidateOriginFormat(origin); err != nil {
			return errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "invalid allowed origin")
		}
	}

	return nil
}
