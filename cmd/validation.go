package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/conneroisu/lwcswitch/internal/errors"
)

// validateArgument rejects file arguments that cannot name a real file.
func validateArgument(arg string) error {
	if strings.TrimSpace(arg) == "" {
		return fmt.Errorf("path is empty")
	}
	for _, r := range arg {
		if r == 0 {
			return fmt.Errorf("contains NUL byte")
		}
		if unicode.IsControl(r) {
			return fmt.Errorf("contains control character %U", r)
		}
	}
	return nil
}

// resolveFileArg validates a file argument and makes it absolute.
func resolveFileArg(arg string) (string, error) {
	if err := validateArgument(arg); err != nil {
		return "", errors.ErrInvalidPath(arg, err)
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", errors.ErrInvalidPath(arg, err)
	}
	return abs, nil
}
