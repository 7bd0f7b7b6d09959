package main

import (
	"fmt"
	"os"

	"github.com/conneroisu/lwcswitch/cmd"
	"github.com/conneroisu/lwcswitch/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", errors.FormatErrorWithSuggestions(err))
		os.Exit(1)
	}
}
