package cmd

import (
	"github.com/spf13/cobra"
)

var relatedCmd = &cobra.Command{
	Use:     "related <file>",
	Aliases: []string{"r"},
	Short:   "List the sibling files of a component file",
	Long: `List every file that belongs to the same Lightning Web Component as
<file>, ranked template, controller, stylesheet, SVG, other, tests, metadata,
then tests from the __tests__ folder. <file> itself is never listed.

A file outside an lwc folder, or in a folder without <name>.js-meta.xml,
has no related files.

Examples:
  lwcswitch related lwc/card/card.js           # Table with colored kinds
  lwcswitch r lwc/card/card.html -o json       # JSON for editor integrations
  lwcswitch related lwc/card/card.css -o paths # One path per line`,
	Args: cobra.ExactArgs(1),
	RunE: runRelated,
}

var relatedFlags *StandardFlags

func init() {
	rootCmd.AddCommand(relatedCmd)
	relatedFlags = AddStandardFlags(relatedCmd, "output")
}

func runRelated(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	list, err := a.lookup(ctx, args[0])
	if err != nil {
		return err
	}
	if relatedFlags.Quiet {
		return nil
	}

	format := relatedFlags.ResolveOutput(cmd, a.config)
	return a.terminal().WriteList(cmd.OutOrStdout(), list, format)
}
