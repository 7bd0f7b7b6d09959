package cmd

import (
	"github.com/spf13/cobra"

	"github.com/conneroisu/lwcswitch/internal/errors"
)

var listCmd = &cobra.Command{
	Use:     "list [root]",
	Aliases: []string{"l"},
	Short:   "List every component below a directory",
	Long: `Walk [root] (default: the current directory) and list every
Lightning Web Component folder found, with its files in rank order.

Examples:
  lwcswitch list                     # Scan the current project
  lwcswitch list force-app -o json   # Output as JSON
  lwcswitch l force-app -o paths     # One component folder per line`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

var listFlags *StandardFlags

func init() {
	rootCmd.AddCommand(listCmd)
	listFlags = AddStandardFlags(listCmd, "output")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	root, err = resolveFileArg(root)
	if err != nil {
		return err
	}

	infos, err := a.scanner.ScanDirectory(ctx, root)
	if err != nil {
		return errors.WrapIO(err, errors.ErrCodeInvalidPath, "cannot scan directory").WithPath(root)
	}
	a.logger.Debug(ctx, "Scan finished", "root", root, "components", len(infos))

	if listFlags.Quiet {
		return nil
	}
	return a.terminal().WriteComponents(cmd.OutOrStdout(), infos, listFlags.ResolveOutput(cmd, a.config))
}
