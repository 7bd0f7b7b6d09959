package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conneroisu/lwcswitch/internal/errors"
	"github.com/conneroisu/lwcswitch/internal/renderer"
)

var panelCmd = &cobra.Command{
	Use:   "panel [file]",
	Short: "Render the side panel HTML for a component file",
	Long: `Render the side panel page for [file] to stdout. Without [file] the
placeholder page is rendered. Files listed with --dirty are marked as having
unsaved changes.

Examples:
  lwcswitch panel lwc/card/card.js > panel.html
  lwcswitch panel lwc/card/card.js --dirty lwc/card/card.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPanel,
}

var panelDirty []string

func init() {
	rootCmd.AddCommand(panelCmd)
	panelCmd.Flags().StringSliceVar(&panelDirty, "dirty", nil, "Files with unsaved changes")
}

func runPanel(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	if !a.config.Surfaces.EnablePanel {
		return errors.ErrSurfaceDisabled("panel", "surfaces.enable_panel")
	}

	view := renderer.PanelView{Dirty: make(map[string]bool)}
	if len(args) == 1 {
		if view.List, err = a.lookup(ctx, args[0]); err != nil {
			return err
		}
	}
	for _, d := range panelDirty {
		path, err := resolveFileArg(d)
		if err != nil {
			return err
		}
		view.Dirty[filepath.Clean(path)] = true
	}

	if err := renderer.Panel(view).Render(ctx, cmd.OutOrStdout()); err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, errors.ErrCodeRenderFailed, "failed to render panel")
	}
	return nil
}
