package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conneroisu/lwcswitch/internal/renderer"
)

var statusCmd = &cobra.Command{
	Use:   "status <file>",
	Short: "Print the status bar text for a component file",
	Long: `Print "LWC: <component> (<count>)" for <file>. Nothing is printed when
the file has no related files or surfaces.enable_status_bar is false.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

var lensCmd = &cobra.Command{
	Use:   "lens <file>",
	Short: "Print the code lens titles for a component file",
	Long: `Print one code lens title per line: the "LWC Component Files:" header
followed by "<Label> (<file name>)" for every related file. Nothing is
printed when there are no related files or surfaces.enable_code_lens is
false.`,
	Args: cobra.ExactArgs(1),
	RunE: runLens,
}

var hoverCmd = &cobra.Command{
	Use:   "hover <file>",
	Short: "Print the hover card for a position in a component file",
	Long: `Print the hover markdown for the cursor at --line (zero-based). The
card is only produced near the top of the file (line 10 or above) and only
when the line mentions the component name. Without --text the line is read
from <file>.

Examples:
  lwcswitch hover lwc/card/card.js --line 3
  lwcswitch hover lwc/card/card.js --line 0 --text "export default class card"`,
	Args: cobra.ExactArgs(1),
	RunE: runHover,
}

var (
	hoverLine int
	hoverText string
)

func init() {
	rootCmd.AddCommand(statusCmd, lensCmd, hoverCmd)

	hoverCmd.Flags().IntVar(&hoverLine, "line", 0, "Zero-based line of the cursor")
	hoverCmd.Flags().StringVar(&hoverText, "text", "", "Text of the line (read from the file when omitted)")
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	if !a.config.Surfaces.EnableStatusBar {
		a.logger.Debug(ctx, "Status bar disabled")
		return nil
	}

	list, err := a.lookup(ctx, args[0])
	if err != nil {
		return err
	}
	if text := renderer.StatusText(list); text != "" {
		fmt.Fprintln(cmd.OutOrStdout(), text)
	}
	return nil
}

func runLens(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	if !a.config.Surfaces.EnableCodeLens {
		a.logger.Debug(ctx, "Code lens disabled")
		return nil
	}

	list, err := a.lookup(ctx, args[0])
	if err != nil {
		return err
	}
	for _, title := range renderer.CodeLensTitles(list) {
		fmt.Fprintln(cmd.OutOrStdout(), title)
	}
	return nil
}

func runHover(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	if !a.config.Surfaces.EnableHover {
		a.logger.Debug(ctx, "Hover disabled")
		return nil
	}
	if hoverLine < 0 || hoverLine > renderer.HoverMaxLine {
		return nil
	}

	list, err := a.lookup(ctx, args[0])
	if err != nil {
		return err
	}
	if list.Empty() {
		return nil
	}

	text := hoverText
	if !cmd.Flags().Changed("text") {
		text, err = readLine(list.Trigger, hoverLine)
		if err != nil {
			a.logger.Debug(ctx, "Cannot read hover line", "path", list.Trigger, "error", err.Error())
			return nil
		}
	}

	if md, ok := renderer.HoverMarkdown(list, hoverLine, text); ok {
		fmt.Fprint(cmd.OutOrStdout(), md)
	}
	return nil
}

// readLine returns the zero-based line n of path, or "" past the end.
func readLine(path string, n int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for i := 0; sc.Scan(); i++ {
		if i == n {
			return sc.Text(), nil
		}
	}
	return "", sc.Err()
}
