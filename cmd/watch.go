package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conneroisu/lwcswitch/internal/errors"
	"github.com/conneroisu/lwcswitch/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch <file>",
	Aliases: []string{"w"},
	Short:   "Reprint the related files whenever the component changes",
	Long: `Print the related files of <file>, then watch the component folder and
its __tests__ folder and print a fresh list after every change. Stop with
Ctrl+C.

Examples:
  lwcswitch watch lwc/card/card.js
  lwcswitch watch lwc/card/card.js -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var watchFlags *StandardFlags

func init() {
	rootCmd.AddCommand(watchCmd)
	watchFlags = AddStandardFlags(watchCmd, "output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	return a.watch(ctx, cmd.OutOrStdout(), args[0], watchFlags.ResolveOutput(cmd, a.config))
}

// watch prints the lookup for arg and reprints it after every change to
// the component until ctx ends.
func (a *app) watch(ctx context.Context, out io.Writer, arg, format string) error {
	list, err := a.lookup(ctx, arg)
	if err != nil {
		return err
	}
	if list.Component == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidPath, "not a Lightning Web Component file").
			WithPath(list.Trigger).
			WithSuggestions("the file must live in an lwc/<name>/ folder that contains <name>.js-meta.xml")
	}

	term := a.terminal()
	if err := term.WriteList(out, list, format); err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(a.config.Watch.Debounce, a.logger)
	if err != nil {
		return errors.WrapIO(err, errors.ErrCodeWatchFailed, "cannot create file watcher")
	}
	defer fw.Stop()

	fw.AddFilter(watcher.NoHiddenFilter)
	fw.AddFilter(watcher.MemberFilter(list.Component))

	trigger := list.Trigger
	fw.AddHandler(func(events []watcher.ChangeEvent) error {
		for _, e := range events {
			a.logger.Debug(ctx, "Component changed", "path", e.Path, "type", e.Type.String())
		}
		fresh := a.scanner.Lookup(ctx, trigger)
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
		return term.WriteList(out, fresh, format)
	})

	if err := fw.AddComponent(list.Directory); err != nil {
		return errors.WrapIO(err, errors.ErrCodeWatchFailed, "cannot watch component folder").WithPath(list.Directory)
	}
	if err := fw.Start(ctx); err != nil {
		return errors.WrapIO(err, errors.ErrCodeWatchFailed, "cannot start file watcher")
	}

	a.logger.Info(ctx, "Watching component", "component", list.Component, "directory", list.Directory)
	<-ctx.Done()
	return nil
}
