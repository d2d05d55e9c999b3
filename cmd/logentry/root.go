package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"logentry/internal/entry"
	"logentry/internal/logging"
	"logentry/internal/options"
	"logentry/internal/queue"
	"logentry/internal/submit"
)

func newRootCommand(app *commandContext) *cobra.Command {
	root := &cobra.Command{
		Use:               "logentry [options]",
		Short:             "Create a logbook entry",
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              rejectArgs,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntry(cmd, app)
		},
	}

	options.Register(root.Flags(), options.Schema(options.Current))
	root.PersistentFlags().StringVar(&app.configFlag, "config", "", "Configuration file path")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &entry.ParseError{Msg: err.Error(), Err: err}
	})

	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != root {
			defaultHelp(cmd, args)
			return
		}
		writeUsage(cmd.OutOrStdout(), options.Schema(app.optionSet()))
	})

	root.AddCommand(newQueueCommand(app))
	root.AddCommand(newConfigCommand(app))
	return root
}

func rejectArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &entry.ParseError{Msg: fmt.Sprintf("unexpected argument %q", args[0])}
	}
	return nil
}

func runEntry(cmd *cobra.Command, app *commandContext) error {
	line := options.NewFlagLine(cmd.Flags())
	if line.Has(options.Help) {
		return cmd.Help()
	}

	if err := checkOptionSet(cmd.Flags(), app.optionSet()); err != nil {
		return err
	}
	if err := entry.Validate(line); err != nil {
		return err
	}

	logger := logging.NewComponentLogger(app.log(), "cli")
	if line.Value(options.Body) == entry.StdinPath {
		hintInteractiveStdin(cmd.ErrOrStderr(), app.stdin)
	}
	builder := entry.Builder{Stdin: app.stdin, Logger: logger}
	req, err := builder.Build(line)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if line.Has(options.XML) {
		if err := entry.Encode(out, req, time.Now()); err != nil {
			return err
		}
	}
	if line.Has(options.NoSubmit) {
		logger.Debug("submission skipped")
		return nil
	}

	cfg, err := app.ensureConfig()
	if err != nil {
		return err
	}
	noQueue := line.Has(options.NoQueue)
	var store *queue.Store
	if !noQueue {
		opened, err := app.openStore()
		if err != nil {
			logger.Warn("entry queue unavailable; entries cannot be deferred", logging.Error(err))
		} else {
			store = opened
			defer store.Close()
		}
	}

	dispatcher := submit.Dispatcher{
		Transport: app.transport(cfg, store, app.log()),
		Logger:    logger,
	}
	outcome, err := dispatcher.Dispatch(cmd.Context(), req, noQueue)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, outcome.Message())
	return nil
}

// checkOptionSet rejects options newer than the configured option set.
func checkOptionSet(fs *pflag.FlagSet, version options.Version) error {
	for _, opt := range options.Schema(options.Current) {
		if _, ok := options.Lookup(version, opt.Name); ok {
			continue
		}
		if f := fs.Lookup(opt.Name); f != nil && f.Changed {
			return &entry.ParseError{Msg: fmt.Sprintf("unknown flag: --%s (not in the %s option set)", opt.Name, version)}
		}
	}
	return nil
}

func hintInteractiveStdin(w io.Writer, in io.Reader) {
	f, ok := in.(*os.File)
	if !ok {
		return
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		fmt.Fprintln(w, "Reading entry body from standard input; finish with Ctrl-D")
	}
}
