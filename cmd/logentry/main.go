package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"logentry/internal/entry"
	"logentry/internal/options"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr, nil))
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, factory transportFactory) int {
	app := newCommandContext(stdin, stderr, factory)
	root := newRootCommand(app)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	return exitCode(err, app, root, cmd, stderr)
}

func exitCode(err error, app *commandContext, root, cmd *cobra.Command, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		return 1
	}

	fmt.Fprintln(stderr, err)
	var parseErr *entry.ParseError
	if errors.As(err, &parseErr) {
		if cmd == nil || cmd == root {
			writeUsage(stderr, options.Schema(app.optionSet()))
		} else {
			fmt.Fprint(stderr, cmd.UsageString())
		}
	}
	return 1
}
