package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"logentry/internal/options"
)

const versionID = "2.0"

const usageFooter = "The options tag, logbook, attachment, and notify may be included more " +
	"than once to make multiple inclusions. For more help see: " +
	"https://logbooks.jlab.org/content/unix-command-line"

func writeUsage(w io.Writer, schema []options.Option) {
	fmt.Fprintf(w, "logentry command line utility version %s\n", versionID)
	fmt.Fprintln(w, "usage: logentry [options]")

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Options = table.OptionsNoBordersAndSeparators
	for _, opt := range schema {
		tw.AppendRow(table.Row{flagSyntax(opt), opt.Usage})
	}
	fmt.Fprintln(w, tw.Render())
	fmt.Fprintln(w)
	fmt.Fprintln(w, usageFooter)
}

func flagSyntax(opt options.Option) string {
	syntax := "    --" + opt.Name
	if opt.Short != "" {
		syntax = "-" + opt.Short + ", --" + opt.Name
	}
	if opt.Arity != options.Flag {
		syntax += " <arg>"
	}
	return syntax
}
