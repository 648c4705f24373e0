package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

// exportCmd writes the CSV files and reports from the stored series.
type exportCmd struct{}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write CSV files, chart, workbook and summary" }
func (*exportCmd) Usage() string {
	return `ptrack [-config <file>] export

  Writes processed.csv and one CSV per benchmark into the CSV directory,
  followed by chart.png, tracker.xlsx and summary.md/.html when enabled in
  the [reports] section.
`
}
func (*exportCmd) SetFlags(f *flag.FlagSet) {}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := start()
	if a == nil {
		return status
	}
	return exportAll(a, false)
}

// exportAll exports the series, and the summary when enabled, printing it if show is set.
func exportAll(a *app, show bool) subcommands.ExitStatus {
	e := a.exporter()
	if err := e.Export(); err != nil {
		return fail("exporting", err)
	}
	if !a.cfg.Reports.Summary {
		return subcommands.ExitSuccess
	}
	md, err := a.summary()
	if err != nil {
		return fail("computing the summary", err)
	}
	if err := e.WriteSummary(md); err != nil {
		return fail("writing the summary", err)
	}
	if show {
		printMarkdown(md)
	}
	return subcommands.ExitSuccess
}
