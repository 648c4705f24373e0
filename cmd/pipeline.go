package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

// runCmd runs the whole pipeline, then writes the reports.
type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "fetch, convert, value, aggregate and export (default)" }
func (*runCmd) Usage() string {
	return `ptrack [-config <file>] run

  Fetches every configured series up to today, converts them into the
  reporting currency, values the holdings, aggregates the portfolio and
  exports the CSV files and reports.
`
}
func (*runCmd) SetFlags(f *flag.FlagSet) {}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := start()
	if a == nil {
		return status
	}
	if err := a.tracker.Run(ctx); err != nil {
		return fail("running the pipeline", err)
	}
	return exportAll(a, true)
}

// fetchCmd downloads the raw series.
type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download benchmark, stock and currency histories" }
func (*fetchCmd) Usage() string {
	return `ptrack [-config <file>] fetch

  Downloads every benchmark, stock and currency history up to today into the
  JSON directory. Currency histories are cleaned from weekends and from dates
  before the currency floor.
`
}
func (*fetchCmd) SetFlags(f *flag.FlagSet) {}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := start()
	if a == nil {
		return status
	}
	if err := a.tracker.Fetch(ctx); err != nil {
		return fail("fetching", err)
	}
	return subcommands.ExitSuccess
}

// convertCmd converts fetched series into the reporting currency.
type convertCmd struct{}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert fetched series into the reporting currency" }
func (*convertCmd) Usage() string {
	return `ptrack [-config <file>] convert

  Rewrites every benchmark and stock series not denominated in the reporting
  currency. It must run exactly once after fetch.
`
}
func (*convertCmd) SetFlags(f *flag.FlagSet) {}

func (c *convertCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := start()
	if a == nil {
		return status
	}
	if err := a.tracker.Convert(); err != nil {
		return fail("converting", err)
	}
	return subcommands.ExitSuccess
}

// valueCmd values the holdings and aggregates the portfolio.
type valueCmd struct{}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value each holding and aggregate the portfolio" }
func (*valueCmd) Usage() string {
	return `ptrack [-config <file>] value

  Multiplies every converted stock price by its held amount, then sums the
  holdings into the processed portfolio series. It must run exactly once
  after convert.
`
}
func (*valueCmd) SetFlags(f *flag.FlagSet) {}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := start()
	if a == nil {
		return status
	}
	if err := a.tracker.Value(); err != nil {
		return fail("valuing", err)
	}
	if err := a.tracker.Aggregate(); err != nil {
		return fail("aggregating", err)
	}
	return subcommands.ExitSuccess
}
