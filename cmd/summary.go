package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tracker/agent"
	"github.com/etnz/tracker/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	ai   bool
	save bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio performance summary" }
func (*summaryCmd) Usage() string {
	return `ptrack [-config <file>] summary [-ai] [-save]

  Displays the latest portfolio value, each holding and each benchmark
  performance over the tracked period.

  With -ai, the summary is sent to Gemini for a short commentary. The
  GEMINI_API_KEY environment variable must be set.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.ai, "ai", false, "Append a commentary generated by Gemini.")
	f.BoolVar(&c.save, "save", false, "Also write summary.md and summary.html into the CSV directory.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := start()
	if a == nil {
		return status
	}
	md, err := a.summary()
	if err != nil {
		return fail("computing the summary", err)
	}

	if c.ai {
		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating Gemini client: %v\n", err)
			return subcommands.ExitFailure
		}
		analyst := agent.NewAnalyst(a.cfg.Reports.Model, a.cfg.ReportingCurrency)
		text, err := agent.Comment(ctx, client, analyst, md)
		if err != nil {
			return fail("asking for a commentary", err)
		}
		md += "\n" + renderer.CommentaryMarkdown(text)
	}

	if c.save {
		if err := a.exporter().WriteSummary(md); err != nil {
			return fail("writing the summary", err)
		}
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
