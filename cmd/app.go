// Package cmd implements the CLI application to track a portfolio against its benchmarks.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/tracker"
	"github.com/etnz/tracker/export"
	"github.com/etnz/tracker/renderer"
	"github.com/etnz/tracker/wtd"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "pipeline")
	c.Register(&fetchCmd{}, "pipeline")
	c.Register(&convertCmd{}, "pipeline")
	c.Register(&valueCmd{}, "pipeline")

	c.Register(&exportCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
}

// DefaultCommand is the subcommand executed when none is given.
const DefaultCommand = "run"

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "tracker.toml", "Path to the configuration file (TOML, or YAML for .yaml/.yml)")

// app holds what every subcommand needs, built from the configuration file.
type app struct {
	cfg     *tracker.Config
	logger  zerolog.Logger
	tracker *tracker.Tracker
}

// newApp loads the configuration and wires the tracker to the remote API.
func newApp() (*app, error) {
	cfg, err := tracker.LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	logger := tracker.NewLogger(cfg.LogLevel)
	client := wtd.NewClient(cfg.APIKey, wtd.WithBaseURL(cfg.BaseURL), wtd.WithLogger(logger))
	return &app{
		cfg:     cfg,
		logger:  logger,
		tracker: tracker.New(cfg, client, logger),
	}, nil
}

func (a *app) exporter() *export.Exporter {
	return export.New(a.cfg, a.tracker.Store(), a.logger)
}

// summary computes the summary markdown from the stored series.
func (a *app) summary() (string, error) {
	s, err := tracker.Summarize(a.cfg, a.tracker.Store())
	if err != nil {
		return "", err
	}
	return renderer.SummaryMarkdown(s), nil
}

// start loads the application, printing the error on failure.
func start() (*app, subcommands.ExitStatus) {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration %q: %v\n", *configFile, err)
		return nil, subcommands.ExitFailure
	}
	return a, subcommands.ExitSuccess
}

// fail prints err and returns the failure status.
func fail(what string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	return subcommands.ExitFailure
}

// printMarkdown renders md on the terminal, falling back to the raw markdown.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}
