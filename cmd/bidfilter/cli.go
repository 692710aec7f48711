package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/bidfilter"
	"github.com/fwojciec/bidfilter/goquery"
	"github.com/fwojciec/bidfilter/panel"
	bidslog "github.com/fwojciec/bidfilter/slog"
	"github.com/fwojciec/bidfilter/xxhash"
	"golang.org/x/net/html"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Config   Config
	Store    bidfilter.DocumentStore
	Settings bidfilter.SettingsService
	Now      func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every extraction pass"`

	Extract   ExtractCmd   `cmd:"" help:"Print the bids found on listing pages"`
	Sort      SortCmd      `cmd:"" help:"Move dated bids to the top, newest first"`
	Reset     ResetCmd     `cmd:"" help:"Clear highlights and restore the original order"`
	Highlight HighlightCmd `cmd:"" help:"Highlight bids starting today or this week"`
	Hide      HideCmd      `cmd:"" help:"Hide bids older than a number of days"`
	Apply     ApplyCmd     `cmd:"" help:"Apply the saved settings to a page"`
	Settings  SettingsCmd  `cmd:"" help:"Show or change the saved settings"`
	Watch     WatchCmd     `cmd:"" help:"Re-apply an action whenever a page changes"`
}

// PageArgs are the arguments shared by commands that rewrite a page.
type PageArgs struct {
	File string `arg:"" type:"existingfile" help:"Listing page (HTML)"`
	Out  string `short:"o" type:"path" help:"Write the result here instead of updating FILE in place"`
}

// Output returns the path the result is written to.
func (a PageArgs) Output() string {
	if a.Out != "" {
		return a.Out
	}
	return a.File
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Files       []string `arg:"" type:"existingfile" help:"Listing pages (HTML)"`
	Today       bool     `help:"Only bids starting today"`
	Week        bool     `help:"Only bids starting within the last seven days"`
	From        string   `help:"Only bids starting on or after this day (DD-MM-YYYY)"`
	To          string   `help:"Only bids starting on or before this day (DD-MM-YYYY)"`
	Newest      bool     `short:"n" help:"Sort newest first"`
	Format      string   `short:"f" help:"Report format: text, json, xml or markdown (default from config)"`
	Cards       bool     `help:"Include card content in markdown reports"`
	SideTable   bool     `help:"Track order in memory instead of page attributes"`
	OutDir      string   `type:"path" help:"Write one report per page into this directory"`
	Concurrency int      `short:"c" default:"4" help:"Pages parsed in parallel"`
}

// SortCmd is the "sort" subcommand.
type SortCmd struct {
	PageArgs `embed:""`
}

// ResetCmd is the "reset" subcommand.
type ResetCmd struct {
	PageArgs `embed:""`
}

// HighlightCmd is the "highlight" subcommand.
type HighlightCmd struct {
	PageArgs   `embed:""`
	Week       bool `help:"Highlight this week's bids instead of today's"`
	HideOthers bool `help:"Hide bids that are not highlighted"`
}

// HideCmd is the "hide" subcommand.
type HideCmd struct {
	PageArgs `embed:""`
	Days     int `default:"7" help:"Keep bids starting within this many days"`
}

// ApplyCmd is the "apply" subcommand.
type ApplyCmd struct {
	PageArgs `embed:""`
}

// SettingsCmd is the "settings" subcommand.
type SettingsCmd struct {
	AutoHighlight *bool `help:"Highlight today's bids when a page is opened (true|false)"`
	HideOldBids   *bool `help:"Hide bids older than seven days (true|false)"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	PageArgs  `embed:""`
	Action    string        `short:"a" enum:"sort,today,week,apply" default:"apply" help:"Action to re-apply: sort, today, week or apply"`
	SideTable bool          `help:"Track order in memory instead of page attributes"`
	Interval  time.Duration `help:"How often to check the page (default from config)"`
	Window    time.Duration `help:"Quiet period before re-applying (default from config)"`
}

// newParser builds the extraction pipeline. With sideTable set, order
// stamps and cached dates live in memory instead of on the page.
func (d *Dependencies) newParser(sideTable bool) (*goquery.Parser, error) {
	loc, err := d.Config.Location()
	if err != nil {
		return nil, err
	}
	p := goquery.NewParser()
	p.Locator = goquery.NewLocator(d.Config.CardHints...)
	p.Location = loc
	if sideTable {
		t := xxhash.NewTracker()
		p.Tracker = t
		p.Dates = t
	}
	return p, nil
}

// newController builds a controller for doc in a fresh session.
func (d *Dependencies) newController(doc *html.Node, parser bidfilter.BidParser, settings bidfilter.Settings) *panel.Controller {
	session := bidfilter.NewSession(settings)
	if d.Now != nil {
		session.Now = d.Now
	}
	logger := d.Logger.With("session", session.ID)
	return panel.NewController(
		doc,
		bidslog.NewLoggingParser(parser, logger),
		bidslog.NewLoggingReorderer(goquery.NewReorderer(), logger),
		goquery.NewClassMarker(),
		session,
	)
}

// runPage loads a page, runs fn against it and writes the result.
func (d *Dependencies) runPage(args PageArgs, fn func(c *panel.Controller) bidfilter.Status) error {
	doc, err := d.Store.Load(d.Ctx, args.File)
	if err != nil {
		fmt.Fprintf(d.Stderr, "error: %s\n", bidfilter.ErrorMessage(err))
		return err
	}
	settings, err := d.Settings.FindSettings(d.Ctx)
	if err != nil {
		return err
	}
	parser, err := d.newParser(false)
	if err != nil {
		return err
	}

	status := fn(d.newController(doc, parser, settings))

	if err := d.Store.Save(d.Ctx, args.Output(), doc); err != nil {
		return fmt.Errorf("failed to save %s: %w", args.Output(), err)
	}
	printStatus(d.Stdout, status)
	return nil
}

// printStatus writes a status line. Warnings are colored when w is a terminal.
func printStatus(w io.Writer, s bidfilter.Status) {
	if s.Level == bidfilter.StatusWarning {
		style := lipgloss.NewRenderer(w).NewStyle().Foreground(lipgloss.Color("3"))
		fmt.Fprintln(w, style.Render("Warning: "+s.Message))
		return
	}
	fmt.Fprintln(w, s.Message)
}
