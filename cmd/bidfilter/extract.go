package main

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fwojciec/bidfilter"
	"github.com/fwojciec/bidfilter/etree"
	"github.com/fwojciec/bidfilter/fs"
	"github.com/fwojciec/bidfilter/htmltomarkdown"
	bidslog "github.com/fwojciec/bidfilter/slog"
	"golang.org/x/sync/errgroup"
)

// boundRe is the whole shape of a --from or --to day.
var boundRe = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// reportExt maps a report format to its file extension.
var reportExt = map[string]string{
	"text":     "txt",
	"json":     "json",
	"xml":      "xml",
	"markdown": "md",
}

// Validate checks flag combinations and date bounds before any page is read.
func (c *ExtractCmd) Validate() error {
	if c.Today && c.Week {
		return bidfilter.Errorf(bidfilter.EINVALID, "--today and --week are mutually exclusive")
	}
	if (c.Today || c.Week) && (c.From != "" || c.To != "") {
		return bidfilter.Errorf(bidfilter.EINVALID, "--from/--to cannot be combined with --today or --week")
	}
	if c.Format != "" {
		if _, ok := reportExt[c.Format]; !ok {
			return bidfilter.Errorf(bidfilter.EINVALID, "unknown format %q", c.Format)
		}
	}
	if c.Concurrency < 1 {
		return bidfilter.Errorf(bidfilter.EINVALID, "--concurrency must be at least 1")
	}
	return nil
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	loc, err := deps.Config.Location()
	if err != nil {
		return err
	}
	from, err := parseBound("from", c.From, loc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bidfilter.ErrorMessage(err))
		return err
	}
	to, err := parseBound("to", c.To, loc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bidfilter.ErrorMessage(err))
		return err
	}

	format := c.Format
	if format == "" {
		format = deps.Config.Format
	}
	enc, err := c.encoder(format, deps.Now)
	if err != nil {
		return err
	}

	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	// Each page gets its own tree and parser; results keep argument order.
	pages := make([][]*bidfilter.Bid, len(c.Files))
	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)
	for i, path := range c.Files {
		g.Go(func() error {
			doc, err := deps.Store.Load(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			p, err := deps.newParser(c.SideTable)
			if err != nil {
				return err
			}
			bids := bidslog.NewLoggingParser(p, deps.Logger.With("page", path)).ParseAll(doc)
			pages[i] = c.filter(bids, from, to, now())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bidfilter.ErrorMessage(err))
		return err
	}

	if c.OutDir != "" {
		w := fs.NewWriter(c.OutDir)
		for i, path := range c.Files {
			var buf bytes.Buffer
			if err := enc.Encode(&buf, pages[i]); err != nil {
				return err
			}
			out, err := w.WriteReport(deps.Ctx, path, reportExt[format], buf.Bytes())
			if err != nil {
				return err
			}
			fmt.Fprintf(deps.Stdout, "%s: %d bids -> %s\n", path, len(pages[i]), out)
		}
		return nil
	}

	var all []*bidfilter.Bid
	for _, bids := range pages {
		all = append(all, bids...)
	}
	if c.Newest {
		all = bidfilter.SortByNewest(all)
	}
	return enc.Encode(deps.Stdout, all)
}

func (c *ExtractCmd) filter(bids []*bidfilter.Bid, from, to, now time.Time) []*bidfilter.Bid {
	switch {
	case c.Today:
		bids = bidfilter.FilterToday(bids, now)
	case c.Week:
		bids = bidfilter.FilterThisWeek(bids, now)
	case !from.IsZero() || !to.IsZero():
		bids = bidfilter.FilterDateRange(bids, from, to)
	}
	if c.Newest {
		bids = bidfilter.SortByNewest(bids)
	}
	return bids
}

func (c *ExtractCmd) encoder(format string, now func() time.Time) (bidfilter.ReportEncoder, error) {
	switch format {
	case "text":
		return &bidfilter.TextEncoder{Now: now}, nil
	case "json":
		return &bidfilter.JSONEncoder{}, nil
	case "xml":
		return etree.NewEncoder(), nil
	case "markdown":
		enc := htmltomarkdown.NewReportEncoder(htmltomarkdown.NewConverter())
		enc.IncludeCard = c.Cards
		enc.Now = now
		return enc, nil
	}
	return nil, bidfilter.Errorf(bidfilter.EINVALID, "unknown format %q", format)
}

// parseBound parses a --from or --to day. An empty value is an open bound.
func parseBound(name, value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	value = strings.TrimSpace(value)
	t, ok := bidfilter.ParseDate(value, loc)
	if !ok || !boundRe.MatchString(value) {
		return time.Time{}, bidfilter.Errorf(bidfilter.EINVALID, "invalid --%s date %q, expected DD-MM-YYYY", name, value)
	}
	return t, nil
}
