// Package panel implements the controller behind the bid filter panel. It
// composes extraction, filtering, re-ordering and markers against an
// explicit session instead of global state.
package panel

import (
	"fmt"
	"slices"

	"github.com/fwojciec/bidfilter"
	"golang.org/x/net/html"
)

// Reason says why the active filter is being re-applied.
type Reason string

// Reapply reasons.
const (
	ReasonMutation       Reason = "mutation"
	ReasonSettingsChange Reason = "settings-change"
)

// Status messages.
const (
	MsgSorted        = "Sorted by newest first"
	MsgNoContainer   = "Unable to locate bid list to sort"
	MsgNoDates       = "No start dates found to sort"
	MsgReset         = "Filters reset"
	MsgAutoHighlight = "Auto-highlighted today's bids"
	MsgReady         = "Ready"
	msgFoundToday    = "Found %d bids from today"
	msgFoundThisWeek = "Found %d bids from this week"
)

// Options control a highlight or sort operation.
type Options struct {
	// HideOthers hides every bid the filter does not keep.
	HideOthers bool

	// SetActive records the operation as the session's active filter.
	SetActive bool

	// ResetView clears existing markers before highlighting.
	ResetView bool

	// StatusMessage overrides the default status text.
	StatusMessage string
}

// DefaultOptions returns the options used by a direct user action.
func DefaultOptions() Options {
	return Options{SetActive: true, ResetView: true}
}

// Controller runs panel actions against one document.
type Controller struct {
	Doc       *html.Node
	Parser    bidfilter.BidParser
	Reorderer bidfilter.Reorderer
	Marker    bidfilter.Marker
	Session   *bidfilter.Session
}

// NewController creates a Controller.
func NewController(doc *html.Node, parser bidfilter.BidParser, reorderer bidfilter.Reorderer, marker bidfilter.Marker, session *bidfilter.Session) *Controller {
	return &Controller{
		Doc:       doc,
		Parser:    parser,
		Reorderer: reorderer,
		Marker:    marker,
		Session:   session,
	}
}

// Bids runs a fresh extraction pass.
func (c *Controller) Bids() []*bidfilter.Bid {
	return c.Parser.ParseAll(c.Doc)
}

// ShowToday highlights bids starting today.
func (c *Controller) ShowToday(opts Options) bidfilter.Status {
	bids := c.Bids()
	today := bidfilter.FilterToday(bids, c.Session.Time())
	status := c.highlight(bids, today, bidfilter.MarkToday, opts, fmt.Sprintf(msgFoundToday, len(today)))
	if opts.SetActive {
		c.Session.ActiveView = bidfilter.ViewToday
	}
	c.hideOld(bids)
	return status
}

// ShowThisWeek highlights bids starting within the last seven days.
func (c *Controller) ShowThisWeek(opts Options) bidfilter.Status {
	bids := c.Bids()
	week := bidfilter.FilterThisWeek(bids, c.Session.Time())
	status := c.highlight(bids, week, bidfilter.MarkWeek, opts, fmt.Sprintf(msgFoundThisWeek, len(week)))
	if opts.SetActive {
		c.Session.ActiveView = bidfilter.ViewWeek
	}
	c.hideOld(bids)
	return status
}

func (c *Controller) highlight(all, keep []*bidfilter.Bid, mark string, opts Options, msg string) bidfilter.Status {
	if opts.ResetView {
		c.unmark(all, bidfilter.AllMarks...)
	}
	for _, b := range keep {
		c.Marker.Mark(markTarget(b), mark)
	}
	if opts.HideOthers && len(keep) > 0 {
		for _, b := range all {
			if !slices.Contains(keep, b) {
				c.Marker.Mark(b.Target(), bidfilter.MarkHidden)
			}
		}
	}

	if opts.StatusMessage != "" {
		msg = opts.StatusMessage
	}
	if len(keep) == 0 {
		return bidfilter.Warning(msg)
	}
	return bidfilter.Info(msg)
}

// SortByNewest moves dated bids to the top of the list, newest first.
// Nothing moves when the bids share no safe container or none is dated.
func (c *Controller) SortByNewest(opts Options) bidfilter.Status {
	bids := c.Bids()
	sorted := bidfilter.SortByNewest(bids)

	if !c.Reorderer.CanReorder(sorted) {
		return bidfilter.Warning(MsgNoContainer)
	}
	if !slices.ContainsFunc(sorted, (*bidfilter.Bid).Dated) {
		return bidfilter.Warning(MsgNoDates)
	}
	if !c.Reorderer.Reorder(sorted) {
		return bidfilter.Warning(MsgNoContainer)
	}

	if opts.SetActive {
		c.Session.ActiveView = bidfilter.ViewSort
	}
	c.hideOld(bids)
	return bidfilter.Info(MsgSorted)
}

// Reset clears every marker, restores the original order and the active
// filter.
func (c *Controller) Reset() bidfilter.Status {
	bids := c.Bids()
	c.unmark(bids, bidfilter.AllMarks...)
	c.Reorderer.RestoreOriginalOrder(bids)
	c.Session.ActiveView = bidfilter.ViewNone
	c.hideOld(bids)
	return bidfilter.Info(MsgReset)
}

// RestoreOriginalOrder puts bids back in the order they were first seen.
func (c *Controller) RestoreOriginalOrder() bool {
	bids := c.Bids()
	if len(bids) == 0 {
		return false
	}
	return c.Reorderer.RestoreOriginalOrder(bids)
}

// HideOlderThan hides dated bids outside the last days calendar days and
// returns how many were hidden.
func (c *Controller) HideOlderThan(days int) int {
	return c.hideOlderThan(c.Bids(), days)
}

func (c *Controller) hideOlderThan(bids []*bidfilter.Bid, days int) int {
	old := bidfilter.OlderThan(bids, days, c.Session.Time())
	for _, b := range old {
		c.Marker.Mark(b.Target(), bidfilter.MarkHidden)
	}
	return len(old)
}

func (c *Controller) hideOld(bids []*bidfilter.Bid) {
	if c.Session.Settings.HideOldBids {
		c.hideOlderThan(bids, bidfilter.OldBidDays)
	}
}

// ApplySettings applies the session settings to a page with no active
// filter: today's bids are highlighted when AutoHighlight is set and old
// bids hidden when HideOldBids is set.
func (c *Controller) ApplySettings() bidfilter.Status {
	if c.Session.ActiveView == bidfilter.ViewNone && c.Session.Settings.AutoHighlight {
		return c.ShowToday(Options{ResetView: true, StatusMessage: MsgAutoHighlight})
	}
	c.hideOld(c.Bids())
	return bidfilter.Info(MsgReady)
}

// Reapply re-runs the active filter after the page or the settings changed.
func (c *Controller) Reapply(reason Reason) bidfilter.Status {
	opts := Options{ResetView: true}
	switch c.Session.ActiveView {
	case bidfilter.ViewToday:
		return c.ShowToday(opts)
	case bidfilter.ViewWeek:
		return c.ShowThisWeek(opts)
	case bidfilter.ViewSort:
		return c.SortByNewest(Options{})
	}
	if reason == ReasonSettingsChange && !c.Session.Settings.HideOldBids {
		c.ShowHidden()
	}
	return c.ApplySettings()
}

// UpdateSettings replaces the session settings and re-applies the active
// filter.
func (c *Controller) UpdateSettings(s bidfilter.Settings) bidfilter.Status {
	c.Session.Settings = s
	return c.Reapply(ReasonSettingsChange)
}

// ShowAll removes every marker from every bid.
func (c *Controller) ShowAll() {
	c.unmark(c.Bids(), bidfilter.AllMarks...)
}

// ShowHidden removes the hidden marker from every bid.
func (c *Controller) ShowHidden() {
	c.unmark(c.Bids(), bidfilter.MarkHidden)
}

func (c *Controller) unmark(bids []*bidfilter.Bid, names ...string) {
	for _, b := range bids {
		c.Marker.Unmark(b.Anchor, names...)
		if t := b.Target(); t != b.Anchor {
			c.Marker.Unmark(t, names...)
		}
	}
}

// markTarget returns the node highlights are applied to.
func markTarget(b *bidfilter.Bid) *html.Node {
	if b.Anchor != nil {
		return b.Anchor
	}
	return b.Ordering
}
