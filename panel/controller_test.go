package panel_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	pq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bidfilter"
	"github.com/fwojciec/bidfilter/goquery"
	"github.com/fwojciec/bidfilter/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var now = time.Date(2026, time.October, 14, 15, 30, 0, 0, time.UTC)

// The list is deliberately out of date order.
const page = `<html><body><div id="list">
<div id="undated" class="bid-card"><p>Bid No: 4</p><p>Start Date:</p></div>
<div id="old" class="bid-card"><p>Bid No: 3</p><p>Start Date: 01-09-2026</p></div>
<div id="today" class="bid-card"><p>Bid No: 1</p><p>Start Date: 14-10-2026 10:00 AM</p></div>
<div id="week" class="bid-card"><p>Bid No: 2</p><p>Start Date: 10-10-2026</p></div>
</div></body></html>`

func newController(t *testing.T, src string, settings bidfilter.Settings) *panel.Controller {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)

	parser := goquery.NewParser()
	parser.Location = time.UTC
	session := bidfilter.NewSession(settings)
	session.Now = func() time.Time { return now }

	return panel.NewController(doc, parser, goquery.NewReorderer(), goquery.NewClassMarker(), session)
}

func node(t *testing.T, c *panel.Controller, id string) *html.Node {
	t.Helper()
	sel := pq.NewDocumentFromNode(c.Doc).Find("#" + id)
	require.Equal(t, 1, sel.Length())
	return sel.Get(0)
}

func marked(t *testing.T, c *panel.Controller, mark string) []string {
	t.Helper()
	var res []string
	for _, id := range []string{"undated", "old", "today", "week"} {
		if goquery.HasMark(node(t, c, id), mark) {
			res = append(res, id)
		}
	}
	return res
}

func order(t *testing.T, c *panel.Controller) []string {
	t.Helper()
	var res []string
	pq.NewDocumentFromNode(c.Doc).Find("#list > div").Each(func(_ int, s *pq.Selection) {
		id, _ := s.Attr("id")
		res = append(res, id)
	})
	return res
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, n))
	return buf.String()
}

var noSettings = bidfilter.Settings{}

func TestController_ShowToday(t *testing.T) {
	t.Parallel()

	t.Run("highlights today's bids and becomes the active filter", func(t *testing.T) {
		t.Parallel()

		c := newController(t, page, noSettings)

		status := c.ShowToday(panel.DefaultOptions())

		assert.Equal(t, bidfilter.Info("Found 1 bids from today"), status)
		assert.Equal(t, []string{"today"}, marked(t, c, bidfilter.MarkToday))
		assert.Empty(t, marked(t, c, bidfilter.MarkHidden))
		assert.Equal(t, bidfilter.ViewToday, c.Session.ActiveView)
	})

	t.Run("hides the other bids on request", func(t *testing.T) {
		t.Parallel()

		c := newController(t, page, noSettings)
		opts := panel.DefaultOptions()
		opts.HideOthers = true

		c.ShowToday(opts)

		assert.Equal(t, []string{"undated", "old", "week"}, marked(t, c, bidfilter.MarkHidden))
	})

	t.Run("warns when no bid starts today", func(t *testing.T) {
		t.Parallel()

		c := newController(t, page, noSettings)
		c.Session.Now = func() time.Time { return now.AddDate(0, 0, 3) }
		opts := panel.DefaultOptions()
		opts.HideOthers = true

		status := c.ShowToday(opts)

		assert.Equal(t, bidfilter.Warning("Found 0 bids from today"), status)
		assert.Empty(t, marked(t, c, bidfilter.MarkHidden))
	})

	t.Run("hides old bids when the setting is on", func(t *testing.T) {
		t.Parallel()

		c := newController(t, page, bidfilter.Settings{HideOldBids: true})

		c.ShowToday(panel.DefaultOptions())

		assert.Equal(t, []string{"old"}, marked(t, c, bidfilter.MarkHidden))
	})
}

func TestController_ShowThisWeek(t *testing.T) {
	t.Parallel()

	c := newController(t, page, noSettings)
	c.ShowToday(panel.DefaultOptions())

	status := c.ShowThisWeek(panel.DefaultOptions())

	assert.Equal(t, bidfilter.Info("Found 2 bids from this week"), status)
	assert.Equal(t, []string{"today", "week"}, marked(t, c, bidfilter.MarkWeek))
	assert.Empty(t, marked(t, c, bidfilter.MarkToday))
	assert.Equal(t, bidfilter.ViewWeek, c.Session.ActiveView)
}

func TestController_SortByNewest(t *testing.T) {
	t.Parallel()

	t.Run("moves dated bids first, newest first", func(t *testing.T) {
		t.Parallel()

		c := newController(t, page, noSettings)

		status := c.SortByNewest(panel.DefaultOptions())

		assert.Equal(t, bidfilter.Info(panel.MsgSorted), status)
		assert.Equal(t, []string{"today", "week", "old", "undated"}, order(t, c))
		assert.Equal(t, bidfilter.ViewSort, c.Session.ActiveView)
	})

	t.Run("declines without dated bids", func(t *testing.T) {
		t.Parallel()

		c := newController(t, `<html><body><div id="list">
<div id="a" class="bid-card"><p>Bid No: 1</p><p>Start Date:</p></div>
<div id="b" class="bid-card"><p>Bid No: 2</p><p>Start Date: soon</p></div>
</div></body></html>`, noSettings)

		status := c.SortByNewest(panel.DefaultOptions())

		assert.Equal(t, bidfilter.Warning(panel.MsgNoDates), status)
		assert.Equal(t, []string{"a", "b"}, order(t, c))
		assert.Equal(t, bidfilter.ViewNone, c.Session.ActiveView)
	})

	t.Run("declines without a shared container", func(t *testing.T) {
		t.Parallel()

		c := newController(t, `<html><body>
<div class="bid-card"><p>Bid No: 1</p><p>Start Date: 01-01-2024</p></div>
<section><div class="bid-card"><p>Bid No: 2</p><p>Start Date: 02-01-2024</p></div></section>
</body></html>`, noSettings)
		c.Bids()
		before := render(t, c.Doc)

		status := c.SortByNewest(panel.DefaultOptions())

		assert.Equal(t, bidfilter.Warning(panel.MsgNoContainer), status)
		assert.Equal(t, before, render(t, c.Doc))
	})

	t.Run("declines on an unrecognized page", func(t *testing.T) {
		t.Parallel()

		c := newController(t, `<html><body><p>nothing</p></body></html>`, noSettings)

		assert.Equal(t, bidfilter.Warning(panel.MsgNoContainer), c.SortByNewest(panel.DefaultOptions()))
		assert.False(t, c.RestoreOriginalOrder())
	})
}

func TestController_Reset(t *testing.T) {
	t.Parallel()

	c := newController(t, page, noSettings)
	c.SortByNewest(panel.DefaultOptions())
	opts := panel.DefaultOptions()
	opts.HideOthers = true
	c.ShowThisWeek(opts)

	status := c.Reset()

	assert.Equal(t, bidfilter.Info(panel.MsgReset), status)
	assert.Equal(t, []string{"undated", "old", "today", "week"}, order(t, c))
	for _, mark := range bidfilter.AllMarks {
		assert.Empty(t, marked(t, c, mark), mark)
	}
	assert.Equal(t, bidfilter.ViewNone, c.Session.ActiveView)
}

func TestController_HideOlderThan(t *testing.T) {
	t.Parallel()

	c := newController(t, page, noSettings)

	assert.Equal(t, 1, c.HideOlderThan(bidfilter.OldBidDays))
	assert.Equal(t, []string{"old"}, marked(t, c, bidfilter.MarkHidden))

	c.ShowHidden()
	assert.Empty(t, marked(t, c, bidfilter.MarkHidden))
}

func TestController_ApplySettings(t *testing.T) {
	t.Parallel()

	t.Run("auto-highlights today without activating a filter", func(t *testing.T) {
		t.Parallel()

		c := newController(t, page, bidfilter.DefaultSettings())

		status := c.ApplySettings()

		assert.Equal(t, bidfilter.Info(panel.MsgAutoHighlight), status)
		assert.Equal(t, []string{"today"}, marked(t, c, bidfilter.MarkToday))
		assert.Equal(t, bidfilter.ViewNone, c.Session.ActiveView)
	})

	t.Run("leaves an active filter alone", func(t *testing.T) {
		t.Parallel()

		c := newController(t, page, bidfilter.Settings{AutoHighlight: true, HideOldBids: true})
		c.ShowThisWeek(panel.DefaultOptions())

		status := c.ApplySettings()

		assert.Equal(t, bidfilter.Info(panel.MsgReady), status)
		assert.Equal(t, []string{"today", "week"}, marked(t, c, bidfilter.MarkWeek))
		assert.Empty(t, marked(t, c, bidfilter.MarkToday))
		assert.Equal(t, []string{"old"}, marked(t, c, bidfilter.MarkHidden))
	})
}

func TestController_Reapply(t *testing.T) {
	t.Parallel()

	t.Run("re-runs the active filter", func(t *testing.T) {
		t.Parallel()

		c := newController(t, page, noSettings)
		c.ShowThisWeek(panel.DefaultOptions())
		c.ShowAll()

		status := c.Reapply(panel.ReasonMutation)

		assert.Equal(t, bidfilter.Info("Found 2 bids from this week"), status)
		assert.Equal(t, []string{"today", "week"}, marked(t, c, bidfilter.MarkWeek))
		assert.Equal(t, bidfilter.ViewWeek, c.Session.ActiveView)
	})

	t.Run("re-sorts after new bids arrive", func(t *testing.T) {
		t.Parallel()

		c := newController(t, page, noSettings)
		c.SortByNewest(panel.DefaultOptions())

		list := node(t, c, "list")
		fresh, err := html.ParseFragment(strings.NewReader(`<div id="new" class="bid-card"><p>Bid No: 5</p><p>Start Date: 13-10-2026</p></div>`), list)
		require.NoError(t, err)
		list.AppendChild(fresh[0])

		status := c.Reapply(panel.ReasonMutation)

		assert.Equal(t, bidfilter.Info(panel.MsgSorted), status)
		assert.Equal(t, []string{"today", "new", "week", "old", "undated"}, order(t, c))
	})

	t.Run("unhides bids when old bids may show again", func(t *testing.T) {
		t.Parallel()

		c := newController(t, page, bidfilter.Settings{HideOldBids: true})
		c.ApplySettings()
		require.Equal(t, []string{"old"}, marked(t, c, bidfilter.MarkHidden))

		status := c.UpdateSettings(bidfilter.Settings{AutoHighlight: true})

		assert.Equal(t, bidfilter.Info(panel.MsgAutoHighlight), status)
		assert.Empty(t, marked(t, c, bidfilter.MarkHidden))
		assert.Equal(t, []string{"today"}, marked(t, c, bidfilter.MarkToday))
	})
}
