package goquery_test

import (
	"testing"
	"time"

	"github.com/fwojciec/bidfilter"
	"github.com/fwojciec/bidfilter/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const listingPage = `<html><body>
<div id="list" class="bid-card-list">
	<div id="b1" class="bid-card">
		<p>Bid No: 1</p>
		<p>Items: Laptop</p>
		<p class="start">Start Date: 01-01-2099</p>
		<p>End Date: 15-01-2099 5:00 PM</p>
	</div>
	<div id="b2" class="bid-card">
		<p>Bid No: 2</p>
		<p class="start">Start Date:</p>
	</div>
	<div id="b3" class="bid-card">
		<p>Bid No: 3</p>
		<p>Department: Ministry of Railways</p>
		<p class="start">Start Date: 01-01-2000</p>
	</div>
</div>
</body></html>`

func newUTCParser() *goquery.Parser {
	p := goquery.NewParser()
	p.Location = time.UTC
	return p
}

func TestParser_ParseAll(t *testing.T) {
	t.Parallel()

	t.Run("extracts every bid with its dates", func(t *testing.T) {
		t.Parallel()

		doc := parseHTML(t, listingPage)

		bids := newUTCParser().ParseAll(doc)

		require.Len(t, bids, 3)
		assert.Equal(t, []string{"1", "2", "3"}, bidNumbers(bids))

		assert.True(t, bids[0].Dated())
		assert.True(t, time.Date(2099, time.January, 1, 0, 0, 0, 0, time.UTC).Equal(bids[0].StartDate))
		assert.True(t, time.Date(2099, time.January, 15, 17, 0, 0, 0, time.UTC).Equal(bids[0].EndDate))
		assert.Equal(t, "Laptop", bids[0].Items)

		assert.False(t, bids[1].Dated())
		assert.Empty(t, bids[1].StartDateRaw)

		assert.True(t, bids[2].Dated())
		assert.Equal(t, "01-01-2000", bids[2].StartDateRaw)
		assert.Equal(t, "Ministry of Railways", bids[2].Department)

		for i, b := range bids {
			assert.Equal(t, i, b.Order)
			assert.Same(t, b.Anchor, b.Ordering)
		}
	})

	t.Run("sorting newest first moves undated bids last", func(t *testing.T) {
		t.Parallel()

		doc := parseHTML(t, listingPage)
		p := newUTCParser()
		r := goquery.NewReorderer()

		sorted := bidfilter.SortByNewest(p.ParseAll(doc))
		require.Equal(t, []string{"1", "3", "2"}, bidNumbers(sorted))
		require.True(t, r.Reorder(sorted))
		assert.Equal(t, []string{"b1", "b3", "b2"}, childIDs(find(t, doc, "#list")))

		again := p.ParseAll(doc)
		assert.Equal(t, []string{"1", "3", "2"}, bidNumbers(again))
		assert.Equal(t, []int{0, 2, 1}, orders(again))

		require.True(t, r.RestoreOriginalOrder(again))
		assert.Equal(t, []string{"b1", "b2", "b3"}, childIDs(find(t, doc, "#list")))
	})

	t.Run("reuses the cached start date when the text disappears", func(t *testing.T) {
		t.Parallel()

		doc := parseHTML(t, listingPage)
		p := newUTCParser()
		first := p.ParseAll(doc)
		require.True(t, first[0].Dated())

		find(t, doc, "#b1 .start").FirstChild.Data = "Start Date:"
		bids := p.ParseAll(doc)

		require.Len(t, bids, 3)
		assert.Empty(t, bids[0].StartDateRaw)
		assert.True(t, first[0].StartDate.Equal(bids[0].StartDate))
		assert.False(t, bids[1].Dated())
	})

	t.Run("uses wrappers under the list as ordering nodes", func(t *testing.T) {
		t.Parallel()

		doc := parseHTML(t, `<html><body><ul id="list">
<li id="w1"><div class="bid-card"><p>Bid No: 1</p><p>Start Date: 01-01-2024</p></div></li>
<li id="w2"><div class="bid-card"><p>Bid No: 2</p><p>Start Date: 02-01-2024</p></div></li>
</ul></body></html>`)

		bids := newUTCParser().ParseAll(doc)

		require.Len(t, bids, 2)
		assert.Equal(t, []string{"w1", "w2"}, ids([]*html.Node{bids[0].Ordering, bids[1].Ordering}))
		assert.NotSame(t, bids[0].Anchor, bids[0].Ordering)
	})

	t.Run("a lone card is its own ordering node", func(t *testing.T) {
		t.Parallel()

		doc := parseHTML(t, `<html><body><div id="only" class="bid-card"><p>Bid No: 1</p><p>Start Date: 01-01-2024</p></div></body></html>`)

		bids := newUTCParser().ParseAll(doc)

		require.Len(t, bids, 1)
		assert.Same(t, find(t, doc, "#only"), bids[0].Ordering)
	})

	t.Run("returns nothing for an unrecognized page", func(t *testing.T) {
		t.Parallel()

		doc := parseHTML(t, `<html><body><p>No bids today.</p></body></html>`)

		assert.Empty(t, newUTCParser().ParseAll(doc))
	})
}

func bidNumbers(bids []*bidfilter.Bid) []string {
	res := make([]string, len(bids))
	for i, b := range bids {
		res[i] = b.Number
	}
	return res
}

func orders(bids []*bidfilter.Bid) []int {
	res := make([]int, len(bids))
	for i, b := range bids {
		res[i] = b.Order
	}
	return res
}
