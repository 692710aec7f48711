package xxhash_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/bidfilter"
	"github.com/fwojciec/bidfilter/goquery"
	"github.com/fwojciec/bidfilter/xxhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const page = `<html><body><div id="list">
<div class="bid-card"><p>Bid No: 1</p><p id="s1">Start Date: 01-01-2099</p></div>
<div class="bid-card"><p>Bid No: 2</p><p>Start Date:</p></div>
<div class="bid-card"><p>Bid No: 3</p><p>Start Date: 01-01-2000</p></div>
</div></body></html>`

func parse(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, n))
	return buf.String()
}

func sideTableParser(tr *xxhash.Tracker) *goquery.Parser {
	p := goquery.NewParser()
	p.Tracker = tr
	p.Dates = tr
	p.Location = time.UTC
	return p
}

func numbers(bids []*bidfilter.Bid) []string {
	res := make([]string, len(bids))
	for i, b := range bids {
		res[i] = b.Number
	}
	return res
}

func TestTracker(t *testing.T) {
	t.Parallel()

	t.Run("leaves the document untouched", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, page)
		before := render(t, doc)
		tr := xxhash.NewTracker()

		bids := sideTableParser(tr).ParseAll(doc)

		require.Len(t, bids, 3)
		assert.Equal(t, before, render(t, doc))
		assert.Equal(t, 3, tr.Len())
	})

	t.Run("keeps original order across re-parsed pages", func(t *testing.T) {
		t.Parallel()

		tr := xxhash.NewTracker()
		p := sideTableParser(tr)
		doc := parse(t, page)
		sorted := bidfilter.SortByNewest(p.ParseAll(doc))
		require.True(t, goquery.NewReorderer().Reorder(sorted))

		reloaded := parse(t, render(t, doc))
		bids := p.ParseAll(reloaded)

		assert.Equal(t, []string{"1", "3", "2"}, numbers(bids))
		assert.Equal(t, []string{"1", "2", "3"}, numbers(bidfilter.SortByOriginalOrder(bids)))
	})

	t.Run("reuses cached dates after the date text disappears", func(t *testing.T) {
		t.Parallel()

		tr := xxhash.NewTracker()
		p := sideTableParser(tr)
		doc := parse(t, page)
		require.True(t, p.ParseAll(doc)[0].Dated())

		s1 := goquery.NewParser().Locator.Locate(doc)[0].FirstChild.NextSibling
		require.Equal(t, "s1", s1.Attr[0].Val)
		s1.FirstChild.Data = "Start Date:"
		bids := p.ParseAll(doc)

		require.True(t, bids[0].Dated())
		assert.Empty(t, bids[0].StartDateRaw)
		assert.True(t, time.Date(2099, time.January, 1, 0, 0, 0, 0, time.UTC).Equal(bids[0].StartDate))
	})

	t.Run("stamps once per fingerprint", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<div id="a">same</div><div id="b">other</div>`)
		a := doc.FirstChild.LastChild.FirstChild
		tr := xxhash.NewTracker()

		tr.StampIfAbsent(a, 4)
		tr.StampIfAbsent(a, 8)
		tr.StampIfAbsent(nil, 1)

		i, ok := tr.Order(a)
		require.True(t, ok)
		assert.Equal(t, 4, i)
		_, ok = tr.Order(a.NextSibling)
		assert.False(t, ok)
	})
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<div>Bid No: 1 Start Date: 01-01-2024</div><div>Bid No: 1   Start Date:</div><div>Bid No: 2 Start Date:</div><div>Bid No: 2 Start Date:</div>`)
	body := doc.FirstChild.LastChild
	first := body.FirstChild
	second := first.NextSibling
	third := second.NextSibling
	fourth := third.NextSibling

	assert.Equal(t, xxhash.Fingerprint(first), xxhash.Fingerprint(second))
	assert.NotEqual(t, xxhash.Fingerprint(second), xxhash.Fingerprint(third))
	assert.Equal(t, xxhash.Fingerprint(third), xxhash.Fingerprint(fourth))
}
