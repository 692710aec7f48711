package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/bidfilter"
	"github.com/fwojciec/bidfilter/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestBidParser_ParseAll(t *testing.T) {
	t.Parallel()

	t.Run("delegates to ParseAllFn", func(t *testing.T) {
		t.Parallel()

		doc := &html.Node{Type: html.DocumentNode}
		want := []*bidfilter.Bid{{Number: "1"}}
		var calledWith *html.Node
		p := &mock.BidParser{
			ParseAllFn: func(d *html.Node) []*bidfilter.Bid {
				calledWith = d
				return want
			},
		}

		assert.Equal(t, want, p.ParseAll(doc))
		assert.Same(t, doc, calledWith)
	})
}

func TestSettingsService_UpdateSettings(t *testing.T) {
	t.Parallel()

	t.Run("delegates to UpdateSettingsFn", func(t *testing.T) {
		t.Parallel()

		on := true
		var calledWith bidfilter.SettingsUpdate
		s := &mock.SettingsService{
			UpdateSettingsFn: func(_ context.Context, upd bidfilter.SettingsUpdate) (bidfilter.Settings, error) {
				calledWith = upd
				return bidfilter.Settings{HideOldBids: *upd.HideOldBids}, nil
			},
		}

		got, err := s.UpdateSettings(context.Background(), bidfilter.SettingsUpdate{HideOldBids: &on})

		require.NoError(t, err)
		assert.True(t, got.HideOldBids)
		assert.Same(t, &on, calledWith.HideOldBids)
	})
}
