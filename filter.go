package bidfilter

import (
	"cmp"
	"slices"
	"time"
)

// SortByNewest returns dated bids newest first followed by undated bids in
// original order. The input slice is not modified.
func SortByNewest(bids []*Bid) []*Bid {
	var dated, undated []*Bid
	for _, b := range bids {
		if b.Dated() {
			dated = append(dated, b)
		} else {
			undated = append(undated, b)
		}
	}

	slices.SortStableFunc(dated, func(a, b *Bid) int {
		return b.StartDate.Compare(a.StartDate)
	})
	slices.SortStableFunc(undated, func(a, b *Bid) int {
		return cmp.Compare(a.Order, b.Order)
	})

	return append(dated, undated...)
}

// SortByOriginalOrder returns bids ascending by stamped original index.
func SortByOriginalOrder(bids []*Bid) []*Bid {
	sorted := slices.Clone(bids)
	slices.SortStableFunc(sorted, func(a, b *Bid) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return sorted
}

// FilterToday keeps bids starting on now's calendar day.
func FilterToday(bids []*Bid, now time.Time) []*Bid {
	return filterBids(bids, func(b *Bid) bool {
		return IsToday(b.StartDate, now)
	})
}

// FilterThisWeek keeps bids starting within the last seven calendar days.
func FilterThisWeek(bids []*Bid, now time.Time) []*Bid {
	return filterBids(bids, func(b *Bid) bool {
		return IsWithinDays(b.StartDate, 7, now)
	})
}

// FilterDateRange keeps bids whose start day lies within [from, to].
// A zero bound is open.
func FilterDateRange(bids []*Bid, from, to time.Time) []*Bid {
	if !from.IsZero() {
		from = StripTime(from)
	}
	if !to.IsZero() {
		to = StripTime(to)
	}
	return filterBids(bids, func(b *Bid) bool {
		if !b.Dated() {
			return false
		}
		var target time.Time
		switch {
		case !from.IsZero():
			target = day(b.StartDate, from)
		case !to.IsZero():
			target = day(b.StartDate, to)
		default:
			return true
		}
		if !from.IsZero() && target.Before(from) {
			return false
		}
		if !to.IsZero() && target.After(to) {
			return false
		}
		return true
	})
}

// OlderThan returns dated bids that fall outside the last days calendar days.
// Upcoming bids are outside the window too. Undated bids are never returned.
func OlderThan(bids []*Bid, days int, now time.Time) []*Bid {
	return filterBids(bids, func(b *Bid) bool {
		return b.Dated() && !IsWithinDays(b.StartDate, days, now)
	})
}

func filterBids(bids []*Bid, keep func(*Bid) bool) []*Bid {
	res := make([]*Bid, 0, len(bids))
	for _, b := range bids {
		if keep(b) {
			res = append(res, b)
		}
	}
	return res
}
