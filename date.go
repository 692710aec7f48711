package bidfilter

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateValuePattern matches a listing date: DD-MM-YYYY with an optional
// 12-hour time such as "4:05 PM". Callers add the (?i) flag.
const DateValuePattern = `\d{2}-\d{2}-\d{4}(?:\s+\d{1,2}:\d{2}\s*(?:AM|PM))?`

var (
	dateTimeRe = regexp.MustCompile(`(?i)(\d{2})-(\d{2})-(\d{4})\s+(\d{1,2}):(\d{2})\s*(AM|PM)`)
	dateOnlyRe = regexp.MustCompile(`(\d{2})-(\d{2})-(\d{4})`)
)

// ParseDate parses the first listing date found in text, interpreted in loc.
// Without a time component the result is midnight of that day.
// It returns false for missing or malformed input.
func ParseDate(text string, loc *time.Location) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	if m := dateTimeRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[4])
		minute, _ := strconv.Atoi(m[5])
		if hour < 1 || hour > 12 || minute > 59 {
			return time.Time{}, false
		}
		switch strings.ToUpper(m[6]) {
		case "PM":
			if hour != 12 {
				hour += 12
			}
		case "AM":
			if hour == 12 {
				hour = 0
			}
		}
		return calendarDate(m[1], m[2], m[3], hour, minute, loc)
	}

	if m := dateOnlyRe.FindStringSubmatch(text); m != nil {
		return calendarDate(m[1], m[2], m[3], 0, 0, loc)
	}

	return time.Time{}, false
}

// calendarDate builds a time, rejecting days that time.Date would normalize
// into a neighbouring month (31-02-2024).
func calendarDate(dd, mm, yyyy string, hour, minute int, loc *time.Location) (time.Time, bool) {
	day, _ := strconv.Atoi(dd)
	month, _ := strconv.Atoi(mm)
	year, _ := strconv.Atoi(yyyy)
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

// StripTime returns midnight of t's calendar day in t's location.
func StripTime(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// day returns the calendar day of d as seen from now's location.
func day(d, now time.Time) time.Time {
	return StripTime(d.In(now.Location()))
}

// IsToday reports whether d falls on now's calendar day.
func IsToday(d, now time.Time) bool {
	if d.IsZero() {
		return false
	}
	return day(d, now).Equal(StripTime(now))
}

// IsYesterday reports whether d falls on the calendar day before now.
func IsYesterday(d, now time.Time) bool {
	if d.IsZero() {
		return false
	}
	return day(d, now).Equal(StripTime(now).AddDate(0, 0, -1))
}

// IsWithinDays reports whether d falls within the inclusive window of the
// last n calendar days ending today: [today-(n-1), today].
func IsWithinDays(d time.Time, n int, now time.Time) bool {
	if d.IsZero() || n <= 0 {
		return false
	}
	today := StripTime(now)
	start := today.AddDate(0, 0, -(n - 1))
	target := day(d, now)
	return !target.Before(start) && !target.After(today)
}

// FormatRelative describes d relative to now: "Today", "Yesterday",
// "N days ago" or "Upcoming".
func FormatRelative(d, now time.Time) string {
	if d.IsZero() {
		return ""
	}
	if IsToday(d, now) {
		return "Today"
	}
	if IsYesterday(d, now) {
		return "Yesterday"
	}
	// Rounding absorbs 23h/25h days around DST changes.
	days := int(math.Round(StripTime(now).Sub(day(d, now)).Hours() / 24))
	if days > 0 {
		return strconv.Itoa(days) + " days ago"
	}
	return "Upcoming"
}
