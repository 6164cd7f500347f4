// Package fetcher turns filtered article URLs into scraped article records.
// Category and publication date are derived from the URL itself; the content
// fields come from an HTML field extraction capability. A failure on any one
// field yields a nil field, never a missing record.
package fetcher

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrNoDateSegment is returned when a URL carries no parsable date segment.
var ErrNoDateSegment = errors.New("no date segment in URL")

// articleDatePattern matches the /YYYY/monthname/D[D]/ segment of article URLs.
var articleDatePattern = regexp.MustCompile(`/(\d{4})/([a-z]+)/(\d{1,2})/`)

// monthsByName resolves the lowercase month names used in article URLs,
// including the three-letter abbreviations the source favours and the odd
// four-letter September.
var monthsByName = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// CategoryFromURL returns the first path segment after the domain, which is
// the article's category, or an empty string when the URL has no path.
func CategoryFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) == 0 {
		return ""
	}
	return segments[0]
}

// DateFromURL parses the /YYYY/monthname/D[D]/ segment of an article URL into
// a calendar date. Returns ErrNoDateSegment when no such segment exists and a
// descriptive error when the month name is unknown or the day is out of range.
func DateFromURL(rawURL string) (time.Time, error) {
	match := articleDatePattern.FindStringSubmatch(rawURL)
	if match == nil {
		return time.Time{}, ErrNoDateSegment
	}

	year, _ := strconv.Atoi(match[1])
	day, _ := strconv.Atoi(match[3])

	month, ok := monthsByName[match[2]]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month name %q in URL %s", match[2], rawURL)
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != month {
		return time.Time{}, fmt.Errorf("invalid date %s in URL %s", match[0], rawURL)
	}

	return date, nil
}
