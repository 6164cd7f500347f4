// Package domain provides domain models used across the application.
package domain

import "time"

// ArticleRecord is a freshly scraped article. It lives only for the duration
// of a single pipeline run. URL, Category and PublishedOn are derived from the
// article URL itself; the content fields come from the HTML and are nil when
// the corresponding fetch or lookup failed (missing field, not missing record).
type ArticleRecord struct {
	// URL is the natural key of the article.
	URL string `db:"url" json:"url"`
	// Category is the first URL path segment after the domain.
	Category string `db:"category" json:"category"`
	// PublishedOn is the calendar date parsed from the URL, nil when the
	// date segment could not be parsed.
	PublishedOn *time.Time `db:"published_on" json:"published_on,omitempty"`
	// Headline of the article, nil on fetch or lookup failure.
	Headline *string `db:"headline" json:"headline,omitempty"`
	// Author of the article, nil on fetch or lookup failure.
	Author *string `db:"author" json:"author,omitempty"`
	// Body is the main article text, nil on fetch or lookup failure.
	Body *string `db:"body" json:"body,omitempty"`
}

// ArticleVersion is a row of the versioned article dimension. Rows are
// append-only: a version is closed by setting ValidTo and clearing IsCurrent,
// never rewritten. For any URL at most one row has IsCurrent set, and ValidTo
// is nil exactly when IsCurrent is true.
type ArticleVersion struct {
	// ID is the generated surrogate key of this version.
	ID int64 `db:"id" json:"id"`
	// URL is the natural key shared by all versions of an article.
	URL string `db:"url" json:"url"`
	// Category of the article at the time this version was observed.
	Category *string `db:"category" json:"category"`
	// Headline at the time this version was observed.
	Headline *string `db:"headline" json:"headline"`
	// Author at the time this version was observed.
	Author *string `db:"author" json:"author"`
	// Body at the time this version was observed.
	Body *string `db:"body" json:"body"`
	// ValidFrom is when this version became current.
	ValidFrom time.Time `db:"valid_from" json:"valid_from"`
	// ValidTo is when this version was superseded, nil while current.
	ValidTo *time.Time `db:"valid_to" json:"valid_to,omitempty"`
	// IsCurrent marks the latest version of the article.
	IsCurrent bool `db:"is_current" json:"is_current"`
}

// Article is the read-model projection of a current dimension row served by
// the read API and the CLI listing.
type Article struct {
	ID       int64   `db:"id" json:"id"`
	URL      string  `db:"url" json:"url"`
	Category *string `db:"category" json:"category"`
	Headline *string `db:"headline" json:"headline"`
	Author   *string `db:"author" json:"author"`
	Body     *string `db:"body" json:"body"`
}

// AuthorCount is an author with the number of current articles attributed to them.
type AuthorCount struct {
	Author       string `db:"author" json:"author"`
	ArticleCount int    `db:"article_count" json:"article_count"`
}

// CalendarDay is a row of the pre-populated date dimension. The calendar is
// seeded once at bootstrap and read-only afterwards.
type CalendarDay struct {
	Day         time.Time `db:"day" json:"day"`
	Year        int       `db:"year" json:"year"`
	Quarter     int       `db:"quarter" json:"quarter"`
	Month       int       `db:"month" json:"month"`
	DayOfMonth  int       `db:"day_of_month" json:"day_of_month"`
	WeekdayName string    `db:"weekday_name" json:"weekday_name"`
	IsWeekend   bool      `db:"is_weekend" json:"is_weekend"`
}
