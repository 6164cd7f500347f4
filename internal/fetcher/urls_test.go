package fetcher_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jonesrussell/newswarehouse/internal/fetcher"
)

func TestCategoryFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"article url", "https://www.theguardian.com/world/2024/mar/5/some-story", "world"},
		{"other category", "https://www.theguardian.com/sport/2024/mar/5/match", "sport"},
		{"no path", "https://www.theguardian.com", ""},
		{"root path", "https://www.theguardian.com/", ""},
		{"unparsable", "://not-a-url", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fetcher.CategoryFromURL(tt.url); got != tt.want {
				t.Errorf("CategoryFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestDateFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want time.Time
	}{
		{
			"three letter month",
			"https://www.theguardian.com/world/2024/mar/5/some-story",
			time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			"full month name",
			"https://www.theguardian.com/world/2023/december/25/holiday",
			time.Date(2023, time.December, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			"sept abbreviation",
			"https://www.theguardian.com/world/2024/sept/9/story",
			time.Date(2024, time.September, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			"two digit day",
			"https://www.theguardian.com/world/2024/jan/31/story",
			time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fetcher.DateFromURL(tt.url)
			if err != nil {
				t.Fatalf("DateFromURL(%q) error = %v", tt.url, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("DateFromURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestDateFromURL_Errors(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		wantNoSegment bool
	}{
		{"no date segment", "https://www.theguardian.com/world/tag/climate", true},
		{"unknown month", "https://www.theguardian.com/world/2024/foo/5/story", false},
		{"day out of range", "https://www.theguardian.com/world/2024/feb/31/story", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fetcher.DateFromURL(tt.url)
			if err == nil {
				t.Fatalf("DateFromURL(%q) expected error", tt.url)
			}
			if got := errors.Is(err, fetcher.ErrNoDateSegment); got != tt.wantNoSegment {
				t.Errorf("errors.Is(err, ErrNoDateSegment) = %v, want %v (err = %v)",
					got, tt.wantNoSegment, err)
			}
		})
	}
}
