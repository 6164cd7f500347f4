package fetcher_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonesrussell/newswarehouse/internal/fetcher"
	"github.com/jonesrussell/newswarehouse/internal/logger"
)

// stubFieldExtractor returns canned field values, or errors for URLs listed
// in failing.
type stubFieldExtractor struct {
	headline *string
	author   *string
	body     *string
	failing  map[string]bool
}

func (s *stubFieldExtractor) lookup(value *string, articleURL string) (*string, error) {
	if s.failing[articleURL] {
		return nil, errors.New("status 500")
	}
	return value, nil
}

func (s *stubFieldExtractor) Headline(_ context.Context, articleURL string) (*string, error) {
	return s.lookup(s.headline, articleURL)
}

func (s *stubFieldExtractor) Author(_ context.Context, articleURL string) (*string, error) {
	return s.lookup(s.author, articleURL)
}

func (s *stubFieldExtractor) Body(_ context.Context, articleURL string) (*string, error) {
	return s.lookup(s.body, articleURL)
}

func strPtr(s string) *string { return &s }

func TestFetcher_Fetch(t *testing.T) {
	extractor := &stubFieldExtractor{
		headline: strPtr("Headline"),
		author:   strPtr("A. Writer"),
		body:     strPtr("Body text."),
	}
	f := fetcher.NewFetcher(extractor, 1, logger.NewNoOp())

	record := f.Fetch(context.Background(), "https://example.com/world/2024/mar/5/some-story")

	if record.URL != "https://example.com/world/2024/mar/5/some-story" {
		t.Errorf("unexpected URL %q", record.URL)
	}
	if record.Category != "world" {
		t.Errorf("Category = %q, want world", record.Category)
	}
	wantDate := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if record.PublishedOn == nil || !record.PublishedOn.Equal(wantDate) {
		t.Errorf("PublishedOn = %v, want %v", record.PublishedOn, wantDate)
	}
	if record.Headline == nil || *record.Headline != "Headline" {
		t.Errorf("Headline = %v, want Headline", record.Headline)
	}
	if record.Author == nil || *record.Author != "A. Writer" {
		t.Errorf("Author = %v, want A. Writer", record.Author)
	}
	if record.Body == nil || *record.Body != "Body text." {
		t.Errorf("Body = %v, want Body text.", record.Body)
	}
}

func TestFetcher_Fetch_FieldFailuresYieldNilFields(t *testing.T) {
	url := "https://example.com/world/2024/mar/5/broken-story"
	extractor := &stubFieldExtractor{
		headline: strPtr("unused"),
		failing:  map[string]bool{url: true},
	}
	f := fetcher.NewFetcher(extractor, 1, logger.NewNoOp())

	record := f.Fetch(context.Background(), url)

	// Failures degrade fields, never the record.
	if record.Headline != nil || record.Author != nil || record.Body != nil {
		t.Errorf("expected nil content fields, got %+v", record)
	}
	if record.Category != "world" || record.PublishedOn == nil {
		t.Errorf("URL-derived fields must survive fetch failure, got %+v", record)
	}
}

func TestFetcher_Fetch_MalformedDateKeepsRecord(t *testing.T) {
	extractor := &stubFieldExtractor{headline: strPtr("H")}
	f := fetcher.NewFetcher(extractor, 1, logger.NewNoOp())

	record := f.Fetch(context.Background(), "https://example.com/world/2024/smarch/5/odd")

	if record.PublishedOn != nil {
		t.Errorf("PublishedOn = %v, want nil for malformed date", record.PublishedOn)
	}
	if record.Headline == nil {
		t.Error("record content must survive a malformed date segment")
	}
}

func TestFetcher_FetchAll(t *testing.T) {
	extractor := &stubFieldExtractor{headline: strPtr("H")}
	f := fetcher.NewFetcher(extractor, 3, logger.NewNoOp())

	urls := []string{
		"https://example.com/world/2024/mar/5/a",
		"https://example.com/world/2024/mar/6/b",
		"https://example.com/world/2024/mar/7/c",
	}

	records := f.FetchAll(context.Background(), urls)

	if len(records) != len(urls) {
		t.Fatalf("FetchAll() returned %d records, want %d", len(records), len(urls))
	}

	seen := make(map[string]bool, len(records))
	for _, record := range records {
		seen[record.URL] = true
	}
	for _, u := range urls {
		if !seen[u] {
			t.Errorf("missing record for %s", u)
		}
	}
}

func TestFetcher_FetchAll_Empty(t *testing.T) {
	f := fetcher.NewFetcher(&stubFieldExtractor{}, 2, logger.NewNoOp())

	if records := f.FetchAll(context.Background(), nil); len(records) != 0 {
		t.Errorf("FetchAll(nil) = %v, want empty", records)
	}
}
