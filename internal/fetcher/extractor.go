package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// CSS selectors for the article content fields.
const (
	headlineSelector = `div[data-gu-name="headline"] h1`
	authorSelector   = `a[rel="author"][data-link-name="auto tag link"]`
	bodySelector     = `div[data-gu-name="body"]`
)

// GuardianExtractor resolves headline, author and body from article pages
// using goquery. The three lookups are independent: each issues its own
// request and a missing element resolves to nil rather than an error.
type GuardianExtractor struct {
	client    *http.Client
	userAgent string
}

// NewGuardianExtractor creates a field extractor with its own HTTP client.
func NewGuardianExtractor(userAgent string, timeout time.Duration) *GuardianExtractor {
	return &GuardianExtractor{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Headline returns the article headline, or nil when absent.
func (e *GuardianExtractor) Headline(ctx context.Context, articleURL string) (*string, error) {
	doc, err := e.fetchDocument(ctx, articleURL)
	if err != nil {
		return nil, err
	}
	return selectText(doc, headlineSelector), nil
}

// Author returns the article author, or nil when absent.
func (e *GuardianExtractor) Author(ctx context.Context, articleURL string) (*string, error) {
	doc, err := e.fetchDocument(ctx, articleURL)
	if err != nil {
		return nil, err
	}
	return selectText(doc, authorSelector), nil
}

// Body returns the main article text, or nil when absent.
func (e *GuardianExtractor) Body(ctx context.Context, articleURL string) (*string, error) {
	doc, err := e.fetchDocument(ctx, articleURL)
	if err != nil {
		return nil, err
	}
	return selectText(doc, bodySelector), nil
}

// fetchDocument retrieves the article page and parses it with goquery.
func (e *GuardianExtractor) fetchDocument(ctx context.Context, articleURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", articleURL, err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", articleURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, articleURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", articleURL, err)
	}

	return doc, nil
}

// selectText returns the trimmed text of the first element matching the
// selector, or nil when no element matches.
func selectText(doc *goquery.Document, selector string) *string {
	selection := doc.Find(selector).First()
	if selection.Length() == 0 {
		return nil
	}

	text := strings.TrimSpace(selection.Text())
	return &text
}
