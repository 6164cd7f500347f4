package frontier

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/jonesrussell/newswarehouse/internal/logger"
)

// listingLinkSelector matches article anchors inside the designated listing
// content blocks.
const listingLinkSelector = "div.fc-item__content a[href]"

// CollyExtractor extracts listing-page links using a colly collector. Each
// call issues exactly one request; a non-success HTTP status or transport
// error yields an error and no links.
type CollyExtractor struct {
	userAgent string
	timeout   time.Duration
	log       logger.Interface
}

// NewCollyExtractor creates a listing-page link extractor.
func NewCollyExtractor(userAgent string, timeout time.Duration, log logger.Interface) *CollyExtractor {
	return &CollyExtractor{
		userAgent: userAgent,
		timeout:   timeout,
		log:       log.WithComponent("links"),
	}
}

// Links fetches pageURL and returns the hyperlinks found in its content
// blocks, in document order. Relative hrefs are resolved against the page URL.
func (e *CollyExtractor) Links(ctx context.Context, pageURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// A fresh collector per page keeps calls independent and avoids the
	// collector's visited-URL cache suppressing re-scans on later runs.
	collector := colly.NewCollector(colly.UserAgent(e.userAgent))
	collector.SetRequestTimeout(e.timeout)

	var links []string
	collector.OnHTML(listingLinkSelector, func(el *colly.HTMLElement) {
		links = append(links, el.Request.AbsoluteURL(el.Attr("href")))
	})

	collector.OnError(func(resp *colly.Response, visitErr error) {
		e.log.Debug("listing request failed",
			"url", pageURL,
			"status", resp.StatusCode,
			"error", visitErr.Error(),
		)
	})

	if err := collector.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("failed to fetch listing page %s: %w", pageURL, err)
	}

	return links, nil
}
