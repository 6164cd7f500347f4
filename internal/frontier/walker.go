// Package frontier discovers article URLs by walking the paginated listing
// pages of a news source. The walker knows when to stop re-scanning content it
// has already seen; the filter narrows raw links down to dated article URLs.
package frontier

import (
	"context"
	"fmt"
	"slices"

	"github.com/jonesrussell/newswarehouse/internal/logger"
)

// LinkExtractor fetches a single listing page and returns the hyperlinks
// found in its content blocks, in document order. Implementations return an
// error on transport failure or non-success HTTP status.
type LinkExtractor interface {
	Links(ctx context.Context, pageURL string) ([]string, error)
}

// Walker generates listing pages 1..maxPages and collects article links from
// each, stopping early once a previously seen URL comes into view.
type Walker struct {
	extractor LinkExtractor
	baseURL   string
	category  string
	log       logger.Interface
}

// NewWalker creates a walker for the given source and category.
func NewWalker(extractor LinkExtractor, baseURL, category string, log logger.Interface) *Walker {
	return &Walker{
		extractor: extractor,
		baseURL:   baseURL,
		category:  category,
		log:       log.WithComponent("walker"),
	}
}

// pageURL returns the listing URL for a 1-based page number.
func (w *Walker) pageURL(page int) string {
	return fmt.Sprintf("%s/%s?page=%d", w.baseURL, w.category, page)
}

// Walk visits listing pages 1..maxPages in order and returns the collected
// links, most recent first, matching the source's pagination order.
//
// When stopAtURL is non-empty and appears in a page's links, only the links
// preceding it are kept and the walk terminates without fetching further
// pages. Steady-state runs pass the most recently ingested URL here so that a
// run's cost is bounded by the amount of new content.
//
// A page fetch failure is logged and treated as an empty link set for that
// page; partial pagination coverage beats total failure.
func (w *Walker) Walk(ctx context.Context, maxPages int, stopAtURL string) []string {
	var links []string

	for page := 1; page <= maxPages; page++ {
		if ctx.Err() != nil {
			w.log.Warn("walk cancelled", "page", page)
			return links
		}

		pageLinks, err := w.extractor.Links(ctx, w.pageURL(page))
		if err != nil {
			w.log.Warn("listing page fetch failed",
				"page", page,
				"max_pages", maxPages,
				"error", err.Error(),
			)
			continue
		}

		w.log.Debug("listing page scanned", "page", page, "links", len(pageLinks))

		if stopAtURL != "" {
			if idx := slices.Index(pageLinks, stopAtURL); idx >= 0 {
				links = append(links, pageLinks[:idx]...)
				w.log.Info("walk stopped at previously seen URL",
					"page", page,
					"links", len(links),
				)
				return links
			}
		}

		links = append(links, pageLinks...)
	}

	return links
}
