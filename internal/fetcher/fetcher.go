package fetcher

import (
	"context"
	"errors"
	"sync"

	"github.com/jonesrussell/newswarehouse/internal/domain"
	"github.com/jonesrussell/newswarehouse/internal/logger"
)

// FieldExtractor resolves the three article content fields. Each lookup is
// independent and returns nil for a missing field.
type FieldExtractor interface {
	Headline(ctx context.Context, articleURL string) (*string, error)
	Author(ctx context.Context, articleURL string) (*string, error)
	Body(ctx context.Context, articleURL string) (*string, error)
}

// Fetcher assembles article records from filtered article URLs. Fetches are
// spread over a bounded worker pool; failures are absorbed per field and never
// retried within a run.
type Fetcher struct {
	extractor FieldExtractor
	workers   int
	log       logger.Interface
}

// NewFetcher creates a detail fetcher with the given worker pool size.
func NewFetcher(extractor FieldExtractor, workers int, log logger.Interface) *Fetcher {
	if workers < 1 {
		workers = 1
	}

	return &Fetcher{
		extractor: extractor,
		workers:   workers,
		log:       log.WithComponent("fetcher"),
	}
}

// Fetch builds the record for a single article URL. URL, category and date
// come from the URL itself, so they are present for every link that passed
// the frontier filter; only the content fields can be absent.
func (f *Fetcher) Fetch(ctx context.Context, articleURL string) domain.ArticleRecord {
	record := domain.ArticleRecord{
		URL:      articleURL,
		Category: CategoryFromURL(articleURL),
	}

	date, err := DateFromURL(articleURL)
	switch {
	case err == nil:
		record.PublishedOn = &date
	case errors.Is(err, ErrNoDateSegment):
		// Filtered URLs always carry a date segment; reaching this means the
		// fetcher was handed an unfiltered link. Keep the record anyway.
		f.log.Warn("article URL has no date segment", "url", articleURL)
	default:
		f.log.Warn("failed to parse article date", "url", articleURL, "error", err.Error())
	}

	record.Headline = f.lookupField(ctx, articleURL, "headline", f.extractor.Headline)
	record.Author = f.lookupField(ctx, articleURL, "author", f.extractor.Author)
	record.Body = f.lookupField(ctx, articleURL, "body", f.extractor.Body)

	return record
}

// lookupField runs one field lookup, absorbing failures as a nil field.
func (f *Fetcher) lookupField(
	ctx context.Context,
	articleURL, field string,
	lookup func(context.Context, string) (*string, error),
) *string {
	value, err := lookup(ctx, articleURL)
	if err != nil {
		f.log.Warn("field lookup failed",
			"url", articleURL,
			"field", field,
			"error", err.Error(),
		)
		return nil
	}
	return value
}

// FetchAll fetches records for all URLs across the worker pool and returns
// them once every fetch has completed. Result order is not significant; the
// landing stage keys records by URL.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []domain.ArticleRecord {
	if len(urls) == 0 {
		return nil
	}

	jobs := make(chan string)
	results := make(chan domain.ArticleRecord, len(urls))

	var wg sync.WaitGroup
	for i := 0; i < f.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for articleURL := range jobs {
				results <- f.Fetch(ctx, articleURL)
			}
		}()
	}

	for _, articleURL := range urls {
		jobs <- articleURL
	}
	close(jobs)

	wg.Wait()
	close(results)

	records := make([]domain.ArticleRecord, 0, len(urls))
	for record := range results {
		records = append(records, record)
	}

	f.log.Info("article fetch completed", "urls", len(urls), "records", len(records))
	return records
}
