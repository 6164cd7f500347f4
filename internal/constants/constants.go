// Package constants provides shared constants used across the application.
package constants

import "time"

// HTTP/Server constants.
const (
	// DefaultServerAddress is the default HTTP server address.
	DefaultServerAddress = ":8080"

	// DefaultServerReadTimeout is the default HTTP server read timeout.
	DefaultServerReadTimeout = 15 * time.Second

	// DefaultServerWriteTimeout is the default HTTP server write timeout.
	DefaultServerWriteTimeout = 15 * time.Second

	// DefaultServerIdleTimeout is the default HTTP server idle timeout.
	DefaultServerIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is the default timeout for graceful shutdown.
	DefaultShutdownTimeout = 30 * time.Second
)

// Scraper constants.
const (
	// DefaultBaseURL is the default news source base URL.
	DefaultBaseURL = "https://www.theguardian.com"

	// DefaultCategory is the default article category to ingest.
	DefaultCategory = "world"

	// DefaultUserAgent identifies the scraper to the news source.
	DefaultUserAgent = "newswarehouse/1.0"

	// DefaultSteadyPages is the page budget for steady-state runs.
	DefaultSteadyPages = 1

	// DefaultInitialPages is the page budget for the first-ever run.
	DefaultInitialPages = 10

	// DefaultFetchWorkers bounds the per-article fetch worker pool.
	DefaultFetchWorkers = 4

	// DefaultRunInterval is the interval between scheduled pipeline runs.
	DefaultRunInterval = 60 * time.Minute

	// DefaultRequestTimeout is the timeout for a single HTTP fetch.
	DefaultRequestTimeout = 30 * time.Second
)

// Read API constants.
const (
	// DefaultPageSize is the default page size for article listings.
	DefaultPageSize = 10

	// DefaultTopAuthors is the default number of authors in the top-authors listing.
	DefaultTopAuthors = 5
)
