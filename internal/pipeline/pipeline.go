// Package pipeline orchestrates a single crawl-and-merge run: walk the
// listing pages, filter the links, fetch article details, replace the landing
// snapshot and merge it into the versioned dimension.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/newswarehouse/internal/database"
	"github.com/jonesrussell/newswarehouse/internal/domain"
	"github.com/jonesrussell/newswarehouse/internal/logger"
)

// ErrRunInProgress is returned when a run is requested while another run is
// still executing. Callers should check with errors.Is() and skip the run.
var ErrRunInProgress = errors.New("pipeline run already in progress")

// Walker discovers article links across listing pages.
type Walker interface {
	Walk(ctx context.Context, maxPages int, stopAtURL string) []string
}

// Filter narrows raw links to in-scope article URLs.
type Filter interface {
	Apply(links []string) []string
}

// Fetcher turns article URLs into scraped records.
type Fetcher interface {
	FetchAll(ctx context.Context, urls []string) []domain.ArticleRecord
}

// LandingStage replaces the staged scrape batch.
type LandingStage interface {
	Replace(ctx context.Context, records []domain.ArticleRecord) error
}

// MergeEngine reconciles the staged batch into the versioned dimension and
// supplies the walker's stop sentinel.
type MergeEngine interface {
	Merge(ctx context.Context) (*database.MergeResult, error)
	MostRecentURL(ctx context.Context) (string, error)
}

// Summary reports what a completed run did.
type Summary struct {
	RunID        string        `json:"run_id"`
	MaxPages     int           `json:"max_pages"`
	LinksFound   int           `json:"links_found"`
	LinksInScope int           `json:"links_in_scope"`
	Records      int           `json:"records"`
	Expired      int64         `json:"expired"`
	Inserted     int64         `json:"inserted"`
	Bridged      int64         `json:"bridged"`
	CurrentDelta int64         `json:"current_delta"`
	Duration     time.Duration `json:"duration"`
}

// Pipeline wires the run stages together. Runs are mutually exclusive: the
// guard makes overlapping invocations safe even if an external scheduler
// misbehaves. The scraped snapshot flows through the stages as an explicit
// value, never as shared state.
type Pipeline struct {
	walker    Walker
	filter    Filter
	fetcher   Fetcher
	landing   LandingStage
	warehouse MergeEngine
	log       logger.Interface

	runMu sync.Mutex
}

// New creates a pipeline from its stages.
func New(
	walker Walker,
	filter Filter,
	fetcher Fetcher,
	landing LandingStage,
	warehouse MergeEngine,
	log logger.Interface,
) *Pipeline {
	return &Pipeline{
		walker:    walker,
		filter:    filter,
		fetcher:   fetcher,
		landing:   landing,
		warehouse: warehouse,
		log:       log.WithComponent("pipeline"),
	}
}

// Run executes one crawl-and-merge pass with the given page budget. The most
// recently ingested URL bounds the walk; on the first-ever run the dimension
// is empty and the walk covers the full budget. Returns ErrRunInProgress when
// another run holds the guard.
func (p *Pipeline) Run(ctx context.Context, maxPages int) (*Summary, error) {
	if !p.runMu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer p.runMu.Unlock()

	start := time.Now()
	summary := &Summary{
		RunID:    uuid.NewString(),
		MaxPages: maxPages,
	}
	log := p.log.With("run_id", summary.RunID)
	log.Info("pipeline run starting", "max_pages", maxPages)

	stopAtURL, err := p.warehouse.MostRecentURL(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stop sentinel: %w", err)
	}

	links := p.walker.Walk(ctx, maxPages, stopAtURL)
	summary.LinksFound = len(links)

	inScope := p.filter.Apply(links)
	summary.LinksInScope = len(inScope)
	log.Info("frontier walk completed",
		"links_found", summary.LinksFound,
		"links_in_scope", summary.LinksInScope,
	)

	records := p.fetcher.FetchAll(ctx, inScope)
	summary.Records = len(records)

	if err = p.landing.Replace(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to stage landing snapshot: %w", err)
	}

	result, err := p.warehouse.Merge(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to merge landing snapshot: %w", err)
	}

	summary.Expired = result.Expired
	summary.Inserted = result.Inserted
	summary.Bridged = result.Bridged
	summary.CurrentDelta = result.CurrentDelta
	summary.Duration = time.Since(start)

	log.Info("pipeline run completed",
		"records", summary.Records,
		"expired", summary.Expired,
		"inserted", summary.Inserted,
		"bridged", summary.Bridged,
		"current_delta", summary.CurrentDelta,
		"duration", summary.Duration.String(),
	)

	return summary, nil
}
