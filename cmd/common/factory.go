package common

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/newswarehouse/internal/config"
	"github.com/jonesrussell/newswarehouse/internal/database"
	"github.com/jonesrussell/newswarehouse/internal/fetcher"
	"github.com/jonesrussell/newswarehouse/internal/frontier"
	"github.com/jonesrussell/newswarehouse/internal/logger"
	"github.com/jonesrussell/newswarehouse/internal/pipeline"
)

// PipelineResult bundles the pipeline with the repositories the command
// layer also hands to the scheduler and the read API.
type PipelineResult struct {
	Pipeline  *pipeline.Pipeline
	Warehouse *database.WarehouseRepository
	Reader    *database.ReadRepository
	DB        *sqlx.DB
}

// BuildPipeline connects to Postgres and assembles the crawl-and-merge
// pipeline from its stages. The caller owns the returned DB handle.
func BuildPipeline(cfg *config.Config, log logger.Interface) (*PipelineResult, error) {
	db, err := database.NewPostgresConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	scraper := &cfg.Scraper

	extractor := frontier.NewCollyExtractor(scraper.UserAgent, scraper.RequestTimeout, log)
	walker := frontier.NewWalker(extractor, scraper.BaseURL, scraper.Category, log)
	filter := frontier.NewFilter(scraper.Category, true)

	fieldExtractor := fetcher.NewGuardianExtractor(scraper.UserAgent, scraper.RequestTimeout)
	articleFetcher := fetcher.NewFetcher(fieldExtractor, scraper.FetchWorkers, log)

	landing := database.NewLandingRepository(db)
	warehouse := database.NewWarehouseRepository(db)

	return &PipelineResult{
		Pipeline:  pipeline.New(walker, filter, articleFetcher, landing, warehouse, log),
		Warehouse: warehouse,
		Reader:    database.NewReadRepository(db),
		DB:        db,
	}, nil
}
