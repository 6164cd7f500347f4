package pipeline_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jonesrussell/newswarehouse/internal/database"
	"github.com/jonesrussell/newswarehouse/internal/domain"
	"github.com/jonesrussell/newswarehouse/internal/logger"
	"github.com/jonesrussell/newswarehouse/internal/pipeline"
)

type fakeWalker struct {
	links     []string
	gotPages  int
	gotStopAt string
}

func (f *fakeWalker) Walk(_ context.Context, maxPages int, stopAtURL string) []string {
	f.gotPages = maxPages
	f.gotStopAt = stopAtURL
	return f.links
}

type passFilter struct{}

func (passFilter) Apply(links []string) []string { return links }

type fakeFetcher struct {
	records     []domain.ArticleRecord
	block       chan struct{} // when set, FetchAll blocks until closed
	started     chan struct{}
	startedOnce sync.Once
}

func (f *fakeFetcher) FetchAll(_ context.Context, _ []string) []domain.ArticleRecord {
	if f.started != nil {
		f.startedOnce.Do(func() { close(f.started) })
	}
	if f.block != nil {
		<-f.block
	}
	return f.records
}

type fakeLanding struct {
	replaced []domain.ArticleRecord
	err      error
}

func (f *fakeLanding) Replace(_ context.Context, records []domain.ArticleRecord) error {
	f.replaced = records
	return f.err
}

type fakeWarehouse struct {
	recentURL string
	result    *database.MergeResult
	mergeErr  error
	merged    bool
}

func (f *fakeWarehouse) Merge(_ context.Context) (*database.MergeResult, error) {
	f.merged = true
	return f.result, f.mergeErr
}

func (f *fakeWarehouse) MostRecentURL(_ context.Context) (string, error) {
	return f.recentURL, nil
}

func newPipeline(
	walker *fakeWalker,
	fetcher *fakeFetcher,
	landing *fakeLanding,
	warehouse *fakeWarehouse,
) *pipeline.Pipeline {
	return pipeline.New(walker, passFilter{}, fetcher, landing, warehouse, logger.NewNoOp())
}

func TestPipeline_Run(t *testing.T) {
	records := []domain.ArticleRecord{
		{URL: "https://example.com/world/2024/mar/5/a", Category: "world"},
	}
	walker := &fakeWalker{links: []string{"https://example.com/world/2024/mar/5/a"}}
	fetcher := &fakeFetcher{records: records}
	landing := &fakeLanding{}
	warehouse := &fakeWarehouse{
		recentURL: "https://example.com/world/2024/mar/4/previous",
		result:    &database.MergeResult{Inserted: 1, Bridged: 1, CurrentDelta: 1},
	}

	summary, err := newPipeline(walker, fetcher, landing, warehouse).Run(context.Background(), 3)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if walker.gotPages != 3 {
		t.Errorf("walker got maxPages = %d, want 3", walker.gotPages)
	}
	if walker.gotStopAt != warehouse.recentURL {
		t.Errorf("walker got stopAtURL = %q, want sentinel from warehouse", walker.gotStopAt)
	}
	if len(landing.replaced) != 1 {
		t.Errorf("landing staged %d records, want 1", len(landing.replaced))
	}
	if !warehouse.merged {
		t.Error("merge was not invoked")
	}
	if summary.Inserted != 1 || summary.Records != 1 || summary.LinksInScope != 1 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if summary.RunID == "" {
		t.Error("summary has no run id")
	}
}

func TestPipeline_Run_MergeFailurePropagates(t *testing.T) {
	walker := &fakeWalker{}
	fetcher := &fakeFetcher{}
	landing := &fakeLanding{}
	warehouse := &fakeWarehouse{mergeErr: errors.New("deadlock detected")}

	_, err := newPipeline(walker, fetcher, landing, warehouse).Run(context.Background(), 1)
	if err == nil {
		t.Fatal("Run() expected merge error to propagate")
	}
}

func TestPipeline_Run_LandingFailureSkipsMerge(t *testing.T) {
	walker := &fakeWalker{}
	fetcher := &fakeFetcher{}
	landing := &fakeLanding{err: errors.New("disk full")}
	warehouse := &fakeWarehouse{result: &database.MergeResult{}}

	_, err := newPipeline(walker, fetcher, landing, warehouse).Run(context.Background(), 1)
	if err == nil {
		t.Fatal("Run() expected landing error to propagate")
	}
	if warehouse.merged {
		t.Error("merge must not run after a landing failure")
	}
}

func TestPipeline_Run_SingleFlight(t *testing.T) {
	walker := &fakeWalker{links: []string{"a"}}
	fetcher := &fakeFetcher{
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	landing := &fakeLanding{}
	warehouse := &fakeWarehouse{result: &database.MergeResult{}}
	p := newPipeline(walker, fetcher, landing, warehouse)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := p.Run(context.Background(), 1); err != nil {
			t.Errorf("first Run() error = %v", err)
		}
	}()

	<-fetcher.started

	// Second run while the first holds the guard.
	if _, err := p.Run(context.Background(), 1); !errors.Is(err, pipeline.ErrRunInProgress) {
		t.Errorf("second Run() error = %v, want ErrRunInProgress", err)
	}

	close(fetcher.block)
	wg.Wait()

	// With the guard released, runs work again.
	if _, err := p.Run(context.Background(), 1); err != nil {
		t.Errorf("Run() after release error = %v", err)
	}
}
