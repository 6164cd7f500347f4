package frontier_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jonesrussell/newswarehouse/internal/frontier"
	"github.com/jonesrussell/newswarehouse/internal/logger"
)

// stubExtractor serves canned links per listing page and records which pages
// were fetched.
type stubExtractor struct {
	pages   map[string][]string
	errs    map[string]error
	fetched []string
}

func (s *stubExtractor) Links(_ context.Context, pageURL string) ([]string, error) {
	s.fetched = append(s.fetched, pageURL)
	if err, ok := s.errs[pageURL]; ok {
		return nil, err
	}
	return s.pages[pageURL], nil
}

func pageURL(page int) string {
	return fmt.Sprintf("https://news.example.com/world?page=%d", page)
}

func TestWalker_Walk_CollectsAllPages(t *testing.T) {
	extractor := &stubExtractor{
		pages: map[string][]string{
			pageURL(1): {"a", "b"},
			pageURL(2): {"c"},
			pageURL(3): {"d", "e"},
		},
	}
	walker := frontier.NewWalker(extractor, "https://news.example.com", "world", logger.NewNoOp())

	links := walker.Walk(context.Background(), 3, "")

	want := []string{"a", "b", "c", "d", "e"}
	if len(links) != len(want) {
		t.Fatalf("Walk() returned %d links, want %d", len(links), len(want))
	}
	for i, link := range want {
		if links[i] != link {
			t.Errorf("links[%d] = %q, want %q", i, links[i], link)
		}
	}
	if len(extractor.fetched) != 3 {
		t.Errorf("fetched %d pages, want 3", len(extractor.fetched))
	}
}

func TestWalker_Walk_StopsAtPreviouslySeenURL(t *testing.T) {
	extractor := &stubExtractor{
		pages: map[string][]string{
			pageURL(1): {"new-1", "new-2", "seen-before", "old-1"},
			pageURL(2): {"old-2"},
		},
	}
	walker := frontier.NewWalker(extractor, "https://news.example.com", "world", logger.NewNoOp())

	links := walker.Walk(context.Background(), 2, "seen-before")

	if len(links) != 2 {
		t.Fatalf("Walk() returned %d links, want 2: %v", len(links), links)
	}
	if links[0] != "new-1" || links[1] != "new-2" {
		t.Errorf("Walk() = %v, want [new-1 new-2]", links)
	}
	if len(extractor.fetched) != 1 {
		t.Errorf("fetched %d pages, want 1 (stop must not fetch page 2)", len(extractor.fetched))
	}
}

func TestWalker_Walk_SentinelAtPageBoundary(t *testing.T) {
	extractor := &stubExtractor{
		pages: map[string][]string{
			pageURL(1): {"new-1", "new-2"},
			pageURL(2): {"seen-before", "old-1"},
		},
	}
	walker := frontier.NewWalker(extractor, "https://news.example.com", "world", logger.NewNoOp())

	links := walker.Walk(context.Background(), 2, "seen-before")

	if len(links) != 2 {
		t.Fatalf("Walk() returned %d links, want 2: %v", len(links), links)
	}
}

func TestWalker_Walk_PageFailureContinues(t *testing.T) {
	extractor := &stubExtractor{
		pages: map[string][]string{
			pageURL(2): {"a"},
		},
		errs: map[string]error{
			pageURL(1): errors.New("status 503"),
		},
	}
	walker := frontier.NewWalker(extractor, "https://news.example.com", "world", logger.NewNoOp())

	links := walker.Walk(context.Background(), 2, "")

	if len(links) != 1 || links[0] != "a" {
		t.Errorf("Walk() = %v, want [a] (failed page treated as empty)", links)
	}
	if len(extractor.fetched) != 2 {
		t.Errorf("fetched %d pages, want 2", len(extractor.fetched))
	}
}

func TestWalker_Walk_CancelledContext(t *testing.T) {
	extractor := &stubExtractor{pages: map[string][]string{pageURL(1): {"a"}}}
	walker := frontier.NewWalker(extractor, "https://news.example.com", "world", logger.NewNoOp())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	links := walker.Walk(ctx, 3, "")

	if len(links) != 0 {
		t.Errorf("Walk() = %v, want no links after cancellation", links)
	}
	if len(extractor.fetched) != 0 {
		t.Errorf("fetched %d pages, want 0", len(extractor.fetched))
	}
}
