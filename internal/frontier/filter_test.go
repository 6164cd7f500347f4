package frontier_test

import (
	"testing"

	"github.com/jonesrussell/newswarehouse/internal/frontier"
)

func TestFilter_Apply(t *testing.T) {
	tests := []struct {
		name        string
		category    string
		requireDate bool
		links       []string
		want        []string
	}{
		{
			name:        "dated article link passes",
			category:    "world",
			requireDate: true,
			links:       []string{"https://example.com/world/2024/mar/5/some-story"},
			want:        []string{"https://example.com/world/2024/mar/5/some-story"},
		},
		{
			name:        "category segment must match exactly",
			category:    "world",
			requireDate: true,
			links:       []string{"https://example.com/world-cup/2024/mar/5/x"},
			want:        []string{},
		},
		{
			name:        "undated tag link excluded when date filtering enabled",
			category:    "world",
			requireDate: true,
			links:       []string{"https://example.com/world/tag/climate"},
			want:        []string{},
		},
		{
			name:        "undated link kept when date filtering disabled",
			category:    "world",
			requireDate: false,
			links:       []string{"https://example.com/world/tag/climate"},
			want:        []string{"https://example.com/world/tag/climate"},
		},
		{
			name:        "two digit day passes",
			category:    "world",
			requireDate: true,
			links:       []string{"https://example.com/world/2024/december/25/holiday-report"},
			want:        []string{"https://example.com/world/2024/december/25/holiday-report"},
		},
		{
			name:        "other category excluded",
			category:    "world",
			requireDate: true,
			links:       []string{"https://example.com/sport/2024/mar/5/match"},
			want:        []string{},
		},
		{
			name:        "order preserved and duplicates kept",
			category:    "world",
			requireDate: true,
			links: []string{
				"https://example.com/world/2024/mar/5/a",
				"https://example.com/about",
				"https://example.com/world/2024/mar/6/b",
				"https://example.com/world/2024/mar/5/a",
			},
			want: []string{
				"https://example.com/world/2024/mar/5/a",
				"https://example.com/world/2024/mar/6/b",
				"https://example.com/world/2024/mar/5/a",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := frontier.NewFilter(tt.category, tt.requireDate)
			got := filter.Apply(tt.links)

			if len(got) != len(tt.want) {
				t.Fatalf("Apply() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Apply()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
