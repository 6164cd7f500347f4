package frontier

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter narrows raw listing links down to in-scope article URLs. A link
// passes when it contains the exact `/{category}/` path segment and, when
// date filtering is enabled, a `/{category}/YYYY/monthname/D[D]/` segment.
// The date requirement excludes index and tag pages that merely mention the
// category.
type Filter struct {
	category    string
	requireDate bool
	datePattern *regexp.Regexp
}

// NewFilter creates a filter for the given category. With requireDate set,
// only links carrying a dated article path are retained.
func NewFilter(category string, requireDate bool) *Filter {
	pattern := regexp.MustCompile(
		fmt.Sprintf(`/%s/\d{4}/[a-z]+/\d{1,2}/`, regexp.QuoteMeta(category)),
	)

	return &Filter{
		category:    category,
		requireDate: requireDate,
		datePattern: pattern,
	}
}

// Apply returns the links that are in scope, preserving order. Duplicates are
// kept; identity dedup happens at merge time via the URL key.
func (f *Filter) Apply(links []string) []string {
	segment := "/" + f.category + "/"
	filtered := make([]string, 0, len(links))

	for _, link := range links {
		if !strings.Contains(link, segment) {
			continue
		}
		if f.requireDate && !f.datePattern.MatchString(link) {
			continue
		}
		filtered = append(filtered, link)
	}

	return filtered
}
