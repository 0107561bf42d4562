package intent

import (
	"strings"

	"github.com/kailas-cloud/unisearch/internal/domain/search/mode"
)

// Category is the coarse purpose of a query.
type Category string

// Intent categories.
const (
	Navigation Category = "NAVIGATION"
	Server     Category = "SERVER"
	Resource   Category = "RESOURCE"
	Guide      Category = "GUIDE"
	Problem    Category = "PROBLEM"
	General    Category = "GENERAL"
)

// ParseCategory normalizes s. Unknown values map to General.
func ParseCategory(s string) Category {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case Navigation, Server, Resource, Guide, Problem, General:
		return c
	}
	return General
}

// Filters holds structured filters extracted from the query.
type Filters struct {
	Tags []string `json:"tags"`
}

// Intent is the structured classification of a free-text query.
// It is produced per request and never persisted.
type Intent struct {
	Category    Category  `json:"category"`
	SubCategory string    `json:"sub_category,omitempty"`
	Explanation string    `json:"explanation"`
	Keywords    []string  `json:"keywords"`
	Filters     Filters   `json:"filters"`
	Sort        mode.Mode `json:"sort,omitempty"`
}

// Fallback is the intent used when classification fails.
func Fallback() Intent {
	return Intent{
		Category: General,
		Keywords: []string{},
		Filters:  Filters{Tags: []string{}},
	}
}

// Normalize returns a copy with a known category, an upper-case sub-category,
// non-nil slices and an unknown sort dropped.
func (i Intent) Normalize() Intent {
	out := Intent{
		Category:    ParseCategory(string(i.Category)),
		SubCategory: strings.ToUpper(strings.TrimSpace(i.SubCategory)),
		Explanation: strings.TrimSpace(i.Explanation),
		Keywords:    cleanTerms(i.Keywords),
		Filters:     Filters{Tags: cleanTerms(i.Filters.Tags)},
	}
	if m, ok := mode.Parse(string(i.Sort)); ok {
		out.Sort = m
	}
	return out
}

// Seeds returns the terms the intent contributes to query expansion.
func (i Intent) Seeds() []string {
	seeds := make([]string, 0, len(i.Keywords)+len(i.Filters.Tags))
	seeds = append(seeds, i.Keywords...)
	return append(seeds, i.Filters.Tags...)
}

func cleanTerms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
