package knowledge

import (
	"strings"

	"github.com/samber/lo"
)

// AgeRange is an inclusive range in months. Peak is zero when the record
// declares no developmental peak.
type AgeRange struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Peak int `json:"peak,omitempty"`
}

func (r AgeRange) Contains(ageInMonths int) bool {
	return ageInMonths >= r.Min && ageInMonths <= r.Max
}

// record is the capability every fact store entry shares.
type record interface {
	ageRange() AgeRange
	terms() []string
}

// keywordMatches reports whether query and term match in either direction.
func keywordMatches(term, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(term, q) || strings.Contains(q, term)
}

// matchCount is the number of query keywords that match at least one term.
func matchCount(terms, keywords []string) int {
	return lo.CountBy(keywords, func(k string) bool {
		return lo.SomeBy(terms, func(t string) bool { return keywordMatches(t, k) })
	})
}

func matchesAny(terms, keywords []string) bool {
	return matchCount(terms, keywords) > 0
}

// eligible applies the shared age and keyword filter.
func eligible[T record](items []T, ageInMonths int, keywords []string) []T {
	return lo.Filter(items, func(item T, _ int) bool {
		return item.ageRange().Contains(ageInMonths) && matchesAny(item.terms(), keywords)
	})
}

// inAgeRange applies the age filter only.
func inAgeRange[T record](items []T, ageInMonths int) []T {
	return lo.Filter(items, func(item T, _ int) bool {
		return item.ageRange().Contains(ageInMonths)
	})
}

func truncate[T any](items []T, max int) []T {
	if max < 0 {
		max = 0
	}
	if len(items) > max {
		return items[:max]
	}
	return items
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
