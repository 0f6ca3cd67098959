package world

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggestHint formats a "did you mean" suffix for name lookup errors, or an
// empty string when nothing is close enough.
func suggestHint(name string, candidates []string) string {
	matches := nearestNames(name, candidates, 3)
	if len(matches) == 0 {
		return ""
	}
	return fmt.Sprintf(" (did you mean %s?)", strings.Join(matches, ", "))
}

// nearestNames returns up to max candidates within edit distance of name,
// closest first.
func nearestNames(name string, candidates []string, max int) []string {
	lower := strings.ToLower(name)

	type scored struct {
		val  string
		dist int
	}
	results := make([]scored, 0, len(candidates))
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(lower, strings.ToLower(cand))
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		results = append(results, scored{val: cand, dist: dist})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].dist == results[j].dist {
			return results[i].val < results[j].val
		}
		return results[i].dist < results[j].dist
	})

	if len(results) > max {
		results = results[:max]
	}
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.val
	}
	return out
}

func levenshteinLimit(candidateLen int) int {
	limit := candidateLen / 3
	if limit < 2 {
		limit = 2
	}
	return limit
}
