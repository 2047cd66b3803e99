package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// QuickCommands are offered as chat completions.
var QuickCommands = []string{
	"show unread emails",
	"summarize my last email",
	"emails from ",
	"schedule a meeting",
}

// FilterSuggestions returns the candidates matching query, in candidate order.
// Fuzzy matches win; a plain substring match is the fallback.
func FilterSuggestions(candidates []string, query string) []string {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return append([]string(nil), candidates...)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, candidates)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]string, 0, len(matches))
		for idx, c := range candidates {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, c)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	var filtered []string
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), lower) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// BestSuggestion picks the completion for query: exact, then prefix, then
// substring, then the closest fuzzy match. It reports false when nothing
// matches or query is blank.
func BestSuggestion(candidates []string, query string) (string, bool) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || len(candidates) == 0 {
		return "", false
	}
	lower := strings.ToLower(trimmed)
	for _, c := range candidates {
		if strings.EqualFold(strings.TrimSpace(c), trimmed) {
			return c, true
		}
	}
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), lower) {
			return c, true
		}
	}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), lower) {
			return c, true
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, candidates)
	if len(ranks) == 0 {
		return "", false
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return candidates[best.OriginalIndex], true
}
