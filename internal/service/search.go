package service

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/marquee/internal/domain"
)

// RankTitles filters saved movies by title and orders them best match
// first. An empty query returns the movies unchanged.
func RankTitles(query string, movies []domain.MovieSummary) []domain.MovieSummary {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return movies
	}

	type rankedItem struct {
		movie domain.MovieSummary
		score int
	}

	ranked := make([]rankedItem, 0, len(movies))
	for _, m := range movies {
		score, ok := calculateMatchScore(strings.ToLower(m.Title), query)
		if !ok {
			continue
		}
		ranked = append(ranked, rankedItem{movie: m, score: score})
	}

	// Sort by score (lower is better), keeping list order on ties
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	results := make([]domain.MovieSummary, len(ranked))
	for i, r := range ranked {
		results[i] = r.movie
	}
	return results
}

// calculateMatchScore calculates a match score for ranking.
// Lower score = better match; ok is false when title does not match at all.
func calculateMatchScore(title, query string) (int, bool) {
	// Exact match is best
	if title == query {
		return 0, true
	}

	// Prefix match is very good
	if strings.HasPrefix(title, query) {
		return 10, true
	}

	// Contains match is good
	if strings.Contains(title, query) {
		return 50, true
	}

	// Subsequence match ranked by edit distance
	if fuzzy.MatchFold(query, title) {
		return 100 + fuzzy.LevenshteinDistance(query, title), true
	}

	return 0, false
}
