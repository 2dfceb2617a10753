// Package matcher implements the scored matcher (component B): weighted
// relevance scoring of tracks against a faceted query.
package matcher

import (
	"sort"
	"strings"

	"github.com/jasonfurnell/narrative-set-engine/internal/models"
)

// Facet match weights, grounded on original_source/app/parser.py's
// scored_search.
const (
	weightGenre      = 3.0
	weightLocation   = 2.0
	weightBPM        = 2.0
	weightMood       = 1.5
	weightDescriptor = 1.5
	weightEra        = 1.5
	weightYear       = 1.0
)

// Query is a faceted search/scoring request. Any bound may be nil/empty to
// opt that facet out of scoring.
type Query struct {
	Genres      []string
	Mood        []string
	Descriptors []string
	Location    []string
	Era         []string
	BPMMin      *float64
	BPMMax      *float64
	YearMin     *int
	YearMax     *int
	TextSearch  string
}

// Result is one scored match.
type Result struct {
	TrackID        int
	Score          float64
	MatchedFacets  map[string][]string
	MatchedBPM     bool
	MatchedYear    bool
}

func containsCI(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// ScoredSearch scores every track against q and returns matches with
// score >= minScore, sorted by score descending, truncated to maxResults.
// Deterministic given a fixed track ordering (ties keep input order via a
// stable sort).
func ScoredSearch(tracks []*models.Track, q Query, minScore float64, maxResults int) []Result {
	maxPossible := 0.0
	if len(q.Genres) > 0 {
		maxPossible += weightGenre * float64(len(q.Genres))
	}
	if len(q.Mood) > 0 {
		maxPossible += weightMood * float64(len(q.Mood))
	}
	if len(q.Descriptors) > 0 {
		maxPossible += weightDescriptor * float64(len(q.Descriptors))
	}
	if len(q.Location) > 0 {
		maxPossible += weightLocation * float64(len(q.Location))
	}
	if len(q.Era) > 0 {
		maxPossible += weightEra * float64(len(q.Era))
	}
	if q.BPMMin != nil || q.BPMMax != nil {
		maxPossible += weightBPM
	}
	if q.YearMin != nil || q.YearMax != nil {
		maxPossible += weightYear
	}
	if maxPossible == 0 {
		return nil
	}

	results := make([]Result, 0, len(tracks))

	for _, t := range tracks {
		score := 0.0
		matched := map[string][]string{}

		if len(q.Genres) > 0 {
			g1, g2 := strings.ToLower(t.Genre1), strings.ToLower(t.Genre2)
			var hits []string
			for _, g := range q.Genres {
				gl := strings.ToLower(g)
				if gl == g1 || gl == g2 {
					score += weightGenre
					hits = append(hits, g)
				}
			}
			if len(hits) > 0 {
				matched["genres"] = hits
			}
		}

		if len(q.Mood) > 0 {
			var hits []string
			for _, kw := range q.Mood {
				if containsCI(t.Mood, kw) {
					score += weightMood
					hits = append(hits, kw)
				}
			}
			if len(hits) > 0 {
				matched["mood"] = hits
			}
		}

		if len(q.Descriptors) > 0 {
			var hits []string
			for _, kw := range q.Descriptors {
				if containsCI(t.Descriptors, kw) {
					score += weightDescriptor
					hits = append(hits, kw)
				}
			}
			if len(hits) > 0 {
				matched["descriptors"] = hits
			}
		}

		if len(q.Location) > 0 {
			var hits []string
			for _, loc := range q.Location {
				if containsCI(t.ParsedLocation, loc) {
					score += weightLocation
					hits = append(hits, loc)
				}
			}
			if len(hits) > 0 {
				matched["location"] = hits
			}
		}

		if len(q.Era) > 0 {
			var hits []string
			for _, era := range q.Era {
				if containsCI(t.Era, era) {
					score += weightEra
					hits = append(hits, era)
				}
			}
			if len(hits) > 0 {
				matched["era"] = hits
			}
		}

		matchedBPM := false
		if q.BPMMin != nil || q.BPMMax != nil {
			if bpm, ok := t.BPMValue(); ok && bpm > 0 {
				inRange := true
				if q.BPMMin != nil && bpm < *q.BPMMin {
					inRange = false
				}
				if q.BPMMax != nil && bpm > *q.BPMMax {
					inRange = false
				}
				if inRange {
					score += weightBPM
					matchedBPM = true
				}
			}
		}

		matchedYear := false
		if q.YearMin != nil || q.YearMax != nil {
			if t.Year != nil && *t.Year > 0 {
				year := *t.Year
				inRange := true
				if q.YearMin != nil && year < *q.YearMin {
					inRange = false
				}
				if q.YearMax != nil && year > *q.YearMax {
					inRange = false
				}
				if inRange {
					score += weightYear
					matchedYear = true
				}
			}
		}

		if score <= 0 {
			continue
		}
		normalized := roundTo4(score / maxPossible)
		if normalized < minScore {
			continue
		}
		results = append(results, Result{
			TrackID:       t.ID,
			Score:         normalized,
			MatchedFacets: matched,
			MatchedBPM:    matchedBPM,
			MatchedYear:   matchedYear,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// TextSearch performs a case-insensitive substring search over title,
// artist, and comment — the generic search surface's text-only mode.
// Track carries no album field, so album text is not searched.
func TextSearch(tracks []*models.Track, text string) []int {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var ids []int
	for _, t := range tracks {
		if containsCI(t.Title, text) || containsCI(t.Artist, text) || containsCI(t.Comment, text) {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func roundTo4(f float64) float64 {
	const scale = 10000.0
	return float64(int(f*scale+0.5)) / scale
}
