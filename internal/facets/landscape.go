package facets

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jasonfurnell/narrative-set-engine/internal/models"
)

type countEntry struct {
	value string
	count int
}

func topN(counts map[string]int, n int) []countEntry {
	entries := make([]countEntry, 0, len(counts))
	for v, c := range counts {
		entries = append(entries, countEntry{v, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].value < entries[j].value
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// BuildGenreLandscapeSummary renders a human-readable text summary of a
// pool's genre/pairing/location/era/mood/descriptor distribution, suitable
// for inclusion as optional narrative-planner prompt context. Grounded on
// original_source/app/parser.py's build_genre_landscape_summary — a
// supplemented feature (SPEC_FULL.md §4.1) the distillation dropped.
func BuildGenreLandscapeSummary(tracks []*models.Track) string {
	genreCounts := map[string]int{}
	pairCounts := map[[2]string]int{}
	locCounts := map[string]int{}
	eraCounts := map[string]int{}
	moodTerms := map[string]int{}
	descTerms := map[string]int{}

	for _, t := range tracks {
		if t.Genre1 != "" {
			genreCounts[t.Genre1]++
		}
		if t.Genre2 != "" {
			genreCounts[t.Genre2]++
		}
		if t.Genre1 != "" && t.Genre2 != "" {
			pair := [2]string{t.Genre1, t.Genre2}
			if pair[0] > pair[1] {
				pair[0], pair[1] = pair[1], pair[0]
			}
			pairCounts[pair]++
		}
		if t.ParsedLocation != "" {
			locCounts[t.ParsedLocation]++
		}
		if t.Era != "" {
			eraCounts[t.Era]++
		}
		for _, tok := range Tokenize(t.Mood) {
			moodTerms[tok]++
		}
		for _, tok := range Tokenize(t.Descriptors) {
			descTerms[tok]++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Collection: %d tracks.\n\n", len(tracks))

	b.WriteString("Top genres (appearing in either genre1 or genre2 position):\n")
	for _, e := range topN(genreCounts, 40) {
		fmt.Fprintf(&b, "  %s: %d\n", e.value, e.count)
	}

	type pairEntry struct {
		pair  [2]string
		count int
	}
	pairs := make([]pairEntry, 0, len(pairCounts))
	for p, c := range pairCounts {
		pairs = append(pairs, pairEntry{p, c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].pair[0] < pairs[j].pair[0]
	})
	if len(pairs) > 50 {
		pairs = pairs[:50]
	}
	b.WriteString("\nMost common genre pairings (genre1 + genre2):\n")
	for _, p := range pairs {
		fmt.Fprintf(&b, "  %s + %s: %d\n", p.pair[0], p.pair[1], p.count)
	}

	b.WriteString("\nTop locations:\n")
	for _, e := range topN(locCounts, 20) {
		fmt.Fprintf(&b, "  %s: %d\n", e.value, e.count)
	}

	b.WriteString("\nTop eras:\n")
	for _, e := range topN(eraCounts, 20) {
		fmt.Fprintf(&b, "  %s: %d\n", e.value, e.count)
	}

	b.WriteString("\nTop mood/atmosphere keywords (use these exact terms in mood filters):\n")
	for _, e := range topN(moodTerms, 30) {
		fmt.Fprintf(&b, "  %s: %d\n", e.value, e.count)
	}

	b.WriteString("\nTop production descriptor keywords (use these exact terms in descriptor filters):\n")
	for _, e := range topN(descTerms, 30) {
		fmt.Fprintf(&b, "  %s: %d\n", e.value, e.count)
	}

	return strings.TrimRight(b.String(), "\n")
}
