// Package facets implements the facet parser (component A): turning a
// semi-structured per-track comment string into stable genre/mood/descriptor/
// location/era fields, with genre-alias normalization.
package facets

import (
	"regexp"
	"strings"
)

// genreAliases maps lowercase raw genre strings to their canonical form.
// Grounded verbatim on original_source/app/parser.py's _GENRE_ALIASES.
var genreAliases = map[string]string{
	"hip hop":        "Hip-Hop",
	"hip-hop":        "Hip-Hop",
	"r & b":          "R&B",
	"r&b":            "R&B",
	"rnb":            "R&B",
	"drum & bass":    "Drum & Bass",
	"drum and bass":  "Drum & Bass",
	"dnb":            "Drum & Bass",
	"d&b":            "Drum & Bass",
}

var eraRe = regexp.MustCompile(`(?i),?\s*(early|mid|late|circa)[\s-]+(\d{4}s?(?:\s*[-–]\s*\d{4}s?)?)\s*\.?\s*$`)

// NormalizeGenre folds a raw genre string to its canonical alias if one
// exists; otherwise returns it trimmed, unchanged.
func NormalizeGenre(genre string) string {
	g := strings.TrimSpace(genre)
	if g == "" {
		return ""
	}
	if canonical, ok := genreAliases[strings.ToLower(g)]; ok {
		return canonical
	}
	return g
}

// Facets is the parsed result of a single comment string.
type Facets struct {
	Genre1      string
	Genre2      string
	Descriptors string
	Mood        string
	LocationEra string
	Location    string
	Era         string
}

// Parse splits a semicolon-delimited comment of the form
// "G1; G2; descriptors; mood; location_era." into its six facet fields.
// Parsing never fails: a malformed or short comment simply leaves the
// remaining facets as empty strings. Genre fields are NOT normalized here —
// callers that want canonical genres call NormalizeGenre explicitly (mirrors
// original_source/app/parser.py, where parse_comment and normalize_genre are
// separate steps composed by parse_all_comments).
func Parse(comment string) Facets {
	if strings.TrimSpace(comment) == "" {
		return Facets{}
	}

	rawParts := strings.Split(comment, ";")
	parts := make([]string, len(rawParts))
	for i, p := range rawParts {
		parts[i] = strings.TrimSpace(p)
	}

	var f Facets
	if len(parts) >= 1 {
		f.Genre1 = parts[0]
	}
	if len(parts) >= 2 {
		f.Genre2 = parts[1]
	}
	switch {
	case len(parts) >= 5:
		f.Descriptors = parts[2]
		f.Mood = parts[3]
		f.LocationEra = strings.TrimRight(parts[4], ".")
	case len(parts) == 4:
		f.Descriptors = parts[2]
		f.LocationEra = strings.TrimRight(parts[3], ".")
	case len(parts) == 3:
		f.Descriptors = strings.TrimRight(parts[2], ".")
	}

	if f.LocationEra != "" {
		loc := f.LocationEra
		if m := eraRe.FindStringSubmatchIndex(loc); m != nil {
			era1 := loc[m[2]:m[3]]
			era2 := loc[m[4]:m[5]]
			f.Era = strings.TrimSpace(era1 + " " + era2)
			f.Location = strings.TrimRight(strings.TrimSpace(loc[:m[0]]), ",")
			f.Location = strings.TrimSpace(f.Location)
		} else if idx := strings.LastIndex(loc, ","); idx >= 0 {
			f.Location = strings.TrimSpace(loc[:idx])
			f.Era = strings.TrimRight(strings.TrimSpace(loc[idx+1:]), ".")
		} else {
			f.Location = loc
		}
	}

	return f
}

// tokenRe splits mood/descriptor strings on commas, slashes, ampersands, or
// the word "and" — grounded on original_source/app/autoset.py's
// _parse_mood_tokens/_parse_descriptor_tokens regex.
var tokenRe = regexp.MustCompile(`(?i)[,/&]+|\band\b`)

// Tokenize lowercases and splits a mood/descriptor string into its
// constituent keyword tokens, dropping anything two characters or shorter.
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	raw := tokenRe.Split(s, -1)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if len(t) > 2 {
			out = append(out, t)
		}
	}
	return out
}

// TokenSet is Tokenize but deduplicated into a set, for Jaccard/overlap math.
func TokenSet(s string) map[string]struct{} {
	tokens := Tokenize(s)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// NormalizeWord lowercases and trims a single facet value (a genre name, a
// mood target) for case-insensitive set membership comparisons.
func NormalizeWord(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
