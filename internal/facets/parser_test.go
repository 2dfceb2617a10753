package facets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFullComment(t *testing.T) {
	f := Parse("Hip Hop; Boom Bap; gritty, dusty; nostalgic; Brooklyn NY, early 1990s.")
	assert.Equal(t, "Hip Hop", f.Genre1)
	assert.Equal(t, "Boom Bap", f.Genre2)
	assert.Equal(t, "gritty, dusty", f.Descriptors)
	assert.Equal(t, "nostalgic", f.Mood)
	assert.Equal(t, "Brooklyn NY", f.Location)
	assert.Equal(t, "early 1990s", f.Era)
}

func TestParseFourSegments(t *testing.T) {
	f := Parse("Techno; Acid; hypnotic; Berlin, 1990s")
	assert.Equal(t, "Techno", f.Genre1)
	assert.Equal(t, "Acid", f.Genre2)
	assert.Equal(t, "hypnotic", f.Descriptors)
	assert.Equal(t, "", f.Mood)
	assert.Equal(t, "Berlin", f.Location)
	assert.Equal(t, "1990s", f.Era)
}

func TestParseThreeSegments(t *testing.T) {
	f := Parse("House; Deep House; warm.")
	assert.Equal(t, "House", f.Genre1)
	assert.Equal(t, "Deep House", f.Genre2)
	assert.Equal(t, "warm", f.Descriptors)
	assert.Equal(t, "", f.Mood)
	assert.Equal(t, "", f.Location)
}

func TestParseEmptyNeverFails(t *testing.T) {
	f := Parse("")
	assert.Equal(t, Facets{}, f)
	f = Parse("   ")
	assert.Equal(t, Facets{}, f)
	f = Parse("OnlyGenre")
	assert.Equal(t, "OnlyGenre", f.Genre1)
	assert.Equal(t, "", f.Genre2)
}

func TestParseIdempotent(t *testing.T) {
	comment := "Hip Hop; Boom Bap; gritty; nostalgic; Brooklyn NY, early 1990s."
	a := Parse(comment)
	b := Parse(comment)
	assert.Equal(t, a, b)
}

func TestNormalizeGenreAliases(t *testing.T) {
	cases := map[string]string{
		"hip hop":       "Hip-Hop",
		"Hip-Hop":       "Hip-Hop",
		"HIP HOP":       "Hip-Hop",
		"r&b":           "R&B",
		"R & B":         "R&B",
		"rnb":           "R&B",
		"drum and bass": "Drum & Bass",
		"DnB":           "Drum & Bass",
		"d&b":           "Drum & Bass",
		"Techno":        "Techno",
		"":              "",
		"  ":            "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeGenre(in), "input=%q", in)
	}
}

func TestParseCommaFallbackNoEraMatch(t *testing.T) {
	f := Parse("Funk; Soul; groovy; upbeat; Detroit, Michigan")
	assert.Equal(t, "Detroit", f.Location)
	assert.Equal(t, "Michigan", f.Era)
}

func TestTokenize(t *testing.T) {
	toks := Tokenize("dark, moody & tense and brooding")
	assert.ElementsMatch(t, []string{"dark", "moody", "tense", "brooding"}, toks)
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	toks := Tokenize("up, ok, warm")
	assert.ElementsMatch(t, []string{"warm"}, toks)
}
