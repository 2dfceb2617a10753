package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jasonfurnell/narrative-set-engine/internal/models"
)

func track(id int, genre1, genre2, mood, desc string, bpm float64) *models.Track {
	b := bpm
	return &models.Track{
		ID: id, Genre1: genre1, Genre2: genre2, Mood: mood, Descriptors: desc, BPM: &b,
	}
}

func TestScoreMonotonicAddingMatchingFacet(t *testing.T) {
	q := Query{Genres: []string{"Techno"}, Mood: []string{"dark"}}
	t1 := track(1, "Techno", "", "", "", 0)
	base := ScoredSearch([]*models.Track{t1}, q, 0, 10)
	require := base[0].Score

	q2 := q
	t2 := track(1, "Techno", "", "dark and moody", "", 0)
	withMood := ScoredSearch([]*models.Track{t2}, q2, 0, 10)
	assert.Greater(t, withMood[0].Score, require)
}

func TestScoreNeverDecreasesForUnmatchedFacet(t *testing.T) {
	q := Query{Genres: []string{"Techno"}, Location: []string{"Berlin"}}
	tr := track(1, "Techno", "", "", "", 0)
	before := ScoredSearch([]*models.Track{tr}, q, 0, 10)[0].Score

	tr2 := track(1, "Techno", "", "", "", 0)
	tr2.ParsedLocation = "Detroit"
	after := ScoredSearch([]*models.Track{tr2}, q, 0, 10)
	// Detroit does not match Berlin, so the location facet contributes 0;
	// with the same query (and so the same denominator) the score must not
	// drop below the baseline, and it never exceeds 1.0.
	assert.GreaterOrEqual(t, after[0].Score, before)
	assert.LessOrEqual(t, after[0].Score, 1.0)
}

func TestScoredSearchSortedDescendingAndTruncated(t *testing.T) {
	q := Query{Genres: []string{"House"}}
	tracks := []*models.Track{
		track(1, "House", "", "", "", 0),
		track(2, "House", "Deep House", "", "", 0),
		track(3, "Techno", "", "", "", 0),
	}
	results := ScoredSearch(tracks, q, 0, 1)
	assert.Len(t, results, 1)
	assert.Equal(t, 1, results[0].TrackID)
}

func TestScoredSearchEmptyQueryReturnsNothing(t *testing.T) {
	tracks := []*models.Track{track(1, "House", "", "", "", 0)}
	results := ScoredSearch(tracks, Query{}, 0, 10)
	assert.Empty(t, results)
}

func TestScoredSearchMinScoreFilters(t *testing.T) {
	q := Query{Genres: []string{"House", "Techno"}}
	tracks := []*models.Track{track(1, "House", "", "", "", 0)}
	results := ScoredSearch(tracks, q, 0.9, 10)
	assert.Empty(t, results)
}

func TestTextSearch(t *testing.T) {
	tracks := []*models.Track{
		{ID: 1, Title: "Midnight Run", Artist: "DJ Foo"},
		{ID: 2, Title: "Daylight", Artist: "Bar"},
	}
	ids := TextSearch(tracks, "midnight")
	assert.Equal(t, []int{1}, ids)
}
