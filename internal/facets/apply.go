package facets

import "github.com/jasonfurnell/narrative-set-engine/internal/models"

// ApplyToTrack parses t.Comment and populates its derived facet fields,
// normalizing both genre positions. Idempotent: calling it again after
// Comment changes recomputes every facet from scratch.
func ApplyToTrack(t *models.Track) {
	if t == nil {
		return
	}
	f := Parse(t.Comment)
	t.Genre1 = NormalizeGenre(f.Genre1)
	t.Genre2 = NormalizeGenre(f.Genre2)
	t.Descriptors = f.Descriptors
	t.Mood = f.Mood
	t.ParsedLocation = f.Location
	t.Era = f.Era
}

// ApplyAll parses facets for every track in tracks, in place.
func ApplyAll(tracks []*models.Track) {
	for _, t := range tracks {
		ApplyToTrack(t)
	}
}
