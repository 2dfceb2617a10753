package sequencer

import (
	"testing"

	"github.com/jasonfurnell/narrative-set-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bpmPtr(f float64) *float64 { return &f }

func TestSelectDiverseUnderCapacityReturnsAll(t *testing.T) {
	tracksByID := map[int]*models.Track{1: {ID: 1}, 2: {ID: 2}}
	candidates := []models.ScoredTrack{{TrackID: 1, Score: 0.9}, {TrackID: 2, Score: 0.8}}
	out := SelectDiverse(tracksByID, candidates, 5)
	assert.Equal(t, []int{1, 2}, out)
}

func TestSelectDiverseSkipsRepeatedKeyPastHalfFill(t *testing.T) {
	tracksByID := map[int]*models.Track{}
	var candidates []models.ScoredTrack
	for i := 1; i <= 10; i++ {
		key := "8A"
		if i == 10 {
			key = "9A"
		}
		tracksByID[i] = &models.Track{ID: i, BPM: bpmPtr(100 + float64(i)), Key: key}
		candidates = append(candidates, models.ScoredTrack{TrackID: i, Score: 1.0 - float64(i)*0.01})
	}
	out := SelectDiverse(tracksByID, candidates, 4)
	require.Len(t, out, 4)
	// Past half fill, tracks 4-9 repeat 8A (already used by 1-3), so the
	// last slot goes to track 10 with its unused key.
	assert.Equal(t, []int{1, 2, 3, 10}, out)
}

func TestSelectDiverseBackfillsWhenDiversityFilterStarves(t *testing.T) {
	tracksByID := map[int]*models.Track{}
	var candidates []models.ScoredTrack
	for i := 1; i <= 6; i++ {
		tracksByID[i] = &models.Track{ID: i, BPM: bpmPtr(120), Key: "8A"}
		candidates = append(candidates, models.ScoredTrack{TrackID: i, Score: 1.0 - float64(i)*0.01})
	}
	out := SelectDiverse(tracksByID, candidates, 4)
	assert.Len(t, out, 4)
}
