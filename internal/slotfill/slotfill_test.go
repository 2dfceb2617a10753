package slotfill

import (
	"testing"

	"github.com/jasonfurnell/narrative-set-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bpmPtr(f float64) *float64 { return &f }

func TestSelectTracksForSourceAnchorPlacement(t *testing.T) {
	tracksByID := map[int]*models.Track{
		1: {ID: 1, Title: "Anchor", BPM: bpmPtr(122)},
	}
	out := SelectTracksForSource(tracksByID, []int{1}, models.DefaultBPMLevels, nil, 1)
	// 122 is closest to level 120 (index 6: 60,70,...,120)
	require.NotNil(t, out[6])
	assert.Equal(t, 1, out[6].ID)
	require.NotNil(t, out[6].BPMLevel)
	assert.Equal(t, 120, *out[6].BPMLevel)
}

func TestSelectTracksForSourceProgressiveTolerance(t *testing.T) {
	tracksByID := map[int]*models.Track{
		1: {ID: 1, BPM: bpmPtr(108)}, // within 10 of 100 and 110
	}
	out := SelectTracksForSource(tracksByID, []int{1}, models.DefaultBPMLevels, nil, 0)
	found := false
	for _, opt := range out {
		if opt != nil && opt.ID == 1 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSelectTracksForSourceSkipsUsedExceptAnchor(t *testing.T) {
	tracksByID := map[int]*models.Track{
		1: {ID: 1, BPM: bpmPtr(100)},
		2: {ID: 2, BPM: bpmPtr(101)},
	}
	used := map[int]struct{}{1: {}}
	out := SelectTracksForSource(tracksByID, []int{1, 2}, models.DefaultBPMLevels, used, 0)
	// track 1 is used and not anchor -> should not appear; track 2 should fill its slot
	for _, opt := range out {
		if opt != nil {
			assert.Equal(t, 2, opt.ID)
		}
	}
}

func TestSelectTracksForSourceAnchorSurvivesUsedFilter(t *testing.T) {
	tracksByID := map[int]*models.Track{
		1: {ID: 1, BPM: bpmPtr(100)},
	}
	used := map[int]struct{}{1: {}}
	out := SelectTracksForSource(tracksByID, []int{1}, models.DefaultBPMLevels, used, 1)
	found := false
	for _, opt := range out {
		if opt != nil && opt.ID == 1 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSelectTracksForSourceNoMatchLeavesNil(t *testing.T) {
	tracksByID := map[int]*models.Track{
		1: {ID: 1, BPM: bpmPtr(1000)}, // far outside any tolerance
	}
	out := SelectTracksForSource(tracksByID, []int{1}, models.DefaultBPMLevels, nil, 0)
	for _, opt := range out {
		assert.Nil(t, opt)
	}
}
