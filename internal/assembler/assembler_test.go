package assembler

import (
	"strconv"
	"testing"

	"github.com/jasonfurnell/narrative-set-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bpmPtr(f float64) *float64 { return &f }

func TestAssembleProducesOneSlotPerTrack(t *testing.T) {
	tracksByID := map[int]*models.Track{
		1: {ID: 1, Title: "One", BPM: bpmPtr(120)},
		2: {ID: 2, Title: "Two", BPM: bpmPtr(125)},
	}
	ordered := []models.OrderedTrack{
		{TrackID: 1, ActIdx: 0, ActName: "warmup"},
		{TrackID: 2, ActIdx: 0, ActName: "warmup"},
	}
	assignment := models.Assignment{0: {{TrackID: 1, Score: 0.9}, {TrackID: 2, Score: 0.8}}}

	set := Assemble(tracksByID, ordered, assignment, "My Set", "classic_arc")
	require.Len(t, set.Slots, 2)
	assert.Equal(t, "My Set", set.Name)
	assert.Equal(t, "classic_arc", set.PhaseProfileID)
	assert.NotEmpty(t, set.ID)
	for i, slot := range set.Slots {
		assert.Equal(t, models.SourceAutoset, slot.Source.Type)
		assert.Equal(t, "warmup", slot.Source.Name)
		assert.Equal(t, "autoset-slot-"+strconv.Itoa(i), slot.ID)
	}
}

func TestAssembleAnchorsSelectedTrackInItsOwnSlot(t *testing.T) {
	tracksByID := map[int]*models.Track{
		1: {ID: 1, BPM: bpmPtr(120)},
	}
	ordered := []models.OrderedTrack{{TrackID: 1, ActIdx: 0, ActName: "peak"}}
	assignment := models.Assignment{0: {{TrackID: 1, Score: 0.9}}}

	set := Assemble(tracksByID, ordered, assignment, "Set", "")
	require.Len(t, set.Slots, 1)
	slot := set.Slots[0]
	selected := slot.Tracks[slot.SelectedTrackIndex]
	require.NotNil(t, selected)
	assert.Equal(t, 1, selected.ID)
}

