package sequencer

import (
	"testing"

	"github.com/jasonfurnell/narrative-set-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderWithinActAscending(t *testing.T) {
	tracksByID := map[int]*models.Track{
		1: {ID: 1, BPM: bpmPtr(130), Key: "8A"},
		2: {ID: 2, BPM: bpmPtr(100), Key: "8A"},
		3: {ID: 3, BPM: bpmPtr(115), Key: "8A"},
	}
	out := OrderWithinAct(tracksByID, []int{1, 2, 3}, models.DirectionAscending)
	require.Len(t, out, 3)
	assert.Equal(t, 2, out[0])
}

func TestOrderWithinActDescending(t *testing.T) {
	tracksByID := map[int]*models.Track{
		1: {ID: 1, BPM: bpmPtr(100), Key: "8A"},
		2: {ID: 2, BPM: bpmPtr(140), Key: "8A"},
	}
	out := OrderWithinAct(tracksByID, []int{1, 2}, models.DirectionDescending)
	assert.Equal(t, 2, out[0])
}

func TestOrderWithinActSingleTrackNoop(t *testing.T) {
	tracksByID := map[int]*models.Track{1: {ID: 1, BPM: bpmPtr(120)}}
	out := OrderWithinAct(tracksByID, []int{1}, models.DirectionAscending)
	assert.Equal(t, []int{1}, out)
}

func TestOrderWithinActPrefersKeyAdjacency(t *testing.T) {
	tracksByID := map[int]*models.Track{
		1: {ID: 1, BPM: bpmPtr(100), Key: "8A"},
		2: {ID: 2, BPM: bpmPtr(101), Key: "3A"}, // far key, close bpm
		3: {ID: 3, BPM: bpmPtr(102), Key: "9A"}, // adjacent key, close bpm
	}
	out := OrderWithinAct(tracksByID, []int{1, 2, 3}, models.DirectionAscending)
	require.Len(t, out, 3)
	assert.Equal(t, 1, out[0])
	assert.Equal(t, 3, out[1])
}
