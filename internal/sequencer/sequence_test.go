package sequencer

import (
	"context"
	"testing"

	"github.com/jasonfurnell/narrative-set-engine/internal/llm"
	"github.com/jasonfurnell/narrative-set-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	response string
	err      error
}

func (f *fakeProvider) Name() string { return "fake" }
func (f *fakeProvider) Invoke(context.Context, string, string, int) (string, error) {
	return f.response, f.err
}

func testCapability(resp string) llm.Capability {
	p := &fakeProvider{response: resp}
	m := llm.Model{Tier: llm.TierCreative, Provider: p}
	return llm.Capability{Creative: m, Mechanical: m}
}

func TestBuildSequenceConcatenatesActsInOrder(t *testing.T) {
	tracksByID := map[int]*models.Track{
		1: {ID: 1, Title: "A", BPM: bpmPtr(100)},
		2: {ID: 2, Title: "B", BPM: bpmPtr(101)},
		3: {ID: 3, Title: "C", BPM: bpmPtr(140)},
	}
	assignment := models.Assignment{
		0: {{TrackID: 1, Score: 0.9}, {TrackID: 2, Score: 0.8}},
		1: {{TrackID: 3, Score: 0.9}},
	}
	acts := []models.Act{
		{Name: "warmup", TargetTrackCount: 2, Direction: models.DirectionAscending},
		{Name: "peak", TargetTrackCount: 1, Direction: models.DirectionAscending},
	}
	out := BuildSequence(tracksByID, assignment, acts)
	require.Len(t, out, 3)
	assert.Equal(t, "warmup", out[0].ActName)
	assert.Equal(t, "warmup", out[1].ActName)
	assert.Equal(t, "peak", out[2].ActName)
}

func TestReviewSequenceAppliesSwap(t *testing.T) {
	ordered := []models.OrderedTrack{
		{TrackID: 1, Title: "first"},
		{TrackID: 2, Title: "second"},
	}
	resp := `{"assessment": "ok", "swaps": [{"from_position": 1, "to_position": 2, "reason": "flow"}]}`
	out, err := ReviewSequence(context.Background(), testCapability(resp), ordered, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, out[0].TrackID)
	assert.Equal(t, 1, out[1].TrackID)
}

func TestReviewSequenceNoSwapsReturnsUnchanged(t *testing.T) {
	ordered := []models.OrderedTrack{{TrackID: 1}, {TrackID: 2}}
	resp := `{"assessment": "great already", "swaps": []}`
	out, err := ReviewSequence(context.Background(), testCapability(resp), ordered, nil)
	require.NoError(t, err)
	assert.Equal(t, ordered, out)
}

func TestReviewSequenceCapsAtThreeSwaps(t *testing.T) {
	ordered := make([]models.OrderedTrack, 10)
	for i := range ordered {
		ordered[i] = models.OrderedTrack{TrackID: i + 1}
	}
	resp := `{"swaps": [
		{"from_position": 1, "to_position": 2},
		{"from_position": 3, "to_position": 4},
		{"from_position": 5, "to_position": 6},
		{"from_position": 7, "to_position": 8}
	]}`
	out, err := ReviewSequence(context.Background(), testCapability(resp), ordered, nil)
	require.NoError(t, err)
	// 4th swap (7<->8) should not be applied
	assert.Equal(t, 7, out[6].TrackID)
	assert.Equal(t, 8, out[7].TrackID)
}

func TestReviewSequenceInvalidPositionIgnored(t *testing.T) {
	ordered := []models.OrderedTrack{{TrackID: 1}, {TrackID: 2}}
	resp := `{"swaps": [{"from_position": 0, "to_position": 99}]}`
	out, err := ReviewSequence(context.Background(), testCapability(resp), ordered, nil)
	require.NoError(t, err)
	assert.Equal(t, ordered, out)
}
