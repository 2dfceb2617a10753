package narrative

import (
	"context"
	"testing"

	"github.com/jasonfurnell/narrative-set-engine/internal/engineerr"
	"github.com/jasonfurnell/narrative-set-engine/internal/llm"
	"github.com/jasonfurnell/narrative-set-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	response string
	err      error
	calls    int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Invoke(_ context.Context, _, _ string, _ int) (string, error) {
	f.calls++
	return f.response, f.err
}

func testCapability(p llm.Provider) llm.Capability {
	m := llm.Model{Tier: llm.TierCreative, Provider: p, Name: "fake-model"}
	return llm.Capability{Creative: m, Mechanical: m}
}

func testPhases() models.PhaseProfile {
	return models.PhaseProfile{
		ID:   "standard",
		Name: "Standard",
		Phases: []models.Phase{
			{Name: "warmup", Pct: [2]float64{0, 50}, Color: "#111111"},
			{Name: "peak", Pct: [2]float64{50, 100}, Color: "#222222"},
		},
	}
}

func testProfile() *models.PoolProfile {
	return &models.PoolProfile{
		TrackCount: 30,
		BPM:        models.BPMStats{Min: 100, Max: 130, Median: 120, Mean: 118},
		Genres:     []models.ValueCount{{Value: "house", Count: 10}},
	}
}

func TestGenerateHappyPath(t *testing.T) {
	p := &fakeProvider{response: `{
		"narrative": "a journey",
		"acts": [
			{"name": "warmup", "target_track_count": 5, "bpm_range": [100,110], "energy_level": 3, "direction": "ascending"},
			{"name": "peak", "target_track_count": 10, "bpm_range": [120,130], "energy_level": 8, "direction": "steady"}
		]
	}`}
	narrative, acts, err := Generate(context.Background(), testCapability(p), testProfile(), testPhases(), 40, nil)
	require.NoError(t, err)
	assert.Equal(t, "a journey", narrative)
	require.Len(t, acts, 2)
	assert.Equal(t, [2]float64{0, 50}, acts[0].Pct)
	assert.Equal(t, "#111111", acts[0].Color)
	assert.Equal(t, [2]float64{50, 100}, acts[1].Pct)
	assert.Equal(t, 1, p.calls)
}

func TestGenerateMissingFieldsIsContractError(t *testing.T) {
	p := &fakeProvider{response: `{"acts": []}`}
	_, _, err := Generate(context.Background(), testCapability(p), testProfile(), testPhases(), 40, nil)
	require.Error(t, err)
	var contractErr *engineerr.LLMContractError
	assert.ErrorAs(t, err, &contractErr)
}

func TestGenerateActCountMismatchIsContractError(t *testing.T) {
	p := &fakeProvider{response: `{"narrative": "x", "acts": [{"name": "warmup"}]}`}
	_, _, err := Generate(context.Background(), testCapability(p), testProfile(), testPhases(), 40, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 phases")
}

func TestGenerateFencedJSONIsTolerated(t *testing.T) {
	p := &fakeProvider{response: "```json\n{\"narrative\": \"x\", \"acts\": [{\"name\":\"warmup\"},{\"name\":\"peak\"}]}\n```"}
	narrative, acts, err := Generate(context.Background(), testCapability(p), testProfile(), testPhases(), 40, nil)
	require.NoError(t, err)
	assert.Equal(t, "x", narrative)
	assert.Len(t, acts, 2)
}

func TestGenerateOverwritesActColorDefault(t *testing.T) {
	phases := testPhases()
	phases.Phases[0].Color = ""
	p := &fakeProvider{response: `{"narrative": "x", "acts": [{"name":"warmup"},{"name":"peak"}]}`}
	_, acts, err := Generate(context.Background(), testCapability(p), testProfile(), phases, 40, nil)
	require.NoError(t, err)
	assert.Equal(t, "#888888", acts[0].Color)
}
