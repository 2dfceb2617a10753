package phaseprofile

import (
	"context"
	"testing"

	"github.com/jasonfurnell/narrative-set-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupFindsSeededProfile(t *testing.T) {
	r := NewRegistry(DefaultProfiles()...)
	p, err := r.Lookup(context.Background(), "classic_arc")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Classic Arc", p.Name)
	assert.Len(t, p.Phases, 5)
}

func TestLookupUnknownIDReturnsNilNil(t *testing.T) {
	r := NewRegistry(DefaultProfiles()...)
	p, err := r.Lookup(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPutRegistersCustomProfile(t *testing.T) {
	r := NewRegistry()
	custom := models.PhaseProfile{ID: "custom", Name: "Custom", Phases: []models.Phase{{Name: "Only", Pct: [2]float64{0, 100}}}}
	r.Put(custom)

	p, err := r.Lookup(context.Background(), "custom")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Custom", p.Name)
}

func TestDefaultProfilesTileZeroToHundred(t *testing.T) {
	for _, profile := range DefaultProfiles() {
		require.NotEmpty(t, profile.Phases, profile.ID)
		assert.Equal(t, 0.0, profile.Phases[0].Pct[0], "%s: first phase must start at 0", profile.ID)
		last := profile.Phases[len(profile.Phases)-1]
		assert.Equal(t, 100.0, last.Pct[1], "%s: last phase must end at 100", profile.ID)
		for i := 1; i < len(profile.Phases); i++ {
			assert.Equal(t, profile.Phases[i-1].Pct[1], profile.Phases[i].Pct[0], "%s: phase %d must join the previous phase's end", profile.ID, i)
		}
	}
}
