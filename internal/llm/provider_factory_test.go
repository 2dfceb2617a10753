package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProviderDispatchesOnModelPrefix(t *testing.T) {
	f := NewProviderFactory("openai-key", "gemini-key")

	p, err := f.GetProvider(context.Background(), "gpt-5-mini")
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	p, err = f.GetProvider(context.Background(), "gemini-2.5-flash")
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())
}

func TestGetProviderMissingKeyErrors(t *testing.T) {
	f := NewProviderFactory("", "")

	_, err := f.GetProvider(context.Background(), "gpt-5-mini")
	assert.Error(t, err)

	_, err = f.GetProvider(context.Background(), "gemini-2.5-flash")
	assert.Error(t, err)
}

func TestBuildCapabilityWiresBothTiers(t *testing.T) {
	f := NewProviderFactory("openai-key", "gemini-key")

	cap, err := f.BuildCapability(context.Background(), "gpt-5", "gemini-2.5-flash")
	require.NoError(t, err)
	assert.Equal(t, TierCreative, cap.Creative.Tier)
	assert.Equal(t, "gpt-5", cap.Creative.Name)
	assert.Equal(t, "openai", cap.Creative.Provider.Name())
	assert.Equal(t, TierMechanical, cap.Mechanical.Tier)
	assert.Equal(t, "gemini-2.5-flash", cap.Mechanical.Name)
	assert.Equal(t, "gemini", cap.Mechanical.Provider.Name())
}

func TestBuildCapabilityPropagatesCreativeError(t *testing.T) {
	f := NewProviderFactory("", "gemini-key")
	_, err := f.BuildCapability(context.Background(), "gpt-5", "gemini-2.5-flash")
	assert.Error(t, err)
}
