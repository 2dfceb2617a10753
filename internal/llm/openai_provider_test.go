package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIProvider(t *testing.T) {
	provider := NewOpenAIProvider("test-api-key", "gpt-5-mini")
	require.NotNil(t, provider)
	assert.Equal(t, "openai", provider.Name())
	assert.Equal(t, "gpt-5-mini", provider.model)
	assert.NotNil(t, provider.client)
}

func TestOpenAIProviderNameIsStable(t *testing.T) {
	creative := NewOpenAIProvider("key", "gpt-5")
	mechanical := NewOpenAIProvider("key", "gpt-5-mini")
	assert.Equal(t, creative.Name(), mechanical.Name())
}
