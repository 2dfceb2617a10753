package llm

import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

type extractTarget struct {
	Narrative string   `json:"narrative"`
	Acts      []string `json:"acts"`
}

func TestExtractJSONRaw(t *testing.T) {
	var out extractTarget
	err := ExtractJSON(`{"narrative": "x", "acts": ["a", "b"]}`, &out)
	require.NoError(t, err)
	assert.Equal(t, "x", out.Narrative)
	assert.Equal(t, []string{"a", "b"}, out.Acts)
}

func TestExtractJSONFencedBlock(t *testing.T) {
	var out extractTarget
	err := ExtractJSON("```json\n{\"narrative\": \"y\", \"acts\": []}\n```", &out)
	require.NoError(t, err)
	assert.Equal(t, "y", out.Narrative)
}

func TestExtractJSONEmbeddedInProse(t *testing.T) {
	var out extractTarget
	err := ExtractJSON("Sure, here's the result:\n{\"narrative\": \"z\", \"acts\": []}\nHope that helps!", &out)
	require.NoError(t, err)
	assert.Equal(t, "z", out.Narrative)
}

func TestExtractJSONUnparsableReturnsError(t *testing.T) {
	var out extractTarget
	err := ExtractJSON("not json at all, no braces either", &out)
	assert.Error(t, err)
}

func TestExtractJSONArrayShape(t *testing.T) {
	var out []string
	err := ExtractJSON("prefix text [\"a\", \"b\", \"c\"] suffix text", &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, out)
}
