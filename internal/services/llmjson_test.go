package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONStripsMarkdownFences(t *testing.T) {
	input := "```json\n{\"name\": \"test\"}\n```"
	assert.JSONEq(t, `{"name": "test"}`, ExtractJSON(input))
}

func TestExtractJSONIgnoresSurroundingProse(t *testing.T) {
	input := "Sure, here is the result:\n{\"score\": 85}\nLet me know if you need anything else."
	assert.JSONEq(t, `{"score": 85}`, ExtractJSON(input))
}

func TestExtractJSONHandlesArrays(t *testing.T) {
	input := "Here are the suggestions:\n[{\"priority\": \"high\"}]"
	assert.JSONEq(t, `[{"priority": "high"}]`, ExtractJSON(input))
}

func TestExtractJSONPrefersObjectOverArray(t *testing.T) {
	// Objects containing arrays come back whole
	input := `{"items": [1, 2, 3]}`
	assert.JSONEq(t, input, ExtractJSON(input))
}

func TestExtractJSONPassthroughWhenNoJSON(t *testing.T) {
	assert.Equal(t, "no structure here", ExtractJSON("no structure here"))
}

func TestDecodeLLMResponse(t *testing.T) {
	var target struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}

	err := DecodeLLMResponse("```json\n{\"name\": \"Alex\", \"score\": 91}\n```", &target)
	require.NoError(t, err)
	assert.Equal(t, "Alex", target.Name)
	assert.Equal(t, 91, target.Score)
}

func TestDecodeLLMResponseRejectsGarbage(t *testing.T) {
	var target map[string]interface{}
	err := DecodeLLMResponse("the model refused to answer", &target)
	assert.Error(t, err)
}
