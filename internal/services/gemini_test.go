package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestTextFromCandidatesJoinsTextParts(t *testing.T) {
	candidates := []*genai.Candidate{
		{Content: &genai.Content{Parts: []*genai.Part{
			{Text: `{"overall_score":`},
			{Text: `85}`},
		}}},
	}

	assert.Equal(t, "{\"overall_score\":\n85}", textFromCandidates(candidates))
}

func TestTextFromCandidatesSkipsNonText(t *testing.T) {
	candidates := []*genai.Candidate{
		nil,
		{Content: nil},
		{Content: &genai.Content{Parts: []*genai.Part{
			nil,
			{Text: ""},
			{InlineData: &genai.Blob{MIMEType: "image/png"}},
			{Text: "usable text"},
		}}},
	}

	// Only real text parts survive; no struct dumps leak into the output
	assert.Equal(t, "usable text", textFromCandidates(candidates))
}

func TestTextFromCandidatesEmpty(t *testing.T) {
	assert.Empty(t, textFromCandidates(nil))
	assert.Empty(t, textFromCandidates([]*genai.Candidate{{Content: &genai.Content{}}}))
}
