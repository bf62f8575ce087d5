package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeLLMResponse unmarshals an LLM response into target, stripping any
// markdown fences or prose the model wrapped around the JSON payload.
func DecodeLLMResponse(response string, target interface{}) error {
	jsonStr := ExtractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w\nResponse: %s", err, response)
	}

	return nil
}

// ExtractJSON tries to extract JSON from text that might contain markdown or
// other formatting.
func ExtractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	// Find JSON object or array boundaries
	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
